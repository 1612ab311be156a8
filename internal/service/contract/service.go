// Package contract 서비스 간 의존성을 끊기 위한 공용 인터페이스와 타입을 정의합니다.
package contract

import (
	"context"
	"sync"
)

// Service 애플리케이션의 생명주기에 맞춰 시작/종료되는 서비스입니다.
type Service interface {
	// Start 서비스를 시작합니다. serviceStopCtx가 취소되면 서비스는 정리 작업을 마친 뒤
	// serviceStopWG.Done()을 호출해야 합니다. 에러를 반환한 경우에도 Done()은 호출되어야 합니다.
	Start(serviceStopCtx context.Context, serviceStopWG *sync.WaitGroup) error
}
