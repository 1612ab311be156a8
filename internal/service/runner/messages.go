package runner

import (
	"fmt"
	"time"

	"github.com/darkkaiser/long-process/internal/pkg/mark"
	"github.com/darkkaiser/long-process/internal/service/task"
)

const (
	msgProcessCompleted = "Long process completed"
	msgProcessCancelled = "Process cancelled"
	msgProcessFailed    = "Process cancelled: 작업 진행중 오류가 발생하여 작업이 중단되었습니다."
)

// outcomeMessage 종료 상태에 대한 알림 메시지와 오류 여부를 반환합니다.
func outcomeMessage(r runInfo, change task.StateChange) (string, bool) {
	var headline string
	switch {
	case change.Err != nil:
		headline = msgProcessFailed + mark.Failed.WithSpace()
	case change.State == task.Completed:
		headline = msgProcessCompleted + mark.Completed.WithSpace()
	default:
		headline = msgProcessCancelled + mark.Cancelled.WithSpace()
	}

	message := fmt.Sprintf("%s\n\n%s 실행 ID: %s\n%s 실행 주체: %s\n%s 소요 시간: %s",
		headline,
		mark.Item, r.instanceID,
		mark.Item, r.runBy,
		mark.Item, r.elapsed(time.Now()).Round(time.Millisecond))
	if change.Err != nil {
		message += fmt.Sprintf("\n\n%v", change.Err)
	}

	return message, change.Err != nil
}
