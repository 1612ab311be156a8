package log

import (
	"fmt"
	"os"
)

// Options 로깅 시스템 초기화 설정입니다.
type Options struct {
	Name  string // 로그 파일명에 사용될 애플리케이션 식별자
	Dir   string // 로그 디렉토리 (빈 값이면 "logs")
	Level Level  // 로그 레벨 (0이면 PanicLevel이 아닌 InfoLevel로 간주)

	MaxAge     int // 보관 일수 (0: 삭제 안 함)
	MaxSizeMB  int // 파일당 최대 크기 (0: 100MB)
	MaxBackups int // 최대 백업 파일 수 (0: 20개)

	EnableCriticalLog bool // ERROR 이상을 별도 파일(*.critical.log)에도 기록
	EnableVerboseLog  bool // DEBUG 이하를 메인 로그 대신 별도 파일(*.verbose.log)에 기록
	EnableConsoleLog  bool // 표준 출력에도 기록

	ReportCaller     bool   // 호출 위치(함수명:라인) 기록
	CallerPathPrefix string // 호출 위치 출력 시 잘라낼 패키지 경로 접두사
}

// Validate 설정값의 유효성을 검사합니다.
func (o *Options) Validate() error {
	if o.Name == "" {
		return fmt.Errorf("애플리케이션 식별자(Name)가 설정되지 않았습니다")
	}

	if o.Dir != "" {
		if fi, err := os.Stat(o.Dir); err == nil && !fi.IsDir() {
			return fmt.Errorf("로그 디렉토리 경로(%s)가 이미 파일로 존재합니다", o.Dir)
		}
	}

	for name, v := range map[string]int{"MaxAge": o.MaxAge, "MaxSizeMB": o.MaxSizeMB, "MaxBackups": o.MaxBackups} {
		if v < 0 {
			return fmt.Errorf("%s는 0 이상이어야 합니다: %d", name, v)
		}
	}

	return nil
}

// NewProductionOptions 운영 환경용 설정을 반환합니다.
func NewProductionOptions(appName string) Options {
	return Options{
		Name:              appName,
		Level:             InfoLevel,
		MaxAge:            30,
		MaxSizeMB:         100,
		MaxBackups:        20,
		EnableCriticalLog: true,
		EnableVerboseLog:  true,
		ReportCaller:      true,
		CallerPathPrefix:  "github.com/darkkaiser",
	}
}

// NewDevelopmentOptions 개발 환경용 설정을 반환합니다. 모든 레벨을 콘솔과 단일 파일에 기록합니다.
func NewDevelopmentOptions(appName string) Options {
	return Options{
		Name:             appName,
		Level:            TraceLevel,
		MaxAge:           1,
		MaxSizeMB:        50,
		MaxBackups:       5,
		EnableConsoleLog: true,
		ReportCaller:     true,
		CallerPathPrefix: "github.com/darkkaiser",
	}
}
