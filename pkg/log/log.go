// Package log logrus 기반의 애플리케이션 로깅 헬퍼를 제공합니다.
//
// Setup으로 파일 로테이션(lumberjack)과 레벨별 분리 기록을 구성하고,
// 각 컴포넌트는 WithComponent / WithComponentAndFields로 구조화된 로그를 남깁니다.
package log

import "github.com/sirupsen/logrus"

// StandardLogger 전역 logrus 로거를 반환합니다.
func StandardLogger() *Logger {
	return logrus.StandardLogger()
}

// SetDebugMode 디버그 모드이면 Trace, 아니면 Info 레벨로 설정합니다.
func SetDebugMode(debug bool) {
	if debug {
		logrus.SetLevel(TraceLevel)
	} else {
		logrus.SetLevel(InfoLevel)
	}
}

// WithComponent component 필드를 포함한 Entry를 반환합니다.
func WithComponent(component string) *Entry {
	return logrus.WithField("component", component)
}

// WithComponentAndFields component 필드와 추가 필드를 포함한 Entry를 반환합니다.
// fields에 component 키가 있어도 component 인자가 우선합니다.
func WithComponentAndFields(component string, fields Fields) *Entry {
	merged := make(Fields, len(fields)+1)
	for k, v := range fields {
		merged[k] = v
	}
	merged["component"] = component

	return logrus.WithFields(merged)
}

// MaskSensitiveData 토큰 등 민감한 문자열을 로그에 남길 수 있도록 마스킹합니다.
//
//	""                  -> ""
//	"abc"               -> "***"
//	"abcdefgh"          -> "abcd***"
//	"123456:ABCDEFGHIJ" -> "1234***GHIJ"
func MaskSensitiveData(data string) string {
	switch n := len(data); {
	case n == 0:
		return ""
	case n <= 3:
		return "***"
	case n <= 12:
		return data[:4] + "***"
	default:
		return data[:4] + "***" + data[n-4:]
	}
}
