// Package mark 알림 메시지에 붙는 이모지 마크를 정의합니다.
package mark

// Mark 알림 메시지용 이모지입니다.
type Mark string

const (
	// 프로세스 완료
	Completed Mark = "✅"

	// 사용자 또는 종료 절차에 의한 취소
	Cancelled Mark = "⏹️"

	// 작업 중 오류
	Failed Mark = "😱"

	// 세부 항목 머리표
	Item Mark = "☑"
)

// WithSpace 앞에 공백 하나를 붙여 반환합니다. 빈 마크는 빈 문자열입니다.
func (m Mark) WithSpace() string {
	if m == "" {
		return ""
	}
	return " " + string(m)
}

func (m Mark) String() string {
	return string(m)
}
