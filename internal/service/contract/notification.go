package contract

// NotificationSender 프로세스 실행 결과 등을 알림으로 발송합니다.
//
// 두 메서드 모두 발송 요청이 접수되면 nil을 반환하며 실제 전송 결과와는 무관합니다.
type NotificationSender interface {
	// NotifyDefault 설정된 모든 Notifier로 메시지를 발송합니다.
	NotifyDefault(message string) error

	// NotifyDefaultWithError 오류 성격의 메시지를 발송합니다.
	NotifyDefaultWithError(message string) error
}
