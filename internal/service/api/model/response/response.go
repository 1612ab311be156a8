// Package response API 공통 응답 모델을 정의합니다.
package response

// ErrorResponse 에러 응답
type ErrorResponse struct {
	ResultCode int    `json:"result_code"`
	Message    string `json:"message"`
}

// ProcessResponse 시작/취소 요청에 대한 응답
type ProcessResponse struct {
	Message string `json:"message"`
	Status  any    `json:"status"`
}
