// Package system 시스템 엔드포인트(/health, /version) 응답 모델을 정의합니다.
package system

// DependencyStatus 의존 서비스 하나의 상태
type DependencyStatus struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// HealthResponse /health 응답
type HealthResponse struct {
	Status       string                      `json:"status"`
	Uptime       int64                       `json:"uptime"`
	Dependencies map[string]DependencyStatus `json:"dependencies,omitempty"`
}

// VersionResponse /version 응답
type VersionResponse struct {
	Version     string `json:"version"`
	Commit      string `json:"commit"`
	BuildDate   string `json:"build_date"`
	BuildNumber string `json:"build_number"`
	GoVersion   string `json:"go_version"`
}
