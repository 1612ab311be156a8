package contract

import (
	"context"
	"time"
)

// ProcessStatus 프로세스 실행 상태의 스냅샷입니다.
type ProcessStatus struct {
	State    string `json:"state"`
	Progress int    `json:"progress"`
	Steps    int    `json:"steps"`

	CanStart        bool `json:"can_start"`
	CanCancel       bool `json:"can_cancel"`
	CancelRequested bool `json:"cancel_requested"`

	// 마지막(또는 현재) 실행 정보. 한 번도 실행되지 않았으면 비어 있습니다.
	InstanceID InstanceID    `json:"instance_id,omitempty"`
	RunBy      RunBy         `json:"run_by"`
	StartedAt  time.Time     `json:"started_at,omitzero"`
	Elapsed    time.Duration `json:"elapsed_ns"`
}

// ProcessSubmitter 프로세스 시작을 요청합니다.
type ProcessSubmitter interface {
	// Submit 프로세스를 시작합니다. 이미 실행 중이면 Conflict 타입의 에러를 반환합니다.
	Submit(ctx context.Context, runBy RunBy) error
}

// ProcessCanceler 실행 중인 프로세스의 취소를 요청합니다.
type ProcessCanceler interface {
	// Cancel 취소를 요청합니다. 실행 중인 프로세스가 없으면 Conflict 타입의 에러를 반환하며,
	// 이미 취소가 요청된 경우에는 nil을 반환합니다.
	Cancel(ctx context.Context) error
}

// ProcessController 프로세스를 시작/취소하고 상태를 조회하는 트리거(콘솔, API, 스케줄러)용 인터페이스입니다.
type ProcessController interface {
	ProcessSubmitter
	ProcessCanceler

	// Status 현재 상태를 반환합니다.
	Status() ProcessStatus

	// Watch 상태 또는 진행률이 바뀔 때마다 fn을 호출합니다.
	Watch(fn func(ProcessStatus)) (unsubscribe func())
}
