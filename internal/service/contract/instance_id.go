package contract

// InstanceID 프로세스 실행 한 번에 부여되는 고유 식별자입니다.
type InstanceID string

func (id InstanceID) IsEmpty() bool {
	return len(id) == 0
}

func (id InstanceID) String() string {
	return string(id)
}

// IDGenerator 실행 인스턴스 ID를 생성합니다. 동시에 호출되어도 안전해야 합니다.
type IDGenerator interface {
	New() InstanceID
}
