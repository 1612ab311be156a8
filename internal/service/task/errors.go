package task

import (
	apperrors "github.com/darkkaiser/long-process/internal/pkg/errors"
)

// newStepPanicError 작업 단계에서 복구된 패닉을 에러로 변환합니다.
func newStepPanicError(step int, v any) error {
	return apperrors.Newf(apperrors.Internal, "%d단계 실행 중 패닉이 발생하여 작업이 중단되었습니다 (상세: %v)", step, v)
}
