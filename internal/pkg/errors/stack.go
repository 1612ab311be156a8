package errors

import (
	"path/filepath"
	"runtime"
)

// callerSkip runtime.Callers, captureStack, 그리고 공개 생성 함수(New/Wrap 등)를 건너뛰어
// 에러를 만든 호출 지점이 첫 번째 프레임이 되도록 합니다.
const callerSkip = 4

// maxStackDepth 에러 하나에 기록할 최대 프레임 수입니다.
const maxStackDepth = 5

// StackFrame 호출 스택의 한 프레임입니다.
type StackFrame struct {
	File     string
	Line     int
	Function string
}

func captureStack(skip int) []StackFrame {
	pcs := make([]uintptr, maxStackDepth)
	n := runtime.Callers(skip, pcs)
	if n == 0 {
		return nil
	}

	frames := make([]StackFrame, 0, n)
	it := runtime.CallersFrames(pcs[:n])
	for {
		f, more := it.Next()
		frames = append(frames, StackFrame{
			File:     filepath.Base(f.File),
			Line:     f.Line,
			Function: f.Function,
		})
		if !more {
			return frames
		}
	}
}
