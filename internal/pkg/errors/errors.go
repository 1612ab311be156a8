// Package errors 타입 분류와 원인 체이닝을 지원하는 애플리케이션 에러를 제공합니다.
//
// 모든 에러는 ErrorType으로 분류되며, 생성 시점의 호출 스택을 함께 기록합니다.
//
//	err := errors.New(errors.Conflict, "프로세스가 이미 실행 중입니다")
//	err = errors.Wrap(err, errors.Internal, "실행 요청 처리 실패")
//
//	if errors.Is(err, errors.Conflict) { ... }
//	errors.UnderlyingType(err) // Conflict
//
// 외부 라이브러리 에러를 감쌀 때는 발생 계층에 맞는 타입을 고릅니다.
// 설정/입력 계층은 InvalidInput, 인프라 계층은 System, Timeout, Unavailable을 사용합니다.
package errors

import (
	"errors"
	"fmt"
	"io"
	"strings"
)

// AppError 애플리케이션 전역에서 사용하는 표준 에러입니다.
type AppError struct {
	errType ErrorType
	message string
	cause   error
	stack   []StackFrame
}

func newAppError(errType ErrorType, message string, cause error) *AppError {
	return &AppError{
		errType: errType,
		message: message,
		cause:   cause,
		stack:   captureStack(callerSkip),
	}
}

// Type 에러의 타입을 반환합니다.
func (e *AppError) Type() ErrorType { return e.errType }

// Message 원인 에러를 제외한 메시지를 반환합니다.
func (e *AppError) Message() string { return e.message }

// Stack 에러 생성 시점의 호출 스택을 반환합니다.
func (e *AppError) Stack() []StackFrame { return e.stack }

func (e *AppError) Error() string {
	if e.cause == nil {
		return fmt.Sprintf("[%s] %s", e.errType, e.message)
	}
	return fmt.Sprintf("[%s] %s: %v", e.errType, e.message, e.cause)
}

func (e *AppError) Unwrap() error { return e.cause }

// Format %+v 사용 시 원인 체인과 스택 트레이스를 함께 출력합니다.
// 스택은 체인의 끝(원인 없음) 또는 외부 에러를 감싼 지점에서만 출력됩니다.
func (e *AppError) Format(s fmt.State, verb rune) {
	switch {
	case verb == 'v' && s.Flag('+'):
		fmt.Fprintf(s, "[%s] %s", e.errType, e.message)

		var inner *AppError
		if e.cause == nil || !errors.As(e.cause, &inner) {
			e.writeStack(s)
		}

		if e.cause != nil {
			fmt.Fprint(s, "\nCaused by:\n")
			if f, ok := e.cause.(fmt.Formatter); ok {
				f.Format(s, verb)
			} else {
				fmt.Fprintf(s, "\t%v", e.cause)
			}
		}
	case verb == 'q':
		fmt.Fprintf(s, "%q", e.Error())
	default:
		io.WriteString(s, e.Error())
	}
}

func (e *AppError) writeStack(w io.Writer) {
	if len(e.stack) == 0 {
		return
	}

	fmt.Fprint(w, "\nStack trace:")
	for _, f := range e.stack {
		fn := f.Function
		if i := strings.LastIndex(fn, "/"); i >= 0 {
			fn = fn[i+1:]
		}
		fmt.Fprintf(w, "\n\t%s:%d %s", f.File, f.Line, fn)
	}
}

// New 새 에러를 생성합니다.
func New(errType ErrorType, message string) error {
	return newAppError(errType, message, nil)
}

// Newf 포맷 문자열로 새 에러를 생성합니다.
func Newf(errType ErrorType, format string, args ...any) error {
	return newAppError(errType, fmt.Sprintf(format, args...), nil)
}

// Wrap err에 컨텍스트를 덧붙입니다. err이 nil이면 nil을 반환합니다.
func Wrap(err error, errType ErrorType, message string) error {
	if err == nil {
		return nil
	}
	return newAppError(errType, message, err)
}

// Wrapf 포맷 문자열로 err에 컨텍스트를 덧붙입니다.
func Wrapf(err error, errType ErrorType, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return newAppError(errType, fmt.Sprintf(format, args...), err)
}

// Is 에러 체인에 errType 타입의 AppError가 있는지 확인합니다.
func Is(err error, errType ErrorType) bool {
	for ; err != nil; err = errors.Unwrap(err) {
		if appErr, ok := err.(*AppError); ok && appErr.errType == errType {
			return true
		}
	}
	return false
}

// As 표준 errors.As의 별칭입니다.
func As(err error, target any) bool {
	return errors.As(err, target)
}

// RootCause 체인의 가장 안쪽 에러를 반환합니다.
func RootCause(err error) error {
	for err != nil {
		next := errors.Unwrap(err)
		if next == nil {
			return err
		}
		err = next
	}
	return nil
}

// UnderlyingType 체인에서 가장 안쪽에 있는 AppError의 타입을 반환합니다.
// 체인에 AppError가 없으면 Unknown입니다.
func UnderlyingType(err error) ErrorType {
	t := Unknown
	for ; err != nil; err = errors.Unwrap(err) {
		if appErr, ok := err.(*AppError); ok {
			t = appErr.errType
		}
	}
	return t
}
