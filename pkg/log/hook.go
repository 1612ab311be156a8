package log

import (
	"fmt"
	"io"
	"os"
	"sync"
)

// hook 로그 엔트리를 레벨에 따라 각 Writer로 분배합니다.
//
//   - console: 모든 레벨
//   - critical: ERROR 이상 (main에도 함께 기록)
//   - verbose: DEBUG 이하 (설정된 경우 main에는 기록하지 않음)
//   - main: 나머지 전부
type hook struct {
	main     io.Writer
	critical io.Writer
	verbose  io.Writer
	console  io.Writer

	formatter Formatter

	mu     sync.RWMutex
	closed bool
}

func (h *hook) Levels() []Level {
	return AllLevels
}

func (h *hook) Fire(entry *Entry) error {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if h.closed {
		return nil
	}

	msg, err := h.formatter.Format(entry)
	if err != nil {
		return err
	}

	// 콘솔 출력 실패는 로깅 전체를 실패로 보지 않는다.
	if h.console != nil {
		if _, err := h.console.Write(msg); err != nil {
			fmt.Fprintf(os.Stderr, "[LOG-SYSTEM-WARN] 콘솔 쓰기 실패: %v\n", err)
		}
	}

	var firstErr error
	write := func(w io.Writer, name string) {
		if w == nil {
			return
		}
		if _, err := w.Write(msg); err != nil {
			if firstErr == nil {
				firstErr = err
			}
			fmt.Fprintf(os.Stderr, "[LOG-SYSTEM-FAILURE] %s 로그 파일 쓰기 실패: %v\n", name, err)
		}
	}

	switch {
	case entry.Level <= ErrorLevel:
		write(h.critical, "Critical")
		write(h.main, "Main")
	case entry.Level >= DebugLevel && h.verbose != nil:
		write(h.verbose, "Verbose")
	default:
		write(h.main, "Main")
	}

	return firstErr
}

// Close 이후의 모든 Fire 호출을 무시하도록 전환합니다. 진행 중인 Fire가 끝날 때까지 대기합니다.
func (h *hook) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.closed = true

	return nil
}
