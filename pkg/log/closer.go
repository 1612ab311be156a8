package log

import (
	"errors"
	"io"
	"sync/atomic"
)

// closer hook을 먼저 닫아 로그 유입을 차단한 뒤 모든 로그 파일을 닫습니다.
// 여러 번 호출해도 안전합니다.
type closer struct {
	hook    *hook
	closers []io.Closer

	closed atomic.Bool
}

func (c *closer) Close() error {
	if !c.closed.CompareAndSwap(false, true) {
		return nil
	}

	if c.hook != nil {
		_ = c.hook.Close()
	}

	var errs error
	for _, cl := range c.closers {
		if s, ok := cl.(interface{ Sync() error }); ok {
			_ = s.Sync()
		}
		if err := cl.Close(); err != nil {
			errs = errors.Join(errs, err)
		}
	}

	return errs
}
