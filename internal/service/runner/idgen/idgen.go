// Package idgen 시간 순으로 정렬되는 실행 인스턴스 ID 생성기를 제공합니다.
package idgen

import (
	"sync/atomic"
	"time"

	"github.com/darkkaiser/long-process/internal/service/contract"
)

// ASCII 순서(0-9, A-Z, a-z)를 따르므로 생성된 ID의 사전순 정렬이 생성 순서와 대략 일치한다.
const base62Chars = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

const seqWidth = 6

// Generator [나노초 타임스탬프(Base62)][시퀀스(Base62, 6자리)] 형식의 ID를 생성합니다.
// 예: "2Xk9pL3m000001"
type Generator struct {
	counter atomic.Uint32
	now     func() time.Time
}

// New contract.IDGenerator를 구현합니다.
func (g *Generator) New() contract.InstanceID {
	now := time.Now
	if g.now != nil {
		now = g.now
	}

	b := make([]byte, 0, 18)
	b = appendBase62(b, uint64(now().UnixNano()), 0)
	b = appendBase62(b, uint64(g.counter.Add(1)), seqWidth)

	return contract.InstanceID(b)
}

// appendBase62 v를 Base62로 인코딩하여 dst에 덧붙입니다. width보다 짧으면 앞을 '0'으로 채웁니다.
func appendBase62(dst []byte, v uint64, width int) []byte {
	var buf [16]byte
	i := len(buf)
	for {
		i--
		buf[i] = base62Chars[v%62]
		v /= 62
		if v == 0 {
			break
		}
	}
	for len(buf)-i < width {
		i--
		buf[i] = base62Chars[0]
	}

	return append(dst, buf[i:]...)
}
