// Package testutil 여러 패키지의 테스트에서 공유하는 네트워크 도우미입니다.
package testutil

import (
	"fmt"
	"net"
	"time"
)

// GetFreePort 지금 비어 있는 로컬 TCP 포트를 반환합니다.
func GetFreePort() (int, error) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return 0, err
	}
	defer l.Close()

	return l.Addr().(*net.TCPAddr).Port, nil
}

// WaitForServer port에 TCP 연결이 될 때까지 timeout 동안 기다립니다.
func WaitForServer(port int, timeout time.Duration) error {
	address := fmt.Sprintf("127.0.0.1:%d", port)

	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		conn, err := net.DialTimeout("tcp", address, 100*time.Millisecond)
		if err == nil {
			conn.Close()
			return nil
		}
		time.Sleep(10 * time.Millisecond)
	}

	return fmt.Errorf("%v 안에 %d 포트에서 서버가 시작되지 않았습니다", timeout, port)
}
