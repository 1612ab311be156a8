package log

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	defaultDir        = "logs"
	defaultMaxSizeMB  = 100
	defaultMaxBackups = 20
)

var (
	setupOnce      sync.Once
	globalCloser   io.Closer
	globalSetupErr error
)

// Setup 전역 로깅 시스템을 초기화합니다.
//
// 프로세스 생명주기 동안 한 번만 실행되며, 이후 호출은 최초 호출의 결과를 그대로 반환합니다.
// 반환된 Closer는 애플리케이션 종료 시 반드시 닫아야 합니다.
func Setup(opts Options) (io.Closer, error) {
	setupOnce.Do(func() {
		globalCloser, globalSetupErr = setup(opts)
	})

	return globalCloser, globalSetupErr
}

func setup(opts Options) (io.Closer, error) {
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("유효하지 않은 로그 설정: %w", err)
	}

	dir := opts.Dir
	if dir == "" {
		dir = defaultDir
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("로그 디렉토리 생성 실패: %w", err)
	}

	level := opts.Level
	if level == PanicLevel {
		level = InfoLevel
	}

	newFile := func(suffix string) *lumberjack.Logger {
		return &lumberjack.Logger{
			Filename:   filepath.Join(dir, opts.Name+suffix+".log"),
			MaxSize:    orDefault(opts.MaxSizeMB, defaultMaxSizeMB),
			MaxBackups: orDefault(opts.MaxBackups, defaultMaxBackups),
			MaxAge:     opts.MaxAge,
			LocalTime:  true,
		}
	}

	h := &hook{formatter: newTextFormatter(opts.CallerPathPrefix)}
	c := &closer{hook: h}

	mainFile := newFile("")
	h.main = mainFile
	c.closers = append(c.closers, mainFile)

	if opts.EnableCriticalLog {
		f := newFile(".critical")
		h.critical = f
		c.closers = append(c.closers, f)
	}
	if opts.EnableVerboseLog {
		f := newFile(".verbose")
		h.verbose = f
		c.closers = append(c.closers, f)
	}
	if opts.EnableConsoleLog {
		h.console = os.Stdout
	}

	// 실제 출력은 모두 hook이 담당하므로 기본 출력과 포맷팅은 비활성화한다.
	logrus.SetOutput(io.Discard)
	logrus.SetFormatter(&silentFormatter{})
	logrus.SetLevel(level)
	logrus.SetReportCaller(opts.ReportCaller)
	logrus.AddHook(h)

	// Fatal 로그로 프로세스가 종료되기 직전에 파일 버퍼를 비운다.
	logrus.RegisterExitHandler(func() {
		_ = c.Close()
	})

	return c, nil
}

func newTextFormatter(callerPathPrefix string) *logrus.TextFormatter {
	return &logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
		CallerPrettyfier: func(frame *runtime.Frame) (string, string) {
			fn := frame.Function + "(line:" + strconv.Itoa(frame.Line) + ")"
			if callerPathPrefix != "" {
				if cut, ok := strings.CutPrefix(fn, callerPathPrefix); ok {
					fn = "..." + cut
				}
			}
			return fn, ""
		},
	}
}

func orDefault(v, def int) int {
	if v == 0 {
		return def
	}
	return v
}

// silentFormatter logrus가 io.Discard로 보낼 출력을 포맷팅하지 않도록 합니다.
type silentFormatter struct{}

func (silentFormatter) Format(*logrus.Entry) ([]byte, error) {
	return nil, nil
}
