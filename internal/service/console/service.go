// Package console 표준 입력의 한 줄 명령으로 프로세스를 제어하고 진행 상황을 출력합니다.
package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	apperrors "github.com/darkkaiser/long-process/internal/pkg/errors"
	"github.com/darkkaiser/long-process/internal/service/contract"
	applog "github.com/darkkaiser/long-process/pkg/log"
)

const component = "console.service"

const (
	cmdStart  = "start"
	cmdCancel = "cancel"
	cmdStatus = "status"
	cmdQuit   = "quit"
	cmdExit   = "exit"
	cmdHelp   = "help"
)

const usage = "사용 가능한 명령: start, cancel, status, quit"

// Service 입력에서 명령을 읽어 ProcessController로 전달합니다.
//
// quit 명령을 받거나 입력이 끝나면 Done 채널이 닫힙니다.
type Service struct {
	controller contract.ProcessController

	in  io.Reader
	out io.Writer
	// outMu Watch 콜백과 명령 처리 결과가 같은 Writer에 섞여 쓰이지 않도록 한다.
	outMu sync.Mutex

	lastState    string
	lastProgress int

	done     chan struct{}
	doneOnce sync.Once

	running   bool
	runningMu sync.Mutex
}

func NewService(controller contract.ProcessController, in io.Reader, out io.Writer) *Service {
	if controller == nil {
		panic("ProcessController는 필수입니다")
	}

	return &Service{
		controller: controller,

		in:  in,
		out: out,

		lastProgress: -1,

		done: make(chan struct{}),
	}
}

// Done quit 명령이나 입력 종료(EOF)로 콘솔이 끝나면 닫힙니다.
func (s *Service) Done() <-chan struct{} {
	return s.done
}

func (s *Service) Start(serviceStopCtx context.Context, serviceStopWG *sync.WaitGroup) error {
	s.runningMu.Lock()
	defer s.runningMu.Unlock()

	applog.WithComponent(component).Info("Console 서비스 시작중...")

	if s.running {
		defer serviceStopWG.Done()
		applog.WithComponent(component).Warn("Console 서비스가 이미 시작됨!!!")
		return nil
	}

	s.running = true

	unsubscribe := s.controller.Watch(s.onStatusChanged)

	// 입력 읽기는 취소할 수 없으므로 별도 고루틴에서 수행하고, 서비스 루프는 컨텍스트 취소로 종료한다.
	lineC := make(chan string)
	go s.readLines(serviceStopCtx, lineC)

	go s.run(serviceStopCtx, serviceStopWG, lineC, unsubscribe)

	s.println(usage)

	applog.WithComponent(component).Info("Console 서비스 시작됨")

	return nil
}

func (s *Service) readLines(ctx context.Context, lineC chan<- string) {
	defer close(lineC)

	scanner := bufio.NewScanner(s.in)
	for scanner.Scan() {
		select {
		case lineC <- scanner.Text():
		case <-ctx.Done():
			return
		}
	}

	if err := scanner.Err(); err != nil {
		applog.WithComponentAndFields(component, applog.Fields{
			"error": err,
		}).Error("콘솔 입력을 읽는 중 오류가 발생하였습니다")
	}
}

func (s *Service) run(serviceStopCtx context.Context, serviceStopWG *sync.WaitGroup, lineC <-chan string, unsubscribe func()) {
	defer serviceStopWG.Done()
	defer unsubscribe()

	defer func() {
		s.runningMu.Lock()
		s.running = false
		s.runningMu.Unlock()

		applog.WithComponent(component).Info("Console 서비스 중지됨")
	}()

	for {
		select {
		case line, ok := <-lineC:
			if !ok {
				applog.WithComponent(component).Debug("콘솔 입력이 종료되었습니다")
				s.quit()
				return
			}

			if !s.handle(serviceStopCtx, line) {
				s.quit()
				return
			}

		case <-serviceStopCtx.Done():
			applog.WithComponent(component).Info("Console 서비스 중지중...")
			return
		}
	}
}

// handle 명령 하나를 처리합니다. 콘솔을 종료해야 하면 false를 반환합니다.
func (s *Service) handle(ctx context.Context, line string) bool {
	command := strings.ToLower(strings.TrimSpace(line))

	applog.WithComponentAndFields(component, applog.Fields{
		"command": command,
	}).Debug("콘솔 명령 수신")

	switch command {
	case "":

	case cmdStart:
		if err := s.controller.Submit(ctx, contract.RunByUser); err != nil {
			s.printError(err)
		}

	case cmdCancel:
		if err := s.controller.Cancel(ctx); err != nil {
			s.printError(err)
		}

	case cmdStatus:
		s.println(formatStatus(s.controller.Status()))

	case cmdQuit, cmdExit:
		return false

	case cmdHelp:
		s.println(usage)

	default:
		s.println(fmt.Sprintf("알 수 없는 명령입니다: %q\n%s", command, usage))
	}

	return true
}

func (s *Service) quit() {
	s.doneOnce.Do(func() { close(s.done) })
}

// onStatusChanged 상태 또는 진행률이 이전 출력과 다를 때만 출력합니다.
func (s *Service) onStatusChanged(status contract.ProcessStatus) {
	s.outMu.Lock()
	defer s.outMu.Unlock()

	if status.State != s.lastState {
		s.lastState = status.State
		s.lastProgress = status.Progress
		fmt.Fprintln(s.out, formatStatus(status))
		return
	}

	if status.Progress != s.lastProgress {
		s.lastProgress = status.Progress
		fmt.Fprintf(s.out, "진행률: %d%%\n", status.Progress)
	}
}

func (s *Service) println(message string) {
	s.outMu.Lock()
	defer s.outMu.Unlock()

	fmt.Fprintln(s.out, message)
}

func (s *Service) printError(err error) {
	message := err.Error()

	var appErr *apperrors.AppError
	if apperrors.As(err, &appErr) {
		message = appErr.Message()
	}

	s.println("오류: " + message)
}

func formatStatus(status contract.ProcessStatus) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "상태: %s, 진행률: %d%%", status.State, status.Progress)
	if status.CancelRequested {
		sb.WriteString(" (취소 요청됨)")
	}
	if !status.InstanceID.IsEmpty() {
		fmt.Fprintf(&sb, ", 실행 ID: %s, 요청: %s", status.InstanceID, status.RunBy)
	}

	return sb.String()
}
