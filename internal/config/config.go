package config

import (
	"errors"
	"io/fs"
	"strings"
	"time"

	apperrors "github.com/darkkaiser/long-process/internal/pkg/errors"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

const (
	// AppName 애플리케이션 식별자입니다.
	AppName = "long-process"

	// DefaultFilename 실행 인자로 경로가 주어지지 않았을 때 읽는 설정 파일입니다.
	DefaultFilename = AppName + ".json"

	// EnvPrefix 설정값을 덮어쓰는 환경 변수의 접두사입니다.
	// 계층은 이중 언더스코어로 구분합니다. 예: LONG_PROCESS_PROCESS__STEP_DELAY=1s -> process.step_delay
	EnvPrefix = "LONG_PROCESS_"
)

// 프로세스 기본값
const (
	DefaultSteps     = 10
	DefaultStepDelay = 500 * time.Millisecond

	DefaultAPIListenPort = 8080
)

// Default 모든 항목이 기본값으로 채워진 설정을 반환합니다.
func Default() AppConfig {
	return AppConfig{
		Process: ProcessConfig{
			Steps:     DefaultSteps,
			StepDelay: DefaultStepDelay,
		},
		Notifier: NotifierConfig{
			Log: LogNotifierConfig{Usable: true},
		},
		API: APIConfig{
			ListenPort: DefaultAPIListenPort,
		},
		Console: ConsoleConfig{Enabled: true},
	}
}

// Load 기본 설정 파일을 읽습니다. 기본 설정 파일이 없으면 기본값과 환경 변수만으로 설정을 구성합니다.
func Load() (*AppConfig, error) {
	return load(DefaultFilename, true)
}

// LoadWithFile filename의 설정 파일을 읽습니다. 파일이 없으면 에러입니다.
func LoadWithFile(filename string) (*AppConfig, error) {
	return load(filename, false)
}

func load(filename string, optional bool) (*AppConfig, error) {
	k := koanf.New(".")

	// 1. 기본값
	if err := k.Load(structs.Provider(Default(), "json"), nil); err != nil {
		return nil, apperrors.Wrap(err, apperrors.System, "기본 설정 로드에 실패했습니다")
	}

	// 2. JSON 설정 파일
	if err := k.Load(file.Provider(filename), json.Parser()); err != nil {
		switch {
		case errors.Is(err, fs.ErrNotExist) && optional:
		case errors.Is(err, fs.ErrNotExist):
			return nil, apperrors.Wrapf(err, apperrors.NotFound, "설정 파일을 찾을 수 없습니다: '%s'", filename)
		default:
			return nil, apperrors.Wrapf(err, apperrors.InvalidInput, "설정 파일 로드 중 오류가 발생했습니다: '%s'", filename)
		}
	}

	// 3. 환경 변수 (최우선)
	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, apperrors.Wrap(err, apperrors.System, "환경 변수 로드에 실패했습니다")
	}

	var appConfig AppConfig
	if err := k.UnmarshalWithConf("", &appConfig, koanf.UnmarshalConf{
		Tag: "json",
		DecoderConfig: &mapstructure.DecoderConfig{
			DecodeHook:       mapstructure.StringToTimeDurationHookFunc(),
			ErrorUnused:      true,
			WeaklyTypedInput: true,
			TagName:          "json",
			Result:           &appConfig,
		},
	}); err != nil {
		return nil, apperrors.Wrap(err, apperrors.InvalidInput, "설정 데이터를 구조체로 변환하는데 실패했습니다")
	}

	if err := appConfig.validate(); err != nil {
		return nil, apperrors.Wrapf(err, apperrors.InvalidInput, "설정('%s')의 유효성 검증에 실패했습니다", filename)
	}

	return &appConfig, nil
}

// envKey LONG_PROCESS_API__LISTEN_PORT -> api.listen_port
func envKey(s string) string {
	s = strings.TrimPrefix(s, EnvPrefix)
	return strings.ReplaceAll(strings.ToLower(s), "__", ".")
}
