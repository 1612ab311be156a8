package config

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"

	apperrors "github.com/darkkaiser/long-process/internal/pkg/errors"
	"github.com/darkkaiser/long-process/pkg/cronx"
	"github.com/go-playground/validator/v10"
)

// 예: 123456789:ABC-DEF1234ghIkl-zyx57W2v1u123ew11
var telegramBotTokenRegex = regexp.MustCompile(`^\d{3,20}:[a-zA-Z0-9_-]{30,50}$`)

func newValidator() *validator.Validate {
	v := validator.New()

	// 에러 메시지에 구조체 필드명 대신 JSON 키를 사용한다.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	if err := v.RegisterValidation("telegram_bot_token", func(fl validator.FieldLevel) bool {
		return telegramBotTokenRegex.MatchString(fl.Field().String())
	}); err != nil {
		panic(fmt.Sprintf("'telegram_bot_token' 유효성 검사 함수 등록에 실패했습니다: %v", err))
	}

	return v
}

func (c *AppConfig) validate() error {
	v := newValidator()

	if err := checkStruct(v, c, "설정"); err != nil {
		return err
	}

	if err := checkUniqueField(v, c.Notifier.Telegrams, "ID", "텔레그램 Notifier"); err != nil {
		return err
	}

	if c.Scheduler.Runnable {
		if err := cronx.Validate(c.Scheduler.TimeSpec); err != nil {
			return apperrors.Wrap(err, apperrors.InvalidInput, "스케줄러(scheduler.time_spec) 설정이 올바르지 않습니다")
		}
	}

	return nil
}

// checkStruct 첫 번째 검증 실패 항목을 JSON 경로와 함께 보고합니다.
func checkStruct(v *validator.Validate, s any, contextName string) error {
	err := v.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if apperrors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return apperrors.Newf(apperrors.InvalidInput, "%s 값이 올바르지 않습니다: %s (조건: %s)", contextName, jsonPath(fe.Namespace()), constraint(fe))
	}

	return apperrors.Wrapf(err, apperrors.InvalidInput, "%s 유효성 검증에 실패했습니다", contextName)
}

// checkUniqueField 슬라이스 원소들의 fieldName 값이 서로 다른지 검사합니다.
func checkUniqueField(v *validator.Validate, data any, fieldName, contextName string) error {
	if err := v.Var(data, "unique="+fieldName); err != nil {
		return apperrors.Newf(apperrors.InvalidInput, "중복된 %s %s가 존재합니다", contextName, fieldName)
	}
	return nil
}

// jsonPath "AppConfig.process.steps" -> "process.steps"
func jsonPath(namespace string) string {
	if _, rest, ok := strings.Cut(namespace, "."); ok {
		return rest
	}
	return namespace
}

func constraint(fe validator.FieldError) string {
	if fe.Param() == "" {
		return fe.Tag()
	}
	return fe.Tag() + "=" + fe.Param()
}
