package cronx

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		spec    string
		isValid bool
	}{
		{"6필드", "0 */5 * * * *", true},
		{"범위와 요일", "0 0-30/5 9-17 * * MON-FRI", true},
		{"앞뒤 공백", " 0 * * * * * ", true},
		{"@daily", "@daily", true},
		{"@every", "@every 1h30m", true},
		{"빈 문자열", "", false},
		{"공백만", "   ", false},
		{"5필드", "*/5 * * * *", false},
		{"잘못된 값", "invalid", false},
		{"범위 초과", "60 * * * * *", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := Validate(tt.spec)
			if tt.isValid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestStandardParser_Next(t *testing.T) {
	t.Parallel()

	sched, err := StandardParser().Parse("30 0 * * * *")
	require.NoError(t, err)

	from := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2024, 1, 1, 10, 0, 30, 0, time.UTC), sched.Next(from))
}
