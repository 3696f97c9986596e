package errors

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorCodes(t *testing.T) {
	codes := []string{
		ErrConfig,
		ErrCollect,
		ErrParse,
		ErrReport,
		ErrExec,
	}

	for _, code := range codes {
		assert.NotEmpty(t, code, "error code should not be empty")
	}

	// Verify codes are unique
	seen := make(map[string]bool)
	for _, code := range codes {
		assert.False(t, seen[code], "error code %q should be unique", code)
		seen[code] = true
	}
}

func TestNew(t *testing.T) {
	tests := []struct {
		name       string
		code       string
		message    string
		suggestion string
	}{
		{
			name:       "config error",
			code:       ErrConfig,
			message:    "Invalid configuration in .patchmon.yaml",
			suggestion: "Check your configuration file syntax",
		},
		{
			name:       "parse error",
			code:       ErrParse,
			message:    "Malformed line in patch_timing_git.log",
			suggestion: "Each line must contain a single duration in seconds",
		},
		{
			name:       "report error",
			code:       ErrReport,
			message:    "Cannot write report file",
			suggestion: "Check that the results directory is writable",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := New(tt.code, tt.message, tt.suggestion)
			require.NotNil(t, err)
			assert.Equal(t, tt.code, err.Code)
			assert.Equal(t, tt.message, err.Message)
			assert.Equal(t, tt.suggestion, err.Suggestion)
			assert.Nil(t, err.Cause)
		})
	}
}

func TestErrorFormat(t *testing.T) {
	err := New(ErrReport, "Cannot write report file", "Check directory permissions")
	msg := err.Error()

	assert.True(t, strings.HasPrefix(msg, "✗ Cannot write report file"))
	assert.Contains(t, msg, "Check directory permissions")
}

func TestWrap(t *testing.T) {
	cause := errors.New("exit status 127")
	err := Wrap(cause, "Metrics command failed")

	assert.Equal(t, ErrCollect, err.Code)
	assert.Equal(t, "Metrics command failed", err.Message)
	assert.Equal(t, cause, err.Cause)
	assert.Contains(t, err.Error(), "exit status 127")
}

func TestWrapWithCode(t *testing.T) {
	cause := errors.New("permission denied")
	err := WrapWithCode(cause, ErrReport, "Cannot write report", "Check permissions")

	assert.Equal(t, ErrReport, err.Code)
	assert.Equal(t, cause, errors.Unwrap(err))
}

func TestIsCode(t *testing.T) {
	err := New(ErrParse, "bad line", "")

	assert.True(t, IsCode(err, ErrParse))
	assert.False(t, IsCode(err, ErrConfig))
	assert.False(t, IsCode(nil, ErrParse))
	assert.False(t, IsCode(errors.New("plain"), ErrParse))
}

func TestIsCodeWrapped(t *testing.T) {
	inner := New(ErrParse, "bad line", "")
	outer := WrapWithCode(inner, ErrCollect, "tick failed", "")

	// errors.As finds the outermost structured error
	assert.True(t, IsCode(outer, ErrCollect))
}
