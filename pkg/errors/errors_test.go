package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeEmptyNarrative, "narrative is empty")
	require.NotNil(t, err)
	assert.Equal(t, ErrCodeEmptyNarrative, err.Code)
	assert.Equal(t, "narrative is empty", err.Message)
	assert.NotEmpty(t, err.Stack)
	assert.Equal(t, "[MINE_001] narrative is empty", err.Error())
}

func TestErrorWithDetail(t *testing.T) {
	err := NewValidation("trial count must be positive").WithDetail("got -10")
	assert.Equal(t, "[COMMON_003] trial count must be positive: got -10", err.Error())

	// WithDetail must not mutate the receiver.
	base := NewValidation("base")
	_ = base.WithDetail("extra")
	assert.Empty(t, base.Detail)
}

func TestWithDetailOnNil(t *testing.T) {
	var err *AppError
	assert.Nil(t, err.WithDetail("detail"))
	assert.Nil(t, err.WithCause(errors.New("cause")))
}

func TestWrap(t *testing.T) {
	cause := fmt.Errorf("division by zero")
	err := Wrap(cause, ErrCodeNumericDegeneracy, "environmental weights degenerate")
	require.NotNil(t, err)
	assert.Equal(t, ErrCodeNumericDegeneracy, err.Code)
	assert.True(t, errors.Is(err, cause))
}

func TestWrapNil(t *testing.T) {
	assert.Nil(t, Wrap(nil, ErrCodeInternal, "never seen"))
}

func TestWrapPreservesCodeOnUnknown(t *testing.T) {
	inner := New(ErrCodeEmptyNarrative, "empty")
	outer := Wrap(inner, ErrCodeUnknown, "analysis aborted")
	assert.Equal(t, ErrCodeEmptyNarrative, outer.Code)
}

func TestIsCode(t *testing.T) {
	inner := New(ErrCodeOperatorFailed, "capability operator failed")
	outer := Wrap(inner, ErrCodeAnalysisFailed, "pipeline aborted")

	assert.True(t, IsCode(outer, ErrCodeAnalysisFailed))
	assert.True(t, IsCode(outer, ErrCodeOperatorFailed))
	assert.False(t, IsCode(outer, ErrCodeEmptyNarrative))
	assert.False(t, IsCode(nil, ErrCodeInternal))
}

func TestIsInputError(t *testing.T) {
	assert.True(t, IsInputError(New(ErrCodeEmptyNarrative, "empty")))
	assert.True(t, IsInputError(NewValidation("bad calibration")))
	assert.False(t, IsInputError(New(ErrCodeOperatorFailed, "op failed")))
	assert.False(t, IsInputError(nil))

	// Wrapped input errors are still input errors.
	wrapped := Wrap(New(ErrCodeEmptyNarrative, "empty"), ErrCodeAnalysisFailed, "aborted")
	assert.True(t, IsInputError(wrapped))
}

func TestGetCode(t *testing.T) {
	assert.Equal(t, CodeOK, GetCode(nil))
	assert.Equal(t, ErrCodeUnknown, GetCode(errors.New("plain")))
	assert.Equal(t, ErrCodeSimulationFailed, GetCode(New(ErrCodeSimulationFailed, "mc failed")))
}

func TestModuleForCode(t *testing.T) {
	assert.Equal(t, "MINE", ModuleForCode(ErrCodeEmptyNarrative))
	assert.Equal(t, "MODEL", ModuleForCode(ErrCodeNumericDegeneracy))
	assert.Equal(t, "ANALYSIS", ModuleForCode(ErrCodeAnalysisFailed))
	assert.Equal(t, "COMMON", ModuleForCode(ErrCodeInternal))
}

func TestDefaultMessageForCode(t *testing.T) {
	assert.Equal(t, "narrative text is empty or whitespace", DefaultMessageForCode(ErrCodeEmptyNarrative))
	assert.Equal(t, "unknown error", DefaultMessageForCode(ErrorCode("NOPE_123")))
}
