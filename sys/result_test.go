package sys

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResultPartitions(t *testing.T) {
	tests := []struct {
		r                       Result
		warning, state, isError bool
	}{
		{ResultOK, false, false, false},
		{ResultEmpty, false, false, false},
		{ResultRetry, false, false, false},
		{ResultIdle, false, true, false},
		{ResultDisconnecting, false, true, false},
		{ResultWarning, true, false, false},
		{ResultWarningValueDisabled, true, false, false},
		{ResultError, false, false, true},
		{ResultErrorValueMalformed, false, false, true},
	}
	for _, tc := range tests {
		t.Run(tc.r.String(), func(t *testing.T) {
			assert.Equal(t, tc.warning, IsWarning(tc.r))
			assert.Equal(t, tc.state, IsState(tc.r))
			assert.Equal(t, tc.isError, IsError(tc.r))
		})
	}
}

func TestResultString(t *testing.T) {
	assert.Equal(t, "ok", ResultOK.String())
	assert.Equal(t, "busy", ResultErrorBusy.String())
	assert.Equal(t, "warning: value adjusted", ResultWarningValueAdjusted.String())
	assert.Equal(t, "undocumented status 0x8000ffff", Result(0x8000ffff).String())
}

func TestKnown(t *testing.T) {
	assert.True(t, Known(ResultOK))
	assert.True(t, Known(ResultErrorMissingPathsFile))
	assert.False(t, Known(Result(0x8000ffff)))
	assert.False(t, Known(Result(0x20000000)))
}
