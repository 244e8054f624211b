package sys

import "fmt"

// Result is a raw status code returned by every vendor entry point.
//
// The code space is partitioned by the high bits: 0x0xxxxxxx success and
// informational, 0x1xxxxxxx device state, 0x4xxxxxxx warnings and
// 0x8xxxxxxx errors.
type Result uint32

const (
	ResultOK    Result = 0x00000000
	ResultEmpty Result = 0x00000001
	ResultRetry Result = 0x00000002

	ResultIdle          Result = 0x10000000
	ResultConnecting    Result = 0x10000001
	ResultConnected     Result = 0x10000002
	ResultStarting      Result = 0x10000003
	ResultRunning       Result = 0x10000004
	ResultStopping      Result = 0x10000005
	ResultDisconnecting Result = 0x10000006

	ResultWarning              Result = 0x40000000
	ResultWarningValueAdjusted Result = 0x40000001
	ResultWarningValueDisabled Result = 0x40000002

	ResultError                 Result = 0x80000000
	ResultErrorNotInitialized   Result = 0x80000001
	ResultErrorNotFound         Result = 0x80000002
	ResultErrorBusy             Result = 0x80000003
	ResultErrorNotOpen          Result = 0x80000004
	ResultErrorNotConnected     Result = 0x80000005
	ResultErrorInvalidConfig    Result = 0x80000006
	ResultErrorBufferSize       Result = 0x80000007
	ResultErrorInvalidChannel   Result = 0x80000008
	ResultErrorInvalidParameter Result = 0x80000009
	ResultErrorInvalidSize      Result = 0x8000000a
	ResultErrorMissingPathsFile Result = 0x8000000b
	ResultErrorValueInvalid     Result = 0x8000000c
	ResultErrorValueMalformed   Result = 0x8000000d
)

// IsWarning reports whether r is in the advisory warning range. Calls that
// return a warning have still performed their operation.
func IsWarning(r Result) bool {
	return r&0xf0000000 == 0x40000000
}

// IsState reports whether r encodes a live device state rather than an
// operation outcome.
func IsState(r Result) bool {
	return r&0xf0000000 == 0x10000000
}

// IsError reports whether r is in the hard error range.
func IsError(r Result) bool {
	return r&0x80000000 != 0
}

var resultNames = map[Result]string{
	ResultOK:    "ok",
	ResultEmpty: "empty",
	ResultRetry: "retry",

	ResultIdle:          "idle",
	ResultConnecting:    "connecting",
	ResultConnected:     "connected",
	ResultStarting:      "starting",
	ResultRunning:       "running",
	ResultStopping:      "stopping",
	ResultDisconnecting: "disconnecting",

	ResultWarning:              "warning",
	ResultWarningValueAdjusted: "warning: value adjusted",
	ResultWarningValueDisabled: "warning: value disabled",

	ResultError:                 "error",
	ResultErrorNotInitialized:   "not initialized",
	ResultErrorNotFound:         "not found",
	ResultErrorBusy:             "busy",
	ResultErrorNotOpen:          "not open",
	ResultErrorNotConnected:     "not connected",
	ResultErrorInvalidConfig:    "invalid config",
	ResultErrorBufferSize:       "buffer size",
	ResultErrorInvalidChannel:   "invalid channel",
	ResultErrorInvalidParameter: "invalid parameter",
	ResultErrorInvalidSize:      "invalid size",
	ResultErrorMissingPathsFile: "missing paths file",
	ResultErrorValueInvalid:     "value invalid",
	ResultErrorValueMalformed:   "value malformed",
}

// Known reports whether r is a documented status code.
func Known(r Result) bool {
	_, ok := resultNames[r]
	return ok
}

func (r Result) String() string {
	if s, ok := resultNames[r]; ok {
		return s
	}
	return fmt.Sprintf("undocumented status 0x%08x", uint32(r))
}
