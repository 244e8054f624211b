package rtsa

import (
	"fmt"

	"github.com/sdrkit/rtsa/sys"
)

// Error wraps a vendor status code together with the operation that
// produced it. Use errors.Is against the package sentinels to test for a
// specific condition.
type Error struct {
	// Op is the wrapper operation that observed the status.
	Op string
	// Status is the raw code reported by the vendor library.
	Status sys.Result

	undocumented bool
}

func (e *Error) Error() string {
	msg := e.Status.String()
	if e.undocumented && sys.Known(e.Status) {
		msg = fmt.Sprintf("unexpected status %q (0x%08x)", msg, uint32(e.Status))
	}
	if e.Op != "" {
		return "rtsa: " + e.Op + ": " + msg
	}
	return "rtsa: " + msg
}

// Is matches errors by condition: two undocumented statuses match each
// other, documented statuses match on the exact code.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if t.undocumented {
		return e.undocumented
	}
	return !e.undocumented && e.Status == t.Status
}

// Sentinel errors, one per documented status condition.
var (
	// Informational.
	ErrEmpty = &Error{Status: sys.ResultEmpty}
	ErrRetry = &Error{Status: sys.ResultRetry}

	// Device-state conflicts: the operation is invalid for the hardware's
	// current state.
	ErrIdle          = &Error{Status: sys.ResultIdle}
	ErrConnecting    = &Error{Status: sys.ResultConnecting}
	ErrConnected     = &Error{Status: sys.ResultConnected}
	ErrStarting      = &Error{Status: sys.ResultStarting}
	ErrRunning       = &Error{Status: sys.ResultRunning}
	ErrStopping      = &Error{Status: sys.ResultStopping}
	ErrDisconnecting = &Error{Status: sys.ResultDisconnecting}

	// Hard errors.
	ErrFailed           = &Error{Status: sys.ResultError}
	ErrNotInitialized   = &Error{Status: sys.ResultErrorNotInitialized}
	ErrNotFound         = &Error{Status: sys.ResultErrorNotFound}
	ErrBusy             = &Error{Status: sys.ResultErrorBusy}
	ErrNotOpen          = &Error{Status: sys.ResultErrorNotOpen}
	ErrNotConnected     = &Error{Status: sys.ResultErrorNotConnected}
	ErrInvalidConfig    = &Error{Status: sys.ResultErrorInvalidConfig}
	ErrBufferSize       = &Error{Status: sys.ResultErrorBufferSize}
	ErrInvalidChannel   = &Error{Status: sys.ResultErrorInvalidChannel}
	ErrInvalidParameter = &Error{Status: sys.ResultErrorInvalidParameter}
	ErrInvalidSize      = &Error{Status: sys.ResultErrorInvalidSize}
	ErrMissingPathsFile = &Error{Status: sys.ResultErrorMissingPathsFile}
	ErrValueInvalid     = &Error{Status: sys.ResultErrorValueInvalid}
	ErrValueMalformed   = &Error{Status: sys.ResultErrorValueMalformed}

	// ErrUndocumented matches any status outside the documented code space.
	ErrUndocumented = &Error{undocumented: true}
)

// statusError maps a raw status to an error. Success and advisory warnings
// map to nil: a warning means the operation was performed, possibly with
// an adjusted value.
func statusError(op string, r sys.Result) error {
	if r == sys.ResultOK || sys.IsWarning(r) {
		return nil
	}
	return &Error{Op: op, Status: r, undocumented: !sys.Known(r)}
}

// anomalousError reports a documented status observed where it makes no
// sense, such as GetDeviceState answering plain success.
func anomalousError(op string, r sys.Result) error {
	return &Error{Op: op, Status: r, undocumented: true}
}
