package flatfs

import "fmt"

// FSError is the error type returned by every public entry point. It carries
// one of the three legacy ABI codes (-1, -2, -3) alongside a human-readable
// message, so callers can use errors.Is/errors.As while Errno recovers the
// exact integer a caller coded against before this library existed.
type FSError struct {
	code    int
	message string
	wrapped error
}

func (e *FSError) Error() string {
	if e.wrapped != nil {
		return fmt.Sprintf("%s: %s", e.message, e.wrapped.Error())
	}
	return e.message
}

// Code returns the legacy ABI return code for this error.
func (e *FSError) Code() int {
	return e.code
}

func (e *FSError) Unwrap() error {
	return e.wrapped
}

// Is reports whether target is an *FSError with the same code, so a caller
// comparing against one of the sentinels below with errors.Is works even
// through WithMessage/Wrap.
func (e *FSError) Is(target error) bool {
	other, ok := target.(*FSError)
	if !ok {
		return false
	}
	return other.code == e.code
}

// WithMessage returns a copy of the sentinel carrying a more specific message.
func (e *FSError) WithMessage(message string) *FSError {
	return &FSError{code: e.code, message: message}
}

// Wrap returns a copy of the sentinel that also reports err via Unwrap.
func (e *FSError) Wrap(err error) *FSError {
	return &FSError{code: e.code, message: e.message, wrapped: err}
}

// The three codes that make up the ABI-stable error taxonomy. -1 covers both
// "not found" and "already exists" depending on the operation; -2 covers
// resource exhaustion (no free inode, no free blocks); -3 covers invalid
// arguments, an unmounted volume, and underlying device failures.
var (
	ErrExists          = &FSError{code: -1, message: "file exists"}
	ErrNotFound        = &FSError{code: -1, message: "no such file"}
	ErrNoInode         = &FSError{code: -2, message: "no free inode"}
	ErrNoSpace         = &FSError{code: -2, message: "insufficient free blocks"}
	ErrInvalidArgument = &FSError{code: -3, message: "invalid argument"}
	ErrDeviceFailure   = &FSError{code: -3, message: "device I/O failure"}
	ErrNotMounted      = &FSError{code: -3, message: "volume is not mounted"}
	ErrAlreadyMounted  = &FSError{code: -3, message: "a volume is already mounted"}
)

// errDeviceFull is an internal sentinel distinguishing "the device made no
// progress at all on a write" (code -2, the same as ErrNoSpace, mirroring
// the original C implementation treating write() returning 0 as disk-full)
// from any other I/O failure (ErrDeviceFailure). Write and the metadata
// sync of every mutating operation return it unchanged, so callers see it
// as a -2 error for which errors.Is(err, ErrNoSpace) reports true.
var errDeviceFull = &FSError{code: -2, message: "device full"}

// newCodedError builds a one-off *FSError for an overloaded code path: the
// taxonomy in this package's design doc explicitly allows -1 to mean
// "not found", "already exists", or (for List) an out-of-range argument,
// depending on which operation returned it.
func newCodedError(code int, message string) *FSError {
	return &FSError{code: code, message: message}
}

// Errno recovers the legacy ABI code from an error returned by this package.
// It returns 0 for a nil error and -3 for any error that didn't originate
// here, since every failure mode this package doesn't recognize is, by the
// taxonomy in use, an invalid-argument-class condition.
func Errno(err error) int {
	if err == nil {
		return 0
	}
	var fsErr *FSError
	if asFSError(err, &fsErr) {
		return fsErr.code
	}
	return -3
}

func asFSError(err error, target **FSError) bool {
	for err != nil {
		if fe, ok := err.(*FSError); ok {
			*target = fe
			return true
		}
		unwrapper, ok := err.(interface{ Unwrap() error })
		if !ok {
			return false
		}
		err = unwrapper.Unwrap()
	}
	return false
}
