package vidgrab

import (
	"errors"
	"fmt"
)

// Application error codes.
const (
	EINTERNAL     = "internal"
	EINVALID      = "invalid"
	ENOTFOUND     = "not_found"
	ECORRUPT      = "corrupt"
	ETIMEOUT      = "timeout"
	ERENDER       = "render"
	EDOWNLOAD     = "download"
	EUNAUTHORIZED = "unauthorized"
)

// Error represents an application-specific error. Application errors can be
// unwrapped by the caller to extract the code and message.
type Error struct {
	Code    string
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return e.Message
}

// Errorf is a helper function to return an Error with a given code and
// formatted message.
func Errorf(code string, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// RenderError reports a failure to render a page. Code is ETIMEOUT when the
// navigation or scroll deadline expired and ERENDER for any other browser
// failure.
type RenderError struct {
	URL  string
	Code string
	Err  error
}

// Error implements the error interface.
func (e *RenderError) Error() string {
	if e.Code == ETIMEOUT {
		return fmt.Sprintf("render %s: timed out: %v", e.URL, e.Err)
	}
	return fmt.Sprintf("render %s: %v", e.URL, e.Err)
}

// Unwrap returns the underlying cause.
func (e *RenderError) Unwrap() error {
	return e.Err
}

// ErrorCode unwraps an application error and returns its code.
// Non-application errors always return EINTERNAL.
func ErrorCode(err error) string {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	var re *RenderError
	if errors.As(err, &re) {
		return re.Code
	}
	return EINTERNAL
}

// ErrorMessage unwraps an application error and returns its message.
// Non-application errors always return "Internal error.".
func ErrorMessage(err error) string {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	var re *RenderError
	if errors.As(err, &re) {
		return re.Error()
	}
	return "Internal error."
}
