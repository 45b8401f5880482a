package core

import (
	"errors"
	"fmt"
	"sync"
)

// ErrorCode classifies records on the error channel.
type ErrorCode int

const (
	ErrUnknown ErrorCode = iota
	// ErrShaderConfig is an invalid combination of requested shader variables.
	ErrShaderConfig
	ErrShaderCompile
	ErrProgramLink
	ErrGLFWInit
	ErrGLInit
	ErrWindowCreation
	ErrModelImport
	ErrFontLoad
	ErrTextureLoad
	ErrFramebuffer
)

var codeNames = [...]string{
	ErrUnknown:        "unknown",
	ErrShaderConfig:   "shader config",
	ErrShaderCompile:  "shader compile",
	ErrProgramLink:    "program link",
	ErrGLFWInit:       "glfw init",
	ErrGLInit:         "gl init",
	ErrWindowCreation: "window creation",
	ErrModelImport:    "model import",
	ErrFontLoad:       "font load",
	ErrTextureLoad:    "texture load",
	ErrFramebuffer:    "framebuffer",
}

func (c ErrorCode) String() string {
	if c < 0 || int(c) >= len(codeNames) {
		return fmt.Sprintf("ErrorCode(%d)", int(c))
	}
	return codeNames[c]
}

// Error is a structured record carried by the error channel.
type Error struct {
	Code    ErrorCode
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// Errorf builds an *Error with a formatted message.
func Errorf(code ErrorCode, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap attaches a code and message to an underlying error.
func Wrap(code ErrorCode, err error, msg string) *Error {
	return &Error{Code: code, Message: msg, Err: err}
}

// IsCode reports whether any error in err's chain is an *Error with the given code.
func IsCode(err error, code ErrorCode) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == code
}

var (
	errMu  sync.Mutex
	errLog []*Error
)

// Report appends err to the process-wide error channel and logs it.
// Errors that are not *Error are recorded as ErrUnknown. Report returns err
// unchanged so it can be used inline in return statements.
func Report(err error) error {
	if err == nil {
		return nil
	}
	var e *Error
	if !errors.As(err, &e) {
		e = &Error{Code: ErrUnknown, Message: err.Error(), Err: err}
	}

	errMu.Lock()
	errLog = append(errLog, e)
	errMu.Unlock()

	Logger().Error(e.Message, "code", e.Code.String(), "err", e.Err)
	return err
}

// Errors returns a copy of the pending error records without clearing them.
func Errors() []*Error {
	errMu.Lock()
	defer errMu.Unlock()
	return append([]*Error(nil), errLog...)
}

// DrainErrors returns all pending error records and clears the channel.
func DrainErrors() []*Error {
	errMu.Lock()
	defer errMu.Unlock()
	out := errLog
	errLog = nil
	return out
}
