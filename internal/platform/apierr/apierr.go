package apierr

import "fmt"

// Error carries the HTTP status and stable machine code for a failure so the
// handler layer can render the uniform error envelope without inspecting the
// underlying cause.
type Error struct {
	Status int
	Code   string
	Err    error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	if e.Code != "" {
		return e.Code
	}
	if e.Status != 0 {
		return fmt.Sprintf("api error (%d)", e.Status)
	}
	return "api error"
}

func (e *Error) Unwrap() error { return e.Err }

func New(status int, code string, err error) *Error {
	return &Error{Status: status, Code: code, Err: err}
}

// Stable error codes rendered in the response envelope.
const (
	CodeValidation       = "VALIDATION_ERROR"
	CodeInvalidStudentID = "INVALID_STUDENT_ID"
	CodeUnauthorized     = "UNAUTHORIZED"
	CodeForbidden        = "FORBIDDEN"
	CodeNotFound         = "NOT_FOUND"
	CodeDatabaseError    = "DATABASE_ERROR"
	CodeAPIError         = "API_ERROR"
	CodeParseError       = "PARSE_ERROR"
)
