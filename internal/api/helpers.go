package api

type FieldError struct {
	Code    string `json:"code"`
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Коды ошибок, которыми будем пользоваться
const (
	ErrRequired     = "required"
	ErrTypeMismatch = "type_mismatch"
	ErrNotFound     = "not_found"
	ErrLintBlocking = "lint_blocking"
)

func ferr(code, field, msg string) FieldError {
	return FieldError{Code: code, Field: field, Message: msg}
}
