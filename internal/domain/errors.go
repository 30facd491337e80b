package domain

import "net/http"

type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindNotFound
	KindInvalidID
	KindDuplicate
)

// HTTPStatus is the fixed mapping from error kind to response status. The API
// layer never inspects error internals beyond the kind.
func (k Kind) HTTPStatus() int {
	switch k {
	case KindValidation:
		return http.StatusBadRequest
	case KindNotFound, KindInvalidID:
		return http.StatusNotFound
	case KindDuplicate:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error is the tagged error carried across layer boundaries.
type Error struct {
	Kind    Kind
	Message string
	Fields  []FieldError
}

func (e *Error) Error() string {
	return e.Message
}

func NewValidationError(fields ...FieldError) *Error {
	return &Error{Kind: KindValidation, Message: "Validation Error", Fields: fields}
}

func NewNotFoundError(msg string) *Error {
	return &Error{Kind: KindNotFound, Message: msg}
}

func NewInvalidIDError() *Error {
	return &Error{Kind: KindInvalidID, Message: "Invalid ID format"}
}

func NewDuplicateError() *Error {
	return &Error{Kind: KindDuplicate, Message: "Duplicate field value entered"}
}

func NewInternalError() *Error {
	return &Error{Kind: KindInternal, Message: "Internal Server Error"}
}
