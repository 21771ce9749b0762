package access

import (
	"errors"
	"net/http"
)

// Error: ошибка уровня вызывающего (таблица, поля, запись), со своим HTTP-статусом.
// Ошибки шлюза (pg.QueryError) сюда не заворачиваются и отдаются как 500.
type Error struct {
	code    string
	status  int
	message string
}

func (e *Error) Error() string   { return e.message }
func (e *Error) HTTPStatus() int { return e.status }
func (e *Error) Code() string    { return e.code }

// Is сравнивает по коду, чтобы варианты сообщений матчились на базовую ошибку.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.code == e.code
}

var (
	ErrUnknownTable  = &Error{code: "UNKNOWN_TABLE", status: http.StatusBadRequest, message: "Unknown table"}
	ErrNoFields      = &Error{code: "NO_FIELDS", status: http.StatusBadRequest, message: "No fields"}
	ErrNoValidFields = &Error{code: "NO_VALID_FIELDS", status: http.StatusBadRequest, message: "No valid fields provided"}
	ErrNotFound      = &Error{code: "NOT_FOUND", status: http.StatusNotFound, message: "Record not found"}

	errNoValidUpdateFields = &Error{code: "NO_VALID_FIELDS", status: http.StatusBadRequest, message: "No valid fields provided for update"}
)

type statusCoder interface {
	HTTPStatus() int
}

// StatusOf возвращает HTTP-статус ошибки; всё, что не *Error, считается 500.
func StatusOf(err error) int {
	if err == nil {
		return http.StatusOK
	}
	var sc statusCoder
	if errors.As(err, &sc) {
		return sc.HTTPStatus()
	}
	return http.StatusInternalServerError
}
