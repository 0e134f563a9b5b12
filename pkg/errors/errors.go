package errors

import (
	"fmt"
	"net/http"
)

var (
	// Общие
	ErrNotFound   = fmt.Errorf("запись не найдена")
	ErrBadRequest = fmt.Errorf("неверный запрос")

	// Отчеты
	ErrUnknownPeriod    = fmt.Errorf("неизвестный период отчета")
	ErrUnknownTimeField = fmt.Errorf("недопустимое поле времени для выборки")
	ErrStaleComputation = fmt.Errorf("результат расчета устарел и был отброшен")
)

// SourceFetchError - ошибка одного из запросов к источнику snapshot'ов.
// Если упал хотя бы один из объединяемых запросов, весь расчет отчета
// прерывается, а предыдущий отчет остается без изменений.
type SourceFetchError struct {
	Source string // какой именно запрос упал (created_at, assigned_at, history...)
	Err    error
}

func (e *SourceFetchError) Error() string {
	return fmt.Sprintf("ошибка получения данных из источника (%s): %v", e.Source, e.Err)
}

func (e *SourceFetchError) Unwrap() error { return e.Err }

func NewSourceFetchError(source string, err error) error {
	return &SourceFetchError{Source: source, Err: err}
}

// Кастомные типы ошибок
type InvalidInputError struct {
	Message string
}

func (e *InvalidInputError) Error() string { return e.Message }

func NewInvalidInputError(format string, args ...interface{}) error {
	return &InvalidInputError{Message: fmt.Sprintf(format, args...)}
}

// HttpError - ошибка с HTTP-кодом для транспортного слоя.
type HttpError struct {
	Code    int
	Message string
	Err     error
	Context map[string]interface{}
	Details interface{}
}

func (e *HttpError) Error() string { return e.Message }

func (e *HttpError) Unwrap() error { return e.Err }

func NewHttpError(code int, message string, err error, context map[string]interface{}) *HttpError {
	return &HttpError{Code: code, Message: message, Err: err, Context: context}
}

func NewInternalError(message string) *HttpError {
	return &HttpError{Code: http.StatusInternalServerError, Message: message}
}

func NewBadRequestError(message string) *HttpError {
	return &HttpError{Code: http.StatusBadRequest, Message: message}
}
