package utils

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	apperrors "courier-system/pkg/errors"
)

type HTTPResponse struct {
	Status  bool        `json:"status"`
	Body    interface{} `json:"body,omitempty"`
	Message string      `json:"message"`
}

func SuccessResponse(ctx echo.Context, body interface{}, message string, code int) error {
	response := &HTTPResponse{Status: true, Body: body, Message: message}
	return ctx.JSON(code, response)
}

func ErrorResponse(c echo.Context, err error, logger *zap.Logger) error {
	var httpErr *apperrors.HttpError
	if errors.As(err, &httpErr) {
		if httpErr.Err != nil {
			logger.Error("HTTP Error",
				zap.Int("code", httpErr.Code),
				zap.String("message", httpErr.Message),
				zap.Error(httpErr.Err),
				zap.Any("context", httpErr.Context),
			)
		}
		response := map[string]interface{}{"status": false, "message": httpErr.Message}
		if httpErr.Details != nil {
			response["body"] = httpErr.Details
		}
		return c.JSON(httpErr.Code, response)
	}

	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		var msgs []string
		for _, e := range validationErrors {
			msgs = append(msgs, fmt.Sprintf("Поле '%s' не прошло проверку '%s'", e.Field(), e.Tag()))
		}
		return c.JSON(http.StatusBadRequest, map[string]interface{}{
			"status":  false,
			"message": "Ошибка валидации: " + strings.Join(msgs, "; "),
		})
	}

	var inputErr *apperrors.InvalidInputError
	if errors.As(err, &inputErr) {
		return c.JSON(http.StatusBadRequest, map[string]interface{}{"status": false, "message": inputErr.Message})
	}

	// Источник недоступен - отчет не пересобран, предыдущий не тронут.
	var fetchErr *apperrors.SourceFetchError
	if errors.As(err, &fetchErr) {
		logger.Error("Источник данных недоступен", zap.Error(fetchErr))
		return c.JSON(http.StatusBadGateway, map[string]interface{}{
			"status":  false,
			"message": "Источник данных недоступен, отчет не обновлен",
		})
	}

	logger.Error("Unexpected Error", zap.Error(err))
	return c.JSON(http.StatusInternalServerError, map[string]interface{}{
		"status":  false,
		"message": "Внутренняя ошибка сервера",
	})
}

// ParseUint64Slice разбирает список идентификаторов из строк запроса.
func ParseUint64Slice(values []string) ([]uint64, error) {
	result := make([]uint64, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		var id uint64
		if _, err := fmt.Sscanf(v, "%d", &id); err != nil {
			return nil, apperrors.NewInvalidInputError("некорректный идентификатор: %q", v)
		}
		result = append(result, id)
	}
	return result, nil
}
