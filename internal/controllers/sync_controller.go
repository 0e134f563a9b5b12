package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"courier-system/internal/dto"
	syncpkg "courier-system/internal/sync"
	"courier-system/pkg/utils"
)

// SyncController принимает вебхуки потока изменений хранилища заказов.
type SyncController struct {
	handler syncpkg.HandlerInterface
	logger  *zap.Logger
}

func NewSyncController(handler syncpkg.HandlerInterface, logger *zap.Logger) *SyncController {
	return &SyncController{handler: handler, logger: logger}
}

func (c *SyncController) PostOrderChanges(ctx echo.Context) error {
	var payload dto.OrderChangesPayloadDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	if err := c.handler.ProcessOrderChanges(ctx.Request().Context(), payload.Changes); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, nil, "Изменения приняты", http.StatusAccepted)
}
