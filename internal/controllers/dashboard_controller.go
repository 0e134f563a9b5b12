package controllers

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"courier-system/internal/services"
	"courier-system/pkg/utils"
)

// DashboardController отдает тот же отчет сверки для панелей дашборда.
// Отдельный эндпоинт нужен фронтенду: у экранов курьеров свои дефолты.
type DashboardController struct {
	reportController *ReportController
	service          *services.ReconciliationService
	logger           *zap.Logger
}

func NewDashboardController(service *services.ReconciliationService, loc *time.Location, logger *zap.Logger) *DashboardController {
	return &DashboardController{
		reportController: NewReportController(service, loc, logger),
		service:          service,
		logger:           logger,
	}
}

func (c *DashboardController) GetDashboardStats(ctx echo.Context) error {
	query, _, err := c.reportController.parseQuery(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	report, err := c.service.GetReport(ctx.Request().Context(), query)
	if err != nil {
		// Источник упал - показываем последний удачный отчет, если он есть.
		if prev := c.service.Current(query); prev != nil {
			c.logger.Warn("Источник недоступен, отдаем предыдущий отчет", zap.Error(err))
			return utils.SuccessResponse(ctx, prev, "Показан последний успешный отчет", http.StatusOK)
		}
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, report, "Статистика для дашборда получена", http.StatusOK)
}
