package controllers

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"courier-system/internal/dto"
	"courier-system/internal/services"
	"courier-system/pkg/constants"
	"courier-system/pkg/types"
	"courier-system/pkg/utils"
)

type ReportController struct {
	service *services.ReconciliationService
	loc     *time.Location
	logger  *zap.Logger
}

func NewReportController(service *services.ReconciliationService, loc *time.Location, logger *zap.Logger) *ReportController {
	if loc == nil {
		loc = time.Local
	}
	return &ReportController{service: service, loc: loc, logger: logger}
}

// GetReconciliationReport - основной эндпоинт отчета сверки.
// format=json (по умолчанию) - полный отчет, flat - плоский список строк,
// xlsx - файл для выгрузки.
func (c *ReportController) GetReconciliationReport(ctx echo.Context) error {
	query, format, err := c.parseQuery(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	report, err := c.service.GetReport(ctx.Request().Context(), query)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	switch format {
	case "xlsx":
		return c.respondWithXLSX(ctx, report)
	case "flat":
		return utils.SuccessResponse(ctx, FlattenReport(report), "Отчет успешно сформирован", http.StatusOK)
	default:
		return utils.SuccessResponse(ctx, report, "Отчет успешно сформирован", http.StatusOK)
	}
}

func (c *ReportController) parseQuery(ctx echo.Context) (types.ReportQuery, string, error) {
	var q dto.ReportQueryDTO
	if err := ctx.Bind(&q); err != nil {
		return types.ReportQuery{}, "", err
	}
	if err := ctx.Validate(&q); err != nil {
		return types.ReportQuery{}, "", err
	}

	if q.Period == "" {
		q.Period = string(types.PeriodToday)
	}
	if q.View == "" {
		q.View = constants.ViewHistory
	}

	var customFrom, customTo time.Time
	if q.Period == string(types.PeriodCustom) {
		if t, err := time.Parse(time.RFC3339, q.DateFrom); err == nil {
			customFrom = t
		}
		if t, err := time.Parse(time.RFC3339, q.DateTo); err == nil {
			customTo = t
		}
	}

	courierIDs, err := utils.ParseUint64Slice(courierParams(ctx))
	if err != nil {
		return types.ReportQuery{}, "", err
	}

	window := services.ResolveTimeWindow(types.Period(q.Period), time.Now(), c.loc, customFrom, customTo)

	query := types.ReportQuery{
		CourierIDs:      courierIDs,
		Period:          types.Period(q.Period),
		Window:          window,
		View:            q.View,
		IncludeArchived: q.IncludeArchived,
	}
	return query, strings.ToLower(q.Format), nil
}

func courierParams(ctx echo.Context) []string {
	if arr, ok := ctx.QueryParams()["courier_ids[]"]; ok {
		return arr
	}
	if s := ctx.QueryParam("courier_ids"); s != "" {
		return strings.Split(s, ",")
	}
	return nil
}

// FlattenReport разворачивает отчет в плоский список строк для выгрузки.
// Все суммы печатаются с двумя знаками после запятой.
func FlattenReport(report *types.ReconciliationReport) []dto.ReportRowDTO {
	rows := make([]dto.ReportRowDTO, 0)

	for _, cat := range report.Categories {
		rows = append(rows, dto.ReportRowDTO{
			Section:   "category",
			Key:       cat.ID,
			Label:     cat.Label,
			Count:     cat.Count,
			Original:  cat.OriginalValue.StringFixed(2),
			Collected: cat.CollectedValue.StringFixed(2),
		})
	}

	returns := []struct {
		key   string
		label string
		count int64
		pct   float64
	}{
		{"returned_total", "Всего возвратов", report.Returns.TotalReturnedOrders, 0},
		{"returned_then_delivered", "Возврат → доставлен", report.Returns.ReturnedThenDelivered, report.Returns.PctDelivered},
		{"returned_then_canceled", "Возврат → отменен", report.Returns.ReturnedThenCanceled, report.Returns.PctCanceled},
		{"returned_then_partial", "Возврат → частично", report.Returns.ReturnedThenPartial, report.Returns.PctPartial},
		{"still_returned", "Все еще возвращен", report.Returns.StillReturned, report.Returns.PctStill},
	}
	for _, r := range returns {
		rows = append(rows, dto.ReportRowDTO{
			Section:    "returns",
			Key:        r.key,
			Label:      r.label,
			Count:      r.count,
			Percentage: fmt.Sprintf("%.2f", r.pct),
		})
	}

	for _, flow := range report.StatusFlows {
		rows = append(rows, dto.ReportRowDTO{
			Section:    "flow",
			Key:        flow.From + "->" + flow.To,
			Label:      fmt.Sprintf("%s → %s", flow.From, flow.To),
			Count:      flow.Count,
			Percentage: fmt.Sprintf("%.2f", flow.Percentage),
		})
	}

	for _, day := range report.Daily {
		rows = append(rows, dto.ReportRowDTO{
			Section:   "daily",
			Key:       day.Label,
			Label:     day.Label,
			Count:     day.Count,
			Collected: day.Revenue.StringFixed(2),
		})
	}

	for _, pm := range report.PaymentMethods {
		rows = append(rows, dto.ReportRowDTO{
			Section:   "payment",
			Key:       pm.Method,
			Label:     pm.Method,
			Count:     pm.Count,
			Collected: pm.Revenue.StringFixed(2),
		})
	}
	rows = append(rows,
		dto.ReportRowDTO{Section: "payment", Key: "cash_total", Label: "Наличные", Collected: report.CashCollected.StringFixed(2)},
		dto.ReportRowDTO{Section: "payment", Key: "non_cash_total", Label: "Безналичные", Collected: report.NonCashCollected.StringFixed(2)},
	)

	return rows
}

var reportHeaders = []string{
	"Раздел", "Ключ", "Название", "Кол-во", "Номинал", "Собрано", "Процент",
}

func (c *ReportController) respondWithXLSX(ctx echo.Context, report *types.ReconciliationReport) error {
	f := excelize.NewFile()
	sheet := "Сверка"
	f.SetSheetName("Sheet1", sheet)
	f.SetSheetRow(sheet, "A1", &reportHeaders)
	style, _ := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	f.SetCellStyle(sheet, "A1", "G1", style)

	for i, item := range FlattenReport(report) {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		row := []interface{}{
			item.Section, item.Key, item.Label, item.Count,
			item.Original, item.Collected, item.Percentage,
		}
		f.SetSheetRow(sheet, cell, &row)
	}
	f.SetColWidth(sheet, "B", "C", 25)
	f.SetColWidth(sheet, "D", "G", 15)

	fileName := fmt.Sprintf("reconciliation_%s.xlsx", time.Now().Format("2006-01-02"))
	ctx.Response().Header().Set(echo.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	ctx.Response().Header().Set("Content-Disposition", "attachment; filename="+fileName)
	ctx.Response().WriteHeader(http.StatusOK)
	return f.Write(ctx.Response().Writer)
}
