package dto

// ReportQueryDTO - параметры запроса отчета из строки запроса.
type ReportQueryDTO struct {
	Period          string `query:"period" validate:"omitempty,oneof=today yesterday last7 last30 custom"`
	DateFrom        string `query:"date_from" validate:"omitempty"`
	DateTo          string `query:"date_to" validate:"omitempty"`
	View            string `query:"view" validate:"omitempty,oneof=assigned history"`
	Format          string `query:"format" validate:"omitempty,oneof=json xlsx flat"`
	IncludeArchived bool   `query:"include_archived"`
}

// ReportRowDTO - одна строка плоского экспорта отчета.
// Все суммы - строки с двумя знаками после запятой, чтобы выгрузка
// в CSV/JSON/XLSX проходила без потерь.
type ReportRowDTO struct {
	Section    string `json:"section"`
	Key        string `json:"key"`
	Label      string `json:"label"`
	Count      int64  `json:"count"`
	Original   string `json:"original"`
	Collected  string `json:"collected"`
	Percentage string `json:"percentage"`
}
