package types

import (
	"fmt"
	"sort"
	"strings"
)

// ReportQuery - параметры одного запроса отчета: набор курьеров,
// временное окно и режим (текущие назначения / история).
type ReportQuery struct {
	CourierIDs      []uint64   `json:"courier_ids"`
	Period          Period     `json:"period"`
	Window          TimeWindow `json:"window"`
	View            string     `json:"view"`
	IncludeArchived bool       `json:"include_archived"`
}

// CacheKey - детерминированный ключ запроса для кеша и коалесцирования
// триггеров. Порядок курьеров не влияет на ключ.
func (q ReportQuery) CacheKey() string {
	ids := make([]uint64, len(q.CourierIDs))
	copy(ids, q.CourierIDs)
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	parts := make([]string, 0, len(ids))
	for _, id := range ids {
		parts = append(parts, fmt.Sprintf("%d", id))
	}

	return fmt.Sprintf("report:%s:%s:%d:%d:%t",
		q.View,
		strings.Join(parts, ","),
		q.Window.Start.UnixMilli(),
		q.Window.End.UnixMilli(),
		q.IncludeArchived,
	)
}

// Affects сообщает, затрагивает ли изменение по данным курьерам этот запрос.
// Пустой фильтр курьеров означает "все курьеры".
func (q ReportQuery) Affects(courierIDs []uint64) bool {
	if len(q.CourierIDs) == 0 {
		return true
	}
	for _, mine := range q.CourierIDs {
		for _, changed := range courierIDs {
			if mine == changed {
				return true
			}
		}
	}
	return false
}
