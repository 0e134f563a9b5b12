package services

import (
	"sort"

	"github.com/google/uuid"

	"courier-system/internal/entities"
)

// MergeSnapshots объединяет результаты нескольких перекрывающихся выборок
// (по createdAt, assignedAt, updatedAt) в один набор по RecordID.
// При повторе RecordID выигрывает последняя запись; позиция в наборе
// сохраняется от первого вхождения, поэтому результат детерминирован.
func MergeSnapshots(sets ...[]entities.OrderSnapshot) []entities.OrderSnapshot {
	index := make(map[uuid.UUID]int)
	merged := make([]entities.OrderSnapshot, 0)

	for _, set := range sets {
		for _, s := range set {
			if i, ok := index[s.RecordID]; ok {
				merged[i] = s
				continue
			}
			index[s.RecordID] = len(merged)
			merged = append(merged, s)
		}
	}
	return merged
}

// GroupLifecycles группирует набор snapshot'ов по OrderNumber в жизненные
// циклы. Внутри цикла snapshot'ы сортируются по возрастанию эффективного
// времени (updatedAt, иначе createdAt); равные времена сохраняют исходный
// порядок выборки (стабильная сортировка). Чистая функция: одинаковый вход
// всегда дает одинаковый выход.
func GroupLifecycles(snapshots []entities.OrderSnapshot) []entities.OrderLifecycle {
	index := make(map[string]int)
	groups := make([]entities.OrderLifecycle, 0)

	for _, s := range snapshots {
		if i, ok := index[s.OrderNumber]; ok {
			groups[i].Snapshots = append(groups[i].Snapshots, s)
			continue
		}
		index[s.OrderNumber] = len(groups)
		groups = append(groups, entities.OrderLifecycle{
			OrderNumber: s.OrderNumber,
			Snapshots:   []entities.OrderSnapshot{s},
		})
	}

	for i := range groups {
		snaps := groups[i].Snapshots
		sort.SliceStable(snaps, func(a, b int) bool {
			return snaps[a].EffectiveTime().Before(snaps[b].EffectiveTime())
		})
	}
	return groups
}
