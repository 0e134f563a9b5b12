package services

import (
	"context"
	"encoding/json"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"courier-system/internal/entities"
	"courier-system/internal/repositories"
	apperrors "courier-system/pkg/errors"
	"courier-system/pkg/types"
	"courier-system/pkg/utils"
	"courier-system/pkg/websocket"
)

// ReconciliationService - сборщик отчета сверки. Держит последний удачный
// отчет по каждому ключу запроса; неудачный пересчет предыдущий отчет
// не трогает. Собранный отчет никогда не мутирует - каждый пересчет
// порождает новый объект, который можно безопасно раздавать панелям.
type ReconciliationService struct {
	repo         repositories.OrderSnapshotRepositoryInterface
	cache        repositories.CacheRepositoryInterface
	hub          *websocket.Hub
	logger       *zap.Logger
	loc          *time.Location
	cacheTTL     time.Duration
	fetchTimeout time.Duration

	// Монотонный счетчик поколений. Устаревший результат, пришедший после
	// более свежего, отбрасывается по нему, без явного токена отмены.
	generation uint64

	mu       sync.Mutex
	reports  map[string]*types.ReconciliationReport
	queries  map[string]types.ReportQuery
	lastGen  map[string]uint64
	inflight map[string]bool
	pending  map[string]bool
}

func NewReconciliationService(
	repo repositories.OrderSnapshotRepositoryInterface,
	cache repositories.CacheRepositoryInterface,
	hub *websocket.Hub,
	logger *zap.Logger,
	loc *time.Location,
	cacheTTL time.Duration,
	fetchTimeout time.Duration,
) *ReconciliationService {
	if loc == nil {
		loc = time.Local
	}
	return &ReconciliationService{
		repo:         repo,
		cache:        cache,
		hub:          hub,
		logger:       logger,
		loc:          loc,
		cacheTTL:     cacheTTL,
		fetchTimeout: fetchTimeout,
		reports:      make(map[string]*types.ReconciliationReport),
		queries:      make(map[string]types.ReportQuery),
		lastGen:      make(map[string]uint64),
		inflight:     make(map[string]bool),
		pending:      make(map[string]bool),
	}
}

// GetReport отдает отчет по запросу: сперва из Redis-кеша, при промахе
// пересчитывает. Запрос запоминается как активный, чтобы триггеры
// из потока изменений могли его обновлять.
func (s *ReconciliationService) GetReport(ctx context.Context, query types.ReportQuery) (*types.ReconciliationReport, error) {
	key := query.CacheKey()

	s.mu.Lock()
	s.queries[key] = query
	s.mu.Unlock()

	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, key); err == nil && cached != "" {
			var report types.ReconciliationReport
			if jsonErr := json.Unmarshal([]byte(cached), &report); jsonErr == nil {
				return &report, nil
			}
			s.logger.Warn("Поврежденный отчет в кеше, пересчитываем", zap.String("key", key))
		}
	}

	return s.ComputeReport(ctx, query)
}

// Current - последний удачно собранный отчет по запросу, без пересчета.
func (s *ReconciliationService) Current(query types.ReportQuery) *types.ReconciliationReport {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reports[query.CacheKey()]
}

// ComputeReport выполняет полный цикл: параллельные выборки, объединение,
// анализ, сборка. Если упала хотя бы одна выборка - отчет не собирается
// из частичных данных, ошибка уходит наверх, предыдущий отчет сохраняется.
func (s *ReconciliationService) ComputeReport(ctx context.Context, query types.ReportQuery) (*types.ReconciliationReport, error) {
	key := query.CacheKey()
	gen := atomic.AddUint64(&s.generation, 1)

	inWindow, history, err := s.fetchAll(ctx, query)
	if err != nil {
		s.logger.Error("Ошибка загрузки данных отчета, предыдущий отчет сохранен",
			zap.String("key", key), zap.Error(err))
		return nil, err
	}

	report := s.assemble(gen, query, inWindow, history)

	s.mu.Lock()
	if s.lastGen[key] > gen {
		// Пока мы считали, успел завершиться более свежий расчет.
		// Наш результат устарел - отбрасываем, не затирая свежее состояние.
		current := s.reports[key]
		s.mu.Unlock()
		s.logger.Debug("Устаревший результат расчета отброшен",
			zap.String("key", key), zap.Uint64("generation", gen))
		return current, nil
	}
	s.lastGen[key] = gen
	s.reports[key] = report
	s.mu.Unlock()

	if s.cache != nil {
		if payload, marshalErr := json.Marshal(report); marshalErr == nil {
			if cacheErr := s.cache.Set(ctx, key, string(payload), s.cacheTTL); cacheErr != nil {
				s.logger.Warn("Не удалось записать отчет в кеш", zap.Error(cacheErr))
			}
		}
	}
	if s.hub != nil {
		s.hub.BroadcastReportUpdated(websocket.ReportUpdatedPayload{
			QueryKey:   key,
			Generation: report.Generation,
			ComputedAt: report.ComputedAt,
		})
	}

	return report, nil
}

// RefreshAffected пересчитывает все активные запросы, которых касается
// изменение по указанным курьерам. Вызывается слушателем потока изменений.
func (s *ReconciliationService) RefreshAffected(courierIDs []uint64) {
	s.mu.Lock()
	affected := make([]types.ReportQuery, 0)
	for _, q := range s.queries {
		if q.Affects(courierIDs) {
			affected = append(affected, q)
		}
	}
	s.mu.Unlock()

	for _, q := range affected {
		s.refreshAsync(q)
	}
}

// refreshAsync запускает фоновый пересчет одного запроса. Повторные
// триггеры по тому же ключу во время расчета схлопываются в один
// отложенный прогон (коалесцирование).
func (s *ReconciliationService) refreshAsync(query types.ReportQuery) {
	key := query.CacheKey()

	s.mu.Lock()
	if s.inflight[key] {
		s.pending[key] = true
		s.mu.Unlock()
		return
	}
	s.inflight[key] = true
	s.mu.Unlock()

	go func() {
		for {
			ctx, cancel := context.WithTimeout(context.Background(), s.fetchTimeout)
			if s.cache != nil {
				_ = s.cache.Del(ctx, key)
			}
			if _, err := s.ComputeReport(ctx, query); err != nil {
				s.logger.Error("Фоновый пересчет отчета не удался", zap.String("key", key), zap.Error(err))
			}
			cancel()

			s.mu.Lock()
			if !s.pending[key] {
				s.inflight[key] = false
				s.mu.Unlock()
				return
			}
			delete(s.pending, key)
			s.mu.Unlock()
		}
	}()
}

// fetchAll - параллельные независимые выборки одного отчета: три оконных
// (источник не умеет OR по трем полям времени) плюс полная история по
// каждому курьеру. Первая же ошибка отменяет остальные выборки,
// частичные результаты не агрегируются.
func (s *ReconciliationService) fetchAll(ctx context.Context, query types.ReportQuery) ([]entities.OrderSnapshot, []entities.OrderSnapshot, error) {
	w := query.Window

	g, gctx := errgroup.WithContext(ctx)

	var created, assigned, updated []entities.OrderSnapshot
	histories := make([][]entities.OrderSnapshot, len(query.CourierIDs))

	g.Go(func() error {
		res, err := s.repo.FetchByTimeField(gctx, "created_at", w.Start, w.End, true, query.CourierIDs, query.IncludeArchived)
		if err != nil {
			return apperrors.NewSourceFetchError("created_at", err)
		}
		created = res
		return nil
	})
	g.Go(func() error {
		res, err := s.repo.FetchByTimeField(gctx, "assigned_at", w.Start, w.End, true, query.CourierIDs, query.IncludeArchived)
		if err != nil {
			return apperrors.NewSourceFetchError("assigned_at", err)
		}
		assigned = res
		return nil
	})
	g.Go(func() error {
		// У updated_at исторически полуоткрытая форма границы: [start, end+1мс).
		res, err := s.repo.FetchByTimeField(gctx, "updated_at", w.Start, w.EndExclusive, false, query.CourierIDs, query.IncludeArchived)
		if err != nil {
			return apperrors.NewSourceFetchError("updated_at", err)
		}
		updated = res
		return nil
	})
	for i, courierID := range query.CourierIDs {
		i, courierID := i, courierID
		g.Go(func() error {
			res, err := s.repo.FetchHistoryByCourier(gctx, courierID)
			if err != nil {
				return apperrors.NewSourceFetchError("history", err)
			}
			histories[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	inWindow := MergeSnapshots(created, assigned, updated)
	history := MergeSnapshots(histories...)
	return inWindow, history, nil
}

// assemble - синхронная сборка отчета из уже полученных данных.
// Своих отказов у сборки нет: пустой набор - это нули, а не ошибка.
func (s *ReconciliationService) assemble(gen uint64, query types.ReportQuery, inWindow, history []entities.OrderSnapshot) *types.ReconciliationReport {
	// Полная история важнее оконного среза: возврат мог случиться до окна,
	// а восстановление после. Окно решает только ВКЛЮЧЕНИЕ цикла в отчет.
	lifecycles := GroupLifecycles(MergeSnapshots(history, inWindow))
	analysis := AnalyzeLifecycles(lifecycles, query.Window)

	scope := analysis.Snapshots
	totalOrders := int64(len(analysis.Included))

	report := &types.ReconciliationReport{
		Generation:     gen,
		ComputedAt:     time.Now(),
		Window:         query.Window,
		View:           query.View,
		TotalOrders:    totalOrders,
		TotalSnapshots: int64(len(scope)),
		Categories:     AggregateCategories(scope, ReportCategories(query.View)),
		Returns:        analysis.Stats,
		ReturnDetails:  analysis.Details,
		StatusFlows:    CountStatusFlows(analysis.Included, totalOrders),
		Daily:          s.dailyBreakdown(scope, query.Window),
	}
	report.PaymentMethods, report.CashCollected, report.NonCashCollected = paymentBreakdown(scope)

	return report
}

// dailyBreakdown - количество и собранная сумма по календарным дням окна
// (по createdAt). Дни без заказов заполняются нулями, чтобы график
// не схлопывался.
func (s *ReconciliationService) dailyBreakdown(snapshots []entities.OrderSnapshot, window types.TimeWindow) []types.DailyStat {
	counts := make(map[string]int64)
	revenue := make(map[string]decimal.Decimal)

	for _, snap := range snapshots {
		if !window.ContainsInclusive(snap.CreatedAt) {
			continue
		}
		label := utils.DayLabel(snap.CreatedAt, s.loc)
		counts[label]++
		revenue[label] = revenue[label].Add(CollectedAmount(snap))
	}

	days := utils.DaysOfWindow(window.Start, window.End, s.loc)
	daily := make([]types.DailyStat, 0, len(days))
	for _, day := range days {
		label := utils.DayLabel(day, s.loc)
		rev := revenue[label]
		if rev.IsZero() {
			rev = decimal.Zero
		}
		daily = append(daily, types.DailyStat{Label: label, Count: counts[label], Revenue: rev})
	}
	return daily
}

// paymentBreakdown - разбивка собранных сумм по способам оплаты плюс
// итог наличные/безналичные по IsCashCollected.
func paymentBreakdown(snapshots []entities.OrderSnapshot) ([]types.PaymentMethodStat, decimal.Decimal, decimal.Decimal) {
	counts := make(map[string]int64)
	revenue := make(map[string]decimal.Decimal)
	order := make([]string, 0)

	cash := decimal.Zero
	nonCash := decimal.Zero

	for _, snap := range snapshots {
		method := strings.ToLower(strings.TrimSpace(snap.PaymentMethod))
		if method == "" {
			method = "не указан"
		}
		if _, seen := counts[method]; !seen {
			order = append(order, method)
		}
		counts[method]++

		collected := CollectedAmount(snap)
		revenue[method] = revenue[method].Add(collected)
		if IsCashCollected(snap) {
			cash = cash.Add(collected)
		} else {
			nonCash = nonCash.Add(collected)
		}
	}

	stats := make([]types.PaymentMethodStat, 0, len(order))
	for _, method := range order {
		rev := revenue[method]
		stats = append(stats, types.PaymentMethodStat{Method: method, Count: counts[method], Revenue: rev})
	}
	sort.SliceStable(stats, func(i, j int) bool { return stats[i].Count > stats[j].Count })

	return stats, cash, nonCash
}
