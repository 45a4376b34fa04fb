package inventory

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Dashboard computes the aggregates shown on the control panel
// Calcula os agregados exibidos no painel de controle
type Dashboard struct {
	storage Storage
	logger  *zap.Logger
	now     func() time.Time // injetável para testes
}

// NewDashboard creates a new dashboard engine
// Cria um novo mecanismo de painel
func NewDashboard(storage Storage, logger *zap.Logger) *Dashboard {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Dashboard{
		storage: storage,
		logger:  logger,
		now:     time.Now,
	}
}

// Summary gathers every control panel figure in one call. The movement
// window covers the last seven days, today included.
// Reúne os indicadores do painel; janela de movimentações de 7 dias
func (d *Dashboard) Summary(ctx context.Context) (*DashboardSummary, error) {
	now := d.now()
	from := now.AddDate(0, 0, -6).Truncate(24 * time.Hour)

	summary := &DashboardSummary{GeneratedAt: now}

	var err error
	if summary.TotalItems, err = d.storage.CountItems(ctx); err != nil {
		return nil, NewStorageError("count_items", "falha ao contar itens", err)
	}
	if summary.TotalStockRows, err = d.storage.CountStockRows(ctx); err != nil {
		return nil, NewStorageError("count_stock", "falha ao contar estoque", err)
	}
	if summary.ExpiredStock, err = d.storage.CountExpiredStock(ctx, now); err != nil {
		return nil, NewStorageError("count_expired", "falha ao contar vencidos", err)
	}
	if summary.BelowMinimum, err = d.storage.CountBelowMinimumStock(ctx); err != nil {
		return nil, NewStorageError("count_below_minimum", "falha ao contar abaixo do mínimo", err)
	}

	byStatus, err := d.storage.CountOrdersByStatus(ctx)
	if err != nil {
		return nil, NewStorageError("count_orders", "falha ao contar pedidos", err)
	}
	summary.OrdersByStatus = byStatus
	summary.OpenOrders = byStatus[OrderStatusOpen] + byStatus[OrderStatusOpenPartial] + byStatus[OrderStatusNotSent]

	inflow, outflow, err := d.storage.SumMovements(ctx, from, now)
	if err != nil {
		return nil, NewStorageError("sum_movements", "falha ao somar movimentações", err)
	}
	summary.InflowLast7Days = inflow
	summary.OutflowLast7Days = outflow

	series, err := d.storage.DailyMovementSeries(ctx, from, now)
	if err != nil {
		return nil, NewStorageError("daily_movements", "falha na série diária", err)
	}
	summary.DailyMovements = fillDailySeries(series, from, 7)

	d.logger.Debug("painel gerado",
		zap.Int64("total_items", summary.TotalItems),
		zap.Int64("expired_stock", summary.ExpiredStock),
		zap.Int64("open_orders", summary.OpenOrders),
	)

	return summary, nil
}

// fillDailySeries pads the series so every day of the window appears,
// zeroed when no movement happened
// Preenche a série para que todos os dias da janela apareçam
func fillDailySeries(series []DailyMovement, from time.Time, days int) []DailyMovement {
	byDay := make(map[string]DailyMovement, len(series))
	for _, p := range series {
		byDay[p.Day.Format("2006-01-02")] = p
	}

	out := make([]DailyMovement, 0, days)
	for i := 0; i < days; i++ {
		day := from.AddDate(0, 0, i)
		key := day.Format("2006-01-02")
		if p, ok := byDay[key]; ok {
			p.Day = day
			out = append(out, p)
			continue
		}
		out = append(out, DailyMovement{Day: day})
	}
	return out
}
