package inventory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

func TestDashboard_Summary(t *testing.T) {
	mockStorage := new(MockStorage)
	dashboard := NewDashboard(mockStorage, zap.NewNop())
	ctx := context.Background()

	now := time.Date(2024, 5, 10, 14, 0, 0, 0, time.UTC)
	dashboard.now = func() time.Time { return now }
	from := now.AddDate(0, 0, -6).Truncate(24 * time.Hour)

	mockStorage.On("CountItems", ctx).Return(int64(320), nil)
	mockStorage.On("CountStockRows", ctx).Return(int64(540), nil)
	mockStorage.On("CountExpiredStock", ctx, now).Return(int64(7), nil)
	mockStorage.On("CountBelowMinimumStock", ctx).Return(int64(12), nil)
	mockStorage.On("CountOrdersByStatus", ctx).Return(map[OrderStatus]int64{
		OrderStatusNotSent:     2,
		OrderStatusOpen:        5,
		OrderStatusOpenPartial: 1,
		OrderStatusClosed:      40,
	}, nil)
	mockStorage.On("SumMovements", ctx, from, now).Return(int64(90), int64(45), nil)
	mockStorage.On("DailyMovementSeries", ctx, from, now).Return([]DailyMovement{
		{Day: from.AddDate(0, 0, 2), Inflow: 30, Outflow: 10},
	}, nil)

	summary, err := dashboard.Summary(ctx)

	assert.NoError(t, err)
	assert.Equal(t, int64(320), summary.TotalItems)
	assert.Equal(t, int64(7), summary.ExpiredStock)
	assert.Equal(t, int64(12), summary.BelowMinimum)
	// Abertos: não enviados + abertos + parcialmente atendidos
	assert.Equal(t, int64(8), summary.OpenOrders)
	assert.Equal(t, int64(90), summary.InflowLast7Days)
	assert.Equal(t, int64(45), summary.OutflowLast7Days)
	assert.Len(t, summary.DailyMovements, 7)
	mockStorage.AssertExpectations(t)
}

func TestFillDailySeries_PadsMissingDays(t *testing.T) {
	from := time.Date(2024, 5, 4, 0, 0, 0, 0, time.UTC)
	series := []DailyMovement{
		{Day: from, Inflow: 5},
		{Day: from.AddDate(0, 0, 3), Outflow: 2},
	}

	out := fillDailySeries(series, from, 7)

	assert.Len(t, out, 7)
	assert.Equal(t, int64(5), out[0].Inflow)
	assert.Equal(t, int64(0), out[1].Inflow)
	assert.Equal(t, int64(0), out[1].Outflow)
	assert.Equal(t, int64(2), out[3].Outflow)
	for i, p := range out {
		assert.Equal(t, from.AddDate(0, 0, i), p.Day)
	}
}

func TestFillDailySeries_EmptySeries(t *testing.T) {
	from := time.Date(2024, 5, 4, 0, 0, 0, 0, time.UTC)

	out := fillDailySeries(nil, from, 7)

	assert.Len(t, out, 7)
	for _, p := range out {
		assert.Equal(t, int64(0), p.Inflow)
		assert.Equal(t, int64(0), p.Outflow)
	}
}

func TestDashboard_Summary_StorageError(t *testing.T) {
	mockStorage := new(MockStorage)
	dashboard := NewDashboard(mockStorage, zap.NewNop())
	ctx := context.Background()

	mockStorage.On("CountItems", ctx).Return(int64(0), assert.AnError)

	_, err := dashboard.Summary(ctx)

	assert.Error(t, err)
	var sErr *StorageError
	assert.ErrorAs(t, err, &sErr)
	assert.Equal(t, "count_items", sErr.Operation)
	mockStorage.AssertNotCalled(t, "CountStockRows", ctx)
}

func TestDashboard_Summary_DefaultNow(t *testing.T) {
	mockStorage := new(MockStorage)
	dashboard := NewDashboard(mockStorage, zap.NewNop())
	ctx := context.Background()

	mockStorage.On("CountItems", ctx).Return(int64(0), nil)
	mockStorage.On("CountStockRows", ctx).Return(int64(0), nil)
	mockStorage.On("CountExpiredStock", ctx, mock.AnythingOfType("time.Time")).Return(int64(0), nil)
	mockStorage.On("CountBelowMinimumStock", ctx).Return(int64(0), nil)
	mockStorage.On("CountOrdersByStatus", ctx).Return(map[OrderStatus]int64{}, nil)
	mockStorage.On("SumMovements", ctx, mock.AnythingOfType("time.Time"), mock.AnythingOfType("time.Time")).Return(int64(0), int64(0), nil)
	mockStorage.On("DailyMovementSeries", ctx, mock.AnythingOfType("time.Time"), mock.AnythingOfType("time.Time")).Return([]DailyMovement{}, nil)

	summary, err := dashboard.Summary(ctx)

	assert.NoError(t, err)
	assert.False(t, summary.GeneratedAt.IsZero())
	assert.Len(t, summary.DailyMovements, 7)
	mockStorage.AssertExpectations(t)
}
