package inventory

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
)

// MockStorage é o mock da interface Storage para os testes
type MockStorage struct {
	mock.Mock
}

func (m *MockStorage) CreateItem(ctx context.Context, item *Item) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockStorage) GetItem(ctx context.Context, itemID int64) (*Item, error) {
	args := m.Called(ctx, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Item), args.Error(1)
}

func (m *MockStorage) GetItemByMPN(ctx context.Context, mpn string) (*Item, error) {
	args := m.Called(ctx, mpn)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Item), args.Error(1)
}

func (m *MockStorage) UpdateItem(ctx context.Context, item *Item) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockStorage) DeleteItem(ctx context.Context, itemID int64) error {
	args := m.Called(ctx, itemID)
	return args.Error(0)
}

func (m *MockStorage) ListItems(ctx context.Context, offset, limit int) ([]Item, error) {
	args := m.Called(ctx, offset, limit)
	return args.Get(0).([]Item), args.Error(1)
}

func (m *MockStorage) SearchItems(ctx context.Context, query string) ([]Item, error) {
	args := m.Called(ctx, query)
	return args.Get(0).([]Item), args.Error(1)
}

func (m *MockStorage) CreateEquivalence(ctx context.Context, eq *Equivalence) error {
	args := m.Called(ctx, eq)
	return args.Error(0)
}

func (m *MockStorage) DeleteEquivalence(ctx context.Context, itemID, equivalentID int64) error {
	args := m.Called(ctx, itemID, equivalentID)
	return args.Error(0)
}

func (m *MockStorage) GetEquivalents(ctx context.Context, itemID int64) ([]Item, error) {
	args := m.Called(ctx, itemID)
	return args.Get(0).([]Item), args.Error(1)
}

func (m *MockStorage) CreateSite(ctx context.Context, site *Site) error {
	args := m.Called(ctx, site)
	return args.Error(0)
}

func (m *MockStorage) GetSite(ctx context.Context, siteID int64) (*Site, error) {
	args := m.Called(ctx, siteID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Site), args.Error(1)
}

func (m *MockStorage) FindSite(ctx context.Context, name, subSite string) (*Site, error) {
	args := m.Called(ctx, name, subSite)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Site), args.Error(1)
}

func (m *MockStorage) ListSites(ctx context.Context) ([]Site, error) {
	args := m.Called(ctx)
	return args.Get(0).([]Site), args.Error(1)
}

func (m *MockStorage) CreateLocation(ctx context.Context, location *Location) error {
	args := m.Called(ctx, location)
	return args.Error(0)
}

func (m *MockStorage) GetLocation(ctx context.Context, locationID int64) (*Location, error) {
	args := m.Called(ctx, locationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Location), args.Error(1)
}

func (m *MockStorage) FindLocation(ctx context.Context, siteID int64, section string, shelf, caseNo, itemNumber *int64) (*Location, error) {
	args := m.Called(ctx, siteID, section, shelf, caseNo, itemNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Location), args.Error(1)
}

func (m *MockStorage) ListLocations(ctx context.Context, siteID int64) ([]Location, error) {
	args := m.Called(ctx, siteID)
	return args.Get(0).([]Location), args.Error(1)
}

func (m *MockStorage) CreateStock(ctx context.Context, stock *Stock) error {
	args := m.Called(ctx, stock)
	return args.Error(0)
}

func (m *MockStorage) UpdateStock(ctx context.Context, stock *Stock) error {
	args := m.Called(ctx, stock)
	return args.Error(0)
}

func (m *MockStorage) GetStock(ctx context.Context, stockID int64) (*Stock, error) {
	args := m.Called(ctx, stockID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Stock), args.Error(1)
}

func (m *MockStorage) GetStockBySerial(ctx context.Context, itemID int64, serialNumber string) (*Stock, error) {
	args := m.Called(ctx, itemID, serialNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Stock), args.Error(1)
}

func (m *MockStorage) GetStockByItemNoSerial(ctx context.Context, itemID int64) (*Stock, error) {
	args := m.Called(ctx, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Stock), args.Error(1)
}

func (m *MockStorage) ListStock(ctx context.Context, filter StockFilter) ([]Stock, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]Stock), args.Error(1)
}

func (m *MockStorage) TotalQuantity(ctx context.Context, itemID int64) (int64, error) {
	args := m.Called(ctx, itemID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockStorage) CreateInflow(ctx context.Context, in *Inflow) error {
	args := m.Called(ctx, in)
	return args.Error(0)
}

func (m *MockStorage) CreateOutflow(ctx context.Context, out *Outflow) error {
	args := m.Called(ctx, out)
	return args.Error(0)
}

func (m *MockStorage) ListInflows(ctx context.Context, filter MovementFilter) ([]Inflow, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]Inflow), args.Error(1)
}

func (m *MockStorage) ListOutflows(ctx context.Context, filter MovementFilter) ([]Outflow, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]Outflow), args.Error(1)
}

func (m *MockStorage) CreateAircraft(ctx context.Context, aircraft *Aircraft) error {
	args := m.Called(ctx, aircraft)
	return args.Error(0)
}

func (m *MockStorage) GetAircraft(ctx context.Context, aircraftID int64) (*Aircraft, error) {
	args := m.Called(ctx, aircraftID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Aircraft), args.Error(1)
}

func (m *MockStorage) GetAircraftByNumeral(ctx context.Context, numeral string) (*Aircraft, error) {
	args := m.Called(ctx, numeral)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Aircraft), args.Error(1)
}

func (m *MockStorage) ListAircraft(ctx context.Context) ([]Aircraft, error) {
	args := m.Called(ctx)
	return args.Get(0).([]Aircraft), args.Error(1)
}

func (m *MockStorage) CreateOrder(ctx context.Context, order *Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockStorage) GetOrder(ctx context.Context, orderID int64) (*Order, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Order), args.Error(1)
}

func (m *MockStorage) GetOrderByNumber(ctx context.Context, number int64, year int) (*Order, error) {
	args := m.Called(ctx, number, year)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Order), args.Error(1)
}

func (m *MockStorage) UpdateOrder(ctx context.Context, order *Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockStorage) ListOrders(ctx context.Context, filter OrderFilter) ([]Order, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]Order), args.Error(1)
}

func (m *MockStorage) MaxOrderNumber(ctx context.Context, year int) (int64, error) {
	args := m.Called(ctx, year)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockStorage) CreateOrderItem(ctx context.Context, line *OrderItem) error {
	args := m.Called(ctx, line)
	return args.Error(0)
}

func (m *MockStorage) GetOrderItem(ctx context.Context, lineID int64) (*OrderItem, error) {
	args := m.Called(ctx, lineID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*OrderItem), args.Error(1)
}

func (m *MockStorage) UpdateOrderItem(ctx context.Context, line *OrderItem) error {
	args := m.Called(ctx, line)
	return args.Error(0)
}

func (m *MockStorage) ListOrderItems(ctx context.Context, orderID int64) ([]OrderItem, error) {
	args := m.Called(ctx, orderID)
	return args.Get(0).([]OrderItem), args.Error(1)
}

func (m *MockStorage) CountItems(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockStorage) CountStockRows(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockStorage) CountExpiredStock(ctx context.Context, now time.Time) (int64, error) {
	args := m.Called(ctx, now)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockStorage) CountBelowMinimumStock(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockStorage) CountOrdersByStatus(ctx context.Context) (map[OrderStatus]int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(map[OrderStatus]int64), args.Error(1)
}

func (m *MockStorage) SumMovements(ctx context.Context, from, to time.Time) (int64, int64, error) {
	args := m.Called(ctx, from, to)
	return args.Get(0).(int64), args.Get(1).(int64), args.Error(2)
}

func (m *MockStorage) DailyMovementSeries(ctx context.Context, from, to time.Time) ([]DailyMovement, error) {
	args := m.Called(ctx, from, to)
	return args.Get(0).([]DailyMovement), args.Error(1)
}

func (m *MockStorage) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockStorage) Close() error {
	args := m.Called()
	return args.Error(0)
}
