package spreadsheet

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/sltavares/estoqueGo/pkg/inventory"
)

// memStorage is an in-memory Storage used by the importer tests
// Armazenamento em memória usado nos testes de importação
type memStorage struct {
	nextID    int64
	items     []*inventory.Item
	sites     []*inventory.Site
	locations []*inventory.Location
	stocks    []*inventory.Stock
}

func (m *memStorage) id() int64 {
	m.nextID++
	return m.nextID
}

func int64PtrEqual(a, b *int64) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func (m *memStorage) CreateItem(ctx context.Context, item *inventory.Item) error {
	item.ID = m.id()
	m.items = append(m.items, item)
	return nil
}

func (m *memStorage) GetItem(ctx context.Context, itemID int64) (*inventory.Item, error) {
	for _, it := range m.items {
		if it.ID == itemID {
			return it, nil
		}
	}
	return nil, inventory.ErrItemNotFound
}

func (m *memStorage) GetItemByMPN(ctx context.Context, mpn string) (*inventory.Item, error) {
	for _, it := range m.items {
		if it.MPN == mpn {
			return it, nil
		}
	}
	return nil, inventory.ErrItemNotFound
}

func (m *memStorage) UpdateItem(ctx context.Context, item *inventory.Item) error { return nil }
func (m *memStorage) DeleteItem(ctx context.Context, itemID int64) error         { return nil }

func (m *memStorage) ListItems(ctx context.Context, offset, limit int) ([]inventory.Item, error) {
	return nil, nil
}

func (m *memStorage) SearchItems(ctx context.Context, query string) ([]inventory.Item, error) {
	return nil, nil
}

func (m *memStorage) CreateEquivalence(ctx context.Context, eq *inventory.Equivalence) error {
	return nil
}

func (m *memStorage) DeleteEquivalence(ctx context.Context, itemID, equivalentID int64) error {
	return nil
}

func (m *memStorage) GetEquivalents(ctx context.Context, itemID int64) ([]inventory.Item, error) {
	return nil, nil
}

func (m *memStorage) CreateSite(ctx context.Context, site *inventory.Site) error {
	site.ID = m.id()
	m.sites = append(m.sites, site)
	return nil
}

func (m *memStorage) GetSite(ctx context.Context, siteID int64) (*inventory.Site, error) {
	for _, s := range m.sites {
		if s.ID == siteID {
			return s, nil
		}
	}
	return nil, inventory.ErrSiteNotFound
}

func (m *memStorage) FindSite(ctx context.Context, name, subSite string) (*inventory.Site, error) {
	for _, s := range m.sites {
		if s.Name == name && s.SubSite == subSite {
			return s, nil
		}
	}
	return nil, inventory.ErrSiteNotFound
}

func (m *memStorage) ListSites(ctx context.Context) ([]inventory.Site, error) { return nil, nil }

func (m *memStorage) CreateLocation(ctx context.Context, location *inventory.Location) error {
	location.ID = m.id()
	m.locations = append(m.locations, location)
	return nil
}

func (m *memStorage) GetLocation(ctx context.Context, locationID int64) (*inventory.Location, error) {
	for _, l := range m.locations {
		if l.ID == locationID {
			return l, nil
		}
	}
	return nil, inventory.ErrLocationNotFound
}

func (m *memStorage) FindLocation(ctx context.Context, siteID int64, section string, shelf, caseNo, itemNumber *int64) (*inventory.Location, error) {
	for _, l := range m.locations {
		if l.SiteID == siteID && l.Section == section &&
			int64PtrEqual(l.Shelf, shelf) && int64PtrEqual(l.Case, caseNo) && int64PtrEqual(l.ItemNumber, itemNumber) {
			return l, nil
		}
	}
	return nil, inventory.ErrLocationNotFound
}

func (m *memStorage) ListLocations(ctx context.Context, siteID int64) ([]inventory.Location, error) {
	return nil, nil
}

func (m *memStorage) CreateStock(ctx context.Context, stock *inventory.Stock) error {
	stock.ID = m.id()
	m.stocks = append(m.stocks, stock)
	return nil
}

func (m *memStorage) UpdateStock(ctx context.Context, stock *inventory.Stock) error { return nil }

func (m *memStorage) GetStock(ctx context.Context, stockID int64) (*inventory.Stock, error) {
	return nil, inventory.ErrStockNotFound
}

func (m *memStorage) GetStockBySerial(ctx context.Context, itemID int64, serialNumber string) (*inventory.Stock, error) {
	return nil, inventory.ErrStockNotFound
}

func (m *memStorage) GetStockByItemNoSerial(ctx context.Context, itemID int64) (*inventory.Stock, error) {
	for _, s := range m.stocks {
		if s.ItemID == itemID && s.SerialNumber == nil {
			return s, nil
		}
	}
	return nil, inventory.ErrStockNotFound
}

func (m *memStorage) ListStock(ctx context.Context, filter inventory.StockFilter) ([]inventory.Stock, error) {
	return nil, nil
}

func (m *memStorage) TotalQuantity(ctx context.Context, itemID int64) (int64, error) { return 0, nil }

func (m *memStorage) CreateInflow(ctx context.Context, in *inventory.Inflow) error    { return nil }
func (m *memStorage) CreateOutflow(ctx context.Context, out *inventory.Outflow) error { return nil }

func (m *memStorage) ListInflows(ctx context.Context, filter inventory.MovementFilter) ([]inventory.Inflow, error) {
	return nil, nil
}

func (m *memStorage) ListOutflows(ctx context.Context, filter inventory.MovementFilter) ([]inventory.Outflow, error) {
	return nil, nil
}

func (m *memStorage) CreateAircraft(ctx context.Context, aircraft *inventory.Aircraft) error {
	aircraft.ID = m.id()
	return nil
}

func (m *memStorage) GetAircraft(ctx context.Context, aircraftID int64) (*inventory.Aircraft, error) {
	return nil, inventory.ErrAircraftNotFound
}

func (m *memStorage) GetAircraftByNumeral(ctx context.Context, numeral string) (*inventory.Aircraft, error) {
	return nil, inventory.ErrAircraftNotFound
}

func (m *memStorage) ListAircraft(ctx context.Context) ([]inventory.Aircraft, error) {
	return nil, nil
}

func (m *memStorage) CreateOrder(ctx context.Context, order *inventory.Order) error {
	order.ID = m.id()
	return nil
}

func (m *memStorage) GetOrder(ctx context.Context, orderID int64) (*inventory.Order, error) {
	return nil, inventory.ErrOrderNotFound
}

func (m *memStorage) GetOrderByNumber(ctx context.Context, number int64, year int) (*inventory.Order, error) {
	return nil, inventory.ErrOrderNotFound
}

func (m *memStorage) UpdateOrder(ctx context.Context, order *inventory.Order) error { return nil }

func (m *memStorage) ListOrders(ctx context.Context, filter inventory.OrderFilter) ([]inventory.Order, error) {
	return nil, nil
}

func (m *memStorage) MaxOrderNumber(ctx context.Context, year int) (int64, error) { return 0, nil }

func (m *memStorage) CreateOrderItem(ctx context.Context, line *inventory.OrderItem) error {
	line.ID = m.id()
	return nil
}

func (m *memStorage) GetOrderItem(ctx context.Context, lineID int64) (*inventory.OrderItem, error) {
	return nil, inventory.ErrOrderNotFound
}

func (m *memStorage) UpdateOrderItem(ctx context.Context, line *inventory.OrderItem) error {
	return nil
}

func (m *memStorage) ListOrderItems(ctx context.Context, orderID int64) ([]inventory.OrderItem, error) {
	return nil, nil
}

func (m *memStorage) CountItems(ctx context.Context) (int64, error)     { return 0, nil }
func (m *memStorage) CountStockRows(ctx context.Context) (int64, error) { return 0, nil }

func (m *memStorage) CountExpiredStock(ctx context.Context, now time.Time) (int64, error) {
	return 0, nil
}

func (m *memStorage) CountBelowMinimumStock(ctx context.Context) (int64, error) { return 0, nil }

func (m *memStorage) CountOrdersByStatus(ctx context.Context) (map[inventory.OrderStatus]int64, error) {
	return nil, nil
}

func (m *memStorage) SumMovements(ctx context.Context, from, to time.Time) (int64, int64, error) {
	return 0, 0, nil
}

func (m *memStorage) DailyMovementSeries(ctx context.Context, from, to time.Time) ([]inventory.DailyMovement, error) {
	return nil, nil
}

func (m *memStorage) Ping(ctx context.Context) error { return nil }
func (m *memStorage) Close() error                   { return nil }

func newTestImporter(store *memStorage) *Importer {
	logger := zap.NewNop()
	catalog := inventory.NewCatalog(store, logger)
	registry := inventory.NewRegistry(store, logger)
	orders := inventory.NewOrderBook(store, logger)
	return NewImporter(store, catalog, orders, registry, logger, "importador")
}

func kanbanWorkbook(t *testing.T, rows [][]interface{}) *bytes.Reader {
	t.Helper()
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	for i, row := range rows {
		for j, v := range row {
			cell, err := excelize.CoordinatesToCellName(j+1, i+1)
			require.NoError(t, err)
			require.NoError(t, f.SetCellValue(sheet, cell, v))
		}
	}
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	require.NoError(t, f.Close())
	return bytes.NewReader(buf.Bytes())
}

func TestImporter_ImportKanban_SameItemInMultipleCases(t *testing.T) {
	store := &memStorage{}
	imp := newTestImporter(store)

	r := kanbanWorkbook(t, [][]interface{}{
		{"MALETA", "ITEM", "MPN", "NOME", "QTD", "CAP", "FIG", "ITEM", "QTD MIN"},
		{1, 4, "MS21042-3", "Porca autofrenante", 12, "32", "10", "040", 4},
		{2, 9, "MS21042-3", "Porca autofrenante", 6, "32", "10", "040", 2},
	})

	report, err := imp.ImportKanban(context.Background(), r, "Sheet1", inventory.KanbanEngine, "spu")

	require.NoError(t, err)
	// O mesmo item pode ocupar maletas diferentes: uma linha de estoque
	// de lote por maleta, sem conflito de unicidade
	assert.Equal(t, 2, report.Rows)
	assert.Equal(t, 0, report.Errors)
	assert.Equal(t, 1, report.CreatedItems)
	assert.Equal(t, 2, report.CreatedStock)
	require.Len(t, store.stocks, 2)
	assert.Equal(t, store.stocks[0].ItemID, store.stocks[1].ItemID)
	assert.NotEqual(t, *store.stocks[0].LocationID, *store.stocks[1].LocationID)
	assert.Equal(t, int64(12), store.stocks[0].Quantity)
	assert.Equal(t, int64(6), store.stocks[1].Quantity)
}

func TestImporter_ImportKanban_SkipsCaseSeparatorRows(t *testing.T) {
	store := &memStorage{}
	imp := newTestImporter(store)

	r := kanbanWorkbook(t, [][]interface{}{
		{"MALETA", "ITEM", "MPN", "NOME", "QTD", "CAP", "FIG", "ITEM", "QTD MIN"},
		{"MALETA 1", "", "", "", "", "", "", "", ""},
		{1, 4, "AN960-10", "Arruela", 30, "32", "10", "050", 10},
	})

	report, err := imp.ImportKanban(context.Background(), r, "Sheet1", inventory.KanbanEngine, "spu")

	require.NoError(t, err)
	assert.Equal(t, 1, report.Rows)
	assert.Equal(t, 1, report.CreatedItems)
	assert.Equal(t, 1, report.CreatedStock)
}
