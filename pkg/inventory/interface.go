package inventory

import (
	"context"
	"time"
)

// StockLedger defines the core interface for stock movements
// Interface principal de movimentações de estoque
type StockLedger interface {
	// Movimentações - Stock movements
	RegisterInflow(ctx context.Context, in InflowRequest) (*InflowResult, error)
	AddToStock(ctx context.Context, stockID int64, quantity int64, description, actor string) (*Stock, error)
	RegisterOutflow(ctx context.Context, out OutflowRequest) (*Stock, error)

	// Consulta de estoque - Stock inquiry
	GetStock(ctx context.Context, stockID int64) (*Stock, error)
	ListStock(ctx context.Context, filter StockFilter) ([]Stock, error)
	TotalQuantity(ctx context.Context, itemID int64) (int64, error)

	// Histórico - Movement history
	InflowHistory(ctx context.Context, filter MovementFilter) ([]Inflow, error)
	OutflowHistory(ctx context.Context, filter MovementFilter) ([]Outflow, error)
}

// ItemCatalog defines the interface for catalog item management
// Interface de gerenciamento do catálogo de itens
type ItemCatalog interface {
	CreateItem(ctx context.Context, item *Item) error
	GetItem(ctx context.Context, itemID int64) (*Item, error)
	GetItemByMPN(ctx context.Context, mpn string) (*Item, error)
	UpdateItem(ctx context.Context, item *Item) error
	DeleteItem(ctx context.Context, itemID int64) error
	ListItems(ctx context.Context, offset, limit int) ([]Item, error)
	SearchItems(ctx context.Context, query string) ([]Item, error)

	// Equivalências - Equivalence management
	AddEquivalence(ctx context.Context, itemID, equivalentID int64) error
	RemoveEquivalence(ctx context.Context, itemID, equivalentID int64) error
	Equivalents(ctx context.Context, itemID int64) ([]Item, error)
}

// LocationRegistry defines the interface for site and location management
// Interface de gerenciamento de OMs e localizações
type LocationRegistry interface {
	CreateSite(ctx context.Context, site *Site) error
	GetSite(ctx context.Context, siteID int64) (*Site, error)
	ListSites(ctx context.Context) ([]Site, error)
	FindOrCreateSite(ctx context.Context, name, subSite string, siteType SiteType) (*Site, error)

	CreateLocation(ctx context.Context, location *Location) error
	GetLocation(ctx context.Context, locationID int64) (*Location, error)
	ListLocations(ctx context.Context, siteID int64) ([]Location, error)
	FindOrCreateLocation(ctx context.Context, siteID int64, section string, shelf, caseNo, itemNumber *int64) (*Location, error)
}

// OrderManager defines the interface for maintenance orders
// Interface de gerenciamento de pedidos de manutenção
type OrderManager interface {
	CreateOrder(ctx context.Context, order *Order) error
	GetOrder(ctx context.Context, orderID int64) (*Order, error)
	GetOrderByNumber(ctx context.Context, number int64, year int) (*Order, error)
	UpdateOrder(ctx context.Context, order *Order) error
	ListOrders(ctx context.Context, filter OrderFilter) ([]Order, error)

	AddOrderItem(ctx context.Context, line *OrderItem) error
	UpdateOrderItem(ctx context.Context, line *OrderItem) error
	ListOrderItems(ctx context.Context, orderID int64) ([]OrderItem, error)
	OrderStatistics(ctx context.Context, orderID int64) (*OrderStatistics, error)
}

// Storage defines the interface for the data persistence layer
// Interface da camada de persistência
type Storage interface {
	// Catálogo - Item management
	CreateItem(ctx context.Context, item *Item) error
	GetItem(ctx context.Context, itemID int64) (*Item, error)
	GetItemByMPN(ctx context.Context, mpn string) (*Item, error)
	UpdateItem(ctx context.Context, item *Item) error
	DeleteItem(ctx context.Context, itemID int64) error
	ListItems(ctx context.Context, offset, limit int) ([]Item, error)
	SearchItems(ctx context.Context, query string) ([]Item, error)

	// Equivalências - Equivalence management
	CreateEquivalence(ctx context.Context, eq *Equivalence) error
	DeleteEquivalence(ctx context.Context, itemID, equivalentID int64) error
	GetEquivalents(ctx context.Context, itemID int64) ([]Item, error)

	// OMs e localizações - Site and location management
	CreateSite(ctx context.Context, site *Site) error
	GetSite(ctx context.Context, siteID int64) (*Site, error)
	FindSite(ctx context.Context, name, subSite string) (*Site, error)
	ListSites(ctx context.Context) ([]Site, error)
	CreateLocation(ctx context.Context, location *Location) error
	GetLocation(ctx context.Context, locationID int64) (*Location, error)
	FindLocation(ctx context.Context, siteID int64, section string, shelf, caseNo, itemNumber *int64) (*Location, error)
	ListLocations(ctx context.Context, siteID int64) ([]Location, error)

	// Estoque - Stock rows
	CreateStock(ctx context.Context, stock *Stock) error
	UpdateStock(ctx context.Context, stock *Stock) error
	GetStock(ctx context.Context, stockID int64) (*Stock, error)
	GetStockBySerial(ctx context.Context, itemID int64, serialNumber string) (*Stock, error)
	GetStockByItemNoSerial(ctx context.Context, itemID int64) (*Stock, error)
	ListStock(ctx context.Context, filter StockFilter) ([]Stock, error)
	TotalQuantity(ctx context.Context, itemID int64) (int64, error)

	// Movimentações - Movement history (append only)
	CreateInflow(ctx context.Context, in *Inflow) error
	CreateOutflow(ctx context.Context, out *Outflow) error
	ListInflows(ctx context.Context, filter MovementFilter) ([]Inflow, error)
	ListOutflows(ctx context.Context, filter MovementFilter) ([]Outflow, error)

	// Aeronaves - Aircraft
	CreateAircraft(ctx context.Context, aircraft *Aircraft) error
	GetAircraft(ctx context.Context, aircraftID int64) (*Aircraft, error)
	GetAircraftByNumeral(ctx context.Context, numeral string) (*Aircraft, error)
	ListAircraft(ctx context.Context) ([]Aircraft, error)

	// Pedidos - Orders
	CreateOrder(ctx context.Context, order *Order) error
	GetOrder(ctx context.Context, orderID int64) (*Order, error)
	GetOrderByNumber(ctx context.Context, number int64, year int) (*Order, error)
	UpdateOrder(ctx context.Context, order *Order) error
	ListOrders(ctx context.Context, filter OrderFilter) ([]Order, error)
	MaxOrderNumber(ctx context.Context, year int) (int64, error)
	CreateOrderItem(ctx context.Context, line *OrderItem) error
	GetOrderItem(ctx context.Context, lineID int64) (*OrderItem, error)
	UpdateOrderItem(ctx context.Context, line *OrderItem) error
	ListOrderItems(ctx context.Context, orderID int64) ([]OrderItem, error)

	// Painel - Dashboard aggregates
	CountItems(ctx context.Context) (int64, error)
	CountStockRows(ctx context.Context) (int64, error)
	CountExpiredStock(ctx context.Context, now time.Time) (int64, error)
	CountBelowMinimumStock(ctx context.Context) (int64, error)
	CountOrdersByStatus(ctx context.Context) (map[OrderStatus]int64, error)
	SumMovements(ctx context.Context, from, to time.Time) (inflow int64, outflow int64, err error)
	DailyMovementSeries(ctx context.Context, from, to time.Time) ([]DailyMovement, error)

	// Health check
	Ping(ctx context.Context) error
	Close() error
}

// InflowRequest carries the parameters of an inflow registration
// Parâmetros de registro de uma entrada
type InflowRequest struct {
	ItemID          int64      `json:"item_id"`
	SerialNumber    string     `json:"serial_number"`    // vazio para itens não serializados
	LocationID      *int64     `json:"location_id"`      // localização de destino
	Kanban          Kanban     `json:"kanban"`           // classe kanban
	Quantity        int64      `json:"quantity"`         // deve ser positiva; serializado entra no estoque com 1
	MinimumQuantity int64      `json:"minimum_quantity"` // ignorada para serializados (sempre 1)
	ExpirationDate  *time.Time `json:"expiration_date"`
	Description     string     `json:"description"`
	Actor           string     `json:"actor"` // responsável pela operação
}

// OutflowRequest carries the parameters of an outflow registration
// Parâmetros de registro de uma saída
type OutflowRequest struct {
	StockID     int64  `json:"stock_id"`
	Quantity    int64  `json:"quantity"`
	ClaimantID  int64  `json:"claimant_id"` // localização solicitante
	Reason      string `json:"reason"`
	Description string `json:"description"`
	Actor       string `json:"actor"` // responsável pela operação
}

// DailyMovement is one point of the dashboard movement series
// Um ponto da série diária de movimentações do painel
type DailyMovement struct {
	Day     time.Time `json:"day"`
	Inflow  int64     `json:"inflow"`
	Outflow int64     `json:"outflow"`
}

// DashboardSummary aggregates the figures shown on the control panel
// Resumo agregado exibido no painel de controle
type DashboardSummary struct {
	TotalItems        int64                 `json:"total_items"`         // itens no catálogo
	TotalStockRows    int64                 `json:"total_stock_rows"`    // registros de estoque
	ExpiredStock      int64                 `json:"expired_stock"`       // registros vencidos
	BelowMinimum      int64                 `json:"below_minimum"`       // registros abaixo do mínimo
	OpenOrders        int64                 `json:"open_orders"`         // pedidos abertos
	InflowLast7Days   int64                 `json:"inflow_last_7_days"`  // entradas nos últimos 7 dias
	OutflowLast7Days  int64                 `json:"outflow_last_7_days"` // saídas nos últimos 7 dias
	DailyMovements    []DailyMovement       `json:"daily_movements"`     // série diária (7 dias)
	OrdersByStatus    map[OrderStatus]int64 `json:"orders_by_status"`    // distribuição por status
	GeneratedAt       time.Time             `json:"generated_at"`        // gerado em
}
