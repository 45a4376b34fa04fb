// Package inventory provides the aircraft-parts stock and maintenance-order core
package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Item represents a catalog part, keyed by manufacturer part number
// Representa um item do catálogo, identificado pelo MPN
type Item struct {
	ID          int64     `json:"id" db:"id"`                     // ID do item
	MPN         string    `json:"mpn" db:"mpn"`                   // Manufacturer Part Number (único)
	PN          string    `json:"pn" db:"pn"`                     // Part Number alternativo
	Name        string    `json:"name" db:"name"`                 // Nome do item
	Doc         string    `json:"doc" db:"doc"`                   // Manual (IPC, ECMM, MMA, ...)
	TecPub      string    `json:"tec_pub" db:"tec_pub"`           // Publicação técnica
	AircraftDoc string    `json:"aircraft_doc" db:"aircraft_doc"` // Aeronave de referência
	CreatedBy   string    `json:"created_by" db:"created_by"`     // Criado por
	CreatedAt   time.Time `json:"created_at" db:"created_at"`     // Criado em
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`     // Atualizado em
}

// Equivalence is a symmetric item relation stored once per pair,
// always with the lower item id first so the reverse pair cannot exist
// Equivalência simétrica, armazenada uma vez por par (menor id primeiro)
type Equivalence struct {
	ID           int64 `json:"id" db:"id"`
	ItemID       int64 `json:"item_id" db:"item_id"`             // Item (menor id)
	EquivalentID int64 `json:"equivalent_id" db:"equivalent_id"` // Item equivalente (maior id)
}

// SiteType classifies a site as internal or external
// Classifica a OM como interna ou externa
type SiteType string

const (
	SiteTypeInternal SiteType = "internal" // Interno
	SiteTypeExternal SiteType = "external" // Externo
)

// Site represents a military organization holding storage locations
// Representa uma OM (organização militar) com localizações de estoque
type Site struct {
	ID      int64    `json:"id" db:"id"`
	Name    string   `json:"name" db:"name"`         // Nome da OM
	SubSite string   `json:"sub_site" db:"sub_site"` // Sub-site
	Type    SiteType `json:"type" db:"type"`         // Tipo (interno/externo)
}

// Location is a physical storage coordinate inside a site. It doubles
// as the claimant of an outflow.
// Coordenada física de armazenamento; também é o solicitante de uma saída
type Location struct {
	ID         int64  `json:"id" db:"id"`
	SiteID     int64  `json:"site_id" db:"site_id"`         // OM
	Section    string `json:"section" db:"section"`         // Seção
	Shelf      *int64 `json:"shelf" db:"shelf"`             // Prateleira
	Case       *int64 `json:"case" db:"case"`               // Maleta
	ItemNumber *int64 `json:"item_number" db:"item_number"` // Número do item na prateleira
}

// Kanban classifies a stock row for the kanban boards
// Classificação kanban do registro de estoque
type Kanban string

const (
	KanbanEngine Kanban = "ENGINE" // Motor
	KanbanCell   Kanban = "CELL"   // Célula
	KanbanNone   Kanban = "NOT"    // Não
)

// Stock is one inventory row: a serialized physical unit or a bulk
// quantity bucket for an item at a location.
//
// Invariant: when SerialNumber is set, Quantity and MinimumQuantity
// are both exactly 1. A serialized unit is indivisible.
// Registro de estoque: unidade serializada (sempre qtd 1) ou lote por localização
type Stock struct {
	ID              int64      `json:"id" db:"id"`
	ItemID          int64      `json:"item_id" db:"item_id"`                   // Item do catálogo
	SerialNumber    *string    `json:"serial_number" db:"serial_number"`       // Serial Number (opcional)
	Kanban          Kanban     `json:"kanban" db:"kanban"`                     // Kanban
	LocationID      *int64     `json:"location_id" db:"location_id"`           // Localização
	Quantity        int64      `json:"quantity" db:"quantity"`                 // Quantidade
	MinimumQuantity int64      `json:"minimum_quantity" db:"minimum_quantity"` // Quantidade mínima
	ExpirationDate  *time.Time `json:"expiration_date" db:"expiration_date"`   // Data de validade
	UpdatedAt       time.Time  `json:"updated_at" db:"updated_at"`             // Atualizado em
	UpdatedBy       string     `json:"updated_by" db:"updated_by"`             // Atualizado por
}

// Serialized reports whether the row is a serialized unit
// Indica se o registro é uma unidade serializada
func (s *Stock) Serialized() bool {
	return s.SerialNumber != nil && *s.SerialNumber != ""
}

// BelowMinimum reports whether the row is at or below its minimum
// Indica se o estoque está na quantidade mínima ou abaixo
func (s *Stock) BelowMinimum() bool {
	return s.Quantity <= s.MinimumQuantity
}

// Expired reports whether the row's expiration date has passed
// Indica se a validade do registro expirou
func (s *Stock) Expired(now time.Time) bool {
	if s.ExpirationDate == nil {
		return false
	}
	return now.After(*s.ExpirationDate)
}

// Inflow is an immutable record of quantity added to stock
// Registro imutável de entrada no estoque
type Inflow struct {
	ID          string    `json:"id" db:"id"`
	ItemID      int64     `json:"item_id" db:"item_id"`         // Item
	StockID     int64     `json:"stock_id" db:"stock_id"`       // Registro de estoque destino
	Quantity    int64     `json:"quantity" db:"quantity"`       // Quantidade da entrada
	Description string    `json:"description" db:"description"` // Descrição
	CreatedAt   time.Time `json:"created_at" db:"created_at"`   // Criado em
	CreatedBy   string    `json:"created_by" db:"created_by"`   // Criado por
}

// Outflow is an immutable record of quantity removed from (or, for a
// serialized unit, transferred out of) a specific stock row
// Registro imutável de saída (ou transferência, se serializado) do estoque
type Outflow struct {
	ID          string    `json:"id" db:"id"`
	StockID     int64     `json:"stock_id" db:"stock_id"`       // Registro de estoque de origem
	Quantity    int64     `json:"quantity" db:"quantity"`       // Quantidade da saída
	ClaimantID  int64     `json:"claimant_id" db:"claimant_id"` // Localização solicitante
	Reason      string    `json:"reason" db:"reason"`           // Motivo
	Description string    `json:"description" db:"description"` // Descrição
	CreatedAt   time.Time `json:"created_at" db:"created_at"`   // Criado em
	CreatedBy   string    `json:"created_by" db:"created_by"`   // Criado por
}

// Aircraft is a fleet airframe referenced by order items
// Aeronave da frota, referenciada pelos itens de pedido
type Aircraft struct {
	ID      int64            `json:"id" db:"id"`
	Numeral string           `json:"numeral" db:"numeral"` // Numeral (ex.: 5001, KAN)
	TSN     *decimal.Decimal `json:"tsn" db:"tsn"`         // Time Since New
}

// OrderType defines the kind of requisition
// Tipo de pedido
type OrderType string

const (
	OrderTypeRMS OrderType = "RMS"
	OrderTypeFSM OrderType = "FSM"
	OrderTypeREQ OrderType = "REQ"
)

// OrderStatus defines the lifecycle status of an order
// Status do pedido
type OrderStatus string

const (
	OrderStatusNotSent        OrderStatus = "NOT"    // Não enviado
	OrderStatusOpen           OrderStatus = "OPEN"   // Aberto - Não Atendido
	OrderStatusOpenPartial    OrderStatus = "OPEN2"  // Aberto - Atendido Parcialmente
	OrderStatusClosed         OrderStatus = "CLOSE"  // Finalizado - Atendido
	OrderStatusClosedUnserved OrderStatus = "CLOSE2" // Finalizado - Não Atendido
	OrderStatusCancelled      OrderStatus = "CANCEL" // Cancelado
)

// Requester identifies the requesting organization
// Solicitante do pedido
type Requester string

const (
	RequesterBAVEX Requester = "1BAVEX" // 1º BAvEx
	RequesterBMS   Requester = "BMS"    // B Mnt Sup Av Ex
)

// Order is a maintenance requisition, numbered sequentially per year
// Pedido de manutenção, numerado sequencialmente por ano
type Order struct {
	ID          int64       `json:"id" db:"id"`
	OrderNumber int64       `json:"order_number" db:"order_number"` // Número do pedido
	OrderYear   int         `json:"order_year" db:"order_year"`     // Ano do pedido
	OrderDate   *time.Time  `json:"order_date" db:"order_date"`     // Data do pedido
	Requester   Requester   `json:"requester" db:"requester"`       // Solicitante
	OrderType   OrderType   `json:"order_type" db:"order_type"`     // Tipo de pedido
	Status      OrderStatus `json:"status" db:"status"`             // Status
	Notes       string      `json:"notes" db:"notes"`               // Observações
	CreatedBy   string      `json:"created_by" db:"created_by"`     // Criado por
	UpdatedBy   string      `json:"updated_by" db:"updated_by"`     // Atualizado por
	CreatedAt   time.Time   `json:"created_at" db:"created_at"`     // Criado em
	UpdatedAt   time.Time   `json:"updated_at" db:"updated_at"`     // Atualizado em
}

// ServiceType defines the urgency of an order item
// Tipo de atendimento do item de pedido
type ServiceType string

const (
	ServiceTypeRush ServiceType = "RUSH"
	ServiceTypeProg ServiceType = "PROG"
	ServiceTypeAOG  ServiceType = "AOG"
)

// OrderItem is one line of an order. It references exactly one of a
// stock row (RMS traceability) or a catalog item (FSM), never both and
// never neither. Order items never mutate stock quantities.
// Item de pedido: referencia um registro de estoque OU um item do catálogo
type OrderItem struct {
	ID                    int64            `json:"id" db:"id"`
	OrderID               int64            `json:"order_id" db:"order_id"`
	StockID               *int64           `json:"stock_id" db:"stock_id"`   // Item de estoque (RMS)
	ItemID                *int64           `json:"item_id" db:"item_id"`     // Item do catálogo (FSM)
	AircraftID            *int64           `json:"aircraft_id" db:"aircraft_id"`
	AircraftDestinationID *int64           `json:"aircraft_destination_id" db:"aircraft_destination_id"`
	Operator              string           `json:"operator" db:"operator"`         // Nº pedido operador
	ServiceType           ServiceType      `json:"service_type" db:"service_type"` // Tipo de atendimento
	Quantity              int64            `json:"quantity" db:"quantity"`
	QuantitySupplied      *int64           `json:"quantity_supplied" db:"quantity_supplied"`
	DPE                   string           `json:"dpe" db:"dpe"`
	EGLOG                 string           `json:"eglog" db:"eglog"`
	LogCard               bool             `json:"log_card" db:"log_card"`
	SNAttended            string           `json:"sn_attended" db:"sn_attended"` // SN atendido
	ExpirationAttended    *time.Time       `json:"expiration_attended" db:"expiration_attended"`
	NFAnswer              string           `json:"nf_answer" db:"nf_answer"` // Nota fiscal de atendimento
	AttendedDate          *time.Time       `json:"attended_date" db:"attended_date"`
	Collected             bool             `json:"collected" db:"collected"`
	GMM                   string           `json:"gmm" db:"gmm"`
	BMS                   string           `json:"bms" db:"bms"`
	HBDestination         string           `json:"hb_destination" db:"hb_destination"`
	ContractOld           bool             `json:"contract_old" db:"contract_old"` // Contrato anterior (013)
	Reason                string           `json:"reason" db:"reason"`
	Troubleshooting       string           `json:"troubleshooting" db:"troubleshooting"`
	FailureDescription    string           `json:"failure_description" db:"failure_description"`
	Observation           string           `json:"observation" db:"observation"`
	Notes                 string           `json:"notes" db:"notes"`
	TSNItem               *decimal.Decimal `json:"tsn_item" db:"tsn_item"` // TSN do item
	TSOItem               *decimal.Decimal `json:"tso_item" db:"tso_item"` // TSO do item
	CreatedBy             string           `json:"created_by" db:"created_by"`
	UpdatedBy             string           `json:"updated_by" db:"updated_by"`
	CreatedAt             time.Time        `json:"created_at" db:"created_at"`
	UpdatedAt             time.Time        `json:"updated_at" db:"updated_at"`
}

// MaxOrderItemQuantity bounds a single order line
// Quantidade máxima de um item de pedido
const MaxOrderItemQuantity = 9999

// MovementFilter narrows inflow/outflow history queries
// Filtro de histórico de movimentações
type MovementFilter struct {
	Search   string     // texto livre (nome, MPN, PN, descrição)
	ItemID   int64      // item específico (0 desliga o filtro)
	StockID  int64      // registro de estoque específico (0 desliga o filtro)
	DateFrom *time.Time // data inicial (inclusive)
	DateTo   *time.Time // data final (inclusive)
	Limit    int        // máximo de registros
}

// StockFilter narrows stock listing queries
// Filtro de listagem de estoque
type StockFilter struct {
	Site           string     // OM
	SubSite        string     // sub-site
	Search         string     // texto livre
	Kanban         Kanban     // classe kanban
	ExpiringBefore *time.Time // validade até a data (inclusive)
}

// OrderFilter narrows order listing queries
// Filtro de listagem de pedidos
type OrderFilter struct {
	Search    string
	Status    OrderStatus
	OrderType OrderType
	Year      int
}

// NewMovementID generates the id for an inflow/outflow record
// Gera o identificador de um registro de movimentação
func NewMovementID() string {
	return uuid.New().String()
}
