package inventory

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
)

// OrderBook implements the OrderManager interface
// Implementação do gerenciamento de pedidos
type OrderBook struct {
	storage Storage
	logger  *zap.Logger
}

var _ OrderManager = (*OrderBook)(nil)

// NewOrderBook creates a new order manager
// Cria um novo gerenciador de pedidos
func NewOrderBook(storage Storage, logger *zap.Logger) *OrderBook {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OrderBook{
		storage: storage,
		logger:  logger,
	}
}

// CreateOrder registers a new order. When OrderNumber is zero the next
// free number of the order year is assigned: one past the current
// maximum, starting at one each year.
//
// The number is read and then written in two steps, so two concurrent
// creations in the same year can race for the same number. The unique
// constraint on (order_number, order_year) rejects the loser with
// ErrDuplicateOrder.
// Cadastra um pedido; sem número informado, atribui o próximo do ano
func (b *OrderBook) CreateOrder(ctx context.Context, order *Order) error {
	if err := ValidateActor(order.CreatedBy); err != nil {
		return err
	}
	if order.OrderYear == 0 {
		order.OrderYear = time.Now().Year()
	}
	if order.Status == "" {
		order.Status = OrderStatusNotSent
	}
	if order.OrderType == "" {
		order.OrderType = OrderTypeRMS
	}
	if err := ValidateOrderYear(order.OrderYear); err != nil {
		return err
	}
	if err := ValidateOrderStatus(order.Status); err != nil {
		return err
	}
	if err := ValidateOrderType(order.OrderType); err != nil {
		return err
	}
	if err := ValidateRequester(order.Requester); err != nil {
		return err
	}

	if order.OrderNumber == 0 {
		max, err := b.storage.MaxOrderNumber(ctx, order.OrderYear)
		if err != nil {
			return NewStorageError("max_order_number", "falha ao consultar numeração", err)
		}
		order.OrderNumber = max + 1
	}

	now := time.Now()
	order.CreatedAt = now
	order.UpdatedAt = now
	order.UpdatedBy = order.CreatedBy

	if err := b.storage.CreateOrder(ctx, order); err != nil {
		if errors.Is(err, ErrDuplicateOrder) {
			return ErrDuplicateOrder
		}
		return NewStorageError("create_order", "falha ao cadastrar pedido", err)
	}
	recordOrderCreated()

	b.logger.Info("pedido cadastrado",
		zap.Int64("order_number", order.OrderNumber),
		zap.Int("order_year", order.OrderYear),
		zap.String("order_type", string(order.OrderType)),
		zap.String("actor", order.CreatedBy),
	)
	return nil
}

// GetOrder retrieves an order by id
// Consulta um pedido pelo id
func (b *OrderBook) GetOrder(ctx context.Context, orderID int64) (*Order, error) {
	order, err := b.storage.GetOrder(ctx, orderID)
	if err != nil {
		if errors.Is(err, ErrOrderNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, NewStorageError("get_order", "falha ao consultar pedido", err)
	}
	return order, nil
}

// GetOrderByNumber retrieves an order by its number and year
// Consulta um pedido pelo número e ano
func (b *OrderBook) GetOrderByNumber(ctx context.Context, number int64, year int) (*Order, error) {
	order, err := b.storage.GetOrderByNumber(ctx, number, year)
	if err != nil {
		if errors.Is(err, ErrOrderNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, NewStorageError("get_order_by_number", "falha ao consultar pedido", err)
	}
	return order, nil
}

// FindOrCreateOrder looks an order up by number and year, creating it
// when absent. On an existing order, empty fields are filled from the
// incoming record and a non-empty note is appended, never overwritten.
// Busca um pedido por número e ano, criando quando ausente; em pedido
// existente, só preenche campos vazios e anexa observações
func (b *OrderBook) FindOrCreateOrder(ctx context.Context, incoming *Order) (*Order, error) {
	if incoming.OrderNumber <= 0 {
		return nil, NewValidationError("order_number", "número do pedido deve ser positivo", fmt.Sprintf("%d", incoming.OrderNumber))
	}
	if incoming.OrderYear == 0 {
		incoming.OrderYear = time.Now().Year()
	}

	existing, err := b.storage.GetOrderByNumber(ctx, incoming.OrderNumber, incoming.OrderYear)
	if err != nil {
		if !errors.Is(err, ErrOrderNotFound) {
			return nil, NewStorageError("get_order_by_number", "falha ao consultar pedido", err)
		}
		if err := b.CreateOrder(ctx, incoming); err != nil {
			return nil, err
		}
		return incoming, nil
	}

	changed := false
	if existing.OrderDate == nil && incoming.OrderDate != nil {
		existing.OrderDate = incoming.OrderDate
		changed = true
	}
	if existing.Requester == "" && incoming.Requester != "" {
		existing.Requester = incoming.Requester
		changed = true
	}
	if existing.OrderType == "" && incoming.OrderType != "" {
		existing.OrderType = incoming.OrderType
		changed = true
	}
	// O status acompanha a planilha mais recente
	if incoming.Status != "" && incoming.Status != existing.Status {
		existing.Status = incoming.Status
		changed = true
	}
	if incoming.Notes != "" && !strings.Contains(existing.Notes, incoming.Notes) {
		if existing.Notes != "" {
			existing.Notes += "\n"
		}
		existing.Notes += incoming.Notes
		changed = true
	}

	if changed {
		existing.UpdatedAt = time.Now()
		if incoming.CreatedBy != "" {
			existing.UpdatedBy = incoming.CreatedBy
		}
		if err := b.storage.UpdateOrder(ctx, existing); err != nil {
			return nil, NewStorageError("update_order", "falha ao atualizar pedido", err)
		}
	}
	return existing, nil
}

// UpdateOrder persists changes to an existing order
// Atualiza um pedido existente
func (b *OrderBook) UpdateOrder(ctx context.Context, order *Order) error {
	order.UpdatedAt = time.Now()
	if err := b.storage.UpdateOrder(ctx, order); err != nil {
		if errors.Is(err, ErrOrderNotFound) {
			return ErrOrderNotFound
		}
		return NewStorageError("update_order", "falha ao atualizar pedido", err)
	}
	return nil
}

// ListOrders lists orders matching the filter
// Lista pedidos conforme o filtro
func (b *OrderBook) ListOrders(ctx context.Context, filter OrderFilter) ([]Order, error) {
	orders, err := b.storage.ListOrders(ctx, filter)
	if err != nil {
		return nil, NewStorageError("list_orders", "falha ao listar pedidos", err)
	}
	return orders, nil
}

// AddOrderItem appends a line to an order. The line must reference
// exactly one of a stock row or a catalog item, and its quantity is
// bounded to 9999. Order lines never touch stock quantities.
// Acrescenta um item ao pedido; referencia estoque OU catálogo
func (b *OrderBook) AddOrderItem(ctx context.Context, line *OrderItem) error {
	if err := b.validateOrderItem(ctx, line); err != nil {
		return err
	}

	now := time.Now()
	line.CreatedAt = now
	line.UpdatedAt = now
	if line.UpdatedBy == "" {
		line.UpdatedBy = line.CreatedBy
	}

	if err := b.storage.CreateOrderItem(ctx, line); err != nil {
		return NewStorageError("create_order_item", "falha ao cadastrar item de pedido", err)
	}

	b.logger.Info("item de pedido cadastrado",
		zap.Int64("order_id", line.OrderID),
		zap.Int64("quantity", line.Quantity),
		zap.String("service_type", string(line.ServiceType)),
		zap.String("actor", line.CreatedBy),
	)
	return nil
}

// UpdateOrderItem persists changes to an existing order line
// Atualiza um item de pedido existente
func (b *OrderBook) UpdateOrderItem(ctx context.Context, line *OrderItem) error {
	if err := b.validateOrderItem(ctx, line); err != nil {
		return err
	}
	line.UpdatedAt = time.Now()
	if err := b.storage.UpdateOrderItem(ctx, line); err != nil {
		if errors.Is(err, ErrOrderNotFound) {
			return ErrOrderNotFound
		}
		return NewStorageError("update_order_item", "falha ao atualizar item de pedido", err)
	}
	return nil
}

// ListOrderItems lists the lines of an order
// Lista os itens de um pedido
func (b *OrderBook) ListOrderItems(ctx context.Context, orderID int64) ([]OrderItem, error) {
	lines, err := b.storage.ListOrderItems(ctx, orderID)
	if err != nil {
		return nil, NewStorageError("list_order_items", "falha ao listar itens de pedido", err)
	}
	return lines, nil
}

// OrderStatistics summarizes the lines of an order for its detail view
// Resumo dos itens de um pedido para a tela de detalhe
type OrderStatistics struct {
	TotalLines    int                 `json:"total_lines"`     // itens do pedido
	TotalQuantity int64               `json:"total_quantity"`  // soma das quantidades
	Collected     int                 `json:"collected"`       // itens já coletados
	ByServiceType map[ServiceType]int `json:"by_service_type"` // distribuição por atendimento
}

// OrderStatistics computes the detail summary of an order
// Calcula o resumo de detalhe de um pedido
func (b *OrderBook) OrderStatistics(ctx context.Context, orderID int64) (*OrderStatistics, error) {
	if _, err := b.GetOrder(ctx, orderID); err != nil {
		return nil, err
	}
	lines, err := b.ListOrderItems(ctx, orderID)
	if err != nil {
		return nil, err
	}

	stats := &OrderStatistics{
		TotalLines:    len(lines),
		ByServiceType: make(map[ServiceType]int),
	}
	for _, line := range lines {
		stats.TotalQuantity += line.Quantity
		if line.Collected {
			stats.Collected++
		}
		if line.ServiceType != "" {
			stats.ByServiceType[line.ServiceType]++
		}
	}
	return stats, nil
}

// validateOrderItem enforces the reference and quantity rules of a line
// Valida as regras de referência e quantidade de um item de pedido
func (b *OrderBook) validateOrderItem(ctx context.Context, line *OrderItem) error {
	if line.CreatedBy == "" && line.UpdatedBy == "" {
		return NewValidationError("created_by", "responsável pela operação é obrigatório", "")
	}
	if (line.StockID == nil) == (line.ItemID == nil) {
		return ErrOrderItemReference
	}
	if err := ValidateServiceType(line.ServiceType); err != nil {
		return err
	}
	if line.Quantity < 1 || line.Quantity > MaxOrderItemQuantity {
		return NewValidationError("quantity",
			fmt.Sprintf("quantidade deve estar entre 1 e %d", MaxOrderItemQuantity),
			fmt.Sprintf("%d", line.Quantity))
	}

	if _, err := b.storage.GetOrder(ctx, line.OrderID); err != nil {
		if errors.Is(err, ErrOrderNotFound) {
			return ErrOrderNotFound
		}
		return NewStorageError("get_order", "falha ao consultar pedido", err)
	}
	if line.StockID != nil {
		if _, err := b.storage.GetStock(ctx, *line.StockID); err != nil {
			if errors.Is(err, ErrStockNotFound) {
				return ErrStockNotFound
			}
			return NewStorageError("get_stock", "falha ao consultar estoque", err)
		}
	}
	if line.ItemID != nil {
		if _, err := b.storage.GetItem(ctx, *line.ItemID); err != nil {
			if errors.Is(err, ErrItemNotFound) {
				return ErrItemNotFound
			}
			return NewStorageError("get_item", "falha ao consultar item", err)
		}
	}
	return nil
}
