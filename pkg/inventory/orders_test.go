package inventory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

func TestOrderBook_CreateOrder_AssignsNextNumber(t *testing.T) {
	mockStorage := new(MockStorage)
	book := NewOrderBook(mockStorage, zap.NewNop())
	ctx := context.Background()

	mockStorage.On("MaxOrderNumber", ctx, 2024).Return(int64(37), nil)
	mockStorage.On("CreateOrder", ctx, mock.AnythingOfType("*inventory.Order")).Return(nil)

	order := &Order{OrderYear: 2024, CreatedBy: "sargento"}
	err := book.CreateOrder(ctx, order)

	assert.NoError(t, err)
	assert.Equal(t, int64(38), order.OrderNumber)
	assert.Equal(t, OrderStatusNotSent, order.Status)
	assert.Equal(t, OrderTypeRMS, order.OrderType)
	assert.Equal(t, "sargento", order.UpdatedBy)
	mockStorage.AssertExpectations(t)
}

func TestOrderBook_CreateOrder_FirstOfYear(t *testing.T) {
	mockStorage := new(MockStorage)
	book := NewOrderBook(mockStorage, zap.NewNop())
	ctx := context.Background()

	// Novo ano: sem pedidos, a numeração recomeça em 1
	mockStorage.On("MaxOrderNumber", ctx, 2025).Return(int64(0), nil)
	mockStorage.On("CreateOrder", ctx, mock.AnythingOfType("*inventory.Order")).Return(nil)

	order := &Order{OrderYear: 2025, CreatedBy: "sargento"}
	err := book.CreateOrder(ctx, order)

	assert.NoError(t, err)
	assert.Equal(t, int64(1), order.OrderNumber)
	mockStorage.AssertExpectations(t)
}

func TestOrderBook_CreateOrder_ExplicitNumberSkipsLookup(t *testing.T) {
	mockStorage := new(MockStorage)
	book := NewOrderBook(mockStorage, zap.NewNop())
	ctx := context.Background()

	mockStorage.On("CreateOrder", ctx, mock.AnythingOfType("*inventory.Order")).Return(nil)

	order := &Order{OrderNumber: 120, OrderYear: 2024, CreatedBy: "sargento"}
	err := book.CreateOrder(ctx, order)

	assert.NoError(t, err)
	assert.Equal(t, int64(120), order.OrderNumber)
	mockStorage.AssertNotCalled(t, "MaxOrderNumber", ctx, mock.Anything)
	mockStorage.AssertExpectations(t)
}

func TestOrderBook_CreateOrder_DuplicateNumber(t *testing.T) {
	mockStorage := new(MockStorage)
	book := NewOrderBook(mockStorage, zap.NewNop())
	ctx := context.Background()

	// Corrida de numeração: a restrição única rejeita o perdedor
	mockStorage.On("MaxOrderNumber", ctx, 2024).Return(int64(37), nil)
	mockStorage.On("CreateOrder", ctx, mock.AnythingOfType("*inventory.Order")).Return(ErrDuplicateOrder)

	err := book.CreateOrder(ctx, &Order{OrderYear: 2024, CreatedBy: "sargento"})

	assert.Equal(t, ErrDuplicateOrder, err)
	mockStorage.AssertExpectations(t)
}

func TestOrderBook_CreateOrder_InvalidYear(t *testing.T) {
	mockStorage := new(MockStorage)
	book := NewOrderBook(mockStorage, zap.NewNop())
	ctx := context.Background()

	err := book.CreateOrder(ctx, &Order{OrderYear: 1889, CreatedBy: "sargento"})

	assert.Error(t, err)
	var vErr *ValidationError
	assert.ErrorAs(t, err, &vErr)
	assert.Equal(t, "order_year", vErr.Field)
	mockStorage.AssertNotCalled(t, "CreateOrder", ctx, mock.Anything)
}

func TestOrderBook_FindOrCreateOrder_FillsOnlyEmptyFields(t *testing.T) {
	mockStorage := new(MockStorage)
	book := NewOrderBook(mockStorage, zap.NewNop())
	ctx := context.Background()

	existing := &Order{ID: 3, OrderNumber: 38, OrderYear: 2024, Requester: RequesterBAVEX, Notes: "urgente"}
	orderDate := time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC)

	mockStorage.On("GetOrderByNumber", ctx, int64(38), 2024).Return(existing, nil)
	mockStorage.On("UpdateOrder", ctx, mock.AnythingOfType("*inventory.Order")).Return(nil)

	order, err := book.FindOrCreateOrder(ctx, &Order{
		OrderNumber: 38,
		OrderYear:   2024,
		OrderDate:   &orderDate,
		Requester:   RequesterBMS,
		Notes:       "planilha SPU",
		CreatedBy:   "importador",
	})

	assert.NoError(t, err)
	// Solicitante já preenchido não é sobrescrito; data vazia é preenchida
	assert.Equal(t, RequesterBAVEX, order.Requester)
	assert.Equal(t, orderDate, *order.OrderDate)
	assert.Equal(t, "urgente\nplanilha SPU", order.Notes)
	mockStorage.AssertExpectations(t)
}

func TestOrderBook_FindOrCreateOrder_AdvancesStatus(t *testing.T) {
	mockStorage := new(MockStorage)
	book := NewOrderBook(mockStorage, zap.NewNop())
	ctx := context.Background()

	existing := &Order{ID: 3, OrderNumber: 38, OrderYear: 2024, Requester: RequesterBAVEX, Status: OrderStatusOpen}

	mockStorage.On("GetOrderByNumber", ctx, int64(38), 2024).Return(existing, nil)
	mockStorage.On("UpdateOrder", ctx, mock.AnythingOfType("*inventory.Order")).Return(nil)

	order, err := book.FindOrCreateOrder(ctx, &Order{
		OrderNumber: 38,
		OrderYear:   2024,
		OrderType:   OrderTypeFSM,
		Status:      OrderStatusClosed,
		CreatedBy:   "importador",
	})

	assert.NoError(t, err)
	// Reimportar a planilha avança o status e preenche o tipo vazio
	assert.Equal(t, OrderStatusClosed, order.Status)
	assert.Equal(t, OrderTypeFSM, order.OrderType)
	assert.Equal(t, "importador", order.UpdatedBy)
	mockStorage.AssertExpectations(t)
}

func TestOrderBook_FindOrCreateOrder_KeepsExistingOrderType(t *testing.T) {
	mockStorage := new(MockStorage)
	book := NewOrderBook(mockStorage, zap.NewNop())
	ctx := context.Background()

	existing := &Order{ID: 4, OrderNumber: 39, OrderYear: 2024, Requester: RequesterBAVEX, OrderType: OrderTypeRMS, Status: OrderStatusOpen}

	mockStorage.On("GetOrderByNumber", ctx, int64(39), 2024).Return(existing, nil)

	order, err := book.FindOrCreateOrder(ctx, &Order{
		OrderNumber: 39,
		OrderYear:   2024,
		OrderType:   OrderTypeREQ,
		Status:      OrderStatusOpen,
	})

	assert.NoError(t, err)
	assert.Equal(t, OrderTypeRMS, order.OrderType)
	mockStorage.AssertNotCalled(t, "UpdateOrder", ctx, mock.Anything)
	mockStorage.AssertExpectations(t)
}

func TestOrderBook_FindOrCreateOrder_DedupesNotes(t *testing.T) {
	mockStorage := new(MockStorage)
	book := NewOrderBook(mockStorage, zap.NewNop())
	ctx := context.Background()

	existing := &Order{ID: 3, OrderNumber: 38, OrderYear: 2024, Requester: RequesterBAVEX, Notes: "planilha SPU"}

	mockStorage.On("GetOrderByNumber", ctx, int64(38), 2024).Return(existing, nil)

	order, err := book.FindOrCreateOrder(ctx, &Order{
		OrderNumber: 38,
		OrderYear:   2024,
		Requester:   RequesterBAVEX,
		Notes:       "planilha SPU",
	})

	assert.NoError(t, err)
	assert.Equal(t, "planilha SPU", order.Notes)
	mockStorage.AssertNotCalled(t, "UpdateOrder", ctx, mock.Anything)
	mockStorage.AssertExpectations(t)
}

func TestOrderBook_FindOrCreateOrder_CreatesWhenAbsent(t *testing.T) {
	mockStorage := new(MockStorage)
	book := NewOrderBook(mockStorage, zap.NewNop())
	ctx := context.Background()

	mockStorage.On("GetOrderByNumber", ctx, int64(38), 2024).Return(nil, ErrOrderNotFound)
	mockStorage.On("CreateOrder", ctx, mock.AnythingOfType("*inventory.Order")).Return(nil)

	order, err := book.FindOrCreateOrder(ctx, &Order{OrderNumber: 38, OrderYear: 2024, CreatedBy: "importador"})

	assert.NoError(t, err)
	assert.Equal(t, int64(38), order.OrderNumber)
	mockStorage.AssertExpectations(t)
}

func TestOrderBook_AddOrderItem_StockReference(t *testing.T) {
	mockStorage := new(MockStorage)
	book := NewOrderBook(mockStorage, zap.NewNop())
	ctx := context.Background()

	stockID := int64(42)

	mockStorage.On("GetOrder", ctx, int64(3)).Return(&Order{ID: 3}, nil)
	mockStorage.On("GetStock", ctx, int64(42)).Return(&Stock{ID: 42}, nil)
	mockStorage.On("CreateOrderItem", ctx, mock.AnythingOfType("*inventory.OrderItem")).Return(nil)

	line := &OrderItem{
		OrderID:     3,
		StockID:     &stockID,
		Quantity:    1,
		ServiceType: ServiceTypeAOG,
		CreatedBy:   "sargento",
	}
	err := book.AddOrderItem(ctx, line)

	assert.NoError(t, err)
	assert.Equal(t, "sargento", line.UpdatedBy)
	mockStorage.AssertExpectations(t)
}

func TestOrderBook_AddOrderItem_BothReferences(t *testing.T) {
	mockStorage := new(MockStorage)
	book := NewOrderBook(mockStorage, zap.NewNop())
	ctx := context.Background()

	stockID := int64(42)
	itemID := int64(5)

	err := book.AddOrderItem(ctx, &OrderItem{
		OrderID:   3,
		StockID:   &stockID,
		ItemID:    &itemID,
		Quantity:  1,
		CreatedBy: "sargento",
	})

	assert.Equal(t, ErrOrderItemReference, err)
	mockStorage.AssertNotCalled(t, "CreateOrderItem", ctx, mock.Anything)
}

func TestOrderBook_AddOrderItem_NoReference(t *testing.T) {
	mockStorage := new(MockStorage)
	book := NewOrderBook(mockStorage, zap.NewNop())
	ctx := context.Background()

	err := book.AddOrderItem(ctx, &OrderItem{OrderID: 3, Quantity: 1, CreatedBy: "sargento"})

	assert.Equal(t, ErrOrderItemReference, err)
	mockStorage.AssertNotCalled(t, "CreateOrderItem", ctx, mock.Anything)
}

func TestOrderBook_AddOrderItem_QuantityBounds(t *testing.T) {
	mockStorage := new(MockStorage)
	book := NewOrderBook(mockStorage, zap.NewNop())
	ctx := context.Background()

	itemID := int64(5)

	for _, quantity := range []int64{0, 10000} {
		err := book.AddOrderItem(ctx, &OrderItem{
			OrderID:   3,
			ItemID:    &itemID,
			Quantity:  quantity,
			CreatedBy: "sargento",
		})
		assert.Error(t, err)
		var vErr *ValidationError
		assert.ErrorAs(t, err, &vErr)
		assert.Equal(t, "quantity", vErr.Field)
	}
	mockStorage.AssertNotCalled(t, "CreateOrderItem", ctx, mock.Anything)
}

func TestOrderBook_AddOrderItem_OrderNotFound(t *testing.T) {
	mockStorage := new(MockStorage)
	book := NewOrderBook(mockStorage, zap.NewNop())
	ctx := context.Background()

	itemID := int64(5)

	mockStorage.On("GetOrder", ctx, int64(99)).Return(nil, ErrOrderNotFound)

	err := book.AddOrderItem(ctx, &OrderItem{
		OrderID:   99,
		ItemID:    &itemID,
		Quantity:  1,
		CreatedBy: "sargento",
	})

	assert.Equal(t, ErrOrderNotFound, err)
	mockStorage.AssertExpectations(t)
}

func TestOrderBook_OrderStatistics(t *testing.T) {
	mockStorage := new(MockStorage)
	book := NewOrderBook(mockStorage, zap.NewNop())
	ctx := context.Background()

	mockStorage.On("GetOrder", ctx, int64(3)).Return(&Order{ID: 3}, nil)
	mockStorage.On("ListOrderItems", ctx, int64(3)).Return([]OrderItem{
		{Quantity: 2, ServiceType: ServiceTypeAOG, Collected: true},
		{Quantity: 1, ServiceType: ServiceTypeAOG},
		{Quantity: 4, ServiceType: ServiceTypeProg},
		{Quantity: 1},
	}, nil)

	stats, err := book.OrderStatistics(ctx, 3)

	assert.NoError(t, err)
	assert.Equal(t, 4, stats.TotalLines)
	assert.Equal(t, int64(8), stats.TotalQuantity)
	assert.Equal(t, 1, stats.Collected)
	assert.Equal(t, 2, stats.ByServiceType[ServiceTypeAOG])
	assert.Equal(t, 1, stats.ByServiceType[ServiceTypeProg])
	mockStorage.AssertExpectations(t)
}

func TestOrderBook_AddOrderItem_InvalidServiceType(t *testing.T) {
	mockStorage := new(MockStorage)
	book := NewOrderBook(mockStorage, zap.NewNop())
	ctx := context.Background()

	itemID := int64(5)

	err := book.AddOrderItem(ctx, &OrderItem{
		OrderID:     3,
		ItemID:      &itemID,
		Quantity:    1,
		ServiceType: "URGENT",
		CreatedBy:   "sargento",
	})

	assert.Error(t, err)
	var vErr *ValidationError
	assert.ErrorAs(t, err, &vErr)
	assert.Equal(t, "service_type", vErr.Field)
}
