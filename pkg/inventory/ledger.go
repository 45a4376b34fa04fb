package inventory

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
)

// Ledger implements the StockLedger interface. Every mutation appends
// an immutable Inflow or Outflow record after updating the stock row.
// Implementação do StockLedger; toda mutação gera um registro imutável
type Ledger struct {
	storage Storage     // camada de persistência
	logger  *zap.Logger // log estruturado
}

// Interfaces implementadas
var _ StockLedger = (*Ledger)(nil)

// NewLedger creates a new stock ledger
// Cria um novo registro de movimentações de estoque
func NewLedger(storage Storage, logger *zap.Logger) *Ledger {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Ledger{
		storage: storage,
		logger:  logger,
	}
}

// InflowResult carries the stock row touched by an inflow and whether
// the entry was a reinsertion of an already known serialized unit
// Resultado de uma entrada; Reinserted sinaliza reinserção de serial conhecido
type InflowResult struct {
	Stock      *Stock `json:"stock"`
	Reinserted bool   `json:"reinserted"`
}

// RegisterInflow records an arrival of parts.
//
// Serialized flow: a serial number identifies one physical unit, so an
// existing (item, serial) row is only relocated and the result is
// flagged as a reinsertion; a new serial always enters with quantity
// one. Bulk flow: the quantity accrues onto the item's serial-less
// row, created on first arrival.
// Registra uma entrada de peças (serializada ou em lote)
func (l *Ledger) RegisterInflow(ctx context.Context, in InflowRequest) (*InflowResult, error) {
	if err := ValidateActor(in.Actor); err != nil {
		return nil, err
	}
	if err := ValidateSerialNumber(in.SerialNumber); err != nil {
		return nil, err
	}
	// Quantidade não positiva é rejeitada antes de qualquer mutação,
	// inclusive no fluxo serializado
	if err := ValidatePositiveQuantity(in.Quantity); err != nil {
		return nil, err
	}

	item, err := l.storage.GetItem(ctx, in.ItemID)
	if err != nil {
		if errors.Is(err, ErrItemNotFound) {
			return nil, ErrItemNotFound
		}
		return nil, NewStorageError("get_item", "falha ao consultar item", err)
	}

	if in.LocationID != nil {
		if _, err := l.storage.GetLocation(ctx, *in.LocationID); err != nil {
			if errors.Is(err, ErrLocationNotFound) {
				return nil, ErrLocationNotFound
			}
			return nil, NewStorageError("get_location", "falha ao consultar localização", err)
		}
	}

	if in.Kanban == "" {
		in.Kanban = KanbanNone
	}
	if err := ValidateKanban(in.Kanban); err != nil {
		return nil, err
	}

	var (
		stock      *Stock
		reinserted bool
	)
	if in.SerialNumber != "" {
		stock, reinserted, err = l.inflowSerialized(ctx, item, in)
	} else {
		stock, err = l.inflowBulk(ctx, item, in)
	}
	if err != nil {
		return nil, err
	}

	inflow := &Inflow{
		ID:          NewMovementID(),
		ItemID:      item.ID,
		StockID:     stock.ID,
		Quantity:    in.Quantity,
		Description: in.Description,
		CreatedAt:   time.Now(),
		CreatedBy:   in.Actor,
	}
	if err := l.storage.CreateInflow(ctx, inflow); err != nil {
		return nil, NewStorageError("create_inflow", "falha ao registrar entrada", err)
	}
	recordInflow(inflow.Quantity)

	l.logger.Info("entrada registrada",
		zap.String("mpn", item.MPN),
		zap.String("serial_number", in.SerialNumber),
		zap.Int64("quantity", inflow.Quantity),
		zap.Int64("stock_id", stock.ID),
		zap.Bool("reinserted", reinserted),
		zap.String("actor", in.Actor),
	)

	return &InflowResult{Stock: stock, Reinserted: reinserted}, nil
}

// inflowSerialized handles the serial-number branch of an inflow
// Trata a entrada de uma unidade serializada
func (l *Ledger) inflowSerialized(ctx context.Context, item *Item, in InflowRequest) (*Stock, bool, error) {
	existing, err := l.storage.GetStockBySerial(ctx, item.ID, in.SerialNumber)
	if err != nil && !errors.Is(err, ErrStockNotFound) {
		return nil, false, NewStorageError("get_stock_by_serial", "falha ao consultar estoque", err)
	}

	if existing != nil {
		// A unidade já está no sistema. Uma nova entrada do mesmo serial é
		// uma reinserção: só a localização muda, a quantidade permanece 1.
		existing.LocationID = in.LocationID
		if in.ExpirationDate != nil {
			existing.ExpirationDate = in.ExpirationDate
		}
		existing.UpdatedAt = time.Now()
		existing.UpdatedBy = in.Actor
		if err := l.storage.UpdateStock(ctx, existing); err != nil {
			return nil, false, NewStorageError("update_stock", "falha ao atualizar estoque", err)
		}
		l.logger.Warn("reinserção de unidade serializada",
			zap.String("mpn", item.MPN),
			zap.String("serial_number", in.SerialNumber),
			zap.Int64("stock_id", existing.ID),
		)
		return existing, true, nil
	}

	serial := in.SerialNumber
	stock := &Stock{
		ItemID:          item.ID,
		SerialNumber:    &serial,
		Kanban:          in.Kanban,
		LocationID:      in.LocationID,
		Quantity:        1,
		MinimumQuantity: 1,
		ExpirationDate:  in.ExpirationDate,
		UpdatedAt:       time.Now(),
		UpdatedBy:       in.Actor,
	}
	if err := l.storage.CreateStock(ctx, stock); err != nil {
		return nil, false, NewStorageError("create_stock", "falha ao criar estoque", err)
	}
	return stock, false, nil
}

// inflowBulk handles the serial-less branch of an inflow
// Trata a entrada de itens não serializados
func (l *Ledger) inflowBulk(ctx context.Context, item *Item, in InflowRequest) (*Stock, error) {
	existing, err := l.storage.GetStockByItemNoSerial(ctx, item.ID)
	if err != nil && !errors.Is(err, ErrStockNotFound) {
		return nil, NewStorageError("get_stock", "falha ao consultar estoque", err)
	}

	if existing != nil {
		existing.Quantity += in.Quantity
		if in.LocationID != nil {
			existing.LocationID = in.LocationID
		}
		if in.ExpirationDate != nil {
			existing.ExpirationDate = in.ExpirationDate
		}
		existing.UpdatedAt = time.Now()
		existing.UpdatedBy = in.Actor
		if err := l.storage.UpdateStock(ctx, existing); err != nil {
			return nil, NewStorageError("update_stock", "falha ao atualizar estoque", err)
		}
		return existing, nil
	}

	minimum := in.MinimumQuantity
	if minimum < 0 {
		minimum = 0
	}
	stock := &Stock{
		ItemID:          item.ID,
		Kanban:          in.Kanban,
		LocationID:      in.LocationID,
		Quantity:        in.Quantity,
		MinimumQuantity: minimum,
		ExpirationDate:  in.ExpirationDate,
		UpdatedAt:       time.Now(),
		UpdatedBy:       in.Actor,
	}
	if err := l.storage.CreateStock(ctx, stock); err != nil {
		return nil, NewStorageError("create_stock", "falha ao criar estoque", err)
	}
	return stock, nil
}

// AddToStock adds quantity onto a known stock row. Serialized rows are
// rejected because their quantity is fixed at one.
// Acrescenta quantidade a um registro de estoque conhecido
func (l *Ledger) AddToStock(ctx context.Context, stockID int64, quantity int64, description, actor string) (*Stock, error) {
	if err := ValidateActor(actor); err != nil {
		return nil, err
	}
	if err := ValidatePositiveQuantity(quantity); err != nil {
		return nil, err
	}

	stock, err := l.storage.GetStock(ctx, stockID)
	if err != nil {
		if errors.Is(err, ErrStockNotFound) {
			return nil, ErrStockNotFound
		}
		return nil, NewStorageError("get_stock", "falha ao consultar estoque", err)
	}

	if stock.Serialized() {
		recordRejection("serialized_quantity")
		return nil, ErrSerializedQuantity
	}

	stock.Quantity += quantity
	stock.UpdatedAt = time.Now()
	stock.UpdatedBy = actor
	if err := l.storage.UpdateStock(ctx, stock); err != nil {
		return nil, NewStorageError("update_stock", "falha ao atualizar estoque", err)
	}

	inflow := &Inflow{
		ID:          NewMovementID(),
		ItemID:      stock.ItemID,
		StockID:     stock.ID,
		Quantity:    quantity,
		Description: description,
		CreatedAt:   time.Now(),
		CreatedBy:   actor,
	}
	if err := l.storage.CreateInflow(ctx, inflow); err != nil {
		return nil, NewStorageError("create_inflow", "falha ao registrar entrada", err)
	}
	recordInflow(quantity)

	l.logger.Info("quantidade acrescentada ao estoque",
		zap.Int64("stock_id", stock.ID),
		zap.Int64("quantity", quantity),
		zap.Int64("new_quantity", stock.Quantity),
		zap.String("actor", actor),
	)

	return stock, nil
}

// RegisterOutflow records a departure of parts.
//
// A serialized unit leaves whole: the request must ask for exactly one
// and the row is relocated to the claimant instead of being drained.
// A bulk row is decremented and kept even at zero, so the minimum
// quantity keeps flagging the shortage.
// Registra uma saída de peças (transferência se serializada)
func (l *Ledger) RegisterOutflow(ctx context.Context, out OutflowRequest) (*Stock, error) {
	if err := ValidateActor(out.Actor); err != nil {
		return nil, err
	}
	if err := ValidatePositiveQuantity(out.Quantity); err != nil {
		return nil, err
	}

	claimant, err := l.storage.GetLocation(ctx, out.ClaimantID)
	if err != nil {
		if errors.Is(err, ErrLocationNotFound) {
			return nil, ErrLocationNotFound
		}
		return nil, NewStorageError("get_location", "falha ao consultar solicitante", err)
	}

	stock, err := l.storage.GetStock(ctx, out.StockID)
	if err != nil {
		if errors.Is(err, ErrStockNotFound) {
			return nil, ErrStockNotFound
		}
		return nil, NewStorageError("get_stock", "falha ao consultar estoque", err)
	}

	if stock.Serialized() {
		if out.Quantity != 1 {
			recordRejection("serialized_quantity")
			return nil, ErrSerializedQuantity
		}
		// Transferência: a unidade passa a pertencer ao solicitante
		stock.LocationID = &claimant.ID
		stock.UpdatedAt = time.Now()
		stock.UpdatedBy = out.Actor
		if err := l.storage.UpdateStock(ctx, stock); err != nil {
			return nil, NewStorageError("update_stock", "falha ao atualizar estoque", err)
		}
	} else {
		if out.Quantity > stock.Quantity {
			recordRejection("insufficient_stock")
			return nil, ErrInsufficientStock
		}
		// O registro permanece mesmo zerado; o mínimo continua sinalizando
		stock.Quantity -= out.Quantity
		stock.UpdatedAt = time.Now()
		stock.UpdatedBy = out.Actor
		if err := l.storage.UpdateStock(ctx, stock); err != nil {
			return nil, NewStorageError("update_stock", "falha ao atualizar estoque", err)
		}
	}

	outflow := &Outflow{
		ID:          NewMovementID(),
		StockID:     stock.ID,
		Quantity:    out.Quantity,
		ClaimantID:  claimant.ID,
		Reason:      out.Reason,
		Description: out.Description,
		CreatedAt:   time.Now(),
		CreatedBy:   out.Actor,
	}
	if err := l.storage.CreateOutflow(ctx, outflow); err != nil {
		return nil, NewStorageError("create_outflow", "falha ao registrar saída", err)
	}
	recordOutflow(out.Quantity)

	l.logger.Info("saída registrada",
		zap.Int64("stock_id", stock.ID),
		zap.Int64("quantity", out.Quantity),
		zap.Int64("claimant_id", claimant.ID),
		zap.Bool("serialized", stock.Serialized()),
		zap.String("actor", out.Actor),
	)

	return stock, nil
}

// GetStock retrieves a stock row by id
// Consulta um registro de estoque pelo id
func (l *Ledger) GetStock(ctx context.Context, stockID int64) (*Stock, error) {
	stock, err := l.storage.GetStock(ctx, stockID)
	if err != nil {
		if errors.Is(err, ErrStockNotFound) {
			return nil, ErrStockNotFound
		}
		return nil, NewStorageError("get_stock", "falha ao consultar estoque", err)
	}
	return stock, nil
}

// ListStock lists stock rows matching the filter
// Lista registros de estoque conforme o filtro
func (l *Ledger) ListStock(ctx context.Context, filter StockFilter) ([]Stock, error) {
	rows, err := l.storage.ListStock(ctx, filter)
	if err != nil {
		return nil, NewStorageError("list_stock", "falha ao listar estoque", err)
	}
	return rows, nil
}

// TotalQuantity sums the quantity of every stock row of an item
// Soma a quantidade de todos os registros de estoque de um item
func (l *Ledger) TotalQuantity(ctx context.Context, itemID int64) (int64, error) {
	total, err := l.storage.TotalQuantity(ctx, itemID)
	if err != nil {
		return 0, NewStorageError("total_quantity", "falha ao somar estoque", err)
	}
	return total, nil
}

// InflowHistory lists inflow records matching the filter
// Lista entradas conforme o filtro
func (l *Ledger) InflowHistory(ctx context.Context, filter MovementFilter) ([]Inflow, error) {
	rows, err := l.storage.ListInflows(ctx, filter)
	if err != nil {
		return nil, NewStorageError("list_inflows", "falha ao listar entradas", err)
	}
	return rows, nil
}

// OutflowHistory lists outflow records matching the filter
// Lista saídas conforme o filtro
func (l *Ledger) OutflowHistory(ctx context.Context, filter MovementFilter) ([]Outflow, error) {
	rows, err := l.storage.ListOutflows(ctx, filter)
	if err != nil {
		return nil, NewStorageError("list_outflows", "falha ao listar saídas", err)
	}
	return rows, nil
}
