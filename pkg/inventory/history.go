package inventory

import (
	"context"
	"sort"
	"time"

	"go.uber.org/zap"
)

// TraceManager answers traceability questions over the movement log
// Responde consultas de rastreabilidade sobre o log de movimentações
type TraceManager struct {
	storage Storage
	logger  *zap.Logger
}

// NewTraceManager creates a new trace manager
// Cria um novo gerenciador de rastreabilidade
func NewTraceManager(storage Storage, logger *zap.Logger) *TraceManager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TraceManager{
		storage: storage,
		logger:  logger,
	}
}

// MovementKind distinguishes the two sides of the movement log
// Distingue os dois lados do log de movimentações
type MovementKind string

const (
	MovementInflow  MovementKind = "IN"  // entrada
	MovementOutflow MovementKind = "OUT" // saída
)

// MovementRecord is one entry of a merged movement timeline
// Uma posição da linha do tempo combinada de movimentações
type MovementRecord struct {
	Kind        MovementKind `json:"kind"`
	ID          string       `json:"id"`
	StockID     int64        `json:"stock_id"`
	Quantity    int64        `json:"quantity"`
	Description string       `json:"description"`
	CreatedAt   time.Time    `json:"created_at"`
	CreatedBy   string       `json:"created_by"`
}

// ItemTimeline merges the inflows and outflows of an item into a single
// timeline, newest first
// Linha do tempo de um item, combinando entradas e saídas (mais recentes primeiro)
func (tm *TraceManager) ItemTimeline(ctx context.Context, itemID int64, limit int) ([]MovementRecord, error) {
	if _, err := tm.storage.GetItem(ctx, itemID); err != nil {
		return nil, err
	}

	filter := MovementFilter{ItemID: itemID, Limit: limit}
	return tm.mergedTimeline(ctx, filter, limit)
}

// UnitTrace returns the full movement history of one stock row. For a
// serialized unit this is the life of the physical part.
// Histórico completo de um registro de estoque (a vida da peça, se serializada)
func (tm *TraceManager) UnitTrace(ctx context.Context, stockID int64) ([]MovementRecord, error) {
	if _, err := tm.storage.GetStock(ctx, stockID); err != nil {
		return nil, err
	}

	filter := MovementFilter{StockID: stockID}
	return tm.mergedTimeline(ctx, filter, 0)
}

func (tm *TraceManager) mergedTimeline(ctx context.Context, filter MovementFilter, limit int) ([]MovementRecord, error) {
	inflows, err := tm.storage.ListInflows(ctx, filter)
	if err != nil {
		return nil, NewStorageError("list_inflows", "falha ao listar entradas", err)
	}
	outflows, err := tm.storage.ListOutflows(ctx, filter)
	if err != nil {
		return nil, NewStorageError("list_outflows", "falha ao listar saídas", err)
	}

	records := make([]MovementRecord, 0, len(inflows)+len(outflows))
	for _, in := range inflows {
		records = append(records, MovementRecord{
			Kind:        MovementInflow,
			ID:          in.ID,
			StockID:     in.StockID,
			Quantity:    in.Quantity,
			Description: in.Description,
			CreatedAt:   in.CreatedAt,
			CreatedBy:   in.CreatedBy,
		})
	}
	for _, out := range outflows {
		records = append(records, MovementRecord{
			Kind:        MovementOutflow,
			ID:          out.ID,
			StockID:     out.StockID,
			Quantity:    out.Quantity,
			Description: out.Description,
			CreatedAt:   out.CreatedAt,
			CreatedBy:   out.CreatedBy,
		})
	}

	sort.Slice(records, func(i, j int) bool {
		return records[i].CreatedAt.After(records[j].CreatedAt)
	})
	if limit > 0 && len(records) > limit {
		records = records[:limit]
	}
	return records, nil
}

// ExpiringStock lists stock rows whose expiration date falls inside the
// given window from now
// Lista registros de estoque com validade dentro da janela informada
func (tm *TraceManager) ExpiringStock(ctx context.Context, within time.Duration) ([]Stock, error) {
	if within <= 0 {
		return nil, NewValidationError("within", "a janela deve ser positiva", within.String())
	}

	threshold := time.Now().Add(within)
	stocks, err := tm.storage.ListStock(ctx, StockFilter{ExpiringBefore: &threshold})
	if err != nil {
		return nil, NewStorageError("list_stock", "falha ao listar estoque", err)
	}

	tm.logger.Info("consulta de validade concluída",
		zap.Duration("within", within),
		zap.Time("threshold", threshold),
		zap.Int("count", len(stocks)),
	)

	return stocks, nil
}

// ExpiredStock lists stock rows whose expiration date has passed
// Lista registros de estoque já vencidos
func (tm *TraceManager) ExpiredStock(ctx context.Context) ([]Stock, error) {
	now := time.Now()
	stocks, err := tm.storage.ListStock(ctx, StockFilter{ExpiringBefore: &now})
	if err != nil {
		return nil, NewStorageError("list_stock", "falha ao listar estoque", err)
	}
	return stocks, nil
}
