package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"github.com/sltavares/estoqueGo/pkg/inventory"
)

// Order persistence and dashboard aggregates
// Persistência de pedidos e agregados do painel

// CreateOrder creates a new order. The unique constraint on
// (order_number, order_year) is the arbiter when two creations race
// for the same number.
// Cadastra um pedido; a constraint única arbitra corridas de numeração
func (s *PostgreSQLStorage) CreateOrder(ctx context.Context, order *inventory.Order) error {
	query := `
		INSERT INTO orders (order_number, order_year, order_date, requester, order_type, status, notes, created_by, updated_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id`

	err := s.db.QueryRowContext(ctx, query,
		order.OrderNumber,
		order.OrderYear,
		order.OrderDate,
		order.Requester,
		order.OrderType,
		order.Status,
		order.Notes,
		order.CreatedBy,
		order.UpdatedBy,
		order.CreatedAt,
		order.UpdatedAt,
	).Scan(&order.ID)

	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return inventory.ErrDuplicateOrder
		}
		return fmt.Errorf("falha ao cadastrar pedido: %w", err)
	}

	return nil
}

const orderColumns = `id, order_number, order_year, order_date, requester, order_type, status, notes, created_by, updated_by, created_at, updated_at`

func scanOrder(row *sql.Row) (*inventory.Order, error) {
	order := &inventory.Order{}
	err := row.Scan(
		&order.ID,
		&order.OrderNumber,
		&order.OrderYear,
		&order.OrderDate,
		&order.Requester,
		&order.OrderType,
		&order.Status,
		&order.Notes,
		&order.CreatedBy,
		&order.UpdatedBy,
		&order.CreatedAt,
		&order.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, inventory.ErrOrderNotFound
		}
		return nil, fmt.Errorf("falha ao consultar pedido: %w", err)
	}
	return order, nil
}

// GetOrder retrieves an order by id
// Consulta um pedido pelo id
func (s *PostgreSQLStorage) GetOrder(ctx context.Context, orderID int64) (*inventory.Order, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE id = $1`, orderID)
	return scanOrder(row)
}

// GetOrderByNumber retrieves an order by number and year
// Consulta um pedido pelo número e ano
func (s *PostgreSQLStorage) GetOrderByNumber(ctx context.Context, number int64, year int) (*inventory.Order, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE order_number = $1 AND order_year = $2`,
		number, year)
	return scanOrder(row)
}

// UpdateOrder updates an existing order
// Atualiza um pedido existente
func (s *PostgreSQLStorage) UpdateOrder(ctx context.Context, order *inventory.Order) error {
	query := `
		UPDATE orders
		SET order_date = $2, requester = $3, order_type = $4, status = $5, notes = $6, updated_by = $7, updated_at = $8
		WHERE id = $1`

	result, err := s.db.ExecContext(ctx, query,
		order.ID,
		order.OrderDate,
		order.Requester,
		order.OrderType,
		order.Status,
		order.Notes,
		order.UpdatedBy,
		order.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("falha ao atualizar pedido: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("falha ao obter linhas afetadas: %w", err)
	}
	if rowsAffected == 0 {
		return inventory.ErrOrderNotFound
	}

	return nil
}

// ListOrders lists orders matching the filter
// Lista pedidos conforme o filtro
func (s *PostgreSQLStorage) ListOrders(ctx context.Context, filter inventory.OrderFilter) ([]inventory.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE 1=1`

	args := []interface{}{}
	n := 0
	next := func() string {
		n++
		return fmt.Sprintf("$%d", n)
	}

	if filter.Status != "" {
		query += ` AND status = ` + next()
		args = append(args, filter.Status)
	}
	if filter.OrderType != "" {
		query += ` AND order_type = ` + next()
		args = append(args, filter.OrderType)
	}
	if filter.Year != 0 {
		query += ` AND order_year = ` + next()
		args = append(args, filter.Year)
	}
	if filter.Search != "" {
		p := next()
		query += ` AND (notes ILIKE ` + p + ` OR CAST(order_number AS TEXT) LIKE ` + p + `)`
		args = append(args, "%"+filter.Search+"%")
	}
	query += ` ORDER BY order_year DESC, order_number DESC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("falha ao listar pedidos: %w", err)
	}
	defer rows.Close()

	var orders []inventory.Order
	for rows.Next() {
		var order inventory.Order
		err := rows.Scan(
			&order.ID,
			&order.OrderNumber,
			&order.OrderYear,
			&order.OrderDate,
			&order.Requester,
			&order.OrderType,
			&order.Status,
			&order.Notes,
			&order.CreatedBy,
			&order.UpdatedBy,
			&order.CreatedAt,
			&order.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("falha ao ler pedido: %w", err)
		}
		orders = append(orders, order)
	}
	return orders, rows.Err()
}

// MaxOrderNumber returns the highest order number of a year, zero when
// the year has no orders yet
// Retorna o maior número de pedido do ano, zero se não houver pedidos
func (s *PostgreSQLStorage) MaxOrderNumber(ctx context.Context, year int) (int64, error) {
	var max int64
	err := s.db.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(order_number), 0) FROM orders WHERE order_year = $1`, year).Scan(&max)
	if err != nil {
		return 0, fmt.Errorf("falha ao consultar numeração: %w", err)
	}
	return max, nil
}

const orderItemColumns = `id, order_id, stock_id, item_id, aircraft_id, aircraft_destination_id, operator, service_type, quantity, quantity_supplied, dpe, eglog, log_card, sn_attended, expiration_attended, nf_answer, attended_date, collected, gmm, bms, hb_destination, contract_old, reason, troubleshooting, failure_description, observation, notes, tsn_item, tso_item, created_by, updated_by, created_at, updated_at`

// CreateOrderItem appends a line to an order
// Cadastra um item de pedido
func (s *PostgreSQLStorage) CreateOrderItem(ctx context.Context, line *inventory.OrderItem) error {
	query := `
		INSERT INTO order_items (order_id, stock_id, item_id, aircraft_id, aircraft_destination_id, operator, service_type, quantity, quantity_supplied, dpe, eglog, log_card, sn_attended, expiration_attended, nf_answer, attended_date, collected, gmm, bms, hb_destination, contract_old, reason, troubleshooting, failure_description, observation, notes, tsn_item, tso_item, created_by, updated_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23, $24, $25, $26, $27, $28, $29, $30, $31, $32)
		RETURNING id`

	err := s.db.QueryRowContext(ctx, query,
		line.OrderID,
		line.StockID,
		line.ItemID,
		line.AircraftID,
		line.AircraftDestinationID,
		line.Operator,
		line.ServiceType,
		line.Quantity,
		line.QuantitySupplied,
		line.DPE,
		line.EGLOG,
		line.LogCard,
		line.SNAttended,
		line.ExpirationAttended,
		line.NFAnswer,
		line.AttendedDate,
		line.Collected,
		line.GMM,
		line.BMS,
		line.HBDestination,
		line.ContractOld,
		line.Reason,
		line.Troubleshooting,
		line.FailureDescription,
		line.Observation,
		line.Notes,
		line.TSNItem,
		line.TSOItem,
		line.CreatedBy,
		line.UpdatedBy,
		line.CreatedAt,
		line.UpdatedAt,
	).Scan(&line.ID)

	if err != nil {
		return fmt.Errorf("falha ao cadastrar item de pedido: %w", err)
	}

	return nil
}

func scanOrderItem(scan func(dest ...interface{}) error) (*inventory.OrderItem, error) {
	line := &inventory.OrderItem{}
	var tsn, tso decimal.NullDecimal
	err := scan(
		&line.ID,
		&line.OrderID,
		&line.StockID,
		&line.ItemID,
		&line.AircraftID,
		&line.AircraftDestinationID,
		&line.Operator,
		&line.ServiceType,
		&line.Quantity,
		&line.QuantitySupplied,
		&line.DPE,
		&line.EGLOG,
		&line.LogCard,
		&line.SNAttended,
		&line.ExpirationAttended,
		&line.NFAnswer,
		&line.AttendedDate,
		&line.Collected,
		&line.GMM,
		&line.BMS,
		&line.HBDestination,
		&line.ContractOld,
		&line.Reason,
		&line.Troubleshooting,
		&line.FailureDescription,
		&line.Observation,
		&line.Notes,
		&tsn,
		&tso,
		&line.CreatedBy,
		&line.UpdatedBy,
		&line.CreatedAt,
		&line.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if tsn.Valid {
		line.TSNItem = &tsn.Decimal
	}
	if tso.Valid {
		line.TSOItem = &tso.Decimal
	}
	return line, nil
}

// GetOrderItem retrieves an order line by id
// Consulta um item de pedido pelo id
func (s *PostgreSQLStorage) GetOrderItem(ctx context.Context, lineID int64) (*inventory.OrderItem, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+orderItemColumns+` FROM order_items WHERE id = $1`, lineID)

	line, err := scanOrderItem(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, inventory.ErrOrderNotFound
		}
		return nil, fmt.Errorf("falha ao consultar item de pedido: %w", err)
	}
	return line, nil
}

// UpdateOrderItem updates an existing order line
// Atualiza um item de pedido existente
func (s *PostgreSQLStorage) UpdateOrderItem(ctx context.Context, line *inventory.OrderItem) error {
	query := `
		UPDATE order_items
		SET stock_id = $2, item_id = $3, aircraft_id = $4, aircraft_destination_id = $5, operator = $6, service_type = $7, quantity = $8, quantity_supplied = $9, dpe = $10, eglog = $11, log_card = $12, sn_attended = $13, expiration_attended = $14, nf_answer = $15, attended_date = $16, collected = $17, gmm = $18, bms = $19, hb_destination = $20, contract_old = $21, reason = $22, troubleshooting = $23, failure_description = $24, observation = $25, notes = $26, tsn_item = $27, tso_item = $28, updated_by = $29, updated_at = $30
		WHERE id = $1`

	result, err := s.db.ExecContext(ctx, query,
		line.ID,
		line.StockID,
		line.ItemID,
		line.AircraftID,
		line.AircraftDestinationID,
		line.Operator,
		line.ServiceType,
		line.Quantity,
		line.QuantitySupplied,
		line.DPE,
		line.EGLOG,
		line.LogCard,
		line.SNAttended,
		line.ExpirationAttended,
		line.NFAnswer,
		line.AttendedDate,
		line.Collected,
		line.GMM,
		line.BMS,
		line.HBDestination,
		line.ContractOld,
		line.Reason,
		line.Troubleshooting,
		line.FailureDescription,
		line.Observation,
		line.Notes,
		line.TSNItem,
		line.TSOItem,
		line.UpdatedBy,
		line.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("falha ao atualizar item de pedido: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("falha ao obter linhas afetadas: %w", err)
	}
	if rowsAffected == 0 {
		return inventory.ErrOrderNotFound
	}

	return nil
}

// ListOrderItems lists the lines of an order
// Lista os itens de um pedido
func (s *PostgreSQLStorage) ListOrderItems(ctx context.Context, orderID int64) ([]inventory.OrderItem, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+orderItemColumns+` FROM order_items WHERE order_id = $1 ORDER BY id`, orderID)
	if err != nil {
		return nil, fmt.Errorf("falha ao listar itens de pedido: %w", err)
	}
	defer rows.Close()

	var lines []inventory.OrderItem
	for rows.Next() {
		line, err := scanOrderItem(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("falha ao ler item de pedido: %w", err)
		}
		lines = append(lines, *line)
	}
	return lines, rows.Err()
}

// CountItems counts catalog items
// Conta os itens do catálogo
func (s *PostgreSQLStorage) CountItems(ctx context.Context) (int64, error) {
	var count int64
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM items`).Scan(&count); err != nil {
		return 0, fmt.Errorf("falha ao contar itens: %w", err)
	}
	return count, nil
}

// CountStockRows counts stock rows
// Conta os registros de estoque
func (s *PostgreSQLStorage) CountStockRows(ctx context.Context) (int64, error) {
	var count int64
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM stocks`).Scan(&count); err != nil {
		return 0, fmt.Errorf("falha ao contar estoque: %w", err)
	}
	return count, nil
}

// CountExpiredStock counts stock rows whose expiration date has passed
// Conta os registros de estoque vencidos
func (s *PostgreSQLStorage) CountExpiredStock(ctx context.Context, now time.Time) (int64, error) {
	var count int64
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM stocks WHERE expiration_date IS NOT NULL AND expiration_date < $1`,
		now).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("falha ao contar vencidos: %w", err)
	}
	return count, nil
}

// CountBelowMinimumStock counts stock rows at or below their minimum
// Conta os registros na quantidade mínima ou abaixo
func (s *PostgreSQLStorage) CountBelowMinimumStock(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM stocks WHERE quantity <= minimum_quantity`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("falha ao contar abaixo do mínimo: %w", err)
	}
	return count, nil
}

// CountOrdersByStatus counts orders grouped by status
// Conta os pedidos agrupados por status
func (s *PostgreSQLStorage) CountOrdersByStatus(ctx context.Context) (map[inventory.OrderStatus]int64, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT status, COUNT(*) FROM orders GROUP BY status`)
	if err != nil {
		return nil, fmt.Errorf("falha ao contar pedidos: %w", err)
	}
	defer rows.Close()

	counts := make(map[inventory.OrderStatus]int64)
	for rows.Next() {
		var status inventory.OrderStatus
		var count int64
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("falha ao ler contagem de pedidos: %w", err)
		}
		counts[status] = count
	}
	return counts, rows.Err()
}

// SumMovements sums inflow and outflow quantities inside a window
// Soma as quantidades de entrada e saída dentro da janela
func (s *PostgreSQLStorage) SumMovements(ctx context.Context, from, to time.Time) (int64, int64, error) {
	var inflow, outflow int64

	err := s.db.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(quantity), 0) FROM inflows WHERE created_at >= $1 AND created_at <= $2`,
		from, to).Scan(&inflow)
	if err != nil {
		return 0, 0, fmt.Errorf("falha ao somar entradas: %w", err)
	}

	err = s.db.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(quantity), 0) FROM outflows WHERE created_at >= $1 AND created_at <= $2`,
		from, to).Scan(&outflow)
	if err != nil {
		return 0, 0, fmt.Errorf("falha ao somar saídas: %w", err)
	}

	return inflow, outflow, nil
}

// DailyMovementSeries aggregates inflow and outflow quantities per day
// Agrega as quantidades de entrada e saída por dia
func (s *PostgreSQLStorage) DailyMovementSeries(ctx context.Context, from, to time.Time) ([]inventory.DailyMovement, error) {
	query := `
		SELECT day, SUM(inflow), SUM(outflow)
		FROM (
			SELECT DATE_TRUNC('day', created_at) AS day, quantity AS inflow, 0 AS outflow
			FROM inflows WHERE created_at >= $1 AND created_at <= $2
			UNION ALL
			SELECT DATE_TRUNC('day', created_at) AS day, 0 AS inflow, quantity AS outflow
			FROM outflows WHERE created_at >= $1 AND created_at <= $2
		) m
		GROUP BY day
		ORDER BY day`

	rows, err := s.db.QueryContext(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("falha na série diária: %w", err)
	}
	defer rows.Close()

	var series []inventory.DailyMovement
	for rows.Next() {
		var p inventory.DailyMovement
		if err := rows.Scan(&p.Day, &p.Inflow, &p.Outflow); err != nil {
			return nil, fmt.Errorf("falha ao ler série diária: %w", err)
		}
		series = append(series, p)
	}
	return series, rows.Err()
}
