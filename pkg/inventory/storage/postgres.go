// Package storage provides the PostgreSQL persistence layer
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/sltavares/estoqueGo/pkg/inventory"
)

// PostgreSQLStorage implements the Storage interface using PostgreSQL
// Implementação da interface Storage sobre PostgreSQL
type PostgreSQLStorage struct {
	db     *sql.DB
	logger *zap.Logger
}

var _ inventory.Storage = (*PostgreSQLStorage)(nil)

// NewPostgreSQLStorage creates a new PostgreSQL storage instance
// Cria uma nova instância de armazenamento PostgreSQL
func NewPostgreSQLStorage(dsn string, logger *zap.Logger) (*PostgreSQLStorage, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("falha ao conectar ao banco de dados: %w", err)
	}

	// Teste de conectividade
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("falha no ping do banco de dados: %w", err)
	}

	// Pool de conexões
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(5 * time.Minute)

	return &PostgreSQLStorage{
		db:     db,
		logger: logger,
	}, nil
}

// CreateItem creates a new catalog item
// Cadastra um novo item do catálogo
func (s *PostgreSQLStorage) CreateItem(ctx context.Context, item *inventory.Item) error {
	query := `
		INSERT INTO items (mpn, pn, name, doc, tec_pub, aircraft_doc, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id`

	err := s.db.QueryRowContext(ctx, query,
		item.MPN,
		item.PN,
		item.Name,
		item.Doc,
		item.TecPub,
		item.AircraftDoc,
		item.CreatedBy,
		item.CreatedAt,
		item.UpdatedAt,
	).Scan(&item.ID)

	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return inventory.ErrDuplicateItem
		}
		return fmt.Errorf("falha ao cadastrar item: %w", err)
	}

	return nil
}

// GetItem retrieves an item by id
// Consulta um item pelo id
func (s *PostgreSQLStorage) GetItem(ctx context.Context, itemID int64) (*inventory.Item, error) {
	query := `
		SELECT id, mpn, pn, name, doc, tec_pub, aircraft_doc, created_by, created_at, updated_at
		FROM items
		WHERE id = $1`

	item := &inventory.Item{}
	err := s.db.QueryRowContext(ctx, query, itemID).Scan(
		&item.ID,
		&item.MPN,
		&item.PN,
		&item.Name,
		&item.Doc,
		&item.TecPub,
		&item.AircraftDoc,
		&item.CreatedBy,
		&item.CreatedAt,
		&item.UpdatedAt,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, inventory.ErrItemNotFound
		}
		return nil, fmt.Errorf("falha ao consultar item: %w", err)
	}

	return item, nil
}

// GetItemByMPN retrieves an item by its manufacturer part number
// Consulta um item pelo MPN
func (s *PostgreSQLStorage) GetItemByMPN(ctx context.Context, mpn string) (*inventory.Item, error) {
	query := `
		SELECT id, mpn, pn, name, doc, tec_pub, aircraft_doc, created_by, created_at, updated_at
		FROM items
		WHERE mpn = $1`

	item := &inventory.Item{}
	err := s.db.QueryRowContext(ctx, query, mpn).Scan(
		&item.ID,
		&item.MPN,
		&item.PN,
		&item.Name,
		&item.Doc,
		&item.TecPub,
		&item.AircraftDoc,
		&item.CreatedBy,
		&item.CreatedAt,
		&item.UpdatedAt,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, inventory.ErrItemNotFound
		}
		return nil, fmt.Errorf("falha ao consultar item por MPN: %w", err)
	}

	return item, nil
}

// UpdateItem updates an existing item
// Atualiza um item existente
func (s *PostgreSQLStorage) UpdateItem(ctx context.Context, item *inventory.Item) error {
	query := `
		UPDATE items
		SET mpn = $2, pn = $3, name = $4, doc = $5, tec_pub = $6, aircraft_doc = $7, updated_at = $8
		WHERE id = $1`

	result, err := s.db.ExecContext(ctx, query,
		item.ID,
		item.MPN,
		item.PN,
		item.Name,
		item.Doc,
		item.TecPub,
		item.AircraftDoc,
		item.UpdatedAt,
	)

	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return inventory.ErrDuplicateItem
		}
		return fmt.Errorf("falha ao atualizar item: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("falha ao obter linhas afetadas: %w", err)
	}
	if rowsAffected == 0 {
		return inventory.ErrItemNotFound
	}

	return nil
}

// DeleteItem deletes an item by id
// Remove um item pelo id
func (s *PostgreSQLStorage) DeleteItem(ctx context.Context, itemID int64) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM items WHERE id = $1`, itemID)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" {
			return inventory.ErrItemInUse
		}
		return fmt.Errorf("falha ao remover item: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("falha ao obter linhas afetadas: %w", err)
	}
	if rowsAffected == 0 {
		return inventory.ErrItemNotFound
	}

	return nil
}

// ListItems retrieves items with pagination
// Lista itens com paginação
func (s *PostgreSQLStorage) ListItems(ctx context.Context, offset, limit int) ([]inventory.Item, error) {
	query := `
		SELECT id, mpn, pn, name, doc, tec_pub, aircraft_doc, created_by, created_at, updated_at
		FROM items
		ORDER BY mpn
		OFFSET $1 LIMIT $2`

	rows, err := s.db.QueryContext(ctx, query, offset, limit)
	if err != nil {
		return nil, fmt.Errorf("falha ao listar itens: %w", err)
	}
	defer rows.Close()

	return scanItems(rows)
}

// SearchItems searches items by MPN, PN or name
// Busca itens por MPN, PN ou nome
func (s *PostgreSQLStorage) SearchItems(ctx context.Context, query string) ([]inventory.Item, error) {
	sqlQuery := `
		SELECT id, mpn, pn, name, doc, tec_pub, aircraft_doc, created_by, created_at, updated_at
		FROM items
		WHERE mpn ILIKE $1 OR pn ILIKE $1 OR name ILIKE $1
		ORDER BY mpn`

	rows, err := s.db.QueryContext(ctx, sqlQuery, "%"+query+"%")
	if err != nil {
		return nil, fmt.Errorf("falha ao buscar itens: %w", err)
	}
	defer rows.Close()

	return scanItems(rows)
}

func scanItems(rows *sql.Rows) ([]inventory.Item, error) {
	var items []inventory.Item
	for rows.Next() {
		var item inventory.Item
		err := rows.Scan(
			&item.ID,
			&item.MPN,
			&item.PN,
			&item.Name,
			&item.Doc,
			&item.TecPub,
			&item.AircraftDoc,
			&item.CreatedBy,
			&item.CreatedAt,
			&item.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("falha ao ler item: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// CreateEquivalence stores a canonical equivalence pair
// Cadastra um par canônico de equivalência
func (s *PostgreSQLStorage) CreateEquivalence(ctx context.Context, eq *inventory.Equivalence) error {
	query := `
		INSERT INTO equivalences (item_id, equivalent_id)
		VALUES ($1, $2)
		RETURNING id`

	err := s.db.QueryRowContext(ctx, query, eq.ItemID, eq.EquivalentID).Scan(&eq.ID)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return inventory.ErrDuplicateEquivalence
		}
		return fmt.Errorf("falha ao cadastrar equivalência: %w", err)
	}

	return nil
}

// DeleteEquivalence removes a canonical equivalence pair
// Remove um par canônico de equivalência
func (s *PostgreSQLStorage) DeleteEquivalence(ctx context.Context, itemID, equivalentID int64) error {
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM equivalences WHERE item_id = $1 AND equivalent_id = $2`,
		itemID, equivalentID)
	if err != nil {
		return fmt.Errorf("falha ao remover equivalência: %w", err)
	}
	return nil
}

// GetEquivalents lists the items related to the given one on either
// side of the stored pair
// Lista os itens equivalentes, em qualquer lado do par armazenado
func (s *PostgreSQLStorage) GetEquivalents(ctx context.Context, itemID int64) ([]inventory.Item, error) {
	query := `
		SELECT i.id, i.mpn, i.pn, i.name, i.doc, i.tec_pub, i.aircraft_doc, i.created_by, i.created_at, i.updated_at
		FROM items i
		JOIN equivalences e
			ON (e.item_id = $1 AND i.id = e.equivalent_id)
			OR (e.equivalent_id = $1 AND i.id = e.item_id)
		ORDER BY i.mpn`

	rows, err := s.db.QueryContext(ctx, query, itemID)
	if err != nil {
		return nil, fmt.Errorf("falha ao listar equivalências: %w", err)
	}
	defer rows.Close()

	return scanItems(rows)
}

// CreateSite creates a new site
// Cadastra uma nova OM
func (s *PostgreSQLStorage) CreateSite(ctx context.Context, site *inventory.Site) error {
	query := `
		INSERT INTO sites (name, sub_site, type)
		VALUES ($1, $2, $3)
		RETURNING id`

	err := s.db.QueryRowContext(ctx, query, site.Name, site.SubSite, site.Type).Scan(&site.ID)
	if err != nil {
		return fmt.Errorf("falha ao cadastrar OM: %w", err)
	}
	return nil
}

// GetSite retrieves a site by id
// Consulta uma OM pelo id
func (s *PostgreSQLStorage) GetSite(ctx context.Context, siteID int64) (*inventory.Site, error) {
	site := &inventory.Site{}
	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, sub_site, type FROM sites WHERE id = $1`, siteID).Scan(
		&site.ID, &site.Name, &site.SubSite, &site.Type)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, inventory.ErrSiteNotFound
		}
		return nil, fmt.Errorf("falha ao consultar OM: %w", err)
	}
	return site, nil
}

// FindSite retrieves a site by name and sub-site
// Consulta uma OM por nome e sub-site
func (s *PostgreSQLStorage) FindSite(ctx context.Context, name, subSite string) (*inventory.Site, error) {
	site := &inventory.Site{}
	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, sub_site, type FROM sites WHERE name = $1 AND sub_site = $2`,
		name, subSite).Scan(&site.ID, &site.Name, &site.SubSite, &site.Type)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, inventory.ErrSiteNotFound
		}
		return nil, fmt.Errorf("falha ao consultar OM: %w", err)
	}
	return site, nil
}

// ListSites lists every site
// Lista todas as OMs
func (s *PostgreSQLStorage) ListSites(ctx context.Context) ([]inventory.Site, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, sub_site, type FROM sites ORDER BY name, sub_site`)
	if err != nil {
		return nil, fmt.Errorf("falha ao listar OMs: %w", err)
	}
	defer rows.Close()

	var sites []inventory.Site
	for rows.Next() {
		var site inventory.Site
		if err := rows.Scan(&site.ID, &site.Name, &site.SubSite, &site.Type); err != nil {
			return nil, fmt.Errorf("falha ao ler OM: %w", err)
		}
		sites = append(sites, site)
	}
	return sites, rows.Err()
}

// CreateLocation creates a new storage location
// Cadastra uma nova localização
func (s *PostgreSQLStorage) CreateLocation(ctx context.Context, location *inventory.Location) error {
	query := `
		INSERT INTO locations (site_id, section, shelf, "case", item_number)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`

	err := s.db.QueryRowContext(ctx, query,
		location.SiteID,
		location.Section,
		location.Shelf,
		location.Case,
		location.ItemNumber,
	).Scan(&location.ID)

	if err != nil {
		return fmt.Errorf("falha ao cadastrar localização: %w", err)
	}
	return nil
}

// GetLocation retrieves a location by id
// Consulta uma localização pelo id
func (s *PostgreSQLStorage) GetLocation(ctx context.Context, locationID int64) (*inventory.Location, error) {
	location := &inventory.Location{}
	err := s.db.QueryRowContext(ctx,
		`SELECT id, site_id, section, shelf, "case", item_number FROM locations WHERE id = $1`,
		locationID).Scan(
		&location.ID,
		&location.SiteID,
		&location.Section,
		&location.Shelf,
		&location.Case,
		&location.ItemNumber,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, inventory.ErrLocationNotFound
		}
		return nil, fmt.Errorf("falha ao consultar localização: %w", err)
	}
	return location, nil
}

// FindLocation retrieves a location by its full coordinate, treating
// NULL coordinates as equal
// Consulta uma localização pela coordenada completa (NULL compara igual)
func (s *PostgreSQLStorage) FindLocation(ctx context.Context, siteID int64, section string, shelf, caseNo, itemNumber *int64) (*inventory.Location, error) {
	query := `
		SELECT id, site_id, section, shelf, "case", item_number
		FROM locations
		WHERE site_id = $1 AND section = $2
			AND shelf IS NOT DISTINCT FROM $3
			AND "case" IS NOT DISTINCT FROM $4
			AND item_number IS NOT DISTINCT FROM $5`

	location := &inventory.Location{}
	err := s.db.QueryRowContext(ctx, query, siteID, section, shelf, caseNo, itemNumber).Scan(
		&location.ID,
		&location.SiteID,
		&location.Section,
		&location.Shelf,
		&location.Case,
		&location.ItemNumber,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, inventory.ErrLocationNotFound
		}
		return nil, fmt.Errorf("falha ao consultar localização: %w", err)
	}
	return location, nil
}

// ListLocations lists the locations of a site
// Lista as localizações de uma OM
func (s *PostgreSQLStorage) ListLocations(ctx context.Context, siteID int64) ([]inventory.Location, error) {
	query := `
		SELECT id, site_id, section, shelf, "case", item_number
		FROM locations
		WHERE site_id = $1
		ORDER BY section, shelf, "case", item_number`

	rows, err := s.db.QueryContext(ctx, query, siteID)
	if err != nil {
		return nil, fmt.Errorf("falha ao listar localizações: %w", err)
	}
	defer rows.Close()

	var locations []inventory.Location
	for rows.Next() {
		var location inventory.Location
		err := rows.Scan(
			&location.ID,
			&location.SiteID,
			&location.Section,
			&location.Shelf,
			&location.Case,
			&location.ItemNumber,
		)
		if err != nil {
			return nil, fmt.Errorf("falha ao ler localização: %w", err)
		}
		locations = append(locations, location)
	}
	return locations, rows.Err()
}

// CreateStock creates a new stock row
// Cadastra um novo registro de estoque
func (s *PostgreSQLStorage) CreateStock(ctx context.Context, stock *inventory.Stock) error {
	query := `
		INSERT INTO stocks (item_id, serial_number, kanban, location_id, quantity, minimum_quantity, expiration_date, updated_at, updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id`

	err := s.db.QueryRowContext(ctx, query,
		stock.ItemID,
		stock.SerialNumber,
		stock.Kanban,
		stock.LocationID,
		stock.Quantity,
		stock.MinimumQuantity,
		stock.ExpirationDate,
		stock.UpdatedAt,
		stock.UpdatedBy,
	).Scan(&stock.ID)

	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return inventory.ErrDuplicateStock
		}
		return fmt.Errorf("falha ao criar registro de estoque: %w", err)
	}

	return nil
}

// UpdateStock updates an existing stock row
// Atualiza um registro de estoque existente
func (s *PostgreSQLStorage) UpdateStock(ctx context.Context, stock *inventory.Stock) error {
	query := `
		UPDATE stocks
		SET kanban = $2, location_id = $3, quantity = $4, minimum_quantity = $5, expiration_date = $6, updated_at = $7, updated_by = $8
		WHERE id = $1`

	result, err := s.db.ExecContext(ctx, query,
		stock.ID,
		stock.Kanban,
		stock.LocationID,
		stock.Quantity,
		stock.MinimumQuantity,
		stock.ExpirationDate,
		stock.UpdatedAt,
		stock.UpdatedBy,
	)

	if err != nil {
		return fmt.Errorf("falha ao atualizar estoque: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("falha ao obter linhas afetadas: %w", err)
	}
	if rowsAffected == 0 {
		return inventory.ErrStockNotFound
	}

	return nil
}

const stockColumns = `id, item_id, serial_number, kanban, location_id, quantity, minimum_quantity, expiration_date, updated_at, updated_by`

// GetStock retrieves a stock row by id
// Consulta um registro de estoque pelo id
func (s *PostgreSQLStorage) GetStock(ctx context.Context, stockID int64) (*inventory.Stock, error) {
	stock := &inventory.Stock{}
	err := s.db.QueryRowContext(ctx,
		`SELECT `+stockColumns+` FROM stocks WHERE id = $1`, stockID).Scan(
		&stock.ID,
		&stock.ItemID,
		&stock.SerialNumber,
		&stock.Kanban,
		&stock.LocationID,
		&stock.Quantity,
		&stock.MinimumQuantity,
		&stock.ExpirationDate,
		&stock.UpdatedAt,
		&stock.UpdatedBy,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, inventory.ErrStockNotFound
		}
		return nil, fmt.Errorf("falha ao consultar estoque: %w", err)
	}
	return stock, nil
}

// GetStockBySerial retrieves the stock row of a serialized unit
// Consulta o registro de estoque de uma unidade serializada
func (s *PostgreSQLStorage) GetStockBySerial(ctx context.Context, itemID int64, serialNumber string) (*inventory.Stock, error) {
	stock := &inventory.Stock{}
	err := s.db.QueryRowContext(ctx,
		`SELECT `+stockColumns+` FROM stocks WHERE item_id = $1 AND serial_number = $2`,
		itemID, serialNumber).Scan(
		&stock.ID,
		&stock.ItemID,
		&stock.SerialNumber,
		&stock.Kanban,
		&stock.LocationID,
		&stock.Quantity,
		&stock.MinimumQuantity,
		&stock.ExpirationDate,
		&stock.UpdatedAt,
		&stock.UpdatedBy,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, inventory.ErrStockNotFound
		}
		return nil, fmt.Errorf("falha ao consultar estoque por serial: %w", err)
	}
	return stock, nil
}

// GetStockByItemNoSerial retrieves the first bulk stock row of an item
// Consulta o primeiro registro de estoque em lote de um item
func (s *PostgreSQLStorage) GetStockByItemNoSerial(ctx context.Context, itemID int64) (*inventory.Stock, error) {
	stock := &inventory.Stock{}
	err := s.db.QueryRowContext(ctx,
		`SELECT `+stockColumns+` FROM stocks WHERE item_id = $1 AND serial_number IS NULL ORDER BY id LIMIT 1`,
		itemID).Scan(
		&stock.ID,
		&stock.ItemID,
		&stock.SerialNumber,
		&stock.Kanban,
		&stock.LocationID,
		&stock.Quantity,
		&stock.MinimumQuantity,
		&stock.ExpirationDate,
		&stock.UpdatedAt,
		&stock.UpdatedBy,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, inventory.ErrStockNotFound
		}
		return nil, fmt.Errorf("falha ao consultar estoque em lote: %w", err)
	}
	return stock, nil
}

// ListStock lists stock rows matching the filter
// Lista registros de estoque conforme o filtro
func (s *PostgreSQLStorage) ListStock(ctx context.Context, filter inventory.StockFilter) ([]inventory.Stock, error) {
	query := `
		SELECT st.id, st.item_id, st.serial_number, st.kanban, st.location_id, st.quantity, st.minimum_quantity, st.expiration_date, st.updated_at, st.updated_by
		FROM stocks st
		JOIN items i ON i.id = st.item_id
		LEFT JOIN locations l ON l.id = st.location_id
		LEFT JOIN sites o ON o.id = l.site_id
		WHERE 1=1`

	args := []interface{}{}
	n := 0
	next := func() string {
		n++
		return fmt.Sprintf("$%d", n)
	}

	if filter.Site != "" {
		query += ` AND o.name = ` + next()
		args = append(args, filter.Site)
	}
	if filter.SubSite != "" {
		query += ` AND o.sub_site = ` + next()
		args = append(args, filter.SubSite)
	}
	if filter.Kanban != "" {
		query += ` AND st.kanban = ` + next()
		args = append(args, filter.Kanban)
	}
	if filter.Search != "" {
		p := next()
		query += ` AND (i.mpn ILIKE ` + p + ` OR i.pn ILIKE ` + p + ` OR i.name ILIKE ` + p + ` OR st.serial_number ILIKE ` + p + `)`
		args = append(args, "%"+filter.Search+"%")
	}
	if filter.ExpiringBefore != nil {
		query += ` AND st.expiration_date IS NOT NULL AND st.expiration_date <= ` + next()
		args = append(args, *filter.ExpiringBefore)
	}
	query += ` ORDER BY i.mpn, st.serial_number NULLS FIRST`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("falha ao listar estoque: %w", err)
	}
	defer rows.Close()

	var stocks []inventory.Stock
	for rows.Next() {
		var stock inventory.Stock
		err := rows.Scan(
			&stock.ID,
			&stock.ItemID,
			&stock.SerialNumber,
			&stock.Kanban,
			&stock.LocationID,
			&stock.Quantity,
			&stock.MinimumQuantity,
			&stock.ExpirationDate,
			&stock.UpdatedAt,
			&stock.UpdatedBy,
		)
		if err != nil {
			return nil, fmt.Errorf("falha ao ler estoque: %w", err)
		}
		stocks = append(stocks, stock)
	}
	return stocks, rows.Err()
}

// TotalQuantity sums the quantity of every stock row of an item
// Soma a quantidade de todos os registros de estoque de um item
func (s *PostgreSQLStorage) TotalQuantity(ctx context.Context, itemID int64) (int64, error) {
	var total int64
	err := s.db.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(quantity), 0) FROM stocks WHERE item_id = $1`, itemID).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("falha ao somar estoque: %w", err)
	}
	return total, nil
}

// CreateInflow appends an inflow record
// Registra uma entrada (imutável)
func (s *PostgreSQLStorage) CreateInflow(ctx context.Context, in *inventory.Inflow) error {
	query := `
		INSERT INTO inflows (id, item_id, stock_id, quantity, description, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := s.db.ExecContext(ctx, query,
		in.ID,
		in.ItemID,
		in.StockID,
		in.Quantity,
		in.Description,
		in.CreatedAt,
		in.CreatedBy,
	)
	if err != nil {
		return fmt.Errorf("falha ao registrar entrada: %w", err)
	}
	return nil
}

// CreateOutflow appends an outflow record
// Registra uma saída (imutável)
func (s *PostgreSQLStorage) CreateOutflow(ctx context.Context, out *inventory.Outflow) error {
	query := `
		INSERT INTO outflows (id, stock_id, quantity, claimant_id, reason, description, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := s.db.ExecContext(ctx, query,
		out.ID,
		out.StockID,
		out.Quantity,
		out.ClaimantID,
		out.Reason,
		out.Description,
		out.CreatedAt,
		out.CreatedBy,
	)
	if err != nil {
		return fmt.Errorf("falha ao registrar saída: %w", err)
	}
	return nil
}

// ListInflows lists inflow records matching the filter
// Lista entradas conforme o filtro
func (s *PostgreSQLStorage) ListInflows(ctx context.Context, filter inventory.MovementFilter) ([]inventory.Inflow, error) {
	query := `
		SELECT f.id, f.item_id, f.stock_id, f.quantity, f.description, f.created_at, f.created_by
		FROM inflows f
		JOIN items i ON i.id = f.item_id
		WHERE 1=1`

	args := []interface{}{}
	n := 0
	next := func() string {
		n++
		return fmt.Sprintf("$%d", n)
	}

	if filter.Search != "" {
		p := next()
		query += ` AND (i.mpn ILIKE ` + p + ` OR i.pn ILIKE ` + p + ` OR i.name ILIKE ` + p + ` OR f.description ILIKE ` + p + `)`
		args = append(args, "%"+filter.Search+"%")
	}
	if filter.ItemID != 0 {
		query += ` AND f.item_id = ` + next()
		args = append(args, filter.ItemID)
	}
	if filter.StockID != 0 {
		query += ` AND f.stock_id = ` + next()
		args = append(args, filter.StockID)
	}
	if filter.DateFrom != nil {
		query += ` AND f.created_at >= ` + next()
		args = append(args, *filter.DateFrom)
	}
	if filter.DateTo != nil {
		query += ` AND f.created_at <= ` + next()
		args = append(args, *filter.DateTo)
	}
	query += ` ORDER BY f.created_at DESC`
	if filter.Limit > 0 {
		query += ` LIMIT ` + next()
		args = append(args, filter.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("falha ao listar entradas: %w", err)
	}
	defer rows.Close()

	var inflows []inventory.Inflow
	for rows.Next() {
		var in inventory.Inflow
		err := rows.Scan(
			&in.ID,
			&in.ItemID,
			&in.StockID,
			&in.Quantity,
			&in.Description,
			&in.CreatedAt,
			&in.CreatedBy,
		)
		if err != nil {
			return nil, fmt.Errorf("falha ao ler entrada: %w", err)
		}
		inflows = append(inflows, in)
	}
	return inflows, rows.Err()
}

// ListOutflows lists outflow records matching the filter
// Lista saídas conforme o filtro
func (s *PostgreSQLStorage) ListOutflows(ctx context.Context, filter inventory.MovementFilter) ([]inventory.Outflow, error) {
	query := `
		SELECT o.id, o.stock_id, o.quantity, o.claimant_id, o.reason, o.description, o.created_at, o.created_by
		FROM outflows o
		JOIN stocks st ON st.id = o.stock_id
		JOIN items i ON i.id = st.item_id
		WHERE 1=1`

	args := []interface{}{}
	n := 0
	next := func() string {
		n++
		return fmt.Sprintf("$%d", n)
	}

	if filter.Search != "" {
		p := next()
		query += ` AND (i.mpn ILIKE ` + p + ` OR i.pn ILIKE ` + p + ` OR i.name ILIKE ` + p + ` OR o.description ILIKE ` + p + `)`
		args = append(args, "%"+filter.Search+"%")
	}
	if filter.ItemID != 0 {
		query += ` AND st.item_id = ` + next()
		args = append(args, filter.ItemID)
	}
	if filter.StockID != 0 {
		query += ` AND o.stock_id = ` + next()
		args = append(args, filter.StockID)
	}
	if filter.DateFrom != nil {
		query += ` AND o.created_at >= ` + next()
		args = append(args, *filter.DateFrom)
	}
	if filter.DateTo != nil {
		query += ` AND o.created_at <= ` + next()
		args = append(args, *filter.DateTo)
	}
	query += ` ORDER BY o.created_at DESC`
	if filter.Limit > 0 {
		query += ` LIMIT ` + next()
		args = append(args, filter.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("falha ao listar saídas: %w", err)
	}
	defer rows.Close()

	var outflows []inventory.Outflow
	for rows.Next() {
		var out inventory.Outflow
		err := rows.Scan(
			&out.ID,
			&out.StockID,
			&out.Quantity,
			&out.ClaimantID,
			&out.Reason,
			&out.Description,
			&out.CreatedAt,
			&out.CreatedBy,
		)
		if err != nil {
			return nil, fmt.Errorf("falha ao ler saída: %w", err)
		}
		outflows = append(outflows, out)
	}
	return outflows, rows.Err()
}

// CreateAircraft creates a fleet aircraft
// Cadastra uma aeronave da frota
func (s *PostgreSQLStorage) CreateAircraft(ctx context.Context, aircraft *inventory.Aircraft) error {
	err := s.db.QueryRowContext(ctx,
		`INSERT INTO aircraft (numeral, tsn) VALUES ($1, $2) RETURNING id`,
		aircraft.Numeral, aircraft.TSN).Scan(&aircraft.ID)
	if err != nil {
		return fmt.Errorf("falha ao cadastrar aeronave: %w", err)
	}
	return nil
}

// GetAircraft retrieves an aircraft by id
// Consulta uma aeronave pelo id
func (s *PostgreSQLStorage) GetAircraft(ctx context.Context, aircraftID int64) (*inventory.Aircraft, error) {
	aircraft := &inventory.Aircraft{}
	var tsn decimal.NullDecimal
	err := s.db.QueryRowContext(ctx,
		`SELECT id, numeral, tsn FROM aircraft WHERE id = $1`, aircraftID).Scan(
		&aircraft.ID, &aircraft.Numeral, &tsn)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, inventory.ErrAircraftNotFound
		}
		return nil, fmt.Errorf("falha ao consultar aeronave: %w", err)
	}
	if tsn.Valid {
		aircraft.TSN = &tsn.Decimal
	}
	return aircraft, nil
}

// GetAircraftByNumeral retrieves an aircraft by its fleet numeral
// Consulta uma aeronave pelo numeral
func (s *PostgreSQLStorage) GetAircraftByNumeral(ctx context.Context, numeral string) (*inventory.Aircraft, error) {
	aircraft := &inventory.Aircraft{}
	var tsn decimal.NullDecimal
	err := s.db.QueryRowContext(ctx,
		`SELECT id, numeral, tsn FROM aircraft WHERE numeral = $1`, numeral).Scan(
		&aircraft.ID, &aircraft.Numeral, &tsn)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, inventory.ErrAircraftNotFound
		}
		return nil, fmt.Errorf("falha ao consultar aeronave: %w", err)
	}
	if tsn.Valid {
		aircraft.TSN = &tsn.Decimal
	}
	return aircraft, nil
}

// ListAircraft lists the fleet
// Lista as aeronaves da frota
func (s *PostgreSQLStorage) ListAircraft(ctx context.Context) ([]inventory.Aircraft, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, numeral, tsn FROM aircraft ORDER BY numeral`)
	if err != nil {
		return nil, fmt.Errorf("falha ao listar aeronaves: %w", err)
	}
	defer rows.Close()

	var fleet []inventory.Aircraft
	for rows.Next() {
		var aircraft inventory.Aircraft
		var tsn decimal.NullDecimal
		if err := rows.Scan(&aircraft.ID, &aircraft.Numeral, &tsn); err != nil {
			return nil, fmt.Errorf("falha ao ler aeronave: %w", err)
		}
		if tsn.Valid {
			aircraft.TSN = &tsn.Decimal
		}
		fleet = append(fleet, aircraft)
	}
	return fleet, rows.Err()
}

// Ping checks database connectivity
// Verifica a conectividade com o banco
func (s *PostgreSQLStorage) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close closes the database connection
// Encerra a conexão com o banco
func (s *PostgreSQLStorage) Close() error {
	return s.db.Close()
}
