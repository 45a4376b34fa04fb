package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/sltavares/estoqueGo/pkg/inventory"
	"github.com/sltavares/estoqueGo/pkg/inventory/spreadsheet"
)

// Handlers holds the HTTP handlers of the inventory API
// Handlers HTTP da API de estoque
type Handlers struct {
	ledger    inventory.StockLedger
	catalog   inventory.ItemCatalog
	registry  inventory.LocationRegistry
	orders    inventory.OrderManager
	dashboard *inventory.Dashboard
	trace     *inventory.TraceManager
	importer  *spreadsheet.Importer
	exporter  *spreadsheet.Exporter
	storage   inventory.Storage
	logger    *zap.Logger
}

// NewHandlers creates the HTTP handlers
// Cria os handlers HTTP
func NewHandlers(
	ledger inventory.StockLedger,
	catalog inventory.ItemCatalog,
	registry inventory.LocationRegistry,
	orders inventory.OrderManager,
	dashboard *inventory.Dashboard,
	trace *inventory.TraceManager,
	importer *spreadsheet.Importer,
	exporter *spreadsheet.Exporter,
	storage inventory.Storage,
	logger *zap.Logger,
) *Handlers {
	return &Handlers{
		ledger:    ledger,
		catalog:   catalog,
		registry:  registry,
		orders:    orders,
		dashboard: dashboard,
		trace:     trace,
		importer:  importer,
		exporter:  exporter,
		storage:   storage,
		logger:    logger,
	}
}

// APIResponse represents the standard API response format
// Formato padrão de resposta da API
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// EquivalenceRequest represents a request to relate two items
// Requisição de equivalência entre dois itens
type EquivalenceRequest struct {
	EquivalentID int64 `json:"equivalent_id"`
}

// AddToStockRequest represents a request to add quantity to a bulk row
// Requisição de acréscimo em um registro de lote
type AddToStockRequest struct {
	Quantity    int64  `json:"quantity"`
	Description string `json:"description"`
	Actor       string `json:"actor"`
}

// HealthCheck handles health check requests
// Verificação de saúde do serviço
func (h *Handlers) HealthCheck(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	status := "healthy"
	if err := h.storage.Ping(ctx); err != nil {
		status = "degraded"
		h.logger.Warn("banco de dados indisponível", zap.Error(err))
	}

	h.sendSuccess(w, map[string]interface{}{
		"status":    status,
		"timestamp": time.Now(),
		"service":   "estoqueGo",
	})
}

// CreateItem handles catalog item creation
// Cadastro de item do catálogo
func (h *Handlers) CreateItem(w http.ResponseWriter, r *http.Request) {
	var item inventory.Item
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		h.sendError(w, http.StatusBadRequest, "formato de requisição inválido")
		return
	}

	if err := h.catalog.CreateItem(r.Context(), &item); err != nil {
		h.sendDomainError(w, err)
		return
	}

	h.sendSuccess(w, item)
}

// GetItem handles single item retrieval
// Consulta de um item
func (h *Handlers) GetItem(w http.ResponseWriter, r *http.Request) {
	itemID, ok := h.pathID(w, r, "itemId")
	if !ok {
		return
	}

	item, err := h.catalog.GetItem(r.Context(), itemID)
	if err != nil {
		h.sendDomainError(w, err)
		return
	}

	h.sendSuccess(w, item)
}

// UpdateItem handles item updates
// Atualização de um item
func (h *Handlers) UpdateItem(w http.ResponseWriter, r *http.Request) {
	itemID, ok := h.pathID(w, r, "itemId")
	if !ok {
		return
	}

	var item inventory.Item
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		h.sendError(w, http.StatusBadRequest, "formato de requisição inválido")
		return
	}
	item.ID = itemID
	item.UpdatedAt = time.Now()

	if err := h.catalog.UpdateItem(r.Context(), &item); err != nil {
		h.sendDomainError(w, err)
		return
	}

	h.sendSuccess(w, item)
}

// DeleteItem handles item removal
// Remoção de um item
func (h *Handlers) DeleteItem(w http.ResponseWriter, r *http.Request) {
	itemID, ok := h.pathID(w, r, "itemId")
	if !ok {
		return
	}

	if err := h.catalog.DeleteItem(r.Context(), itemID); err != nil {
		h.sendDomainError(w, err)
		return
	}

	h.sendSuccess(w, map[string]string{
		"message": "item removido",
	})
}

// ListItems handles paginated item listing
// Listagem paginada de itens
func (h *Handlers) ListItems(w http.ResponseWriter, r *http.Request) {
	offset := queryInt(r, "offset", 0)
	limit := queryInt(r, "limit", 50)

	items, err := h.catalog.ListItems(r.Context(), offset, limit)
	if err != nil {
		h.sendDomainError(w, err)
		return
	}

	h.sendSuccess(w, items)
}

// SearchItems handles item search by MPN, PN or name
// Busca de itens por MPN, PN ou nome
func (h *Handlers) SearchItems(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		h.sendError(w, http.StatusBadRequest, "parâmetro de busca não informado")
		return
	}

	items, err := h.catalog.SearchItems(r.Context(), query)
	if err != nil {
		h.sendDomainError(w, err)
		return
	}

	h.sendSuccess(w, items)
}

// AddEquivalence handles equivalence creation between two items
// Cadastro de equivalência entre dois itens
func (h *Handlers) AddEquivalence(w http.ResponseWriter, r *http.Request) {
	itemID, ok := h.pathID(w, r, "itemId")
	if !ok {
		return
	}

	var req EquivalenceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.sendError(w, http.StatusBadRequest, "formato de requisição inválido")
		return
	}

	if err := h.catalog.AddEquivalence(r.Context(), itemID, req.EquivalentID); err != nil {
		h.sendDomainError(w, err)
		return
	}

	h.sendSuccess(w, map[string]string{
		"message": "equivalência cadastrada",
	})
}

// RemoveEquivalence handles equivalence removal
// Remoção de equivalência
func (h *Handlers) RemoveEquivalence(w http.ResponseWriter, r *http.Request) {
	itemID, ok := h.pathID(w, r, "itemId")
	if !ok {
		return
	}
	equivalentID, ok := h.pathID(w, r, "equivalentId")
	if !ok {
		return
	}

	if err := h.catalog.RemoveEquivalence(r.Context(), itemID, equivalentID); err != nil {
		h.sendDomainError(w, err)
		return
	}

	h.sendSuccess(w, map[string]string{
		"message": "equivalência removida",
	})
}

// GetEquivalents handles equivalent item listing
// Listagem de itens equivalentes
func (h *Handlers) GetEquivalents(w http.ResponseWriter, r *http.Request) {
	itemID, ok := h.pathID(w, r, "itemId")
	if !ok {
		return
	}

	items, err := h.catalog.Equivalents(r.Context(), itemID)
	if err != nil {
		h.sendDomainError(w, err)
		return
	}

	h.sendSuccess(w, items)
}

// CreateSite handles site creation
// Cadastro de OM
func (h *Handlers) CreateSite(w http.ResponseWriter, r *http.Request) {
	var site inventory.Site
	if err := json.NewDecoder(r.Body).Decode(&site); err != nil {
		h.sendError(w, http.StatusBadRequest, "formato de requisição inválido")
		return
	}

	if err := h.registry.CreateSite(r.Context(), &site); err != nil {
		h.sendDomainError(w, err)
		return
	}

	h.sendSuccess(w, site)
}

// ListSites handles site listing
// Listagem de OMs
func (h *Handlers) ListSites(w http.ResponseWriter, r *http.Request) {
	sites, err := h.registry.ListSites(r.Context())
	if err != nil {
		h.sendDomainError(w, err)
		return
	}

	h.sendSuccess(w, sites)
}

// ListSiteLocations handles location listing for a site
// Listagem de localizações de uma OM
func (h *Handlers) ListSiteLocations(w http.ResponseWriter, r *http.Request) {
	siteID, ok := h.pathID(w, r, "siteId")
	if !ok {
		return
	}

	locations, err := h.registry.ListLocations(r.Context(), siteID)
	if err != nil {
		h.sendDomainError(w, err)
		return
	}

	h.sendSuccess(w, locations)
}

// CreateLocation handles location creation
// Cadastro de localização
func (h *Handlers) CreateLocation(w http.ResponseWriter, r *http.Request) {
	var location inventory.Location
	if err := json.NewDecoder(r.Body).Decode(&location); err != nil {
		h.sendError(w, http.StatusBadRequest, "formato de requisição inválido")
		return
	}

	if err := h.registry.CreateLocation(r.Context(), &location); err != nil {
		h.sendDomainError(w, err)
		return
	}

	h.sendSuccess(w, location)
}

// RegisterInflow handles inflow registration
// Registro de entrada no estoque
func (h *Handlers) RegisterInflow(w http.ResponseWriter, r *http.Request) {
	var req inventory.InflowRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.sendError(w, http.StatusBadRequest, "formato de requisição inválido")
		return
	}

	result, err := h.ledger.RegisterInflow(r.Context(), req)
	if err != nil {
		h.sendDomainError(w, err)
		return
	}

	h.sendSuccess(w, result)
}

// AddToStock handles quantity addition to a specific bulk row
// Acréscimo de quantidade em um registro de lote
func (h *Handlers) AddToStock(w http.ResponseWriter, r *http.Request) {
	stockID, ok := h.pathID(w, r, "stockId")
	if !ok {
		return
	}

	var req AddToStockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.sendError(w, http.StatusBadRequest, "formato de requisição inválido")
		return
	}

	stock, err := h.ledger.AddToStock(r.Context(), stockID, req.Quantity, req.Description, req.Actor)
	if err != nil {
		h.sendDomainError(w, err)
		return
	}

	h.sendSuccess(w, stock)
}

// RegisterOutflow handles outflow registration
// Registro de saída do estoque
func (h *Handlers) RegisterOutflow(w http.ResponseWriter, r *http.Request) {
	var req inventory.OutflowRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.sendError(w, http.StatusBadRequest, "formato de requisição inválido")
		return
	}

	stock, err := h.ledger.RegisterOutflow(r.Context(), req)
	if err != nil {
		h.sendDomainError(w, err)
		return
	}

	h.sendSuccess(w, stock)
}

// GetStock handles single stock row retrieval
// Consulta de um registro de estoque
func (h *Handlers) GetStock(w http.ResponseWriter, r *http.Request) {
	stockID, ok := h.pathID(w, r, "stockId")
	if !ok {
		return
	}

	stock, err := h.ledger.GetStock(r.Context(), stockID)
	if err != nil {
		h.sendDomainError(w, err)
		return
	}

	h.sendSuccess(w, stock)
}

// ListStock handles filtered stock listing
// Listagem filtrada de estoque
func (h *Handlers) ListStock(w http.ResponseWriter, r *http.Request) {
	filter := inventory.StockFilter{
		Site:    r.URL.Query().Get("site"),
		SubSite: r.URL.Query().Get("sub_site"),
		Search:  r.URL.Query().Get("q"),
		Kanban:  inventory.Kanban(r.URL.Query().Get("kanban")),
	}

	stocks, err := h.ledger.ListStock(r.Context(), filter)
	if err != nil {
		h.sendDomainError(w, err)
		return
	}

	h.sendSuccess(w, stocks)
}

// GetTotalQuantity handles total quantity retrieval for an item
// Consulta da quantidade total de um item
func (h *Handlers) GetTotalQuantity(w http.ResponseWriter, r *http.Request) {
	itemID, ok := h.pathID(w, r, "itemId")
	if !ok {
		return
	}

	total, err := h.ledger.TotalQuantity(r.Context(), itemID)
	if err != nil {
		h.sendDomainError(w, err)
		return
	}

	h.sendSuccess(w, map[string]int64{
		"total_quantity": total,
	})
}

// ListInflows handles inflow history listing
// Listagem do histórico de entradas
func (h *Handlers) ListInflows(w http.ResponseWriter, r *http.Request) {
	inflows, err := h.ledger.InflowHistory(r.Context(), movementFilter(r))
	if err != nil {
		h.sendDomainError(w, err)
		return
	}

	h.sendSuccess(w, inflows)
}

// ListOutflows handles outflow history listing
// Listagem do histórico de saídas
func (h *Handlers) ListOutflows(w http.ResponseWriter, r *http.Request) {
	outflows, err := h.ledger.OutflowHistory(r.Context(), movementFilter(r))
	if err != nil {
		h.sendDomainError(w, err)
		return
	}

	h.sendSuccess(w, outflows)
}

// CreateOrder handles order creation
// Cadastro de pedido
func (h *Handlers) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var order inventory.Order
	if err := json.NewDecoder(r.Body).Decode(&order); err != nil {
		h.sendError(w, http.StatusBadRequest, "formato de requisição inválido")
		return
	}

	if err := h.orders.CreateOrder(r.Context(), &order); err != nil {
		h.sendDomainError(w, err)
		return
	}

	h.sendSuccess(w, order)
}

// GetOrder handles single order retrieval
// Consulta de um pedido
func (h *Handlers) GetOrder(w http.ResponseWriter, r *http.Request) {
	orderID, ok := h.pathID(w, r, "orderId")
	if !ok {
		return
	}

	order, err := h.orders.GetOrder(r.Context(), orderID)
	if err != nil {
		h.sendDomainError(w, err)
		return
	}

	h.sendSuccess(w, order)
}

// UpdateOrder handles order updates
// Atualização de um pedido
func (h *Handlers) UpdateOrder(w http.ResponseWriter, r *http.Request) {
	orderID, ok := h.pathID(w, r, "orderId")
	if !ok {
		return
	}

	var order inventory.Order
	if err := json.NewDecoder(r.Body).Decode(&order); err != nil {
		h.sendError(w, http.StatusBadRequest, "formato de requisição inválido")
		return
	}
	order.ID = orderID
	order.UpdatedAt = time.Now()

	if err := h.orders.UpdateOrder(r.Context(), &order); err != nil {
		h.sendDomainError(w, err)
		return
	}

	h.sendSuccess(w, order)
}

// ListOrders handles filtered order listing
// Listagem filtrada de pedidos
func (h *Handlers) ListOrders(w http.ResponseWriter, r *http.Request) {
	filter := inventory.OrderFilter{
		Search:    r.URL.Query().Get("q"),
		Status:    inventory.OrderStatus(r.URL.Query().Get("status")),
		OrderType: inventory.OrderType(r.URL.Query().Get("type")),
		Year:      queryInt(r, "year", 0),
	}

	orders, err := h.orders.ListOrders(r.Context(), filter)
	if err != nil {
		h.sendDomainError(w, err)
		return
	}

	h.sendSuccess(w, orders)
}

// AddOrderItem handles order line creation
// Cadastro de item de pedido
func (h *Handlers) AddOrderItem(w http.ResponseWriter, r *http.Request) {
	orderID, ok := h.pathID(w, r, "orderId")
	if !ok {
		return
	}

	var line inventory.OrderItem
	if err := json.NewDecoder(r.Body).Decode(&line); err != nil {
		h.sendError(w, http.StatusBadRequest, "formato de requisição inválido")
		return
	}
	line.OrderID = orderID

	if err := h.orders.AddOrderItem(r.Context(), &line); err != nil {
		h.sendDomainError(w, err)
		return
	}

	h.sendSuccess(w, line)
}

// UpdateOrderItem handles order line updates
// Atualização de item de pedido
func (h *Handlers) UpdateOrderItem(w http.ResponseWriter, r *http.Request) {
	lineID, ok := h.pathID(w, r, "lineId")
	if !ok {
		return
	}

	var line inventory.OrderItem
	if err := json.NewDecoder(r.Body).Decode(&line); err != nil {
		h.sendError(w, http.StatusBadRequest, "formato de requisição inválido")
		return
	}
	line.ID = lineID
	line.UpdatedAt = time.Now()

	if err := h.orders.UpdateOrderItem(r.Context(), &line); err != nil {
		h.sendDomainError(w, err)
		return
	}

	h.sendSuccess(w, line)
}

// ListOrderItems handles order line listing
// Listagem de itens de um pedido
func (h *Handlers) ListOrderItems(w http.ResponseWriter, r *http.Request) {
	orderID, ok := h.pathID(w, r, "orderId")
	if !ok {
		return
	}

	lines, err := h.orders.ListOrderItems(r.Context(), orderID)
	if err != nil {
		h.sendDomainError(w, err)
		return
	}

	h.sendSuccess(w, lines)
}

// GetOrderStatistics handles the order detail summary
// Resumo de detalhe de um pedido
func (h *Handlers) GetOrderStatistics(w http.ResponseWriter, r *http.Request) {
	orderID, ok := h.pathID(w, r, "orderId")
	if !ok {
		return
	}

	stats, err := h.orders.OrderStatistics(r.Context(), orderID)
	if err != nil {
		h.sendDomainError(w, err)
		return
	}

	h.sendSuccess(w, stats)
}

// ExportOrder handles order export to a spreadsheet
// Exportação de um pedido para planilha
func (h *Handlers) ExportOrder(w http.ResponseWriter, r *http.Request) {
	orderID, ok := h.pathID(w, r, "orderId")
	if !ok {
		return
	}

	order, err := h.orders.GetOrder(r.Context(), orderID)
	if err != nil {
		h.sendDomainError(w, err)
		return
	}

	filename := fmt.Sprintf("pedido_%d_%d.xlsx", order.OrderNumber, order.OrderYear)
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))

	if err := h.exporter.ExportOrder(r.Context(), orderID, w); err != nil {
		h.logger.Error("falha na exportação do pedido",
			zap.Int64("order_id", orderID),
			zap.Error(err),
		)
	}
}

// ImportOrders handles SPU spreadsheet uploads
// Importação da planilha SPU
func (h *Handlers) ImportOrders(w http.ResponseWriter, r *http.Request) {
	h.handleImport(w, r, func(ctx context.Context, req importUpload) (*spreadsheet.Report, error) {
		return h.importer.ImportOrders(ctx, req.file, req.sheet)
	})
}

// ImportContractOrders handles contract spreadsheet uploads
// Importação da planilha de pedidos de contrato
func (h *Handlers) ImportContractOrders(w http.ResponseWriter, r *http.Request) {
	h.handleImport(w, r, func(ctx context.Context, req importUpload) (*spreadsheet.Report, error) {
		return h.importer.ImportContractOrders(ctx, req.file, req.sheet)
	})
}

// ImportKanban handles kanban spreadsheet uploads
// Importação da planilha de kanban
func (h *Handlers) ImportKanban(w http.ResponseWriter, r *http.Request) {
	h.handleImport(w, r, func(ctx context.Context, req importUpload) (*spreadsheet.Report, error) {
		kanban := inventory.Kanban(r.FormValue("kanban"))
		if kanban == "" {
			kanban = inventory.KanbanEngine
		}
		section := r.FormValue("section")
		return h.importer.ImportKanban(ctx, req.file, req.sheet, kanban, section)
	})
}

type importUpload struct {
	file  io.Reader
	sheet string
}

// handleImport parses a multipart upload and delegates to the importer
// Processa o upload multipart e delega ao importador
func (h *Handlers) handleImport(w http.ResponseWriter, r *http.Request, run func(context.Context, importUpload) (*spreadsheet.Report, error)) {
	// Planilhas reais ficam bem abaixo de 32 MB
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		h.sendError(w, http.StatusBadRequest, "upload inválido")
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		h.sendError(w, http.StatusBadRequest, "arquivo não informado")
		return
	}
	defer file.Close()

	report, err := run(r.Context(), importUpload{
		file:  file,
		sheet: r.FormValue("sheet"),
	})
	if err != nil {
		h.sendDomainError(w, err)
		return
	}

	h.sendSuccess(w, report)
}

// GetItemTimeline handles merged movement timeline requests for an item
// Linha do tempo de movimentações de um item
func (h *Handlers) GetItemTimeline(w http.ResponseWriter, r *http.Request) {
	itemID, ok := h.pathID(w, r, "itemId")
	if !ok {
		return
	}

	records, err := h.trace.ItemTimeline(r.Context(), itemID, queryInt(r, "limit", 50))
	if err != nil {
		h.sendDomainError(w, err)
		return
	}

	h.sendSuccess(w, records)
}

// GetUnitTrace handles movement trace requests for a stock row
// Rastreamento de movimentações de um registro de estoque
func (h *Handlers) GetUnitTrace(w http.ResponseWriter, r *http.Request) {
	stockID, ok := h.pathID(w, r, "stockId")
	if !ok {
		return
	}

	records, err := h.trace.UnitTrace(r.Context(), stockID)
	if err != nil {
		h.sendDomainError(w, err)
		return
	}

	h.sendSuccess(w, records)
}

// GetExpiringStock handles expiring stock requests
// Estoque com validade dentro da janela
func (h *Handlers) GetExpiringStock(w http.ResponseWriter, r *http.Request) {
	days := queryInt(r, "days", 30)

	stocks, err := h.trace.ExpiringStock(r.Context(), time.Duration(days)*24*time.Hour)
	if err != nil {
		h.sendDomainError(w, err)
		return
	}

	h.sendSuccess(w, stocks)
}

// GetExpiredStock handles expired stock requests
// Estoque vencido
func (h *Handlers) GetExpiredStock(w http.ResponseWriter, r *http.Request) {
	stocks, err := h.trace.ExpiredStock(r.Context())
	if err != nil {
		h.sendDomainError(w, err)
		return
	}

	h.sendSuccess(w, stocks)
}

// GetDashboard handles dashboard summary requests
// Resumo do painel de controle
func (h *Handlers) GetDashboard(w http.ResponseWriter, r *http.Request) {
	summary, err := h.dashboard.Summary(r.Context())
	if err != nil {
		h.sendDomainError(w, err)
		return
	}

	h.sendSuccess(w, summary)
}

// ListAircraft handles fleet listing
// Listagem da frota
func (h *Handlers) ListAircraft(w http.ResponseWriter, r *http.Request) {
	fleet, err := h.storage.ListAircraft(r.Context())
	if err != nil {
		h.sendDomainError(w, err)
		return
	}

	h.sendSuccess(w, fleet)
}

// Métodos auxiliares

// pathID extracts a numeric id from the request path
// Extrai um id numérico do caminho da requisição
func (h *Handlers) pathID(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)[name], 10, 64)
	if err != nil {
		h.sendError(w, http.StatusBadRequest, "identificador inválido")
		return 0, false
	}
	return id, true
}

// queryInt reads an integer query parameter with a default value
// Lê um parâmetro de consulta inteiro com valor padrão
func queryInt(r *http.Request, name string, defaultValue int) int {
	if raw := r.URL.Query().Get(name); raw != "" {
		if value, err := strconv.Atoi(raw); err == nil && value >= 0 {
			return value
		}
	}
	return defaultValue
}

// movementFilter builds a movement filter from query parameters
// Monta o filtro de movimentações a partir da consulta
func movementFilter(r *http.Request) inventory.MovementFilter {
	filter := inventory.MovementFilter{
		Search: r.URL.Query().Get("q"),
		Limit:  queryInt(r, "limit", 50),
	}
	if raw := r.URL.Query().Get("date_from"); raw != "" {
		if t, err := time.Parse("2006-01-02", raw); err == nil {
			filter.DateFrom = &t
		}
	}
	if raw := r.URL.Query().Get("date_to"); raw != "" {
		if t, err := time.Parse("2006-01-02", raw); err == nil {
			filter.DateTo = &t
		}
	}
	return filter
}

// sendSuccess sends a successful API response
// Envia uma resposta de sucesso
func (h *Handlers) sendSuccess(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)

	response := APIResponse{
		Success: true,
		Data:    data,
	}

	if err := json.NewEncoder(w).Encode(response); err != nil {
		h.logger.Error("falha ao enviar resposta", zap.Error(err))
	}
}

// sendError sends an error API response
// Envia uma resposta de erro
func (h *Handlers) sendError(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	response := APIResponse{
		Success: false,
		Error:   message,
	}

	if err := json.NewEncoder(w).Encode(response); err != nil {
		h.logger.Error("falha ao enviar resposta de erro", zap.Error(err))
	}
}

// sendDomainError maps domain errors to HTTP status codes
// Mapeia erros de domínio para códigos HTTP
func (h *Handlers) sendDomainError(w http.ResponseWriter, err error) {
	var validationErr *inventory.ValidationError
	var businessErr *inventory.BusinessRuleError

	switch {
	case errors.Is(err, inventory.ErrItemNotFound),
		errors.Is(err, inventory.ErrStockNotFound),
		errors.Is(err, inventory.ErrLocationNotFound),
		errors.Is(err, inventory.ErrSiteNotFound),
		errors.Is(err, inventory.ErrOrderNotFound),
		errors.Is(err, inventory.ErrAircraftNotFound):
		h.sendError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, inventory.ErrDuplicateItem),
		errors.Is(err, inventory.ErrDuplicateStock),
		errors.Is(err, inventory.ErrDuplicateOrder),
		errors.Is(err, inventory.ErrDuplicateEquivalence),
		errors.Is(err, inventory.ErrItemInUse),
		errors.Is(err, inventory.ErrStockInUse):
		h.sendError(w, http.StatusConflict, err.Error())
	case errors.Is(err, inventory.ErrInsufficientStock),
		errors.Is(err, inventory.ErrNegativeQuantity),
		errors.Is(err, inventory.ErrSerializedQuantity),
		errors.Is(err, inventory.ErrSelfEquivalence),
		errors.Is(err, inventory.ErrOrderItemReference),
		errors.As(err, &validationErr),
		errors.As(err, &businessErr):
		h.sendError(w, http.StatusBadRequest, err.Error())
	default:
		h.logger.Error("erro interno", zap.Error(err))
		h.sendError(w, http.StatusInternalServerError, "erro interno do servidor")
	}
}
