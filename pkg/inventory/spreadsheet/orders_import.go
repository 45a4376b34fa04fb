package spreadsheet

import (
	"context"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/sltavares/estoqueGo/pkg/inventory"
)

// Colunas da planilha SPU (1-based na planilha, 0-based no slice)
const (
	colPedido = iota
	colDataPedido
	colSolicitante
	colOperador
	colANV
	colTipoAtd
	colTipoPed
	colMPN
	colNome
	colQtd
	colDocTS
	colMotivo
	colObs
	colDescPane
	colTroubleshooting
	colTSN
	colTSO
	colSN
	colANVTSN
	colVenc
	colDestANV
	colPNAlt1
	colPNAlt2
	colDPE
	colLogCard
	colGMM
	colColetado
	colStatus
	colNF
	colDataAtd
	colContratoAnt
	colNotes

	orderSheetColumns
)

// Report summarizes an import run. Row errors are counted and logged
// without stopping the batch.
// Resumo de uma importação; erros por linha não interrompem o lote
type Report struct {
	Rows          int `json:"rows"`           // linhas lidas
	CreatedOrders int `json:"created_orders"` // pedidos criados
	UpdatedOrders int `json:"updated_orders"` // pedidos atualizados
	CreatedItems  int `json:"created_items"`  // itens de catálogo criados
	CreatedLines  int `json:"created_lines"`  // itens de pedido criados
	CreatedStock  int `json:"created_stock"`  // registros de estoque criados
	Errors        int `json:"errors"`         // linhas com erro
}

// Importer loads the section's hand-kept spreadsheets into the system
// Importa as planilhas mantidas à mão pela seção
type Importer struct {
	storage  inventory.Storage
	catalog  *inventory.Catalog
	orders   *inventory.OrderBook
	registry *inventory.Registry
	logger   *zap.Logger
	actor    string
}

// NewImporter creates a new spreadsheet importer. The actor is recorded
// on every row the import creates.
// Cria um novo importador de planilhas
func NewImporter(storage inventory.Storage, catalog *inventory.Catalog, orders *inventory.OrderBook, registry *inventory.Registry, logger *zap.Logger, actor string) *Importer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Importer{
		storage:  storage,
		catalog:  catalog,
		orders:   orders,
		registry: registry,
		logger:   logger,
		actor:    actor,
	}
}

// ImportOrders reads the 32-column SPU worksheet and loads its orders,
// order lines and catalog items. A row without an order number is
// skipped; a row that fails is counted and the batch continues.
// Importa a planilha SPU de 32 colunas (pedidos e itens)
func (imp *Importer) ImportOrders(ctx context.Context, r io.Reader, sheet string) (*Report, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("falha ao abrir planilha: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("falha ao ler aba %q: %w", sheet, err)
	}

	report := &Report{}

	// Linha 1 é cabeçalho
	for i := 1; i < len(rows); i++ {
		row := padRow(rows[i], orderSheetColumns)
		report.Rows++

		if err := imp.importOrderRow(ctx, row, report); err != nil {
			report.Errors++
			inventory.RecordImportRow("error")
			imp.logger.Error("erro na linha da planilha",
				zap.Int("row", i+1),
				zap.Error(err),
			)
			continue
		}
		inventory.RecordImportRow("ok")
	}

	imp.logger.Info("importação SPU concluída",
		zap.Int("rows", report.Rows),
		zap.Int("created_orders", report.CreatedOrders),
		zap.Int("updated_orders", report.UpdatedOrders),
		zap.Int("created_lines", report.CreatedLines),
		zap.Int("errors", report.Errors),
	)

	return report, nil
}

// importOrderRow processes one SPU row
// Processa uma linha da planilha SPU
func (imp *Importer) importOrderRow(ctx context.Context, row []string, report *Report) error {
	number, ok := ToInt(row[colPedido])
	if !ok {
		// Linha sem número de pedido é preenchimento futuro
		report.Rows--
		return nil
	}

	orderDate := ToDate(row[colDataPedido])
	if orderDate == nil {
		return fmt.Errorf("data de pedido inválida: %q", row[colDataPedido])
	}

	incoming := &inventory.Order{
		OrderNumber: number,
		OrderYear:   orderDate.Year(),
		OrderDate:   orderDate,
		Requester:   ParseRequester(row[colSolicitante]),
		OrderType:   ParseOrderType(row[colTipoPed]),
		Status:      ParseStatus(row[colStatus]),
		Notes:       CleanText(row[colNotes]),
		CreatedBy:   imp.actor,
	}

	orderExisted := true
	if _, err := imp.storage.GetOrderByNumber(ctx, number, orderDate.Year()); err != nil {
		orderExisted = false
	}

	order, err := imp.orders.FindOrCreateOrder(ctx, incoming)
	if err != nil {
		return err
	}
	if orderExisted {
		report.UpdatedOrders++
	} else {
		report.CreatedOrders++
	}

	// Item do catálogo
	var itemID *int64
	if mpn := CleanText(row[colMPN]); mpn != "" {
		itemExisted := true
		if _, err := imp.storage.GetItemByMPN(ctx, mpn); err != nil {
			itemExisted = false
		}

		doc, tecPub := ParseDocTecPub(row[colDocTS])
		name := CleanText(row[colNome])
		if name == "" {
			name = mpn
		}
		item, err := imp.catalog.FindOrCreateItem(ctx, &inventory.Item{
			MPN:       mpn,
			Name:      name,
			Doc:       doc,
			TecPub:    tecPub,
			CreatedBy: imp.actor,
		})
		if err != nil {
			return err
		}
		itemID = &item.ID
		if !itemExisted {
			report.CreatedItems++
		}
	}

	quantity, ok := ToInt(row[colQtd])
	if !ok || quantity < 1 {
		quantity = 1
	}

	line := &inventory.OrderItem{
		OrderID:               order.ID,
		ItemID:                itemID,
		AircraftID:            imp.aircraftID(ctx, row[colANV]),
		AircraftDestinationID: imp.aircraftID(ctx, row[colDestANV]),
		Operator:              CleanText(row[colOperador]),
		ServiceType:           inventory.ServiceType(CleanText(row[colTipoAtd])),
		Quantity:              quantity,
		DPE:                   CleanText(row[colDPE]),
		LogCard:               ParseBoolean(row[colLogCard]),
		SNAttended:            CleanText(row[colSN]),
		ExpirationAttended:    ToDate(row[colVenc]),
		NFAnswer:              CleanText(row[colNF]),
		AttendedDate:          ToDate(row[colDataAtd]),
		Collected:             ParseBoolean(row[colColetado]),
		GMM:                   CleanText(row[colGMM]),
		ContractOld:           ParseBoolean(row[colContratoAnt]),
		Reason:                CleanText(row[colMotivo]),
		Troubleshooting:       CleanText(row[colTroubleshooting]),
		FailureDescription:    CleanText(row[colDescPane]),
		Observation:           CleanText(row[colObs]),
		Notes:                 CleanText(row[colNotes]),
		TSNItem:               ToDecimal(row[colTSN]),
		TSOItem:               ToDecimal(row[colTSO]),
		CreatedBy:             imp.actor,
	}

	if err := imp.orders.AddOrderItem(ctx, line); err != nil {
		return err
	}
	report.CreatedLines++
	return nil
}

// aircraftID resolves a free-text aircraft cell into a fleet id,
// registering the aircraft on first sight. Empty cells map to nil.
// Resolve a célula de aeronave para um id da frota, cadastrando se novo
func (imp *Importer) aircraftID(ctx context.Context, cell string) *int64 {
	numeral := AircraftNumeral(cell)
	if numeral == "" {
		return nil
	}

	aircraft, err := imp.storage.GetAircraftByNumeral(ctx, numeral)
	if err == nil {
		return &aircraft.ID
	}

	aircraft = &inventory.Aircraft{Numeral: numeral}
	if err := imp.storage.CreateAircraft(ctx, aircraft); err != nil {
		imp.logger.Warn("falha ao cadastrar aeronave",
			zap.String("numeral", numeral),
			zap.Error(err),
		)
		return nil
	}
	return &aircraft.ID
}

// padRow extends a short row to the expected width
// Completa uma linha curta até a largura esperada
func padRow(row []string, width int) []string {
	if len(row) >= width {
		return row
	}
	padded := make([]string, width)
	copy(padded, row)
	return padded
}
