package spreadsheet

import (
	"context"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/sltavares/estoqueGo/pkg/inventory"
)

// Exporter renders orders into the 20-column requisition workbook sent
// to the supplier
// Gera a planilha de requisição de 20 colunas enviada ao fornecedor
type Exporter struct {
	storage inventory.Storage
	catalog *inventory.Catalog
	logger  *zap.Logger
}

// NewExporter creates a new order exporter
// Cria um novo exportador de pedidos
func NewExporter(storage inventory.Storage, catalog *inventory.Catalog, logger *zap.Logger) *Exporter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Exporter{
		storage: storage,
		catalog: catalog,
		logger:  logger,
	}
}

// Cabeçalho da planilha de requisição
var exportHeader = []string{
	"SOLICITANTE",
	"ANV",
	"TIPO ATD",
	"TIPO PED",
	"MPN",
	"NOME",
	"QTD",
	"DOC/PUB TEC",
	"MOTIVO",
	"OBS",
	"DESC PANE",
	"TROUBLESHOOTING",
	"TSN ITEM",
	"TSO ITEM",
	"SN",
	"TSN ANV",
	"VENCIMENTO",
	"ANV DESTINO",
	"PN ALT 1",
	"PN ALT 2",
}

// ExportOrder writes the requisition workbook of an order. Each line
// carries up to two alternative part numbers taken from the item's
// equivalences.
// Exporta a planilha de requisição de um pedido, com até dois PNs alternativos
func (e *Exporter) ExportOrder(ctx context.Context, orderID int64, w io.Writer) error {
	order, err := e.storage.GetOrder(ctx, orderID)
	if err != nil {
		return err
	}
	lines, err := e.storage.ListOrderItems(ctx, orderID)
	if err != nil {
		return err
	}

	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)

	for col, title := range exportHeader {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return fmt.Errorf("falha ao montar célula: %w", err)
		}
		if err := f.SetCellValue(sheet, cell, title); err != nil {
			return fmt.Errorf("falha ao escrever cabeçalho: %w", err)
		}
	}

	for i := range lines {
		values, err := e.exportLine(ctx, order, &lines[i])
		if err != nil {
			return err
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("falha ao montar célula: %w", err)
		}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return fmt.Errorf("falha ao escrever linha: %w", err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("falha ao gravar planilha: %w", err)
	}

	e.logger.Info("pedido exportado",
		zap.Int64("order_number", order.OrderNumber),
		zap.Int("order_year", order.OrderYear),
		zap.Int("lines", len(lines)),
	)
	return nil
}

// exportLine resolves the twenty cells of one requisition row
// Resolve as vinte células de uma linha da requisição
func (e *Exporter) exportLine(ctx context.Context, order *inventory.Order, line *inventory.OrderItem) ([]interface{}, error) {
	var item *inventory.Item
	var serial, expiration string

	// A linha aponta para um registro de estoque (RMS) ou direto para o
	// catálogo (FSM)
	switch {
	case line.StockID != nil:
		stock, err := e.storage.GetStock(ctx, *line.StockID)
		if err != nil {
			return nil, err
		}
		if stock.SerialNumber != nil {
			serial = *stock.SerialNumber
		}
		if stock.ExpirationDate != nil {
			expiration = stock.ExpirationDate.Format("2006-01-02")
		}
		item, err = e.storage.GetItem(ctx, stock.ItemID)
		if err != nil {
			return nil, err
		}
	case line.ItemID != nil:
		var err error
		item, err = e.storage.GetItem(ctx, *line.ItemID)
		if err != nil {
			return nil, err
		}
	}

	var mpn, name, docPub, alt1, alt2 string
	if item != nil {
		mpn = item.MPN
		name = item.Name
		docPub = fmt.Sprintf("%s %s", item.Doc, item.TecPub)

		equivalents, err := e.catalog.Equivalents(ctx, item.ID)
		if err != nil {
			return nil, err
		}
		if len(equivalents) > 0 {
			alt1 = equivalents[0].MPN
		}
		if len(equivalents) > 1 {
			alt2 = equivalents[1].MPN
		}
	}

	var anv, anvTSN, destANV string
	if line.AircraftID != nil {
		anv, anvTSN = e.aircraftCells(ctx, *line.AircraftID)
	}
	if line.AircraftDestinationID != nil {
		destANV, _ = e.aircraftCells(ctx, *line.AircraftDestinationID)
	}

	var tsnItem, tsoItem string
	if line.TSNItem != nil {
		tsnItem = line.TSNItem.String()
	}
	if line.TSOItem != nil {
		tsoItem = line.TSOItem.String()
	}

	return []interface{}{
		"1BAV",
		anv,
		string(line.ServiceType),
		string(order.OrderType),
		mpn,
		name,
		line.Quantity,
		docPub,
		line.Reason,
		line.Observation,
		line.FailureDescription,
		line.Troubleshooting,
		tsnItem,
		tsoItem,
		serial,
		anvTSN,
		expiration,
		destANV,
		alt1,
		alt2,
	}, nil
}

// aircraftCells resolves the numeral and TSN cells of an aircraft
// Resolve as células de numeral e TSN de uma aeronave
func (e *Exporter) aircraftCells(ctx context.Context, aircraftID int64) (numeral, tsn string) {
	aircraft, err := e.storage.GetAircraft(ctx, aircraftID)
	if err != nil {
		e.logger.Warn("falha ao consultar aeronave",
			zap.Int64("aircraft_id", aircraftID),
			zap.Error(err),
		)
		return "", ""
	}
	if aircraft.TSN != nil {
		return aircraft.Numeral, aircraft.TSN.String()
	}
	return aircraft.Numeral, ""
}
