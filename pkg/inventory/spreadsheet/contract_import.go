package spreadsheet

import (
	"context"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/sltavares/estoqueGo/pkg/inventory"
)

// Colunas da planilha de pedidos de contrato (FSM)
const (
	ctrColPedido = iota
	ctrColDataPedido
	ctrColSolicitante
	ctrColOperador
	ctrColANV
	ctrColTipoAtd
	ctrColTipoPed
	ctrColMPN
	ctrColNome
	ctrColQtd
	ctrColDocTS
	ctrColMotivo
	ctrColObsItem
	ctrColTroubleshooting
	ctrColTSN
	ctrColTSO
	ctrColSN
	ctrColANVTSN
	ctrColVenc
	ctrColDestANV
	ctrColPNAlt1
	ctrColPNAlt2
	ctrColContratoAnt
	ctrColDPE
	ctrColStatus
	ctrColSNRecebido
	ctrColNFTransp
	ctrColDataAtd
	ctrColQtdForn
	ctrColQtdFalt
	ctrColObs1

	contractSheetColumns
)

// ImportContractOrders reads the 31-column contract worksheet used for
// FSM requisitions. It shares the SPU heuristics but also carries the
// supplied quantity and the received serial number.
// Importa a planilha de pedidos de contrato (FSM) de 31 colunas
func (imp *Importer) ImportContractOrders(ctx context.Context, r io.Reader, sheet string) (*Report, error) {
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

	for i := 1; i < len(rows); i++ {
		row := padRow(rows[i], contractSheetColumns)
		report.Rows++

		if err := imp.importContractRow(ctx, row, report); err != nil {
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

	imp.logger.Info("importação de contrato concluída",
		zap.Int("rows", report.Rows),
		zap.Int("created_orders", report.CreatedOrders),
		zap.Int("created_lines", report.CreatedLines),
		zap.Int("errors", report.Errors),
	)

	return report, nil
}

// importContractRow processes one contract row
// Processa uma linha da planilha de contrato
func (imp *Importer) importContractRow(ctx context.Context, row []string, report *Report) error {
	number, ok := ToInt(row[ctrColPedido])
	if !ok {
		report.Rows--
		return nil
	}

	orderDate := ToDate(row[ctrColDataPedido])
	if orderDate == nil {
		return fmt.Errorf("data de pedido inválida: %q", row[ctrColDataPedido])
	}

	incoming := &inventory.Order{
		OrderNumber: number,
		OrderYear:   orderDate.Year(),
		OrderDate:   orderDate,
		Requester:   ParseRequester(row[ctrColSolicitante]),
		OrderType:   ParseOrderType(row[ctrColTipoPed]),
		Status:      ParseStatus(row[ctrColStatus]),
		Notes:       CleanText(row[ctrColObs1]),
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

	var itemID *int64
	if mpn := CleanText(row[ctrColMPN]); mpn != "" {
		itemExisted := true
		if _, err := imp.storage.GetItemByMPN(ctx, mpn); err != nil {
			itemExisted = false
		}

		doc, tecPub := ParseDocTecPub(row[ctrColDocTS])
		name := CleanText(row[ctrColNome])
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

	quantity, ok := ToInt(row[ctrColQtd])
	if !ok || quantity < 1 {
		quantity = 1
	}
	var supplied *int64
	if v, ok := ToInt(row[ctrColQtdForn]); ok {
		supplied = &v
	}

	line := &inventory.OrderItem{
		OrderID:               order.ID,
		ItemID:                itemID,
		AircraftID:            imp.aircraftID(ctx, row[ctrColANV]),
		AircraftDestinationID: imp.aircraftID(ctx, row[ctrColDestANV]),
		Operator:              CleanText(row[ctrColOperador]),
		ServiceType:           inventory.ServiceType(CleanText(row[ctrColTipoAtd])),
		Quantity:              quantity,
		QuantitySupplied:      supplied,
		DPE:                   CleanText(row[ctrColDPE]),
		SNAttended:            CleanText(row[ctrColSNRecebido]),
		ExpirationAttended:    ToDate(row[ctrColVenc]),
		NFAnswer:              CleanText(row[ctrColNFTransp]),
		AttendedDate:          ToDate(row[ctrColDataAtd]),
		ContractOld:           ParseBoolean(row[ctrColContratoAnt]),
		Reason:                CleanText(row[ctrColMotivo]),
		Troubleshooting:       CleanText(row[ctrColTroubleshooting]),
		Observation:           CleanText(row[ctrColObsItem]),
		TSNItem:               ToDecimal(row[ctrColTSN]),
		TSOItem:               ToDecimal(row[ctrColTSO]),
		CreatedBy:             imp.actor,
	}

	if err := imp.orders.AddOrderItem(ctx, line); err != nil {
		return err
	}
	report.CreatedLines++
	return nil
}
