package spreadsheet

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/sltavares/estoqueGo/pkg/inventory"
)

// Colunas da planilha de kanban
const (
	kanbanColCase = iota
	kanbanColItemLoc
	kanbanColMPN
	kanbanColNome
	kanbanColQtd
	kanbanColCapitulo
	kanbanColFigura
	kanbanColItem
	kanbanColQtdMin

	kanbanSheetColumns
)

// Site fixo das planilhas de kanban
const (
	kanbanSiteName = "1bavex"
	kanbanSubSite  = "spu"
)

// ImportKanban reads the 9-column kanban worksheet and loads its
// catalog items and stock rows into the given kanban class. The doc
// reference is assembled from the chapter, figure and item columns.
// Importa a planilha de kanban de 9 colunas para a classe informada
func (imp *Importer) ImportKanban(ctx context.Context, r io.Reader, sheet string, kanban inventory.Kanban, section string) (*Report, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("falha ao abrir planilha: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("falha ao ler aba %q: %w", sheet, err)
	}

	site, err := imp.registry.FindOrCreateSite(ctx, kanbanSiteName, kanbanSubSite, inventory.SiteTypeInternal)
	if err != nil {
		return nil, err
	}

	report := &Report{}

	// Linha 1 é cabeçalho
	for i := 1; i < len(rows); i++ {
		row := padRow(rows[i], kanbanSheetColumns)
		report.Rows++

		if err := imp.importKanbanRow(ctx, row, site.ID, section, kanban, report); err != nil {
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

	imp.logger.Info("importação de kanban concluída",
		zap.String("kanban", string(kanban)),
		zap.Int("rows", report.Rows),
		zap.Int("created_items", report.CreatedItems),
		zap.Int("created_stock", report.CreatedStock),
		zap.Int("errors", report.Errors),
	)

	return report, nil
}

// importKanbanRow processes one kanban row
// Processa uma linha da planilha de kanban
func (imp *Importer) importKanbanRow(ctx context.Context, row []string, siteID int64, section string, kanban inventory.Kanban, report *Report) error {
	mpn := CleanText(row[kanbanColMPN])
	if mpn == "" {
		// Linha de separação da maleta
		report.Rows--
		return nil
	}

	name := CleanText(row[kanbanColNome])
	if name == "" {
		name = mpn
	}

	// Referência IETP montada de capítulo, figura e item
	var doc, tecPub string
	chapter := CleanText(row[kanbanColCapitulo])
	figure := CleanText(row[kanbanColFigura])
	itemRef := CleanText(row[kanbanColItem])
	if chapter != "" && figure != "" && itemRef != "" {
		doc = "IETP"
		tecPub = fmt.Sprintf("%s-%s-%s", chapter, figure, itemRef)
	}

	itemExisted := true
	if _, err := imp.storage.GetItemByMPN(ctx, mpn); err != nil {
		itemExisted = false
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
	if !itemExisted {
		report.CreatedItems++
	}

	var caseNo, itemNumber *int64
	if v, ok := ToInt(row[kanbanColCase]); ok {
		caseNo = &v
	}
	if v, ok := ToInt(row[kanbanColItemLoc]); ok {
		itemNumber = &v
	}

	location, err := imp.registry.FindOrCreateLocation(ctx, siteID, section, nil, caseNo, itemNumber)
	if err != nil {
		return err
	}

	quantity, ok := ToInt(row[kanbanColQtd])
	if !ok || quantity < 1 {
		quantity = 1
	}
	minimum, _ := ToInt(row[kanbanColQtdMin])

	stock := &inventory.Stock{
		ItemID:          item.ID,
		Kanban:          kanban,
		LocationID:      &location.ID,
		Quantity:        quantity,
		MinimumQuantity: minimum,
		UpdatedAt:       time.Now(),
		UpdatedBy:       imp.actor,
	}
	if err := imp.storage.CreateStock(ctx, stock); err != nil {
		return err
	}
	report.CreatedStock++
	return nil
}
