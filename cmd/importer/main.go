package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/sltavares/estoqueGo/internal/config"
	"github.com/sltavares/estoqueGo/pkg/inventory"
	"github.com/sltavares/estoqueGo/pkg/inventory/spreadsheet"
	"github.com/sltavares/estoqueGo/pkg/inventory/storage"
)

// ImportJob describes one spreadsheet import
// Descreve uma importação de planilha
type ImportJob struct {
	File    string `yaml:"file"`
	Mode    string `yaml:"mode"`    // spu, contract, kanban
	Sheet   string `yaml:"sheet"`   // aba da planilha (padrão da configuração)
	Kanban  string `yaml:"kanban"`  // classe kanban (modo kanban)
	Section string `yaml:"section"` // seção da localização (modo kanban)
}

// ImportPlan is a YAML file listing import jobs to run in order
// Plano de importação em YAML, executado na ordem listada
type ImportPlan struct {
	Jobs []ImportJob `yaml:"jobs"`
}

func main() {
	planPath := flag.String("plan", "", "arquivo YAML com o plano de importação")
	file := flag.String("file", "", "planilha a importar")
	mode := flag.String("mode", "spu", "modo de importação: spu, contract ou kanban")
	sheet := flag.String("sheet", "", "aba da planilha (padrão conforme o modo)")
	kanban := flag.String("kanban", string(inventory.KanbanEngine), "classe kanban (modo kanban)")
	section := flag.String("section", "", "seção da localização (modo kanban)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("falha ao carregar configuração:", err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatal("falha ao inicializar log:", err)
	}
	defer logger.Sync()

	plan, err := buildPlan(*planPath, ImportJob{
		File:    *file,
		Mode:    *mode,
		Sheet:   *sheet,
		Kanban:  *kanban,
		Section: *section,
	})
	if err != nil {
		logger.Fatal("plano de importação inválido", zap.Error(err))
	}

	importer, closeStorage, err := buildImporter(cfg, logger)
	if err != nil {
		logger.Fatal("falha ao preparar a importação", zap.Error(err))
	}
	defer closeStorage()

	ctx := context.Background()
	for _, job := range plan.Jobs {
		if err := runJob(ctx, importer, cfg.Import, job, logger); err != nil {
			logger.Fatal("falha na importação",
				zap.String("file", job.File),
				zap.String("mode", job.Mode),
				zap.Error(err),
			)
		}
	}
}

// buildPlan loads the YAML plan or wraps the single job from the flags
// Carrega o plano YAML ou monta um plano com o job das flags
func buildPlan(planPath string, single ImportJob) (*ImportPlan, error) {
	if planPath == "" {
		if single.File == "" {
			return nil, fmt.Errorf("informe -file ou -plan")
		}
		return &ImportPlan{Jobs: []ImportJob{single}}, nil
	}

	data, err := os.ReadFile(planPath)
	if err != nil {
		return nil, fmt.Errorf("falha ao ler o plano: %w", err)
	}

	plan := &ImportPlan{}
	if err := yaml.Unmarshal(data, plan); err != nil {
		return nil, fmt.Errorf("falha ao interpretar o plano: %w", err)
	}
	if len(plan.Jobs) == 0 {
		return nil, fmt.Errorf("plano sem importações")
	}
	for i, job := range plan.Jobs {
		if job.File == "" {
			return nil, fmt.Errorf("importação %d sem arquivo", i+1)
		}
	}
	return plan, nil
}

// buildImporter wires the storage and domain managers
// Conecta o armazenamento e os gerenciadores de domínio
func buildImporter(cfg *config.Config, logger *zap.Logger) (*spreadsheet.Importer, func(), error) {
	store, err := storage.NewPostgreSQLStorage(cfg.DSN(), logger)
	if err != nil {
		return nil, nil, err
	}

	catalog := inventory.NewCatalog(store, logger)
	orders := inventory.NewOrderBook(store, logger)
	registry := inventory.NewRegistry(store, logger)
	importer := spreadsheet.NewImporter(store, catalog, orders, registry, logger, cfg.Import.Actor)

	return importer, func() { store.Close() }, nil
}

// runJob runs one import job and logs its report
// Executa uma importação e registra o relatório
func runJob(ctx context.Context, importer *spreadsheet.Importer, defaults config.ImportConfig, job ImportJob, logger *zap.Logger) error {
	f, err := os.Open(job.File)
	if err != nil {
		return fmt.Errorf("falha ao abrir %s: %w", job.File, err)
	}
	defer f.Close()

	var report *spreadsheet.Report
	switch job.Mode {
	case "spu", "":
		report, err = importer.ImportOrders(ctx, f, orDefault(job.Sheet, defaults.OrderSheet))
	case "contract":
		report, err = importer.ImportContractOrders(ctx, f, orDefault(job.Sheet, defaults.ContractSheet))
	case "kanban":
		kanban := inventory.Kanban(orDefault(job.Kanban, string(inventory.KanbanEngine)))
		report, err = importer.ImportKanban(ctx, f, orDefault(job.Sheet, defaults.KanbanSheet), kanban, job.Section)
	default:
		return fmt.Errorf("modo de importação desconhecido: %s", job.Mode)
	}
	if err != nil {
		return err
	}

	logger.Info("importação concluída",
		zap.String("file", job.File),
		zap.String("mode", job.Mode),
		zap.Int("rows", report.Rows),
		zap.Int("created_orders", report.CreatedOrders),
		zap.Int("updated_orders", report.UpdatedOrders),
		zap.Int("created_items", report.CreatedItems),
		zap.Int("created_lines", report.CreatedLines),
		zap.Int("created_stock", report.CreatedStock),
		zap.Int("errors", report.Errors),
	)
	return nil
}

func orDefault(value, fallback string) string {
	if value != "" {
		return value
	}
	return fallback
}
