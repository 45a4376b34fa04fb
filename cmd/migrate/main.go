package main

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"

	_ "github.com/lib/pq"

	"github.com/sltavares/estoqueGo/internal/config"
)

func main() {
	log.Println("estoqueGo - ferramenta de migração")

	// Configuração
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("falha ao carregar configuração:", err)
	}

	log.Printf("conectando ao banco: %s:%d/%s", cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	db, err := sql.Open("postgres", cfg.DSN())
	if err != nil {
		log.Fatal("falha ao conectar ao banco de dados:", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatal("falha no ping do banco de dados:", err)
	}

	log.Println("conexão estabelecida")

	// Diretório de migrações
	migrationDir := "migrations"
	if len(os.Args) > 1 {
		migrationDir = os.Args[1]
	}

	if _, err := os.Stat(migrationDir); os.IsNotExist(err) {
		log.Fatalf("diretório de migrações não encontrado: %s", migrationDir)
	}

	if err := createMigrationTable(db); err != nil {
		log.Fatal("falha ao criar tabela de histórico:", err)
	}

	if err := runMigrations(db, migrationDir); err != nil {
		log.Fatal("falha ao executar migrações:", err)
	}

	log.Println("todas as migrações concluídas")
}

// createMigrationTable cria a tabela de histórico de migrações
func createMigrationTable(db *sql.DB) error {
	query := `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			id SERIAL PRIMARY KEY,
			filename VARCHAR(255) NOT NULL UNIQUE,
			executed_at TIMESTAMP NOT NULL DEFAULT NOW(),
			checksum VARCHAR(64) NOT NULL
		)`

	if _, err := db.Exec(query); err != nil {
		return fmt.Errorf("erro ao criar tabela de histórico: %w", err)
	}

	log.Println("tabela de histórico verificada")
	return nil
}

// runMigrations aplica as migrações pendentes em ordem de nome
func runMigrations(db *sql.DB, migrationDir string) error {
	files, err := filepath.Glob(filepath.Join(migrationDir, "*.sql"))
	if err != nil {
		return fmt.Errorf("erro ao buscar arquivos de migração: %w", err)
	}

	if len(files) == 0 {
		log.Printf("nenhum arquivo de migração em: %s", migrationDir)
		return nil
	}

	sort.Strings(files)

	executed, err := getExecutedMigrations(db)
	if err != nil {
		return fmt.Errorf("erro ao consultar migrações executadas: %w", err)
	}

	for _, file := range files {
		filename := filepath.Base(file)

		if executed[filename] {
			log.Printf("pulando (já executada): %s", filename)
			continue
		}

		log.Printf("executando: %s", filename)

		content, err := os.ReadFile(file)
		if err != nil {
			return fmt.Errorf("erro ao ler %s: %w", filename, err)
		}

		checksum := calculateChecksum(content)

		tx, err := db.Begin()
		if err != nil {
			return fmt.Errorf("erro ao iniciar transação %s: %w", filename, err)
		}

		if _, err := tx.Exec(string(content)); err != nil {
			tx.Rollback()
			return fmt.Errorf("erro ao executar %s: %w", filename, err)
		}

		if _, err := tx.Exec(
			"INSERT INTO schema_migrations (filename, checksum) VALUES ($1, $2)",
			filename, checksum,
		); err != nil {
			tx.Rollback()
			return fmt.Errorf("erro ao registrar %s: %w", filename, err)
		}

		if err := tx.Commit(); err != nil {
			return fmt.Errorf("erro ao confirmar %s: %w", filename, err)
		}

		log.Printf("concluída: %s", filename)
	}

	return nil
}

// getExecutedMigrations lista as migrações já aplicadas
func getExecutedMigrations(db *sql.DB) (map[string]bool, error) {
	executed := make(map[string]bool)

	rows, err := db.Query("SELECT filename FROM schema_migrations")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var filename string
		if err := rows.Scan(&filename); err != nil {
			return nil, err
		}
		executed[filename] = true
	}

	return executed, rows.Err()
}

// calculateChecksum calcula um checksum simples do conteúdo
func calculateChecksum(content []byte) string {
	sum := 0
	for _, b := range content {
		sum += int(b)
	}
	return fmt.Sprintf("%x", sum)
}
