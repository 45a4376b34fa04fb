// Package config loads application configuration from the environment
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds application configuration
// Configuração da aplicação
type Config struct {
	Database DatabaseConfig `yaml:"database"`
	API      APIConfig      `yaml:"api"`
	Import   ImportConfig   `yaml:"import"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// DatabaseConfig holds database configuration
// Configuração do banco de dados
type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	DBName   string `yaml:"dbname"`
	SSLMode  string `yaml:"sslmode"`
}

// APIConfig holds API server configuration
// Configuração do servidor HTTP
type APIConfig struct {
	Port          int           `yaml:"port"`
	ReadTimeout   time.Duration `yaml:"read_timeout"`
	WriteTimeout  time.Duration `yaml:"write_timeout"`
	IdleTimeout   time.Duration `yaml:"idle_timeout"`
	EnableCORS    bool          `yaml:"enable_cors"`
	EnableMetrics bool          `yaml:"enable_metrics"`
}

// ImportConfig holds spreadsheet import defaults
// Padrões de importação de planilhas
type ImportConfig struct {
	Actor         string `yaml:"actor"`          // responsável registrado nas importações
	OrderSheet    string `yaml:"order_sheet"`    // aba da planilha SPU
	ContractSheet string `yaml:"contract_sheet"` // aba da planilha de contrato
	KanbanSheet   string `yaml:"kanban_sheet"`   // aba da planilha de kanban
}

// LoggingConfig holds logging configuration
// Configuração de log
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // json, console
	Output string `yaml:"output"` // stdout, file
}

// Load loads configuration from the environment. A .env file in the
// working directory is read first when present.
// Carrega a configuração do ambiente (.env opcional)
func Load() (*Config, error) {
	// .env é opcional; ausência não é erro
	_ = godotenv.Load()

	cfg := &Config{
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvAsInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "estoque"),
			Password: getEnv("DB_PASSWORD", "password"),
			DBName:   getEnv("DB_NAME", "estoque_db"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		API: APIConfig{
			Port:          getEnvAsInt("API_PORT", 8080),
			ReadTimeout:   getEnvAsDuration("API_READ_TIMEOUT", 30*time.Second),
			WriteTimeout:  getEnvAsDuration("API_WRITE_TIMEOUT", 30*time.Second),
			IdleTimeout:   getEnvAsDuration("API_IDLE_TIMEOUT", 60*time.Second),
			EnableCORS:    getEnvAsBool("API_ENABLE_CORS", true),
			EnableMetrics: getEnvAsBool("API_ENABLE_METRICS", true),
		},
		Import: ImportConfig{
			Actor:         getEnv("IMPORT_ACTOR", "admin"),
			OrderSheet:    getEnv("IMPORT_ORDER_SHEET", "PRATELEIRAS"),
			ContractSheet: getEnv("IMPORT_CONTRACT_SHEET", "Pedidos Contrato 89"),
			KanbanSheet:   getEnv("IMPORT_KANBAN_SHEET", "KANBAN_MOTOR"),
		},
		Logging: LoggingConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
			Output: getEnv("LOG_OUTPUT", "stdout"),
		},
	}

	// Arquivo YAML opcional; valores do arquivo prevalecem sobre o ambiente
	if path := getEnv("CONFIG_FILE", ""); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("falha ao ler arquivo de configuração: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("arquivo de configuração inválido: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuração inválida: %w", err)
	}

	return cfg, nil
}

// Validate validates the configuration
// Valida a configuração
func (c *Config) Validate() error {
	if c.Database.Host == "" {
		return fmt.Errorf("host do banco de dados não informado")
	}
	if c.Database.Port <= 0 || c.Database.Port > 65535 {
		return fmt.Errorf("porta do banco de dados inválida: %d", c.Database.Port)
	}
	if c.Database.User == "" {
		return fmt.Errorf("usuário do banco de dados não informado")
	}
	if c.Database.DBName == "" {
		return fmt.Errorf("nome do banco de dados não informado")
	}

	if c.API.Port <= 0 || c.API.Port > 65535 {
		return fmt.Errorf("porta da API inválida: %d", c.API.Port)
	}

	if c.Import.Actor == "" {
		return fmt.Errorf("responsável pelas importações não informado")
	}

	validLogLevels := map[string]bool{
		"debug": true, "info": true, "warn": true, "error": true, "fatal": true,
	}
	if !validLogLevels[c.Logging.Level] {
		return fmt.Errorf("nível de log inválido: %s", c.Logging.Level)
	}

	validLogFormats := map[string]bool{
		"json": true, "console": true,
	}
	if !validLogFormats[c.Logging.Format] {
		return fmt.Errorf("formato de log inválido: %s", c.Logging.Format)
	}

	return nil
}

// DSN generates the PostgreSQL data source name
// Gera a string de conexão do PostgreSQL
func (c *Config) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.DBName,
		c.Database.SSLMode,
	)
}

// Funções auxiliares

// getEnv gets an environment variable with a default value
// Lê uma variável de ambiente com valor padrão
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt gets an environment variable as integer
// Lê uma variável de ambiente como inteiro
func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvAsBool gets an environment variable as boolean
// Lê uma variável de ambiente como booleano
func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

// getEnvAsDuration gets an environment variable as duration
// Lê uma variável de ambiente como duração
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
