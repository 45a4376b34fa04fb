package inventory

import (
	"errors"
	"fmt"
)

// Common inventory errors
// Erros comuns do módulo de estoque

var (
	// ErrItemNotFound is returned when a catalog item doesn't exist
	// Item do catálogo não encontrado
	ErrItemNotFound = errors.New("item não encontrado")

	// ErrStockNotFound is returned when a stock row doesn't exist
	// Registro de estoque não encontrado
	ErrStockNotFound = errors.New("registro de estoque não encontrado")

	// ErrLocationNotFound is returned when a location doesn't exist
	// Localização não encontrada
	ErrLocationNotFound = errors.New("localização não encontrada")

	// ErrSiteNotFound is returned when a site doesn't exist
	// OM não encontrada
	ErrSiteNotFound = errors.New("OM não encontrada")

	// ErrOrderNotFound is returned when an order doesn't exist
	// Pedido não encontrado
	ErrOrderNotFound = errors.New("pedido não encontrado")

	// ErrAircraftNotFound is returned when an aircraft doesn't exist
	// Aeronave não encontrada
	ErrAircraftNotFound = errors.New("aeronave não encontrada")

	// ErrInsufficientStock is returned when an outflow asks for more
	// than the row holds
	// Quantidade em estoque insuficiente para a saída
	ErrInsufficientStock = errors.New("quantidade em estoque insuficiente")

	// ErrNegativeQuantity is returned when a non-positive quantity is provided
	// Quantidade deve ser positiva
	ErrNegativeQuantity = errors.New("a quantidade deve ser positiva")

	// ErrSerializedQuantity is returned when an operation would leave a
	// serialized row with a quantity other than one
	// Unidade serializada deve manter quantidade 1
	ErrSerializedQuantity = errors.New("unidade serializada deve ter quantidade 1")

	// ErrDuplicateItem is returned when an MPN already exists in the catalog
	// MPN já cadastrado no catálogo
	ErrDuplicateItem = errors.New("item já existe no catálogo")

	// ErrDuplicateStock is returned when a stock row with the same
	// item and serial number already exists
	// Registro de estoque já existe para o item e serial
	ErrDuplicateStock = errors.New("registro de estoque já existe")

	// ErrDuplicateOrder is returned when the order number is taken for the year
	// Número de pedido já utilizado no ano
	ErrDuplicateOrder = errors.New("número de pedido já existe para o ano")

	// ErrSelfEquivalence is returned when an item is related to itself
	// Item não pode ser equivalente a si mesmo
	ErrSelfEquivalence = errors.New("item não pode ser equivalente a si mesmo")

	// ErrDuplicateEquivalence is returned when the pair already exists
	// in either direction
	// Equivalência já cadastrada em qualquer direção
	ErrDuplicateEquivalence = errors.New("equivalência já cadastrada")

	// ErrItemInUse is returned when deleting an item still referenced
	// by stock rows, equivalences or order items
	// Item ainda referenciado por estoque, equivalências ou pedidos
	ErrItemInUse = errors.New("item ainda está em uso")

	// ErrStockInUse is returned when deleting a stock row still
	// referenced by order items
	// Registro de estoque ainda referenciado por itens de pedido
	ErrStockInUse = errors.New("registro de estoque ainda está em uso")

	// ErrOrderItemReference is returned when an order line references
	// both a stock row and a catalog item, or neither
	// Item de pedido deve referenciar exatamente um: estoque ou catálogo
	ErrOrderItemReference = errors.New("item de pedido deve referenciar estoque ou item do catálogo, nunca ambos")
)

// ValidationError represents a validation error with details
// Erro de validação com detalhes do campo
type ValidationError struct {
	Field   string `json:"field"`   // campo inválido
	Message string `json:"message"` // mensagem de erro
	Value   string `json:"value"`   // valor recebido
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("erro de validação [%s]: %s (valor: %s)", e.Field, e.Message, e.Value)
}

// BusinessRuleError represents a business rule violation
// Violação de regra de negócio
type BusinessRuleError struct {
	Rule    string `json:"rule"`    // nome da regra
	Message string `json:"message"` // mensagem de erro
	Context string `json:"context"` // contexto
}

func (e BusinessRuleError) Error() string {
	return fmt.Sprintf("regra de negócio violada [%s]: %s (contexto: %s)", e.Rule, e.Message, e.Context)
}

// StorageError represents a storage layer error
// Erro da camada de armazenamento
type StorageError struct {
	Operation string `json:"operation"` // operação
	Message   string `json:"message"`   // mensagem de erro
	Cause     error  `json:"cause"`     // erro original
}

func (e StorageError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("erro de armazenamento [%s]: %s (causa: %v)", e.Operation, e.Message, e.Cause)
	}
	return fmt.Sprintf("erro de armazenamento [%s]: %s", e.Operation, e.Message)
}

func (e StorageError) Unwrap() error {
	return e.Cause
}

// NewValidationError creates a new validation error
// Cria um novo erro de validação
func NewValidationError(field, message, value string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
		Value:   value,
	}
}

// NewBusinessRuleError creates a new business rule error
// Cria um novo erro de regra de negócio
func NewBusinessRuleError(rule, message, context string) *BusinessRuleError {
	return &BusinessRuleError{
		Rule:    rule,
		Message: message,
		Context: context,
	}
}

// NewStorageError creates a new storage error
// Cria um novo erro de armazenamento
func NewStorageError(operation, message string, cause error) *StorageError {
	return &StorageError{
		Operation: operation,
		Message:   message,
		Cause:     cause,
	}
}
