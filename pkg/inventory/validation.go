package inventory

import (
	"fmt"
	"strings"
)

// Limites de campo
const (
	maxMPNLength    = 100
	maxSerialLength = 100
	maxActorLength  = 100
)

// ValidateMPN validates a manufacturer part number
// Valida um MPN
func ValidateMPN(mpn string) error {
	mpn = strings.TrimSpace(mpn)
	if mpn == "" {
		return NewValidationError("mpn", "MPN é obrigatório", mpn)
	}
	if len(mpn) > maxMPNLength {
		return NewValidationError("mpn", "MPN muito longo", mpn)
	}
	return nil
}

// ValidateSerialNumber validates a serial number when present
// Valida um serial number quando informado
func ValidateSerialNumber(serial string) error {
	if len(serial) > maxSerialLength {
		return NewValidationError("serial_number", "serial number muito longo", serial)
	}
	if serial != strings.TrimSpace(serial) {
		return NewValidationError("serial_number", "serial number com espaços nas bordas", serial)
	}
	return nil
}

// ValidateActor validates the responsible user of an operation
// Valida o responsável por uma operação
func ValidateActor(actor string) error {
	if strings.TrimSpace(actor) == "" {
		return NewValidationError("actor", "responsável pela operação é obrigatório", actor)
	}
	if len(actor) > maxActorLength {
		return NewValidationError("actor", "identificação do responsável muito longa", actor)
	}
	return nil
}

// ValidatePositiveQuantity validates a movement quantity
// Valida a quantidade de uma movimentação
func ValidatePositiveQuantity(quantity int64) error {
	if quantity <= 0 {
		return NewValidationError("quantity", "a quantidade deve ser positiva", fmt.Sprintf("%d", quantity))
	}
	return nil
}

// ValidateKanban validates a kanban class
// Valida uma classe kanban
func ValidateKanban(kanban Kanban) error {
	switch kanban {
	case KanbanEngine, KanbanCell, KanbanNone:
		return nil
	}
	return NewValidationError("kanban", "classe kanban inválida", string(kanban))
}

// ValidateSiteType validates a site type
// Valida o tipo de uma OM
func ValidateSiteType(siteType SiteType) error {
	switch siteType {
	case SiteTypeInternal, SiteTypeExternal:
		return nil
	}
	return NewValidationError("type", "tipo de OM inválido", string(siteType))
}

// ValidateOrderType validates an order type
// Valida o tipo de um pedido
func ValidateOrderType(orderType OrderType) error {
	switch orderType {
	case OrderTypeRMS, OrderTypeFSM, OrderTypeREQ:
		return nil
	}
	return NewValidationError("order_type", "tipo de pedido inválido", string(orderType))
}

// ValidateOrderStatus validates an order status
// Valida o status de um pedido
func ValidateOrderStatus(status OrderStatus) error {
	switch status {
	case OrderStatusNotSent, OrderStatusOpen, OrderStatusOpenPartial,
		OrderStatusClosed, OrderStatusClosedUnserved, OrderStatusCancelled:
		return nil
	}
	return NewValidationError("status", "status de pedido inválido", string(status))
}

// ValidateRequester validates an order requester when present
// Valida o solicitante de um pedido quando informado
func ValidateRequester(requester Requester) error {
	switch requester {
	case "", RequesterBAVEX, RequesterBMS:
		return nil
	}
	return NewValidationError("requester", "solicitante inválido", string(requester))
}

// ValidateServiceType validates an order item service type when present
// Valida o tipo de atendimento quando informado
func ValidateServiceType(serviceType ServiceType) error {
	switch serviceType {
	case "", ServiceTypeRush, ServiceTypeProg, ServiceTypeAOG:
		return nil
	}
	return NewValidationError("service_type", "tipo de atendimento inválido", string(serviceType))
}

// ValidateOrderYear validates an order year
// Valida o ano de um pedido
func ValidateOrderYear(year int) error {
	// Frota opera desde os anos 90; anos fora da faixa são erro de digitação
	if year < 1990 || year > 2100 {
		return NewValidationError("order_year", "ano de pedido fora da faixa", fmt.Sprintf("%d", year))
	}
	return nil
}
