package inventory

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateMPN(t *testing.T) {
	tests := []struct {
		name    string
		mpn     string
		wantErr bool
	}{
		{"valid", "8-364-100-001", false},
		{"valid with spaces around", "  MS21042-3  ", false},
		{"empty", "", true},
		{"only spaces", "   ", true},
		{"too long", strings.Repeat("X", 101), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateMPN(tt.mpn)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateSerialNumber(t *testing.T) {
	tests := []struct {
		name    string
		serial  string
		wantErr bool
	}{
		{"empty is allowed", "", false},
		{"valid", "SN-001", false},
		{"leading space", " SN-001", true},
		{"trailing space", "SN-001 ", true},
		{"too long", strings.Repeat("9", 101), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSerialNumber(tt.serial)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateActor(t *testing.T) {
	assert.NoError(t, ValidateActor("almoxarife"))
	assert.Error(t, ValidateActor(""))
	assert.Error(t, ValidateActor("   "))
	assert.Error(t, ValidateActor(strings.Repeat("a", 101)))
}

func TestValidatePositiveQuantity(t *testing.T) {
	assert.NoError(t, ValidatePositiveQuantity(1))
	assert.NoError(t, ValidatePositiveQuantity(9999))
	assert.Error(t, ValidatePositiveQuantity(0))
	assert.Error(t, ValidatePositiveQuantity(-5))
}

func TestValidateKanban(t *testing.T) {
	assert.NoError(t, ValidateKanban(KanbanEngine))
	assert.NoError(t, ValidateKanban(KanbanCell))
	assert.NoError(t, ValidateKanban(KanbanNone))
	assert.Error(t, ValidateKanban(""))
	assert.Error(t, ValidateKanban("TURBINE"))
}

func TestValidateSiteType(t *testing.T) {
	assert.NoError(t, ValidateSiteType(SiteTypeInternal))
	assert.NoError(t, ValidateSiteType(SiteTypeExternal))
	assert.Error(t, ValidateSiteType(""))
	assert.Error(t, ValidateSiteType("federal"))
}

func TestValidateOrderType(t *testing.T) {
	assert.NoError(t, ValidateOrderType(OrderTypeRMS))
	assert.NoError(t, ValidateOrderType(OrderTypeFSM))
	assert.NoError(t, ValidateOrderType(OrderTypeREQ))
	assert.Error(t, ValidateOrderType(""))
	assert.Error(t, ValidateOrderType("XYZ"))
}

func TestValidateOrderStatus(t *testing.T) {
	for _, status := range []OrderStatus{
		OrderStatusNotSent, OrderStatusOpen, OrderStatusOpenPartial,
		OrderStatusClosed, OrderStatusClosedUnserved, OrderStatusCancelled,
	} {
		assert.NoError(t, ValidateOrderStatus(status))
	}
	assert.Error(t, ValidateOrderStatus(""))
	assert.Error(t, ValidateOrderStatus("PENDING"))
}

func TestValidateRequester(t *testing.T) {
	// Solicitante é opcional
	assert.NoError(t, ValidateRequester(""))
	assert.NoError(t, ValidateRequester(RequesterBAVEX))
	assert.NoError(t, ValidateRequester(RequesterBMS))
	assert.Error(t, ValidateRequester("4BAVEX"))
}

func TestValidateServiceType(t *testing.T) {
	// Tipo de atendimento é opcional
	assert.NoError(t, ValidateServiceType(""))
	assert.NoError(t, ValidateServiceType(ServiceTypeRush))
	assert.NoError(t, ValidateServiceType(ServiceTypeProg))
	assert.NoError(t, ValidateServiceType(ServiceTypeAOG))
	assert.Error(t, ValidateServiceType("URGENT"))
}

func TestValidateOrderYear(t *testing.T) {
	assert.NoError(t, ValidateOrderYear(1990))
	assert.NoError(t, ValidateOrderYear(2024))
	assert.NoError(t, ValidateOrderYear(2100))
	assert.Error(t, ValidateOrderYear(0))
	assert.Error(t, ValidateOrderYear(1989))
	assert.Error(t, ValidateOrderYear(2101))
}

func TestStockHelpers(t *testing.T) {
	serial := "SN-001"
	serialized := &Stock{SerialNumber: &serial}
	bulk := &Stock{Quantity: 10, MinimumQuantity: 5}

	assert.True(t, serialized.Serialized())
	assert.False(t, bulk.Serialized())

	empty := ""
	assert.False(t, (&Stock{SerialNumber: &empty}).Serialized())

	assert.False(t, bulk.BelowMinimum())
	assert.True(t, (&Stock{Quantity: 5, MinimumQuantity: 5}).BelowMinimum())
	assert.True(t, (&Stock{Quantity: 0, MinimumQuantity: 5}).BelowMinimum())
}
