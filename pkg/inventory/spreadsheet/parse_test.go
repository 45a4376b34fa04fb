package spreadsheet

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/sltavares/estoqueGo/pkg/inventory"
)

func TestCleanText(t *testing.T) {
	assert.Equal(t, "MS21042-3", CleanText("  MS21042-3  "))
	assert.Equal(t, "", CleanText("-"))
	assert.Equal(t, "", CleanText("  -  "))
	assert.Equal(t, "", CleanText(""))
}

func TestToInt(t *testing.T) {
	tests := []struct {
		in   string
		want int64
		ok   bool
	}{
		{"12", 12, true},
		{" 12 ", 12, true},
		{"12,0", 12, true},
		{"12.0", 12, true},
		{"-", 0, false},
		{"", 0, false},
		{"abc", 0, false},
	}
	for _, tt := range tests {
		got, ok := ToInt(tt.in)
		assert.Equal(t, tt.ok, ok, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestToDecimal(t *testing.T) {
	d := ToDecimal("1234,56")
	if assert.NotNil(t, d) {
		assert.Equal(t, "1234.56", d.String())
	}
	assert.Nil(t, ToDecimal(""))
	assert.Nil(t, ToDecimal("-"))
	assert.Nil(t, ToDecimal("n/a"))
}

func TestToDate(t *testing.T) {
	want := time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC)

	for _, in := range []string{"2024-05-10", "10/05/2024", "10-05-2024"} {
		got := ToDate(in)
		if assert.NotNil(t, got, in) {
			assert.Equal(t, want, *got, in)
		}
	}

	// Célula com hora residual
	got := ToDate("10/05/2024 00:00:00")
	if assert.NotNil(t, got) {
		assert.Equal(t, want, *got)
	}

	assert.Nil(t, ToDate(""))
	assert.Nil(t, ToDate("-"))
	assert.Nil(t, ToDate("em breve"))
}

func TestParseBoolean(t *testing.T) {
	assert.True(t, ParseBoolean("SIM"))
	assert.True(t, ParseBoolean("sim"))
	assert.True(t, ParseBoolean("S"))
	assert.True(t, ParseBoolean("1"))
	assert.True(t, ParseBoolean("yes"))
	assert.False(t, ParseBoolean(""))
	assert.False(t, ParseBoolean("NÃO"))
	assert.False(t, ParseBoolean("0"))
}

func TestParseRequester(t *testing.T) {
	assert.Equal(t, inventory.RequesterBAVEX, ParseRequester("1º BAvEx"))
	assert.Equal(t, inventory.RequesterBMS, ParseRequester("B Mnt Sup Av Ex (BMS)"))
	assert.Equal(t, inventory.Requester(""), ParseRequester("outro"))
}

func TestParseOrderType(t *testing.T) {
	assert.Equal(t, inventory.OrderTypeFSM, ParseOrderType("Pedido FSM"))
	assert.Equal(t, inventory.OrderTypeRMS, ParseOrderType("rms"))
	assert.Equal(t, inventory.OrderTypeREQ, ParseOrderType("REQ 12"))
	assert.Equal(t, inventory.OrderType(""), ParseOrderType("???"))
}

func TestParseStatus(t *testing.T) {
	tests := []struct {
		in   string
		want inventory.OrderStatus
	}{
		// A ordem dos contains importa: parcial antes de atendido
		{"ATENDIDO PARCIALMENTE", inventory.OrderStatusOpenPartial},
		{"atendido parcialmente", inventory.OrderStatusOpenPartial},
		{"PARCIAL", inventory.OrderStatusOpenPartial},
		{"NÃO ATENDIDO", inventory.OrderStatusClosedUnserved},
		{"NAO ATENDIDO", inventory.OrderStatusClosedUnserved},
		{"ATENDIDO", inventory.OrderStatusClosed},
		{"ATENDIDO EM 10/05", inventory.OrderStatusClosed},
		{"", inventory.OrderStatusOpen},
		{"aguardando", inventory.OrderStatusOpen},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseStatus(tt.in), tt.in)
	}
}

func TestParseDocTecPub(t *testing.T) {
	doc, tecPub := ParseDocTecPub("IPC 32-10-01")
	assert.Equal(t, "IPC", doc)
	assert.Equal(t, "32-10-01", tecPub)

	doc, tecPub = ParseDocTecPub("ECMM")
	assert.Equal(t, "ECMM", doc)
	assert.Equal(t, "", tecPub)

	// Sem manual reconhecido, o texto inteiro vira publicação técnica
	doc, tecPub = ParseDocTecPub("boletim 12")
	assert.Equal(t, "", doc)
	assert.Equal(t, "boletim 12", tecPub)

	doc, tecPub = ParseDocTecPub("-")
	assert.Equal(t, "", doc)
	assert.Equal(t, "", tecPub)
}

func TestAircraftNumeral(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"5003", "5003"},
		{"EB5003", "5003"},
		{"eb 5007", "5007"},
		{"KAN", "KAN"},
		{"kanban", "KAN"},
		{"", ""},
		// Texto não reconhecido cai no numeral padrão
		{"aeronave reserva", "5001"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, AircraftNumeral(tt.in), tt.in)
	}
}
