// Package spreadsheet imports and exports xlsx workbooks used by the
// maintenance control section
package spreadsheet

import (
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/sltavares/estoqueGo/pkg/inventory"
)

// The spreadsheets are filled by hand, so every cell parser tolerates
// noise: placeholders, stray spaces, mixed separators and free text.
// As planilhas são preenchidas à mão; os parsers toleram ruído

// CleanText trims a cell, treating "-" as empty
// Normaliza um texto de célula; "-" vale como vazio
func CleanText(v string) string {
	v = strings.TrimSpace(v)
	if v == "-" {
		return ""
	}
	return v
}

// ToInt parses an integer cell, tolerating decimal separators
// Converte uma célula para inteiro, tolerando separador decimal
func ToInt(v string) (int64, bool) {
	v = CleanText(v)
	if v == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(strings.ReplaceAll(v, ",", "."), 64)
	if err != nil {
		return 0, false
	}
	return int64(f), true
}

// ToDecimal parses a decimal cell, accepting comma as separator
// Converte uma célula para decimal, aceitando vírgula
func ToDecimal(v string) *decimal.Decimal {
	v = CleanText(v)
	if v == "" {
		return nil
	}
	d, err := decimal.NewFromString(strings.ReplaceAll(v, ",", "."))
	if err != nil {
		return nil
	}
	return &d
}

// Formatos de data aceitos nas planilhas
var dateLayouts = []string{
	"2006-01-02",
	"02/01/2006",
	"02-01-2006",
	"2006-01-02 15:04:05",
	"02/01/2006 15:04:05",
	"01-02-06",
	"1/2/06",
}

// ToDate parses a date cell in any of the accepted layouts
// Converte uma célula de data em qualquer dos formatos aceitos
func ToDate(v string) *time.Time {
	v = CleanText(v)
	if v == "" {
		return nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			t = t.Truncate(24 * time.Hour)
			return &t
		}
	}
	// Data sem hora em célula com hora
	if parts := strings.SplitN(v, " ", 2); len(parts) == 2 {
		return ToDate(parts[0])
	}
	return nil
}

// ParseBoolean reads the hand-written yes/no cells
// Interpreta as células de sim/não preenchidas à mão
func ParseBoolean(v string) bool {
	t := strings.ToLower(strings.TrimSpace(v))
	if t == "" {
		return false
	}
	return strings.HasPrefix(t, "s") || t == "1" || strings.Contains(t, "yes") || strings.Contains(t, "sim")
}

// ParseRequester identifies the requesting organization by substring
// Identifica o solicitante por substring
func ParseRequester(v string) inventory.Requester {
	t := strings.ToUpper(v)
	switch {
	case strings.Contains(t, "BAVEX"):
		return inventory.RequesterBAVEX
	case strings.Contains(t, "BMS"):
		return inventory.RequesterBMS
	}
	return ""
}

// ParseOrderType identifies the order type by substring
// Identifica o tipo de pedido por substring
func ParseOrderType(v string) inventory.OrderType {
	t := strings.ToUpper(v)
	switch {
	case strings.Contains(t, "FSM"):
		return inventory.OrderTypeFSM
	case strings.Contains(t, "RMS"):
		return inventory.OrderTypeRMS
	case strings.Contains(t, "REQ"):
		return inventory.OrderTypeREQ
	}
	return ""
}

// ParseStatus maps the free-text status column onto an order status.
// "ATENDIDO PARCIALMENTE" must be checked before "ATENDIDO".
// Mapeia a coluna de status em texto livre para um status de pedido
func ParseStatus(v string) inventory.OrderStatus {
	t := strings.ToUpper(strings.TrimSpace(v))
	if t == "" {
		return inventory.OrderStatusOpen
	}
	switch {
	case strings.Contains(t, "ATENDIDO PARCIALMENTE"), strings.Contains(t, "PARCIAL"):
		return inventory.OrderStatusOpenPartial
	case strings.Contains(t, "NÃO ATENDIDO"), strings.Contains(t, "NAO ATENDIDO"):
		return inventory.OrderStatusClosedUnserved
	case strings.Contains(t, "ATENDIDO"):
		return inventory.OrderStatusClosed
	}
	return inventory.OrderStatusOpen
}

// Manuais reconhecidos na coluna DOC
var docKinds = []string{"IPC", "ECMM", "MMA", "AMM", "CMM"}

// ParseDocTecPub splits the combined manual column into the document
// kind and the technical publication reference
// Separa a coluna de manual em tipo de documento e publicação técnica
func ParseDocTecPub(v string) (doc, tecPub string) {
	raw := CleanText(v)
	if raw == "" {
		return "", ""
	}
	upper := strings.ToUpper(raw)
	for _, kind := range docKinds {
		if strings.Contains(upper, kind) {
			return kind, strings.TrimSpace(strings.ReplaceAll(upper, kind, ""))
		}
	}
	return "", raw
}

// Numerais conhecidos da frota
var fleetNumerals = []string{"5001", "5002", "5003", "5005", "5007", "5008", "5013"}

// AircraftNumeral extracts a fleet numeral from a free-text aircraft
// cell. The cell may carry the bare numeral or an EB-prefixed tail
// number. Unrecognized but non-empty text falls back to 5001.
// Extrai o numeral da frota de uma célula de aeronave em texto livre
func AircraftNumeral(v string) string {
	s := strings.ToUpper(strings.TrimSpace(v))
	if s == "" {
		return ""
	}
	for _, numeral := range fleetNumerals {
		if strings.Contains(s, numeral) || strings.Contains(s, "EB"+numeral) {
			return numeral
		}
	}
	if strings.Contains(s, "KAN") {
		return "KAN"
	}
	return "5001"
}
