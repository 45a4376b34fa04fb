package inventory

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus counters for stock movements and imports
// Contadores Prometheus de movimentações e importações

var (
	inflowTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "estoque",
		Name:      "inflow_units_total",
		Help:      "Total de unidades que entraram no estoque",
	})

	outflowTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "estoque",
		Name:      "outflow_units_total",
		Help:      "Total de unidades que saíram do estoque",
	})

	ordersCreated = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "estoque",
		Name:      "orders_created_total",
		Help:      "Total de pedidos criados",
	})

	importRows = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "estoque",
		Name:      "import_rows_total",
		Help:      "Linhas de planilha processadas, por resultado",
	}, []string{"result"})

	rejectedOps = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "estoque",
		Name:      "rejected_operations_total",
		Help:      "Movimentações rejeitadas, por motivo",
	}, []string{"reason"})
)

func recordInflow(quantity int64) {
	inflowTotal.Add(float64(quantity))
}

func recordOutflow(quantity int64) {
	outflowTotal.Add(float64(quantity))
}

func recordOrderCreated() {
	ordersCreated.Inc()
}

func recordRejection(reason string) {
	rejectedOps.WithLabelValues(reason).Inc()
}

// RecordImportRow counts one processed spreadsheet row
// Contabiliza uma linha de planilha processada
func RecordImportRow(result string) {
	importRows.WithLabelValues(result).Inc()
}
