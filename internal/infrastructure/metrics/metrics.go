package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Ledger metrics
	TransactionsCreated prometheus.Counter
	TransactionsUpdated prometheus.Counter
	TransactionsDeleted prometheus.Counter
	TransactionAmount   prometheus.Histogram
	TransactionErrors   *prometheus.CounterVec

	// Account metrics
	AccountsCreated   prometheus.Counter
	AccountOperations *prometheus.CounterVec

	// Budget metrics
	BudgetsCreated     prometheus.Counter
	BudgetComputations prometheus.Counter

	// Calendar metrics
	ForecastsGenerated prometheus.Counter
	ForecastCashGaps   prometheus.Histogram

	// Import metrics
	ImportRows *prometheus.CounterVec

	// API metrics
	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec

	// Database metrics
	DBErrors *prometheus.CounterVec

	// Audit metrics
	AuditLogsCreated *prometheus.CounterVec
}

// New creates and registers all Prometheus metrics
func New() *Metrics {
	return &Metrics{
		// Ledger metrics
		TransactionsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "fintrack_transactions_created_total",
			Help: "Total number of ledger transactions created",
		}),
		TransactionsUpdated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "fintrack_transactions_updated_total",
			Help: "Total number of ledger transactions updated",
		}),
		TransactionsDeleted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "fintrack_transactions_deleted_total",
			Help: "Total number of ledger transactions deleted",
		}),
		TransactionAmount: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "fintrack_transaction_amount",
			Help:    "Transaction amounts",
			Buckets: []float64{1, 10, 100, 1000, 10000, 100000, 1000000},
		}),
		TransactionErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fintrack_transaction_errors_total",
				Help: "Total number of transaction errors by type",
			},
			[]string{"error_type"},
		),

		// Account metrics
		AccountsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "fintrack_accounts_created_total",
			Help: "Total number of accounts created",
		}),
		AccountOperations: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fintrack_account_operations_total",
				Help: "Total account operations by type",
			},
			[]string{"operation"},
		),

		// Budget metrics
		BudgetsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "fintrack_budgets_created_total",
			Help: "Total number of budgets created",
		}),
		BudgetComputations: promauto.NewCounter(prometheus.CounterOpts{
			Name: "fintrack_budget_computations_total",
			Help: "Total number of budget status computations",
		}),

		// Calendar metrics
		ForecastsGenerated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "fintrack_forecasts_generated_total",
			Help: "Total number of payment calendar forecasts generated",
		}),
		ForecastCashGaps: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "fintrack_forecast_cash_gap_days",
			Help:    "Number of cash gap days per generated forecast",
			Buckets: []float64{0, 1, 2, 5, 10, 20, 50, 100},
		}),

		// Import metrics
		ImportRows: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fintrack_import_rows_total",
				Help: "Total bulk import rows by outcome",
			},
			[]string{"outcome"},
		),

		// API metrics
		HTTPRequests: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fintrack_http_requests_total",
				Help: "Total HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "fintrack_http_duration_seconds",
				Help:    "HTTP request duration",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),

		// Database metrics
		DBErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fintrack_db_errors_total",
				Help: "Total database errors",
			},
			[]string{"operation"},
		),

		// Audit metrics
		AuditLogsCreated: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fintrack_audit_logs_total",
				Help: "Total audit logs created",
			},
			[]string{"action"},
		),
	}
}
