package log

// Common field names for structured logging.
const (
	FieldComponent  = "component"
	FieldRequestID  = "request_id"
	FieldClientIP   = "client_ip"
	FieldMethod     = "method"
	FieldPath       = "path"
	FieldStatusCode = "status_code"
	FieldDuration   = "duration_ms"
	FieldError      = "error"
	FieldOperation  = "operation"
	FieldStore      = "store"
	FieldYear       = "year"
	FieldMonth      = "month"

	FieldExpenseID   = "expense_id"
	FieldCardID      = "card_id"
	FieldTaskID      = "task_id"
	FieldSubtaskID   = "subtask_id"
	FieldIncomeID    = "income_id"
	FieldAmountCents = "amount_cents"
	FieldBillDelta   = "bill_delta_cents"
	FieldCategory    = "category"
	FieldPayMethod   = "payment_method"
)

// Components defines standard component names.
const (
	ComponentApp     = "app"
	ComponentHTTP    = "http"
	ComponentLedger  = "ledger"
	ComponentStorage = "storage"
	ComponentAMQP    = "amqp"
	ComponentWorker  = "worker"
	ComponentSheets  = "sheets"
	ComponentCache   = "cache"
)

// Operations defines standard operation names.
const (
	OpCreate   = "create"
	OpUpdate   = "update"
	OpDelete   = "delete"
	OpToggle   = "toggle"
	OpSnapshot = "snapshot"
	OpRestore  = "restore"
	OpExport   = "export"
	OpStartup  = "startup"
	OpShutdown = "shutdown"
)
