package log

// Common field names for structured logging
const (
	FieldComponent = "component"
	FieldError     = "error"

	FieldUserID        = "user_id"
	FieldEmail         = "email"
	FieldTransactionID = "transaction_id"
	FieldKind          = "kind"
	FieldRowRef        = "row_ref"
	FieldTxCount       = "tx_count"
)

// Components defines standard component names
const (
	ComponentApp      = "app"
	ComponentHTTP     = "http"
	ComponentAuth     = "auth"
	ComponentSession  = "session"
	ComponentStorage  = "storage"
	ComponentAMQP     = "amqp"
	ComponentWorker   = "worker"
	ComponentSheets   = "sheets"
	ComponentCache    = "cache"
	ComponentExport   = "export"
	ComponentTrace    = "trace"
	ComponentSecurity = "security"
)
