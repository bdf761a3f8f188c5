package log

// Common field names for structured logging
const (
	FieldComponent   = "component"
	FieldRequestID   = "request_id"
	FieldMethod      = "method"
	FieldPath        = "path"
	FieldStatusCode  = "status_code"
	FieldDuration    = "duration_ms"
	FieldError       = "error"
	FieldOperation   = "operation"
	FieldStatementID = "statement_id"
	FieldSeed        = "seed"
	FieldCount       = "count"
	FieldSkipped     = "skipped_rows"
	FieldBank        = "bank_name"
	FieldExportRef   = "export_ref"
)

// Components defines standard component names
const (
	ComponentApp       = "app"
	ComponentHTTP      = "http"
	ComponentSynth     = "synth"
	ComponentStatement = "statement"
	ComponentAggregate = "aggregate"
	ComponentIngest    = "ingest"
	ComponentStorage   = "storage"
	ComponentAMQP      = "amqp"
	ComponentWorker    = "worker"
	ComponentExport    = "export"
	ComponentCache     = "cache"
)

// Operations defines standard operation names
const (
	OpGenerate  = "generate"
	OpAggregate = "aggregate"
	OpIngest    = "ingest"
	OpExport    = "export"
	OpRead      = "read"
	OpSave      = "save"
	OpStartup   = "startup"
	OpShutdown  = "shutdown"
)
