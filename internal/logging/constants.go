package logging

// Standardized field names for structured logging.
const (
	FieldFile      = "file_path"
	FieldCategory  = "category"
	FieldMerchant  = "merchant"
	FieldAmount    = "amount"
	FieldType      = "type"
	FieldStrategy  = "strategy"
	FieldKeyword   = "keyword"
	FieldPass      = "pass"
	FieldOperation = "operation"
	FieldStatus    = "status"
	FieldError     = "error"
	FieldDuration  = "duration_ms"
	FieldCount     = "count"
	FieldID        = "transaction_id"
	FieldWorkers   = "workers"
)
