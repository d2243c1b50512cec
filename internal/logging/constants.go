package logging

// Standardized field names for structured logging.
const (
	FieldFile        = "file_path"
	FieldBatchID     = "batch_id"
	FieldRecordIndex = "record_index"
	FieldCategory    = "category"
	FieldReason      = "reason"
	FieldOperation   = "operation"
	FieldStatus      = "status"
	FieldError       = "error"
	FieldDuration    = "duration_ms"
	FieldCount       = "count"
	FieldRejected    = "rejected"
	FieldAttempt     = "attempt"
	FieldModel       = "model"
	FieldPolicy      = "policy"
	FieldInputFile   = "input_file"
	FieldOutputFile  = "output_file"
)
