package logging

// Standardized field names for structured logging.
// These constants ensure consistency across the application's log output,
// making logs easier to parse, filter, and analyze.
const (
	FieldFile        = "file_path"
	FieldAccount     = "account"
	FieldMonth       = "month"
	FieldCategory    = "category"
	FieldReason      = "reason"
	FieldOperation   = "operation"
	FieldStatus      = "status"
	FieldError       = "error"
	FieldCount       = "count"
	FieldInputFile   = "input_file"
	FieldOutputFile  = "output_file"
	FieldCounterpart = "counterparty"
)
