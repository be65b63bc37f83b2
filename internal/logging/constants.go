package logging

// Standard field names for structured log output.
const (
	FieldUserID      = "user_id"
	FieldLine        = "line"
	FieldLineNumber  = "line_number"
	FieldPattern     = "pattern"
	FieldDescription = "description"
	FieldCategory    = "category"
	FieldStrategy    = "strategy"
	FieldProvider    = "provider"
	FieldOperation   = "operation"
	FieldStatus      = "status"
	FieldCount       = "count"
	FieldDuration    = "duration_ms"
	FieldInputFile   = "input_file"
	FieldOutputFile  = "output_file"
	FieldRequestID   = "request_id"
)
