package logging

// Standardized field names for structured logging.
const (
	FieldFile        = "file_path"
	FieldSheet       = "sheet"
	FieldRow         = "row"
	FieldColumn      = "column"
	FieldCategory    = "category"
	FieldRule        = "rule"
	FieldPartNumber  = "part_number"
	FieldDescription = "description"
	FieldCollection  = "collection"
	FieldProject     = "project"
	FieldOrder       = "order"
	FieldOperation   = "operation"
	FieldCount       = "count"
	FieldSubtotal    = "subtotal"
	FieldDelimiter   = "delimiter"
	FieldOutputFile  = "output_file"
	FieldComponent   = "component"
)
