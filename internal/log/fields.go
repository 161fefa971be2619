package log

import "sort"

// Common field names for structured logging
const (
	FieldComponent   = "component"
	FieldError       = "error"
	FieldOperation   = "operation"
	FieldPath        = "path"
	FieldDestination = "destination"
	FieldYear        = "year"
	FieldMonth       = "month"
	FieldType        = "type"
	FieldAmount      = "amount"
	FieldCategory    = "category"
	FieldRow         = "row"
	FieldCount       = "count"
	FieldBytes       = "bytes"
	FieldExchange    = "exchange"
	FieldRoutingKey  = "routing_key"
	FieldSheetsRef   = "sheets_ref"
)

// Components defines standard component names
const (
	ComponentApp     = "app"
	ComponentCLI     = "cli"
	ComponentConfig  = "config"
	ComponentStorage = "storage"
	ComponentService = "service"
	ComponentAMQP    = "amqp"
	ComponentSheets  = "sheets"
)

// Operations defines standard operation names
const (
	OpInit    = "init"
	OpAppend  = "append"
	OpRead    = "read"
	OpFilter  = "filter"
	OpReport  = "report"
	OpExport  = "export"
	OpPublish = "publish"
	OpLoad    = "load"
	OpSave    = "save"
)

// LogFields provides a builder pattern for structured log fields
type LogFields map[string]any

// NewFields creates a new LogFields instance
func NewFields() LogFields {
	return make(LogFields)
}

// WithOperation adds operation field
func (f LogFields) WithOperation(op string) LogFields {
	f[FieldOperation] = op
	return f
}

// WithError adds error field
func (f LogFields) WithError(err error) LogFields {
	if err != nil {
		f[FieldError] = err.Error()
	}
	return f
}

// WithTransaction adds transaction-related fields. The description is left
// out since it is free text entered by the user.
func (f LogFields) WithTransaction(typ, amount, category string) LogFields {
	f[FieldType] = typ
	f[FieldAmount] = amount
	f[FieldCategory] = category
	return f
}

// WithSelection adds the month/year filter selection
func (f LogFields) WithSelection(month, year string) LogFields {
	f[FieldMonth] = month
	f[FieldYear] = year
	return f
}

// ToSlice converts LogFields to a slice for slog, ordered by key
func (f LogFields) ToSlice() []any {
	keys := make([]string, 0, len(f))
	for k := range f {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	slice := make([]any, 0, len(f)*2)
	for _, k := range keys {
		slice = append(slice, k, f[k])
	}
	return slice
}
