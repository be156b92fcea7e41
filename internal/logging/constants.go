package logging

// Standardized field names for structured logging.
// These constants keep log output consistent across packages so it stays
// easy to filter and analyze.
const (
	FieldAccount       = "account_id"
	FieldBucket        = "bucket_id"
	FieldCategory      = "category"
	FieldCount         = "count"
	FieldFile          = "file_path"
	FieldMatchType     = "match_type"
	FieldMonth         = "month"
	FieldOperation     = "operation"
	FieldReason        = "reason"
	FieldRule          = "rule_id"
	FieldTransactionID = "transaction_id"
)
