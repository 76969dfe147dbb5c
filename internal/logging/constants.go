package logging

// Standard field names for structured log output.
const (
	FieldFile        = "file_path"
	FieldModelFile   = "model_file"
	FieldCatalogFile = "catalog_file"
	FieldClusterID   = "cluster_id"
	FieldLabel       = "label"
	FieldAgeGroup    = "age_group"
	FieldOperation   = "operation"
	FieldStatus      = "status"
	FieldError       = "error"
	FieldDuration    = "duration_ms"
	FieldCount       = "count"
	FieldRow         = "row"
	FieldInputFile   = "input_file"
	FieldOutputFile  = "output_file"
	FieldAddr        = "addr"
)
