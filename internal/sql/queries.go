package sql

import (
	"embed"
)

//go:embed migrations/*.sql
var Migrations embed.FS

//go:embed queries/register_load_file.sql
var RegisterLoadFile string

//go:embed queries/lookup_load_file.sql
var LookupLoadFile string

//go:embed queries/update_load_status.sql
var UpdateLoadStatus string

//go:embed queries/delete_batch_rows.sql
var DeleteBatchRows string

//go:embed queries/delete_stale_file_rows.sql
var DeleteStaleFileRows string

//go:embed queries/analyze_serving.sql
var AnalyzeServing string
