package dto

// IngestResponse summarizes an ingestion run triggered through POST /admin/ingest.
type IngestResponse struct {
	Files       int      `json:"files" example:"5"`
	Rows        int      `json:"rows" example:"450"`
	Loaded      int      `json:"loaded" example:"448"`
	Skipped     int      `json:"skipped" example:"2"`
	Diagnostics []string `json:"diagnostics"`
}
