package dto

// UploadResponse summary of one ingest-and-store run. Only the final count
// of ingested rows is available; rows discarded during normalization are not
// reported individually.
type UploadResponse struct {
	Kind      string   `json:"kind"`
	Ingested  int      `json:"ingested"`
	Batches   int      `json:"batches"`
	Delimiter string   `json:"delimiter"`
	Warnings  []string `json:"warnings"`
}
