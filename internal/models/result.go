package models

// ProcessStats counts where the candidates of a call came from.
type ProcessStats struct {
	LocalParsed int `json:"localParsed"`
	AIParsed    int `json:"aiParsed"`
	Total       int `json:"total"`
}

// ProcessResult is the outcome of one ingestion call. It is the only value
// the pipeline returns; failures are reported through Success and Error.
type ProcessResult struct {
	Success      bool          `json:"success"`
	Message      string        `json:"message,omitempty"`
	Error        string        `json:"error,omitempty"`
	Transactions []Transaction `json:"transactions,omitempty"`
	Duplicates   []Transaction `json:"duplicates,omitempty"`
	Stats        *ProcessStats `json:"stats,omitempty"`
}

// Failure builds an unsuccessful result with a user-facing error message.
func Failure(msg string) ProcessResult {
	return ProcessResult{Success: false, Error: msg}
}
