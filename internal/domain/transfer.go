package domain

import "errors"

// TransferFormat is the serialization used by bulk import and export.
type TransferFormat string

const (
	// FormatNDJSON is one JSON item per line.
	FormatNDJSON TransferFormat = "ndjson"
	// FormatYAML is a seed document with a top-level items list.
	FormatYAML TransferFormat = "yaml"
)

// ValidTransferFormats contains all valid transfer formats.
var ValidTransferFormats = []TransferFormat{FormatNDJSON, FormatYAML}

var (
	// ErrInvalidFormat is returned for an unknown transfer format.
	ErrInvalidFormat = errors.New("format must be one of: ndjson, yaml")
	// ErrInvalidImport is returned when an import document cannot be read at all.
	ErrInvalidImport = errors.New("invalid import document")
)

// ParseTransferFormat maps a format name or file extension to a TransferFormat.
func ParseTransferFormat(name string) (TransferFormat, error) {
	switch name {
	case "ndjson", "jsonl", ".ndjson", ".jsonl":
		return FormatNDJSON, nil
	case "yaml", "yml", ".yaml", ".yml":
		return FormatYAML, nil
	}
	return "", ErrInvalidFormat
}

// RecordError describes why one imported record was rejected. Row is the
// 1-based line (ndjson) or list position (yaml).
type RecordError struct {
	Row    int    `json:"row"`
	ID     string `json:"id,omitempty"`
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

// ImportResult summarizes a bulk import.
type ImportResult struct {
	TotalRecords int           `json:"total_records"`
	Inserted     int           `json:"inserted"`
	Skipped      int           `json:"skipped"`
	FailureCount int           `json:"failure_count"`
	Errors       []RecordError `json:"errors"`
}
