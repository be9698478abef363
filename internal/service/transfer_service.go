package service

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"gopkg.in/yaml.v3"

	"content-hub/internal/domain"
	"content-hub/internal/logger"
	"content-hub/internal/metrics"
	"content-hub/internal/repository"
	"content-hub/internal/validator"
)

const (
	// ScannerBufferSize is the initial buffer size for the NDJSON scanner
	ScannerBufferSize = 64 * 1024 // 64KB
	// ScannerMaxBufferSize is the maximum line length accepted in NDJSON
	ScannerMaxBufferSize = 1024 * 1024 // 1MB

	// FlushEvery is how many exported records are written between flushes.
	FlushEvery = 100
)

// Flusher is implemented by writers that can push buffered output to the client.
type Flusher interface {
	Flush()
}

// TransferService moves whole collections in and out of a data source.
type TransferService struct {
	source    repository.Source
	loader    Loader
	validator *validator.Validator
}

// NewTransferService creates a TransferService. loader is refreshed after an
// import inserts anything.
func NewTransferService(source repository.Source, loader Loader, v *validator.Validator) *TransferService {
	return &TransferService{
		source:    source,
		loader:    loader,
		validator: v,
	}
}

// Export writes every item of the source, newest first, and returns the count.
func (s *TransferService) Export(ctx context.Context, format domain.TransferFormat, w io.Writer) (int, error) {
	items, err := repository.FetchAllAsync(ctx, s.source).Await(ctx)
	if err != nil {
		return 0, err
	}

	switch format {
	case domain.FormatNDJSON:
		enc := json.NewEncoder(w)
		flusher, _ := w.(Flusher)
		for i, item := range items {
			if err := enc.Encode(item); err != nil {
				return i, fmt.Errorf("write json: %w", err)
			}
			if flusher != nil && (i+1)%FlushEvery == 0 {
				flusher.Flush()
			}
		}
	case domain.FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(repository.SeedFile{Items: items}); err != nil {
			return 0, fmt.Errorf("write yaml: %w", err)
		}
		if err := enc.Close(); err != nil {
			return 0, fmt.Errorf("write yaml: %w", err)
		}
	default:
		return 0, domain.ErrInvalidFormat
	}

	metrics.ObserveTransfer("export", string(format), len(items), 0)
	logger.WithSource(s.source.Name()).Info("Content exported",
		slog.String("format", string(format)),
		slog.Int("records", len(items)))
	return len(items), nil
}

// Import reads items from r, validates each record and seeds the valid ones
// into the source. Invalid records are reported in the result and do not
// stop the import. Items whose ID already exists at the source are skipped.
func (s *TransferService) Import(ctx context.Context, format domain.TransferFormat, r io.Reader) (domain.ImportResult, error) {
	if _, ok := s.source.(repository.Importer); !ok {
		return domain.ImportResult{}, &repository.SourceError{Source: s.source.Name(), Op: repository.OpImport, Err: repository.ErrImportUnsupported}
	}

	var (
		records []record
		result  = domain.ImportResult{Errors: []domain.RecordError{}}
		err     error
	)
	switch format {
	case domain.FormatNDJSON:
		records, err = readNDJSON(r, &result)
	case domain.FormatYAML:
		records, err = readYAML(r, &result)
	default:
		err = domain.ErrInvalidFormat
	}
	if err != nil {
		return domain.ImportResult{}, err
	}

	existing, err := repository.FetchAllAsync(ctx, s.source).Await(ctx)
	if err != nil {
		return domain.ImportResult{}, err
	}
	owners := make(map[string]string, len(existing))
	for _, item := range existing {
		if slug := item.Slug(); slug != "" {
			owners[slug] = item.ID
		}
	}

	valid := s.validate(records, owners, &result)
	result.FailureCount = len(result.Errors)

	if len(valid) > 0 {
		inserted, err := repository.Seed(ctx, s.source, valid)
		if err != nil {
			return result, err
		}
		result.Inserted = inserted
		result.Skipped = len(valid) - inserted
	}

	metrics.ObserveTransfer("import", string(format), result.Inserted, result.FailureCount)
	logger.WithSource(s.source.Name()).Info("Content imported",
		slog.String("format", string(format)),
		slog.Int("total", result.TotalRecords),
		slog.Int("inserted", result.Inserted),
		slog.Int("skipped", result.Skipped),
		slog.Int("failed", result.FailureCount))

	if result.Inserted > 0 && s.loader != nil {
		// Load logs its own failures; the import itself succeeded.
		_ = s.loader.Load(ctx, TriggerImport)
	}
	return result, nil
}

type record struct {
	row  int
	item domain.ContentItem
}

// readNDJSON decodes one item per non-blank line. Lines that do not decode
// are recorded as errors.
func readNDJSON(r io.Reader, result *domain.ImportResult) ([]record, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, ScannerBufferSize), ScannerMaxBufferSize)

	var records []record
	row := 0
	for scanner.Scan() {
		row++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		result.TotalRecords++

		var item domain.ContentItem
		if err := json.Unmarshal([]byte(line), &item); err != nil {
			result.Errors = append(result.Errors, domain.RecordError{Row: row, Field: "json", Reason: err.Error()})
			continue
		}
		records = append(records, record{row: row, item: item})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: read ndjson: %w", domain.ErrInvalidImport, err)
	}
	return records, nil
}

// readYAML decodes a seed document. Decoding is all or nothing.
func readYAML(r io.Reader, result *domain.ImportResult) ([]record, error) {
	var doc repository.SeedFile
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil && err != io.EOF {
		return nil, fmt.Errorf("%w: decode yaml: %w", domain.ErrInvalidImport, err)
	}
	result.TotalRecords = len(doc.Items)
	records := make([]record, len(doc.Items))
	for i, item := range doc.Items {
		records[i] = record{row: i + 1, item: item}
	}
	return records, nil
}

// validate returns the items that may be imported and records the rest.
// owners maps each slug already in use at the source to the ID holding it.
func (s *TransferService) validate(records []record, owners map[string]string, result *domain.ImportResult) []domain.ContentItem {
	seen := make(map[string]bool, len(records))
	slugs := make(map[string]bool, len(records))
	valid := make([]domain.ContentItem, 0, len(records))
	for _, rec := range records {
		item := rec.item
		reject := func(field, reason string) {
			result.Errors = append(result.Errors, domain.RecordError{Row: rec.row, ID: item.ID, Field: field, Reason: reason})
		}

		switch {
		case item.ID == "":
			reject("id", "id_required")
			continue
		case seen[item.ID]:
			reject("id", "id_duplicate")
			continue
		case item.CreatedAt.IsZero():
			reject("createdAt", "createdAt_required")
			continue
		case !item.UpdatedAt.IsZero() && item.UpdatedAt.Before(item.CreatedAt):
			reject("updatedAt", "updatedAt_before_createdAt")
			continue
		}

		if slug := item.Slug(); slug != "" {
			if owner, taken := owners[slug]; slugs[slug] || (taken && owner != item.ID) {
				reject("slug", "slug_duplicate")
				continue
			}
		}

		input := domain.CreateInput{Title: item.Title, Description: item.Description, Category: item.Category}
		if err := s.validator.ValidateCreateInput(&input); err != nil {
			for _, f := range validator.FieldsOf(err) {
				reject(f.Field, f.Reason)
			}
			continue
		}

		seen[item.ID] = true
		if slug := item.Slug(); slug != "" {
			slugs[slug] = true
		}
		if item.UpdatedAt.IsZero() {
			item.UpdatedAt = item.CreatedAt
		}
		valid = append(valid, item)
	}
	return valid
}
