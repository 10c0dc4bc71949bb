package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/parquet-go/parquet-go"

	"wraith/internal/domain"
)

// Archive persists received signals as Parquet day files so past sessions
// can be reviewed offline.
type Archive struct {
	DataDir string
}

// NewArchive creates an Archive rooted at the given data directory.
func NewArchive(dataDir string) *Archive {
	return &Archive{DataDir: dataDir}
}

// SignalRecord is the Parquet schema for archived signals.
type SignalRecord struct {
	ID         string  `parquet:"id"`
	Symbol     string  `parquet:"symbol"`
	Direction  string  `parquet:"direction"`
	Confidence float64 `parquet:"confidence"`
	Price      float64 `parquet:"price"`
	Strategy   string  `parquet:"strategy"`
	CreatedAt  int64   `parquet:"created_at,timestamp(millisecond)"` // Unix ms
}

// WriteSignals merges signals into the archive, one file per UTC day:
//
//	<DataDir>/signals/<YYYY-MM-DD>.parquet
//
// Existing records are kept; duplicates (by signal ID) are replaced by the
// incoming record.
func (a *Archive) WriteSignals(_ context.Context, signals []domain.Signal) error {
	if len(signals) == 0 {
		return nil
	}

	groups := make(map[string][]SignalRecord)
	for _, s := range signals {
		day := s.CreatedAt.UTC().Format("2006-01-02")
		groups[day] = append(groups[day], SignalRecord{
			ID:         s.ID,
			Symbol:     s.Symbol,
			Direction:  string(s.Direction),
			Confidence: s.Confidence,
			Price:      s.Price,
			Strategy:   s.Strategy,
			CreatedAt:  s.CreatedAt.UnixMilli(),
		})
	}

	for day, records := range groups {
		path := a.signalPath(day)
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return fmt.Errorf("creating archive dir: %w", err)
		}

		existing, _ := readParquetFile[SignalRecord](path)
		merged := mergeSignalRecords(existing, records)

		if err := writeParquetFile(path, merged); err != nil {
			return fmt.Errorf("writing signals for %s: %w", day, err)
		}
	}
	return nil
}

// ReadSignals reads the archived signals for a single day (YYYY-MM-DD).
// A missing day file yields an empty slice, not an error.
func (a *Archive) ReadSignals(_ context.Context, day string) ([]domain.Signal, error) {
	path := a.signalPath(day)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, nil
	}
	records, err := readParquetFile[SignalRecord](path)
	if err != nil {
		return nil, fmt.Errorf("reading signals for %s: %w", day, err)
	}

	signals := make([]domain.Signal, 0, len(records))
	for _, r := range records {
		signals = append(signals, domain.Signal{
			ID:         r.ID,
			Symbol:     r.Symbol,
			Direction:  domain.SignalDirection(r.Direction),
			Confidence: r.Confidence,
			Price:      r.Price,
			Strategy:   r.Strategy,
			CreatedAt:  time.UnixMilli(r.CreatedAt).UTC(),
		})
	}
	return signals, nil
}

// ListDays returns the archived day strings in ascending order.
func (a *Archive) ListDays(_ context.Context) ([]string, error) {
	entries, err := os.ReadDir(filepath.Join(a.DataDir, "signals"))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("listing archive: %w", err)
	}

	var days []string
	for _, e := range entries {
		name := e.Name()
		if strings.HasSuffix(name, ".parquet") {
			days = append(days, strings.TrimSuffix(name, ".parquet"))
		}
	}
	sort.Strings(days)
	return days, nil
}

func (a *Archive) signalPath(day string) string {
	return filepath.Join(a.DataDir, "signals", day+".parquet")
}

// mergeSignalRecords merges incoming into existing, replacing records with
// the same signal ID, and returns the result sorted by timestamp.
func mergeSignalRecords(existing, incoming []SignalRecord) []SignalRecord {
	byID := make(map[string]SignalRecord, len(existing)+len(incoming))
	for _, r := range existing {
		byID[r.ID] = r
	}
	for _, r := range incoming {
		byID[r.ID] = r
	}

	merged := make([]SignalRecord, 0, len(byID))
	for _, r := range byID {
		merged = append(merged, r)
	}
	sort.Slice(merged, func(i, j int) bool {
		if merged[i].CreatedAt != merged[j].CreatedAt {
			return merged[i].CreatedAt < merged[j].CreatedAt
		}
		return merged[i].ID < merged[j].ID
	})
	return merged
}

func writeParquetFile[T any](path string, records []T) error {
	return parquet.WriteFile(path, records)
}

func readParquetFile[T any](path string) ([]T, error) {
	rows, err := parquet.ReadFile[T](path)
	if err != nil {
		return nil, err
	}
	return rows, nil
}
