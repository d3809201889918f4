package csvstore

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"

	"fleettrack/internal/domain/models"
)

// Repository defines the persistence operations supported by the record store.
type Repository interface {
	EnsureInitialized() error
	Append(rec models.UpdateRecord) error
	LoadAll() ([]models.UpdateRecord, error)
	DeleteByVIN(vin string) (int, error)
	Path() string
}

// StorageError marks a failure reading or writing the backing file. Callers
// treat it as fatal for the current request.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("record store %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// CSVRecordStore implements the Repository interface on top of a single CSV
// file. The store exclusively owns that file; the handle is acquired and
// released per operation, never held across requests.
type CSVRecordStore struct {
	mu     sync.Mutex
	path   string
	logger *zap.Logger
}

// New builds a CSV backed record store rooted at the given file path.
func New(path string, logger *zap.Logger) *CSVRecordStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CSVRecordStore{path: path, logger: logger}
}

// Path returns the location of the backing file.
func (s *CSVRecordStore) Path() string { return s.path }

// EnsureInitialized creates the backing file with only the header row when it
// does not exist yet. Idempotent.
func (s *CSVRecordStore) EnsureInitialized() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ensureInitialized()
}

func (s *CSVRecordStore) ensureInitialized() error {
	if _, err := os.Stat(s.path); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return &StorageError{Op: "stat", Err: err}
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return &StorageError{Op: "init", Err: err}
		}
	}

	f, err := os.OpenFile(s.path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if os.IsExist(err) {
			return nil
		}
		return &StorageError{Op: "init", Err: err}
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(models.Columns()); err != nil {
		return &StorageError{Op: "init", Err: err}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return &StorageError{Op: "init", Err: err}
	}

	s.logger.Info("record store initialized", zap.String("path", s.path))
	return nil
}

// Append writes one record as the new last row.
func (s *CSVRecordStore) Append(rec models.UpdateRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureInitialized(); err != nil {
		return err
	}

	f, err := os.OpenFile(s.path, os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return &StorageError{Op: "append", Err: err}
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(rec.Row()); err != nil {
		return &StorageError{Op: "append", Err: err}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return &StorageError{Op: "append", Err: err}
	}

	s.logger.Debug("record appended", zap.String("vin", rec.VIN), zap.String("location", rec.CurrentLocation))
	return nil
}

// LoadAll returns every record in insertion order. A missing file yields an
// empty result rather than an error.
func (s *CSVRecordStore) LoadAll() ([]models.UpdateRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadAll()
}

func (s *CSVRecordStore) loadAll() ([]models.UpdateRecord, error) {
	f, err := os.Open(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, &StorageError{Op: "load", Err: err}
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = len(models.Columns())

	// Skip the header row.
	if _, err := r.Read(); err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, &StorageError{Op: "load", Err: err}
	}

	var records []models.UpdateRecord
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, &StorageError{Op: "load", Err: err}
		}
		records = append(records, models.FromRow(row))
	}

	return records, nil
}

// DeleteByVIN removes every record whose vin equals the target and reports
// how many were removed. The store is rewritten in full: header plus the
// retained rows go to a temp file which then replaces the original, so the
// swap is atomic from the caller's perspective.
func (s *CSVRecordStore) DeleteByVIN(vin string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureInitialized(); err != nil {
		return 0, err
	}

	records, err := s.loadAll()
	if err != nil {
		return 0, err
	}

	removed := 0
	retained := records[:0]
	for _, rec := range records {
		if rec.VIN == vin {
			removed++
			continue
		}
		retained = append(retained, rec)
	}

	if removed == 0 {
		return 0, nil
	}

	if err := s.rewrite(retained); err != nil {
		return 0, err
	}

	s.logger.Info("records deleted", zap.String("vin", vin), zap.Int("removed", removed))
	return removed, nil
}

func (s *CSVRecordStore) rewrite(records []models.UpdateRecord) error {
	tmp, err := os.CreateTemp(filepath.Dir(s.path), filepath.Base(s.path)+".tmp")
	if err != nil {
		return &StorageError{Op: "rewrite", Err: err}
	}
	tmpPath := tmp.Name()

	w := csv.NewWriter(tmp)
	writeErr := w.Write(models.Columns())
	for _, rec := range records {
		if writeErr != nil {
			break
		}
		writeErr = w.Write(rec.Row())
	}
	if writeErr == nil {
		w.Flush()
		writeErr = w.Error()
	}
	if closeErr := tmp.Close(); writeErr == nil {
		writeErr = closeErr
	}
	if writeErr != nil {
		_ = os.Remove(tmpPath)
		return &StorageError{Op: "rewrite", Err: writeErr}
	}

	if err := os.Rename(tmpPath, s.path); err != nil {
		_ = os.Remove(tmpPath)
		return &StorageError{Op: "rewrite", Err: err}
	}

	return nil
}
