package lookup

import (
	"go.uber.org/zap"

	"fleettrack/internal/domain/models"
	"fleettrack/internal/repository/csvstore"
)

// Service answers read-only queries over the record store.
type Service struct {
	repo   csvstore.Repository
	logger *zap.Logger
}

// NewService wires a new lookup service instance.
func NewService(repository csvstore.Repository, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{repo: repository, logger: logger}
}

// FindPreviousLocation scans all records and returns the current_location of
// the last row whose vin OR stock_id matches. The OR makes a stock ID reused
// across vehicles leak location history between vins; that matching rule is
// load-bearing and must not be tightened to vin-only.
func (s *Service) FindPreviousLocation(vin, stockID string) (string, bool, error) {
	records, err := s.repo.LoadAll()
	if err != nil {
		return "", false, err
	}

	var previous string
	for _, rec := range records {
		if rec.VIN != vin && rec.StockID != stockID {
			continue
		}
		// A matching row with an empty location keeps the earlier match.
		if rec.CurrentLocation != "" {
			previous = rec.CurrentLocation
		}
	}

	return previous, previous != "", nil
}

// FindLatestByVIN returns the last record (insertion order) with a matching
// vin, or nil when the vin has no history.
func (s *Service) FindLatestByVIN(vin string) (*models.UpdateRecord, error) {
	records, err := s.repo.LoadAll()
	if err != nil {
		return nil, err
	}

	var latest *models.UpdateRecord
	for i := range records {
		if records[i].VIN == vin {
			latest = &records[i]
		}
	}

	if latest == nil {
		s.logger.Debug("no records for vin", zap.String("vin", vin))
		return nil, nil
	}

	out := *latest
	return &out, nil
}
