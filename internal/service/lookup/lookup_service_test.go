package lookup

import (
	"path/filepath"
	"testing"

	"go.uber.org/zap"

	"fleettrack/internal/domain/models"
	"fleettrack/internal/repository/csvstore"
)

func newTestService(t *testing.T) (*Service, *csvstore.CSVRecordStore) {
	t.Helper()
	store := csvstore.New(filepath.Join(t.TempDir(), "vehicle_status.csv"), zap.NewNop())
	return NewService(store, zap.NewNop()), store
}

func seed(t *testing.T, store *csvstore.CSVRecordStore, recs ...models.UpdateRecord) {
	t.Helper()
	for _, rec := range recs {
		if err := store.Append(rec); err != nil {
			t.Fatalf("Append() error = %v", err)
		}
	}
}

func rec(vin, stockID, location string) models.UpdateRecord {
	return models.UpdateRecord{
		Timestamp:       "2026-08-24T09:00:00",
		HandledBy:       "ops",
		StockID:         stockID,
		VIN:             vin,
		CurrentLocation: location,
	}
}

func TestFindPreviousLocationFreshStore(t *testing.T) {
	svc, _ := newTestService(t)

	loc, found, err := svc.FindPreviousLocation("A", "S1")
	if err != nil {
		t.Fatalf("FindPreviousLocation() error = %v", err)
	}
	if found || loc != "" {
		t.Errorf("got (%q, %v), want no match on a fresh store", loc, found)
	}
}

func TestFindPreviousLocationLastMatchWins(t *testing.T) {
	svc, store := newTestService(t)
	seed(t, store,
		rec("A", "S1", "L1"),
		rec("A", "S1", "L2"),
	)

	loc, found, err := svc.FindPreviousLocation("A", "S1")
	if err != nil {
		t.Fatalf("FindPreviousLocation() error = %v", err)
	}
	if !found || loc != "L2" {
		t.Errorf("got (%q, %v), want (\"L2\", true)", loc, found)
	}
}

// A stock ID reused across vehicles matches records from other vins; that
// leak is intentional behavior, not a bug to fix here.
func TestFindPreviousLocationMatchesOnStockIDAcrossVINs(t *testing.T) {
	svc, store := newTestService(t)
	seed(t, store,
		rec("A", "S1", "L1"),
		rec("B", "S1", "L2"),
	)

	loc, found, err := svc.FindPreviousLocation("C", "S1")
	if err != nil {
		t.Fatalf("FindPreviousLocation() error = %v", err)
	}
	if !found || loc != "L2" {
		t.Errorf("got (%q, %v), want (\"L2\", true)", loc, found)
	}
}

func TestFindPreviousLocationEmptyLocationKeepsEarlierMatch(t *testing.T) {
	svc, store := newTestService(t)
	seed(t, store,
		rec("A", "S1", "L1"),
		rec("A", "S1", ""),
	)

	loc, found, err := svc.FindPreviousLocation("A", "S1")
	if err != nil {
		t.Fatalf("FindPreviousLocation() error = %v", err)
	}
	if !found || loc != "L1" {
		t.Errorf("got (%q, %v), want (\"L1\", true)", loc, found)
	}
}

func TestFindLatestByVIN(t *testing.T) {
	svc, store := newTestService(t)

	t.Run("fresh store", func(t *testing.T) {
		latest, err := svc.FindLatestByVIN("A")
		if err != nil {
			t.Fatalf("FindLatestByVIN() error = %v", err)
		}
		if latest != nil {
			t.Errorf("got %+v, want nil", latest)
		}
	})

	seed(t, store,
		rec("A", "S1", "L1"),
		rec("B", "S2", "L2"),
		rec("A", "S1", "L3"),
	)

	t.Run("last insertion wins", func(t *testing.T) {
		latest, err := svc.FindLatestByVIN("A")
		if err != nil {
			t.Fatalf("FindLatestByVIN() error = %v", err)
		}
		if latest == nil || latest.CurrentLocation != "L3" {
			t.Errorf("got %+v, want record at L3", latest)
		}
	})

	t.Run("unknown vin", func(t *testing.T) {
		latest, err := svc.FindLatestByVIN("missing")
		if err != nil {
			t.Fatalf("FindLatestByVIN() error = %v", err)
		}
		if latest != nil {
			t.Errorf("got %+v, want nil", latest)
		}
	})
}
