package models

// TimestampLayout is the second-precision format stamped on every record.
const TimestampLayout = "2006-01-02T15:04:05"

// UpdateRecord is one location-update row in the vehicle status log.
type UpdateRecord struct {
	Timestamp        string
	HandledBy        string
	StockID          string
	VIN              string
	CurrentLocation  string
	PreviousLocation string
}

// Columns returns the persisted column names in their fixed order.
func Columns() []string {
	return []string{
		"timestamp",
		"handled_by",
		"stock_id",
		"vin",
		"current_location",
		"previous_location",
	}
}

// Row projects the record into the fixed column order.
func (r UpdateRecord) Row() []string {
	return []string{
		r.Timestamp,
		r.HandledBy,
		r.StockID,
		r.VIN,
		r.CurrentLocation,
		r.PreviousLocation,
	}
}

// FromRow builds a record from a row in the fixed column order.
func FromRow(row []string) UpdateRecord {
	return UpdateRecord{
		Timestamp:        row[0],
		HandledBy:        row[1],
		StockID:          row[2],
		VIN:              row[3],
		CurrentLocation:  row[4],
		PreviousLocation: row[5],
	}
}
