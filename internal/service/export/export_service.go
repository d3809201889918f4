package export

import (
	"fmt"

	"github.com/go-pdf/fpdf"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"fleettrack/internal/domain/models"
	"fleettrack/internal/repository/csvstore"
)

// PDF layout constants. Column widths are millimeters on a landscape A4 page.
const (
	pdfCellLimit       = 50
	pdfHeaderRowHeight = 8.0
	pdfDataRowHeight   = 7.0
	pdfBreakMargin     = 10.0
)

var (
	pdfColWidths = []float64{40, 30, 25, 40, 55, 55}
	pdfHeaders   = []string{"Timestamp", "Handled By", "Stock ID", "VIN", "Current Location", "Previous Location"}
)

// Service materializes the record store into derived export artifacts. Both
// builders regenerate their artifact in full and overwrite the previous one;
// neither ever mutates the store.
type Service struct {
	repo      csvstore.Repository
	excelPath string
	pdfPath   string
	logger    *zap.Logger
}

// NewService wires a new export service instance writing artifacts to the
// given fixed paths.
func NewService(repository csvstore.Repository, excelPath, pdfPath string, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{repo: repository, excelPath: excelPath, pdfPath: pdfPath, logger: logger}
}

// BuildExcel rebuilds the spreadsheet artifact and returns its path.
func (s *Service) BuildExcel() (string, error) {
	records, err := s.repo.LoadAll()
	if err != nil {
		return "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)

	header := make([]interface{}, 0, len(models.Columns()))
	for _, col := range models.Columns() {
		header = append(header, col)
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return "", fmt.Errorf("write header row: %w", err)
	}

	for i, rec := range records {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return "", fmt.Errorf("resolve row cell: %w", err)
		}
		row := []interface{}{rec.Timestamp, rec.HandledBy, rec.StockID, rec.VIN, rec.CurrentLocation, rec.PreviousLocation}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return "", fmt.Errorf("write row %d: %w", i+1, err)
		}
	}

	if err := f.SaveAs(s.excelPath); err != nil {
		return "", fmt.Errorf("save spreadsheet: %w", err)
	}

	s.logger.Debug("spreadsheet rebuilt", zap.String("path", s.excelPath), zap.Int("records", len(records)))
	return s.excelPath, nil
}

// BuildPDF rebuilds the document artifact and returns its path. The layout is
// a landscape grid with a filled header row and fixed column widths; rows
// flow onto new pages automatically.
func (s *Service) BuildPDF() (string, error) {
	records, err := s.repo.LoadAll()
	if err != nil {
		return "", err
	}

	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, pdfBreakMargin)
	pdf.AddPage()
	pdf.SetFont("Helvetica", "", 10)

	pdf.SetFillColor(15, 107, 107)
	pdf.SetTextColor(255, 255, 255)
	for i, h := range pdfHeaders {
		pdf.CellFormat(pdfColWidths[i], pdfHeaderRowHeight, h, "1", 0, "", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetTextColor(0, 0, 0)
	for _, rec := range records {
		for i, value := range rec.Row() {
			pdf.CellFormat(pdfColWidths[i], pdfDataRowHeight, truncate(value, pdfCellLimit), "1", 0, "", false, 0, "")
		}
		pdf.Ln(-1)
	}

	if err := pdf.OutputFileAndClose(s.pdfPath); err != nil {
		return "", fmt.Errorf("save document: %w", err)
	}

	s.logger.Debug("document rebuilt", zap.String("path", s.pdfPath), zap.Int("records", len(records)))
	return s.pdfPath, nil
}

// truncate caps cell text to bound row height; cells never wrap.
func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
