package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"fleettrack/internal/repository/csvstore"
	"fleettrack/internal/service/export"
)

// ExportHandler serves the three download endpoints: the raw store file and
// the two regenerated export artifacts.
type ExportHandler struct {
	store  csvstore.Repository
	export *export.Service
	logger *zap.Logger
}

// NewExportHandler constructs the download handler adapter.
func NewExportHandler(store csvstore.Repository, exportSvc *export.Service, logger *zap.Logger) *ExportHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportHandler{store: store, export: exportSvc, logger: logger}
}

// DownloadCSV returns the raw store file as an attachment.
func (h *ExportHandler) DownloadCSV(c *gin.Context) {
	if err := h.store.EnsureInitialized(); err != nil {
		h.failStorage(c, err)
		return
	}
	c.FileAttachment(h.store.Path(), "vehicle_status.csv")
}

// DownloadExcel rebuilds the spreadsheet artifact and returns it as an
// attachment.
func (h *ExportHandler) DownloadExcel(c *gin.Context) {
	path, err := h.export.BuildExcel()
	if err != nil {
		h.failStorage(c, err)
		return
	}
	c.FileAttachment(path, "vehicle_status.xlsx")
}

// DownloadPDF rebuilds the document artifact and returns it as an attachment.
func (h *ExportHandler) DownloadPDF(c *gin.Context) {
	path, err := h.export.BuildPDF()
	if err != nil {
		h.failStorage(c, err)
		return
	}
	c.FileAttachment(path, "vehicle_status.pdf")
}

func (h *ExportHandler) failStorage(c *gin.Context, err error) {
	h.logger.Error("export failure", zap.Error(err))
	c.String(http.StatusInternalServerError, "Something went wrong. Please try again later.")
}
