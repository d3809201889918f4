package handlers

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"fleettrack/internal/domain/models"
	"fleettrack/internal/repository/csvstore"
	"fleettrack/internal/service/lookup"
)

// RecordHandler serves the entry, search and delete pages and their form
// submissions.
type RecordHandler struct {
	store  csvstore.Repository
	lookup *lookup.Service
	logger *zap.Logger
	now    func() time.Time
}

// NewRecordHandler constructs the HTTP handler adapter over the record store.
func NewRecordHandler(store csvstore.Repository, lookupSvc *lookup.Service, logger *zap.Logger) *RecordHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RecordHandler{store: store, lookup: lookupSvc, logger: logger, now: time.Now}
}

// Index renders the landing page.
func (h *RecordHandler) Index(c *gin.Context) {
	if err := h.store.EnsureInitialized(); err != nil {
		h.failStorage(c, err)
		return
	}
	c.HTML(http.StatusOK, "index.html", gin.H{})
}

// SearchPage renders the search form and, when a vin is supplied, the latest
// record for it. A blank vin performs no query.
func (h *RecordHandler) SearchPage(c *gin.Context) {
	vin := strings.TrimSpace(c.Query("vin"))
	if vin == "" {
		c.HTML(http.StatusOK, "search.html", gin.H{
			"SearchError": nil,
			"Result":      nil,
			"SearchedVIN": "",
		})
		return
	}

	result, err := h.lookup.FindLatestByVIN(vin)
	if err != nil {
		h.failStorage(c, err)
		return
	}

	var searchError interface{}
	if result == nil {
		searchError = "No records found for that VIN."
	}

	c.HTML(http.StatusOK, "search.html", gin.H{
		"SearchError": searchError,
		"Result":      result,
		"SearchedVIN": vin,
	})
}

// UpdateForm renders the entry form. The error/success query params are
// display-only and never re-validated.
func (h *RecordHandler) UpdateForm(c *gin.Context) {
	if err := h.store.EnsureInitialized(); err != nil {
		h.failStorage(c, err)
		return
	}
	c.HTML(http.StatusOK, "update.html", gin.H{
		"Error":   c.Query("error"),
		"Success": c.Query("success"),
	})
}

// SubmitUpdate validates the handover form, derives the previous location and
// appends a new record. Any blank field redirects back without touching the
// store.
func (h *RecordHandler) SubmitUpdate(c *gin.Context) {
	handledBy := strings.TrimSpace(c.PostForm("handled_by"))
	vin := strings.TrimSpace(c.PostForm("vin"))
	stockID := strings.TrimSpace(c.PostForm("stock_id"))
	currentLocation := strings.TrimSpace(c.PostForm("current_location"))

	if handledBy == "" || vin == "" || stockID == "" || currentLocation == "" {
		redirectWithMessage(c, "/update", "error", "All fields are required.")
		return
	}

	previousLocation, _, err := h.lookup.FindPreviousLocation(vin, stockID)
	if err != nil {
		h.failStorage(c, err)
		return
	}

	rec := models.UpdateRecord{
		Timestamp:        h.now().Format(models.TimestampLayout),
		HandledBy:        handledBy,
		StockID:          stockID,
		VIN:              vin,
		CurrentLocation:  currentLocation,
		PreviousLocation: previousLocation,
	}

	if err := h.store.Append(rec); err != nil {
		h.failStorage(c, err)
		return
	}

	redirectWithMessage(c, "/update", "success", "Saved update.")
}

// DeleteForm renders the delete form. The error/delete query params are
// display-only.
func (h *RecordHandler) DeleteForm(c *gin.Context) {
	c.HTML(http.StatusOK, "delete.html", gin.H{
		"Error":         c.Query("error"),
		"DeleteMessage": c.Query("delete"),
	})
}

// DeleteRecords removes every record for the submitted vin and reports the
// count. A blank vin never reaches the store.
func (h *RecordHandler) DeleteRecords(c *gin.Context) {
	vin := strings.TrimSpace(c.PostForm("vin"))
	if vin == "" {
		redirectWithMessage(c, "/delete", "error", "VIN is required to delete.")
		return
	}

	removed, err := h.store.DeleteByVIN(vin)
	if err != nil {
		h.failStorage(c, err)
		return
	}

	if removed == 0 {
		redirectWithMessage(c, "/delete", "error", "No records found for that VIN.")
		return
	}

	redirectWithMessage(c, "/delete", "delete", fmt.Sprintf("Deleted %d record(s).", removed))
}

func (h *RecordHandler) failStorage(c *gin.Context, err error) {
	h.logger.Error("storage failure", zap.Error(err))
	c.String(http.StatusInternalServerError, "Something went wrong. Please try again later.")
}

// redirectWithMessage issues a see-other redirect so a page reload does not
// resubmit the form.
func redirectWithMessage(c *gin.Context, path, key, message string) {
	c.Redirect(http.StatusSeeOther, path+"?"+key+"="+url.QueryEscape(message))
}
