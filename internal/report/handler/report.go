package handler

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/pharmstock/pharmstock-backend/internal/report/domain"
	"github.com/pharmstock/pharmstock-backend/internal/report/render"
	"github.com/pharmstock/pharmstock-backend/internal/report/service"
	"github.com/pharmstock/pharmstock-backend/pkg/errors"
	"github.com/pharmstock/pharmstock-backend/pkg/httputil"
	"github.com/pharmstock/pharmstock-backend/pkg/logger"
)

const dateLayout = "2006-01-02"

// GenerateReportRequest is the payload for report generation
type GenerateReportRequest struct {
	ReportType string `json:"reportType" validate:"required,oneof=inventory-valuation low-stock"`
	StartDate  string `json:"startDate" validate:"required,datetime=2006-01-02"`
	EndDate    string `json:"endDate" validate:"required,datetime=2006-01-02"`
	Format     string `json:"format" validate:"omitempty"`
}

// ReportHandler handles report endpoints
type ReportHandler struct {
	service *service.ReportService
	render  *render.Renderer
	logger  *logger.Logger
}

// NewReportHandler creates a new report handler
func NewReportHandler(svc *service.ReportService, renderer *render.Renderer, log *logger.Logger) *ReportHandler {
	return &ReportHandler{
		service: svc,
		render:  renderer,
		logger:  log,
	}
}

// Generate assembles a report over the requested period. Without a format the
// assembled report is returned as JSON; with one it is streamed back as a
// file attachment.
func (h *ReportHandler) Generate(w http.ResponseWriter, r *http.Request) {
	var req GenerateReportRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.Error(w, err)
		return
	}
	if err := httputil.Validate(&req); err != nil {
		httputil.Error(w, err)
		return
	}

	startDate, err := time.Parse(dateLayout, req.StartDate)
	if err != nil {
		httputil.Error(w, errors.BadRequest("invalid start date"))
		return
	}
	endDate, err := time.Parse(dateLayout, req.EndDate)
	if err != nil {
		httputil.Error(w, errors.BadRequest("invalid end date"))
		return
	}
	if startDate.After(endDate) {
		httputil.Error(w, errors.BadRequest("start date must be before or equal to end date"))
		return
	}

	var format render.Format
	if req.Format != "" {
		format, err = render.ParseFormat(req.Format)
		if err != nil {
			httputil.Error(w, err)
			return
		}
	}

	switch req.ReportType {
	case domain.TypeInventoryValuation:
		report, err := h.service.GenerateValuation(r.Context(), startDate, endDate, req.Format)
		if err != nil {
			httputil.Error(w, err)
			return
		}
		if req.Format == "" {
			httputil.JSON(w, http.StatusOK, report)
			return
		}
		data, err := h.render.RenderValuation(report, format)
		if err != nil {
			httputil.Error(w, err)
			return
		}
		h.writeAttachment(w, "Inventory_Valuation_Report", req.StartDate, req.EndDate, format, data)

	case domain.TypeLowStock:
		report, err := h.service.GenerateLowStock(r.Context(), startDate, endDate, req.Format)
		if err != nil {
			httputil.Error(w, err)
			return
		}
		if req.Format == "" {
			httputil.JSON(w, http.StatusOK, report)
			return
		}
		data, err := h.render.RenderLowStock(report, format)
		if err != nil {
			httputil.Error(w, err)
			return
		}
		h.writeAttachment(w, "Low_Stock_Report", req.StartDate, req.EndDate, format, data)
	}
}

// Recent lists recently generated reports. Reports are assembled on demand
// and never persisted, so the list is always empty.
func (h *ReportHandler) Recent(w http.ResponseWriter, r *http.Request) {
	httputil.JSON(w, http.StatusOK, []domain.RecentReport{})
}

// Download fetches a stored report by ID
func (h *ReportHandler) Download(w http.ResponseWriter, r *http.Request) {
	httputil.Error(w, errors.NotImplemented("report storage is not available; generate the report instead"))
}

func (h *ReportHandler) writeAttachment(w http.ResponseWriter, baseName, startDate, endDate string, format render.Format, data []byte) {
	filename := strings.Join([]string{baseName, startDate, "to", endDate}, "_") + "." + format.Ext()

	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}
