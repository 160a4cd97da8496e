package handlers

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/mamadbah2/finalqc/internal/domain/models"
	"github.com/mamadbah2/finalqc/internal/service/evaluation"
)

// InspectionService is the subset of the inspection service used over HTTP.
type InspectionService interface {
	Save(ctx context.Context, id string, req models.SaveInspectionRequest) (*models.Inspection, error)
	List(ctx context.Context, filter models.ListFilter) ([]models.InspectionSummary, error)
	Get(ctx context.Context, id string) (*models.InspectionView, error)
	Report(ctx context.Context, id string) (*evaluation.Report, error)
	ExportCSV(ctx context.Context, w io.Writer, filter models.ListFilter) error
	ExportXLSX(ctx context.Context, filter models.ListFilter) (*excelize.File, error)
}

// InspectionHandler exposes Final Inspection records over HTTP.
type InspectionHandler struct {
	svc    InspectionService
	logger *zap.Logger
}

// NewInspectionHandler constructs the HTTP handler adapter.
func NewInspectionHandler(svc InspectionService, logger *zap.Logger) *InspectionHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &InspectionHandler{svc: svc, logger: logger}
}

// Create handles POST /inspections.
func (h *InspectionHandler) Create(c *gin.Context) {
	h.save(c, "")
}

// Update handles PUT /inspections/:id.
func (h *InspectionHandler) Update(c *gin.Context) {
	h.save(c, c.Param("id"))
}

func (h *InspectionHandler) save(c *gin.Context, id string) {
	var req models.SaveInspectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid inspection payload", zap.Error(err))
		BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	rec, err := h.svc.Save(c.Request.Context(), id, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	if id == "" {
		Created(c, rec.View())
		return
	}
	Success(c, rec.View())
}

// List handles GET /inspections.
func (h *InspectionHandler) List(c *gin.Context) {
	filter, err := parseFilter(c)
	if err != nil {
		BadRequest(c, err.Error())
		return
	}

	items, err := h.svc.List(c.Request.Context(), filter)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	Success(c, gin.H{"items": items, "total": len(items)})
}

// Get handles GET /inspections/:id.
func (h *InspectionHandler) Get(c *gin.Context) {
	view, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	Success(c, view)
}

// Report handles GET /inspections/:id/report.
func (h *InspectionHandler) Report(c *gin.Context) {
	report, err := h.svc.Report(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	Success(c, report)
}

// Export handles GET /inspections/export?format=csv|xlsx.
func (h *InspectionHandler) Export(c *gin.Context) {
	filter, err := parseFilter(c)
	if err != nil {
		BadRequest(c, err.Error())
		return
	}

	stamp := time.Now().Format("20060102")
	switch format := c.DefaultQuery("format", "csv"); format {
	case "csv":
		var buf bytes.Buffer
		if err := h.svc.ExportCSV(c.Request.Context(), &buf, filter); err != nil {
			writeServiceError(c, err)
			return
		}
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=final_inspections_%s.csv", stamp))
		c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
	case "xlsx":
		f, err := h.svc.ExportXLSX(c.Request.Context(), filter)
		if err != nil {
			writeServiceError(c, err)
			return
		}
		defer f.Close()

		c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=final_inspections_%s.xlsx", stamp))
		if err := f.Write(c.Writer); err != nil {
			h.logger.Error("failed to write xlsx export", zap.Error(err))
		}
	default:
		BadRequest(c, fmt.Sprintf("unsupported export format %q", format))
	}
}

func parseFilter(c *gin.Context) (models.ListFilter, error) {
	status, err := models.ParseStatus(c.Query("status"))
	if err != nil {
		return models.ListFilter{}, err
	}

	filter := models.ListFilter{
		Status: status,
		Search: c.Query("q"),
		From:   c.Query("from"),
		To:     c.Query("to"),
	}

	if raw := c.Query("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 1 {
			return models.ListFilter{}, fmt.Errorf("invalid limit %q", raw)
		}
		filter.Limit = limit
	}
	return filter, nil
}
