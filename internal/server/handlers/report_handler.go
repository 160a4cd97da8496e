package handlers

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mamadbah2/finalqc/internal/service/reporting"
)

const dateLayout = "2006-01-02"

// DigestService computes QA digests.
type DigestService interface {
	WeeklyDigest(ctx context.Context, now time.Time) (*reporting.Digest, error)
	Summarize(ctx context.Context, from, to string) (*reporting.Digest, error)
}

// ReportHandler serves aggregate QA figures.
type ReportHandler struct {
	svc DigestService
}

// NewReportHandler constructs the digest handler.
func NewReportHandler(svc DigestService) *ReportHandler {
	return &ReportHandler{svc: svc}
}

// Summary handles GET /reports/summary. Without from/to it covers the last seven days.
func (h *ReportHandler) Summary(c *gin.Context) {
	from, to := c.Query("from"), c.Query("to")

	if from == "" && to == "" {
		digest, err := h.svc.WeeklyDigest(c.Request.Context(), time.Now())
		if err != nil {
			InternalError(c, err.Error())
			return
		}
		Success(c, digest)
		return
	}

	fromDate, errFrom := time.Parse(dateLayout, from)
	toDate, errTo := time.Parse(dateLayout, to)
	if errFrom != nil || errTo != nil {
		BadRequest(c, "from and to must both be dates in YYYY-MM-DD format")
		return
	}
	if fromDate.After(toDate) {
		BadRequest(c, "from must not be after to")
		return
	}

	digest, err := h.svc.Summarize(c.Request.Context(), from, to)
	if err != nil {
		InternalError(c, err.Error())
		return
	}
	Success(c, digest)
}
