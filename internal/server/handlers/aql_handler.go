package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mamadbah2/finalqc/internal/service/evaluation"
)

// AQLHandler serves the sampling plan calculator.
type AQLHandler struct{}

// NewAQLHandler constructs the calculator handler.
func NewAQLHandler() *AQLHandler {
	return &AQLHandler{}
}

// Plan handles GET /aql/plan?lot_size=&level=&aql_major=&aql_minor=.
func (h *AQLHandler) Plan(c *gin.Context) {
	lot, err := strconv.Atoi(c.Query("lot_size"))
	if err != nil || lot < 0 {
		BadRequest(c, "lot_size must be a non-negative integer")
		return
	}

	aqlMajor, err := queryPercent(c, "aql_major", 2.5)
	if err != nil {
		BadRequest(c, err.Error())
		return
	}
	aqlMinor, err := queryPercent(c, "aql_minor", 4.0)
	if err != nil {
		BadRequest(c, err.Error())
		return
	}

	Success(c, evaluation.Plan(lot, c.DefaultQuery("level", "II"), aqlMajor, aqlMinor))
}

func queryPercent(c *gin.Context, key string, fallback float64) (float64, error) {
	raw := c.Query(key)
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || v < 0 || v > 100 {
		return 0, &evaluation.ValidationError{Field: key, Reason: "must be a percentage between 0 and 100"}
	}
	return v, nil
}
