package ui

import (
	stderrors "errors"
	"math"
	"net/http"

	"gofill/adapters/excel"
	"gofill/app"
	"gofill/domain/core"
	"gofill/domain/series"
	apperrors "gofill/internal/errors"

	"github.com/gin-gonic/gin"
)

// SeriesHandler serves the fill, batch and profile endpoints.
type SeriesHandler struct {
	service *app.FillService
	columns func() *excel.ColumnSet
}

// NewSeriesHandler creates the handler. columns provides the currently
// loaded data-file columns (may return nil when no file is configured).
func NewSeriesHandler(service *app.FillService, columns func() *excel.ColumnSet) *SeriesHandler {
	return &SeriesHandler{service: service, columns: columns}
}

// FillRequest is the wire form of a fill call. Invalid entries are null.
// Either Values or Column must be set; X and Policy are optional (index
// sequence and linear interpolation by default). Policy is a method tag
// string or a numeric constant fill value.
type FillRequest struct {
	X      []float64   `json:"x,omitempty"`
	Values []*float64  `json:"values,omitempty"`
	Column string      `json:"column,omitempty"`
	Policy interface{} `json:"policy,omitempty"`
}

// FillResponse carries the filled sequence and the invalid mask. Entries
// the policy left unfilled (leading/trailing gaps under previous/next,
// everything under none) come back as null again.
type FillResponse struct {
	RequestID   string         `json:"request_id"`
	GeneratedAt core.Timestamp `json:"generated_at"`
	Policy      string         `json:"policy"`
	Filled      []*float64     `json:"filled"`
	Invalid     []bool         `json:"invalid"`
}

// HandleFill fills one series
func (h *SeriesHandler) HandleFill() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req FillRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, apperrors.InvalidInput("invalid request body"))
			return
		}

		y, err := h.resolveValues(req.Values, req.Column)
		if err != nil {
			respondError(c, err)
			return
		}

		policy := series.DefaultPolicy()
		if req.Policy != nil {
			policy, err = series.ParsePolicy(req.Policy)
			if err != nil {
				respondError(c, err)
				return
			}
		}

		result, err := h.service.FillOne(req.X, y, policy)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, FillResponse{
			RequestID:   core.NewRequestID().String(),
			GeneratedAt: core.Now(),
			Policy:      policy.String(),
			Filled:      fromFloats(result.Filled),
			Invalid:     result.Invalid,
		})
	}
}

// BatchFillRequest fills several series in one call.
type BatchFillRequest struct {
	Items []BatchFillItem `json:"items"`
}

// BatchFillItem mirrors FillRequest with a name for correlation.
type BatchFillItem struct {
	Name   string      `json:"name"`
	X      []float64   `json:"x,omitempty"`
	Values []*float64  `json:"values,omitempty"`
	Column string      `json:"column,omitempty"`
	Policy interface{} `json:"policy,omitempty"`
}

// BatchFillEntry is the per-series outcome.
type BatchFillEntry struct {
	Name    string     `json:"name"`
	Filled  []*float64 `json:"filled,omitempty"`
	Invalid []bool     `json:"invalid,omitempty"`
	Error   string     `json:"error,omitempty"`
}

// HandleBatchFill fills every series of the request, bounded concurrency
func (h *SeriesHandler) HandleBatchFill() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req BatchFillRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, apperrors.InvalidInput("invalid request body"))
			return
		}
		if len(req.Items) == 0 {
			respondError(c, apperrors.InvalidInput("items must not be empty"))
			return
		}

		items := make([]app.BatchItem, 0, len(req.Items))
		for _, item := range req.Items {
			y, err := h.resolveValues(item.Values, item.Column)
			if err != nil {
				respondError(c, err)
				return
			}
			items = append(items, app.BatchItem{
				Name:       item.Name,
				X:          item.X,
				Y:          y,
				PolicySpec: item.Policy,
			})
		}

		results, err := h.service.FillBatch(c.Request.Context(), items)
		if err != nil {
			respondError(c, err)
			return
		}

		entries := make([]BatchFillEntry, len(results))
		for i, r := range results {
			entries[i] = BatchFillEntry{Name: r.Name}
			if r.Err != nil {
				entries[i].Error = r.Err.Error()
				continue
			}
			entries[i].Filled = fromFloats(r.Result.Filled)
			entries[i].Invalid = r.Result.Invalid
		}

		c.JSON(http.StatusOK, gin.H{
			"request_id":   core.NewRequestID().String(),
			"generated_at": core.Now(),
			"results":      entries,
		})
	}
}

// ProfileRequest asks for the gap/summary profile of one series.
type ProfileRequest struct {
	Values []*float64 `json:"values,omitempty"`
	Column string     `json:"column,omitempty"`
}

// HandleProfile profiles one series
func (h *SeriesHandler) HandleProfile() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ProfileRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, apperrors.InvalidInput("invalid request body"))
			return
		}

		y, err := h.resolveValues(req.Values, req.Column)
		if err != nil {
			respondError(c, err)
			return
		}

		prof, err := h.service.Profile(y)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"request_id":   core.NewRequestID().String(),
			"generated_at": core.Now(),
			"profile":      prof,
		})
	}
}

// HandleColumns lists the columns loaded from the configured data file
func (h *SeriesHandler) HandleColumns() gin.HandlerFunc {
	return func(c *gin.Context) {
		set := h.columns()
		if set == nil {
			respondError(c, apperrors.NotFound("data file columns (no DATA_FILE configured)"))
			return
		}

		type columnInfo struct {
			Name    string `json:"name"`
			Length  int    `json:"length"`
			Missing int    `json:"missing"`
		}
		infos := make([]columnInfo, 0, len(set.Names))
		for _, name := range set.Names {
			values := set.Columns[name]
			missing := 0
			for _, bad := range series.InvalidMask(values) {
				if bad {
					missing++
				}
			}
			infos = append(infos, columnInfo{Name: name, Length: len(values), Missing: missing})
		}

		c.JSON(http.StatusOK, gin.H{"columns": infos})
	}
}

// resolveValues picks between inline values and a loaded column reference.
func (h *SeriesHandler) resolveValues(values []*float64, column string) ([]float64, error) {
	if column != "" {
		set := h.columns()
		if set == nil {
			return nil, apperrors.NotFound("data file columns (no DATA_FILE configured)")
		}
		y, ok := set.Column(column)
		if !ok {
			return nil, apperrors.NotFound("column " + column)
		}
		return y, nil
	}
	if values == nil {
		return nil, apperrors.InvalidInput("either values or column is required")
	}
	return toFloats(values), nil
}

// respondError maps domain and application errors to HTTP statuses.
// Upstream interpolation failures (too few sample points, duplicate
// coordinates) are reported as unprocessable rather than bad requests.
func respondError(c *gin.Context, err error) {
	var invalidMethod *series.InvalidMethodError
	var dimension *series.DimensionError
	var arity *series.ArityError

	switch {
	case stderrors.As(err, &invalidMethod):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "code": "INVALID_METHOD"})
	case stderrors.As(err, &dimension):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "code": "DIMENSION_MISMATCH"})
	case stderrors.As(err, &arity):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "code": "ARITY_ERROR"})
	case apperrors.IsAppError(err):
		status := http.StatusInternalServerError
		switch apperrors.GetCode(err) {
		case apperrors.CodeInvalidInput:
			status = http.StatusBadRequest
		case apperrors.CodeNotFound:
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{"error": err.Error(), "code": apperrors.GetCode(err)})
	default:
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error(), "code": apperrors.CodeInterpolation})
	}
}

// toFloats converts the wire representation (null for invalid) to the
// domain representation (NaN for invalid).
func toFloats(values []*float64) []float64 {
	out := make([]float64, len(values))
	for i, v := range values {
		if v == nil {
			out[i] = math.NaN()
		} else {
			out[i] = *v
		}
	}
	return out
}

// fromFloats converts back: NaN becomes null on the wire.
func fromFloats(values []float64) []*float64 {
	out := make([]*float64, len(values))
	for i := range values {
		if math.IsNaN(values[i]) {
			continue
		}
		v := values[i]
		out[i] = &v
	}
	return out
}
