package ui

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"gofill/adapters/interp"
	"gofill/app"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	service := app.NewFillService(interp.NewGonumInterpolator(), 2)
	server := NewServer(service)
	server.Initialize()
	return server
}

func postJSON(t *testing.T, server *Server, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	server.Router().ServeHTTP(w, req)
	return w
}

func TestHandleFill_LinearWithNulls(t *testing.T) {
	server := newTestServer(t)

	w := postJSON(t, server, "/api/series/fill", map[string]interface{}{
		"x":      []float64{0, 2, 4, 8, 10, 12, 14, 16, 18, 20},
		"values": []interface{}{0, nil, 16, 64, nil, nil, nil, 256, 324, 400},
		"policy": "linear",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp FillResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	assert.NotEmpty(t, resp.RequestID)
	assert.Equal(t, "linear", resp.Policy)
	require.Len(t, resp.Filled, 10)
	require.NotNil(t, resp.Filled[1])
	assert.InDelta(t, 8.0, *resp.Filled[1], 1e-9)
	require.NotNil(t, resp.Filled[5])
	assert.InDelta(t, 160.0, *resp.Filled[5], 1e-9)

	wantMask := []bool{false, true, false, false, true, true, true, false, false, false}
	assert.Equal(t, wantMask, resp.Invalid)
}

func TestHandleFill_PreviousKeepsLeadingNull(t *testing.T) {
	server := newTestServer(t)

	w := postJSON(t, server, "/api/series/fill", map[string]interface{}{
		"values": []interface{}{nil, 1, 2},
		"policy": "previous",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp FillResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	assert.Nil(t, resp.Filled[0], "leading gap must stay null")
	require.NotNil(t, resp.Filled[1])
	assert.Equal(t, 1.0, *resp.Filled[1])
}

func TestHandleFill_ScalarPolicy(t *testing.T) {
	server := newTestServer(t)

	w := postJSON(t, server, "/api/series/fill", map[string]interface{}{
		"values": []interface{}{1, 2, nil},
		"policy": 0,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp FillResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.Filled[2])
	assert.Equal(t, 0.0, *resp.Filled[2])
	assert.Equal(t, "constant(0)", resp.Policy)
}

func TestHandleFill_UnknownMethod(t *testing.T) {
	server := newTestServer(t)

	w := postJSON(t, server, "/api/series/fill", map[string]interface{}{
		"values": []interface{}{1, nil, 3},
		"policy": "bogus",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "INVALID_METHOD")
	assert.Contains(t, w.Body.String(), "bogus")
}

func TestHandleFill_DimensionMismatch(t *testing.T) {
	server := newTestServer(t)

	w := postJSON(t, server, "/api/series/fill", map[string]interface{}{
		"x":      []float64{1, 2},
		"values": []interface{}{1, nil, 3},
		"policy": "linear",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "DIMENSION_MISMATCH")
}

func TestHandleFill_TooFewSamplesIsUnprocessable(t *testing.T) {
	server := newTestServer(t)

	w := postJSON(t, server, "/api/series/fill", map[string]interface{}{
		"values": []interface{}{1, nil, nil},
		"policy": "linear",
	})
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "INTERPOLATION_ERROR")
}

func TestHandleFill_MissingValues(t *testing.T) {
	server := newTestServer(t)

	w := postJSON(t, server, "/api/series/fill", map[string]interface{}{
		"policy": "linear",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "INVALID_INPUT")
}

func TestHandleBatchFill(t *testing.T) {
	server := newTestServer(t)

	w := postJSON(t, server, "/api/series/fill/batch", map[string]interface{}{
		"items": []map[string]interface{}{
			{"name": "a", "values": []interface{}{1, nil, 3}, "policy": "previous"},
			{"name": "b", "values": []interface{}{1, nil, 3}, "policy": "bogus"},
		},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Results []BatchFillEntry `json:"results"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Results, 2)

	assert.Empty(t, resp.Results[0].Error)
	require.NotNil(t, resp.Results[0].Filled[1])
	assert.Equal(t, 1.0, *resp.Results[0].Filled[1])

	assert.NotEmpty(t, resp.Results[1].Error, "per-item failure must not abort the batch")
	assert.Nil(t, resp.Results[1].Filled)
}

func TestHandleProfile(t *testing.T) {
	server := newTestServer(t)

	w := postJSON(t, server, "/api/series/profile", map[string]interface{}{
		"values": []interface{}{nil, 1, 2, nil, nil, 3},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Profile struct {
			Length  int `json:"length"`
			Gapping struct {
				MissingCount int `json:"missing_count"`
				Gaps         int `json:"gap_count"`
				LongestGap   int `json:"longest_gap"`
			} `json:"gaps"`
		} `json:"profile"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	assert.Equal(t, 6, resp.Profile.Length)
	assert.Equal(t, 3, resp.Profile.Gapping.MissingCount)
	assert.Equal(t, 2, resp.Profile.Gapping.Gaps)
	assert.Equal(t, 2, resp.Profile.Gapping.LongestGap)
}

func TestHandleColumns_NoDataFile(t *testing.T) {
	server := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/columns", nil)
	w := httptest.NewRecorder()
	server.Router().ServeHTTP(w, req)

	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "NOT_FOUND")
}

func TestHandleFill_ByColumnReference(t *testing.T) {
	server := newTestServer(t)

	path := filepath.Join(t.TempDir(), "data.csv")
	require.NoError(t, os.WriteFile(path, []byte("load,aux\n1,0\n,0\n3,0\n"), 0o644))
	require.NoError(t, server.LoadColumns(path))

	w := postJSON(t, server, "/api/series/fill", map[string]interface{}{
		"column": "load",
		"policy": "linear",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp FillResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Filled, 3)
	require.NotNil(t, resp.Filled[1])
	assert.InDelta(t, 2.0, *resp.Filled[1], 1e-9)

	// Unknown column
	w = postJSON(t, server, "/api/series/fill", map[string]interface{}{
		"column": "nope",
	})
	require.Equal(t, http.StatusNotFound, w.Code)
}
