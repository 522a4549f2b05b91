package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dsci3d/learning-energy-profile/app"
	"github.com/dsci3d/learning-energy-profile/domain/instrument"
	"github.com/dsci3d/learning-energy-profile/domain/scoring"
	apperrors "github.com/dsci3d/learning-energy-profile/internal/errors"
	"github.com/dsci3d/learning-energy-profile/internal/testkit"
	"github.com/dsci3d/learning-energy-profile/models"
)

func newTestServer(t *testing.T) (*Server, *testkit.TestKit) {
	t.Helper()
	kit := testkit.NewTestKit()
	srv, err := NewServer(kit.Service(), nil, Config{})
	require.NoError(t, err)
	return srv, kit
}

func doJSON(t *testing.T, srv *Server, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Buffer
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewBuffer(raw)
	} else {
		reader = bytes.NewBuffer(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) errorDetail {
	t.Helper()
	var body errorBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body.Error
}

func TestScoreEndpoint(t *testing.T) {
	srv, kit := newTestServer(t)

	rec := doJSON(t, srv, http.MethodPost, "/api/v1/score", map[string]interface{}{
		"id":      "web-1",
		"ratings": kit.RawRatings(kit.PatternedRatings(7)),
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var profile scoring.Profile
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &profile))
	require.NotNil(t, profile.ID)
	assert.Equal(t, "web-1", *profile.ID)
	assert.Equal(t, instrument.NumItems, profile.Meta.NumItemsAnswered)
	assert.Len(t, profile.Dimensions, instrument.NumDimensions)
	assert.NotEmpty(t, profile.Meta.CreatedAt)
}

func TestScoreEndpointIncompleteInput(t *testing.T) {
	srv, kit := newTestServer(t)

	ratings := kit.RawRatings(kit.CompleteRatings(3))
	delete(ratings, "M9")

	rec := doJSON(t, srv, http.MethodPost, "/api/v1/score", map[string]interface{}{
		"ratings": ratings,
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	detail := decodeError(t, rec)
	assert.Equal(t, apperrors.CodeInvalidInput, detail.Code)
	assert.Contains(t, detail.Message, "missing required items")
	assert.Contains(t, detail.Message, "M9")
}

func TestScoreEndpointBadJSON(t *testing.T) {
	srv, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/score", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, apperrors.CodeInvalidInput, decodeError(t, rec).Code)
}

func TestScoreEndpointEmptyRatings(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := doJSON(t, srv, http.MethodPost, "/api/v1/score", map[string]interface{}{
		"ratings": map[string]interface{}{},
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decodeError(t, rec).Message, "ratings object is required")
}

func TestProfileLifecycle(t *testing.T) {
	srv, kit := newTestServer(t)

	rec := doJSON(t, srv, http.MethodPost, "/api/v1/profiles", map[string]interface{}{
		"id":      "resp-42",
		"ratings": kit.RawRatings(kit.PatternedRatings(3)),
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var record models.ProfileRecord
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &record))
	require.NotNil(t, record.RespondentID)
	assert.Equal(t, "resp-42", *record.RespondentID)

	rec = doJSON(t, srv, http.MethodGet, "/api/v1/profiles/"+record.ID.String(), nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, srv, http.MethodGet, "/api/v1/profiles?limit=10", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var list listResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	assert.Equal(t, 1, list.Count)
	assert.Equal(t, 10, list.Limit)

	rec = doJSON(t, srv, http.MethodDelete, "/api/v1/profiles/"+record.ID.String(), nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = doJSON(t, srv, http.MethodGet, "/api/v1/profiles/"+record.ID.String(), nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, apperrors.CodeNotFound, decodeError(t, rec).Code)
}

func TestGetProfileBadID(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := doJSON(t, srv, http.MethodGet, "/api/v1/profiles/not-a-uuid", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decodeError(t, rec).Message, "invalid profile id")
}

func TestInstrumentEndpoint(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := doJSON(t, srv, http.MethodGet, "/api/v1/instrument", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var summary app.InstrumentSummary
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &summary))
	assert.Equal(t, instrument.NumItems, summary.NumItems)
	assert.Len(t, summary.Dimensions, instrument.NumDimensions)
	assert.Len(t, summary.Items, instrument.NumItems)
}

func TestHealthzWithoutDatabase(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := doJSON(t, srv, http.MethodGet, "/healthz", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var health healthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &health))
	assert.Equal(t, "ok", health.Status)
	assert.Equal(t, "unconfigured", health.Database)
}

func TestIndexPage(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := doJSON(t, srv, http.MethodGet, "/", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, rec.Body.String(), scoring.InstrumentName)
	assert.Contains(t, rec.Body.String(), "/api/v1/score")
}

func TestProfileReport(t *testing.T) {
	srv, kit := newTestServer(t)

	rec := doJSON(t, srv, http.MethodPost, "/api/v1/profiles", map[string]interface{}{
		"ratings": kit.RawRatings(kit.PatternedRatings(7)),
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	var record models.ProfileRecord
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &record))

	rec = doJSON(t, srv, http.MethodGet, "/profiles/"+record.ID.String()+"/report", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, rec.Body.String(), "<svg")
	assert.Contains(t, rec.Body.String(), instrument.DimAttention.Label())
}

func TestProfileReportNotFound(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := doJSON(t, srv, http.MethodGet, "/profiles/00000000-0000-0000-0000-000000000000/report", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
}
