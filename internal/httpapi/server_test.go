package httpapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/textboard/textboard/internal/discovery"
	"github.com/textboard/textboard/internal/source"
	"github.com/textboard/textboard/internal/tensor"
)

func testServer() *Server {
	src := source.NewMemory()
	src.AddRecord("fry", "message", discovery.PluginName, source.Record{
		Step:     0,
		WallTime: 100.5,
		Tensor:   tensor.Scalar("fry *loves* garnet"),
	})
	src.AddRecord("fry", "message", discovery.PluginName, source.Record{
		Step:     1,
		WallTime: 101.5,
		Tensor:   tensor.Scalar("fry *loves* amethyst"),
	})
	return New(src, zerolog.Nop())
}

func get(t *testing.T, s *Server, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func TestTagsRoute(t *testing.T) {
	rec := get(t, testServer(), "/data/plugin/text/tags")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Equal(t, `{"fry":["message"]}`, rec.Body.String())
}

func TestTextRoute(t *testing.T) {
	rec := get(t, testServer(), "/data/plugin/text/text?run=fry&tag=message")
	require.Equal(t, http.StatusOK, rec.Code)

	var records []struct {
		Step     int64   `json:"step"`
		WallTime float64 `json:"wall_time"`
		Text     string  `json:"text"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &records))
	require.Len(t, records, 2)
	assert.Equal(t, int64(0), records[0].Step)
	assert.Equal(t, 100.5, records[0].WallTime)
	assert.Equal(t, "<p>fry <em>loves</em> garnet</p>", records[0].Text)
	assert.Equal(t, "<p>fry <em>loves</em> amethyst</p>", records[1].Text)

	// The HTML is not entity-escaped on the wire.
	assert.Contains(t, rec.Body.String(), "<em>loves</em>")
}

func TestTextRouteNotFound(t *testing.T) {
	rec := get(t, testServer(), "/data/plugin/text/text?run=fry&tag=absent")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "NOT_FOUND")
}

func TestTextRouteMissingParams(t *testing.T) {
	rec := get(t, testServer(), "/data/plugin/text/text?run=fry")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHealthRoute(t *testing.T) {
	rec := get(t, testServer(), "/healthz")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, `{"active":true}`, rec.Body.String())

	inactive := New(source.NewMemory(), zerolog.Nop())
	rec = get(t, inactive, "/healthz")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, `{"active":false}`, rec.Body.String())
}

func TestTagsDeterministicBody(t *testing.T) {
	s := testServer()
	first := get(t, s, "/data/plugin/text/tags").Body.String()
	for i := 0; i < 3; i++ {
		assert.Equal(t, first, get(t, s, "/data/plugin/text/tags").Body.String())
	}
}
