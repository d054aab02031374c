package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/annel0/blockworld/internal/logging"
	"github.com/annel0/blockworld/internal/vec"
	"github.com/annel0/blockworld/internal/world"
	"github.com/annel0/blockworld/internal/world/block"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type response struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// newTestServer: мир из одного каменного блока в начале координат
func newTestServer(t *testing.T) (*RestServer, *world.Recorder) {
	t.Helper()
	catalog := block.DefaultCatalog()
	store := world.NewTerrainStore()
	store.Put(vec.Vec3{}, catalog.MustGet(block.StoneID))

	rec := &world.Recorder{}
	engine := world.NewWorldEngine(catalog, world.DefaultRules(), store, rec)

	rs, err := NewRestServer(Config{
		Engine:   engine,
		Registry: prometheus.NewRegistry(),
		Logger:   logging.NewWriterLogger("api", io.Discard, logging.ERROR),
	})
	require.NoError(t, err)
	return rs, rec
}

func do(t *testing.T, rs *RestServer, method, path, body string) (int, response) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	rs.Handler().ServeHTTP(w, req)

	var resp response
	if strings.HasPrefix(w.Header().Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), w.Body.String())
	}
	return w.Code, resp
}

func TestRestServer_Health(t *testing.T) {
	rs, _ := newTestServer(t)
	w := httptest.NewRecorder()
	rs.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"ok"`)
}

func TestRestServer_Catalog(t *testing.T) {
	rs, _ := newTestServer(t)
	code, resp := do(t, rs, http.MethodGet, "/api/catalog", "")
	require.Equal(t, http.StatusOK, code)

	var defs []block.Definition
	require.NoError(t, json.Unmarshal(resp.Data, &defs))
	require.Len(t, defs, 5)
	assert.Equal(t, block.GrassID, defs[0].ID)
	assert.Equal(t, "/textures/glass.png", defs[3].Texture)
}

func TestRestServer_QueryBlock(t *testing.T) {
	rs, _ := newTestServer(t)

	code, resp := do(t, rs, http.MethodGet, "/api/blocks?x=0.2&y=-0.4&z=0", "")
	require.Equal(t, http.StatusOK, code)
	var view BlockView
	require.NoError(t, json.Unmarshal(resp.Data, &view))
	assert.Equal(t, block.StoneID, view.Type)
	assert.Equal(t, vec.Vec3{}, view.Position)

	code, _ = do(t, rs, http.MethodGet, "/api/blocks?x=3&y=0&z=0", "")
	assert.Equal(t, http.StatusNotFound, code)

	code, _ = do(t, rs, http.MethodGet, "/api/blocks?x=a&y=0&z=0", "")
	assert.Equal(t, http.StatusBadRequest, code)
	code, _ = do(t, rs, http.MethodGet, "/api/blocks?x=1", "")
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestRestServer_PlaceAndRemove(t *testing.T) {
	rs, rec := newTestServer(t)

	code, resp := do(t, rs, http.MethodPost, "/api/place",
		`{"block":"glass","player":{"x":1,"y":1,"z":1},"target":{"x":0,"y":1,"z":0}}`)
	require.Equal(t, http.StatusOK, code)
	assert.True(t, resp.Success)

	var out OutcomeView
	require.NoError(t, json.Unmarshal(resp.Data, &out))
	assert.Equal(t, world.ResultAccepted, out.Outcome.Outcome)
	assert.Equal(t, "place_hard", out.SoundCue)

	code, _ = do(t, rs, http.MethodGet, "/api/columns/0/0", "")
	require.Equal(t, http.StatusOK, code)

	code, resp = do(t, rs, http.MethodPost, "/api/remove",
		`{"player":{"x":1,"y":1,"z":1},"target":{"x":0,"y":1,"z":0}}`)
	require.Equal(t, http.StatusOK, code)
	require.NoError(t, json.Unmarshal(resp.Data, &out))
	assert.Equal(t, "break_hard", out.SoundCue)

	assert.Len(t, rec.Outcomes, 2)
}

func TestRestServer_PlaceFromHit(t *testing.T) {
	rs, _ := newTestServer(t)

	// Луч попал в верхнюю грань блока (0,0,0)
	body := `{"block":"dirt","player":{"x":0,"y":2,"z":0},
		"hit":{"point":{"x":0.1,"y":0.5,"z":-0.2},"normal":{"x":0,"y":1,"z":0},"block":{"x":0,"y":0,"z":0}}}`
	code, resp := do(t, rs, http.MethodPost, "/api/place", body)
	require.Equal(t, http.StatusOK, code)
	require.True(t, resp.Success, resp.Message)

	var out OutcomeView
	require.NoError(t, json.Unmarshal(resp.Data, &out))
	assert.Equal(t, vec.Vec3{Y: 1}, out.Position)
}

func TestRestServer_Rejections(t *testing.T) {
	rs, rec := newTestServer(t)

	// Вне досягаемости – 200 с отказом и событием
	code, resp := do(t, rs, http.MethodPost, "/api/place",
		`{"block":"stone","player":{"x":40,"y":1,"z":0},"target":{"x":0,"y":1,"z":0}}`)
	require.Equal(t, http.StatusOK, code)
	assert.False(t, resp.Success)
	var out OutcomeView
	require.NoError(t, json.Unmarshal(resp.Data, &out))
	assert.Equal(t, world.RejectOutOfReach, out.Reason)
	assert.Equal(t, "error", out.SoundCue)
	require.Len(t, rec.Outcomes, 1)

	// Неизвестный тип – ошибка контракта, без события
	code, _ = do(t, rs, http.MethodPost, "/api/place",
		`{"block":"bedrock","player":{"x":1,"y":1,"z":0},"target":{"x":0,"y":1,"z":0}}`)
	assert.Equal(t, http.StatusBadRequest, code)

	// Нет ни цели, ни попадания
	code, _ = do(t, rs, http.MethodPost, "/api/place", `{"block":"stone","player":{"x":1,"y":1,"z":0}}`)
	assert.Equal(t, http.StatusBadRequest, code)
	code, _ = do(t, rs, http.MethodPost, "/api/remove", `{"player":{"x":1,"y":1,"z":0}}`)
	assert.Equal(t, http.StatusBadRequest, code)

	// Без игрока
	code, _ = do(t, rs, http.MethodPost, "/api/remove", `{"target":{"x":0,"y":0,"z":0}}`)
	assert.Equal(t, http.StatusBadRequest, code)

	code, _ = do(t, rs, http.MethodGet, "/api/columns/a/0", "")
	assert.Equal(t, http.StatusBadRequest, code)

	assert.Len(t, rec.Outcomes, 1)
}

func TestRestServer_StatsAndMetrics(t *testing.T) {
	rs, _ := newTestServer(t)

	code, resp := do(t, rs, http.MethodGet, "/api/stats", "")
	require.Equal(t, http.StatusOK, code)
	var stats struct {
		World struct {
			Blocks int `json:"blocks"`
		} `json:"world"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &stats))
	assert.Equal(t, 1, stats.World.Blocks)

	w := httptest.NewRecorder()
	rs.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, bytes.Contains(w.Body.Bytes(), []byte("blockworld_api_http_request_duration_seconds")))
}

func TestFormatUptime(t *testing.T) {
	assert.Equal(t, "42с", formatUptime(42*time.Second))
	assert.Equal(t, "3м 5с", formatUptime(3*time.Minute+5*time.Second))
	assert.Equal(t, "2ч 0м 1с", formatUptime(2*time.Hour+time.Second))
	assert.Equal(t, "1д 1ч 0м 0с", formatUptime(25*time.Hour))
}
