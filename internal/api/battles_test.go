package api

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/coder/websocket"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ericogr/chimera-battle/internal/battle"
	"github.com/ericogr/chimera-battle/internal/codec"
	"github.com/ericogr/chimera-battle/internal/config"
	"github.com/ericogr/chimera-battle/internal/game"
	"github.com/ericogr/chimera-battle/internal/roster"
	"github.com/ericogr/chimera-battle/internal/service"
	"github.com/ericogr/chimera-battle/internal/storage"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	db, err := storage.OpenAndMigrate(filepath.Join(t.TempDir(), "api.db"))
	require.NoError(t, err)
	repo := storage.NewSQLiteRepository(db)

	cfg := config.Default()
	orch := battle.NewOrchestrator(cfg.NewMachine(), cfg.NewPlanner(), time.Second)
	svc := service.NewBattles(repo, orch, nil)
	h := NewBattleHandler(svc, repo, Catalog{
		Species: cfg.Species, Tools: cfg.Tools, Spells: cfg.Spells,
		Difficulties: cfg.Difficulties, Balance: cfg.Balance,
	})
	r := gin.New()
	RegisterRoutes(r, h)
	return r
}

func do(t *testing.T, r http.Handler, method, path string, body interface{}) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		b, err := codec.Marshal(body)
		require.NoError(t, err)
		buf.Write(b)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	var out map[string]interface{}
	_ = codec.Unmarshal(w.Body.Bytes(), &out)
	return w, out
}

func sampleTeam() battle.TeamSelection {
	var raw []game.RawCreature
	for _, sp := range roster.DefaultSpecies()[:3] {
		raw = append(raw, game.RawCreature{
			SpeciesName: sp.Name, Rarity: sp.Rarity,
			Strength: sp.Strength, Magic: sp.Magic, Agility: sp.Agility, Stamina: sp.Stamina, Energy: sp.Energy,
		})
	}
	return battle.TeamSelection{Creatures: raw, Tools: roster.DefaultTools()[:1], Spells: roster.DefaultSpells()[:1]}
}

func createBattle(t *testing.T, r http.Handler) string {
	t.Helper()
	w, out := do(t, r, http.MethodPost, "/api/battles", CreateBattlePayload{PlayerName: "ana"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	id, _ := out["battle_id"].(string)
	require.NotEmpty(t, id)
	return id
}

func TestCreateAndGetBattle(t *testing.T) {
	r := newTestRouter(t)

	w, _ := do(t, r, http.MethodPost, "/api/battles", CreateBattlePayload{PlayerName: ""})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w, _ = do(t, r, http.MethodPost, "/api/battles", CreateBattlePayload{PlayerName: strings.Repeat("n", 40)})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	id := createBattle(t, r)
	w, out := do(t, r, http.MethodGet, "/api/battles/"+id, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "setup", out["gamePhase"])
	assert.Equal(t, "no-cache, no-store, must-revalidate", w.Header().Get("Cache-Control"))

	w, _ = do(t, r, http.MethodGet, "/api/battles/not-a-uuid", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w, _ = do(t, r, http.MethodGet, "/api/battles/4b0e6f4e-6a1a-4a55-9e56-2f1f7f1f1f1f", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestBattleFlowOverHTTP(t *testing.T) {
	r := newTestRouter(t)
	id := createBattle(t, r)

	w, _ := do(t, r, http.MethodPost, "/api/battles/"+id+"/start", StartBattlePayload{Difficulty: "nightmare"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, out := do(t, r, http.MethodPost, "/api/battles/"+id+"/start", StartBattlePayload{Difficulty: game.DifficultyEasy})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "teamSelect", out["state"].(map[string]interface{})["gamePhase"])

	w, _ = do(t, r, http.MethodPost, "/api/battles/"+id+"/team", sampleTeam())
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w, out = do(t, r, http.MethodPost, "/api/battles/"+id+"/intents", battle.Deploy("ghost"))
	require.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "Intent rejected", out["error"])
	assert.Len(t, out["log"], 1)

	w, _ = do(t, r, http.MethodPost, "/api/battles/"+id+"/intents", map[string]string{})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, out = do(t, r, http.MethodPost, "/api/battles/"+id+"/intents", battle.EndTurn())
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	state := out["state"].(map[string]interface{})
	if state["gamePhase"] == "battle" {
		assert.Equal(t, "player", state["activePlayer"])
		assert.EqualValues(t, 2, state["turn"])
	}
	assert.NotEmpty(t, out["events"])
}

func TestReadOnlyRoutes(t *testing.T) {
	r := newTestRouter(t)

	w, out := do(t, r, http.MethodGet, "/api/catalog", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, out["species"])
	assert.Contains(t, out["difficulties"], "expert")

	w, out = do(t, r, http.MethodGet, "/api/version", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "dev", out["version"])

	w, out = do(t, r, http.MethodGet, "/api/health", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", out["status"])

	req := httptest.NewRequest(http.MethodGet, "/api/leaderboard?limit=5", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String())
}

func TestNormalizeTimestamps(t *testing.T) {
	out, err := MarshalIntoSnakeTimestamps([]game.PlayerProfile{{PlayerName: "ana", Wins: 2}})
	require.NoError(t, err)
	row := out.([]interface{})[0].(map[string]interface{})
	assert.Contains(t, row, "created_at")
	assert.Contains(t, row, "id")
	assert.NotContains(t, row, "CreatedAt")
	assert.EqualValues(t, 2, row["wins"])
}

func TestStreamEvents(t *testing.T) {
	r := newTestRouter(t)
	srv := httptest.NewServer(r)
	defer srv.Close()
	id := createBattle(t, r)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	conn, _, err := websocket.Dial(ctx, "ws"+strings.TrimPrefix(srv.URL, "http")+"/api/battles/"+id+"/events", nil)
	require.NoError(t, err)
	defer conn.CloseNow()

	var first streamMessage
	_, b, err := conn.Read(ctx)
	require.NoError(t, err)
	require.NoError(t, codec.Unmarshal(b, &first))
	assert.Equal(t, "snapshot", first.Type)
	require.NotNil(t, first.State)
	assert.Equal(t, id, first.State.BattleID)

	w, _ := do(t, r, http.MethodPost, "/api/battles/"+id+"/start", StartBattlePayload{Difficulty: game.DifficultyNormal})
	require.Equal(t, http.StatusOK, w.Code)

	var next streamMessage
	_, b, err = conn.Read(ctx)
	require.NoError(t, err)
	require.NoError(t, codec.Unmarshal(b, &next))
	assert.Equal(t, "update", next.Type)
	require.NotNil(t, next.Update)
	assert.Equal(t, game.PhaseTeamSelect, next.Update.Phase)
}
