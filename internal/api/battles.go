package api

import (
	"errors"
	"net/http"
	"unicode/utf8"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ericogr/chimera-battle/internal/battle"
	"github.com/ericogr/chimera-battle/internal/constants"
	"github.com/ericogr/chimera-battle/internal/game"
	"github.com/ericogr/chimera-battle/internal/logging"
	"github.com/ericogr/chimera-battle/internal/service"
)

type CreateBattlePayload struct {
	PlayerName string `json:"player_name"`
	Seed       *int64 `json:"seed"`
}

type StartBattlePayload struct {
	Difficulty game.Difficulty `json:"difficulty"`
}

// battleID reads and validates the path parameter.
func battleID(c *gin.Context) (string, bool) {
	id := c.Param(constants.ParamBattleID)
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidBattleID})
		return "", false
	}
	return id, true
}

// respondServiceError maps service errors to HTTP statuses.
func respondServiceError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, service.ErrBattleNotFound):
		c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrBattleNotFound})
	case errors.Is(err, service.ErrPlayerNameRequired):
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrPlayerNameRequired})
	case errors.Is(err, service.ErrPlayerNameTooLong):
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrPlayerNameExceeds})
	default:
		logging.Error(fallback, err, logging.Fields{constants.LogFieldBattleID: c.Param(constants.ParamBattleID)})
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: fallback})
	}
}

// respondResult writes an intent outcome. Rejections are 409 with the
// single rejection line and the unchanged state.
func respondResult(c *gin.Context, r battle.Result) {
	if r.Rejected() {
		c.JSON(http.StatusConflict, gin.H{
			constants.JSONKeyError:   constants.ErrIntentRejected,
			constants.JSONKeyDetails: r.Err.Error(),
			constants.JSONKeyLog:     r.Log,
			constants.JSONKeyState:   r.State,
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		constants.JSONKeyState:  r.State,
		constants.JSONKeyLog:    r.Log,
		constants.JSONKeyEvents: r.Events,
	})
}

// CreateBattle creates a battle in the setup phase.
func (h *BattleHandler) CreateBattle(c *gin.Context) {
	var req CreateBattlePayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	if utf8.RuneCountInString(req.PlayerName) > 32 {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrPlayerNameExceeds})
		return
	}
	state, err := h.battles.CreateBattle(req.PlayerName, req.Seed)
	if err != nil {
		respondServiceError(c, err, constants.ErrFailedCreateBattle)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"battle_id":            state.BattleID,
		constants.JSONKeyState: state,
	})
}

// GetBattle returns the current battle state.
func (h *BattleHandler) GetBattle(c *gin.Context) {
	id, ok := battleID(c)
	if !ok {
		return
	}
	state, err := h.battles.GetBattle(id)
	if err != nil {
		respondServiceError(c, err, constants.ErrFailedEncodeBattle)
		return
	}
	c.Header(constants.CacheControlHeader, constants.CacheControlNoCache)
	c.JSON(http.StatusOK, state)
}

// StartBattle chooses the difficulty and opens team selection.
func (h *BattleHandler) StartBattle(c *gin.Context) {
	id, ok := battleID(c)
	if !ok {
		return
	}
	var req StartBattlePayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	if _, known := h.catalog.Difficulties[req.Difficulty]; !known {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrUnknownDifficultyPrefix + string(req.Difficulty)})
		return
	}
	r, err := h.battles.StartBattle(c.Request.Context(), id, req.Difficulty)
	if err != nil {
		respondServiceError(c, err, constants.ErrFailedUpdateBattle)
		return
	}
	respondResult(c, r)
}

// BackToSetup leaves team selection.
func (h *BattleHandler) BackToSetup(c *gin.Context) {
	id, ok := battleID(c)
	if !ok {
		return
	}
	r, err := h.battles.BackToSetup(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err, constants.ErrFailedUpdateBattle)
		return
	}
	respondResult(c, r)
}

// ConfirmTeam submits the player's roster and items and starts the fight.
func (h *BattleHandler) ConfirmTeam(c *gin.Context) {
	id, ok := battleID(c)
	if !ok {
		return
	}
	var req battle.TeamSelection
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	r, err := h.battles.ConfirmTeam(c.Request.Context(), id, req)
	if err != nil {
		respondServiceError(c, err, constants.ErrFailedUpdateBattle)
		return
	}
	respondResult(c, r)
}

// SubmitIntent applies one in-battle intent for the player. An endTurn
// answers after the enemy turn has run.
func (h *BattleHandler) SubmitIntent(c *gin.Context) {
	id, ok := battleID(c)
	if !ok {
		return
	}
	var req battle.Intent
	if err := c.ShouldBindJSON(&req); err != nil || req.Kind == "" {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	r, err := h.battles.SubmitIntent(c.Request.Context(), id, req)
	if err != nil {
		respondServiceError(c, err, constants.ErrFailedUpdateBattle)
		return
	}
	respondResult(c, r)
}
