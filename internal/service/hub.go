package service

import (
	"sync"

	"github.com/ericogr/chimera-battle/internal/battle"
	"github.com/ericogr/chimera-battle/internal/constants"
	"github.com/ericogr/chimera-battle/internal/game"
	"github.com/ericogr/chimera-battle/internal/logging"
)

// Update is what subscribers of a battle receive after each accepted
// intent or forced turn end.
type Update struct {
	BattleID string          `json:"battleId"`
	Phase    game.Phase      `json:"gamePhase"`
	Turn     int             `json:"turn"`
	Active   game.Side       `json:"activePlayer"`
	Log      []game.LogEntry `json:"log"`
	Events   []battle.Event  `json:"events"`
}

const subscriberBuffer = 16

// Hub fans out battle updates to stream subscribers. Slow subscribers
// lose updates instead of blocking the battle.
type Hub struct {
	mu   sync.RWMutex
	subs map[string]map[chan Update]struct{}
}

func NewHub() *Hub {
	return &Hub{subs: make(map[string]map[chan Update]struct{})}
}

// Subscribe registers for updates of one battle. The returned cancel func
// must be called once; it closes the channel.
func (h *Hub) Subscribe(battleID string) (<-chan Update, func()) {
	ch := make(chan Update, subscriberBuffer)
	h.mu.Lock()
	if h.subs[battleID] == nil {
		h.subs[battleID] = make(map[chan Update]struct{})
	}
	h.subs[battleID][ch] = struct{}{}
	h.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			h.mu.Lock()
			delete(h.subs[battleID], ch)
			if len(h.subs[battleID]) == 0 {
				delete(h.subs, battleID)
			}
			h.mu.Unlock()
			close(ch)
		})
	}
}

// Publish delivers u to every subscriber of u.BattleID without blocking.
func (h *Hub) Publish(u Update) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for ch := range h.subs[u.BattleID] {
		select {
		case ch <- u:
		default:
			logging.Debug("dropping update for slow subscriber", logging.Fields{
				constants.LogFieldBattleID: u.BattleID,
				constants.LogFieldTurn:     u.Turn,
			})
		}
	}
}

func updateOf(r battle.Result) Update {
	return Update{
		BattleID: r.State.BattleID,
		Phase:    r.State.Phase,
		Turn:     r.State.Turn,
		Active:   r.State.ActivePlayer,
		Log:      r.Log,
		Events:   r.Events,
	}
}
