package battle

import (
	"strconv"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/ericogr/chimera-battle/internal/game"
)

// confirmTeam builds both decks and opens the battle on the player's first
// turn.
func (m *Machine) confirmTeam(state game.BattleState, team *TeamSelection) Result {
	side := game.SidePlayer
	if !canTransition(state.Phase, evConfirm) {
		return reject(state, side, ErrWrongPhase, "cannot confirm a team during "+string(state.Phase))
	}
	if team == nil || len(team.Creatures) == 0 {
		return reject(state, side, ErrInvalidTeam, "a team needs at least one creature")
	}
	t, err := m.begin(state, side)
	if err != nil {
		return reject(state, side, err, err.Error())
	}

	deck, err := m.playerDeck(team.Creatures)
	if err != nil {
		return reject(state, side, ErrInvalidTeam, err.Error())
	}
	if !uniqueItems(team.Tools, team.Spells) {
		return reject(state, side, ErrInvalidTeam, "duplicate item id")
	}
	enemyDeck, err := m.p.Roster.GenerateEnemyCreatures(state.Seed, state.Difficulty, t.settings.EnemyDeckSize, deck)
	if err != nil {
		return reject(state, side, err, "enemy roster: "+err.Error())
	}
	if id, clash := sharedID(deck, enemyDeck); clash {
		return reject(state, side, ErrInvalidTeam, "creature id "+id+" is already used by the enemy roster")
	}
	enemyTools, enemySpells, err := m.p.Roster.GenerateEnemyItems(state.Seed, state.Difficulty)
	if err != nil {
		return reject(state, side, err, "enemy items: "+err.Error())
	}

	bal := m.balance
	t.st.Player = game.SideState{
		Energy:    clampStart(t.settings.PlayerStartingEnergy, bal),
		Deck:      deck,
		HandLimit: bal.PlayerHandLimit,
	}
	for _, tool := range team.Tools {
		t.st.Player.Tools = append(t.st.Player.Tools, tool.Clone())
	}
	for _, sp := range team.Spells {
		t.st.Player.Spells = append(t.st.Player.Spells, sp.Clone())
	}
	t.st.Enemy = game.SideState{
		Energy:    clampStart(t.settings.StartingEnergy, bal),
		Deck:      enemyDeck,
		Tools:     enemyTools,
		Spells:    enemySpells,
		HandLimit: t.settings.InitialHandSize + 1,
	}
	draw(&t.st.Player, bal.PlayerInitialHand)
	draw(&t.st.Enemy, t.settings.InitialHandSize)

	t.st.Phase, _ = nextPhase(state.Phase, evConfirm)
	t.st.Turn = 1
	t.st.ActivePlayer = game.SidePlayer
	t.logf("Battle started on " + string(state.Difficulty) + ": " + strconv.Itoa(len(deck)) + " creatures versus " + strconv.Itoa(len(enemyDeck)))
	t.emit(Event{Type: EventTurnChanged, Side: game.SidePlayer})
	return t.result()
}

// playerDeck derives stats for the chosen roster. Entries without an id get
// a positional one; ids must be unique and stay out of the enemy namespace.
func (m *Machine) playerDeck(raws []game.RawCreature) ([]game.Creature, error) {
	seen := map[string]bool{}
	deck := make([]game.Creature, 0, len(raws))
	for i, raw := range raws {
		if raw.ID == "" {
			raw.ID = "player-" + strconv.Itoa(i+1)
		}
		if strings.HasPrefix(raw.ID, game.EnemyIDPrefix) {
			return nil, eris.Errorf("creature id %s uses the reserved %q prefix", raw.ID, game.EnemyIDPrefix)
		}
		if seen[raw.ID] {
			return nil, eris.Errorf("duplicate creature id %s", raw.ID)
		}
		seen[raw.ID] = true
		stats := m.p.Stats.DeriveStats(raw)
		deck = append(deck, game.Creature{
			ID:            raw.ID,
			SpeciesName:   raw.SpeciesName,
			Form:          raw.Form,
			Rarity:        raw.Rarity,
			Energy:        raw.Energy,
			Stats:         stats,
			BattleStats:   stats,
			CurrentHealth: stats.MaxHealth,
		})
	}
	return deck, nil
}

// sharedID reports the first creature id present in both decks.
func sharedID(a, b []game.Creature) (string, bool) {
	for _, c := range a {
		if game.IndexOf(b, c.ID) >= 0 {
			return c.ID, true
		}
	}
	return "", false
}

func uniqueItems(tools []game.Tool, spells []game.Spell) bool {
	seen := map[string]bool{}
	for _, t := range tools {
		if t.ID == "" || seen[t.ID] {
			return false
		}
		seen[t.ID] = true
	}
	seen = map[string]bool{}
	for _, s := range spells {
		if s.ID == "" || seen[s.ID] {
			return false
		}
		seen[s.ID] = true
	}
	return true
}

func clampStart(e int, b game.Balance) int {
	if e < 0 {
		return 0
	}
	if e > b.MaxEnergy {
		return b.MaxEnergy
	}
	return e
}

// draw moves creatures from the top of the deck until the hand holds n or
// the deck is empty.
func draw(s *game.SideState, n int) int {
	drawn := 0
	for len(s.Hand) < n && len(s.Deck) > 0 {
		s.Hand = append(s.Hand, s.Deck[0])
		s.Deck = s.Deck[1:]
		drawn++
	}
	return drawn
}
