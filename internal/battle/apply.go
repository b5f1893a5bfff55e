package battle

import (
	"strconv"

	"github.com/ericogr/chimera-battle/internal/engine"
	"github.com/ericogr/chimera-battle/internal/game"
)

// txn is one intent being applied to a private copy of the state. Nothing
// is visible to callers until result() is returned, so a rejected intent
// simply drops the txn.
type txn struct {
	m        *Machine
	st       game.BattleState
	side     game.Side
	settings game.DifficultySettings
	log      []game.LogEntry
	events   []Event
}

func (t *txn) result() Result {
	return Result{State: t.st, Log: t.log, Events: t.events}
}

func (t *txn) logf(msg string) {
	e := game.LogEntry{Seq: t.st.NextSeq(), Turn: t.st.Turn, Side: t.side, Message: msg}
	t.st.BattleLog = append(t.st.BattleLog, e)
	t.log = append(t.log, e)
}

func (t *txn) emit(e Event) {
	e.Turn = t.st.Turn
	if e.Side == "" {
		e.Side = t.side
	}
	t.events = append(t.events, e)
}

// env is the resolver context for actions taken by side. The AI side acts
// under the battle difficulty; the human side under neutral settings.
func (t *txn) env(side game.Side) engine.Env {
	d := game.NeutralDifficulty()
	if side == game.SideEnemy {
		d = t.settings
	}
	return engine.Env{
		Turn:       t.st.Turn,
		Balance:    t.m.balance,
		Difficulty: d,
		Roll:       engine.SeededRoller{Seed: t.st.Seed, Cursor: &t.st.Rolls},
	}
}

func (t *txn) own() *game.SideState { return t.st.SideOf(t.side) }
func (t *txn) opp() *game.SideState { return t.st.SideOf(t.side.Opponent()) }

// spend charges an action. Momentum accrues by the energy spent.
func (t *txn) spend(cost int) {
	s := t.own()
	s.Energy = engine.ClampEnergy(s.Energy-cost, t.m.balance.MaxEnergy)
	s.ConsecutiveActions++
	s.EnergyMomentum += cost
}

func (t *txn) afford(cost int) error {
	if cost > t.own().Energy {
		return ErrInsufficientEnergy
	}
	return nil
}

// targetSide resolves the field an item is aimed at: the requested side,
// or by default the opponent for hostile items and the actor otherwise.
func (t *txn) targetSide(requested game.Side, hostile bool) (game.Side, error) {
	switch {
	case requested == "":
		if hostile {
			return t.side.Opponent(), nil
		}
		return t.side, nil
	case requested.Valid():
		return requested, nil
	}
	return "", ErrInvalidReference
}

func (t *txn) deploy(id string) error {
	s := t.own()
	if game.IndexOf(s.Field, id) >= 0 {
		return ErrDuplicateDeploy
	}
	i := game.IndexOf(s.Hand, id)
	if i < 0 {
		return ErrInvalidReference
	}
	if len(s.Field) >= t.m.balance.MaxFieldSize {
		return ErrFieldFull
	}
	c := s.Hand[i]
	cost := c.Stats.EnergyCost
	if err := t.afford(cost); err != nil {
		return err
	}
	s.Hand = append(s.Hand[:i:i], s.Hand[i+1:]...)
	s.Field = append(s.Field, c)
	t.spend(cost)
	t.logf(engine.DisplayName(c) + " deployed for " + strconv.Itoa(cost) + " energy")
	t.emit(Event{Type: EventCreatureDeployed, CreatureID: c.ID, Amount: cost})
	t.refresh(t.side)
	return nil
}

func (t *txn) attack(attackerID, defenderID string) error {
	s, o := t.own(), t.opp()
	ai := game.IndexOf(s.Field, attackerID)
	di := game.IndexOf(o.Field, defenderID)
	if ai < 0 || di < 0 {
		return ErrInvalidReference
	}
	cost := t.m.balance.AttackCost
	if err := t.afford(cost); err != nil {
		return err
	}
	r := engine.ResolveAttack(s.Field[ai], o.Field[di], s.ConsecutiveActions, t.env(t.side))
	s.Field[ai] = r.Attacker
	o.Field[di] = r.Defender
	t.spend(cost)
	t.logf(r.Log)
	t.emit(Event{
		Type:       EventAttackResolved,
		CreatureID: attackerID,
		TargetID:   defenderID,
		Damage:     r.Damage,
		IsCritical: r.IsCritical,
		IsBlocked:  r.IsBlocked,
	})
	t.settle()
	return nil
}

func (t *txn) defend(id string) error {
	s := t.own()
	i := game.IndexOf(s.Field, id)
	if i < 0 {
		return ErrInvalidReference
	}
	cost := t.m.balance.DefendCost
	if err := t.afford(cost); err != nil {
		return err
	}
	c := engine.ResolveDefend(s.Field[i], t.env(t.side))
	s.Field[i] = c
	t.spend(cost)
	t.logf(engine.DisplayName(c) + " takes a defensive stance")
	t.emit(Event{Type: EventDefendTaken, CreatureID: id, Amount: c.DefenseBoost})
	return nil
}

func (t *txn) useTool(toolID, targetID string, requested game.Side) error {
	s := t.own()
	ti := s.ToolIndex(toolID)
	if ti < 0 {
		return ErrInvalidReference
	}
	side, err := t.targetSide(requested, s.Tools[ti].Hostile())
	if err != nil {
		return err
	}
	ci := game.IndexOf(t.st.SideOf(side).Field, targetID)
	if ci < 0 {
		return ErrInvalidReference
	}
	cost := t.m.balance.ToolCost
	if err := t.afford(cost); err != nil {
		return err
	}
	tool := s.Tools[ti]
	field := &t.st.SideOf(side).Field
	out, ok := engine.ResolveTool((*field)[ci], tool, t.env(t.side))
	if !ok {
		return ErrNoEffect
	}
	(*field)[ci] = out.Creature
	s.Tools = append(s.Tools[:ti:ti], s.Tools[ti+1:]...)
	t.spend(cost)
	t.logf(out.Summary)
	t.emit(Event{Type: EventToolUsed, ItemID: toolID, TargetID: targetID, TargetSide: side, Amount: out.Amount})
	t.refresh(side)
	return nil
}

func (t *txn) useSpell(spellID, casterID, targetID string, requested game.Side) error {
	s := t.own()
	si := s.SpellIndex(spellID)
	ci := game.IndexOf(s.Field, casterID)
	if si < 0 || ci < 0 {
		return ErrInvalidReference
	}
	spell := s.Spells[si]
	side, err := t.targetSide(requested, spell.Kind.Hostile())
	if err != nil {
		return err
	}
	ti := game.IndexOf(t.st.SideOf(side).Field, targetID)
	if ti < 0 {
		return ErrInvalidReference
	}
	cost := t.m.balance.SpellCostOf(spell)
	if err := t.afford(cost); err != nil {
		return err
	}
	target := &t.st.SideOf(side).Field
	var r engine.SpellResult
	if side == t.side && ti == ci {
		r = engine.ResolveSelfCast(s.Field[ci], spell, t.env(t.side))
	} else {
		r = engine.ResolveSpell(s.Field[ci], (*target)[ti], spell, t.env(t.side))
	}
	// target first: on a self-cast both point at the same slot and hold the
	// same value
	(*target)[ti] = r.Target
	s.Field[ci] = r.Caster
	s.Spells = append(s.Spells[:si:si], s.Spells[si+1:]...)
	t.spend(cost)
	t.logf(r.Log)
	t.emit(Event{
		Type:       EventSpellCast,
		CreatureID: casterID,
		TargetID:   targetID,
		TargetSide: side,
		ItemID:     spellID,
		Damage:     r.Damage,
		Healing:    r.Healing,
		IsCritical: r.IsCritical,
		IsBlocked:  r.IsBlocked,
	})
	t.settle()
	return nil
}

// endTurn closes the acting side's turn and opens the opponent's.
func (t *txn) endTurn() {
	t.endOfTurn()
	next := t.side.Opponent()
	if t.side == game.SideEnemy {
		t.st.Turn++
	}
	t.st.ActivePlayer = next
	t.side = next
	t.logf("Turn " + strconv.Itoa(t.st.Turn) + ": " + string(next) + " to act")
	t.emit(Event{Type: EventTurnChanged})
	t.startOfTurn(next)
}

// endOfTurn applies the combo bonus for a long enough streak, decays
// hoarded energy and resets the streak.
func (t *txn) endOfTurn() {
	s := t.own()
	bal := t.m.balance
	if s.ConsecutiveActions >= bal.ComboBonusThreshold && len(s.Field) > 0 {
		s.Field = engine.ApplyComboBonus(s.Field, bal)
		t.logf("Combo of " + strconv.Itoa(s.ConsecutiveActions) + " actions: +" + strconv.Itoa(bal.ComboBonusAttack) + " attack to the field")
		t.refresh(t.side)
	}
	if after := engine.ApplyDecay(s.Energy, bal); after != s.Energy {
		t.logf(strconv.Itoa(s.Energy-after) + " hoarded energy decays")
		s.Energy = after
	}
	s.ConsecutiveActions = 0
}

// startOfTurn runs the effect pass, regeneration and draw for side.
func (t *txn) startOfTurn(side game.Side) {
	s := t.st.SideOf(side)
	bal := t.m.balance

	for i := range s.Field {
		c, logs := engine.AdvanceEffects(s.Field[i], t.st.Turn, t.m.p.Timed)
		s.Field[i] = c
		for _, l := range logs {
			t.logf(l)
		}
	}
	t.removeDefeated(side)
	t.refresh(side)

	bonus := 0
	if side == game.SideEnemy {
		bonus = engine.EnemyRegenBonus(t.settings, bal)
	}
	regen := engine.ComputeRegen(s.Field, bonus, bal)
	momentum, _ := engine.ComputeMomentumBonus(s.EnergyMomentum, bal)
	s.EnergyMomentum = 0
	before := s.Energy
	s.Energy = engine.ClampEnergy(s.Energy+regen+momentum, bal.MaxEnergy)
	s.LastRegen = s.Energy - before
	msg := string(side) + " regenerates " + strconv.Itoa(s.LastRegen) + " energy"
	if momentum > 0 {
		msg += " (" + strconv.Itoa(momentum) + " from momentum)"
	}
	t.logf(msg)
	t.emit(Event{Type: EventEnergyRegenerated, Side: side, Amount: s.LastRegen})

	if n := draw(s, s.HandLimit); n > 0 {
		t.logf(string(side) + " draws " + strconv.Itoa(n))
	}
	t.checkOutcome()
}

// settle removes defeated creatures from both fields, then checks the
// outcome.
func (t *txn) settle() {
	t.removeDefeated(t.side.Opponent())
	t.removeDefeated(t.side)
	t.refresh(t.side)
	t.refresh(t.side.Opponent())
	t.checkOutcome()
}

func (t *txn) removeDefeated(side game.Side) {
	s := t.st.SideOf(side)
	alive, fallen := engine.RemoveDefeated(s.Field)
	s.Field = alive
	for _, c := range fallen {
		t.logf(engine.DisplayName(c) + " is defeated")
		t.emit(Event{Type: EventCreatureDefeated, Side: side, CreatureID: c.ID})
	}
}

// refresh recomputes the synergies of side's field and announces the ones
// that were not active before.
func (t *txn) refresh(side game.Side) {
	s := t.st.SideOf(side)
	prev := s.ActiveSynergies
	field, syn := engine.RefreshField(s.Field, t.m.balance)
	s.Field = field
	s.ActiveSynergies = syn
	for _, n := range syn {
		if hasSynergy(prev, n) {
			continue
		}
		t.logf("Synergy activated for " + string(side) + ": " + n.Name)
		t.emit(Event{Type: EventSynergyActivated, Side: side, Synergy: n.Type, Bonus: n.Bonus})
	}
}

func hasSynergy(list []game.Synergy, s game.Synergy) bool {
	for _, x := range list {
		if x.Type == s.Type && x.Name == s.Name {
			return true
		}
	}
	return false
}

// checkOutcome ends the battle when a side has nothing left. The acting
// side's win is checked first so the two outcomes never hold together.
func (t *txn) checkOutcome() {
	if t.st.Phase != game.PhaseBattle {
		return
	}
	var winner game.Side
	switch {
	case t.opp().Depleted():
		winner = t.side
	case t.own().Depleted():
		winner = t.side.Opponent()
	default:
		return
	}
	event := evLose
	if winner == game.SidePlayer {
		event = evWin
	}
	phase, err := nextPhase(t.st.Phase, event)
	if err != nil {
		return
	}
	t.st.Phase = phase
	t.logf("Battle over: " + string(phase))
	t.emit(Event{Type: EventBattleEnded, Side: winner, Result: phase})
}
