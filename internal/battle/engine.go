// Package battle implements the Battle Engine: the turn state
// machine, action queue, ordering, execution, end-of-battle
// detection, and event emission that everything else in this module
// is built to serve.
//
// This generalizes the teacher's internal/game turn loop
// (executeCombatTurn/initCombatState, hardcoded to one party vs. one
// enemy) into a symmetric two-team engine driven entirely by the
// creature/skill/damage/effect packages, with internal/telemetry
// spans opened at the same call sites the teacher opens them.
package battle

import (
	"context"
	"fmt"
	"math/rand"
	"sort"
	"strconv"

	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/battlecore/internal/creature"
	"github.com/samdwyer/battlecore/internal/damage"
	"github.com/samdwyer/battlecore/internal/duration"
	"github.com/samdwyer/battlecore/internal/element"
	"github.com/samdwyer/battlecore/internal/events"
	"github.com/samdwyer/battlecore/internal/handle"
	"github.com/samdwyer/battlecore/internal/skill"
	"github.com/samdwyer/battlecore/internal/stat"
	"github.com/samdwyer/battlecore/internal/status"
	"github.com/samdwyer/battlecore/internal/team"
	"github.com/samdwyer/battlecore/internal/telemetry"
)

// restorePPAmount is the fixed PP restored by an ActionRestorePP
// action, per the spec's §4.7 execution-phase rule.
const restorePPAmount = 4

// escapeSuccessChance is the percent chance a PvE Escape action
// succeeds.
const escapeSuccessChance = 75

// Config configures a new Engine.
type Config struct {
	// Chart is the type-effectiveness table used by every damage
	// calculation. A nil Chart falls back to an all-neutral table.
	Chart *element.Chart
	// Seed seeds the engine's single PRNG source. Zero falls back to 1
	// rather than an unseeded/time-based source, keeping NewEngine
	// itself deterministic; callers wanting real randomness should
	// call SeedRNG explicitly with a time-derived value.
	Seed uint64
}

// Engine drives one battle between two teams from InitBattle through
// to a terminal Result. It is not safe for concurrent use — per the
// spec's concurrency model, a battle instance is single-threaded and
// cooperative.
type Engine struct {
	chart *element.Chart
	rng   *rand.Rand
	bus   *events.Bus

	player *team.Team
	foe    *team.Team
	isPvP  bool

	arena      map[handle.Handle]*creature.Creature
	nextHandle handle.Handle

	st state
}

// NewEngine constructs an Engine from cfg. InitBattle must be called
// before any action may be submitted.
func NewEngine(cfg Config) *Engine {
	chart := cfg.Chart
	if chart == nil {
		chart = element.NewChart(nil)
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = 1
	}
	return &Engine{
		chart: chart,
		rng:   rand.New(rand.NewSource(int64(seed))),
		bus:   events.NewBus(),
		arena: make(map[handle.Handle]*creature.Creature),
		st:    state{phase: NotStarted},
	}
}

// SeedRNG reseeds the engine's single PRNG source, for deterministic
// test setups.
func (e *Engine) SeedRNG(seed uint64) {
	e.rng = rand.New(rand.NewSource(int64(seed)))
}

// Subscribe registers h to receive every event this engine publishes.
func (e *Engine) Subscribe(h events.Handler) events.SubscriptionID {
	return e.bus.Subscribe(h)
}

// InitBattle registers both teams' creatures into the engine's handle
// arena and starts turn 1's input phase.
func (e *Engine) InitBattle(ctx context.Context, player, foe *team.Team, isPvP bool) error {
	tracer := telemetry.Tracer("battle")
	_, span := tracer.Start(ctx, "battle.start")
	defer span.End()

	if player == nil || foe == nil || len(player.Members) == 0 || len(foe.Members) == 0 {
		span.SetAttributes(attribute.Bool("failed", true))
		return fmt.Errorf("battle: InitBattle requires two non-empty teams")
	}
	e.player, e.foe, e.isPvP = player, foe, isPvP
	e.registerTeam(player)
	e.registerTeam(foe)
	e.st = state{phase: InputPhase}

	span.SetAttributes(
		attribute.Int("player_team_size", len(player.Members)),
		attribute.Int("foe_team_size", len(foe.Members)),
		attribute.Bool("is_pvp", isPvP),
	)

	e.bus.Publish(events.Event{Type: events.BattleStarted, BattleStartedPayload: events.BattleStartedPayload{IsPvP: isPvP}})
	e.beginTurn()
	return nil
}

func (e *Engine) registerTeam(t *team.Team) {
	for _, c := range t.Members {
		e.nextHandle++
		c.SetHandle(e.nextHandle)
		e.arena[e.nextHandle] = c
	}
}

// CurrentState returns a read-only snapshot of the battle's state.
func (e *Engine) CurrentState() StateView {
	return StateView{
		Phase:             e.st.phase,
		Turn:              e.st.turn,
		Result:            e.st.result,
		IsPvP:             e.isPvP,
		PlayerAwaitSwitch: e.st.playerAwaitSwitch,
		FoeAwaitSwitch:    e.st.foeAwaitSwitch,
		Log:               append([]LogEntry(nil), e.st.log...),
	}
}

func (e *Engine) beginTurn() {
	e.st.turn++
	e.st.queue = nil
	e.st.playerSubmitted = false
	e.st.foeSubmitted = false
	e.st.phase = InputPhase
	e.bus.Publish(events.Event{Type: events.TurnStarted, TurnStartedPayload: events.TurnStartedPayload{
		Turn: e.st.turn, PlayerAwaitSwitch: e.st.playerAwaitSwitch, FoeAwaitSwitch: e.st.foeAwaitSwitch,
	}})
}

// SubmitPlayerAction queues the player side's action for the current
// turn. Once both sides have submitted, the execution phase runs to
// completion (or to battle end) before this call returns.
func (e *Engine) SubmitPlayerAction(ctx context.Context, a Action) error {
	if err := e.submit(ctx, PlayerSide, a); err != nil {
		return err
	}
	if !e.isPvP && e.st.phase == InputPhase && !e.st.foeSubmitted {
		return e.submit(ctx, FoeSide, e.selectFoeAction())
	}
	return nil
}

// SubmitFoeAction queues the foe side's action. In a non-PvP battle
// this is a no-op — the AI drives the foe automatically once the
// player submits.
func (e *Engine) SubmitFoeAction(ctx context.Context, a Action) error {
	if !e.isPvP {
		return nil
	}
	return e.submit(ctx, FoeSide, a)
}

func (e *Engine) submit(ctx context.Context, side Side, a Action) error {
	if e.st.phase == NotStarted {
		return fmt.Errorf("battle: InitBattle has not been called")
	}
	if e.st.phase == Ended {
		return fmt.Errorf("battle: cannot submit an action, battle has ended")
	}
	if e.st.phase != InputPhase {
		return fmt.Errorf("battle: cannot submit an action outside the input phase")
	}

	actor := e.activeFor(side)
	if actor == nil {
		return fmt.Errorf("battle: %s side has no active creature", side)
	}

	priority := 0
	if a.Kind == ActionUseSkill {
		if sk := e.resolveSkill(actor, a.SkillIndex); sk != nil {
			priority = sk.Priority
		}
	}
	if !actor.CanAct() {
		e.log(actor.Name()+" cannot act and skips its turn.", actor.Handle(), handle.Invalid)
	}

	qa := QueuedAction{Side: side, Action: a, Priority: priority, Speed: actor.CalculateSpeed()}
	e.st.queue = append(e.st.queue, qa)

	if side == PlayerSide {
		e.st.playerSubmitted = true
	} else {
		e.st.foeSubmitted = true
	}

	if e.st.playerSubmitted && e.st.foeSubmitted {
		e.runExecutionPhase(ctx)
	}
	return nil
}

func (e *Engine) activeFor(side Side) *creature.Creature {
	if side == PlayerSide {
		return e.player.Active()
	}
	return e.foe.Active()
}

func (e *Engine) teamFor(side Side) *team.Team {
	if side == PlayerSide {
		return e.player
	}
	return e.foe
}

func (e *Engine) resolveSkill(actor *creature.Creature, index int) *skill.Skill {
	if index == -1 {
		return actor.SignatureSkill()
	}
	skills := actor.Skills()
	if index < 0 || index >= len(skills) {
		return nil
	}
	return &skills[index]
}

func (e *Engine) log(text string, source, target handle.Handle) {
	entry := LogEntry{Turn: e.st.turn, Text: text, Source: source, Target: target}
	e.st.log = append(e.st.log, entry)
	e.bus.Publish(events.Event{Type: events.LogAppended, LogAppendedPayload: events.LogAppendedPayload{
		Turn: entry.Turn, Text: entry.Text, Source: int(source), Target: int(target),
	}})
}

func (e *Engine) runExecutionPhase(ctx context.Context) {
	tracer := telemetry.Tracer("battle")
	ctx, span := tracer.Start(ctx, "battle.turn")
	span.SetAttributes(attribute.Int("turn", e.st.turn))
	defer span.End()

	e.st.phase = ExecutionPhase

	e.runTurnStartHooks(PlayerSide)
	if e.checkEndOfBattle() {
		return
	}
	e.runTurnStartHooks(FoeSide)
	if e.checkEndOfBattle() {
		return
	}

	sort.SliceStable(e.st.queue, func(i, j int) bool {
		qi, qj := e.st.queue[i], e.st.queue[j]
		if qi.Priority != qj.Priority {
			return qi.Priority > qj.Priority
		}
		return qi.Speed > qj.Speed
	})

	for _, qa := range e.st.queue {
		actor := e.activeFor(qa.Side)
		// A switch is dispatchable even while the side's active creature
		// has fainted or otherwise cannot act — that's exactly the case
		// a forced switch exists to resolve.
		if qa.Action.Kind != ActionSwitch {
			if actor == nil || !actor.IsAlive() || !actor.CanAct() {
				if actor != nil {
					e.log(actor.Name()+" cannot act.", actor.Handle(), handle.Invalid)
				}
				continue
			}
		}
		e.dispatch(ctx, qa.Side, actor, qa.Action)
		if e.st.phase == Ended || e.checkEndOfBattle() {
			return
		}
	}

	e.runTurnEndHooks(PlayerSide)
	e.runTurnEndHooks(FoeSide)
	if e.checkEndOfBattle() {
		return
	}

	e.bus.Publish(events.Event{Type: events.TurnEnded, TurnEndedPayload: events.TurnEndedPayload{Turn: e.st.turn}})

	e.st.playerAwaitSwitch = e.player.Active() == nil || !e.player.Active().IsAlive()
	e.st.foeAwaitSwitch = e.foe.Active() == nil || !e.foe.Active().IsAlive()

	e.beginTurn()
}

func (e *Engine) dispatch(ctx context.Context, side Side, actor *creature.Creature, a Action) {
	if actor != nil && actor.IsAlive() && actor.Status() == status.Confusion && actor.RollConfusionSelfHit(e.rng) {
		dealt := actor.TakeDamage(damage.ConfusionSelfHitDamage)
		e.log(actor.Name()+" hurt itself in its confusion for "+strconv.Itoa(dealt)+".", actor.Handle(), actor.Handle())
		return
	}

	switch a.Kind {
	case ActionUseSkill:
		e.dispatchUseSkill(ctx, side, actor, a)
	case ActionSwitch:
		e.dispatchSwitch(side, a)
	case ActionUseItem:
		e.log(actor.Name()+" used an item.", actor.Handle(), handle.Invalid)
	case ActionRestorePP:
		restored := actor.RestorePP(restorePPAmount)
		e.log(actor.Name()+" restored "+strconv.Itoa(restored)+" PP.", actor.Handle(), handle.Invalid)
	case ActionEscape:
		e.dispatchEscape(actor)
	case ActionPass:
		e.log(actor.Name()+" does nothing.", actor.Handle(), handle.Invalid)
	}
}

func (e *Engine) dispatchUseSkill(ctx context.Context, side Side, actor *creature.Creature, a Action) {
	sk := e.resolveSkill(actor, a.SkillIndex)
	if sk == nil {
		e.log(actor.Name()+" has no such skill.", actor.Handle(), handle.Invalid)
		return
	}

	// A skill's declared Target picks who Use actually resolves hit/
	// damage/accuracy against: Foe is the opponent's active creature,
	// Self and Field (no battlefield-wide state is modeled) resolve
	// against the user itself.
	var target *creature.Creature
	if sk.Target == skill.Foe {
		target = e.activeFor(side.Opponent())
	} else {
		target = actor
	}
	if target == nil {
		return
	}

	tracer := telemetry.Tracer("battle")
	_, span := tracer.Start(ctx, "battle.skill")
	span.SetAttributes(
		attribute.String("actor", actor.Name()),
		attribute.String("skill", sk.Name),
		attribute.String("target", target.Name()),
		attribute.Int("turn", e.st.turn),
	)
	defer span.End()

	actorStatusBefore, actorStagesBefore := actor.Status(), snapshotStages(actor)
	targetStatusBefore, targetStagesBefore := target.Status(), snapshotStages(target)

	result := sk.Use(actor, target, e.rng, e.chart)

	switch result.Outcome {
	case skill.Failed:
		span.SetAttributes(attribute.Bool("failed", true))
		e.log(actor.Name()+" couldn't use "+sk.Name+" ("+result.Reason+").", actor.Handle(), handle.Invalid)
		return
	case skill.Missed:
		e.log(actor.Name()+"'s "+sk.Name+" missed!", actor.Handle(), target.Handle())
	}

	totalDamage := 0
	for _, hr := range result.Hits {
		if !hr.Hit || !hr.Dealt {
			continue
		}
		totalDamage += hr.Damage.Amount
		e.bus.Publish(events.Event{Type: events.DamageDealt, DamageDealtPayload: events.DamageDealtPayload{
			TargetID: int(target.Handle()), Amount: hr.Damage.Amount, WasCritical: hr.Damage.Critical,
			EffectivenessBucket: hr.Damage.EffectivenessBucket,
		}})
		e.log(target.Name()+" took "+strconv.Itoa(hr.Damage.Amount)+" damage from "+sk.Name+".", actor.Handle(), target.Handle())
	}
	if totalDamage > 0 {
		span.SetAttributes(attribute.Int("damage", totalDamage))
	}

	e.emitStatusAndStageChanges(actor, actorStatusBefore, actorStagesBefore)
	e.emitStatusAndStageChanges(target, targetStatusBefore, targetStagesBefore)
}

func snapshotStages(c *creature.Creature) map[stat.Kind]int {
	snap := make(map[stat.Kind]int, len(stat.Kinds()))
	for _, k := range stat.Kinds() {
		snap[k] = c.StatStage(k)
	}
	return snap
}

func (e *Engine) emitStatusAndStageChanges(c *creature.Creature, statusBefore status.Condition, stagesBefore map[stat.Kind]int) {
	if c.Status() != statusBefore {
		e.bus.Publish(events.Event{Type: events.StatusChanged, StatusChangedPayload: events.StatusChangedPayload{
			TargetID: int(c.Handle()), Old: statusBefore.String(), New: c.Status().String(),
		}})
	}
	for _, k := range stat.Kinds() {
		oldV, newV := stagesBefore[k], c.StatStage(k)
		if oldV != newV {
			e.bus.Publish(events.Event{Type: events.StatStageChanged, StatStageChangedPayload: events.StatStageChangedPayload{
				TargetID: int(c.Handle()), Stat: k.String(), Old: oldV, New: newV,
			}})
		}
	}
}

func (e *Engine) dispatchSwitch(side Side, a Action) {
	t := e.teamFor(side)
	if !t.SwitchTo(a.SwitchIndex) {
		e.log(side.String()+" switch failed: invalid or fainted target.", handle.Invalid, handle.Invalid)
		return
	}
	active := t.Active()
	e.bus.Publish(events.Event{Type: events.CreatureSwitched, CreatureSwitchedPayload: events.CreatureSwitchedPayload{
		TeamIsPlayer: side == PlayerSide, NewIndex: a.SwitchIndex,
	}})
	e.log(active.Name()+" was sent out!", handle.Invalid, active.Handle())
	if side == PlayerSide {
		e.st.playerAwaitSwitch = false
	} else {
		e.st.foeAwaitSwitch = false
	}
}

func (e *Engine) dispatchEscape(actor *creature.Creature) {
	if e.isPvP {
		e.log(actor.Name()+" can't escape a trainer battle!", actor.Handle(), handle.Invalid)
		return
	}
	if e.rng.Intn(100) < escapeSuccessChance {
		e.st.result = PlayerEscaped
		e.log("Got away safely!", actor.Handle(), handle.Invalid)
		e.endBattle()
		return
	}
	e.log(actor.Name()+" couldn't escape!", actor.Handle(), handle.Invalid)
}

func (e *Engine) runTurnStartHooks(side Side) {
	actor := e.activeFor(side)
	if actor == nil || !actor.IsAlive() {
		return
	}
	for _, msg := range actor.WakeThaw(e.rng) {
		e.log(msg, actor.Handle(), actor.Handle())
	}
	for _, d := range actor.TriggerDurations(duration.TurnStart) {
		e.applyDurationHook(actor, d)
	}
}

func (e *Engine) runTurnEndHooks(side Side) {
	actor := e.activeFor(side)
	if actor == nil || !actor.IsAlive() {
		return
	}
	for _, msg := range actor.ApplyStatusTick(e.rng) {
		e.log(msg, actor.Handle(), actor.Handle())
	}
	for _, d := range actor.TriggerDurations(duration.TurnEnd) {
		e.applyDurationHook(actor, d)
	}
	for _, msg := range actor.DecrementDurations() {
		e.log(msg, actor.Handle(), actor.Handle())
	}
}

func (e *Engine) applyDurationHook(holder *creature.Creature, d duration.Duration) {
	switch d.Kind {
	case duration.Leech:
		dealt := holder.TakeDamage(d.Power)
		if dealt > 0 {
			e.log(holder.Name()+" is leeched for "+strconv.Itoa(dealt)+".", d.OriginalSource, holder.Handle())
		}
		if src, ok := e.arena[d.OriginalSource]; ok && src.IsAlive() && dealt > 0 {
			healed := src.Heal(dealt)
			if healed > 0 {
				e.bus.Publish(events.Event{Type: events.HealingDone, HealingDonePayload: events.HealingDonePayload{
					TargetID: int(src.Handle()), Amount: healed,
				}})
			}
		}
	case duration.FieldAura:
		if d.Power > 0 {
			healed := holder.Heal(d.Power)
			if healed > 0 {
				e.bus.Publish(events.Event{Type: events.HealingDone, HealingDonePayload: events.HealingDonePayload{TargetID: int(holder.Handle()), Amount: healed}})
			}
		} else if d.Power < 0 {
			holder.TakeDamage(-d.Power)
		}
	case duration.Immunity, duration.StateSnapshot:
		// Passive (Immunity is queried directly via HasImmunity) or
		// restore-on-expiry (StateSnapshot) kinds with no per-turn action.
	}
}

// checkEndOfBattle evaluates the spec's end-of-battle rule and
// transitions to Ended if either team (or both) has been wiped out.
func (e *Engine) checkEndOfBattle() bool {
	playerDown := e.player.IsDefeated()
	foeDown := e.foe.IsDefeated()
	switch {
	case playerDown && foeDown:
		e.st.result = Draw
	case playerDown:
		e.st.result = FoeWin
	case foeDown:
		e.st.result = PlayerWin
	default:
		return false
	}
	e.endBattle()
	return true
}

func (e *Engine) endBattle() {
	e.st.phase = Ended

	tracer := telemetry.Tracer("battle")
	_, span := tracer.Start(context.Background(), "battle.end")
	span.SetAttributes(attribute.String("result", string(toEventResult(e.st.result))), attribute.Int("turn", e.st.turn))
	span.End()

	e.bus.Publish(events.Event{Type: events.BattleEnded, BattleEndedPayload: events.BattleEndedPayload{Result: toEventResult(e.st.result)}})
}

func toEventResult(r Result) events.LogEntryResult {
	switch r {
	case PlayerWin:
		return events.ResultPlayerWin
	case FoeWin:
		return events.ResultFoeWin
	case Draw:
		return events.ResultDraw
	case PlayerEscaped:
		return events.ResultPlayerEscaped
	default:
		return events.ResultOngoing
	}
}
