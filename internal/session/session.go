package session

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/IsekaiAgile/chef-game-sub001/internal/dialogue"
	"github.com/IsekaiAgile/chef-game-sub001/internal/engine"
	"github.com/IsekaiAgile/chef-game-sub001/internal/story"
)

// interludeDelay is the beat between an action's numeric feedback and
// the interlude scene that comments on it.
const interludeDelay dialogue.Ticks = 15

// Recorder archives finished turns and runs. Recording is best-effort:
// failures surface on the trace span and never stall the game.
type Recorder interface {
	RecordAction(ctx context.Context, report engine.Report, snap engine.Snapshot) error
	RecordFinish(ctx context.Context, outcome string, snap engine.Snapshot) error
}

// Config wires a session together. Sink is required; everything else
// has a working zero value.
type Config struct {
	SeedText string
	Sink     Sink
	Recorder Recorder
	Tracer   trace.Tracer
	// CharInterval is the typewriter reveal rate in scheduler ticks.
	CharInterval dialogue.Ticks
}

// Session owns one run of the game: the meters, the episode machine,
// the resolver, the virtual clock and the dialogue playback state. All
// methods must be called from the single game loop goroutine.
type Session struct {
	seed     engine.RunSeed
	meters   *engine.Meters
	episodes *engine.Episodes
	resolver *engine.Resolver
	sched    *dialogue.Scheduler
	seq      *dialogue.Sequencer
	graph    *story.Graph
	sink     Sink
	recorder Recorder
	tracer   trace.Tracer

	scene      *story.Node
	choice     *story.ChoiceSpec
	choiceFrom story.NodeID
	interludes []story.NodeID
	stage      map[story.CharacterID]bool
	background string
	finished   bool
}

// New builds a session from a seed phrase. Identical phrases replay
// identically, choices and timing aside.
func New(cfg Config) (*Session, error) {
	seed, err := engine.NewRunSeed(cfg.SeedText)
	if err != nil {
		return nil, err
	}
	tracer := cfg.Tracer
	if tracer == nil {
		tracer = noop.NewTracerProvider().Tracer("")
	}
	sched := dialogue.NewScheduler()
	s := &Session{
		seed:     seed,
		meters:   engine.NewMeters(),
		episodes: engine.NewEpisodes(),
		sched:    sched,
		seq:      dialogue.NewSequencer(sched, cfg.CharInterval),
		graph:    story.MustScript(),
		sink:     cfg.Sink,
		recorder: cfg.Recorder,
		tracer:   tracer,
		stage:    make(map[story.CharacterID]bool),
	}
	s.resolver = engine.NewResolver(s.meters, seed.Stream("events"), s.episodes)
	s.seq.SetObserver(s)
	return s, nil
}

// Meters exposes the live state for rendering. Callers must not mutate.
func (s *Session) Meters() *engine.Meters { return s.meters }

// Phase reports the current episode phase.
func (s *Session) Phase() engine.Phase { return s.episodes.Phase() }

// Seed returns the seed phrase this run was started with.
func (s *Session) Seed() string { return s.seed.Text }

// Terminal reports whether the run has ended in victory or defeat.
func (s *Session) Terminal() bool { return s.finished || s.episodes.Phase().IsTerminal() }

// Busy reports whether narrative playback holds the controls. Actions
// are refused while a sequence, choice or queued interlude is live.
func (s *Session) Busy() bool {
	return s.seq.Busy() || s.choice != nil || len(s.interludes) > 0
}

// Choice returns the pending choice, if playback is blocked on one.
func (s *Session) Choice() (story.ChoiceSpec, bool) {
	if s.choice == nil {
		return story.ChoiceSpec{}, false
	}
	return *s.choice, true
}

// Visible proxies the sequencer's current line for rendering.
func (s *Session) Visible() (dialogue.Line, string, bool, bool) { return s.seq.Visible() }

// Scene returns the node being played, if any.
func (s *Session) Scene() (*story.Node, bool) {
	if s.scene == nil {
		return nil, false
	}
	return s.scene, true
}

// Tick advances the virtual clock. The UI calls this once per frame.
func (s *Session) Tick(d dialogue.Ticks) { s.sched.Advance(d) }

// StartIntro begins the opening sequence. It is called once per run.
func (s *Session) StartIntro() {
	s.playScene(story.NodeIntroRescue)
}

// PerformAction resolves one day's action. It refuses while playback is
// live or the run has ended; ok reports whether the action was taken.
func (s *Session) PerformAction(ctx context.Context, action engine.ActionID) (engine.Report, bool) {
	if s.Busy() || s.finished || s.episodes.AwaitingAdvance() {
		return engine.Report{Ignored: true, Action: action}, false
	}
	ctx, span := s.tracer.Start(ctx, "session.PerformAction",
		trace.WithAttributes(attribute.String("action", string(action))))
	defer span.End()

	report := s.resolver.ResolveAction(action)
	if report.Ignored {
		return report, false
	}
	span.SetAttributes(
		attribute.Int("day", report.Day),
		attribute.Bool("success", report.Success),
	)
	snap := s.meters.Snapshot()
	s.emit(ActionResolved{Report: report})
	s.emit(MeterStateChanged{Snapshot: snap})
	if s.recorder != nil {
		if err := s.recorder.RecordAction(ctx, report, snap); err != nil {
			span.RecordError(err)
		}
	}

	s.queueInterludes(report)
	if report.Transition != nil {
		s.applyTransition(ctx, span, report.Transition, snap)
	}
	if len(s.interludes) > 0 {
		s.sched.Defer(interludeDelay, s.playNextInterlude)
	}
	return report, true
}

// Advance forwards the player's advance signal: it fast-completes a
// typing line, steps past a revealed one, or dismisses an episode-clear
// screen once playback is done.
func (s *Session) Advance() {
	if s.choice != nil {
		return
	}
	if s.seq.Busy() {
		s.seq.Advance()
		return
	}
	if s.episodes.AwaitingAdvance() && len(s.interludes) == 0 {
		s.episodes.AdvanceAfterClear(s.meters)
		s.emit(MeterStateChanged{Snapshot: s.meters.Snapshot()})
	}
}

// Skip fast-forwards narrative playback until it blocks on a choice or
// returns control. Idle skips are no-ops.
func (s *Session) Skip() {
	for s.seq.Busy() && s.choice == nil {
		s.seq.Skip()
	}
}

// SelectChoice resolves a pending choice by option index. Out-of-range
// picks and calls with no pending choice are ignored.
func (s *Session) SelectChoice(i int) {
	if s.choice == nil || i < 0 || i >= len(s.choice.Options) {
		return
	}
	opt := s.choice.Options[i]
	s.emit(ChoiceSelected{Scene: s.choiceFrom, Index: i, Label: opt.Label})
	s.choice = nil
	if opt.Adjust != nil {
		opt.Adjust(s.meters)
		s.emit(MeterStateChanged{Snapshot: s.meters.Snapshot()})
	}
	s.playScene(opt.Target)
}

// LineShown implements dialogue.Observer.
func (s *Session) LineShown(line dialogue.Line, complete bool) {
	if !complete && line.Speaker != "" {
		s.emit(CharacterSpeaking{Speaker: line.Speaker})
	}
	s.emit(DialogueLineShown{Line: line, Complete: complete})
}

func (s *Session) queueInterludes(report engine.Report) {
	if report.HybridMoment {
		s.interludes = append(s.interludes, story.NodeHybridMoment)
	}
	if report.PerfectCycle {
		s.interludes = append(s.interludes, story.NodePerfectCycle)
	}
	if report.CrisisWarning {
		s.interludes = append(s.interludes, story.NodeCrisisWarning)
	}
}

func (s *Session) applyTransition(ctx context.Context, span trace.Span, tr *engine.Transition, snap engine.Snapshot) {
	span.SetAttributes(attribute.String("transition", string(tr.Kind)))
	switch tr.Kind {
	case engine.TransitionEpisodeClear:
		s.emit(EpisodeCleared{Episode: tr.Episode, Message: tr.Message})
		if tr.Episode == 1 {
			s.interludes = append(s.interludes, story.NodeEpisodeOneClear)
		} else {
			s.interludes = append(s.interludes, story.NodeEpisodeTwoClear)
		}
	case engine.TransitionVictory:
		s.finished = true
		s.emit(Victory{Message: tr.Message})
		s.interludes = append(s.interludes, story.NodeVictory)
		s.recordFinish(ctx, span, "victory", snap)
	case engine.TransitionDefeat:
		s.finished = true
		s.emit(GameOver{Message: tr.Message})
		s.interludes = append(s.interludes, story.NodeDefeat)
		s.recordFinish(ctx, span, "defeat", snap)
	}
}

func (s *Session) recordFinish(ctx context.Context, span trace.Span, outcome string, snap engine.Snapshot) {
	if s.recorder == nil {
		return
	}
	if err := s.recorder.RecordFinish(ctx, outcome, snap); err != nil {
		span.RecordError(err)
	}
}

func (s *Session) playNextInterlude() {
	if len(s.interludes) == 0 {
		return
	}
	next := s.interludes[0]
	s.interludes = s.interludes[1:]
	s.playScene(next)
}

func (s *Session) playScene(id story.NodeID) {
	node, ok := s.graph.Node(id)
	if !ok {
		return
	}
	s.scene = node
	s.emit(SceneChanged{Scene: node.ID, Title: node.Title})
	if node.Background != s.background {
		s.background = node.Background
		s.emit(BackgroundChanged{Background: node.Background})
	}
	s.restage(node)
	if node.Adjust != nil {
		node.Adjust(s.meters)
		s.emit(MeterStateChanged{Snapshot: s.meters.Snapshot()})
	}
	s.emit(DialogueStarted{Scene: node.ID, Variant: node.Variant})
	s.seq.Start(node.Lines, string(node.Variant), func() { s.afterScene(node) })
}

// restage diffs the cast on stage against the scene's cast and emits
// show/hide events for the difference.
func (s *Session) restage(node *story.Node) {
	want := make(map[story.CharacterID]bool, len(node.Characters))
	for _, id := range node.Characters {
		c, ok := story.Lookup(id)
		if !ok || c.Kind != story.KindSprited {
			continue
		}
		want[id] = true
		if !s.stage[id] {
			s.stage[id] = true
			s.emit(CharacterShown{Character: c})
		}
	}
	for id := range s.stage {
		if !want[id] {
			delete(s.stage, id)
			s.emit(CharacterHidden{Character: id})
		}
	}
}

func (s *Session) afterScene(node *story.Node) {
	s.emit(DialogueCompleted{Variant: node.Variant})
	switch node.Next.Kind {
	case story.TransitionNext:
		s.playScene(node.Next.Target)
	case story.TransitionChoice:
		spec := node.Next.Choice
		s.choice = &spec
		s.choiceFrom = node.ID
		labels := make([]string, len(spec.Options))
		for i, opt := range spec.Options {
			labels[i] = opt.Label
		}
		s.emit(ChoicePresented{Scene: node.ID, Prompt: spec.Prompt, Labels: labels})
	case story.TransitionReturn:
		s.scene = nil
		if len(s.interludes) > 0 {
			s.sched.Defer(interludeDelay, s.playNextInterlude)
		}
	}
}

func (s *Session) emit(e Event) {
	if s.sink != nil {
		s.sink.Emit(e)
	}
}
