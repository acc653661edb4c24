package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/IsekaiAgile/chef-game-sub001/internal/dialogue"
	"github.com/IsekaiAgile/chef-game-sub001/internal/engine"
	"github.com/IsekaiAgile/chef-game-sub001/internal/session"
	"github.com/IsekaiAgile/chef-game-sub001/internal/store"
	"github.com/IsekaiAgile/chef-game-sub001/internal/telemetry"
	"github.com/IsekaiAgile/chef-game-sub001/internal/util"
)

const (
	viewMainMenu = "main_menu"
	viewGame     = "game"
	viewArchive  = "archive"
	viewHelp     = "help"
)

const (
	frameInterval                = 33 * time.Millisecond
	ticksPerFrame dialogue.Ticks = 30
	transcriptCap                = 10
	archiveLimit                 = 20
)

type tickMsg time.Time

func tickCmd() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

type choicePrompt struct {
	prompt string
	labels []string
}

// feed collects session events for rendering. The model shares it by
// pointer across bubbletea's value copies.
type feed struct {
	background string
	sceneTitle string
	transcript []string
	notices    []string
	choice     *choicePrompt
	snapshot   engine.Snapshot
	haveSnap   bool
	endingKind string
	endingMsg  string
}

func (f *feed) Emit(e session.Event) {
	switch ev := e.(type) {
	case session.BackgroundChanged:
		f.background = ev.Background
	case session.SceneChanged:
		f.sceneTitle = ev.Title
	case session.DialogueLineShown:
		if ev.Complete {
			f.pushTranscript(formatLine(ev.Line))
		}
	case session.ChoicePresented:
		f.choice = &choicePrompt{prompt: ev.Prompt, labels: ev.Labels}
	case session.ChoiceSelected:
		f.choice = nil
		f.pushTranscript("You: " + strings.Trim(ev.Label, "\""))
	case session.ActionResolved:
		f.notices = noticesFor(ev.Report)
	case session.MeterStateChanged:
		f.snapshot = ev.Snapshot
		f.haveSnap = true
	case session.EpisodeCleared:
		f.notices = append(f.notices, "◆ "+ev.Message)
	case session.Victory:
		f.endingKind = "victory"
		f.endingMsg = ev.Message
	case session.GameOver:
		f.endingKind = "defeat"
		f.endingMsg = ev.Message
	}
}

func (f *feed) pushTranscript(s string) {
	f.transcript = append(f.transcript, s)
	if len(f.transcript) > transcriptCap {
		f.transcript = f.transcript[len(f.transcript)-transcriptCap:]
	}
}

func formatLine(l dialogue.Line) string {
	if l.Speaker == "" {
		return l.Text
	}
	return l.Speaker + ": " + l.Text
}

func noticesFor(r engine.Report) []string {
	var out []string
	if r.Success {
		out = append(out, fmt.Sprintf("✓ %s went well (%.0f%%)", r.Action.DisplayName(), r.SuccessChance*100))
	} else {
		out = append(out, fmt.Sprintf("✗ %s fell flat", r.Action.DisplayName()))
	}
	if r.Repeated {
		out = append(out, "The same motion as yesterday. The kitchen notices.")
	}
	if r.PerfectCycle {
		out = append(out, fmt.Sprintf("★ Perfect cycle ×%d", r.PerfectStreak))
	}
	if r.CustomerCleared {
		out = append(out, "The customer leaves an empty bowl behind.")
	}
	if r.CrisisWarning {
		out = append(out, "⚠ The menu is going stale.")
	}
	for _, n := range r.Events {
		out = append(out, "• "+n.Text)
	}
	return out
}

type model struct {
	ctx context.Context
	cfg util.Config
	db  *store.DB

	sess *session.Session
	feed *feed

	view      string
	themeName string
	theme     palette
	width     int
	height    int

	archive      []store.Run
	archiveIndex int
	status       string
}

func initialModel(ctx context.Context, db *store.DB, cfg util.Config) model {
	name := cfg.Theme
	if name == "" {
		name = "miso"
	}
	return model{
		ctx:       ctx,
		cfg:       cfg,
		db:        db,
		view:      viewMainMenu,
		themeName: name,
		theme:     paletteFor(name),
	}
}

// startGame builds a fresh session, opening an archive row when a
// database is attached.
func (m model) startGame() model {
	f := &feed{}
	var rec session.Recorder
	if m.db != nil {
		r, err := store.NewRunRecorder(m.ctx, m.db, m.cfg.SeedText)
		if err != nil {
			m.status = "archive offline: " + err.Error()
		} else {
			rec = r
		}
	}
	tracer := telemetry.NoopTracer()
	if m.cfg.Telemetry {
		tracer = telemetry.Tracer("session")
	}
	sess, err := session.New(session.Config{
		SeedText:     m.cfg.SeedText,
		Sink:         f,
		Recorder:     rec,
		Tracer:       tracer,
		CharInterval: dialogue.Ticks(m.cfg.TypingInterval),
	})
	if err != nil {
		m.status = err.Error()
		return m
	}
	m.sess = sess
	m.feed = f
	m.view = viewGame
	sess.StartIntro()
	return m
}

func (m model) loadArchive() model {
	m.view = viewArchive
	m.archiveIndex = 0
	if m.db == nil {
		m.status = "no database attached; past runs are not recorded"
		m.archive = nil
		return m
	}
	runs, err := store.NewRunRepo(m.db).Recent(m.ctx, archiveLimit)
	if err != nil {
		m.status = "archive unavailable: " + err.Error()
		return m
	}
	m.status = ""
	m.archive = runs
	return m
}

func (m model) Init() tea.Cmd { return tickCmd() }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tickMsg:
		if m.sess != nil && m.view == viewGame {
			m.sess.Tick(ticksPerFrame)
		}
		return m, tickCmd()
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	if key == "ctrl+c" {
		return m, tea.Quit
	}
	switch m.view {
	case viewMainMenu:
		switch key {
		case "n", "enter":
			return m.startGame(), nil
		case "a":
			return m.loadArchive(), nil
		case "t":
			m.themeName = nextThemeName(m.themeName, 1)
			m.theme = paletteFor(m.themeName)
		case "?":
			m.view = viewHelp
		case "q", "esc":
			return m, tea.Quit
		}
	case viewGame:
		return m.handleGameKey(key)
	case viewArchive:
		switch key {
		case "up", "k":
			if m.archiveIndex > 0 {
				m.archiveIndex--
			}
		case "down", "j":
			if m.archiveIndex < len(m.archive)-1 {
				m.archiveIndex++
			}
		case "esc", "q", "a":
			m.view = m.returnView()
		}
	case viewHelp:
		m.view = m.returnView()
	}
	return m, nil
}

func (m model) returnView() string {
	if m.sess != nil {
		return viewGame
	}
	return viewMainMenu
}

func (m model) handleGameKey(key string) (tea.Model, tea.Cmd) {
	if m.sess == nil {
		m.view = viewMainMenu
		return m, nil
	}
	// a pending choice captures the number row
	if m.feed.choice != nil {
		if n := len(key); n == 1 && key[0] >= '1' && key[0] <= '9' {
			m.sess.SelectChoice(int(key[0] - '1'))
		}
		return m, nil
	}
	if m.sess.Busy() {
		switch key {
		case "enter", " ":
			m.sess.Advance()
		case "s":
			m.sess.Skip()
		}
		return m, nil
	}
	switch key {
	case "1":
		m.resolve(engine.ActionTasteIteration)
	case "2":
		m.resolve(engine.ActionMaintenance)
	case "3":
		m.resolve(engine.ActionFeedback)
	case "enter", " ":
		// dismisses an episode-clear screen, otherwise harmless
		m.sess.Advance()
	case "a":
		return m.loadArchive(), nil
	case "t":
		m.themeName = nextThemeName(m.themeName, 1)
		m.theme = paletteFor(m.themeName)
	case "?":
		m.view = viewHelp
	case "esc":
		m.view = viewMainMenu
	case "q":
		return m, tea.Quit
	}
	return m, nil
}

func (m *model) resolve(action engine.ActionID) {
	if m.sess == nil {
		return
	}
	m.sess.PerformAction(m.ctx, action)
}

// View ------------------------------------------------------------------

func (m model) View() string {
	switch m.view {
	case viewMainMenu:
		return m.renderMainMenu()
	case viewGame:
		return m.renderGame()
	case viewArchive:
		return m.renderArchive()
	case viewHelp:
		return m.renderHelp()
	}
	return ""
}

func (m model) titleStyle() lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(m.theme.Accent)
}

func (m model) mutedStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(m.theme.Muted)
}

func (m model) panelStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(m.theme.Border).
		Padding(0, 1)
}

func (m model) renderMainMenu() string {
	var b strings.Builder
	b.WriteString(m.titleStyle().Render("Broth & Circuits") + "\n")
	b.WriteString(m.mutedStyle().Render("an apprenticeship in forty bowls a day") + "\n\n")
	b.WriteString("  [n] new run\n")
	b.WriteString("  [a] past runs\n")
	b.WriteString("  [t] theme: " + m.themeName + "\n")
	b.WriteString("  [?] help\n")
	b.WriteString("  [q] quit\n")
	if m.cfg.SeedText != "" {
		b.WriteString("\n" + m.mutedStyle().Render("seed: "+m.cfg.SeedText) + "\n")
	}
	if m.status != "" {
		b.WriteString("\n" + m.mutedStyle().Render(m.status) + "\n")
	}
	return b.String()
}

func (m model) renderGame() string {
	left := m.renderMeters()
	right := m.renderNarrative()
	body := lipgloss.JoinHorizontal(lipgloss.Top, left, " ", right)
	return body + "\n" + m.renderFooter()
}

func (m model) renderMeters() string {
	var b strings.Builder
	title := m.titleStyle()
	muted := m.mutedStyle()
	if !m.feed.haveSnap {
		b.WriteString(title.Render("The Shop") + "\n")
		b.WriteString(muted.Render("(day one has not started)"))
		return m.panelStyle().Render(b.String())
	}
	s := m.feed.snapshot
	b.WriteString(title.Render(fmt.Sprintf("Day %d · Episode %d", s.Day, s.CurrentEpisode)) + "\n\n")
	b.WriteString(fmt.Sprintf("Growth  %s %3d\n", bar(s.Growth), s.Growth))
	b.WriteString(fmt.Sprintf("Staleness %s %3d\n", bar(s.Stagnation), s.Stagnation))
	b.WriteString(fmt.Sprintf("Genzo   %s %3d\n", bar(s.OldManMood), s.OldManMood))
	b.WriteString(fmt.Sprintf("Quality %s %3d\n", bar(s.IngredientQuality), s.IngredientQuality))
	b.WriteString(fmt.Sprintf("Stock   %d/5\n", s.CurrentIngredients))
	if s.CurrentEpisode == 1 {
		b.WriteString(fmt.Sprintf("Craft   %s %3d\n", bar(s.TraditionScore), s.TraditionScore))
	}
	b.WriteString(muted.Render("Workbench: "+workbenchLabel(s.TechnicalDebt)) + "\n")
	if s.HasChefKnife {
		b.WriteString(muted.Render("Carrying Genzo's knife") + "\n")
	}
	if s.SpecialCustomer != nil {
		b.WriteString("\n" + m.renderCustomer(s) + "\n")
	}
	if hint := comboHint(s.ActionHistory); hint != "" {
		b.WriteString("\n" + muted.Render(hint) + "\n")
	}
	return m.panelStyle().Render(strings.TrimRight(b.String(), "\n"))
}

// workbenchLabel keeps the debt meter qualitative; the exact number
// stays off the primary readout.
func workbenchLabel(debt int) string {
	switch {
	case debt <= 3:
		return "tidy"
	case debt <= 10:
		return "cluttered"
	default:
		return "chaos"
	}
}

func comboHint(history []engine.ActionID) string {
	missing := engine.MissingActions(history)
	if len(missing) == 0 || len(missing) == len(engine.AllActions) {
		return ""
	}
	names := make([]string, len(missing))
	for i, a := range missing {
		names[i] = a.DisplayName()
	}
	return "Untouched lately: " + strings.Join(names, ", ")
}

func (m model) renderCustomer(s engine.Snapshot) string {
	c := s.SpecialCustomer
	style := lipgloss.NewStyle().Foreground(m.theme.Warning)
	line := fmt.Sprintf("%s waits.\n%q", c.Name, c.Requirement)
	if s.RequirementChangeActive {
		line += "\n" + lipgloss.NewStyle().Foreground(m.theme.Danger).Render("They just changed their mind!")
	}
	return style.Render(line)
}

func (m model) renderNarrative() string {
	var b strings.Builder
	muted := m.mutedStyle()
	if m.feed.sceneTitle != "" && m.sess.Busy() {
		b.WriteString(m.titleStyle().Render(m.feed.sceneTitle))
		if m.feed.background != "" {
			b.WriteString(muted.Render("  · " + strings.ReplaceAll(m.feed.background, "_", " ")))
		}
		b.WriteString("\n\n")
	}
	for _, line := range m.feed.transcript {
		b.WriteString(muted.Render(line) + "\n")
	}
	if line, shown, complete, ok := m.sess.Visible(); ok {
		speaker := ""
		if line.Speaker != "" {
			speaker = lipgloss.NewStyle().Bold(true).Foreground(m.theme.Accent).Render(line.Speaker) + ": "
		}
		b.WriteString(speaker + shown)
		if complete {
			b.WriteString(" " + muted.Render("▼"))
		}
		b.WriteString("\n")
	} else if m.feed.choice != nil {
		b.WriteString("\n" + m.feed.choice.prompt + "\n")
		for i, label := range m.feed.choice.labels {
			b.WriteString(fmt.Sprintf("  [%d] %s\n", i+1, label))
		}
	} else if m.sess.Terminal() && !m.sess.Busy() {
		b.WriteString(m.renderEnding())
	} else {
		for _, n := range m.feed.notices {
			b.WriteString(n + "\n")
		}
		b.WriteString("\n" + muted.Render("How do you spend the day?") + "\n")
		b.WriteString("  [1] " + engine.ActionTasteIteration.Icon() + " " + engine.ActionTasteIteration.DisplayName() + "\n")
		b.WriteString("  [2] " + engine.ActionMaintenance.Icon() + " " + engine.ActionMaintenance.DisplayName() + "\n")
		b.WriteString("  [3] " + engine.ActionFeedback.Icon() + " " + engine.ActionFeedback.DisplayName() + "\n")
	}
	return m.panelStyle().Render(strings.TrimRight(b.String(), "\n"))
}

func (m model) renderEnding() string {
	s := m.feed.snapshot
	heading := "## The Shop Closes"
	if m.feed.endingKind == "victory" {
		heading = "## A New Signboard"
	}
	md := fmt.Sprintf("%s\n\n%s\n\n- Days: %d\n- Episode reached: %d\n- Growth: %d\n- Perfect cycles: %d\n",
		heading, m.feed.endingMsg, s.Day, s.CurrentEpisode, s.Growth, s.PerfectCycleCount)
	renderer, err := glamour.NewTermRenderer(glamour.WithAutoStyle())
	if err != nil {
		return md
	}
	out, err := renderer.Render(md)
	if err != nil {
		return md
	}
	return out + m.mutedStyle().Render("[esc] menu  [q] quit")
}

func (m model) renderFooter() string {
	muted := m.mutedStyle()
	if m.sess != nil && m.sess.Busy() {
		if m.feed.choice != nil {
			return muted.Render("[1-9] choose")
		}
		return muted.Render("[enter] advance  [s] skip")
	}
	return muted.Render("[1-3] act  [enter] continue  [a] runs  [t] theme  [?] help  [q] quit")
}

func (m model) renderArchive() string {
	var b strings.Builder
	b.WriteString(m.titleStyle().Render("Past Runs") + "\n\n")
	if m.status != "" {
		b.WriteString(m.mutedStyle().Render(m.status) + "\n")
	}
	if len(m.archive) == 0 {
		b.WriteString(m.mutedStyle().Render("(nothing archived yet)") + "\n")
	}
	for i, run := range m.archive {
		cursor := "  "
		if i == m.archiveIndex {
			cursor = "> "
		}
		outcome := run.Outcome
		if outcome == "" {
			outcome = "abandoned"
		}
		b.WriteString(fmt.Sprintf("%s%-8s  day %-3d ep %d  growth %-3d  ×%d cycles  seed %q\n",
			cursor, outcome, run.Days, run.Episode, run.Growth, run.PerfectCycles, run.Seed))
	}
	b.WriteString("\n" + m.mutedStyle().Render("[esc] back"))
	return b.String()
}

func (m model) renderHelp() string {
	var b strings.Builder
	b.WriteString(m.titleStyle().Render("How to Run the Shop") + "\n\n")
	b.WriteString("Each day, pick one way to spend yourself:\n")
	b.WriteString("  1 · Taste & iterate — push the recipe forward, spends stock\n")
	b.WriteString("  2 · Maintenance — restock and tend the kitchen\n")
	b.WriteString("  3 · Listen to customers — learn what the bowls are missing\n\n")
	b.WriteString("Repeating yourself makes the shop go stale. Variety keeps it\n")
	b.WriteString("alive; cycling through all three approaches works wonders.\n\n")
	b.WriteString("During dialogue: enter reveals/advances, s skips the scene.\n\n")
	b.WriteString(m.mutedStyle().Render("press any key to return"))
	return b.String()
}

func bar(v int) string {
	width := 10
	fill := int((float64(v)/100.0)*float64(width) + 0.5)
	if fill > width {
		fill = width
	}
	if fill < 0 {
		fill = 0
	}
	return strings.Repeat("█", fill) + strings.Repeat("·", width-fill)
}
