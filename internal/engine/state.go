package engine

// MaxGrowth caps the growth meter and doubles as the Episode 3 victory bar.
const MaxGrowth = 100

// HistoryWindow is how many resolved actions the combo tracker looks back over.
const HistoryWindow = 3

// Meters holds all numeric and simulation state for one running session.
// Every bounded field is clamped on mutation; TechnicalDebt alone is an
// unbounded accumulator and stays out of the primary UI readout.
type Meters struct {
	Day                     int
	Stagnation              int // 0-100
	Growth                  int // 0-MaxGrowth
	OldManMood              int // 0-100
	IngredientQuality       int // 0-100
	CurrentIngredients      int // 0-5
	TechnicalDebt           int // >= 0, unbounded
	TraditionScore          int // 0-100
	LastAction              ActionID
	ActionHistory           []ActionID // trailing window, oldest evicted past HistoryWindow
	CurrentEpisode          int        // 1-3
	SpecialChallengeSuccess int
	SpecialCustomer         *SpecialCustomer
	RequirementChangeActive bool
	PerfectCycleCount       int
	HasChefKnife            bool
	HybridMomentSeen        bool
}

// NewMeters returns the day-one state of a fresh apprenticeship.
func NewMeters() *Meters {
	return &Meters{
		Day:                1,
		Stagnation:         20,
		Growth:             0,
		OldManMood:         60,
		IngredientQuality:  80,
		CurrentIngredients: 3,
		TechnicalDebt:      0,
		TraditionScore:     50,
		CurrentEpisode:     1,
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func (m *Meters) AddStagnation(d int)  { m.Stagnation = clamp(m.Stagnation+d, 0, 100) }
func (m *Meters) AddGrowth(d int)      { m.Growth = clamp(m.Growth+d, 0, MaxGrowth) }
func (m *Meters) AddMood(d int)        { m.OldManMood = clamp(m.OldManMood+d, 0, 100) }
func (m *Meters) AddQuality(d int)     { m.IngredientQuality = clamp(m.IngredientQuality+d, 0, 100) }
func (m *Meters) AddIngredients(d int) { m.CurrentIngredients = clamp(m.CurrentIngredients+d, 0, 5) }
func (m *Meters) AddTradition(d int)   { m.TraditionScore = clamp(m.TraditionScore+d, 0, 100) }

// AddDebt keeps technical debt at zero or above; there is no upper bound.
func (m *Meters) AddDebt(d int) {
	m.TechnicalDebt += d
	if m.TechnicalDebt < 0 {
		m.TechnicalDebt = 0
	}
}

// pushHistory appends the action and evicts beyond the trailing window.
func (m *Meters) pushHistory(a ActionID) {
	m.ActionHistory = append(m.ActionHistory, a)
	if len(m.ActionHistory) > HistoryWindow {
		m.ActionHistory = m.ActionHistory[len(m.ActionHistory)-HistoryWindow:]
	}
}

// Terminal reports whether any end-of-game condition already holds.
// ResolveAction is a no-op once this is true.
func (m *Meters) Terminal() bool {
	return m.Growth >= MaxGrowth || m.Stagnation >= 90 || m.IngredientQuality <= 0 || m.OldManMood <= 0
}

// Defeated reports whether a losing terminal condition holds.
func (m *Meters) Defeated() bool {
	return m.Stagnation >= 90 || m.IngredientQuality <= 0 || m.OldManMood <= 0
}

// Snapshot is an immutable copy of the meters handed to UI collaborators.
type Snapshot struct {
	Day                     int
	Stagnation              int
	Growth                  int
	OldManMood              int
	IngredientQuality       int
	CurrentIngredients      int
	TechnicalDebt           int
	TraditionScore          int
	LastAction              ActionID
	ActionHistory           []ActionID
	CurrentEpisode          int
	SpecialChallengeSuccess int
	SpecialCustomer         *SpecialCustomer
	RequirementChangeActive bool
	PerfectCycleCount       int
	HasChefKnife            bool
}

// Snapshot copies the current state; the customer and history are copied
// so UI code cannot reach back into the live session.
func (m *Meters) Snapshot() Snapshot {
	s := Snapshot{
		Day:                     m.Day,
		Stagnation:              m.Stagnation,
		Growth:                  m.Growth,
		OldManMood:              m.OldManMood,
		IngredientQuality:       m.IngredientQuality,
		CurrentIngredients:      m.CurrentIngredients,
		TechnicalDebt:           m.TechnicalDebt,
		TraditionScore:          m.TraditionScore,
		LastAction:              m.LastAction,
		ActionHistory:           append([]ActionID{}, m.ActionHistory...),
		CurrentEpisode:          m.CurrentEpisode,
		SpecialChallengeSuccess: m.SpecialChallengeSuccess,
		RequirementChangeActive: m.RequirementChangeActive,
		PerfectCycleCount:       m.PerfectCycleCount,
		HasChefKnife:            m.HasChefKnife,
	}
	if m.SpecialCustomer != nil {
		c := *m.SpecialCustomer
		s.SpecialCustomer = &c
	}
	return s
}
