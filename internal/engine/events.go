package engine

// Spawn and mishap probabilities for the post-action event roll. The three
// rolls are independent; any subset can fire on the same turn.
const (
	requirementChangeChance = 0.3
	negativeEventChance     = 0.35
	customerSpawnChance     = 0.25
)

// EventNote describes one random event that fired during a resolution,
// for narration and logging.
type EventNote struct {
	Kind EventKind
	Text string
}

var negativeEvents = []struct {
	Kind  EventKind
	Text  string
	Apply func(*Meters)
}{
	{EventQualityDrop, "A delivery crate arrives half spoiled.", func(m *Meters) { m.AddQuality(-20) }},
	{EventMoodDrop, "The old man finds your notes taped inside the recipe book.", func(m *Meters) { m.AddMood(-20) }},
	{EventStagnationSpike, "The lunch rush orders nothing but the standard bowl.", func(m *Meters) { m.AddStagnation(10) }},
	{EventDebtCreep, "The quick fix on the stock timer needs another quick fix.", func(m *Meters) { m.AddDebt(3) }},
}

// TriggerRandomEvents runs the per-turn event rolls against the meters:
// a fickle special customer may change their requirement (adding debt), one
// of four mishaps may fire, and during Episode 2 a new special customer may
// arrive if the counter seat is free.
func TriggerRandomEvents(m *Meters, r Rand) []EventNote {
	var notes []EventNote

	if m.SpecialCustomer != nil && m.SpecialCustomer.CanChangeRequirement && r.Float64() < requirementChangeChance {
		m.SpecialCustomer.changeRequirement(r)
		m.AddDebt(5)
		m.RequirementChangeActive = true
		notes = append(notes, EventNote{
			Kind: EventRequirementChange,
			Text: m.SpecialCustomer.Name + " changes the order: " + m.SpecialCustomer.Requirement,
		})
	}

	if r.Float64() < negativeEventChance {
		ev := negativeEvents[r.Intn(len(negativeEvents))]
		ev.Apply(m)
		notes = append(notes, EventNote{Kind: ev.Kind, Text: ev.Text})
	}

	if m.CurrentEpisode == 2 && m.SpecialCustomer == nil && r.Float64() < customerSpawnChance {
		m.SpecialCustomer = SpawnCustomer(r)
		notes = append(notes, EventNote{
			Kind: EventCustomerArrival,
			Text: m.SpecialCustomer.Name + " takes the counter seat and wants " + m.SpecialCustomer.Requirement + ".",
		})
	}

	return notes
}
