package engine

// SpecialCustomer is a demanding Episode 2 guest. Satisfying one with a
// successful Taste Iteration banks a special challenge success; some of
// them change their order mid-visit.
type SpecialCustomer struct {
	Name                 string
	Requirement          string
	Bonus                int
	CanChangeRequirement bool
}

// customer templates, picked by stream when an arrival event fires
type customerTemplate struct {
	Name        string
	Requirement string
	Bonus       int
	Fickle      bool
}

var customerTemplates = []customerTemplate{
	{"The Food Critic", "a broth that tastes like the one from thirty years ago", 18, false},
	{"The Venture Capitalist", "something disruptive, but also comforting", 14, true},
	{"The Retired Chef", "noodles with exactly the right chew", 16, false},
	{"The Trend Blogger", "whatever nobody else is serving this week", 12, true},
	{"The Night-Shift Nurse", "a bowl that works at four in the morning", 15, false},
	{"The Old Regular", "the usual, except better", 13, true},
}

var alternateRequirements = []string{
	"actually, make it spicier than anything on the menu",
	"actually, no noodles — just the broth, perfected",
	"actually, something the master himself would refuse to serve",
	"actually, the cheapest bowl, executed flawlessly",
}

// SpawnCustomer creates a special customer from the template list.
func SpawnCustomer(r Rand) *SpecialCustomer {
	t := customerTemplates[r.Intn(len(customerTemplates))]
	return &SpecialCustomer{
		Name:                 t.Name,
		Requirement:          t.Requirement,
		Bonus:                t.Bonus,
		CanChangeRequirement: t.Fickle,
	}
}

// changeRequirement swaps the requirement text for a fickle customer.
// Callers apply the accompanying debt penalty.
func (c *SpecialCustomer) changeRequirement(r Rand) {
	c.Requirement = alternateRequirements[r.Intn(len(alternateRequirements))]
}
