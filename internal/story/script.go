package story

import (
	"github.com/IsekaiAgile/chef-game-sub001/internal/dialogue"
	"github.com/IsekaiAgile/chef-game-sub001/internal/engine"
)

// Scene entry points. The session starts playback at one of these and
// follows transitions until a node returns control.
const (
	NodeIntroRescue     NodeID = "intro_rescue"
	NodeIntroKitchen    NodeID = "intro_kitchen"
	NodeIntroMaster     NodeID = "intro_master"
	NodeIntroChoice     NodeID = "intro_choice"
	NodeIntroHumble     NodeID = "intro_humble"
	NodeIntroProud      NodeID = "intro_proud"
	NodeIntroTraining   NodeID = "intro_training"
	NodePerfectCycle    NodeID = "interlude_perfect_cycle"
	NodeCrisisWarning   NodeID = "interlude_crisis"
	NodeHybridMoment    NodeID = "interlude_hybrid"
	NodeEpisodeOneClear NodeID = "episode_one_clear"
	NodeEpisodeTwoClear NodeID = "episode_two_clear"
	NodeVictory         NodeID = "ending_victory"
	NodeDefeat          NodeID = "ending_defeat"
)

// Backgrounds used by the script. The UI maps these keys to art.
const (
	BackdropRiverbank = "riverbank_dusk"
	BackdropKitchen   = "shop_kitchen"
	BackdropCounter   = "shop_counter"
	BackdropNight     = "shop_night"
	BackdropFestival  = "festival_street"
	BackdropRain      = "alley_rain"
)

func narr(text string) dialogue.Line { return dialogue.Line{Text: text} }

func say(id CharacterID, text string) dialogue.Line {
	return dialogue.Line{Speaker: SpeakerName(id), Text: text}
}

// Script builds the full validated story graph.
func Script() (*Graph, error) {
	nodes := []*Node{
		{
			ID:         NodeIntroRescue,
			Title:      "The Riverbank",
			Background: BackdropRiverbank,
			Characters: []CharacterID{CharNarrator, CharApprentice},
			Variant:    engine.VariantIntro,
			Lines: []dialogue.Line{
				narr("The last thing you remember is a deploy window closing and a pager screaming."),
				narr("The first thing you notice now is the smell of pork bone broth and river mud."),
				say(CharApprentice, "...where am I? This isn't the office. This isn't even the right decade."),
				narr("A wiry old man hauls you out of the shallows by the collar, one-handed, without spilling the ladle in his other hand."),
			},
			Next: Transition{Kind: TransitionNext, Target: NodeIntroKitchen},
		},
		{
			ID:         NodeIntroKitchen,
			Title:      "The Kitchen",
			Background: BackdropKitchen,
			Characters: []CharacterID{CharApprentice, CharMaster},
			Variant:    engine.VariantIntro,
			Lines: []dialogue.Line{
				narr("The kitchen is small, spotless, and older than anything you have ever shipped to production."),
				say(CharMaster, "You fell in the river. You owe me a dry towel and an honest day's work."),
				say(CharApprentice, "I used to build systems. Big ones. Millions of requests a day."),
				say(CharMaster, "Here we serve forty bowls a day. Each one matters more than your millions."),
			},
			Next: Transition{Kind: TransitionNext, Target: NodeIntroMaster},
		},
		{
			ID:         NodeIntroMaster,
			Title:      "Old Man Genzo",
			Background: BackdropKitchen,
			Characters: []CharacterID{CharApprentice, CharMaster},
			Variant:    engine.VariantIntro,
			Lines: []dialogue.Line{
				say(CharMaster, "Forty years I have made the same broth. Taste it."),
				narr("You taste it. It is the best thing you have ever eaten, and you can tell he knows it."),
				say(CharMaster, "The same broth, and never the same broth twice. Do you understand the difference?"),
				say(CharApprentice, "Iteration without regression. ...Maybe I do."),
			},
			Next: Transition{Kind: TransitionNext, Target: NodeIntroChoice},
		},
		{
			ID:         NodeIntroChoice,
			Title:      "An Offer",
			Background: BackdropKitchen,
			Characters: []CharacterID{CharApprentice, CharMaster},
			Variant:    engine.VariantIntro,
			Lines: []dialogue.Line{
				say(CharMaster, "I am old. My hands shake in the cold months. I need an apprentice, not a lodger."),
				say(CharMaster, "So. What are you, engineer?"),
			},
			Next: Transition{
				Kind: TransitionChoice,
				Choice: ChoiceSpec{
					Prompt: "How do you answer?",
					Options: []ChoiceOption{
						{
							Label:  "\"A beginner. Teach me from the first ladle.\"",
							Target: NodeIntroHumble,
							Adjust: func(m *engine.Meters) { m.AddMood(15) },
						},
						{
							Label:  "\"An optimizer. Give me a week and I'll cut your prep time in half.\"",
							Target: NodeIntroProud,
							Adjust: func(m *engine.Meters) {
								m.AddMood(-10)
								m.Growth = 5
							},
						},
					},
				},
			},
		},
		{
			ID:         NodeIntroHumble,
			Title:      "The First Ladle",
			Background: BackdropKitchen,
			Characters: []CharacterID{CharApprentice, CharMaster},
			Variant:    engine.VariantIntro,
			Lines: []dialogue.Line{
				narr("Something in the old man's shoulders loosens."),
				say(CharMaster, "Good. Beginners break fewer pots. We start with water. Tomorrow, maybe, salt."),
			},
			Next: Transition{Kind: TransitionNext, Target: NodeIntroTraining},
		},
		{
			ID:         NodeIntroProud,
			Title:      "The Optimizer",
			Background: BackdropKitchen,
			Characters: []CharacterID{CharApprentice, CharMaster},
			Variant:    engine.VariantIntro,
			Lines: []dialogue.Line{
				say(CharMaster, "Hmph. The last man who said that to me now sells instant noodles from a cart."),
				narr("He hands you a brush and points at the floor. Apparently optimization starts with scrubbing."),
				narr("Still, you catch him watching how you sequence the work. He noticed something."),
			},
			Next: Transition{Kind: TransitionNext, Target: NodeIntroTraining},
		},
		{
			ID:         NodeIntroTraining,
			Title:      "Day One",
			Background: BackdropCounter,
			Characters: []CharacterID{CharNarrator, CharMaster},
			Variant:    engine.VariantIntro,
			Lines: []dialogue.Line{
				say(CharMaster, "Each day you choose how to spend yourself. Cook and taste. Maintain the kitchen. Or listen to the people who eat."),
				say(CharMaster, "Do only one thing and you will rot. Do all three and you might become someone."),
				narr("The shop bell rings. Your first day begins."),
			},
			Next: Transition{Kind: TransitionReturn},
		},

		{
			ID:         NodePerfectCycle,
			Title:      "Rhythm",
			Background: BackdropKitchen,
			Characters: []CharacterID{CharApprentice, CharMaster},
			Variant:    engine.VariantInterlude,
			Lines: []dialogue.Line{
				narr("Cook, maintain, listen. For once the whole day clicks together like a well-oiled pipeline."),
				say(CharMaster, "Hm. You found the rhythm. Don't get smug about it."),
				say(CharApprentice, "Wouldn't dream of it. ...Noting the run conditions, though."),
			},
			Next: Transition{Kind: TransitionReturn},
		},
		{
			ID:         NodeCrisisWarning,
			Title:      "Stale Air",
			Background: BackdropNight,
			Characters: []CharacterID{CharApprentice, CharMaster},
			Variant:    engine.VariantInterlude,
			Lines: []dialogue.Line{
				narr("The broth tastes the same as yesterday. And the day before. The regulars have started ordering less."),
				say(CharMaster, "You smell that? That is a kitchen going stale. I have smelled it twice in forty years."),
				say(CharMaster, "Change something tomorrow. Anything. Or this shop dies the slow way."),
			},
			Next: Transition{Kind: TransitionReturn},
		},
		{
			ID:         NodeHybridMoment,
			Title:      "The Hybrid Bowl",
			Background: BackdropKitchen,
			Characters: []CharacterID{CharApprentice, CharMaster},
			Variant:    engine.VariantInterlude,
			Adjust: func(m *engine.Meters) {
				// the insight pulls technique back toward balance
				m.TraditionScore += (50 - m.TraditionScore) / 2
			},
			Lines: []dialogue.Line{
				narr("Halfway through prep it hits you: the old man's broth schedule is a dependency graph, and you have been fighting it instead of reading it."),
				say(CharApprentice, "What if the tare goes in staged, the way he times the bones? Old method, new ordering."),
				say(CharMaster, "...Who taught you that?"),
				say(CharApprentice, "You did. I just drew the diagram."),
				narr("He grunts. From Genzo, that is a standing ovation."),
			},
			Next: Transition{Kind: TransitionReturn},
		},

		{
			ID:         NodeEpisodeOneClear,
			Title:      "The Chef's Knife",
			Background: BackdropNight,
			Characters: []CharacterID{CharApprentice, CharMaster},
			Variant:    engine.VariantEpisodeClear,
			Lines: []dialogue.Line{
				narr("After close, Genzo sets a cloth bundle on the counter and unrolls it. Inside is a knife with a worn magnolia handle."),
				say(CharMaster, "My master's. Then mine. It only cuts well for hands that respect what came before them."),
				say(CharApprentice, "I'll keep it sharp."),
				say(CharMaster, "Keep it honest. Sharp follows."),
				narr("Tomorrow the festival crowds arrive, and with them, harder customers."),
			},
			Next: Transition{Kind: TransitionReturn},
		},
		{
			ID:         NodeEpisodeTwoClear,
			Title:      "Word Travels",
			Background: BackdropFestival,
			Characters: []CharacterID{CharApprentice, CharMaster, CharCustomer},
			Variant:    engine.VariantEpisodeClear,
			Lines: []dialogue.Line{
				narr("The difficult ones came, ate, and left nodding. The line outside the shop now bends around the corner."),
				say(CharMaster, "They are not here for my broth anymore. They are here for ours."),
				say(CharApprentice, "Scale problem. The good kind, for once."),
				narr("One final stretch remains: making this yours without losing what made it his."),
			},
			Next: Transition{Kind: TransitionReturn},
		},
		{
			ID:         NodeVictory,
			Title:      "A New Signboard",
			Background: BackdropCounter,
			Characters: []CharacterID{CharApprentice, CharMaster},
			Variant:    engine.VariantEnding,
			Lines: []dialogue.Line{
				narr("On a bright morning, Genzo hangs a new signboard beside the old one. Your name is on it."),
				say(CharMaster, "Forty years I wondered who would carry this. I expected a cook. I got an engineer."),
				say(CharApprentice, "Same discipline. Different stack."),
				narr("He laughs, actually laughs, and ties on his apron one more time."),
				narr("The broth simmers. The bell rings. The system, at last, is in a good state."),
			},
			Next: Transition{Kind: TransitionReturn},
		},
		{
			ID:         NodeDefeat,
			Title:      "Cold Stove",
			Background: BackdropRain,
			Characters: []CharacterID{CharNarrator, CharApprentice},
			Variant:    engine.VariantEnding,
			Lines: []dialogue.Line{
				narr("The stove is cold. The shutters stay down past noon."),
				say(CharApprentice, "Postmortem: I knew the failure modes. I watched the dashboards. I still let it drift."),
				narr("Somewhere down the street, a cart sells instant noodles. Business is brisk."),
				narr("Rivers, you have learned, run in both directions. Perhaps another current waits."),
			},
			Next: Transition{Kind: TransitionReturn},
		},
	}
	return NewGraph(nodes)
}

// MustScript is Script for callers wired at startup, where a malformed
// graph is a programming error.
func MustScript() *Graph {
	g, err := Script()
	if err != nil {
		panic(err)
	}
	return g
}
