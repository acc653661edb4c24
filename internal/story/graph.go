package story

import (
	"github.com/pkg/errors"

	"github.com/IsekaiAgile/chef-game-sub001/internal/dialogue"
	"github.com/IsekaiAgile/chef-game-sub001/internal/engine"
)

// NodeID names a scene in the graph.
type NodeID string

// TransitionKind says how control leaves a node.
type TransitionKind string

const (
	// TransitionNext moves straight to another node.
	TransitionNext TransitionKind = "next"
	// TransitionChoice presents options and branches on the pick.
	TransitionChoice TransitionKind = "choice"
	// TransitionReturn hands control back to the simulation loop.
	TransitionReturn TransitionKind = "return"
)

// ChoiceOption is one selectable branch of a choice node.
type ChoiceOption struct {
	Label  string
	Target NodeID
	// Adjust mutates the meters when this option is picked. Nil means
	// the pick carries no mechanical weight.
	Adjust func(*engine.Meters)
}

// ChoiceSpec is the prompt and options a choice node presents.
type ChoiceSpec struct {
	Prompt  string
	Options []ChoiceOption
}

// Transition is a node's outgoing edge.
type Transition struct {
	Kind   TransitionKind
	Target NodeID     // set for TransitionNext
	Choice ChoiceSpec // set for TransitionChoice
}

// Node is one scene: a backdrop, the cast on stage, the lines spoken,
// and where control goes afterwards.
type Node struct {
	ID         NodeID
	Title      string
	Background string
	Characters []CharacterID
	Lines      []dialogue.Line
	Variant    engine.DialogueVariant
	// Adjust runs when the node is entered, before its lines play.
	Adjust func(*engine.Meters)
	Next   Transition
}

// Graph is a validated set of scenes. Every edge target is checked at
// construction so playback can index nodes without rechecking.
type Graph struct {
	nodes map[NodeID]*Node
}

// NewGraph validates the node set and builds the lookup index.
func NewGraph(nodes []*Node) (*Graph, error) {
	g := &Graph{nodes: make(map[NodeID]*Node, len(nodes))}
	for _, n := range nodes {
		if n.ID == "" {
			return nil, errors.New("story: node with empty id")
		}
		if _, dup := g.nodes[n.ID]; dup {
			return nil, errors.Errorf("story: duplicate node %q", n.ID)
		}
		g.nodes[n.ID] = n
	}
	for _, n := range nodes {
		if err := g.checkTransition(n); err != nil {
			return nil, err
		}
		for _, id := range n.Characters {
			if _, ok := Lookup(id); !ok {
				return nil, errors.Errorf("story: node %q references unknown character %q", n.ID, id)
			}
		}
	}
	return g, nil
}

func (g *Graph) checkTransition(n *Node) error {
	switch n.Next.Kind {
	case TransitionNext:
		if _, ok := g.nodes[n.Next.Target]; !ok {
			return errors.Errorf("story: node %q targets unknown node %q", n.ID, n.Next.Target)
		}
	case TransitionChoice:
		if len(n.Next.Choice.Options) < 2 {
			return errors.Errorf("story: choice node %q needs at least two options", n.ID)
		}
		for _, opt := range n.Next.Choice.Options {
			if _, ok := g.nodes[opt.Target]; !ok {
				return errors.Errorf("story: choice in %q targets unknown node %q", n.ID, opt.Target)
			}
		}
	case TransitionReturn:
		// terminal for the graph, control returns to the caller
	default:
		return errors.Errorf("story: node %q has invalid transition kind %q", n.ID, n.Next.Kind)
	}
	return nil
}

// Node fetches a scene by ID.
func (g *Graph) Node(id NodeID) (*Node, bool) {
	n, ok := g.nodes[id]
	return n, ok
}

// Len reports the number of scenes.
func (g *Graph) Len() int { return len(g.nodes) }
