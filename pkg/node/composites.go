package node

import "github.com/jihwankim/roguelike-ai-core/pkg/behaviortree"

type (
	Status       = behaviortree.Status
	Node         = behaviortree.Node
	TickContext  = behaviortree.TickContext
)

const (
	StatusInvalid = behaviortree.StatusInvalid
	StatusSuccess = behaviortree.StatusSuccess
	StatusFailure = behaviortree.StatusFailure
	StatusRunning = behaviortree.StatusRunning
)

// Selector ticks children in order, returning the first Success or
// Running; Failure if every child fails.
type Selector struct {
	behaviortree.Base
	children []Node
}

// NewSelector builds a Selector over children, ticked in the given order.
func NewSelector(name string, children ...Node) *Selector {
	return &Selector{Base: behaviortree.NewBase(name), children: children}
}

func (s *Selector) Children() []Node { return s.children }

func (s *Selector) Tick(tc *TickContext) Status {
	for _, c := range s.children {
		if st := c.Tick(tc); st == StatusSuccess || st == StatusRunning {
			return s.Stamp(tc, st)
		}
	}
	return s.Stamp(tc, StatusFailure)
}

// Sequence ticks children in order, returning the first Failure or
// Running; Success if every child succeeds.
type Sequence struct {
	behaviortree.Base
	children []Node
}

// NewSequence builds a Sequence over children, ticked in the given order.
func NewSequence(name string, children ...Node) *Sequence {
	return &Sequence{Base: behaviortree.NewBase(name), children: children}
}

func (s *Sequence) Children() []Node { return s.children }

func (s *Sequence) Tick(tc *TickContext) Status {
	for _, c := range s.children {
		if st := c.Tick(tc); st == StatusFailure || st == StatusRunning {
			return s.Stamp(tc, st)
		}
	}
	return s.Stamp(tc, StatusSuccess)
}

// Parallel ticks every child regardless of outcome: Failure if any child
// fails, else Running if any child is running, else Success.
type Parallel struct {
	behaviortree.Base
	children []Node
}

// NewParallel builds a Parallel over children.
func NewParallel(name string, children ...Node) *Parallel {
	return &Parallel{Base: behaviortree.NewBase(name), children: children}
}

func (p *Parallel) Children() []Node { return p.children }

func (p *Parallel) Tick(tc *TickContext) Status {
	anyRunning := false
	anyFailure := false
	for _, c := range p.children {
		switch c.Tick(tc) {
		case StatusFailure:
			anyFailure = true
		case StatusRunning:
			anyRunning = true
		}
	}
	switch {
	case anyFailure:
		return p.Stamp(tc, StatusFailure)
	case anyRunning:
		return p.Stamp(tc, StatusRunning)
	default:
		return p.Stamp(tc, StatusSuccess)
	}
}

// ScoreFunc evaluates a UtilitySelector child's desirability given the
// current blackboard.
type ScoreFunc func(tc *TickContext) float32

// UtilitySelector evaluates each child's ScoreFunc and ticks the argmax,
// ties broken by first index. Raw argmax, no "valid child" filtering: a
// child is still chosen when every score is zero or negative (the highest,
// i.e. least negative, score wins).
type UtilitySelector struct {
	behaviortree.Base
	children []Node
	scorers  []ScoreFunc
}

// NewUtilitySelector builds a UtilitySelector. children and scorers must
// be the same length and are paired by index.
func NewUtilitySelector(name string, children []Node, scorers []ScoreFunc) *UtilitySelector {
	return &UtilitySelector{Base: behaviortree.NewBase(name), children: children, scorers: scorers}
}

func (u *UtilitySelector) Children() []Node { return u.children }

func (u *UtilitySelector) Tick(tc *TickContext) Status {
	if len(u.children) == 0 {
		return u.Stamp(tc, StatusFailure)
	}
	best := 0
	bestScore := u.scorers[0](tc)
	for i := 1; i < len(u.children); i++ {
		s := u.scorers[i](tc)
		if s > bestScore {
			bestScore = s
			best = i
		}
	}
	return u.Stamp(tc, u.children[best].Tick(tc))
}
