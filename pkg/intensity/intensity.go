// Package intensity implements the per-agent intensity state machine: a
// continuous score decayed toward baseline and nudged by proximity and
// combat triggers, mapped to a hysteresis-gated tier (spec.md §4.5).
package intensity

// Tier is one of the four behavior intensity bands.
type Tier int

const (
	Passive Tier = iota
	Standard
	Aggressive
	Frenzied
	tierCount
)

func (t Tier) String() string {
	switch t {
	case Passive:
		return "Passive"
	case Standard:
		return "Standard"
	case Aggressive:
		return "Aggressive"
	case Frenzied:
		return "Frenzied"
	default:
		return "Unknown"
	}
}

// Tunables holds a tier's gameplay multipliers (spec.md §6 config).
type Tunables struct {
	ActionFreqMult float32
	MoveSpeedMult  float32
	CooldownMult   float32
}

// Profiles maps each tier to its tunables, matching the defaults in
// spec.md §4.5/§6.
var Profiles = [tierCount]Tunables{
	Passive:    {ActionFreqMult: 0.80, MoveSpeedMult: 0.90, CooldownMult: 1.10},
	Standard:   {ActionFreqMult: 1.00, MoveSpeedMult: 1.00, CooldownMult: 1.00},
	Aggressive: {ActionFreqMult: 1.25, MoveSpeedMult: 1.15, CooldownMult: 0.85},
	Frenzied:   {ActionFreqMult: 1.55, MoveSpeedMult: 1.25, CooldownMult: 0.70},
}

// Profile returns tier's tunables. The zero Tunables is returned for an
// out-of-range tier.
func Profile(tier Tier) Tunables {
	if tier < 0 || tier >= tierCount {
		return Tunables{}
	}
	return Profiles[tier]
}

const (
	scoreMin        = 0.0
	scoreMax        = 3.5
	bandBoundaryLo  = 0.5
	bandBoundaryMid = 1.5
	bandBoundaryHi  = 2.5

	passiveBandCenter    = 0.25
	standardBandCenter   = 1.0
	aggressiveBandCenter = 2.0
	frenziedBandCenter   = 3.0

	cooldownResetMs = 1200.0
)

func bandForScore(score float32) Tier {
	switch {
	case score < bandBoundaryLo:
		return Passive
	case score < bandBoundaryMid:
		return Standard
	case score < bandBoundaryHi:
		return Aggressive
	default:
		return Frenzied
	}
}

func bandCenter(tier Tier) float32 {
	switch tier {
	case Passive:
		return passiveBandCenter
	case Standard:
		return standardBandCenter
	case Aggressive:
		return aggressiveBandCenter
	default:
		return frenziedBandCenter
	}
}

// State is one agent's intensity machine: a continuous score, its
// derived tier, and the hysteresis cooldown gating tier changes.
type State struct {
	Score      float32
	Tier       Tier
	CooldownMs float32
}

// New creates a State starting at the Standard band center.
func New() *State {
	return &State{Score: standardBandCenter, Tier: Standard}
}

// Force sets tier directly, snapping Score to tier's numeric value and
// clearing any pending cooldown (spec.md §4.10 modifier application uses
// this to pin a boss/elite/modifier tier).
func (s *State) Force(tier Tier) {
	if tier < 0 || tier >= tierCount {
		return
	}
	s.Tier = tier
	s.Score = float32(tier)
	s.CooldownMs = 0
}

// Inputs bundles the per-tick signals the update formula consumes
// (spec.md §4.5).
type Inputs struct {
	DistSqToPlayer   float32
	PlayerLowHealth  bool
	PackDeathRecent  bool
	PlayerHighHealth bool
}

// Update advances the state by dtMs milliseconds per spec.md §4.5's
// five-step formula: drift toward baseline, proximity/combat triggers,
// calm-condition decay, clamp, then hysteresis-gated tier re-derivation.
// A non-positive dtMs is a no-op.
func (s *State) Update(dtMs float32, in Inputs) {
	if dtMs <= 0 {
		return
	}
	dtS := dtMs * 0.001

	s.Score += (standardBandCenter - s.Score) * (0.25 * dtS)

	if in.DistSqToPlayer < 9.0 {
		s.Score += 1.2 * dtS
	}
	if in.DistSqToPlayer < 2.0 {
		s.Score += 1.8 * dtS
	}
	if in.PlayerLowHealth {
		s.Score += 0.9 * dtS
	}
	if in.PackDeathRecent {
		s.Score += 1.5 * dtS
	}

	if in.PlayerHighHealth && in.DistSqToPlayer > 36.0 {
		decay := float32(1.6) * dtS
		if s.Tier == Frenzied {
			decay *= 2.0
		}
		s.Score -= decay
	}

	if s.Score < scoreMin {
		s.Score = scoreMin
	}
	if s.Score > scoreMax {
		s.Score = scoreMax
	}

	newTier := bandForScore(s.Score)

	if s.CooldownMs > 0 {
		s.CooldownMs -= dtMs
	} else {
		s.CooldownMs = 0
	}

	if newTier != s.Tier && s.CooldownMs <= 0 {
		s.Tier = newTier
		s.CooldownMs = cooldownResetMs
		s.Score = bandCenter(newTier)
	}
}
