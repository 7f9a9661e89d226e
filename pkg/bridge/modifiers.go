package bridge

import "github.com/jihwankim/roguelike-ai-core/pkg/intensity"

// Modifier ids the host's enemy config may attach to a spawned enemy.
// Enumerated per `src/core/integration/enemy_ai_bridge.h`'s richer
// modifier table (spec.md's §4.10 is a one-paragraph summary; this fills
// in the modifier→intensity-preset mapping it only gestures at).
const (
	ModifierBerserker = "berserker"
	ModifierCautious  = "cautious"
	ModifierAmbusher  = "ambusher"
	ModifierElite     = "elite"
	ModifierBoss      = "boss"
)

// modifierTier maps a known modifier id to the intensity tier it forces
// on application (spec.md §4.10 "Modifier application: update intensity
// presets for known modifier ids (e.g., berserker→Aggressive,
// cautious→Passive)"). Unknown modifier ids are a no-op, not an error.
var modifierTier = map[string]intensity.Tier{
	ModifierBerserker: intensity.Aggressive,
	ModifierCautious:  intensity.Passive,
	ModifierAmbusher:  intensity.Standard,
	ModifierElite:     intensity.Aggressive,
	ModifierBoss:      intensity.Frenzied,
}
