package onboarding

import (
	"maps"
	"sort"
)

// Presence is the bit flag recorded for a field as the session progresses.
type Presence uint8

const (
	PresenceSeen           Presence = 1 << iota // Field was written by the user.
	PresenceWasNull                             // Last write cleared the field.
	PresenceDefaultApplied                      // Value came from a default, not the user.
)

// PresenceMap maps field keys ("email", "perSkillExperience/Go") to flags.
type PresenceMap map[string]Presence

// DefaultPresence marks the fields a new record pre-fills.
func DefaultPresence() PresenceMap {
	return PresenceMap{
		FieldSalaryExpectation:    PresenceDefaultApplied,
		FieldRemoteWorkPreference: PresenceDefaultApplied,
	}
}

// Has reports whether all bits of flag are set for field.
func (pm PresenceMap) Has(field string, flag Presence) bool {
	return pm[field]&flag == flag
}

// Touched returns the sorted fields the user has written.
func (pm PresenceMap) Touched() []string {
	var out []string
	for f, p := range pm {
		if p&PresenceSeen != 0 {
			out = append(out, f)
		}
	}
	sort.Strings(out)
	return out
}

// Clone returns a copy of the map.
func (pm PresenceMap) Clone() PresenceMap { return maps.Clone(pm) }
