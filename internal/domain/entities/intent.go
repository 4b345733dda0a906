package entities

import "strings"

// Urgency is the ordinal urgency level extracted from a patient query.
type Urgency string

const (
	UrgencyLow       Urgency = "low"
	UrgencyMedium    Urgency = "medium"
	UrgencyHigh      Urgency = "high"
	UrgencyEmergency Urgency = "emergency"
)

var urgencyOrder = map[Urgency]int{
	UrgencyLow:       0,
	UrgencyMedium:    1,
	UrgencyHigh:      2,
	UrgencyEmergency: 3,
}

// Rank returns the ordinal position of the urgency level. Unknown values
// rank as low.
func (u Urgency) Rank() int {
	return urgencyOrder[u]
}

// AtLeast reports whether u is at least as urgent as other.
func (u Urgency) AtLeast(other Urgency) bool {
	return u.Rank() >= other.Rank()
}

// MaxUrgency returns the more urgent of two levels.
func MaxUrgency(a, b Urgency) Urgency {
	if a.Rank() >= b.Rank() {
		return a
	}
	return b
}

// ParseUrgency coerces free-form input to a known urgency, defaulting to low.
func ParseUrgency(s string) Urgency {
	switch Urgency(strings.ToLower(strings.TrimSpace(s))) {
	case UrgencyMedium:
		return UrgencyMedium
	case UrgencyHigh:
		return UrgencyHigh
	case UrgencyEmergency:
		return UrgencyEmergency
	default:
		return UrgencyLow
	}
}

// MedicalIntent is the structured interpretation of a free-text health
// query. It is created once per request and treated as immutable by the
// search and ranking stages.
type MedicalIntent struct {
	Symptoms         []string     `json:"symptoms"`
	Specializations  []string     `json:"specializations"`
	ProviderTypeHint ProviderType `json:"provider_type_hint"`
	Urgency          Urgency      `json:"urgency"`
	Confidence       float64      `json:"confidence"`
	RawQuery         string       `json:"raw_query"`
	Language         string       `json:"language"`
}

// SearchTerms returns the deduplicated sequence of free-text terms the bio
// search stage probes with: symptoms in extraction order, then the raw
// query.
func (m *MedicalIntent) SearchTerms() []string {
	seen := make(map[string]struct{}, len(m.Symptoms)+1)
	terms := make([]string, 0, len(m.Symptoms)+1)
	add := func(t string) {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" {
			return
		}
		if _, ok := seen[t]; ok {
			return
		}
		seen[t] = struct{}{}
		terms = append(terms, t)
	}
	for _, s := range m.Symptoms {
		add(s)
	}
	add(m.RawQuery)
	return terms
}
