package services

import (
	"regexp"

	"github.com/sevacare/caregiver-match/internal/domain/entities"
)

// ControlledSpecializations is the fixed vocabulary of specialization
// labels the system recognizes. Free-text specialties outside this list
// are dropped at the extraction boundary.
var ControlledSpecializations = []string{
	"Cardiology",
	"Neurology",
	"Respiratory Care",
	"General Medicine",
	"Pediatrics",
	"Gynecology",
	"Maternal Care",
	"Orthopedics",
	"Physiotherapy",
	"Dermatology",
	"Mental Health",
	"Diabetes Care",
	"Elder Care",
	"Community Health",
}

// IntentRule maps a recognized topic to the structured intent it implies.
// Rules are evaluated in table order and the first match wins, so severe
// topics must precede generic ones: "chest pain" has to hit Cardiology/high
// before "pain" could drown it in a generic entry.
type IntentRule struct {
	Topic           string
	Keywords        []string
	Pattern         *regexp.Regexp
	Specializations []string
	ProviderType    entities.ProviderType
	Urgency         entities.Urgency
	Symptoms        []string
	// Severe topics escalate to emergency (not just high) when the query
	// also carries an emergency marker.
	Severe bool
}

// EmergencyMarkers force-escalate urgency regardless of which rule (or no
// rule) matched. Deliberately a coarse substring check; see the known
// precision limitation in DESIGN.md.
var EmergencyMarkers = []string{
	"emergency",
	"severe",
	"critical",
	"can't breathe",
	"immediate",
}

// DefaultIntentRules returns the ordered keyword table used by the pattern
// extraction strategy. Keywords carry Hindi (Devanagari and common
// transliterated) variants alongside English.
func DefaultIntentRules() []IntentRule {
	return []IntentRule{
		{
			Topic:           "cardiac",
			Keywords:        []string{"chest pain", "heart attack", "palpitation", "heart pain", "सीने में दर्द", "दिल का दौरा"},
			Pattern:         regexp.MustCompile(`(?i)\b(chest|heart)\s+(pain|ache)`),
			Specializations: []string{"Cardiology"},
			ProviderType:    entities.ProviderTypeDoctor,
			Urgency:         entities.UrgencyHigh,
			Symptoms:        []string{"chest pain"},
			Severe:          true,
		},
		{
			Topic:           "neurological",
			Keywords:        []string{"stroke", "seizure", "paralysis", "fainted", "unconscious", "लकवा", "मिर्गी", "बेहोश"},
			Specializations: []string{"Neurology"},
			ProviderType:    entities.ProviderTypeDoctor,
			Urgency:         entities.UrgencyHigh,
			Symptoms:        []string{"stroke", "seizure"},
			Severe:          true,
		},
		{
			Topic:           "respiratory",
			Keywords:        []string{"can't breathe", "cannot breathe", "breathless", "shortness of breath", "asthma", "सांस लेने में", "दमा"},
			Specializations: []string{"Respiratory Care"},
			ProviderType:    entities.ProviderTypeDoctor,
			Urgency:         entities.UrgencyHigh,
			Symptoms:        []string{"breathing difficulty"},
			Severe:          true,
		},
		{
			Topic:           "maternity",
			Keywords:        []string{"delivery", "antenatal", "labour pain", "labor pain", "गर्भवती", "प्रसव"},
			Pattern:         regexp.MustCompile(`(?i)pregnan(t|cy)`),
			Specializations: []string{"Gynecology", "Maternal Care"},
			ProviderType:    entities.ProviderTypeDoctor,
			Urgency:         entities.UrgencyMedium,
			Symptoms:        []string{"pregnancy care"},
		},
		{
			Topic:           "orthopedic",
			Keywords:        []string{"fracture", "broken bone", "sprain", "dislocated", "हड्डी टूट", "मोच"},
			Specializations: []string{"Orthopedics"},
			ProviderType:    entities.ProviderTypeDoctor,
			Urgency:         entities.UrgencyMedium,
			Symptoms:        []string{"fracture"},
		},
		{
			Topic:           "mental-health",
			Keywords:        []string{"anxiety", "depression", "depressed", "panic attack", "stress", "counselling", "counseling", "तनाव", "अवसाद", "चिंता"},
			Specializations: []string{"Mental Health"},
			ProviderType:    entities.ProviderTypeTherapist,
			Urgency:         entities.UrgencyMedium,
			Symptoms:        []string{"anxiety", "low mood"},
		},
		{
			Topic:           "musculoskeletal",
			Keywords:        []string{"back pain", "joint pain", "knee pain", "neck pain", "physiotherapy", "कमर दर्द", "जोड़ों का दर्द", "घुटने"},
			Specializations: []string{"Physiotherapy", "Orthopedics"},
			ProviderType:    entities.ProviderTypeTherapist,
			Urgency:         entities.UrgencyLow,
			Symptoms:        []string{"back pain", "joint pain"},
		},
		{
			Topic:           "pediatric",
			Keywords:        []string{"child", "baby", "infant", "my son", "my daughter", "बच्चा", "बच्चे", "शिशु"},
			Specializations: []string{"Pediatrics"},
			ProviderType:    entities.ProviderTypeDoctor,
			Urgency:         entities.UrgencyMedium,
			Symptoms:        []string{"child illness"},
		},
		{
			Topic:           "dermatology",
			Keywords:        []string{"rash", "itching", "skin problem", "acne", "pimple", "खुजली", "त्वचा", "दाने"},
			Specializations: []string{"Dermatology"},
			ProviderType:    entities.ProviderTypeDoctor,
			Urgency:         entities.UrgencyLow,
			Symptoms:        []string{"skin rash"},
		},
		{
			Topic:           "diabetes",
			Keywords:        []string{"diabetes", "blood sugar", "sugar level", "insulin", "मधुमेह", "शुगर"},
			Specializations: []string{"Diabetes Care", "General Medicine"},
			ProviderType:    entities.ProviderTypeDoctor,
			Urgency:         entities.UrgencyMedium,
			Symptoms:        []string{"diabetes"},
		},
		{
			Topic:           "elder-care",
			Keywords:        []string{"elderly", "old age", "bedridden", "home nursing", "home care", "बुजुर्ग", "बुज़ुर्ग"},
			Specializations: []string{"Elder Care"},
			ProviderType:    entities.ProviderTypeNurse,
			Urgency:         entities.UrgencyLow,
			Symptoms:        []string{"elder care"},
		},
		{
			Topic:           "nursing-procedure",
			Keywords:        []string{"injection", "dressing", "wound", "drip", "catheter", "इंजेक्शन", "पट्टी", "घाव"},
			Specializations: []string{"General Medicine"},
			ProviderType:    entities.ProviderTypeNurse,
			Urgency:         entities.UrgencyLow,
			Symptoms:        []string{"wound care"},
		},
		{
			Topic:           "community-health",
			Keywords:        []string{"vaccination", "immunization", "health camp", "health checkup camp", "टीकाकरण", "टीका"},
			Specializations: []string{"Community Health"},
			ProviderType:    entities.ProviderTypeCommunityWorker,
			Urgency:         entities.UrgencyLow,
			Symptoms:        []string{"vaccination"},
		},
		// Generic febrile/common complaints stay last so the specific
		// topics above are never shadowed.
		{
			Topic:           "general",
			Keywords:        []string{"fever", "cold", "cough", "flu", "headache", "vomiting", "diarrhea", "stomach pain", "weakness", "बुखार", "खांसी", "सिरदर्द", "उल्टी", "दस्त", "पेट दर्द", "कमजोरी"},
			Specializations: []string{"General Medicine"},
			ProviderType:    entities.ProviderTypeDoctor,
			Urgency:         entities.UrgencyMedium,
			Symptoms:        []string{"fever", "general illness"},
		},
	}
}
