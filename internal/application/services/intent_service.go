package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sevacare/caregiver-match/internal/domain/entities"
	"github.com/sevacare/caregiver-match/internal/domain/providers"
	"github.com/sevacare/caregiver-match/internal/infrastructure/observability"
)

const (
	patternMatchConfidence    = 0.9
	genericFallbackConfidence = 0.6
)

// PatternExtractor turns a free-text query into a MedicalIntent using the
// ordered keyword/regex rule table. It never fails: unrecognized queries
// produce the generic low-confidence intent carrying the query verbatim so
// the search stages still have something to probe with.
type PatternExtractor struct {
	rules      []IntentRule
	vocabulary []string
}

// NewPatternExtractor creates an extractor over the given rule table. The
// table is injected (not read from package state) so tests can substitute
// alternate tables.
func NewPatternExtractor(rules []IntentRule, vocabulary []string) *PatternExtractor {
	return &PatternExtractor{rules: rules, vocabulary: vocabulary}
}

// Vocabulary returns the controlled specialization labels.
func (e *PatternExtractor) Vocabulary() []string {
	return e.vocabulary
}

// Extract evaluates the query against the rule table in order; the first
// matching rule wins.
func (e *PatternExtractor) Extract(query, language string) *entities.MedicalIntent {
	q := strings.ToLower(strings.TrimSpace(query))

	for _, rule := range e.rules {
		if !ruleMatches(&rule, q) {
			continue
		}
		return &entities.MedicalIntent{
			Symptoms:         append([]string{}, rule.Symptoms...),
			Specializations:  append([]string{}, rule.Specializations...),
			ProviderTypeHint: rule.ProviderType,
			Urgency:          rule.Urgency,
			Confidence:       patternMatchConfidence,
			RawQuery:         query,
			Language:         language,
		}
	}

	return &entities.MedicalIntent{
		Symptoms:         []string{query},
		Specializations:  []string{},
		ProviderTypeHint: entities.ProviderTypeAny,
		Urgency:          entities.UrgencyLow,
		Confidence:       genericFallbackConfidence,
		RawQuery:         query,
		Language:         language,
	}
}

func ruleMatches(rule *IntentRule, loweredQuery string) bool {
	for _, kw := range rule.Keywords {
		if strings.Contains(loweredQuery, kw) {
			return true
		}
	}
	if rule.Pattern != nil && rule.Pattern.MatchString(loweredQuery) {
		return true
	}
	return false
}

// EscalateUrgency applies the emergency-marker post-processing step shared
// by both strategies: any marker raises urgency to at least high, and to
// emergency when the matched topic was itself severe.
func EscalateUrgency(intent *entities.MedicalIntent, rules []IntentRule) {
	q := strings.ToLower(intent.RawQuery)

	marked := false
	for _, m := range EmergencyMarkers {
		if strings.Contains(q, m) {
			marked = true
			break
		}
	}
	if !marked {
		return
	}

	intent.Urgency = entities.MaxUrgency(intent.Urgency, entities.UrgencyHigh)
	for _, rule := range rules {
		if rule.Severe && ruleMatches(&rule, q) {
			intent.Urgency = entities.UrgencyEmergency
			return
		}
	}
}

// LLMExtractor asks the external text-completion backend to interpret the
// query, then validates the reply against the same MedicalIntent shape.
// Every failure mode (transport, non-2xx, no JSON, bad fields) surfaces as
// an error so the caller's combinator can fall back to the pattern
// strategy; nothing here retries.
type LLMExtractor struct {
	provider   providers.TextCompletionProvider
	vocabulary []string
	timeout    time.Duration
}

// NewLLMExtractor creates the LLM extraction strategy.
func NewLLMExtractor(provider providers.TextCompletionProvider, vocabulary []string, timeout time.Duration) *LLMExtractor {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &LLMExtractor{provider: provider, vocabulary: vocabulary, timeout: timeout}
}

type llmIntentPayload struct {
	Symptoms        []string `json:"symptoms"`
	Specializations []string `json:"specializations"`
	ProviderType    string   `json:"provider_type"`
	Urgency         string   `json:"urgency"`
	Confidence      *float64 `json:"confidence"`
}

// Extract calls the completion backend and coerces its reply. Fields the
// reply is missing or gets wrong fall back to the corresponding field of
// defaults (the pattern strategy's intent), not the whole intent.
func (e *LLMExtractor) Extract(ctx context.Context, query, language string, defaults *entities.MedicalIntent) (*entities.MedicalIntent, error) {
	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	prompt := fmt.Sprintf("Patient query: %q\nAllowed specializations: %s\n",
		query, strings.Join(e.vocabulary, ", "))

	text, err := e.provider.Complete(ctx, prompt, language)
	if err != nil {
		return nil, fmt.Errorf("completion call failed: %w", err)
	}

	object, err := extractJSONObject(text)
	if err != nil {
		return nil, err
	}

	var payload llmIntentPayload
	if err := json.Unmarshal([]byte(object), &payload); err != nil {
		return nil, fmt.Errorf("completion reply is not valid JSON: %w", err)
	}

	intent := &entities.MedicalIntent{
		Symptoms:         defaults.Symptoms,
		Specializations:  defaults.Specializations,
		ProviderTypeHint: defaults.ProviderTypeHint,
		Urgency:          defaults.Urgency,
		Confidence:       defaults.Confidence,
		RawQuery:         query,
		Language:         language,
	}

	if symptoms := cleanTerms(payload.Symptoms); len(symptoms) > 0 {
		intent.Symptoms = symptoms
	}
	if specs := e.filterVocabulary(payload.Specializations); len(specs) > 0 {
		intent.Specializations = specs
	}
	if pt := entities.ParseProviderType(payload.ProviderType); payload.ProviderType != "" {
		intent.ProviderTypeHint = pt
	}
	if payload.Urgency != "" {
		intent.Urgency = entities.ParseUrgency(payload.Urgency)
	}
	if payload.Confidence != nil && *payload.Confidence >= 0 && *payload.Confidence <= 1 {
		intent.Confidence = *payload.Confidence
	}

	return intent, nil
}

// filterVocabulary keeps only labels from the controlled vocabulary,
// mapping case-insensitive and substring variants onto the canonical
// label. Unknown specialties are dropped.
func (e *LLMExtractor) filterVocabulary(raw []string) []string {
	var out []string
	seen := make(map[string]struct{})
	for _, r := range raw {
		r = strings.ToLower(strings.TrimSpace(r))
		if r == "" {
			continue
		}
		for _, canonical := range e.vocabulary {
			cl := strings.ToLower(canonical)
			if cl == r || strings.Contains(cl, r) || strings.Contains(r, cl) {
				if _, ok := seen[canonical]; !ok {
					seen[canonical] = struct{}{}
					out = append(out, canonical)
				}
				break
			}
		}
	}
	return out
}

func cleanTerms(raw []string) []string {
	var out []string
	for _, r := range raw {
		r = strings.ToLower(strings.TrimSpace(r))
		if r != "" {
			out = append(out, r)
		}
	}
	return out
}

// extractJSONObject returns the first balanced {...} object in text. The
// completion backend wraps JSON in prose or markdown fences often enough
// that naive unmarshalling of the whole reply is useless.
func extractJSONObject(text string) (string, error) {
	start := strings.IndexByte(text, '{')
	if start < 0 {
		return "", errors.New("completion reply contains no JSON object")
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(text); i++ {
		c := text[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return text[start : i+1], nil
			}
		}
	}
	return "", errors.New("completion reply contains an unterminated JSON object")
}

// IntentService is the extraction entry point: LLM strategy when
// configured, pattern strategy always, urgency escalation on top of
// either, and a short-lived memoization of the result keyed by the
// normalized query and language.
type IntentService struct {
	pattern  *PatternExtractor
	llm      *LLMExtractor
	cache    providers.CacheProvider
	cacheTTL int
}

// NewIntentService creates the intent service. llm and cache may be nil;
// the service degrades to pattern-only, uncached extraction.
func NewIntentService(pattern *PatternExtractor, llm *LLMExtractor, cache providers.CacheProvider, cacheTTLSeconds int) *IntentService {
	if cacheTTLSeconds <= 0 {
		cacheTTLSeconds = 60
	}
	return &IntentService{
		pattern:  pattern,
		llm:      llm,
		cache:    cache,
		cacheTTL: cacheTTLSeconds,
	}
}

// Extract never fails; any internal error degrades to the pattern
// strategy's result.
func (s *IntentService) Extract(ctx context.Context, query, language string) *entities.MedicalIntent {
	language = normalizeLanguage(language)

	cacheKey := "intent:" + language + ":" + strings.ToLower(strings.TrimSpace(query))
	if s.cache != nil {
		if data, err := s.cache.Get(ctx, cacheKey); err == nil {
			var cached entities.MedicalIntent
			if json.Unmarshal(data, &cached) == nil {
				return &cached
			}
		}
	}

	intent := s.pattern.Extract(query, language)

	if s.llm != nil {
		llmIntent, err := s.llm.Extract(ctx, query, language, intent)
		if err != nil {
			observability.LoggerFromContext(ctx).Warn().
				Err(err).
				Str("query", query).
				Msg("llm intent extraction degraded to pattern strategy")
		} else {
			intent = llmIntent
		}
	}

	EscalateUrgency(intent, s.pattern.rules)

	if s.cache != nil {
		if data, err := json.Marshal(intent); err == nil {
			_ = s.cache.Set(ctx, cacheKey, data, s.cacheTTL)
		}
	}

	return intent
}

func normalizeLanguage(language string) string {
	if strings.ToLower(strings.TrimSpace(language)) == "hi" {
		return "hi"
	}
	return "en"
}
