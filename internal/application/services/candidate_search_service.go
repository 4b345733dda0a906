package services

import (
	"context"
	"time"

	"github.com/sevacare/caregiver-match/internal/domain/entities"
	"github.com/sevacare/caregiver-match/internal/domain/repositories"
	"github.com/sevacare/caregiver-match/internal/infrastructure/observability"
	apperrors "github.com/sevacare/caregiver-match/pkg/errors"
)

// Confidence below this widens the net with an experience-ranked top-up
// stage when the targeted stages come back thin.
const looseMatchConfidence = 0.7

// CandidateSearchOptions tune the cascade. Zero values fall back to the
// defaults the HTTP service configures from the environment.
type CandidateSearchOptions struct {
	TargetCandidates int
	BioTermLimit     int
	StageTimeout     time.Duration
}

func (o CandidateSearchOptions) withDefaults() CandidateSearchOptions {
	if o.TargetCandidates <= 0 {
		o.TargetCandidates = 10
	}
	if o.BioTermLimit <= 0 {
		o.BioTermLimit = 3
	}
	if o.StageTimeout <= 0 {
		o.StageTimeout = 2 * time.Second
	}
	return o
}

// CandidateSearchService runs the cascading candidate search: each stage
// is tried in order until enough candidates accumulate, individual stage
// failures degrade rather than abort, and only a completely dark store
// surfaces as an error.
type CandidateSearchService struct {
	repo repositories.CaregiverRepository
	opts CandidateSearchOptions
}

// NewCandidateSearchService creates the search service.
func NewCandidateSearchService(repo repositories.CaregiverRepository, opts CandidateSearchOptions) *CandidateSearchService {
	return &CandidateSearchService{repo: repo, opts: opts.withDefaults()}
}

// searchStage is one rung of the cascade.
type searchStage struct {
	name string
	run  func(ctx context.Context) ([]*entities.Caregiver, error)
}

// Search accumulates candidates stage by stage. The returned fallbackUsed
// flag is true only when every targeted stage produced nothing and the
// generic stage had to supply the results.
func (s *CandidateSearchService) Search(ctx context.Context, intent *entities.MedicalIntent) ([]*entities.Caregiver, bool, error) {
	logger := observability.LoggerFromContext(ctx)
	target := s.opts.TargetCandidates

	stages := s.buildStages(intent)

	var (
		candidates []*entities.Caregiver
		seen       = make(map[string]struct{})
		stagesRun  int
		stageErrs  int
	)

	collect := func(found []*entities.Caregiver) {
		for _, c := range found {
			if c == nil {
				continue
			}
			if c.ID != "" {
				if _, dup := seen[c.ID]; dup {
					continue
				}
				seen[c.ID] = struct{}{}
			}
			candidates = append(candidates, c)
		}
	}

	for _, stage := range stages {
		if len(candidates) >= target {
			break
		}
		stagesRun++

		stageCtx, cancel := context.WithTimeout(ctx, s.opts.StageTimeout)
		found, err := stage.run(stageCtx)
		cancel()

		if err != nil {
			stageErrs++
			logger.Warn().
				Err(err).
				Str("stage", stage.name).
				Msg("candidate search stage failed, continuing cascade")
			continue
		}
		collect(found)
	}

	// A low-confidence interpretation earns a wider net: top experienced
	// caregivers regardless of specialty. When the targeted stages found
	// nothing at all this is effectively the generic fallback firing
	// early, and the caller is told so.
	fallbackUsed := false
	if intent.Confidence < looseMatchConfidence && len(candidates) < target {
		hadTargeted := len(candidates) > 0

		topUpCtx, cancel := context.WithTimeout(ctx, s.opts.StageTimeout)
		found, err := s.repo.FindTopByExperience(topUpCtx, target)
		cancel()

		if err != nil {
			logger.Warn().Err(err).Msg("loose top-up stage failed, continuing cascade")
		} else {
			collect(found)
			if !hadTargeted && len(candidates) > 0 {
				fallbackUsed = true
			}
		}
	}

	if len(candidates) >= target {
		return candidates[:target], fallbackUsed, nil
	}
	if len(candidates) > 0 {
		return candidates, fallbackUsed, nil
	}

	// Every targeted stage came up empty. Before declaring the generic
	// fallback, distinguish an empty store from an unreachable one.
	if stagesRun > 0 && stageErrs == stagesRun {
		return nil, false, apperrors.NewUnavailableError("caregiver store is unreachable", nil)
	}

	fallbackCtx, cancel := context.WithTimeout(ctx, s.opts.StageTimeout)
	defer cancel()

	found, err := s.repo.FindTopByExperience(fallbackCtx, target)
	if err != nil {
		if stageErrs > 0 {
			return nil, false, apperrors.NewUnavailableError("caregiver store is unreachable", err)
		}
		logger.Warn().Err(err).Msg("generic fallback stage failed")
		return []*entities.Caregiver{}, false, nil
	}

	collect(found)
	if len(candidates) == 0 {
		return []*entities.Caregiver{}, false, nil
	}
	return candidates, true, nil
}

func (s *CandidateSearchService) buildStages(intent *entities.MedicalIntent) []searchStage {
	target := s.opts.TargetCandidates
	var stages []searchStage

	if len(intent.Specializations) > 0 {
		specs := intent.Specializations
		stages = append(stages, searchStage{
			name: "specialization",
			run: func(ctx context.Context) ([]*entities.Caregiver, error) {
				return s.repo.FindBySpecializations(ctx, specs, target)
			},
		})
	}

	if intent.ProviderTypeHint != "" && intent.ProviderTypeHint != entities.ProviderTypeAny {
		pt := intent.ProviderTypeHint
		stages = append(stages, searchStage{
			name: "provider-type",
			run: func(ctx context.Context) ([]*entities.Caregiver, error) {
				return s.repo.FindByProviderType(ctx, pt, target)
			},
		})
	}

	terms := intent.SearchTerms()
	if len(terms) > s.opts.BioTermLimit {
		terms = terms[:s.opts.BioTermLimit]
	}
	for _, term := range terms {
		term := term
		stages = append(stages, searchStage{
			name: "bio:" + term,
			run: func(ctx context.Context) ([]*entities.Caregiver, error) {
				return s.repo.FindByBioTerm(ctx, term, intent.Language, target)
			},
		})
	}

	return stages
}
