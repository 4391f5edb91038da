package matcher

import "YojanaSetu/internal/entity"

// IMatcher narrows a scheme list using free-text heuristics. Eligibility is
// stored as prose, not structured fields, so every dimension here is an
// approximate substring/pattern check: false positives and negatives are
// expected. The contract is AND across dimensions, OR within one, plus
// determinism and monotonic age matching.
type IMatcher interface {
	Match(schemes []entity.Scheme, criteria entity.FilterCriteria) []entity.Scheme
	MatchScheme(scheme entity.Scheme, criteria entity.FilterCriteria) bool
}
