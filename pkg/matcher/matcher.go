package matcher

import (
	"fmt"
	"regexp"
	"strings"

	"YojanaSetu/internal/entity"
)

const (
	ageStep   = 5
	ageWindow = 10
	maxAge    = 120
)

type schemeMatcher struct{}

func New() IMatcher {
	return &schemeMatcher{}
}

func (m *schemeMatcher) Match(schemes []entity.Scheme, criteria entity.FilterCriteria) []entity.Scheme {
	matched := make([]entity.Scheme, 0, len(schemes))
	for _, scheme := range schemes {
		if m.MatchScheme(scheme, criteria) {
			matched = append(matched, scheme)
		}
	}
	return matched
}

// MatchScheme applies every active dimension with AND semantics. A criteria
// value with no active dimension matches everything.
func (m *schemeMatcher) MatchScheme(scheme entity.Scheme, criteria entity.FilterCriteria) bool {
	category := strings.ToLower(scheme.Category)
	eligibility := strings.ToLower(scheme.Eligibility)
	broad := strings.ToLower(scheme.Title + " " + scheme.Description + " " + scheme.Eligibility)

	if len(criteria.Categories) > 0 && !containsAny(category, criteria.Categories) {
		return false
	}

	if len(criteria.SchemeTypes) > 0 && !containsAny(broad, criteria.SchemeTypes) {
		return false
	}

	if len(criteria.Eligibility) > 0 && !matchesAnyTag(eligibility, criteria.Eligibility) {
		return false
	}

	if active(criteria.IncomeLevel) && !strings.Contains(eligibility, strings.ToLower(criteria.IncomeLevel)) {
		return false
	}

	if criteria.AgeRange != nil && !m.matchAgeRange(eligibility, criteria.AgeRange) {
		return false
	}

	if active(criteria.Location) && !strings.Contains(broad, strings.ToLower(criteria.Location)) {
		return false
	}

	return true
}

func active(value string) bool {
	return value != "" && value != entity.AnySentinel
}

func containsAny(haystack string, needles []string) bool {
	for _, needle := range needles {
		needle = strings.ToLower(strings.TrimSpace(needle))
		if needle == "" {
			continue
		}
		if strings.Contains(haystack, needle) {
			return true
		}
	}
	return false
}

// matchesAnyTag compiles each tag into a case-insensitive pattern with its
// metacharacters escaped, so user-supplied text like "farmers (small)" can
// never produce a broken expression. A compile failure degrades the whole
// dimension to match-all.
func matchesAnyTag(eligibility string, tags []string) bool {
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		re, err := regexp.Compile("(?i)" + regexp.QuoteMeta(tag))
		if err != nil {
			return true
		}
		if re.MatchString(eligibility) {
			return true
		}
	}
	return false
}

// matchAgeRange checks free-text age phrases against the requested bounds.
// Candidate phrases are generated downward-inclusive so that narrowing a
// bound can only shrink the candidate set and widening can only grow it;
// that keeps the matcher monotonic even though individual candidates are
// imprecise.
func (m *schemeMatcher) matchAgeRange(eligibility string, ageRange *entity.AgeRange) bool {
	for _, phrase := range agePhraseCandidates(ageRange) {
		if strings.Contains(eligibility, phrase) {
			return true
		}
	}

	for _, pattern := range ageTokenPatterns(ageRange) {
		re, err := regexp.Compile(pattern)
		if err != nil {
			// A broken pattern degrades the dimension to match-all rather
			// than failing the whole query.
			return true
		}
		if re.MatchString(eligibility) {
			return true
		}
	}

	return false
}

// agePhraseCandidates lists the substring candidates for the given bounds.
// A minimum M emits "above i"-style phrases for every i from a small window
// below M up to the age ceiling: a scheme open to anyone "above 55" is open
// to a 56 year old. A maximum X emits "below i" phrases up to a window past
// X, and stepped "{i}-{i+5}" literals cover bracketed ranges.
func agePhraseCandidates(ageRange *entity.AgeRange) []string {
	var candidates []string

	if ageRange.Min != nil {
		min := *ageRange.Min
		start := min - ageWindow
		if start < 0 {
			start = 0
		}
		for i := start; i <= maxAge; i++ {
			candidates = append(candidates,
				fmt.Sprintf("above %d", i),
				fmt.Sprintf("over %d", i),
				fmt.Sprintf("from %d", i),
				fmt.Sprintf("aged %d", i),
			)
		}
		for i := floorStep(start); i <= maxAge-ageStep; i += ageStep {
			candidates = append(candidates, fmt.Sprintf("%d-%d", i, i+ageStep))
		}
	}

	if ageRange.Max != nil {
		max := *ageRange.Max
		end := max + ageWindow
		if end > maxAge {
			end = maxAge
		}
		for i := 1; i <= end; i++ {
			candidates = append(candidates,
				fmt.Sprintf("below %d", i),
				fmt.Sprintf("under %d", i),
				fmt.Sprintf("up to %d", i),
			)
		}
		for i := 0; i <= floorStep(end)-ageStep; i += ageStep {
			candidates = append(candidates, fmt.Sprintf("%d-%d", i, i+ageStep))
		}
	}

	return candidates
}

// ageTokenPatterns emits bare word-boundary integer tokens when both bounds
// are present, covering schemes that state a single qualifying age.
func ageTokenPatterns(ageRange *entity.AgeRange) []string {
	if ageRange.Min == nil || ageRange.Max == nil {
		return nil
	}

	var patterns []string
	for i := *ageRange.Min; i <= *ageRange.Max; i++ {
		patterns = append(patterns, fmt.Sprintf(`\b%d\b`, i))
	}
	return patterns
}

func floorStep(n int) int {
	if n < 0 {
		return 0
	}
	return n - n%ageStep
}
