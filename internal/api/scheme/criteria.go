package scheme

import (
	"net/url"
	"sort"
	"strconv"
	"strings"

	"YojanaSetu/internal/entity"
)

// Recognized filter query keys. This is the shareable representation of
// FilterCriteria; values written with EncodeCriteria read back identically
// through ParseCriteria.
const (
	ParamCategory       = "category"
	ParamEligibility    = "eligibility"
	ParamSchemeTypes    = "scheme_types"
	ParamIncomeLevel    = "income_level"
	ParamMinAge         = "min_age"
	ParamMaxAge         = "max_age"
	ParamLocation       = "location"
	ParamUsePreferences = "use_preferences"
)

var criteriaParams = []string{
	ParamCategory,
	ParamEligibility,
	ParamSchemeTypes,
	ParamIncomeLevel,
	ParamMinAge,
	ParamMaxAge,
	ParamLocation,
	ParamUsePreferences,
}

func HasCriteriaParams(values url.Values) bool {
	for _, key := range criteriaParams {
		if values.Get(key) != "" {
			return true
		}
	}
	return false
}

// ParseCriteria reads the recognized keys, silently defaulting anything
// malformed. Unknown keys are ignored.
func ParseCriteria(values url.Values) entity.FilterCriteria {
	criteria := entity.DefaultFilterCriteria()

	criteria.Categories = splitParam(values.Get(ParamCategory))
	criteria.Eligibility = splitParam(values.Get(ParamEligibility))
	criteria.SchemeTypes = splitParam(values.Get(ParamSchemeTypes))

	if v := values.Get(ParamIncomeLevel); v != "" {
		criteria.IncomeLevel = v
	}
	if v := values.Get(ParamLocation); v != "" {
		criteria.Location = v
	}

	minAge := parseAge(values.Get(ParamMinAge))
	maxAge := parseAge(values.Get(ParamMaxAge))
	if minAge != nil || maxAge != nil {
		criteria.AgeRange = &entity.AgeRange{Min: minAge, Max: maxAge}
	}

	criteria.UsePreferences = values.Get(ParamUsePreferences) == "true"

	return NormalizeCriteria(criteria)
}

// EncodeCriteria produces the canonical query string: unset fields are
// omitted, set values are sorted and comma-joined, and key order is fixed
// by url.Values encoding. Encoding the same criteria twice always yields
// the same string.
func EncodeCriteria(criteria entity.FilterCriteria) string {
	return CriteriaValues(criteria).Encode()
}

func CriteriaValues(criteria entity.FilterCriteria) url.Values {
	criteria = NormalizeCriteria(criteria)
	values := url.Values{}

	if len(criteria.Categories) > 0 {
		values.Set(ParamCategory, strings.Join(criteria.Categories, ","))
	}
	if len(criteria.Eligibility) > 0 {
		values.Set(ParamEligibility, strings.Join(criteria.Eligibility, ","))
	}
	if len(criteria.SchemeTypes) > 0 {
		values.Set(ParamSchemeTypes, strings.Join(criteria.SchemeTypes, ","))
	}
	if criteria.IncomeLevel != entity.AnySentinel {
		values.Set(ParamIncomeLevel, criteria.IncomeLevel)
	}
	if criteria.AgeRange != nil {
		if criteria.AgeRange.Min != nil {
			values.Set(ParamMinAge, strconv.Itoa(*criteria.AgeRange.Min))
		}
		if criteria.AgeRange.Max != nil {
			values.Set(ParamMaxAge, strconv.Itoa(*criteria.AgeRange.Max))
		}
	}
	if criteria.Location != entity.AnySentinel {
		values.Set(ParamLocation, criteria.Location)
	}
	if criteria.UsePreferences {
		values.Set(ParamUsePreferences, "true")
	}

	return values
}

// NormalizeCriteria sorts and dedupes the set-valued fields and restores
// the sentinels, so that two criteria holding the same logical filters
// serialize and compare identically.
func NormalizeCriteria(criteria entity.FilterCriteria) entity.FilterCriteria {
	criteria.Categories = normalizeSet(criteria.Categories)
	criteria.Eligibility = normalizeSet(criteria.Eligibility)
	criteria.SchemeTypes = normalizeSet(criteria.SchemeTypes)

	if criteria.IncomeLevel == "" {
		criteria.IncomeLevel = entity.AnySentinel
	}
	if criteria.Location == "" {
		criteria.Location = entity.AnySentinel
	}
	if criteria.AgeRange != nil && criteria.AgeRange.Min == nil && criteria.AgeRange.Max == nil {
		criteria.AgeRange = nil
	}

	return criteria
}

func splitParam(raw string) []string {
	if raw == "" {
		return []string{}
	}
	return normalizeSet(strings.Split(raw, ","))
}

func normalizeSet(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

func parseAge(raw string) *int {
	if raw == "" {
		return nil
	}
	age, err := strconv.Atoi(raw)
	if err != nil || age < 0 || age > 120 {
		return nil
	}
	return &age
}
