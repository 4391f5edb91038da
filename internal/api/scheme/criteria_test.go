package scheme

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"YojanaSetu/internal/entity"
)

func TestParseCriteria(t *testing.T) {
	t.Run("empty values yield defaults", func(t *testing.T) {
		criteria := ParseCriteria(url.Values{})

		assert.Empty(t, criteria.Categories)
		assert.Empty(t, criteria.Eligibility)
		assert.Empty(t, criteria.SchemeTypes)
		assert.Equal(t, entity.AnySentinel, criteria.IncomeLevel)
		assert.Equal(t, entity.AnySentinel, criteria.Location)
		assert.Nil(t, criteria.AgeRange)
		assert.False(t, criteria.UsePreferences)
	})

	t.Run("sets are split, trimmed, deduped and sorted", func(t *testing.T) {
		values := url.Values{}
		values.Set(ParamCategory, "health, education,health, ,agriculture")

		criteria := ParseCriteria(values)
		assert.Equal(t, []string{"agriculture", "education", "health"}, criteria.Categories)
	})

	t.Run("malformed ages are dropped", func(t *testing.T) {
		for _, raw := range []string{"-1", "121", "abc", "12.5"} {
			values := url.Values{}
			values.Set(ParamMinAge, raw)
			assert.Nil(t, ParseCriteria(values).AgeRange, "min_age=%s", raw)
		}
	})

	t.Run("single-sided age range survives", func(t *testing.T) {
		values := url.Values{}
		values.Set(ParamMaxAge, "18")

		criteria := ParseCriteria(values)
		require.NotNil(t, criteria.AgeRange)
		assert.Nil(t, criteria.AgeRange.Min)
		require.NotNil(t, criteria.AgeRange.Max)
		assert.Equal(t, 18, *criteria.AgeRange.Max)
	})

	t.Run("use_preferences only recognizes true", func(t *testing.T) {
		values := url.Values{}
		values.Set(ParamUsePreferences, "true")
		assert.True(t, ParseCriteria(values).UsePreferences)

		values.Set(ParamUsePreferences, "yes")
		assert.False(t, ParseCriteria(values).UsePreferences)
	})

	t.Run("unknown keys are ignored", func(t *testing.T) {
		values := url.Values{}
		values.Set("page", "3")
		values.Set(ParamLocation, "Bihar")

		criteria := ParseCriteria(values)
		assert.Equal(t, "Bihar", criteria.Location)
	})
}

func TestEncodeCriteria(t *testing.T) {
	t.Run("round trip preserves criteria", func(t *testing.T) {
		minAge, maxAge := 18, 60
		criteria := entity.FilterCriteria{
			Categories:     []string{"health", "education"},
			Eligibility:    []string{"farmers"},
			SchemeTypes:    []string{"subsidy"},
			IncomeLevel:    "low",
			AgeRange:       &entity.AgeRange{Min: &minAge, Max: &maxAge},
			Location:       "Kerala",
			UsePreferences: true,
		}

		encoded := EncodeCriteria(criteria)
		parsed, err := url.ParseQuery(encoded)
		require.NoError(t, err)

		assert.Equal(t, NormalizeCriteria(criteria), ParseCriteria(parsed))
	})

	t.Run("defaults encode to the empty string", func(t *testing.T) {
		assert.Equal(t, "", EncodeCriteria(entity.DefaultFilterCriteria()))
	})

	t.Run("encoding is canonical regardless of input order", func(t *testing.T) {
		a := entity.DefaultFilterCriteria()
		a.Categories = []string{"health", "agriculture"}

		b := entity.DefaultFilterCriteria()
		b.Categories = []string{"agriculture", "health", "agriculture"}

		assert.Equal(t, EncodeCriteria(a), EncodeCriteria(b))
	})

	t.Run("encode then parse then encode is stable", func(t *testing.T) {
		values := url.Values{}
		values.Set(ParamCategory, "z,a,m")
		values.Set(ParamIncomeLevel, "middle")

		first := EncodeCriteria(ParseCriteria(values))
		parsed, err := url.ParseQuery(first)
		require.NoError(t, err)
		assert.Equal(t, first, EncodeCriteria(ParseCriteria(parsed)))
	})
}

func TestNormalizeCriteria(t *testing.T) {
	t.Run("empty strings restore sentinels", func(t *testing.T) {
		criteria := NormalizeCriteria(entity.FilterCriteria{})
		assert.Equal(t, entity.AnySentinel, criteria.IncomeLevel)
		assert.Equal(t, entity.AnySentinel, criteria.Location)
	})

	t.Run("age range with no bounds collapses to nil", func(t *testing.T) {
		criteria := NormalizeCriteria(entity.FilterCriteria{AgeRange: &entity.AgeRange{}})
		assert.Nil(t, criteria.AgeRange)
	})
}

func TestHasCriteriaParams(t *testing.T) {
	assert.False(t, HasCriteriaParams(url.Values{}))

	values := url.Values{}
	values.Set("sort", "title")
	assert.False(t, HasCriteriaParams(values))

	values.Set(ParamEligibility, "farmers")
	assert.True(t, HasCriteriaParams(values))
}
