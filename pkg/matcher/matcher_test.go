package matcher

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"YojanaSetu/internal/entity"
)

func ptr(n int) *int {
	return &n
}

func testSchemes() []entity.Scheme {
	return []entity.Scheme{
		{
			ID:          "scheme-pension",
			Title:       "Senior Citizen Pension Scheme",
			Category:    "Social Welfare",
			Description: "Monthly pension support for the elderly",
			Eligibility: "citizens above 55 years of age with low income",
		},
		{
			ID:          "scheme-scholarship",
			Title:       "Merit Scholarship",
			Category:    "Education",
			Description: "Scholarship for school students",
			Eligibility: "students below 18 years enrolled in government schools",
		},
		{
			ID:          "scheme-farmer",
			Title:       "Kisan Credit Support",
			Category:    "Agriculture",
			Description: "Credit assistance for farmers in Maharashtra",
			Eligibility: "farmers with landholding up to 2 hectares",
		},
		{
			ID:          "scheme-health",
			Title:       "Universal Health Cover",
			Category:    "Health",
			Description: "Cashless treatment for all residents",
			Eligibility: "all citizens aged 18-60 with valid identity proof",
		},
	}
}

func TestMatch(t *testing.T) {
	m := New()

	t.Run("empty criteria matches everything", func(t *testing.T) {
		matched := m.Match(testSchemes(), entity.DefaultFilterCriteria())
		assert.Len(t, matched, len(testSchemes()))
	})

	t.Run("category narrows the result", func(t *testing.T) {
		criteria := entity.DefaultFilterCriteria()
		criteria.Categories = []string{"education"}

		matched := m.Match(testSchemes(), criteria)
		require.Len(t, matched, 1)
		assert.Equal(t, "scheme-scholarship", matched[0].ID)
	})

	t.Run("dimensions combine with AND", func(t *testing.T) {
		criteria := entity.DefaultFilterCriteria()
		criteria.Categories = []string{"agriculture"}
		criteria.Location = "Maharashtra"

		matched := m.Match(testSchemes(), criteria)
		require.Len(t, matched, 1)
		assert.Equal(t, "scheme-farmer", matched[0].ID)

		criteria.Location = "Kerala"
		assert.Empty(t, m.Match(testSchemes(), criteria))
	})

	t.Run("values within a dimension combine with OR", func(t *testing.T) {
		criteria := entity.DefaultFilterCriteria()
		criteria.Categories = []string{"education", "health"}

		matched := m.Match(testSchemes(), criteria)
		assert.Len(t, matched, 2)
	})

	t.Run("deterministic across runs", func(t *testing.T) {
		criteria := entity.DefaultFilterCriteria()
		criteria.Eligibility = []string{"farmers"}

		first := m.Match(testSchemes(), criteria)
		for i := 0; i < 10; i++ {
			assert.Equal(t, first, m.Match(testSchemes(), criteria))
		}
	})
}

func TestMatchSchemeEligibilityTags(t *testing.T) {
	m := New()
	scheme := entity.Scheme{
		Title:       "Small Farmer Support",
		Category:    "Agriculture",
		Eligibility: "farmers (small and marginal) with income below limit",
	}

	t.Run("tag matches case-insensitively", func(t *testing.T) {
		criteria := entity.DefaultFilterCriteria()
		criteria.Eligibility = []string{"FARMERS"}
		assert.True(t, m.MatchScheme(scheme, criteria))
	})

	t.Run("regex metacharacters in tags are literal", func(t *testing.T) {
		criteria := entity.DefaultFilterCriteria()
		criteria.Eligibility = []string{"farmers (small"}
		assert.True(t, m.MatchScheme(scheme, criteria))

		criteria.Eligibility = []string{"farmers (large"}
		assert.False(t, m.MatchScheme(scheme, criteria))
	})
}

func TestMatchSchemeAgeRange(t *testing.T) {
	m := New()
	pension := entity.Scheme{
		Title:       "Senior Citizen Pension Scheme",
		Category:    "Social Welfare",
		Eligibility: "citizens above 55 years of age",
	}

	t.Run("minimum just past the stated bound still matches", func(t *testing.T) {
		criteria := entity.DefaultFilterCriteria()
		criteria.AgeRange = &entity.AgeRange{Min: ptr(56)}
		assert.True(t, m.MatchScheme(pension, criteria))
	})

	t.Run("minimum far above the bound does not match", func(t *testing.T) {
		criteria := entity.DefaultFilterCriteria()
		criteria.AgeRange = &entity.AgeRange{Min: ptr(56)}
		young := entity.Scheme{Eligibility: "students below 18 years"}
		assert.False(t, m.MatchScheme(young, criteria))
	})

	t.Run("widening a bound never loses matches", func(t *testing.T) {
		schemes := testSchemes()
		narrow := entity.DefaultFilterCriteria()
		narrow.AgeRange = &entity.AgeRange{Min: ptr(60)}

		wide := entity.DefaultFilterCriteria()
		wide.AgeRange = &entity.AgeRange{Min: ptr(50)}

		narrowIDs := map[string]struct{}{}
		for _, s := range m.Match(schemes, narrow) {
			narrowIDs[s.ID] = struct{}{}
		}
		wideIDs := map[string]struct{}{}
		for _, s := range m.Match(schemes, wide) {
			wideIDs[s.ID] = struct{}{}
		}

		for id := range narrowIDs {
			assert.Contains(t, wideIDs, id)
		}
	})

	t.Run("bracketed ranges match stepped phrases", func(t *testing.T) {
		criteria := entity.DefaultFilterCriteria()
		criteria.AgeRange = &entity.AgeRange{Min: ptr(20), Max: ptr(40)}
		health := entity.Scheme{Eligibility: "all citizens aged 18-60"}
		assert.True(t, m.MatchScheme(health, criteria))
	})

	t.Run("bare age tokens match when both bounds set", func(t *testing.T) {
		criteria := entity.DefaultFilterCriteria()
		criteria.AgeRange = &entity.AgeRange{Min: ptr(20), Max: ptr(25)}
		scheme := entity.Scheme{Eligibility: "applicants of 23 years with valid id"}
		assert.True(t, m.MatchScheme(scheme, criteria))
	})
}

func TestMatchSchemeIncomeAndLocation(t *testing.T) {
	m := New()
	scheme := entity.Scheme{
		Title:       "Housing Assistance",
		Category:    "Housing",
		Description: "Subsidized housing in Gujarat",
		Eligibility: "families with low income and no existing house",
	}

	t.Run("income level matches against eligibility text", func(t *testing.T) {
		criteria := entity.DefaultFilterCriteria()
		criteria.IncomeLevel = "Low Income"
		assert.True(t, m.MatchScheme(scheme, criteria))

		criteria.IncomeLevel = "high income"
		assert.False(t, m.MatchScheme(scheme, criteria))
	})

	t.Run("any sentinel disables the dimension", func(t *testing.T) {
		criteria := entity.DefaultFilterCriteria()
		criteria.IncomeLevel = entity.AnySentinel
		criteria.Location = entity.AnySentinel
		assert.True(t, m.MatchScheme(scheme, criteria))
	})

	t.Run("location matches across title and description", func(t *testing.T) {
		criteria := entity.DefaultFilterCriteria()
		criteria.Location = "gujarat"
		assert.True(t, m.MatchScheme(scheme, criteria))

		criteria.Location = "Punjab"
		assert.False(t, m.MatchScheme(scheme, criteria))
	})
}
