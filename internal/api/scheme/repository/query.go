package schemeRepository

const (
	queryGetAllSchemes = `
		SELECT
			id, title, category, description, eligibility, benefits,
			application_process, documents, deadline, website,
			created_at, updated_at
		FROM schemes
		ORDER BY created_at DESC
	`

	queryGetSchemeByID = `
		SELECT
			id, title, category, description, eligibility, benefits,
			application_process, documents, deadline, website,
			created_at, updated_at
		FROM schemes
		WHERE id = :id
	`

	queryGetFAQsBySchemeID = `
		SELECT
			id, scheme_id, question, answer, created_at
		FROM scheme_faqs
		WHERE scheme_id = :scheme_id
		ORDER BY created_at DESC
	`

	queryGetPreferenceProfile = `
		SELECT
			user_id, categories, eligibility, scheme_types, income_level,
			min_age, max_age, location, use_preferences, updated_at
		FROM preference_profiles
		WHERE user_id = :user_id
	`

	queryUpsertPreferenceProfile = `
		INSERT INTO preference_profiles (
			user_id, categories, eligibility, scheme_types, income_level,
			min_age, max_age, location, use_preferences, updated_at
		) VALUES (
			:user_id, :categories, :eligibility, :scheme_types, :income_level,
			:min_age, :max_age, :location, :use_preferences, :updated_at
		)
		ON CONFLICT (user_id) DO UPDATE SET
			categories = :categories,
			eligibility = :eligibility,
			scheme_types = :scheme_types,
			income_level = :income_level,
			min_age = :min_age,
			max_age = :max_age,
			location = :location,
			use_preferences = :use_preferences,
			updated_at = :updated_at
	`

	queryIsBookmarked = `
		SELECT COUNT(*)
		FROM bookmarks
		WHERE user_id = :user_id AND scheme_id = :scheme_id
	`

	queryGetBookmarkedSchemeIDs = `
		SELECT scheme_id
		FROM bookmarks
		WHERE user_id = :user_id
		ORDER BY created_at DESC
	`

	queryCreateBookmark = `
		INSERT INTO bookmarks (
			id, user_id, scheme_id, created_at
		) VALUES (
			:id, :user_id, :scheme_id, :created_at
		)
	`

	queryDeleteBookmark = `
		DELETE FROM bookmarks
		WHERE user_id = :user_id AND scheme_id = :scheme_id
	`
)
