package authRepository

const (
	queryCreateUser = `
		INSERT INTO users (
			id, email, name, password, state, is_google, created_at, updated_at
		) VALUES (
			:id, :email, :name, :password, :state, :is_google, :created_at, :updated_at
		)
	`

	queryGetUserByID = `
		SELECT
			id, email, name, password, state, is_google, created_at, updated_at
		FROM users
		WHERE id = :id
	`

	queryGetUserByEmail = `
		SELECT
			id, email, name, password, state, is_google, created_at, updated_at
		FROM users
		WHERE email = :email
	`

	queryUpdateUser = `
		UPDATE users
		SET name = :name,
			state = :state,
			updated_at = :updated_at
		WHERE id = :id
	`

	queryDeleteUser = `
		DELETE FROM users
		WHERE id = :id
	`
)
