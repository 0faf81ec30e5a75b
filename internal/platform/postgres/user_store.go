package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/accounthub/accounts-api/internal/domain"
	"github.com/accounthub/accounts-api/internal/platform/logger"
	"github.com/accounthub/accounts-api/internal/store"
)

// UserStore implements the store.UserStore interface using a PostgreSQL
// database as the storage backend.
type UserStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewUserStore creates a new PostgreSQL implementation of the UserStore
// interface. It accepts a database connection or transaction that should be
// initialized and managed by the caller. If logger is nil, a default logger
// will be used.
func NewUserStore(db store.DBTX, log *slog.Logger) *UserStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if log == nil {
		log = slog.Default()
	}

	return &UserStore{
		db:     db,
		logger: log.With(slog.String("component", "user_store")),
	}
}

// Ensure UserStore implements store.UserStore interface
var _ store.UserStore = (*UserStore)(nil)

const userColumns = "id, username, hashed_password, token, session_state, status, created_at, birthday"

// scanUser scans one users row into a domain.User.
func scanUser(row interface{ Scan(dest ...any) error }) (*domain.User, error) {
	var (
		user     domain.User
		session  string
		status   string
		birthday sql.NullTime
	)

	err := row.Scan(
		&user.ID,
		&user.Username,
		&user.HashedPassword,
		&user.Token,
		&session,
		&status,
		&user.CreatedAt,
		&birthday,
	)
	if err != nil {
		return nil, err
	}

	user.Session = domain.SessionState(session)
	user.Status = domain.UserStatus(status)
	if birthday.Valid {
		bd := birthday.Time
		user.Birthday = &bd
	}

	return &user, nil
}

// FindAll implements store.UserStore.FindAll.
// It returns all users ordered by creation time, oldest first.
func (s *UserStore) FindAll(ctx context.Context) ([]*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := fmt.Sprintf(`
		SELECT %s
		FROM users
		ORDER BY created_at, id
	`, userColumns)

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		log.Error("failed to query users", slog.String("error", err.Error()))
		return nil, MapError(err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	var users []*domain.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			log.Error("failed to scan user row", slog.String("error", err.Error()))
			return nil, err
		}
		users = append(users, user)
	}

	if err := rows.Err(); err != nil {
		log.Error("error after scanning rows", slog.String("error", err.Error()))
		return nil, err
	}

	if users == nil {
		users = []*domain.User{}
	}

	log.Debug("listed users", slog.Int("count", len(users)))
	return users, nil
}

// GetByID implements store.UserStore.GetByID.
// Returns store.ErrUserNotFound if the user does not exist.
func (s *UserStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return s.getOne(ctx, "id", id)
}

// GetByUsername implements store.UserStore.GetByUsername.
// Returns store.ErrUserNotFound if the user does not exist.
func (s *UserStore) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	return s.getOne(ctx, "username", username)
}

// GetByToken implements store.UserStore.GetByToken.
// Returns store.ErrUserNotFound if no user carries the token.
func (s *UserStore) GetByToken(ctx context.Context, token string) (*domain.User, error) {
	return s.getOne(ctx, "token", token)
}

// getOne fetches a single user by an exact match on the given column.
// The column name is always one of the fixed lookup keys, never user input.
func (s *UserStore) getOne(ctx context.Context, column string, value any) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := fmt.Sprintf(`
		SELECT %s
		FROM users
		WHERE %s = $1
	`, userColumns, column)

	user, err := scanUser(s.db.QueryRowContext(ctx, query, value))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("user not found", slog.String("lookup", column))
			return nil, store.ErrUserNotFound
		}
		log.Error("failed to get user",
			slog.String("lookup", column),
			slog.String("error", err.Error()))
		return nil, MapError(err)
	}

	return user, nil
}

// Create implements store.UserStore.Create.
// The users_username_key unique index is the authoritative uniqueness guard;
// a violation is surfaced as store.ErrUsernameExists.
func (s *UserStore) Create(ctx context.Context, user *domain.User) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := user.Validate(); err != nil {
		log.Warn("user validation failed during create",
			slog.String("error", err.Error()),
			slog.String("user_id", user.ID.String()))
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	query := `
		INSERT INTO users (id, username, hashed_password, token, session_state, status, created_at, birthday)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		user.ID,
		user.Username,
		user.HashedPassword,
		user.Token,
		string(user.Session),
		string(user.Status),
		user.CreatedAt,
		nullTime(user.Birthday),
	)
	if err != nil {
		if IsUniqueViolation(err) {
			log.Debug("username already taken",
				slog.String("username", user.Username))
			return fmt.Errorf("%w: %v", store.ErrUsernameExists, err)
		}
		log.Error("failed to create user",
			slog.String("error", err.Error()),
			slog.String("user_id", user.ID.String()))
		return MapError(err)
	}

	log.Info("user created",
		slog.String("user_id", user.ID.String()),
		slog.String("username", user.Username))
	return nil
}

// Update implements store.UserStore.Update.
// Returns store.ErrUserNotFound when no row matches the user's ID and
// store.ErrUsernameExists when the new username is already taken.
func (s *UserStore) Update(ctx context.Context, user *domain.User) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := user.Validate(); err != nil {
		log.Warn("user validation failed during update",
			slog.String("error", err.Error()),
			slog.String("user_id", user.ID.String()))
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	query := `
		UPDATE users
		SET username = $1, hashed_password = $2, session_state = $3, status = $4, birthday = $5
		WHERE id = $6
	`
	result, err := s.db.ExecContext(
		ctx,
		query,
		user.Username,
		user.HashedPassword,
		string(user.Session),
		string(user.Status),
		nullTime(user.Birthday),
		user.ID,
	)
	if err != nil {
		if IsUniqueViolation(err) {
			log.Debug("username already taken on update",
				slog.String("user_id", user.ID.String()),
				slog.String("username", user.Username))
			return fmt.Errorf("%w: %v", store.ErrUsernameExists, err)
		}
		log.Error("failed to update user",
			slog.String("error", err.Error()),
			slog.String("user_id", user.ID.String()))
		return MapError(err)
	}

	if err := CheckRowsAffected(result, "user"); err != nil {
		log.Debug("user not found for update",
			slog.String("user_id", user.ID.String()))
		return store.ErrUserNotFound
	}

	log.Debug("user updated", slog.String("user_id", user.ID.String()))
	return nil
}

// nullTime converts an optional time into its database representation.
func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}
