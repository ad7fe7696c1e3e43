package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/finance-flow/internal/logger"
	"github.com/MKhiriev/finance-flow/models"
	"github.com/Masterminds/squirrel"
)

// userRepository is the SQL-backed implementation of [UserRepository].
// It handles account creation, lookup and the token/OTP columns of the
// "users" table.
//
// All methods obtain a context-scoped logger via [logger.FromContext] for
// structured, request-level tracing of database interactions.
type userRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewUserRepository constructs a [UserRepository] backed by the provided
// database connection and logger.
func NewUserRepository(db *DB, logger *logger.Logger) UserRepository {
	logger.Debug().Msg("creating user repository")
	return &userRepository{
		db:     db,
		logger: logger,
	}
}

// CreateUser persists a new user and returns it with the assigned id.
//
// Error handling:
//   - unique violation on email → [ErrDuplicate].
//   - any other driver error → wrapped [ErrExecutingQuery].
func (r *userRepository) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	if user.CreatedAt.IsZero() {
		user.CreatedAt = clock()
	}
	if user.Role == "" {
		user.Role = models.RoleUser
	}

	query, args, err := buildCreateUserQuery(r.db.builder(), user)
	if err != nil {
		return models.User{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if err = r.db.QueryRowContext(ctx, query, args...).Scan(&user.ID); err != nil {
		log.Err(err).Str("func", "*userRepository.CreateUser").Msg("error inserting user")
		return models.User{}, fmt.Errorf("%w: %w", ErrExecutingQuery, r.db.classify(err))
	}

	return user, nil
}

func (r *userRepository) FindUserByID(ctx context.Context, id int64) (models.User, error) {
	return r.findUser(ctx, "id", id)
}

func (r *userRepository) FindUserByEmail(ctx context.Context, email string) (models.User, error) {
	return r.findUser(ctx, "email", email)
}

func (r *userRepository) FindUserByVerificationToken(ctx context.Context, token string) (models.User, error) {
	return r.findUser(ctx, "verification_token", token)
}

func (r *userRepository) FindUserByResetToken(ctx context.Context, token string) (models.User, error) {
	return r.findUser(ctx, "reset_token", token)
}

// findUser looks a single user up by one column. A missing row is reported
// as [ErrNotFound].
func (r *userRepository) findUser(ctx context.Context, column string, value any) (models.User, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildFindUserQuery(r.db.builder(), column, value)
	if err != nil {
		return models.User{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	user, err := scanUser(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, ErrNotFound
	}
	if err != nil {
		log.Err(err).Str("func", "*userRepository.findUser").Str("column", column).Msg("error finding user")
		return models.User{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return user, nil
}

// EmailTakenByOther reports whether email belongs to an account other than
// userID.
func (r *userRepository) EmailTakenByOther(ctx context.Context, email string, userID int64) (bool, error) {
	query, args, err := buildEmailTakenQuery(r.db.builder(), email, userID)
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return r.db.exists(ctx, query, args...)
}

// UpdateUser applies the non-nil fields of changes and returns the fresh row.
func (r *userRepository) UpdateUser(ctx context.Context, userID int64, changes models.UserChanges) (models.User, error) {
	log := logger.FromContext(ctx)

	if !changes.IsEmpty() {
		query, args, err := buildUpdateUserQuery(r.db.builder(), userID, changes)
		if err != nil {
			return models.User{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
		}

		if err = r.db.execAffecting(ctx, query, args...); err != nil {
			log.Err(err).Str("func", "*userRepository.UpdateUser").Int64("user_id", userID).Msg("error updating user")
			return models.User{}, err
		}
	}

	return r.FindUserByID(ctx, userID)
}

// MarkVerified sets is_verified and clears the email verification token.
// Calling it for an already verified user is a no-op.
func (r *userRepository) MarkVerified(ctx context.Context, userID int64) error {
	return r.setFields(ctx, "*userRepository.MarkVerified", squirrel.Eq{"id": userID}, map[string]any{
		"is_verified":        true,
		"verification_token": nil,
	})
}

// SetOTP stores a login passcode, replacing any previous one.
func (r *userRepository) SetOTP(ctx context.Context, userID int64, otp string, expiry time.Time) error {
	return r.setFields(ctx, "*userRepository.SetOTP", squirrel.Eq{"id": userID}, map[string]any{
		"otp":        otp,
		"otp_expiry": expiry.UTC(),
	})
}

// ConsumeOTP clears the passcode only while it still equals otp, so a code
// is accepted at most once. ErrNotFound means it was already used or replaced.
func (r *userRepository) ConsumeOTP(ctx context.Context, userID int64, otp string) error {
	return r.setFields(ctx, "*userRepository.ConsumeOTP", squirrel.Eq{"id": userID, "otp": otp}, map[string]any{
		"otp":        nil,
		"otp_expiry": nil,
	})
}

// SetResetToken stores a password reset token, replacing any previous one.
func (r *userRepository) SetResetToken(ctx context.Context, userID int64, token string, expiry time.Time) error {
	return r.setFields(ctx, "*userRepository.SetResetToken", squirrel.Eq{"id": userID}, map[string]any{
		"reset_token":        token,
		"reset_token_expiry": expiry.UTC(),
	})
}

// ResetPassword replaces the password hash and consumes the reset token.
func (r *userRepository) ResetPassword(ctx context.Context, userID int64, passwordHash string) error {
	return r.setFields(ctx, "*userRepository.ResetPassword", squirrel.Eq{"id": userID}, map[string]any{
		"password":           passwordHash,
		"reset_token":        nil,
		"reset_token_expiry": nil,
	})
}

func (r *userRepository) SetRole(ctx context.Context, email string, role string) error {
	return r.setFields(ctx, "*userRepository.SetRole", squirrel.Eq{"email": email}, map[string]any{
		"role": role,
	})
}

func (r *userRepository) setFields(ctx context.Context, funcName string, where squirrel.Sqlizer, set map[string]any) error {
	log := logger.FromContext(ctx)

	query, args, err := buildSetUserFieldsQuery(r.db.builder(), where, set)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if err = r.db.execAffecting(ctx, query, args...); err != nil {
		if !errors.Is(err, ErrNotFound) {
			log.Err(err).Str("func", funcName).Msg("error updating user")
		}
		return err
	}

	return nil
}

// ListUsers returns every account with the time of its latest recorded
// login, newest accounts first.
func (r *userRepository) ListUsers(ctx context.Context) ([]models.UserOverview, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildListUsersQuery(r.db.builder())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.ListUsers").Msg("error listing users")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	users := make([]models.UserOverview, 0)
	for rows.Next() {
		var (
			u         models.UserOverview
			lastLogin nullTime
		)
		if err = rows.Scan(&u.ID, &u.Name, &u.Email, &u.Role, &u.IsVerified, &u.CreatedAt, &lastLogin); err != nil {
			log.Err(err).Str("func", "*userRepository.ListUsers").Msg("error scanning user row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		u.LastLogin = lastLogin.ptr()
		users = append(users, u)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return users, nil
}

// DeleteUser removes the account; its login history cascades.
func (r *userRepository) DeleteUser(ctx context.Context, id int64) error {
	log := logger.FromContext(ctx)

	query, args, err := buildDeleteQuery(r.db.builder(), tableUsers, squirrel.Eq{"id": id})
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if err = r.db.execAffecting(ctx, query, args...); err != nil {
		if !errors.Is(err, ErrNotFound) {
			log.Err(err).Str("func", "*userRepository.DeleteUser").Int64("user_id", id).Msg("error deleting user")
		}
		return err
	}

	return nil
}

func scanUser(row rowScanner) (models.User, error) {
	var u models.User
	err := row.Scan(
		&u.ID,
		&u.Name,
		&u.Email,
		&u.Phone,
		&u.PasswordHash,
		&u.Avatar,
		&u.Role,
		&u.IsVerified,
		&u.VerificationToken,
		&u.ResetToken,
		&u.ResetTokenExpiry,
		&u.OTP,
		&u.OTPExpiry,
		&u.CreatedAt,
	)
	return u, err
}
