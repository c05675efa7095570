package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/mindwellhq/mindwell/internal/apperror"
	"github.com/mindwellhq/mindwell/internal/model"
	"github.com/mindwellhq/mindwell/internal/repository"
)

// compile-time check that *DB implements repository.UserRepository
var _ repository.UserRepository = (*DB)(nil)

const userColumns = `id, username, password_hash, email, is_premium,
	stripe_customer_id, stripe_subscription_id`

// CreateUser inserts a new user and fills in the assigned id. New users are
// never premium; the is_premium column defaults to 0 regardless of what the
// passed struct says.
//
// The UNIQUE COLLATE NOCASE index on username turns a case-insensitive
// duplicate into a constraint violation, which we translate to ErrConflict.
// The service layer checks for duplicates first, but the store must not
// assume that happened.
func (db *DB) CreateUser(ctx context.Context, user *model.User) error {
	res, err := db.conn.ExecContext(ctx,
		`INSERT INTO users (username, password_hash, email)
		 VALUES (?, ?, ?)`,
		user.Username, user.PasswordHash, user.Email,
	)
	if err != nil {
		// modernc.org/sqlite surfaces constraint violations as plain errors;
		// the message is the only discriminator available.
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return apperror.Conflict(fmt.Sprintf("username %q is already taken", user.Username))
		}
		return fmt.Errorf("sqlite: inserting user %q: %w", user.Username, err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("sqlite: reading new user id: %w", err)
	}
	user.ID = id
	user.IsPremium = false

	return nil
}

// GetUserByID retrieves a user by id. Returns apperror.ErrNotFound if absent.
func (db *DB) GetUserByID(ctx context.Context, id int64) (*model.User, error) {
	row := db.conn.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = ?`, id)

	user, err := scanUser(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("user", id)
		}
		return nil, fmt.Errorf("sqlite: getting user %d: %w", id, err)
	}
	return user, nil
}

// GetUserByUsername retrieves a user by username, matching case-insensitively
// (the column collation makes plain = a NOCASE comparison).
func (db *DB) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	row := db.conn.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE username = ?`, username)

	user, err := scanUser(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFoundName("user", username)
		}
		return nil, fmt.Errorf("sqlite: getting user %q: %w", username, err)
	}
	return user, nil
}

// UpdateUserPremiumStatus flips the premium flag and returns the updated record.
// The single UPDATE is atomic under SQLite's writer serialization, so
// concurrent premium transitions can't produce a lost update.
func (db *DB) UpdateUserPremiumStatus(ctx context.Context, id int64, premium bool) (*model.User, error) {
	res, err := db.conn.ExecContext(ctx,
		`UPDATE users SET is_premium = ? WHERE id = ?`, premium, id)
	if err != nil {
		return nil, fmt.Errorf("sqlite: updating premium status for user %d: %w", id, err)
	}
	if err := requireRowAffected(res, "user", id); err != nil {
		return nil, err
	}
	return db.GetUserByID(ctx, id)
}

// UpdateUserStripeInfo records the external billing references. Premium is NOT
// granted here — that happens via UpdatePremiumStatus when the payment
// processor confirms the payment.
func (db *DB) UpdateUserStripeInfo(ctx context.Context, id int64, customerID, subscriptionID string) (*model.User, error) {
	res, err := db.conn.ExecContext(ctx,
		`UPDATE users SET stripe_customer_id = ?, stripe_subscription_id = ? WHERE id = ?`,
		customerID, subscriptionID, id)
	if err != nil {
		return nil, fmt.Errorf("sqlite: updating stripe info for user %d: %w", id, err)
	}
	if err := requireRowAffected(res, "user", id); err != nil {
		return nil, err
	}
	return db.GetUserByID(ctx, id)
}

// scanUser reads one user row. Shared by every SELECT above; the column
// order must match userColumns.
func scanUser(row *sql.Row) (*model.User, error) {
	var u model.User
	err := row.Scan(
		&u.ID,
		&u.Username,
		&u.PasswordHash,
		&u.Email,
		&u.IsPremium,
		&u.StripeCustomerID,
		&u.StripeSubscriptionID,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// requireRowAffected turns a zero-rows-affected UPDATE/DELETE into NotFound.
func requireRowAffected(res sql.Result, resource string, id int64) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	if n == 0 {
		return apperror.NotFound(resource, id)
	}
	return nil
}
