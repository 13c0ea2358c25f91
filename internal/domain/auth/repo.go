package auth

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// ErrAuthFailure возвращается и для неизвестного логина, и для неверного пароля.
var ErrAuthFailure = errors.New("auth: invalid username or password")

const timeLayout = "2006-01-02 15:04:05"

type Repo struct{ db *sql.DB }

func NewRepo(db *sql.DB) *Repo { return &Repo{db: db} }

func (r *Repo) DB() *sql.DB { return r.db }

// Authenticate сверяет пароль по bcrypt-хэшу и при успехе дописывает одну строку
// в журнал входов. Без блокировок и подсчёта попыток — повтор разрешён.
func (r *Repo) Authenticate(ctx context.Context, username, password string) (*User, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, username, password_hash, role, unit, full_name, created_at
		FROM users WHERE username = ?
	`, username)

	var (
		u       User
		hash    string
		unit    sql.NullString
		created string
	)
	if err := row.Scan(&u.ID, &u.Username, &hash, &u.Role, &unit, &u.FullName, &created); err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrAuthFailure
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return nil, ErrAuthFailure
	}
	u.Unit = unit.String
	var err error
	if u.CreatedAt, err = time.Parse(timeLayout, created); err != nil {
		return nil, fmt.Errorf("bad created_at %q: %w", created, err)
	}

	if _, err := r.db.ExecContext(ctx, `
		INSERT INTO login_logs(user_id, unit_accessed) VALUES (?, NULLIF(?, ''))
	`, u.ID, u.Unit); err != nil {
		return nil, fmt.Errorf("append login log: %w", err)
	}
	return &u, nil
}

// EnsureUser создаёт учётную запись, если её ещё нет. Существующую не трогает.
func (r *Repo) EnsureUser(ctx context.Context, username, password string, role Role, unit, fullName string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	_, err = r.db.ExecContext(ctx, `
		INSERT OR IGNORE INTO users(username, password_hash, role, unit, full_name)
		VALUES (?, ?, ?, NULLIF(?, ''), ?)
	`, username, string(hash), string(role), unit, fullName)
	return err
}

// Logins возвращает журнал входов пользователя, новые первыми.
func (r *Repo) Logins(ctx context.Context, userID int64) ([]LoginLog, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, user_id, login_time, COALESCE(unit_accessed, '')
		FROM login_logs WHERE user_id = ? ORDER BY id DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []LoginLog
	for rows.Next() {
		var l LoginLog
		var at string
		if err := rows.Scan(&l.ID, &l.UserID, &at, &l.UnitAccessed); err != nil {
			return nil, err
		}
		if l.LoginTime, err = time.Parse(timeLayout, at); err != nil {
			return nil, fmt.Errorf("bad login_time %q: %w", at, err)
		}
		out = append(out, l)
	}
	return out, rows.Err()
}
