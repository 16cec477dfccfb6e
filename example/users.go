package main

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pressly/goose/v3"

	"github.com/dmitrymomot/sugar/pkg/db"
	"github.com/dmitrymomot/sugar/pkg/lifecycle"
	"github.com/dmitrymomot/sugar/pkg/schema"
)

var errUserNotFound = errors.New("user not found")

// User is the stored account.
type User struct {
	ID           string
	Email        string
	Name         string
	Bio          string
	PasswordHash string
	Logins       int64
	CreatedAt    int64
}

// PublicUser is what clients see of a User.
type PublicUser struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Bio       string    `json:"bio,omitempty"`
	Logins    int64     `json:"logins"`
	CreatedAt time.Time `json:"created_at"`
}

func (u User) ConvertToPublic(context.Context) (PublicUser, error) {
	return PublicUser{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Bio:       u.Bio,
		Logins:    u.Logins,
		CreatedAt: time.Unix(u.CreatedAt, 0).UTC(),
	}, nil
}

// newUser is the signup constructor.
func newUser(_ context.Context, p signupRequest) (User, error) {
	hash, err := lifecycle.HashPassword(p.Password)
	if err != nil {
		return User{}, err
	}
	return User{
		ID:           uuid.NewString(),
		Email:        p.Email,
		Name:         p.Name,
		PasswordHash: hash,
		CreatedAt:    time.Now().Unix(),
	}, nil
}

// applyProfile is the profile update mutator. Empty fields are left as is.
func applyProfile(_ context.Context, u User, p profileRequest) (User, error) {
	if p.Name != "" {
		u.Name = p.Name
	}
	if p.Bio != nil {
		u.Bio = *p.Bio
	}
	return u, nil
}

func userMigrations(d schema.Dialect) []*goose.Migration {
	users := schema.New("users", schema.WithDialect(d)).
		Varchar("id", schema.Length(36), schema.PrimaryKey()).
		Varchar("email", schema.Unique()).
		Varchar("name", schema.Length(100)).
		Text("bio", schema.Optional()).
		Varchar("password_hash", schema.Length(72)).
		BigInteger("logins", schema.Default(0)).
		BigInteger("created_at").
		Index("name", "")

	return []*goose.Migration{schema.Migration(1, users)}
}

type userStore struct {
	db *db.DB
}

const userColumns = "id, email, name, COALESCE(bio, ''), password_hash, logins, created_at"

func (s *userStore) insert(ctx context.Context, u User) error {
	_, err := s.db.ExecContext(ctx, s.rebind(
		"INSERT INTO users (id, email, name, bio, password_hash, logins, created_at) VALUES (?, ?, ?, ?, ?, ?, ?)"),
		u.ID, u.Email, u.Name, u.Bio, u.PasswordHash, u.Logins, u.CreatedAt,
	)
	return err
}

func (s *userStore) update(ctx context.Context, u User) error {
	_, err := s.db.ExecContext(ctx, s.rebind("UPDATE users SET name = ?, bio = ? WHERE id = ?"), u.Name, u.Bio, u.ID)
	return err
}

func (s *userStore) emailTaken(ctx context.Context, email string) (bool, error) {
	var n int
	err := s.db.QueryRowContext(ctx, s.rebind("SELECT COUNT(*) FROM users WHERE email = ?"), email).Scan(&n)
	return n > 0, err
}

// recordLogin bumps the login counter inside a transaction so the returned
// count matches the row.
func (s *userStore) recordLogin(ctx context.Context, id string) (int64, error) {
	var logins int64
	err := db.WithTx(ctx, s.db.DB, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, s.rebind("UPDATE users SET logins = logins + 1 WHERE id = ?"), id); err != nil {
			return err
		}
		return tx.QueryRowContext(ctx, s.rebind("SELECT logins FROM users WHERE id = ?"), id).Scan(&logins)
	})
	return logins, err
}

func (s *userStore) byID(ctx context.Context, id string) (User, error) {
	return s.one(ctx, "SELECT "+userColumns+" FROM users WHERE id = ?", id)
}

func (s *userStore) byEmail(ctx context.Context, email string) (User, error) {
	return s.one(ctx, "SELECT "+userColumns+" FROM users WHERE email = ?", strings.ToLower(email))
}

func (s *userStore) one(ctx context.Context, query string, arg any) (User, error) {
	var u User
	err := s.db.QueryRowContext(ctx, s.rebind(query), arg).
		Scan(&u.ID, &u.Email, &u.Name, &u.Bio, &u.PasswordHash, &u.Logins, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return User{}, errUserNotFound
	}
	return u, err
}

// rebind rewrites ? placeholders to $n for postgres.
func (s *userStore) rebind(query string) string {
	if s.db.Dialect != schema.Postgres {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteString("$" + strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
