// Package mechanic manages mechanic accounts and PIN credentials.
package mechanic

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrNotFound       = errors.New("mechanic not found")
	ErrPhoneTaken     = errors.New("phone already registered")
	ErrBadCredentials = errors.New("invalid phone or pin")
	ErrInactive       = errors.New("mechanic is deactivated")
)

// Mechanic never carries the PIN or its hash.
type Mechanic struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Phone     string `json:"phone"`
	IsActive  bool   `json:"is_active"`
	CreatedAt int64  `json:"created_at"`
}

// NormalizePhone strips formatting characters and rewrites the
// Russian trunk prefix 8 to +7 so lookups are format-insensitive.
func NormalizePhone(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		switch r {
		case ' ', '-', '(', ')':
		default:
			b.WriteRune(r)
		}
	}
	p := b.String()
	if len(p) == 11 && p[0] == '8' {
		p = "+7" + p[1:]
	}
	return p
}

func validatePIN(pin string) error {
	if len(pin) != 4 {
		return fmt.Errorf("pin must be exactly 4 digits")
	}
	for _, r := range pin {
		if r < '0' || r > '9' {
			return fmt.Errorf("pin must be exactly 4 digits")
		}
	}
	return nil
}

type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store { return &Store{db: db} }

func (s *Store) Create(ctx context.Context, name, phone, pin string) (Mechanic, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Mechanic{}, fmt.Errorf("name required")
	}
	phone = NormalizePhone(phone)
	if phone == "" {
		return Mechanic{}, fmt.Errorf("phone required")
	}
	if err := validatePIN(pin); err != nil {
		return Mechanic{}, err
	}

	var exist int
	err := s.db.QueryRowContext(ctx, `SELECT 1 FROM mechanics WHERE phone=$1`, phone).Scan(&exist)
	if err == nil {
		return Mechanic{}, ErrPhoneTaken
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return Mechanic{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(pin), bcrypt.DefaultCost)
	if err != nil {
		return Mechanic{}, err
	}

	m := Mechanic{
		ID:        uuid.NewString(),
		Name:      name,
		Phone:     phone,
		IsActive:  true,
		CreatedAt: time.Now().Unix(),
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO mechanics (id,name,phone,pin_hash,is_active,created_at)
		 VALUES ($1,$2,$3,$4,$5,$6)`,
		m.ID, m.Name, m.Phone, string(hash), m.IsActive, m.CreatedAt)
	if err != nil {
		return Mechanic{}, err
	}
	return m, nil
}

func (s *Store) Get(ctx context.Context, id string) (Mechanic, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id,name,phone,is_active,created_at FROM mechanics WHERE id=$1`, id)
	return scanMechanic(row)
}

func (s *Store) List(ctx context.Context, activeOnly bool) ([]Mechanic, error) {
	q := `SELECT id,name,phone,is_active,created_at FROM mechanics`
	if activeOnly {
		q += ` WHERE is_active=TRUE`
	}
	q += ` ORDER BY name`
	rows, err := s.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Mechanic
	for rows.Next() {
		m, err := scanMechanic(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (s *Store) Update(ctx context.Context, id, name, phone string) (Mechanic, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Mechanic{}, fmt.Errorf("name required")
	}
	phone = NormalizePhone(phone)
	if phone == "" {
		return Mechanic{}, fmt.Errorf("phone required")
	}

	var takenBy string
	err := s.db.QueryRowContext(ctx, `SELECT id FROM mechanics WHERE phone=$1`, phone).Scan(&takenBy)
	if err == nil && takenBy != id {
		return Mechanic{}, ErrPhoneTaken
	}
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return Mechanic{}, err
	}

	res, err := s.db.ExecContext(ctx,
		`UPDATE mechanics SET name=$1, phone=$2 WHERE id=$3`, name, phone, id)
	if err != nil {
		return Mechanic{}, err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return Mechanic{}, ErrNotFound
	}
	return s.Get(ctx, id)
}

func (s *Store) SetActive(ctx context.Context, id string, active bool) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE mechanics SET is_active=$1 WHERE id=$2`, active, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) SetPIN(ctx context.Context, id, pin string) error {
	if err := validatePIN(pin); err != nil {
		return err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(pin), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	res, err := s.db.ExecContext(ctx,
		`UPDATE mechanics SET pin_hash=$1 WHERE id=$2`, string(hash), id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

// Authenticate looks the mechanic up by normalized phone and checks
// the PIN against the stored bcrypt hash. Deactivated mechanics are
// rejected even with a correct PIN.
func (s *Store) Authenticate(ctx context.Context, phone, pin string) (Mechanic, error) {
	phone = NormalizePhone(phone)
	row := s.db.QueryRowContext(ctx,
		`SELECT id,name,phone,pin_hash,is_active,created_at FROM mechanics WHERE phone=$1`, phone)
	var m Mechanic
	var hash string
	if err := row.Scan(&m.ID, &m.Name, &m.Phone, &hash, &m.IsActive, &m.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Mechanic{}, ErrBadCredentials
		}
		return Mechanic{}, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(pin)); err != nil {
		return Mechanic{}, ErrBadCredentials
	}
	if !m.IsActive {
		return Mechanic{}, ErrInactive
	}
	return m, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanMechanic(row rowScanner) (Mechanic, error) {
	var m Mechanic
	if err := row.Scan(&m.ID, &m.Name, &m.Phone, &m.IsActive, &m.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Mechanic{}, ErrNotFound
		}
		return Mechanic{}, err
	}
	return m, nil
}
