package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/commhendrix/academic-portfolio/internal/models"
)

// ErrSlotTaken is returned when a confirmed meeting already holds the
// (date, time slot) pair.
var ErrSlotTaken = errors.New("time slot already booked")

// Uniqueness sentinels for user registration. The handler pre-checks
// both fields, but two concurrent registrations can still race to the
// insert; the unique constraints decide the loser.
var (
	ErrUsernameTaken = errors.New("username already exists")
	ErrEmailTaken    = errors.New("email already exists")
)

const uniqueViolation = "23505"

// PostgresStore handles user and meeting rows in PostgreSQL.
type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

// Migrate creates the tables if they don't exist. The partial unique
// index makes the slot-conflict check atomic with the insert: two
// concurrent bookings for the same slot cannot both commit.
func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS users (
			id         SERIAL PRIMARY KEY,
			username   VARCHAR(50)  UNIQUE NOT NULL,
			email      VARCHAR(255) UNIQUE NOT NULL,
			password   VARCHAR(255) NOT NULL,
			role       VARCHAR(10)  NOT NULL DEFAULT 'user',
			created_at TIMESTAMPTZ  NOT NULL DEFAULT NOW()
		);

		CREATE TABLE IF NOT EXISTS meetings (
			id         SERIAL PRIMARY KEY,
			user_id    INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			date       VARCHAR(10) NOT NULL,
			time_slot  VARCHAR(5)  NOT NULL,
			topic      TEXT        NOT NULL,
			notes      TEXT        NOT NULL DEFAULT '',
			status     VARCHAR(10) NOT NULL DEFAULT 'confirmed',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);

		CREATE UNIQUE INDEX IF NOT EXISTS meetings_confirmed_slot
			ON meetings (date, time_slot)
			WHERE status = 'confirmed';
	`)
	return err
}

// ── users ────────────────────────────────────────────────────────────

func (s *PostgresStore) CreateUser(ctx context.Context, username, email, hashedPassword, role string) (*models.User, error) {
	var u models.User
	err := s.pool.QueryRow(ctx,
		`INSERT INTO users (username, email, password, role)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, username, email, role, created_at`,
		username, email, hashedPassword, role,
	).Scan(&u.ID, &u.Username, &u.Email, &u.Role, &u.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			if pgErr.ConstraintName == "users_email_key" {
				return nil, ErrEmailTaken
			}
			return nil, ErrUsernameTaken
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return &u, nil
}

func (s *PostgresStore) GetUserByID(ctx context.Context, id int) (*models.User, error) {
	return s.getUser(ctx,
		`SELECT id, username, email, password, role, created_at
		 FROM users WHERE id = $1`, id)
}

func (s *PostgresStore) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.getUser(ctx,
		`SELECT id, username, email, password, role, created_at
		 FROM users WHERE username = $1`, username)
}

// GetUserByIdentifier resolves a login identifier against username or email.
func (s *PostgresStore) GetUserByIdentifier(ctx context.Context, identifier string) (*models.User, error) {
	return s.getUser(ctx,
		`SELECT id, username, email, password, role, created_at
		 FROM users WHERE username = $1 OR email = $1`, identifier)
}

func (s *PostgresStore) getUser(ctx context.Context, query string, arg any) (*models.User, error) {
	var u models.User
	err := s.pool.QueryRow(ctx, query, arg).
		Scan(&u.ID, &u.Username, &u.Email, &u.Password, &u.Role, &u.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &u, nil
}

// ── meetings ─────────────────────────────────────────────────────────

// CreateMeeting inserts a confirmed meeting. The unique index on
// (date, time_slot) for confirmed rows rejects a second booking for the
// same slot; that violation surfaces as ErrSlotTaken.
func (s *PostgresStore) CreateMeeting(ctx context.Context, m *models.Meeting) error {
	err := s.pool.QueryRow(ctx,
		`INSERT INTO meetings (user_id, date, time_slot, topic, notes)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, status, created_at`,
		m.UserID, m.Date, m.TimeSlot, m.Topic, m.Notes,
	).Scan(&m.ID, &m.Status, &m.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return ErrSlotTaken
		}
		return fmt.Errorf("create meeting: %w", err)
	}
	return nil
}

// HasConflict reports whether a confirmed meeting already holds the slot.
func (s *PostgresStore) HasConflict(ctx context.Context, date, timeSlot string) (bool, error) {
	var exists bool
	err := s.pool.QueryRow(ctx,
		`SELECT EXISTS(
			SELECT 1 FROM meetings
			WHERE date = $1 AND time_slot = $2 AND status = 'confirmed'
		 )`, date, timeSlot,
	).Scan(&exists)
	return exists, err
}

// GetBookedTimeSlots returns the confirmed slots for a date. Availability
// is public; topics and owners are not exposed here.
func (s *PostgresStore) GetBookedTimeSlots(ctx context.Context, date string) ([]string, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT time_slot FROM meetings
		 WHERE date = $1 AND status = 'confirmed'
		 ORDER BY time_slot`, date,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var slots []string
	for rows.Next() {
		var slot string
		if err := rows.Scan(&slot); err != nil {
			return nil, err
		}
		slots = append(slots, slot)
	}
	return slots, rows.Err()
}

const meetingWithUserCols = `
	m.id, m.user_id, m.date, m.time_slot, m.topic, m.notes, m.status, m.created_at,
	u.id, u.username, u.email, u.role, u.created_at`

// ListMeetingsByUser returns all meetings owned by a user, any status,
// joined with the owner's public fields.
func (s *PostgresStore) ListMeetingsByUser(ctx context.Context, userID int) ([]models.MeetingWithUser, error) {
	return s.listMeetings(ctx,
		`SELECT `+meetingWithUserCols+`
		 FROM meetings m
		 JOIN users u ON u.id = m.user_id
		 WHERE m.user_id = $1
		 ORDER BY m.date, m.time_slot`, userID)
}

// ListAllMeetings returns every user's meetings. Administrator-only view.
func (s *PostgresStore) ListAllMeetings(ctx context.Context) ([]models.MeetingWithUser, error) {
	return s.listMeetings(ctx,
		`SELECT `+meetingWithUserCols+`
		 FROM meetings m
		 JOIN users u ON u.id = m.user_id
		 ORDER BY m.date, m.time_slot`)
}

func (s *PostgresStore) listMeetings(ctx context.Context, query string, args ...any) ([]models.MeetingWithUser, error) {
	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.MeetingWithUser
	for rows.Next() {
		var mw models.MeetingWithUser
		if err := rows.Scan(
			&mw.ID, &mw.UserID, &mw.Date, &mw.TimeSlot, &mw.Topic, &mw.Notes, &mw.Status, &mw.CreatedAt,
			&mw.User.ID, &mw.User.Username, &mw.User.Email, &mw.User.Role, &mw.User.CreatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, mw)
	}
	return out, rows.Err()
}
