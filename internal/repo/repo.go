package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/wb-go/wbf/dbpg"

	"urevents/internal/model"
)

var (
	ErrEventNotFound = errors.New("event not found")
	ErrAdminNotFound = errors.New("admin not found")
)

type Repository interface {
	GetAdminByUsername(ctx context.Context, username string) (*model.Admin, error)
	SeedAdmin(ctx context.Context, username, passwordHash string) error

	CreateEvent(ctx context.Context, e *model.Event) (int64, error)
	GetEventByID(ctx context.Context, id int64) (*model.Event, error)
	GetAllEvents(ctx context.Context) ([]model.Event, error)
	GetFeaturedEvents(ctx context.Context, limit int) ([]model.Event, error)
	GetUpcomingEvents(ctx context.Context, limit int) ([]model.Event, error)
	GetRecentEvents(ctx context.Context, limit int) ([]model.Event, error)
	UpdateEvent(ctx context.Context, e *model.Event) error
	DeleteEvent(ctx context.Context, id int64) error

	CreateRegistration(ctx context.Context, reg *model.Registration) (int64, error)
	GetRegistrationsWithEventTitle(ctx context.Context) ([]model.RegistrationWithEvent, error)

	CreateContactMessage(ctx context.Context, msg *model.ContactMessage) (int64, error)
	GetContactMessages(ctx context.Context) ([]model.ContactMessage, error)

	MigrateUp(migrationsDir string) error
	MigrateDown(migrationsDir string) error
}

type repository struct {
	db  *dbpg.DB
	log *zerolog.Logger
}

func NewRepository(db *dbpg.DB, log *zerolog.Logger) (Repository, error) {
	if db == nil {
		return nil, fmt.Errorf("db cannot be nil")
	}
	if err := db.Master.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping DB: %w", err)
	}
	return &repository{db: db, log: log}, nil
}

func (r *repository) MigrateUp(migrationsDir string) error {
	files, err := filepath.Glob(filepath.Join(migrationsDir, "*.up.sql"))
	if err != nil {
		return fmt.Errorf("failed to read migration files: %w", err)
	}

	for _, file := range files {
		sqlBytes, err := os.ReadFile(file)
		if err != nil {
			return fmt.Errorf("failed to read migration file %s: %w", file, err)
		}

		if _, err := r.db.ExecContext(context.Background(), string(sqlBytes)); err != nil {
			return fmt.Errorf("failed to apply migration %s: %w", file, err)
		}
	}

	r.log.Info().Msgf("Migrations applied successfully from %s", migrationsDir)
	return nil
}

func (r *repository) MigrateDown(migrationsDir string) error {
	files, err := filepath.Glob(filepath.Join(migrationsDir, "*.down.sql"))
	if err != nil {
		return fmt.Errorf("failed to read rollback files: %w", err)
	}

	for _, file := range files {
		sqlBytes, err := os.ReadFile(file)
		if err != nil {
			return fmt.Errorf("failed to read rollback file %s: %w", file, err)
		}

		if _, err := r.db.ExecContext(context.Background(), string(sqlBytes)); err != nil {
			return fmt.Errorf("failed to rollback migration %s: %w", file, err)
		}
	}

	r.log.Info().Msgf("Migrations rolled back successfully from %s", migrationsDir)
	return nil
}

func (r *repository) GetAdminByUsername(ctx context.Context, username string) (*model.Admin, error) {
	query := `
		SELECT id, username, password_hash
		FROM admins WHERE username = $1
	`
	row := r.db.QueryRowContext(ctx, query, username)

	var a model.Admin
	if err := row.Scan(&a.ID, &a.Username, &a.PasswordHash); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrAdminNotFound
		}
		return nil, fmt.Errorf("failed to get admin: %w", err)
	}
	return &a, nil
}

// SeedAdmin inserts the configured administrator the first time the table
// is created. A non-empty table makes it a no-op, so restarts are safe.
func (r *repository) SeedAdmin(ctx context.Context, username, passwordHash string) error {
	var count int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM admins`).Scan(&count); err != nil {
		return fmt.Errorf("failed to count admins: %w", err)
	}
	if count > 0 {
		return nil
	}

	query := `
		INSERT INTO admins (username, password_hash)
		VALUES ($1, $2)
	`
	if _, err := r.db.ExecContext(ctx, query, username, passwordHash); err != nil {
		return fmt.Errorf("failed to seed admin: %w", err)
	}

	r.log.Info().Str("username", username).Msg("default admin seeded")
	return nil
}

func (r *repository) CreateEvent(ctx context.Context, e *model.Event) (int64, error) {
	query := `
		INSERT INTO events (title, college, date, time, venue, description, category, image, featured)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`

	row := r.db.QueryRowContext(ctx, query,
		e.Title, e.College, e.Date, e.Time, e.Venue, e.Description, e.Category, e.Image, e.Featured,
	)

	var id int64
	if err := row.Scan(&id); err != nil {
		return 0, fmt.Errorf("failed to insert event: %w", err)
	}
	return id, nil
}

func (r *repository) GetEventByID(ctx context.Context, id int64) (*model.Event, error) {
	query := `
		SELECT id, title, college, date, time, venue, description, category, image, featured
		FROM events WHERE id = $1
	`
	row := r.db.QueryRowContext(ctx, query, id)

	var e model.Event
	if err := row.Scan(
		&e.ID, &e.Title, &e.College, &e.Date, &e.Time, &e.Venue,
		&e.Description, &e.Category, &e.Image, &e.Featured,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("failed to get event: %w", err)
	}
	return &e, nil
}

func (r *repository) GetAllEvents(ctx context.Context) ([]model.Event, error) {
	query := `
		SELECT id, title, college, date, time, venue, description, category, image, featured
		FROM events
		ORDER BY date ASC
	`
	return r.queryEvents(ctx, query)
}

// GetFeaturedEvents returns events flagged for the landing page, newest
// first by id, capped at limit.
func (r *repository) GetFeaturedEvents(ctx context.Context, limit int) ([]model.Event, error) {
	query := `
		SELECT id, title, college, date, time, venue, description, category, image, featured
		FROM events
		WHERE featured = TRUE
		ORDER BY id DESC
		LIMIT $1
	`
	return r.queryEvents(ctx, query, limit)
}

// GetUpcomingEvents orders by the date column; dates are stored as
// zero-padded YYYY-MM-DD so the text sort is chronological.
func (r *repository) GetUpcomingEvents(ctx context.Context, limit int) ([]model.Event, error) {
	query := `
		SELECT id, title, college, date, time, venue, description, category, image, featured
		FROM events
		ORDER BY date ASC
		LIMIT $1
	`
	return r.queryEvents(ctx, query, limit)
}

func (r *repository) GetRecentEvents(ctx context.Context, limit int) ([]model.Event, error) {
	query := `
		SELECT id, title, college, date, time, venue, description, category, image, featured
		FROM events
		ORDER BY id DESC
		LIMIT $1
	`
	return r.queryEvents(ctx, query, limit)
}

func (r *repository) queryEvents(ctx context.Context, query string, args ...any) ([]model.Event, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get events: %w", err)
	}
	defer rows.Close()

	var events []model.Event
	for rows.Next() {
		var e model.Event
		if err := rows.Scan(
			&e.ID, &e.Title, &e.College, &e.Date, &e.Time, &e.Venue,
			&e.Description, &e.Category, &e.Image, &e.Featured,
		); err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		events = append(events, e)
	}

	return events, rows.Err()
}

func (r *repository) UpdateEvent(ctx context.Context, e *model.Event) error {
	query := `
		UPDATE events SET
			title = $1, college = $2, date = $3, time = $4, venue = $5,
			description = $6, category = $7, image = $8, featured = $9
		WHERE id = $10
	`
	if _, err := r.db.ExecContext(ctx, query,
		e.Title, e.College, e.Date, e.Time, e.Venue,
		e.Description, e.Category, e.Image, e.Featured, e.ID,
	); err != nil {
		return fmt.Errorf("failed to update event: %w", err)
	}
	return nil
}

// DeleteEvent removes the row when it exists. Deleting an absent id is a
// silent no-op. Registrations pointing at the event are left in place.
func (r *repository) DeleteEvent(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM events WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete event: %w", err)
	}
	return nil
}

// CreateRegistration inserts without checking that the event still exists;
// orphaned submissions are accepted.
func (r *repository) CreateRegistration(ctx context.Context, reg *model.Registration) (int64, error) {
	query := `
		INSERT INTO registrations (event_id, name, phone, email, message, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		RETURNING id, created_at
	`
	row := r.db.QueryRowContext(ctx, query,
		reg.EventID, reg.Name, reg.Phone, reg.Email, reg.Message,
	)

	if err := row.Scan(&reg.ID, &reg.CreatedAt); err != nil {
		return 0, fmt.Errorf("failed to create registration: %w", err)
	}
	return reg.ID, nil
}

// GetRegistrationsWithEventTitle joins registrations against events, so
// rows whose event was deleted drop out of the admin listing.
func (r *repository) GetRegistrationsWithEventTitle(ctx context.Context) ([]model.RegistrationWithEvent, error) {
	query := `
		SELECT r.id, r.event_id, r.name, r.phone, r.email, r.message, r.created_at,
		       e.title AS event_title
		FROM registrations r
		JOIN events e ON r.event_id = e.id
		ORDER BY r.created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get registrations: %w", err)
	}
	defer rows.Close()

	var regs []model.RegistrationWithEvent
	for rows.Next() {
		var reg model.RegistrationWithEvent
		if err := rows.Scan(
			&reg.ID, &reg.EventID, &reg.Name, &reg.Phone, &reg.Email,
			&reg.Message, &reg.CreatedAt, &reg.EventTitle,
		); err != nil {
			return nil, fmt.Errorf("failed to scan registration: %w", err)
		}
		regs = append(regs, reg)
	}

	return regs, rows.Err()
}

func (r *repository) CreateContactMessage(ctx context.Context, msg *model.ContactMessage) (int64, error) {
	query := `
		INSERT INTO contact_messages (first_name, last_name, email, phone, subject, message, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
		RETURNING id, created_at
	`
	row := r.db.QueryRowContext(ctx, query,
		msg.FirstName, msg.LastName, msg.Email, msg.Phone, msg.Subject, msg.Message,
	)

	if err := row.Scan(&msg.ID, &msg.CreatedAt); err != nil {
		return 0, fmt.Errorf("failed to create contact message: %w", err)
	}
	return msg.ID, nil
}

func (r *repository) GetContactMessages(ctx context.Context) ([]model.ContactMessage, error) {
	query := `
		SELECT id, first_name, last_name, email, phone, subject, message, created_at
		FROM contact_messages
		ORDER BY created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get contact messages: %w", err)
	}
	defer rows.Close()

	var msgs []model.ContactMessage
	for rows.Next() {
		var m model.ContactMessage
		if err := rows.Scan(
			&m.ID, &m.FirstName, &m.LastName, &m.Email, &m.Phone,
			&m.Subject, &m.Message, &m.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan contact message: %w", err)
		}
		msgs = append(msgs, m)
	}

	return msgs, rows.Err()
}
