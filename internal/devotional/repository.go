package devotional

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/talitapaixao/terapia-com-deus-api/internal/database"
)

var (
	ErrNotFound       = errors.New("record not found")
	ErrAlreadyExists  = errors.New("record already exists")
	ErrInternalServer = errors.New("internal server error")
)

// Repository is the shared backend client: the one-record-per-day table all
// readers of the app converge on.
type Repository interface {
	GetDevotionalByDate(ctx context.Context, date string) (*DailyDevotional, error)
	// PurgeOtherDates deletes every record whose date differs from the given
	// one and returns the dates that carried a narration asset, so the caller
	// can remove those assets too.
	PurgeOtherDates(ctx context.Context, date string) ([]string, error)
	InsertDevotional(ctx context.Context, date string, content DevotionalContent, audioURL string) (*DailyDevotional, error)
	UpdateAudioURL(ctx context.Context, id, audioURL string) error
	EnsureSchema(ctx context.Context) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(dbService database.Service) Repository {
	return &repository{db: dbService.DB()}
}

func (r *repository) EnsureSchema(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS daily_devotionals (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			date TEXT NOT NULL UNIQUE,
			title TEXT NOT NULL,
			verse TEXT NOT NULL,
			reflection TEXT NOT NULL,
			application TEXT NOT NULL,
			prayer TEXT NOT NULL,
			audio_url TEXT,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)
	`)
	return err
}

func (r *repository) GetDevotionalByDate(ctx context.Context, date string) (*DailyDevotional, error) {
	query := `
		SELECT id, date, title, verse, reflection, application, prayer, audio_url, created_at
		FROM daily_devotionals
		WHERE date = $1
	`

	var d DailyDevotional
	err := r.db.QueryRowContext(ctx, query, date).Scan(
		&d.ID,
		&d.Date,
		&d.Title,
		&d.Verse,
		&d.Reflection,
		&d.Application,
		&d.Prayer,
		&d.AudioURL,
		&d.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &d, nil
}

func (r *repository) PurgeOtherDates(ctx context.Context, date string) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT date FROM daily_devotionals
		WHERE date <> $1 AND audio_url IS NOT NULL
	`, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var withAudio []string
	for rows.Next() {
		var d string
		if err := rows.Scan(&d); err != nil {
			return nil, err
		}
		withAudio = append(withAudio, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if _, err := r.db.ExecContext(ctx, `
		DELETE FROM daily_devotionals WHERE date <> $1
	`, date); err != nil {
		return nil, err
	}

	return withAudio, nil
}

func (r *repository) InsertDevotional(ctx context.Context, date string, content DevotionalContent, audioURL string) (*DailyDevotional, error) {
	query := `
		INSERT INTO daily_devotionals (date, title, verse, reflection, application, prayer, audio_url)
		VALUES ($1, $2, $3, $4, $5, $6, NULLIF($7, ''))
		RETURNING id, date, title, verse, reflection, application, prayer, audio_url, created_at
	`

	var d DailyDevotional
	err := r.db.QueryRowContext(ctx, query,
		date,
		content.Title,
		content.Verse,
		content.Reflection,
		content.Application,
		content.Prayer,
		audioURL,
	).Scan(
		&d.ID,
		&d.Date,
		&d.Title,
		&d.Verse,
		&d.Reflection,
		&d.Application,
		&d.Prayer,
		&d.AudioURL,
		&d.CreatedAt,
	)
	if err != nil {
		// Unique violation on the date column: a concurrent first writer won
		// the race. Tolerated, the caller keeps its own content.
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, ErrAlreadyExists
		}
		return nil, err
	}
	return &d, nil
}

func (r *repository) UpdateAudioURL(ctx context.Context, id, audioURL string) error {
	result, err := r.db.ExecContext(ctx, `
		UPDATE daily_devotionals SET audio_url = $2 WHERE id = $1
	`, id, audioURL)
	if err != nil {
		return err
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return ErrNotFound
	}
	return nil
}
