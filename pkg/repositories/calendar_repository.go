package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/AutomatedProcessImprovement/simulation-copilot/pkg/database"
	"github.com/AutomatedProcessImprovement/simulation-copilot/pkg/models"
)

// CalendarRepository provides data access for calendars and their
// intervals. Intervals are owned rows: they are written with the calendar
// and removed with it.
type CalendarRepository interface {
	// Create inserts an empty calendar.
	Create(ctx context.Context) (*models.Calendar, error)

	// CreateWithIntervals inserts a calendar and its intervals in one
	// transaction.
	CreateWithIntervals(ctx context.Context, intervals []models.CalendarInterval) (*models.Calendar, error)

	// AddInterval appends one interval to an existing calendar.
	AddInterval(ctx context.Context, calendarID int64, interval models.CalendarInterval) (*models.CalendarInterval, error)

	// Get returns the calendar with its intervals, or nil when absent.
	Get(ctx context.Context, id int64) (*models.Calendar, error)

	// Delete removes the calendar and its intervals. No-op when absent.
	Delete(ctx context.Context, id int64) error

	// DeleteAll removes every calendar. Test teardown only.
	DeleteAll(ctx context.Context) error
}

type calendarRepository struct {
	db *database.DB
}

// NewCalendarRepository creates a new CalendarRepository.
func NewCalendarRepository(db *database.DB) CalendarRepository {
	return &calendarRepository{db: db}
}

var _ CalendarRepository = (*calendarRepository)(nil)

func (r *calendarRepository) Create(ctx context.Context) (*models.Calendar, error) {
	calendar := &models.Calendar{}
	err := r.db.QueryRow(ctx, `INSERT INTO calendar DEFAULT VALUES RETURNING id`).Scan(&calendar.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to create calendar: %w", err)
	}
	return calendar, nil
}

func (r *calendarRepository) CreateWithIntervals(ctx context.Context, intervals []models.CalendarInterval) (*models.Calendar, error) {
	calendar := &models.Calendar{}
	err := pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		if err := tx.QueryRow(ctx, `INSERT INTO calendar DEFAULT VALUES RETURNING id`).Scan(&calendar.ID); err != nil {
			return fmt.Errorf("failed to create calendar: %w", err)
		}
		for _, interval := range intervals {
			interval.CalendarID = calendar.ID
			if err := insertInterval(ctx, tx, &interval); err != nil {
				return err
			}
			calendar.Intervals = append(calendar.Intervals, interval)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return calendar, nil
}

func (r *calendarRepository) AddInterval(ctx context.Context, calendarID int64, interval models.CalendarInterval) (*models.CalendarInterval, error) {
	interval.CalendarID = calendarID
	if err := insertInterval(ctx, r.db, &interval); err != nil {
		return nil, err
	}
	return &interval, nil
}

// rowQuerier is satisfied by both the pool and a transaction.
type rowQuerier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func insertInterval(ctx context.Context, q rowQuerier, interval *models.CalendarInterval) error {
	query := `
		INSERT INTO calendar_interval (
			calendar_id, start_day, end_day,
			start_hour, start_minute, end_hour, end_minute
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`

	err := q.QueryRow(ctx, query,
		interval.CalendarID,
		interval.StartDay,
		interval.EndDay,
		interval.StartHour,
		interval.StartMinute,
		interval.EndHour,
		interval.EndMinute,
	).Scan(&interval.ID)
	if err != nil {
		return fmt.Errorf("failed to create calendar interval: %w", err)
	}
	return nil
}

func (r *calendarRepository) Get(ctx context.Context, id int64) (*models.Calendar, error) {
	calendar := &models.Calendar{}
	err := r.db.QueryRow(ctx, `SELECT id FROM calendar WHERE id = $1`, id).Scan(&calendar.ID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get calendar: %w", err)
	}

	rows, err := r.db.Query(ctx, `
		SELECT id, calendar_id, start_day, end_day,
		       start_hour, start_minute, end_hour, end_minute
		FROM calendar_interval
		WHERE calendar_id = $1
		ORDER BY id`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get calendar intervals: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var interval models.CalendarInterval
		if err := rows.Scan(
			&interval.ID,
			&interval.CalendarID,
			&interval.StartDay,
			&interval.EndDay,
			&interval.StartHour,
			&interval.StartMinute,
			&interval.EndHour,
			&interval.EndMinute,
		); err != nil {
			return nil, fmt.Errorf("failed to scan calendar interval: %w", err)
		}
		calendar.Intervals = append(calendar.Intervals, interval)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read calendar intervals: %w", err)
	}
	return calendar, nil
}

func (r *calendarRepository) Delete(ctx context.Context, id int64) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM calendar WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete calendar: %w", err)
	}
	return nil
}

func (r *calendarRepository) DeleteAll(ctx context.Context) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM calendar`); err != nil {
		return fmt.Errorf("failed to delete calendars: %w", err)
	}
	return nil
}
