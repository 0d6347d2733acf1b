// Package activity implements the Activity repository using PostgreSQL.
// Every lookup is scoped to the owning user: there is deliberately no
// unscoped GetByID, so an ownership check can never be forgotten upstream.
package activity

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/plantracker/plantracker-backend/internal/adapter/postgres"
	"github.com/plantracker/plantracker-backend/internal/domain"
)

// Repo provides activity persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new activity repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

var activityColumns = []string{
	"a.id", "a.user_id", "a.title", "a.description", "a.start_time", "a.end_time",
	"a.duration", "a.scheduled_time", "a.recorded_time", "a.timer_status",
	"a.last_timer_start", "a.notified",
}

const insertSQL = `
INSERT INTO activities
    (id, user_id, title, description, start_time, end_time, duration,
     scheduled_time, recorded_time, timer_status, last_timer_start, notified)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

const updateSQL = `
UPDATE activities SET
    title = $3, description = $4, end_time = $5, duration = $6,
    scheduled_time = $7, recorded_time = $8, timer_status = $9,
    last_timer_start = $10, notified = $11
WHERE id = $1 AND user_id = $2`

const updateTimerSQL = `
UPDATE activities SET recorded_time = $3, timer_status = $4, last_timer_start = $5
WHERE id = $1 AND user_id = $2`

const deleteSQL = `DELETE FROM activities WHERE id = $1 AND user_id = $2`

const tagsByActivityIDsSQL = `
SELECT at.activity_id, t.id, t.name
FROM activity_tags at
JOIN tags t ON t.id = at.tag_id
WHERE at.activity_id = ANY($1::uuid[])
ORDER BY at.activity_id, t.name`

const replaceTagsDeleteSQL = `DELETE FROM activity_tags WHERE activity_id = $1`

const attachTagsSQL = `
INSERT INTO activity_tags (activity_id, tag_id)
SELECT $1, unnest($2::uuid[])
ON CONFLICT DO NOTHING`

// Create inserts the activity and its tag associations.
func (r *Repo) Create(ctx context.Context, a *domain.Activity) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	_, err := q.Exec(ctx, insertSQL,
		a.ID, a.UserID, a.Title, ptrStringToPgText(a.Description), a.StartTime,
		ptrTimeToPgTimestamptz(a.EndTime), ptrInt64ToPgInt8(a.Duration),
		ptrTimeToPgTimestamptz(a.ScheduledTime), a.Timer.RecordedSeconds,
		string(a.Timer.Status), ptrTimeToPgTimestamptz(a.Timer.LastStart), a.Notified)
	if err != nil {
		return postgres.MapError(err, "activity", a.ID)
	}

	if err := r.attachTags(ctx, a.ID, tagIDs(a.Tags)); err != nil {
		return err
	}
	return nil
}

// GetOwned returns an activity by ID, restricted to its owner.
// Returns domain.ErrNotFound when absent or owned by another user.
func (r *Repo) GetOwned(ctx context.Context, userID, activityID uuid.UUID) (*domain.Activity, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	query, args, err := psql.Select(activityColumns...).
		From("activities a").
		Where(sq.Eq{"a.id": activityID, "a.user_id": userID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get query: %w", err)
	}

	a, err := scanActivity(q.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, postgres.MapError(err, "activity", activityID)
	}

	tagsByID, err := r.tagsForActivities(ctx, q, []uuid.UUID{a.ID})
	if err != nil {
		return nil, err
	}
	a.Tags = tagsByID[a.ID]
	return a, nil
}

// ListOwned returns the user's activities ordered by start time descending,
// optionally filtered by exact tag name, with offset pagination.
// Returns an empty slice (not nil) when nothing matches.
func (r *Repo) ListOwned(ctx context.Context, userID uuid.UUID, filter domain.ActivityFilter) ([]domain.Activity, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	builder := psql.Select(activityColumns...).
		From("activities a").
		Where(sq.Eq{"a.user_id": userID}).
		OrderBy("a.start_time DESC").
		Offset(uint64(filter.Skip)).
		Limit(uint64(filter.Limit))

	if filter.Tag != nil {
		builder = builder.
			Join("activity_tags at ON at.activity_id = a.id").
			Join("tags t ON t.id = at.tag_id").
			Where(sq.Eq{"t.name": *filter.Tag})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list query: %w", err)
	}

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list activities: %w", err)
	}
	defer rows.Close()

	activities := []domain.Activity{}
	ids := []uuid.UUID{}
	for rows.Next() {
		a, err := scanActivity(rows)
		if err != nil {
			return nil, fmt.Errorf("list activities: %w", err)
		}
		activities = append(activities, *a)
		ids = append(ids, a.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list activities: %w", err)
	}

	if len(ids) > 0 {
		tagsByID, err := r.tagsForActivities(ctx, q, ids)
		if err != nil {
			return nil, err
		}
		for i := range activities {
			activities[i].Tags = tagsByID[activities[i].ID]
		}
	}

	return activities, nil
}

// Update persists all mutable columns of the activity, scoped to its owner.
// Returns domain.ErrNotFound when absent or owned by another user.
func (r *Repo) Update(ctx context.Context, a *domain.Activity) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := q.Exec(ctx, updateSQL,
		a.ID, a.UserID, a.Title, ptrStringToPgText(a.Description),
		ptrTimeToPgTimestamptz(a.EndTime), ptrInt64ToPgInt8(a.Duration),
		ptrTimeToPgTimestamptz(a.ScheduledTime), a.Timer.RecordedSeconds,
		string(a.Timer.Status), ptrTimeToPgTimestamptz(a.Timer.LastStart), a.Notified)
	if err != nil {
		return postgres.MapError(err, "activity", a.ID)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("activity %s: %w", a.ID, domain.ErrNotFound)
	}
	return nil
}

// UpdateTimer persists only the timer fields, scoped to the owner.
func (r *Repo) UpdateTimer(ctx context.Context, userID, activityID uuid.UUID, state domain.TimerState) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := q.Exec(ctx, updateTimerSQL,
		activityID, userID, state.RecordedSeconds, string(state.Status),
		ptrTimeToPgTimestamptz(state.LastStart))
	if err != nil {
		return postgres.MapError(err, "activity", activityID)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("activity %s: %w", activityID, domain.ErrNotFound)
	}
	return nil
}

// ReplaceTags swaps the activity's full tag set for the given tag IDs.
// Tags themselves are never deleted here; only join rows change.
func (r *Repo) ReplaceTags(ctx context.Context, activityID uuid.UUID, ids []uuid.UUID) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	if _, err := q.Exec(ctx, replaceTagsDeleteSQL, activityID); err != nil {
		return postgres.MapError(err, "activity_tag", activityID)
	}
	return r.attachTags(ctx, activityID, ids)
}

// Delete removes the activity; activity_tags rows go via ON DELETE CASCADE.
// Returns domain.ErrNotFound when absent or owned by another user.
func (r *Repo) Delete(ctx context.Context, userID, activityID uuid.UUID) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := q.Exec(ctx, deleteSQL, activityID, userID)
	if err != nil {
		return postgres.MapError(err, "activity", activityID)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("activity %s: %w", activityID, domain.ErrNotFound)
	}
	return nil
}

func (r *Repo) attachTags(ctx context.Context, activityID uuid.UUID, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	q := postgres.QuerierFromCtx(ctx, r.pool)

	if _, err := q.Exec(ctx, attachTagsSQL, activityID, ids); err != nil {
		return postgres.MapError(err, "activity_tag", activityID)
	}
	return nil
}

// tagsForActivities batch-loads tags for the given activity IDs, ordered by
// tag name within each activity.
func (r *Repo) tagsForActivities(ctx context.Context, q postgres.Querier, ids []uuid.UUID) (map[uuid.UUID][]domain.Tag, error) {
	rows, err := q.Query(ctx, tagsByActivityIDsSQL, ids)
	if err != nil {
		return nil, fmt.Errorf("load activity tags: %w", err)
	}
	defer rows.Close()

	result := make(map[uuid.UUID][]domain.Tag, len(ids))
	for rows.Next() {
		var (
			activityID uuid.UUID
			t          domain.Tag
		)
		if err := rows.Scan(&activityID, &t.ID, &t.Name); err != nil {
			return nil, fmt.Errorf("load activity tags: %w", err)
		}
		result[activityID] = append(result[activityID], t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load activity tags: %w", err)
	}

	return result, nil
}

// ---------------------------------------------------------------------------
// Row scanning helpers
// ---------------------------------------------------------------------------

func scanActivity(r pgx.Row) (*domain.Activity, error) {
	var (
		a           domain.Activity
		description pgtype.Text
		endTime     pgtype.Timestamptz
		duration    pgtype.Int8
		scheduled   pgtype.Timestamptz
		status      string
		lastStart   pgtype.Timestamptz
	)

	if err := r.Scan(&a.ID, &a.UserID, &a.Title, &description, &a.StartTime,
		&endTime, &duration, &scheduled, &a.Timer.RecordedSeconds, &status,
		&lastStart, &a.Notified); err != nil {
		return nil, err
	}

	a.Timer.Status = domain.TimerStatus(status)
	if description.Valid {
		a.Description = &description.String
	}
	if endTime.Valid {
		a.EndTime = &endTime.Time
	}
	if duration.Valid {
		a.Duration = &duration.Int64
	}
	if scheduled.Valid {
		a.ScheduledTime = &scheduled.Time
	}
	if lastStart.Valid {
		a.Timer.LastStart = &lastStart.Time
	}

	return &a, nil
}

func tagIDs(tags []domain.Tag) []uuid.UUID {
	ids := make([]uuid.UUID, len(tags))
	for i, t := range tags {
		ids[i] = t.ID
	}
	return ids
}

// ---------------------------------------------------------------------------
// pgtype helpers
// ---------------------------------------------------------------------------

func ptrStringToPgText(s *string) pgtype.Text {
	if s == nil {
		return pgtype.Text{}
	}
	return pgtype.Text{String: *s, Valid: true}
}

func ptrTimeToPgTimestamptz(t *time.Time) pgtype.Timestamptz {
	if t == nil {
		return pgtype.Timestamptz{}
	}
	return pgtype.Timestamptz{Time: *t, Valid: true}
}

func ptrInt64ToPgInt8(v *int64) pgtype.Int8 {
	if v == nil {
		return pgtype.Int8{}
	}
	return pgtype.Int8{Int64: *v, Valid: true}
}
