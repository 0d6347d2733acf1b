package domain

import (
	"time"

	"github.com/google/uuid"
)

// Tag is a user-visible label attached to activities. Names are unique and
// case-sensitive; a tag is created lazily the first time an activity
// references its name and is never deleted when activities go away.
type Tag struct {
	ID   uuid.UUID
	Name string
}

// Activity is the aggregate root of the tracker: per-user metadata plus the
// timer fields owned by the state machine in timer.go. An activity belongs to
// exactly one user and carries a set of tags (M2M, no duplicate pairs).
type Activity struct {
	ID            uuid.UUID
	UserID        uuid.UUID
	Title         string
	Description   *string
	StartTime     time.Time
	EndTime       *time.Time
	Duration      *int64 // planned duration, seconds
	ScheduledTime *time.Time
	Notified      bool // reserved for scheduled reminders
	Timer         TimerState
	Tags          []Tag
}

// ActivityUpdateParams carries a partial update: nil fields are left untouched.
// Tags != nil replaces the full tag set (an empty slice clears it).
type ActivityUpdateParams struct {
	Title         *string
	Description   *string
	Duration      *int64
	ScheduledTime *time.Time
	EndTime       *time.Time
	Tags          []string
}

// ActivityFilter narrows a list query. Tag is an exact-name match.
type ActivityFilter struct {
	Tag   *string
	Skip  int
	Limit int
}
