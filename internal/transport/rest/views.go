package rest

import (
	"time"

	"github.com/plantracker/plantracker-backend/internal/domain"
)

type userView struct {
	ID             string  `json:"id"`
	Email          string  `json:"email"`
	IsActive       bool    `json:"is_active"`
	TelegramChatID *string `json:"telegram_chat_id"`
}

func toUserView(u *domain.User) userView {
	return userView{
		ID:             u.ID.String(),
		Email:          u.Email,
		IsActive:       u.IsActive,
		TelegramChatID: u.TelegramChatID,
	}
}

type tagView struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func toTagView(t domain.Tag) tagView {
	return tagView{ID: t.ID.String(), Name: t.Name}
}

func toTagViews(tags []domain.Tag) []tagView {
	views := make([]tagView, len(tags))
	for i, t := range tags {
		views[i] = toTagView(t)
	}
	return views
}

type activityView struct {
	ID             string     `json:"id"`
	UserID         string     `json:"user_id"`
	Title          string     `json:"title"`
	Description    *string    `json:"description"`
	StartTime      time.Time  `json:"start_time"`
	EndTime        *time.Time `json:"end_time"`
	Duration       *int64     `json:"duration"`
	ScheduledTime  *time.Time `json:"scheduled_time"`
	RecordedTime   int64      `json:"recorded_time"`
	TimerStatus    string     `json:"timer_status"`
	LastTimerStart *time.Time `json:"last_timer_start"`
	Tags           []tagView  `json:"tags"`
}

func toActivityView(a *domain.Activity) activityView {
	return activityView{
		ID:             a.ID.String(),
		UserID:         a.UserID.String(),
		Title:          a.Title,
		Description:    a.Description,
		StartTime:      a.StartTime,
		EndTime:        a.EndTime,
		Duration:       a.Duration,
		ScheduledTime:  a.ScheduledTime,
		RecordedTime:   a.Timer.RecordedSeconds,
		TimerStatus:    string(a.Timer.Status),
		LastTimerStart: a.Timer.LastStart,
		Tags:           toTagViews(a.Tags),
	}
}

func toActivityViews(activities []domain.Activity) []activityView {
	views := make([]activityView, len(activities))
	for i := range activities {
		views[i] = toActivityView(&activities[i])
	}
	return views
}
