package domain

import (
	"fmt"
	"strings"
	"time"
)

// TimerStatus is the state of an activity timer.
type TimerStatus string

const (
	TimerStopped TimerStatus = "stopped"
	TimerRunning TimerStatus = "running"
	TimerPaused  TimerStatus = "paused"
)

// TimerAction is one of the four recognized timer commands.
type TimerAction string

const (
	ActionStart TimerAction = "start"
	ActionPause TimerAction = "pause"
	ActionStop  TimerAction = "stop"
	ActionSave  TimerAction = "save"
)

// ParseTimerAction matches an action name case-insensitively.
// Unknown names return ErrInvalidAction.
func ParseTimerAction(s string) (TimerAction, error) {
	switch TimerAction(strings.ToLower(s)) {
	case ActionStart:
		return ActionStart, nil
	case ActionPause:
		return ActionPause, nil
	case ActionStop:
		return ActionStop, nil
	case ActionSave:
		return ActionSave, nil
	default:
		return "", fmt.Errorf("%q: %w", s, ErrInvalidAction)
	}
}

// TimerState holds the timer fields of an activity.
// Invariant: LastStart is non-nil iff Status == TimerRunning.
type TimerState struct {
	Status          TimerStatus
	RecordedSeconds int64 // cumulative, never decreases
	LastStart       *time.Time
}

// NewTimerState returns the initial state of a fresh activity.
func NewTimerState() TimerState {
	return TimerState{Status: TimerStopped}
}

// TimerEventKind identifies a notifiable timer transition.
type TimerEventKind string

const (
	TimerEventStarted TimerEventKind = "started"
	TimerEventPaused  TimerEventKind = "paused"
	TimerEventStopped TimerEventKind = "stopped"
)

// TimerEvent describes a successful transition worth notifying about.
// Apply returns nil for no-op transitions and for save.
type TimerEvent struct {
	Kind            TimerEventKind
	RecordedSeconds int64
}

// Message renders the human-readable notification text for the event.
func (e TimerEvent) Message(title string) string {
	switch e.Kind {
	case TimerEventStarted:
		return "▶️ Timer started for task: " + title
	case TimerEventPaused:
		return "⏸️ Timer paused for task: " + title +
			"\nSaved time: " + FormatRecorded(e.RecordedSeconds)
	case TimerEventStopped:
		return "⏹️ Timer stopped for task: " + title +
			"\nTotal time: " + FormatRecorded(e.RecordedSeconds)
	default:
		return ""
	}
}

// Apply runs one timer action against the state at wall-clock time now and
// returns the new state plus the notification event, if any.
//
//	running  + start → no-op (already running, no event)
//	stopped/paused + start → running, window opens at now
//	running  + pause → paused, accrues the open window
//	stopped/paused + pause → ErrTimerNotRunning
//	stopped  + stop  → no-op (already stopped, no event)
//	running/paused + stop → stopped, accrues if running
//	running  + save  → accrues and restarts the window, status unchanged, no event
//	stopped/paused + save → pure no-op
func (s TimerState) Apply(action TimerAction, now time.Time) (TimerState, *TimerEvent, error) {
	switch action {
	case ActionStart:
		if s.Status == TimerRunning {
			return s, nil, nil
		}
		s.Status = TimerRunning
		s.LastStart = &now
		return s, &TimerEvent{Kind: TimerEventStarted, RecordedSeconds: s.RecordedSeconds}, nil

	case ActionPause:
		if s.Status != TimerRunning {
			return s, nil, ErrTimerNotRunning
		}
		s.RecordedSeconds += s.elapsed(now)
		s.Status = TimerPaused
		s.LastStart = nil
		return s, &TimerEvent{Kind: TimerEventPaused, RecordedSeconds: s.RecordedSeconds}, nil

	case ActionStop:
		if s.Status == TimerStopped {
			return s, nil, nil
		}
		if s.Status == TimerRunning {
			s.RecordedSeconds += s.elapsed(now)
		}
		s.Status = TimerStopped
		s.LastStart = nil
		return s, &TimerEvent{Kind: TimerEventStopped, RecordedSeconds: s.RecordedSeconds}, nil

	case ActionSave:
		if s.Status == TimerRunning {
			s.RecordedSeconds += s.elapsed(now)
			s.LastStart = &now
		}
		return s, nil, nil

	default:
		return s, nil, fmt.Errorf("%q: %w", action, ErrInvalidAction)
	}
}

// Reconcile accrues the open running window into RecordedSeconds and advances
// LastStart to now, so successive reads never double-count elapsed time.
// Returns the updated state and the accrued delta; identity when not running.
func Reconcile(s TimerState, now time.Time) (TimerState, int64) {
	if s.Status != TimerRunning || s.LastStart == nil {
		return s, 0
	}
	delta := s.elapsed(now)
	s.RecordedSeconds += delta
	s.LastStart = &now
	return s, delta
}

// elapsed returns whole seconds since LastStart, floored, clamped at zero.
func (s TimerState) elapsed(now time.Time) int64 {
	if s.LastStart == nil {
		return 0
	}
	secs := int64(now.Sub(*s.LastStart) / time.Second)
	if secs < 0 {
		return 0
	}
	return secs
}

// FormatRecorded renders cumulative seconds as HH:MM:SS.
func FormatRecorded(seconds int64) string {
	if seconds < 0 {
		seconds = 0
	}
	h := seconds / 3600
	m := (seconds % 3600) / 60
	s := seconds % 60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}
