package domain

import (
	"strings"
	"time"
)

// ConversationState marks an in-progress multi-turn flow for a sender.
type ConversationState string

const (
	StateNone        ConversationState = "none"
	StateAwaitingDOB ConversationState = "awaiting_dob"
)

// ParseConversationState maps a stored value back to a known state. Anything
// unrecognised is StateNone so a sender can never be left in a state the
// dispatcher cannot exit.
func ParseConversationState(s string) ConversationState {
	switch ConversationState(strings.TrimSpace(s)) {
	case StateAwaitingDOB:
		return StateAwaitingDOB
	default:
		return StateNone
	}
}

// ScheduleEntry is one computed vaccination due date.
type ScheduleEntry struct {
	Vaccine  string    `json:"vaccine"`
	DueDate  time.Time `json:"due_date"`
	DueLabel string    `json:"due_label"`
}

// Profile is the persisted per-sender record.
type Profile struct {
	SenderID    string
	Language    Language
	District    string
	State       ConversationState
	Schedule    []ScheduleEntry
	DateOfBirth *time.Time
	UpdatedAt   string
}

// NewProfile returns the profile used for a sender seen for the first time.
func NewProfile(senderID string) Profile {
	return Profile{
		SenderID: senderID,
		Language: DefaultLanguage,
		State:    StateNone,
	}
}

// ProfileUpdate is a partial profile write. Nil fields are left untouched.
type ProfileUpdate struct {
	Language    *Language
	District    *string
	State       *ConversationState
	Schedule    *[]ScheduleEntry
	DateOfBirth *time.Time
}

// IsEmpty reports whether the update carries no fields.
func (u ProfileUpdate) IsEmpty() bool {
	return u.Language == nil && u.District == nil && u.State == nil && u.Schedule == nil && u.DateOfBirth == nil
}

// FeedbackRecord is an append-only piece of free-text user feedback.
type FeedbackRecord struct {
	SenderID  string
	Message   string
	Timestamp time.Time
}
