package model

import "time"

type AttemptStatus string

const (
	AttemptInProgress AttemptStatus = "in_progress"
	AttemptCompleted  AttemptStatus = "completed"
)

// Attempt is one run through a quiz. Exactly one of UserID / GuestSessionID
// is set. Status is the authoritative state flag; TimeSpentSeconds stays 0
// until completion but a completed attempt may legitimately record 0 seconds.
type Attempt struct {
	BaseModel
	QuizID           uint          `gorm:"index;not null" json:"quizId"`
	UserID           *uint         `gorm:"index" json:"userId,omitempty"`
	GuestSessionID   *string       `gorm:"size:36;index" json:"guestSessionId,omitempty"`
	Status           AttemptStatus `gorm:"size:20;not null;default:'in_progress'" json:"status"`
	Score            int           `json:"score"`
	TimeSpentSeconds int           `json:"timeSpentSeconds"`
	StartedAt        time.Time     `json:"startedAt"`
	CompletedAt      *time.Time    `json:"completedAt,omitempty"`
}

func (Attempt) TableName() string {
	return "attempts"
}

func (a *Attempt) IsCompleted() bool {
	return a.Status == AttemptCompleted
}

// OwnedBy reports whether the principal started this attempt.
func (a *Attempt) OwnedBy(p Principal) bool {
	if p.IsUser() {
		return a.UserID != nil && *a.UserID == p.UserID
	}
	if p.IsGuest() {
		return a.GuestSessionID != nil && *a.GuestSessionID == p.GuestSessionID
	}
	return false
}
