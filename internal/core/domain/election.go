package domain

import (
	"time"

	"github.com/google/uuid"
)

// Election is open while now is before EndTime. StartTime is informational.
// An empty State and LGA make the election national.
type Election struct {
	ID         uuid.UUID   `json:"id"`
	Title      string      `json:"title"`
	State      string      `json:"state,omitempty"`
	LGA        string      `json:"lga,omitempty"`
	StartTime  time.Time   `json:"start_time"`
	EndTime    time.Time   `json:"end_time"`
	Candidates []uuid.UUID `json:"candidates"`
	CreatedAt  time.Time   `json:"created_at"`
}

func (e *Election) IsOpen(now time.Time) bool {
	return now.Before(e.EndTime)
}

// HasCandidate reports whether candidateID is registered under the election.
func (e *Election) HasCandidate(candidateID uuid.UUID) bool {
	for _, id := range e.Candidates {
		if id == candidateID {
			return true
		}
	}
	return false
}

// ElectionUpdate holds the fields of a partial update. Nil fields are left untouched.
type ElectionUpdate struct {
	Title     *string    `json:"title,omitempty"`
	State     *string    `json:"state,omitempty"`
	LGA       *string    `json:"lga,omitempty"`
	StartTime *time.Time `json:"start_time,omitempty"`
	EndTime   *time.Time `json:"end_time,omitempty"`
}

func (u ElectionUpdate) IsEmpty() bool {
	return u.Title == nil && u.State == nil && u.LGA == nil && u.StartTime == nil && u.EndTime == nil
}

// Apply copies every present field of u onto e.
func (u ElectionUpdate) Apply(e *Election) {
	if u.Title != nil {
		e.Title = *u.Title
	}
	if u.State != nil {
		e.State = *u.State
	}
	if u.LGA != nil {
		e.LGA = *u.LGA
	}
	if u.StartTime != nil {
		e.StartTime = *u.StartTime
	}
	if u.EndTime != nil {
		e.EndTime = *u.EndTime
	}
}
