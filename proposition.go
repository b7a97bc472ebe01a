package proptext

import (
	"fmt"
	"time"
)

type AuthorID int64

// Author is a deputy who signed at least one proposition.
type Author struct {
	ID    AuthorID
	Name  string
	Party string
	State string
}

type PropositionID int64

type TextStatus string

const (
	TextStatusPending   TextStatus = "PENDING"
	TextStatusExtracted TextStatus = "EXTRACTED"
	TextStatusNoText    TextStatus = "NO_TEXT"
	TextStatusFailed    TextStatus = "FAILED"
)

func (s TextStatus) Valid() bool {
	switch s {
	case TextStatusPending, TextStatusExtracted, TextStatusNoText, TextStatusFailed:
		return true
	}
	return false
}

// Proposition is a bill submitted to the Chamber of Deputies together with
// the state of its full text extraction.
type Proposition struct {
	ID            PropositionID
	URL           string
	Type          string
	SubmittedAt   time.Time
	AuthorIDs     []AuthorID
	Text          string
	Status        TextStatus
	StatusMessage string
	Updated       time.Time
}

// CompleteWithStatus records the outcome of a text extraction. Only a
// pending proposition can be completed and the new status must be one of
// TextStatusExtracted, TextStatusNoText or TextStatusFailed.
func (p *Proposition) CompleteWithStatus(newStatus TextStatus, text, message string, updatedAt time.Time) error {
	if p.Status != TextStatusPending {
		return fmt.Errorf("cannot change status from %s to %s", p.Status, newStatus)
	}

	switch newStatus {
	case TextStatusExtracted:
		if text == "" {
			return fmt.Errorf("cannot complete as %s without text", newStatus)
		}
	case TextStatusNoText, TextStatusFailed:
		text = ""
	default:
		return fmt.Errorf("%s is not a completion status", newStatus)
	}

	p.Status = newStatus
	p.Text = text
	p.StatusMessage = message
	p.Updated = updatedAt

	return nil
}

// Reset puts the proposition back in the extraction queue.
func (p *Proposition) Reset(updatedAt time.Time) {
	p.Status = TextStatusPending
	p.Text = ""
	p.StatusMessage = ""
	p.Updated = updatedAt
}

type PropositionFilter struct {
	Status           TextStatus
	IDs              []PropositionID
	WithoutSummary   bool
	WithoutTopic     bool
	WithoutWordCloud bool
}
