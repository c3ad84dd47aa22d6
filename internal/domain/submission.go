package domain

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// SubmissionStatus is the state of one attempt at an induction.
type SubmissionStatus string

const (
	// StatusInProgress is the initial state, just started.
	StatusInProgress SubmissionStatus = "in_progress"
	// StatusPending means started but not every video is watched and/or
	// not every question is answered, or new chapters were merged in.
	StatusPending SubmissionStatus = "pending"
	// StatusCompleted is terminal until reconciliation demotes it back to
	// pending.
	StatusCompleted SubmissionStatus = "completed"
)

// Valid reports whether s is a known status.
func (s SubmissionStatus) Valid() bool {
	switch s {
	case StatusInProgress, StatusPending, StatusCompleted:
		return true
	}
	return false
}

// Submission is one user's attempt at an induction, anchored to an
// immutable snapshot. At most one active (in_progress/pending) and one
// completed submission coexist per (user, induction) pair: completing
// does not delete the record, since a later content change can reopen it.
type Submission struct {
	ID          string
	UserID      string
	InductionID string
	Status      SubmissionStatus
	Snapshot    Snapshot
	CompletedAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Answer holds the latest answer per (submission, question); resubmission
// overwrites.
type Answer struct {
	ID           string
	SubmissionID string
	QuestionID   string
	Payload      AnswerPayload
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// AnswerPayload is a user's answer to one question: a scalar string for
// single_choice/text questions, an array of strings for multi_choice.
// Both shapes round-trip through JSON unchanged.
type AnswerPayload struct {
	values  []string
	isArray bool
}

// NewScalarAnswer builds a scalar payload.
func NewScalarAnswer(value string) AnswerPayload {
	return AnswerPayload{values: []string{value}}
}

// NewArrayAnswer builds an array payload.
func NewArrayAnswer(values []string) AnswerPayload {
	vs := make([]string, len(values))
	copy(vs, values)
	return AnswerPayload{values: vs, isArray: true}
}

// Values returns the payload elements.
func (p AnswerPayload) Values() []string {
	return p.values
}

// First returns the payload's first element, or the payload itself when
// it is a scalar. Empty payloads yield "".
func (p AnswerPayload) First() string {
	if len(p.values) == 0 {
		return ""
	}
	return p.values[0]
}

// IsArray reports whether the payload was submitted as an array.
func (p AnswerPayload) IsArray() bool {
	return p.isArray
}

// IsEmpty reports whether the payload carries no usable value.
func (p AnswerPayload) IsEmpty() bool {
	if len(p.values) == 0 {
		return true
	}
	if !p.isArray {
		return p.values[0] == ""
	}
	return false
}

// MarshalJSON implements the json.Marshaler interface
func (p AnswerPayload) MarshalJSON() ([]byte, error) {
	if p.IsArray() {
		if p.values == nil {
			return json.Marshal([]string{})
		}
		return json.Marshal(p.values)
	}
	return json.Marshal(p.First())
}

// UnmarshalJSON implements the json.Unmarshaler interface. Scalars may
// arrive as strings or numbers; arrays may mix both.
func (p *AnswerPayload) UnmarshalJSON(data []byte) error {
	var raw interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch v := raw.(type) {
	case nil:
		*p = AnswerPayload{}
	case string:
		*p = AnswerPayload{values: []string{v}}
	case float64:
		*p = AnswerPayload{values: []string{formatJSONNumber(v)}}
	case bool:
		*p = AnswerPayload{values: []string{fmt.Sprintf("%t", v)}}
	case []interface{}:
		values := make([]string, 0, len(v))
		for _, item := range v {
			switch it := item.(type) {
			case string:
				values = append(values, it)
			case float64:
				values = append(values, formatJSONNumber(it))
			case bool:
				values = append(values, fmt.Sprintf("%t", it))
			case nil:
				values = append(values, "")
			default:
				return fmt.Errorf("answer payload: unsupported array element %T", item)
			}
		}
		*p = AnswerPayload{values: values, isArray: true}
	default:
		return fmt.Errorf("answer payload: unsupported type %T", raw)
	}
	return nil
}

func formatJSONNumber(f float64) string {
	if f == float64(int64(f)) {
		return fmt.Sprintf("%d", int64(f))
	}
	return fmt.Sprintf("%g", f)
}

// SubmissionRepository defines the interface for submission and answer
// persistence. UpsertAnswer must be atomic on the (submission, question)
// uniqueness key: last writer wins, no duplicate rows.
type SubmissionRepository interface {
	CreateSubmission(ctx context.Context, submission *Submission) error
	GetSubmissionByID(ctx context.Context, id string) (*Submission, error)
	// GetSubmissionByStatus returns the user's submission for the
	// induction in one of the given statuses, or nil when none exists.
	GetSubmissionByStatus(ctx context.Context, userID, inductionID string, statuses []SubmissionStatus) (*Submission, error)
	UpdateStatus(ctx context.Context, id string, status SubmissionStatus, completedAt *time.Time) error
	// UpdateSnapshot persists a reconciled snapshot together with the
	// resulting status in one write.
	UpdateSnapshot(ctx context.Context, id string, snapshot Snapshot, status SubmissionStatus) error
	ListSubmissions(ctx context.Context, filters SubmissionFilters, limit, offset int) ([]Submission, int, error)
	ListSubmissionsByUser(ctx context.Context, userID string) ([]Submission, error)

	UpsertAnswer(ctx context.Context, answer *Answer) error
	GetAnswers(ctx context.Context, submissionID string) (map[string]AnswerPayload, error)
}

// SubmissionFilters narrows the admin submission listing.
type SubmissionFilters struct {
	InductionID string
	Status      SubmissionStatus
	DateFrom    *time.Time
	DateTo      *time.Time
}
