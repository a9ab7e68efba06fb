// models/status.go
package models

import "fmt"

// IdeaStatus is the review lifecycle state of an idea.
type IdeaStatus string

const (
	StatusSubmitted  IdeaStatus = "Submitted"
	StatusInProgress IdeaStatus = "In Progress"
	StatusApproved   IdeaStatus = "Approved"
	StatusRejected   IdeaStatus = "Rejected"
	StatusCompleted  IdeaStatus = "Completed"
)

// ParseIdeaStatus validates a raw status value against the lifecycle enum.
func ParseIdeaStatus(raw string) (IdeaStatus, error) {
	switch IdeaStatus(raw) {
	case StatusSubmitted, StatusInProgress, StatusApproved, StatusRejected, StatusCompleted:
		return IdeaStatus(raw), nil
	default:
		return "", fmt.Errorf("invalid status value: %q", raw)
	}
}

// CanEdit reports whether the idea may still be edited or deleted by its
// submitter. Only freshly submitted ideas are mutable.
func (s IdeaStatus) CanEdit() bool {
	return s == StatusSubmitted
}

// Terminal reports whether the lifecycle is closed. A completed idea
// accepts no further reward.
func (s IdeaStatus) Terminal() bool {
	return s == StatusCompleted
}

// Policy messages returned when a lifecycle guard rejects a mutation.
const (
	ErrMsgEditGuard   = `Only ideas in "Submitted" status can be edited`
	ErrMsgDeleteGuard = `Only ideas in "Submitted" status can be deleted`
	ErrMsgCompleted   = "Idea is already completed."
)
