// Package lifecycle holds the single definition of how a job posting moves
// between statuses and what each move changes besides the status itself.
package lifecycle

import (
	"errors"
	"fmt"
	"time"

	"github.com/joshu-sajeev/jobboard/internal/config"
)

// PublicationPeriod is how long an approved job stays listed.
const PublicationPeriod = 30 * 24 * time.Hour

var ErrInvalidTransition = errors.New("invalid status transition")

var AllStatuses = []config.JobStatus{
	config.JobStatusDraft,
	config.JobStatusPending,
	config.JobStatusActive,
	config.JobStatusExpired,
	config.JobStatusRejected,
}

type Transition struct {
	From config.JobStatus
	To   config.JobStatus
}

var ValidTransitions = []Transition{
	{From: config.JobStatusDraft, To: config.JobStatusPending},
	{From: config.JobStatusPending, To: config.JobStatusActive},
	{From: config.JobStatusPending, To: config.JobStatusRejected},
	{From: config.JobStatusActive, To: config.JobStatusExpired},
}

// SideEffects are the field changes that accompany a status change.
// Nil fields are left untouched.
type SideEffects struct {
	PublishedAt *time.Time
	ExpiresAt   *time.Time
}

type Result struct {
	Status      config.JobStatus
	Changed     bool
	SideEffects SideEffects
}

type TransitionError struct {
	From config.JobStatus
	To   config.JobStatus
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("cannot move job from %q to %q", e.From, e.To)
}

func (e *TransitionError) Is(target error) bool {
	return target == ErrInvalidTransition
}

func IsValidStatus(s config.JobStatus) bool {
	for _, st := range AllStatuses {
		if st == s {
			return true
		}
	}
	return false
}

func CanTransition(from, to config.JobStatus) bool {
	for _, t := range ValidTransitions {
		if t.From == from && t.To == to {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no transition leaves s.
func IsTerminal(s config.JobStatus) bool {
	for _, t := range ValidTransitions {
		if t.From == s {
			return false
		}
	}
	return IsValidStatus(s)
}

func isDestination(s config.JobStatus) bool {
	for _, t := range ValidTransitions {
		if t.To == s {
			return true
		}
	}
	return false
}

// ApplyTransition decides the outcome of moving a job from current to
// target at time now. Asking for the status a job already holds is a no-op
// so that redelivered requests succeed without repeating side effects.
func ApplyTransition(current, target config.JobStatus, now time.Time) (Result, error) {
	if current == target && isDestination(target) {
		return Result{Status: current}, nil
	}

	if !CanTransition(current, target) {
		return Result{Status: current}, &TransitionError{From: current, To: target}
	}

	res := Result{Status: target, Changed: true}
	if target == config.JobStatusActive {
		published := now.UTC()
		expires := published.Add(PublicationPeriod)
		res.SideEffects = SideEffects{PublishedAt: &published, ExpiresAt: &expires}
	}

	return res, nil
}
