// Package services defines the business logic for reclamations: the status
// state machine, archiving, creation, and the reminder policy. This file
// centralizes service-level error values so that they can be consistently
// returned by service methods and checked by callers.
//
// Translation into user-facing messages or HTTP status codes is performed
// at the handler layer.
package services

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrNotFound indicates that the referenced reclamation does not exist.
	ErrNotFound = errors.New("reclamation not found")

	// ErrInvalidStatus is returned when a requested status is not one of
	// EN_ATTENTE, EN_COURS, TRAITEE, REJETEE.
	ErrInvalidStatus = errors.New("invalid status")

	// ErrInvalidState is returned when an operation's precondition on the
	// current state does not hold (archive of a non-TRAITEE reclamation,
	// unarchive of a non-archived one).
	ErrInvalidState = errors.New("invalid state for this operation")

	// ErrAlreadyResolved rejects a manual reminder on a TRAITEE reclamation.
	ErrAlreadyResolved = errors.New("reclamation already resolved")

	// ErrCooldown rejects a manual reminder while the cooldown window is
	// active. The concrete error is always a *CooldownError.
	ErrCooldown = errors.New("reminder cooldown active")

	// ErrValidation is matched by every *ValidationError.
	ErrValidation = errors.New("validation failed")

	// ErrForbidden is returned when the actor may not touch the reclamation.
	ErrForbidden = errors.New("not allowed for this reclamation")
)

// CooldownError carries the whole minutes left before another manual
// reminder is accepted (at least 1).
type CooldownError struct {
	RemainingMinutes int
}

func (e *CooldownError) Error() string {
	return fmt.Sprintf("reminder cooldown active, retry in %d min", e.RemainingMinutes)
}

// Is makes errors.Is(err, ErrCooldown) succeed.
func (e *CooldownError) Is(target error) bool { return target == ErrCooldown }

// ValidationError lists the offending input fields with a short reason each.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Is makes errors.Is(err, ErrValidation) succeed.
func (e *ValidationError) Is(target error) bool { return target == ErrValidation }
