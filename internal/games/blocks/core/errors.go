package core

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidPlacement is wrapped by every PlacementError.
	ErrInvalidPlacement = errors.New("invalid placement")
	// ErrEmptyShape is returned for a piece without cells.
	ErrEmptyShape = errors.New("shape has no cells")
	// ErrMalformedShape is returned for duplicate offsets or oversized shapes.
	ErrMalformedShape = errors.New("malformed shape")
	// ErrExpiredSnapshot is returned when restoring outside the validity window.
	ErrExpiredSnapshot = errors.New("snapshot expired")
	// ErrSnapshotConsumed is returned when a snapshot is restored twice.
	ErrSnapshotConsumed = errors.New("snapshot already restored")
	// ErrSessionTerminated is returned for any mutation after termination.
	ErrSessionTerminated = errors.New("session terminated")
	// ErrNotActive is returned when a move is attempted outside the active state.
	ErrNotActive = errors.New("session is not active")
	// ErrNoRevive is returned when no revive decision is pending.
	ErrNoRevive = errors.New("no revive pending")
	// ErrPieceNotInHand is returned when the requested shape is not offered.
	ErrPieceNotInHand = errors.New("piece not in active set")
	// ErrInvalidCount is returned for a refill of zero or fewer pieces.
	ErrInvalidCount = errors.New("invalid piece count")
)

// RejectReason tells why a placement was refused.
type RejectReason uint8

const (
	RejectOutOfBounds RejectReason = iota
	RejectOverlap
)

// String returns a human-readable name for the reason.
func (r RejectReason) String() string {
	switch r {
	case RejectOutOfBounds:
		return "OutOfBounds"
	case RejectOverlap:
		return "Overlap"
	default:
		return "Unknown"
	}
}

// PlacementError describes the first offending cell of a refused placement.
type PlacementError struct {
	Reason RejectReason
	Cell   Cell
}

func (e *PlacementError) Error() string {
	return fmt.Sprintf("invalid placement: %s at %s", e.Reason, e.Cell)
}

// Unwrap allows errors.Is(err, ErrInvalidPlacement).
func (e *PlacementError) Unwrap() error {
	return ErrInvalidPlacement
}
