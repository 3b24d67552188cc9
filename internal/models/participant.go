package models

import "strings"

// Participant represents a person who can pay for or share in expenses.
type Participant struct {
	// ID is the unique identifier for the participant (UUID format).
	ID string

	// Name is the display name of the participant.
	Name string

	// Email is optional. Participants registered on first sign-in are
	// keyed by email so repeated sign-ins resolve to the same record.
	Email string

	// CreatedAt is the Unix timestamp when the participant was added.
	CreatedAt int64
}

// NormalizeEmail lowercases and trims an email address for lookups.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ParticipantIndex maps participant IDs to their position in roster order.
func ParticipantIndex(participants []Participant) map[string]int {
	index := make(map[string]int, len(participants))
	for i, p := range participants {
		index[p.ID] = i
	}
	return index
}
