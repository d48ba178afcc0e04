package domain

// Participant is a user's membership record within one bridged instance.
// Display identity is computed once at join time and never recomputed;
// Anonymous is fixed for the lifetime of the record.
type Participant struct {
	User        *User
	Anonymous   bool
	DisplayName string
	AvatarURL   string

	// Index is the insertion position within the room at creation time.
	Index int
}
