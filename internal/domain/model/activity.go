// Package model contains domain models passed between layers.
package model

// Activity is one extracurricular activity and its enrolled students.
// Field names mirror the JSON contract of GET /activities.
type Activity struct {
	Description     string   `json:"description"`
	Schedule        string   `json:"schedule"`
	MaxParticipants int      `json:"max_participants"` // informational; signups never check it
	Participants    []string `json:"participants"`     // insertion order, unique emails
}

// Catalog maps activity names to their records.
type Catalog map[string]Activity

// Clone returns a deep copy of a. Participants is never nil on the copy so
// an empty roster encodes as [] rather than null.
func (a Activity) Clone() Activity {
	out := a
	out.Participants = make([]string, len(a.Participants))
	copy(out.Participants, a.Participants)
	return out
}

// Has reports whether email is enrolled in the activity.
func (a Activity) Has(email string) bool {
	return a.indexOf(email) >= 0
}

func (a Activity) indexOf(email string) int {
	for i, p := range a.Participants {
		if p == email {
			return i
		}
	}
	return -1
}

// Without returns the roster with email removed, keeping the order of the
// remaining participants. The receiver is not modified.
func (a Activity) Without(email string) []string {
	i := a.indexOf(email)
	if i < 0 {
		return a.Participants
	}
	out := make([]string, 0, len(a.Participants)-1)
	out = append(out, a.Participants[:i]...)
	return append(out, a.Participants[i+1:]...)
}

// Clone returns a deep copy of the catalog.
func (c Catalog) Clone() Catalog {
	out := make(Catalog, len(c))
	for name, a := range c {
		out[name] = a.Clone()
	}
	return out
}

// ParticipantCount returns the number of enrollments across all activities.
func (c Catalog) ParticipantCount() int {
	n := 0
	for _, a := range c {
		n += len(a.Participants)
	}
	return n
}

// Confirmation is returned by a successful signup or unregister.
type Confirmation struct {
	Activity string
	Email    string
	Message  string
}
