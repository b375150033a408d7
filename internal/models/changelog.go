package models

// UnreleasedVersion labels a changelog that is not tied to a release tag.
const UnreleasedVersion = "Unreleased"

type (
	// CommitRecord is the structured view of a single commit subject line.
	CommitRecord struct {
		TicketKey   string
		Abbrev      string
		Description string
		Message     string
	}

	// MessageGroup holds every record that shares the exact same Message text.
	MessageGroup struct {
		Message string
		Records []CommitRecord
	}

	// CategorizedGroups maps each category to its message groups in first-seen order.
	CategorizedGroups map[Category][]MessageGroup

	// TicketGroup is one rendered bullet: a ticket and its distinct messages.
	TicketGroup struct {
		TicketKey      string
		Description    string
		Messages       []string
		Representative CommitRecord
	}

	// Section is a category with at least one ticket group.
	Section struct {
		Category Category
		Tickets  []TicketGroup
	}

	// ReleaseMetadata describes the reference range a changelog covers.
	ReleaseMetadata struct {
		FromTag     string
		ToTag       string
		Version     string
		ReleaseDate string
	}

	// Changelog is the fully grouped report ready for rendering.
	Changelog struct {
		Metadata ReleaseMetadata
		Sections []Section
	}
)

// Count returns the number of distinct messages under the ticket.
func (g TicketGroup) Count() int {
	return len(g.Messages)
}

// IsEmpty reports whether the changelog has nothing to render below the heading.
func (c Changelog) IsEmpty() bool {
	return len(c.Sections) == 0
}
