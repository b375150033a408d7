// Package parser turns raw commit subject lines into CommitRecords.
package parser

import (
	"strings"

	"github.com/thomas-vilte/matelog/internal/models"
	"github.com/thomas-vilte/matelog/internal/regex"
)

// ticketMatch is the capture result of one of the subject patterns.
type ticketMatch struct {
	Ticket      string
	Abbrev      string
	Description string
	Message     string
}

// ParseLines parses every line in order. It never drops a line.
func ParseLines(lines []string) []models.CommitRecord {
	records := make([]models.CommitRecord, 0, len(lines))
	for _, line := range lines {
		records = append(records, ParseLine(line))
	}
	return records
}

// ParseLine applies the structured subject pattern, then the merge-style
// branch pattern, and falls back to a ticketless record holding the whole line.
func ParseLine(line string) models.CommitRecord {
	if m, ok := matchSubject(line); ok {
		return models.CommitRecord{
			TicketKey:   m.Ticket,
			Abbrev:      m.Abbrev,
			Description: strings.TrimSpace(m.Description),
			Message:     strings.TrimSpace(m.Message),
		}
	}

	if m, ok := matchMergeBranch(line); ok {
		return models.CommitRecord{
			TicketKey:   m.Ticket,
			Description: strings.ReplaceAll(m.Description, "-", " "),
		}
	}

	return models.CommitRecord{
		Message: strings.TrimSpace(line),
	}
}

func matchSubject(line string) (ticketMatch, bool) {
	groups, ok := regex.Captures(regex.TicketSubject, line)
	if !ok {
		return ticketMatch{}, false
	}
	return ticketMatch{
		Ticket:      groups["ticket"],
		Abbrev:      groups["abbr"],
		Description: groups["description"],
		Message:     groups["message"],
	}, true
}

func matchMergeBranch(line string) (ticketMatch, bool) {
	groups, ok := regex.Captures(regex.MergeTicket, line)
	if !ok {
		return ticketMatch{}, false
	}
	return ticketMatch{
		Ticket:      groups["ticket"],
		Description: groups["description"],
	}, true
}
