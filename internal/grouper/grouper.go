// Package grouper arranges classified commit messages into per-ticket sections.
package grouper

import (
	"sort"
	"strings"

	"github.com/thomas-vilte/matelog/internal/models"
)

// Group builds the render sections from classified message groups.
// Sections follow the category display order and empty ones are omitted.
func Group(groups models.CategorizedGroups) []models.Section {
	sections := make([]models.Section, 0, len(groups))
	for _, category := range models.Categories() {
		tickets := GroupTickets(groups[category])
		if len(tickets) == 0 {
			continue
		}
		sections = append(sections, models.Section{
			Category: category,
			Tickets:  tickets,
		})
	}
	return sections
}

// GroupTickets groups the renderable records of one category by ticket key.
// Records without a ticket key or a message are skipped. Groups are sorted by
// ticket key and keep their messages in first-seen order.
func GroupTickets(messageGroups []models.MessageGroup) []models.TicketGroup {
	byTicket := make(map[string]*models.TicketGroup)
	seen := make(map[string]map[string]bool)
	keys := make([]string, 0)

	for _, mg := range messageGroups {
		for _, record := range mg.Records {
			if !renderable(record) {
				continue
			}

			group, ok := byTicket[record.TicketKey]
			if !ok {
				group = &models.TicketGroup{
					TicketKey:      record.TicketKey,
					Description:    record.Description,
					Representative: record,
				}
				byTicket[record.TicketKey] = group
				seen[record.TicketKey] = make(map[string]bool)
				keys = append(keys, record.TicketKey)
			}

			if seen[record.TicketKey][record.Message] {
				continue
			}
			seen[record.TicketKey][record.Message] = true
			group.Messages = append(group.Messages, record.Message)
		}
	}

	sort.Strings(keys)

	tickets := make([]models.TicketGroup, 0, len(keys))
	for _, key := range keys {
		tickets = append(tickets, *byTicket[key])
	}
	return tickets
}

func renderable(record models.CommitRecord) bool {
	return strings.TrimSpace(record.TicketKey) != "" && strings.TrimSpace(record.Message) != ""
}
