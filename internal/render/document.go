package render

import "github.com/thomas-vilte/matelog/internal/models"

// document is the structured encoding shared by the YAML and JSON outputs.
type document struct {
	Title       string            `json:"title" yaml:"title"`
	Version     string            `json:"version" yaml:"version"`
	FromTag     string            `json:"from_tag" yaml:"from_tag"`
	ToTag       string            `json:"to_tag" yaml:"to_tag"`
	ReleaseDate string            `json:"release_date,omitempty" yaml:"release_date,omitempty"`
	CompareURL  string            `json:"compare_url,omitempty" yaml:"compare_url,omitempty"`
	Sections    []sectionDocument `json:"sections" yaml:"sections"`
}

type sectionDocument struct {
	Category models.Category  `json:"category" yaml:"category"`
	Title    string           `json:"title" yaml:"title"`
	Tickets  []ticketDocument `json:"tickets" yaml:"tickets"`
}

type ticketDocument struct {
	Key         string   `json:"key" yaml:"key"`
	URL         string   `json:"url,omitempty" yaml:"url,omitempty"`
	Description string   `json:"description,omitempty" yaml:"description,omitempty"`
	Count       int      `json:"count" yaml:"count"`
	Messages    []string `json:"messages" yaml:"messages"`
}

func (r *Renderer) document(cl models.Changelog) document {
	doc := document{
		Title:       r.titleText(),
		Version:     r.versionText(cl.Metadata.Version),
		FromTag:     cl.Metadata.FromTag,
		ToTag:       cl.Metadata.ToTag,
		ReleaseDate: cl.Metadata.ReleaseDate,
		CompareURL:  r.links.CompareURL(cl.Metadata.FromTag, cl.Metadata.ToTag),
		Sections:    make([]sectionDocument, 0, len(cl.Sections)),
	}

	for _, section := range cl.Sections {
		if len(section.Tickets) == 0 {
			continue
		}
		sd := sectionDocument{
			Category: section.Category,
			Title:    r.categoryTitle(section.Category),
			Tickets:  make([]ticketDocument, 0, len(section.Tickets)),
		}
		for _, ticket := range section.Tickets {
			sd.Tickets = append(sd.Tickets, ticketDocument{
				Key:         ticket.TicketKey,
				URL:         r.links.IssueURL(ticket.TicketKey),
				Description: ticket.Description,
				Count:       ticket.Count(),
				Messages:    ticket.Messages,
			})
		}
		doc.Sections = append(doc.Sections, sd)
	}
	return doc
}
