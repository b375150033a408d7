package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/thomas-vilte/matelog/internal/models"
)

// Markdown writes the changelog as a Markdown document.
//
// The output is deterministic: the same changelog always renders to the same bytes.
func (r *Renderer) Markdown(w io.Writer, cl models.Changelog) error {
	var b strings.Builder

	b.WriteString("# " + r.titleText() + "\n\n")
	b.WriteString(r.versionHeading(cl.Metadata) + "\n")

	for _, section := range cl.Sections {
		if len(section.Tickets) == 0 {
			continue
		}
		b.WriteString("\n### " + r.categoryTitle(section.Category) + "\n\n")
		for _, ticket := range section.Tickets {
			b.WriteString(r.ticketLine(ticket) + "\n")
			for _, msg := range ticket.Messages {
				b.WriteString("  - " + msg + "\n")
			}
		}
	}

	if _, err := io.WriteString(w, b.String()); err != nil {
		return fmt.Errorf("writing markdown: %w", err)
	}
	return nil
}

func (r *Renderer) versionHeading(meta models.ReleaseMetadata) string {
	version := r.versionText(meta.Version)
	if url := r.links.CompareURL(meta.FromTag, meta.ToTag); url != "" {
		version = fmt.Sprintf("[%s](%s)", version, url)
	}
	if meta.ReleaseDate == "" {
		return "## " + version
	}
	return fmt.Sprintf("## %s (%s)", version, meta.ReleaseDate)
}

func (r *Renderer) ticketLine(ticket models.TicketGroup) string {
	ref := ticket.TicketKey
	if url := r.links.IssueURL(ticket.TicketKey); url != "" {
		ref = fmt.Sprintf("[%s](%s)", ticket.TicketKey, url)
	}

	line := "- " + ref
	if ticket.Description != "" {
		line += " " + ticket.Description
	}
	if ticket.Count() > 1 {
		line += fmt.Sprintf(" [%d]", ticket.Count())
	}
	return line
}
