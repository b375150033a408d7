package regex

import "regexp"

var (
	// Commit subject patterns
	TicketSubject = regexp.MustCompile(`^\s*(?P<ticket>[A-Z]{3,5}-\d+)[: ]\s*(?:(?P<abbr>[A-Z]{2})\s*/)?\s*(?P<description>[\p{L}\p{N}_\s/]*)/\s*(?P<message>.*?)(?:\s*\[[^\]]*\])*\s*$`)
	MergeTicket   = regexp.MustCompile(`(?P<ticket>[A-Z]{3,5}-\d+)-(?P<description>[\p{L}\p{N}_-]+)`)

	// Git and Repo patterns
	SSHRepo   = regexp.MustCompile(`git@([^:]+):([^/]+)/(.+)\.git$`)
	HTTPSRepo = regexp.MustCompile(`https://([^/]+)/([^/]+)/(.+?)(?:\.git)?$`)
)

// Captures returns the named groups of the first match of re in s.
// ok is false when re does not match.
func Captures(re *regexp.Regexp, s string) (groups map[string]string, ok bool) {
	match := re.FindStringSubmatchIndex(s)
	if match == nil {
		return nil, false
	}

	groups = make(map[string]string, re.NumSubexp())
	for i, name := range re.SubexpNames() {
		if name == "" {
			continue
		}
		start, end := match[2*i], match[2*i+1]
		if start < 0 {
			continue
		}
		groups[name] = s[start:end]
	}
	return groups, true
}
