package storefront

import "strings"

// ParseNextLink extracts the "next" URL from a Link header.
// Returns empty string if no next link is found or the header is malformed.
func ParseNextLink(linkHeader string) string {
	return ParseAllLinks(linkHeader)["next"]
}

// ParseAllLinks extracts all URLs from a Link header by relationship type.
// The URL is whatever sits between the angle brackets, commas included.
// Entries that do not parse are skipped.
func ParseAllLinks(linkHeader string) map[string]string {
	links := make(map[string]string)

	rest := linkHeader
	for {
		start := strings.IndexByte(rest, '<')
		if start < 0 {
			break
		}
		rest = rest[start+1:]
		end := strings.IndexByte(rest, '>')
		if end < 0 {
			break
		}
		target := strings.TrimSpace(rest[:end])

		var params string
		params, rest = splitEntryParams(rest[end+1:])
		if target == "" {
			continue
		}
		// rel may hold several space-separated relation types.
		for _, rel := range strings.Fields(relParam(params)) {
			if _, seen := links[rel]; !seen {
				links[rel] = target
			}
		}
	}

	return links
}

// splitEntryParams returns the parameters of one entry and the remainder
// after the next comma outside a quoted string.
func splitEntryParams(s string) (params, rest string) {
	inQuote := false
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '"':
			inQuote = !inQuote
		case ',':
			if !inQuote {
				return s[:i], s[i+1:]
			}
		case '<':
			// A new entry started without a separating comma.
			if !inQuote {
				return s[:i], s[i:]
			}
		}
	}
	return s, ""
}

// relParam returns the value of the rel parameter, unquoted.
func relParam(params string) string {
	for _, p := range strings.Split(params, ";") {
		key, value, ok := strings.Cut(p, "=")
		if !ok || !strings.EqualFold(strings.TrimSpace(key), "rel") {
			continue
		}
		return strings.Trim(strings.TrimSpace(value), `"`)
	}
	return ""
}
