package folioengine

import (
	"encoding/json"
	"strings"
)

// Slugify converts a name to a URL-safe slug.
func Slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	var b strings.Builder
	prev := false
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			prev = false
		default:
			if !prev && b.Len() > 0 {
				b.WriteByte('-')
				prev = true
			}
		}
	}
	return strings.TrimRight(b.String(), "-")
}

// FilterEmpty removes empty/whitespace-only strings from a slice.
func FilterEmpty(vals []string) []string {
	var out []string
	for _, v := range vals {
		if s := strings.TrimSpace(v); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// PersonJsonLD returns a JSON-LD string for a Person schema built from the
// document, for templates to inline into <head>.
func PersonJsonLD(doc PortfolioData, siteURL string) string {
	sameAs := make([]string, 0, len(doc.Profile.Socials))
	for _, s := range doc.Profile.Socials {
		if s.URL != "" {
			sameAs = append(sameAs, s.URL)
		}
	}
	data := map[string]interface{}{
		"@context":    "https://schema.org",
		"@type":       "Person",
		"name":        doc.Profile.Name,
		"jobTitle":    doc.Profile.Designation,
		"description": doc.Profile.Bio,
		"url":         siteURL,
	}
	if doc.Profile.Email != "" {
		data["email"] = doc.Profile.Email
	}
	if len(sameAs) > 0 {
		data["sameAs"] = sameAs
	}
	b, err := json.Marshal(data)
	if err != nil {
		return "{}"
	}
	return string(b)
}
