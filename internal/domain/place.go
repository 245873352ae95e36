package domain

import "strings"

// A free-text place name plus the country/region hint used to bias the geocoder.
// Queries are built per trip by the caller and never persisted.
type PlaceQuery struct {
	RawText string
	Hint    string
}

// Text returns the query string sent to the geocoding service.
// An empty hint leaves the raw text untouched; an empty raw text yields "".
func (q PlaceQuery) Text() string {
	raw := strings.Join(strings.Fields(q.RawText), " ")
	if raw == "" {
		return ""
	}
	hint := strings.TrimSpace(q.Hint)
	if hint == "" {
		return raw
	}
	return raw + ", " + hint
}
