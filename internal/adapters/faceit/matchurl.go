package faceit

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

// ids de match: "1-<uuid>" o "<uuid>"
var matchIDRe = regexp.MustCompile(`^(?:\d+-)?[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}$`)

// ParseMatchID acepta el id pelado o la URL de la sala
// (https://www.faceit.com/en/ow2/room/<id>[/scoreboard]).
func ParseMatchID(raw string) (string, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return "", fmt.Errorf("%w: empty", ErrInvalidMatchURL)
	}
	if matchIDRe.MatchString(s) {
		return s, nil
	}

	u, err := url.Parse(s)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidMatchURL, err)
	}
	segs := strings.FieldsFunc(u.Path, func(r rune) bool { return r == '/' })

	// primero lo que viene después de "room", si no el último segmento que parezca id
	for i, seg := range segs {
		if seg == "room" && i+1 < len(segs) && matchIDRe.MatchString(segs[i+1]) {
			return segs[i+1], nil
		}
	}
	for i := len(segs) - 1; i >= 0; i-- {
		if matchIDRe.MatchString(segs[i]) {
			return segs[i], nil
		}
	}
	return "", fmt.Errorf("%w: no match id in %q", ErrInvalidMatchURL, raw)
}
