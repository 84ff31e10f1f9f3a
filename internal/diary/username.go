package diary

import (
	"fmt"
	"net/url"
	"strings"
)

// ParseUsername accepts a bare username or a profile URL such as
// https://letterboxd.com/alice/films/diary/ and returns the username.
func ParseUsername(input string) (string, error) {
	s := strings.TrimSpace(input)
	if s == "" {
		return "", fmt.Errorf("username is required")
	}

	if strings.Contains(s, "://") {
		u, err := url.Parse(s)
		if err != nil {
			return "", fmt.Errorf("invalid profile url %q: %w", input, err)
		}
		s = u.Path
	}

	s = strings.Trim(s, "/")
	if i := strings.IndexByte(s, '/'); i >= 0 {
		s = s[:i]
	}
	if s == "" {
		return "", fmt.Errorf("no username in %q", input)
	}
	return s, nil
}
