package app

import (
	"net/url"
	"strings"

	"github.com/louisbranch/talenthub/internal/services/auth/user"
)

// Policy picks where a visitor lands after signing in.
type Policy struct {
	DashboardPath string
	DefaultPath   string
}

// RedirectTarget sends admins to the dashboard and everyone else to the
// sanitized returnTo, or DefaultPath when returnTo is not a local path.
func (p Policy) RedirectTarget(account user.User, returnTo string) string {
	if account.IsAdmin() && strings.TrimSpace(p.DashboardPath) != "" {
		return p.DashboardPath
	}
	if target := SanitizeReturnTo(returnTo); target != "" {
		return target
	}
	if strings.TrimSpace(p.DefaultPath) != "" {
		return p.DefaultPath
	}
	return "/"
}

// SanitizeReturnTo accepts only same-site absolute paths.
func SanitizeReturnTo(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" || !strings.HasPrefix(raw, "/") || strings.HasPrefix(raw, "//") || strings.Contains(raw, "\\") {
		return ""
	}
	parsed, err := url.Parse(raw)
	if err != nil || parsed.Scheme != "" || parsed.Host != "" {
		return ""
	}
	return parsed.RequestURI()
}
