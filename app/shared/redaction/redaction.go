package redaction

import (
	"log/slog"
	"net/url"
)

const redactedValue = "[redacted]"

// RedactSecret returns a fixed placeholder for non-empty secrets.
func RedactSecret(secret string) string {
	if secret == "" {
		return ""
	}
	return redactedValue
}

// RedactURL masks the password in a URL's userinfo. Strings that do not
// parse are treated as secrets.
func RedactURL(raw string) string {
	if raw == "" {
		return ""
	}
	u, err := url.Parse(raw)
	if err != nil {
		return redactedValue
	}
	if _, hasPassword := u.User.Password(); hasPassword {
		u.User = url.UserPassword(u.User.Username(), redactedValue)
	}
	return u.String()
}

// Secret is a slog attribute whose value never reaches the log.
func Secret(key, value string) slog.Attr {
	return slog.String(key, RedactSecret(value))
}

// URL is a slog attribute carrying a URL with its password masked.
func URL(key, value string) slog.Attr {
	return slog.String(key, RedactURL(value))
}
