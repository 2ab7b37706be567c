// Copyright (c) 2026 The konf authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

// Package credential keeps secrets in configuration values out of logs.
package credential

import (
	"fmt"
	"regexp"
)

const masked = "******"

// Blur returns the value formatted for logging.
// It returns a mask if the path looks like it holds a secret,
// or the kind of secret if the value matches a known secret format.
func Blur(path string, value any) string {
	if pathPattern.MatchString(path) {
		return masked
	}

	var formatted string
	switch v := value.(type) {
	case nil:
		return "null"
	case string:
		formatted = v
	case []byte:
		formatted = string(v)
	default:
		formatted = fmt.Sprint(value)
	}

	for _, secret := range secrets {
		if secret.pattern.MatchString(formatted) {
			return "<" + secret.name + ">"
		}
	}

	return formatted
}

//nolint:gochecknoglobals,lll
var (
	pathPattern = regexp.MustCompile(`(?i)password|passwd|pwd|secret|token|api_?key|bearer|credential|private_?key`)
	// Checked in order, first match wins.
	secrets = []struct {
		name    string
		pattern *regexp.Regexp
	}{
		{"private key", regexp.MustCompile(`-----BEGIN ([A-Z]+ )?PRIVATE KEY( BLOCK)?-----`)},
		{"AWS access key", regexp.MustCompile(`(AKIA|ASIA)[0-9A-Z]{16}`)},
		{"GitHub token", regexp.MustCompile(`(ghp|gho|ghs|ghu)_[a-zA-Z0-9]{36}|github_pat_[a-zA-Z0-9]{22}_[a-zA-Z0-9]{59}`)},
		{"Google API key", regexp.MustCompile(`AIza[0-9A-Za-z\-_]{35}`)},
		{"Google OAuth access token", regexp.MustCompile(`ya29\.[0-9A-Za-z\-_]+`)},
		{"GCP service account", regexp.MustCompile(`"type":\s*"service_account"`)},
		{"Slack token", regexp.MustCompile(`xox[pborsa]-[0-9]{12}-[0-9]{12}-[0-9]{12}-[a-z0-9]{32}`)},
		{"Stripe key", regexp.MustCompile(`(sk|rk)_live_[0-9a-zA-Z]{24}`)},
		{"JSON web token", regexp.MustCompile(`eyJ[A-Za-z0-9_-]+\.eyJ[A-Za-z0-9_-]+\.[A-Za-z0-9_-]+`)},
		{"password in URL", regexp.MustCompile(`[a-zA-Z]{3,10}://[^/\s:@]{3,20}:[^/\s:@]{3,20}@`)},
	}
)
