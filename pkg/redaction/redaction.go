// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

// Package redaction provides helpers for redacting sensitive values before
// they are written to logs.
package redaction

import "strings"

// RedactEmail redacts an email address for safe logging. The first character
// of the local part and the domain are preserved so operators can correlate
// log lines without exposing the full address.
func RedactEmail(email string) string {
	if email == "" {
		return ""
	}

	local, domain, found := strings.Cut(email, "@")
	if !found || local == "" || domain == "" {
		return "[redacted]"
	}

	runes := []rune(local)
	return string(runes[0]) + "***@" + domain
}
