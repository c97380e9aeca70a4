// Package guestbook turns submitted form bodies into stored entries and
// reads them back newest first.
package guestbook

import (
	"fmt"
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/dmitrijs2005/guestbook/internal/common"
	"github.com/dmitrijs2005/guestbook/internal/server/models"
)

// Field caps, in runes. Longer input is cut, not refused.
const (
	MaxNameLen    = 64
	MaxDomainLen  = 256
	MaxMessageLen = 2048
)

const defaultScheme = "https://"

// Submission is the decoded POST body before sanitizing.
type Submission struct {
	Color   string
	Name    string
	Domain  string
	Message string
}

var requiredFields = []string{"color", "name", "domain", "message"}

// ParseSubmission decodes an application/x-www-form-urlencoded body. Every
// one of color, name, domain and message must be present (empty values are
// allowed); otherwise the error wraps common.ErrMalformedSubmission.
func ParseSubmission(body []byte) (Submission, error) {
	values, err := url.ParseQuery(string(body))
	if err != nil {
		return Submission{}, fmt.Errorf("decode body: %v: %w", err, common.ErrMalformedSubmission)
	}

	for _, f := range requiredFields {
		if _, ok := values[f]; !ok {
			return Submission{}, fmt.Errorf("field %q missing: %w", f, common.ErrMalformedSubmission)
		}
	}

	return Submission{
		Color:   values.Get("color"),
		Name:    values.Get("name"),
		Domain:  values.Get("domain"),
		Message: values.Get("message"),
	}, nil
}

// SanitizeColor returns s when it is a "#rrggbb" token, else the default.
func SanitizeColor(s string) string {
	if models.IsHexColor(s) {
		return s
	}
	return models.DefaultColor
}

// NormalizeDomain makes sure the stored value carries an explicit scheme.
// An existing http:// or https:// prefix is kept; anything else gets
// https:// in front. An empty domain becomes the bare scheme, which the
// renderer treats as "no link".
func NormalizeDomain(s string) string {
	s = strings.TrimSpace(s)
	lower := strings.ToLower(s)
	if strings.HasPrefix(lower, "https://") || strings.HasPrefix(lower, "http://") {
		return s
	}
	return defaultScheme + s
}

// DomainHost strips the scheme from a normalized domain.
func DomainHost(domain string) string {
	if i := strings.Index(domain, "://"); i >= 0 {
		return domain[i+3:]
	}
	return domain
}

func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return string(r[:n])
}

// Sanitize applies every rewrite a submission goes through before storage.
func (s Submission) Sanitize() Submission {
	return Submission{
		Color:   SanitizeColor(s.Color),
		Name:    truncate(s.Name, MaxNameLen),
		Domain:  NormalizeDomain(truncate(s.Domain, MaxDomainLen)),
		Message: truncate(s.Message, MaxMessageLen),
	}
}
