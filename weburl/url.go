// Package weburl builds HTTP(S) locator strings piece by piece.
//
// A copied URL value grows independently of the original.
package weburl

import (
	"strconv"
	"strings"
)

// Scheme is the rendered scheme prefix.
type Scheme string

const (
	HTTP  Scheme = "http://"
	HTTPS Scheme = "https://"
)

// URL accumulates path segments and query parameters.
type URL struct {
	scheme Scheme
	host   string
	port   int
	path   []string
	query  []string
}

// Option configures a URL at construction.
type Option func(*URL)

// WithScheme overrides the default HTTPS scheme.
func WithScheme(s Scheme) Option {
	return func(u *URL) { u.scheme = s }
}

// WithPort sets an explicit port. Zero means no port.
func WithPort(port int) Option {
	return func(u *URL) { u.port = port }
}

// New returns a URL for host with no path and no query.
func New(host string, opts ...Option) *URL {
	u := &URL{scheme: HTTPS, host: host}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

// JoinPath appends a path segment and returns u for chaining.
func (u *URL) JoinPath(segment string) *URL {
	u.path = append(u.path[:len(u.path):len(u.path)], segment)
	return u
}

// JoinQueryParameter appends key=value to the query string. Neither key nor
// value is percent-encoded; escape them first (url.QueryEscape) if they may
// contain reserved characters.
func (u *URL) JoinQueryParameter(key, value string) {
	u.query = append(u.query[:len(u.query):len(u.query)], key+"="+value)
}

// String renders the URL. Segments are joined with single slashes whatever
// slashes they carry themselves, and a trailing slash is kept only when the
// last segment ends with one.
func (u *URL) String() string {
	base := string(u.scheme) + u.host
	if u.port != 0 {
		base += ":" + strconv.Itoa(u.port)
	}

	parts := make([]string, 0, len(u.path)+1)
	parts = append(parts, strings.Trim(base, "/"))
	for _, seg := range u.path {
		parts = append(parts, strings.Trim(seg, "/"))
	}

	last := base
	if n := len(u.path); n > 0 {
		last = u.path[n-1]
	}

	var b strings.Builder
	b.WriteString(strings.Join(parts, "/"))
	if strings.HasSuffix(last, "/") {
		b.WriteByte('/')
	}
	if len(u.query) > 0 {
		b.WriteByte('?')
		b.WriteString(strings.Join(u.query, "&"))
	}
	return b.String()
}
