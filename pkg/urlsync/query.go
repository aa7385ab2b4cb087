package urlsync

import (
	"net/url"
	"strings"
)

type pair struct {
	key   string
	value string
	raw   string
}

// Query is an ordered query string. Pairs parsed from an address keep their
// original encoding so keys outside a form's namespace survive reconciliation
// byte for byte.
type Query struct {
	pairs []pair
}

// ParseQuery parses raw (with or without a leading "?"). Malformed escapes
// are kept verbatim.
func ParseQuery(raw string) Query {
	raw = strings.TrimPrefix(raw, "?")
	var q Query
	if raw == "" {
		return q
	}
	for _, part := range strings.Split(raw, "&") {
		if part == "" {
			continue
		}
		rawKey, rawValue, _ := strings.Cut(part, "=")
		q.pairs = append(q.pairs, pair{
			key:   unescape(rawKey),
			value: unescape(rawValue),
			raw:   part,
		})
	}
	return q
}

func unescape(value string) string {
	decoded, err := url.QueryUnescape(value)
	if err != nil {
		return value
	}
	return decoded
}

// Add appends a pair.
func (q *Query) Add(key, value string) {
	q.pairs = append(q.pairs, pair{key: key, value: value})
}

// Set replaces every pair for key with a single one, keeping the position of
// the first occurrence or appending when key is new.
func (q *Query) Set(key, value string) {
	out := q.pairs[:0]
	placed := false
	for _, p := range q.pairs {
		if p.key != key {
			out = append(out, p)
			continue
		}
		if !placed {
			out = append(out, pair{key: key, value: value})
			placed = true
		}
	}
	q.pairs = out
	if !placed {
		q.Add(key, value)
	}
}

// Get returns the first value for key.
func (q Query) Get(key string) string {
	for _, p := range q.pairs {
		if p.key == key {
			return p.value
		}
	}
	return ""
}

// Has reports whether key is present.
func (q Query) Has(key string) bool {
	for _, p := range q.pairs {
		if p.key == key {
			return true
		}
	}
	return false
}

// HasPrefix reports whether any key starts with prefix.
func (q Query) HasPrefix(prefix string) bool {
	for _, p := range q.pairs {
		if strings.HasPrefix(p.key, prefix) {
			return true
		}
	}
	return false
}

// DeletePrefix removes every pair whose key starts with prefix.
func (q *Query) DeletePrefix(prefix string) {
	out := q.pairs[:0]
	for _, p := range q.pairs {
		if strings.HasPrefix(p.key, prefix) {
			continue
		}
		out = append(out, p)
	}
	q.pairs = out
}

// Keys lists keys in order, including repeats.
func (q Query) Keys() []string {
	keys := make([]string, 0, len(q.pairs))
	for _, p := range q.pairs {
		keys = append(keys, p.key)
	}
	return keys
}

// Len reports the number of pairs.
func (q Query) Len() int {
	return len(q.pairs)
}

// Values converts the query into url.Values.
func (q Query) Values() url.Values {
	values := make(url.Values, len(q.pairs))
	for _, p := range q.pairs {
		values.Add(p.key, p.value)
	}
	return values
}

// Encode serialises the query without a leading "?".
func (q Query) Encode() string {
	parts := make([]string, 0, len(q.pairs))
	for _, p := range q.pairs {
		if p.raw != "" {
			parts = append(parts, p.raw)
			continue
		}
		parts = append(parts, url.QueryEscape(p.key)+"="+url.QueryEscape(p.value))
	}
	return strings.Join(parts, "&")
}

// String is Encode.
func (q Query) String() string {
	return q.Encode()
}
