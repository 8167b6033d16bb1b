package selection

import (
	"net/url"
	"sort"
	"strings"
)

const (
	// IndustriesKey carries the ordered list of picked industries.
	IndustriesKey = "industries"
	// NichePrefix prefixes the per-industry niche keys: n_<escaped industry>.
	NichePrefix = "n_"
)

// StringOrList is a query value as the environment hands it over: either a
// bare string or a list of strings. Callers normalize it once with Values.
type StringOrList struct {
	single string
	list   []string
	isList bool
}

func Single(s string) StringOrList {
	return StringOrList{single: s}
}

func List(values ...string) StringOrList {
	out := make([]string, len(values))
	copy(out, values)
	return StringOrList{list: out, isList: true}
}

// Values returns the canonical ordered-sequence form.
func (v StringOrList) Values() []string {
	if !v.isList {
		return []string{v.single}
	}
	out := make([]string, len(v.list))
	copy(out, v.list)
	return out
}

// QueryParams is the flat, string-keyed representation used in shared URLs.
type QueryParams map[string]StringOrList

// Policy selects how Decode treats industries listed in "industries" that
// have no n_ key.
type Policy int

const (
	// PolicyIndustriesOnlyFallback keeps listed industries only when no n_ key
	// is present at all. With at least one n_ key, industries come from n_
	// keys alone.
	PolicyIndustriesOnlyFallback Policy = iota
	// PolicyKeepListed keeps every listed industry, empty when it has no n_ key.
	PolicyKeepListed
)

// ParsePolicy maps a config value to a Policy. Unknown values fall back to
// PolicyIndustriesOnlyFallback.
func ParsePolicy(s string) Policy {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "keep_listed", "keep-listed", "keeplisted":
		return PolicyKeepListed
	default:
		return PolicyIndustriesOnlyFallback
	}
}

func (p Policy) String() string {
	if p == PolicyKeepListed {
		return "keep_listed"
	}
	return "industries_only_fallback"
}

// Decode builds a Model from query parameters with the default policy.
func Decode(q QueryParams) *Model {
	return DecodeWithPolicy(q, PolicyIndustriesOnlyFallback)
}

// DecodeWithPolicy never fails. Keys it cannot interpret are skipped.
//
// Result order: industries named in "industries" first, in list order, then
// industries known only from n_ keys, sorted by name.
func DecodeWithPolicy(q QueryParams, policy Policy) *Model {
	listed := []string{}
	if v, ok := q[IndustriesKey]; ok {
		listed = dedupe(nonEmpty(v.Values()))
	}

	// Keys that unescape to the same industry (n_A%20B and "n_A B") are
	// merged in key order.
	nicheKeys := make([]string, 0, len(q))
	for key := range q {
		if strings.HasPrefix(key, NichePrefix) {
			nicheKeys = append(nicheKeys, key)
		}
	}
	sort.Strings(nicheKeys)

	fromKeys := make(map[string][]string)
	for _, key := range nicheKeys {
		industry, ok := UnescapeIndustry(strings.TrimPrefix(key, NichePrefix))
		if !ok || industry == "" {
			continue
		}
		fromKeys[industry] = append(fromKeys[industry], q[key].Values()...)
	}

	m := New()
	keepListed := len(fromKeys) == 0 || policy == PolicyKeepListed
	for _, industry := range listed {
		if niches, ok := fromKeys[industry]; ok {
			m.Set(industry, niches...)
			continue
		}
		if keepListed {
			m.Set(industry)
		}
	}

	rest := make([]string, 0, len(fromKeys))
	for industry := range fromKeys {
		if !m.Has(industry) {
			rest = append(rest, industry)
		}
	}
	sort.Strings(rest)
	for _, industry := range rest {
		m.Set(industry, fromKeys[industry]...)
	}
	return m
}

// Encode is the inverse of Decode. "industries" lists every industry in model
// order; n_ keys are written only for industries with at least one niche.
func Encode(m *Model) QueryParams {
	q := QueryParams{IndustriesKey: List(m.Industries()...)}
	for _, industry := range m.Industries() {
		niches := m.Niches(industry)
		if len(niches) == 0 {
			continue
		}
		q[NicheKey(industry)] = List(niches...)
	}
	return q
}

// NicheKey returns the query key holding the niches of industry.
func NicheKey(industry string) string {
	return NichePrefix + EscapeIndustry(industry)
}

// EscapeIndustry percent-encodes an industry name for use inside a key.
// Spaces become %20 rather than '+', so UnescapeIndustry never has to guess.
func EscapeIndustry(industry string) string {
	return strings.ReplaceAll(url.QueryEscape(industry), "+", "%20")
}

// UnescapeIndustry reverses EscapeIndustry. A literal '+' is kept as is.
func UnescapeIndustry(escaped string) (string, bool) {
	s, err := url.PathUnescape(escaped)
	if err != nil {
		return "", false
	}
	return s, true
}

// FromValues adapts url.Values. Single-element lists become Single values.
func FromValues(v url.Values) QueryParams {
	q := make(QueryParams, len(v))
	for key, values := range v {
		if len(values) == 1 {
			q[key] = Single(values[0])
			continue
		}
		q[key] = List(values...)
	}
	return q
}

// ParseQuery parses a raw query string, with or without the leading '?'.
// Pairs with invalid escapes are dropped; the rest still decode.
func ParseQuery(raw string) QueryParams {
	raw = strings.TrimPrefix(raw, "?")
	v := url.Values{}
	for _, pair := range strings.Split(raw, "&") {
		if pair == "" {
			continue
		}
		key, value, _ := strings.Cut(pair, "=")
		k, err := url.QueryUnescape(key)
		if err != nil {
			continue
		}
		val, err := url.QueryUnescape(value)
		if err != nil {
			continue
		}
		v.Add(k, val)
	}
	return FromValues(v)
}

// Values converts to url.Values.
func (q QueryParams) Values() url.Values {
	v := make(url.Values, len(q))
	for key, val := range q {
		v[key] = val.Values()
	}
	return v
}

// Encode renders the parameters as a query string without the leading '?'.
// "industries" comes first, then n_ keys in the order the industries are
// listed, then any other keys sorted, so the same Model always yields the
// same URL.
func (q QueryParams) Encode() string {
	var b strings.Builder
	write := func(key string) {
		for _, val := range q[key].Values() {
			if b.Len() > 0 {
				b.WriteByte('&')
			}
			b.WriteString(url.QueryEscape(key))
			b.WriteByte('=')
			b.WriteString(url.QueryEscape(val))
		}
	}

	written := make(map[string]struct{}, len(q))
	if v, ok := q[IndustriesKey]; ok {
		write(IndustriesKey)
		written[IndustriesKey] = struct{}{}
		for _, industry := range v.Values() {
			key := NicheKey(industry)
			if _, ok := q[key]; !ok {
				continue
			}
			if _, done := written[key]; done {
				continue
			}
			write(key)
			written[key] = struct{}{}
		}
	}

	rest := make([]string, 0, len(q))
	for key := range q {
		if _, done := written[key]; !done {
			rest = append(rest, key)
		}
	}
	sort.Strings(rest)
	for _, key := range rest {
		write(key)
	}
	return b.String()
}

// ShareQuery is the "?..." suffix that restores m when appended to the page URL.
func ShareQuery(m *Model) string {
	return "?" + Encode(m).Encode()
}

func nonEmpty(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}
