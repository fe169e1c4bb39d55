// Package params models OAuth query parameters, keeping the distinction between a
// parameter that appears once and one that is repeated.
package params

import (
	"net/url"
	"sort"
	"strings"
)

// Pair is a single key/value occurrence as it appears on the wire.
type Pair struct {
	Key   string
	Value string
}

// ParamValue is either a Single value or a Multi value list.
// The zero value is an empty Single.
type ParamValue struct {
	values []string
	multi  bool
}

// Single builds a single valued parameter.
func Single(value string) ParamValue {
	return ParamValue{values: []string{value}}
}

// Multi builds a multi valued parameter. Order is preserved.
func Multi(values ...string) ParamValue {
	return ParamValue{values: append([]string(nil), values...), multi: true}
}

// NewValue collapses values into Single when there is at most one value, Multi otherwise.
func NewValue(values ...string) ParamValue {
	switch len(values) {
	case 0:
		return Single("")
	case 1:
		return Single(values[0])
	default:
		return Multi(values...)
	}
}

func (v ParamValue) IsSingle() bool { return !v.multi }
func (v ParamValue) IsMulti() bool  { return v.multi }

// Single returns the value only if v is a Single.
func (v ParamValue) Single() (string, bool) {
	if v.multi {
		return "", false
	}
	if len(v.values) == 0 {
		return "", true
	}
	return v.values[0], true
}

// Multi returns a copy of the values only if v is a Multi.
func (v ParamValue) Multi() ([]string, bool) {
	if !v.multi {
		return nil, false
	}
	return append([]string(nil), v.values...), true
}

// Values returns every value regardless of the variant.
func (v ParamValue) Values() []string {
	if !v.multi && len(v.values) == 0 {
		return []string{""}
	}
	return append([]string(nil), v.values...)
}

func (v ParamValue) String() string {
	return strings.Join(v.Values(), " ")
}

// QueryParams maps a parameter name to its value.
type QueryParams map[string]ParamValue

// FromPairs builds QueryParams, collapsing keys seen once to Single and keys seen
// more than once to Multi in input order.
func FromPairs(pairs []Pair) QueryParams {
	grouped := make(map[string][]string, len(pairs))
	order := make([]string, 0, len(pairs))
	for _, p := range pairs {
		if _, ok := grouped[p.Key]; !ok {
			order = append(order, p.Key)
		}
		grouped[p.Key] = append(grouped[p.Key], p.Value)
	}

	qp := make(QueryParams, len(order))
	for _, k := range order {
		qp[k] = NewValue(grouped[k]...)
	}
	return qp
}

// FromValues converts url.Values, which already groups repeated keys in order.
func FromValues(values url.Values) QueryParams {
	qp := make(QueryParams, len(values))
	for k, v := range values {
		qp[k] = NewValue(v...)
	}
	return qp
}

// FromURL builds QueryParams from the URL query string. A nil URL yields an empty mapping.
func FromURL(u *url.URL) QueryParams {
	if u == nil {
		return QueryParams{}
	}
	return FromValues(u.Query())
}

// Parse parses a raw query or form encoded string.
func Parse(raw string) (QueryParams, error) {
	values, err := url.ParseQuery(raw)
	if err != nil {
		return nil, err
	}
	return FromValues(values), nil
}

// Get returns the value for name, if present.
func (q QueryParams) Get(name string) (ParamValue, bool) {
	v, ok := q[name]
	return v, ok
}

// Single returns the value for name only when it is present and single valued.
func (q QueryParams) Single(name string) (string, bool) {
	v, ok := q[name]
	if !ok {
		return "", false
	}
	return v.Single()
}

func (q QueryParams) Has(name string) bool {
	_, ok := q[name]
	return ok
}

func (q QueryParams) Len() int { return len(q) }

// Pairs flattens the mapping back to key/value pairs, expanding Multi values into
// repeated pairs. Keys are sorted so the output is stable.
func (q QueryParams) Pairs() []Pair {
	keys := make([]string, 0, len(q))
	for k := range q {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]Pair, 0, len(keys))
	for _, k := range keys {
		for _, v := range q[k].Values() {
			pairs = append(pairs, Pair{Key: k, Value: v})
		}
	}
	return pairs
}

// Values converts back to url.Values.
func (q QueryParams) Values() url.Values {
	values := make(url.Values, len(q))
	for _, p := range q.Pairs() {
		values.Add(p.Key, p.Value)
	}
	return values
}

// Encode renders the parameters as a query string with keys in sorted order.
func (q QueryParams) Encode() string {
	return q.Values().Encode()
}

// EncodePairs renders pairs in the given order, unlike url.Values.Encode which sorts.
func EncodePairs(pairs []Pair) string {
	var b strings.Builder
	for i, p := range pairs {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(p.Key))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(p.Value))
	}
	return b.String()
}
