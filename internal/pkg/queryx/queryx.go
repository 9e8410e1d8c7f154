// Package queryx implements the lenient query-parameter conventions of the
// list endpoints: loose boolean literals and whitelisted ordering that fall
// back silently instead of erroring.
package queryx

import (
	"fmt"
	"strings"
	"time"
)

// ParseBool maps "true"/"1"/"yes" and "false"/"0"/"no" (case-insensitive,
// trimmed). Anything else, including the empty string, returns ok=false and
// the filter is ignored.
func ParseBool(value string) (b, ok bool) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "true", "1", "yes":
		return true, true
	case "false", "0", "no":
		return false, true
	}
	return false, false
}

// ParseDate parses the YYYY-MM-DD wire format.
func ParseDate(value string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, want YYYY-MM-DD", value)
	}
	return t, nil
}

// Ordering is a validated order_by/order_dir pair ready for an ORDER BY.
type Ordering struct {
	Column string
	Desc   bool
}

// ParseOrdering checks order_by against the resource's column whitelist.
// Unrecognized fields yield ok=false (caller keeps its default order);
// anything but "desc" means ascending. Neither case is an error.
func ParseOrdering(orderBy, orderDir string, allowed map[string]string) (Ordering, bool) {
	col, ok := allowed[strings.TrimSpace(orderBy)]
	if !ok {
		return Ordering{}, false
	}
	return Ordering{Column: col, Desc: strings.EqualFold(strings.TrimSpace(orderDir), "desc")}, true
}

// Clause renders the pair for gorm's Order().
func (o Ordering) Clause() string {
	if o.Desc {
		return o.Column + " DESC"
	}
	return o.Column + " ASC"
}
