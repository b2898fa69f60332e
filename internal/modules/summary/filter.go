package summary

import (
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/aristath/trading-dashboard/internal/domain"
)

// SignFilter restricts records to positive or negative periods
type SignFilter string

const (
	SignAll      SignFilter = ""
	SignPositive SignFilter = "positive"
	SignNegative SignFilter = "negative"
)

// Filter narrows a loaded table before metrics are computed. Zero
// value means no filtering.
type Filter struct {
	From   *time.Time // daily: inclusive lower bound
	To     *time.Time // daily: inclusive upper bound
	Months []string   // monthly: labels to keep
	Years  []int      // yearly: years to keep
	Sign   SignFilter
}

// FilterFromQuery parses filter parameters from a request query:
// from/to as yyyy-mm-dd, months and years comma-separated, sign as
// positive or negative.
func FilterFromQuery(q url.Values) (Filter, error) {
	var f Filter

	if v := q.Get("from"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			return f, fmt.Errorf("invalid from date %q: %w", v, err)
		}
		f.From = &t
	}
	if v := q.Get("to"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			return f, fmt.Errorf("invalid to date %q: %w", v, err)
		}
		f.To = &t
	}
	if v := q.Get("months"); v != "" {
		for _, m := range strings.Split(v, ",") {
			if m = strings.TrimSpace(m); m != "" {
				f.Months = append(f.Months, m)
			}
		}
	}
	if v := q.Get("years"); v != "" {
		for _, y := range strings.Split(v, ",") {
			n, err := strconv.Atoi(strings.TrimSpace(y))
			if err != nil {
				return f, fmt.Errorf("invalid year %q: %w", y, err)
			}
			f.Years = append(f.Years, n)
		}
	}
	switch sign := SignFilter(q.Get("sign")); sign {
	case SignAll, SignPositive, SignNegative:
		f.Sign = sign
	default:
		return f, fmt.Errorf("invalid sign filter %q", q.Get("sign"))
	}

	return f, nil
}

// Apply returns the records that pass the filter, preserving order
func (f Filter) Apply(records []domain.PeriodRecord) []domain.PeriodRecord {
	out := make([]domain.PeriodRecord, 0, len(records))

	var months map[string]bool
	if len(f.Months) > 0 {
		months = make(map[string]bool, len(f.Months))
		for _, m := range f.Months {
			months[m] = true
		}
	}
	var years map[int]bool
	if len(f.Years) > 0 {
		years = make(map[int]bool, len(f.Years))
		for _, y := range f.Years {
			years[y] = true
		}
	}

	for _, r := range records {
		if f.From != nil && !r.Date.IsZero() && r.Date.Before(*f.From) {
			continue
		}
		if f.To != nil && !r.Date.IsZero() && r.Date.After(*f.To) {
			continue
		}
		if months != nil && !months[r.Label] {
			continue
		}
		if years != nil && !years[r.Year] {
			continue
		}
		if f.Sign == SignPositive && r.NetProfit <= 0 {
			continue
		}
		if f.Sign == SignNegative && r.NetProfit >= 0 {
			continue
		}
		out = append(out, r)
	}

	return out
}

// CacheKey returns a stable encoding of the filter, independent of the
// order months and years were supplied in.
func (f Filter) CacheKey() string {
	var b strings.Builder

	if f.From != nil {
		b.WriteString("from=" + f.From.Format("2006-01-02") + ";")
	}
	if f.To != nil {
		b.WriteString("to=" + f.To.Format("2006-01-02") + ";")
	}
	if len(f.Months) > 0 {
		months := append([]string(nil), f.Months...)
		sort.Strings(months)
		b.WriteString("months=" + strings.Join(months, ",") + ";")
	}
	if len(f.Years) > 0 {
		years := append([]int(nil), f.Years...)
		sort.Ints(years)
		parts := make([]string, len(years))
		for i, y := range years {
			parts[i] = strconv.Itoa(y)
		}
		b.WriteString("years=" + strings.Join(parts, ",") + ";")
	}
	if f.Sign != SignAll {
		b.WriteString("sign=" + string(f.Sign) + ";")
	}

	return b.String()
}
