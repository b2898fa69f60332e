package summary

import (
	"strings"

	"github.com/aristath/trading-dashboard/internal/domain"
)

// Source loads period records for a granularity. The metrics engine
// and its tests only ever see this interface, never the backing store.
type Source interface {
	// Load returns every record of the summary table for the kind, in
	// table order. Storage failures wrap *domain.SourceUnavailableError,
	// untrustworthy rows return *domain.DataError.
	Load(kind domain.PeriodKind) ([]domain.PeriodRecord, error)

	// Freshness returns an opaque token that changes whenever the
	// underlying table changes, used as part of report cache keys.
	Freshness(kind domain.PeriodKind) (string, error)
}

// Canonical column roles within a summary table. The recorder and its
// older spreadsheet exports spell these differently per source, so the
// loader resolves names into roles before anything else reads a row.
type columnRole int

const (
	colNone columnRole = iota
	colProfit
	colDate
	colMonth
	colYear
	colTrades
	colGains
	colLosses
)

// columnAliases maps normalized header names to their role. Normalized
// means upper-cased, accents stripped, underscores read as spaces.
var columnAliases = map[string]columnRole{
	"LUCRO LIQUIDO": colProfit,
	"NET PROFIT":    colProfit,
	"PROFIT":        colProfit,
	"DATA":          colDate,
	"DATE":          colDate,
	"MES/ANO":       colMonth,
	"MONTH":         colMonth,
	"ANO":           colYear,
	"YEAR":          colYear,
	"TOTAL TRADES":  colTrades,
	"TRADES":        colTrades,
	"GAINS":         colGains,
	"LOSSES":        colLosses,
}

// accentReplacer folds the accented characters that appear in recorder
// column headers ("LUCRO LÍQUIDO", "MÊS/ANO") to their plain form.
var accentReplacer = strings.NewReplacer(
	"Á", "A", "À", "A", "Â", "A", "Ã", "A",
	"É", "E", "Ê", "E",
	"Í", "I",
	"Ó", "O", "Ô", "O", "Õ", "O",
	"Ú", "U", "Ü", "U",
	"Ç", "C",
)

// normalizeColumn reduces a header to its canonical lookup form
func normalizeColumn(name string) string {
	s := strings.ToUpper(strings.TrimSpace(name))
	s = accentReplacer.Replace(s)
	s = strings.ReplaceAll(s, "_", " ")
	return s
}

// resolveColumn returns the role of a raw header name
func resolveColumn(name string) columnRole {
	return columnAliases[normalizeColumn(name)]
}

// periodColumn returns the role that identifies the period for a kind
func periodColumn(kind domain.PeriodKind) columnRole {
	switch kind {
	case domain.KindDaily:
		return colDate
	case domain.KindMonthly:
		return colMonth
	default:
		return colYear
	}
}
