package summary

import (
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/aristath/trading-dashboard/internal/domain"
)

// Repository loads period records from the trading database
type Repository struct {
	db  *sql.DB
	log zerolog.Logger
}

// NewRepository creates a new summary repository
func NewRepository(db *sql.DB, log zerolog.Logger) *Repository {
	return &Repository{
		db:  db,
		log: log.With().Str("repo", "summary").Logger(),
	}
}

// Load reads every row of the summary table for the kind, resolving
// column aliases into canonical record fields. Rows come back in table
// order; chronological sorting is the engine's concern.
func (r *Repository) Load(kind domain.PeriodKind) ([]domain.PeriodRecord, error) {
	table := kind.Table()
	if table == "" {
		return nil, domain.ErrUnknownPeriodKind
	}

	rows, err := r.db.Query(fmt.Sprintf("SELECT * FROM %s", table))
	if err != nil {
		return nil, &domain.SourceUnavailableError{Table: table, Err: err}
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, &domain.SourceUnavailableError{Table: table, Err: err}
	}

	roles := make([]columnRole, len(cols))
	seen := map[columnRole]bool{}
	for i, c := range cols {
		role := resolveColumn(c)
		roles[i] = role
		if role != colNone {
			seen[role] = true
		}
	}

	// The profit column and the period column must both resolve,
	// otherwise nothing downstream can be trusted.
	if !seen[colProfit] {
		return nil, &domain.DataError{Table: table, Field: "net profit column", Reason: "no alias matched"}
	}
	periodRole := periodColumn(kind)
	if !seen[periodRole] {
		return nil, &domain.DataError{Table: table, Field: "period column", Reason: "no alias matched"}
	}

	var records []domain.PeriodRecord
	for rows.Next() {
		vals := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range vals {
			ptrs[i] = &vals[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, &domain.SourceUnavailableError{Table: table, Err: err}
		}

		rec, err := r.scanRecord(table, kind, roles, vals)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, &domain.SourceUnavailableError{Table: table, Err: err}
	}

	r.log.Debug().
		Str("table", table).
		Int("records", len(records)).
		Msg("Loaded summary records")

	return records, nil
}

// Freshness returns a token derived from the table's row count and
// last rowid, cheap enough to query on every cache lookup.
func (r *Repository) Freshness(kind domain.PeriodKind) (string, error) {
	table := kind.Table()
	if table == "" {
		return "", domain.ErrUnknownPeriodKind
	}

	var count int64
	var maxRowID sql.NullInt64
	query := fmt.Sprintf("SELECT COUNT(*), MAX(rowid) FROM %s", table)
	if err := r.db.QueryRow(query).Scan(&count, &maxRowID); err != nil {
		return "", &domain.SourceUnavailableError{Table: table, Err: err}
	}

	return fmt.Sprintf("%d:%d", count, maxRowID.Int64), nil
}

// scanRecord converts one scanned row into a PeriodRecord
func (r *Repository) scanRecord(table string, kind domain.PeriodKind, roles []columnRole, vals []any) (domain.PeriodRecord, error) {
	var rec domain.PeriodRecord
	var profitSet bool

	// Resolve the period key first so profit errors can name it
	for i, role := range roles {
		switch role {
		case colDate:
			if kind != domain.KindDaily {
				continue
			}
			s, ok := asString(vals[i])
			if !ok {
				return rec, &domain.DataError{Table: table, Field: "date", Reason: "not a string"}
			}
			d, err := time.Parse(domain.DateFormat, strings.TrimSpace(s))
			if err != nil {
				return rec, &domain.DataError{Table: table, PeriodKey: s, Field: "date", Reason: "unparseable date"}
			}
			rec.Date = d
		case colMonth:
			if s, ok := asString(vals[i]); ok {
				rec.Label = strings.TrimSpace(s)
			}
		case colYear:
			if n, ok := asInt(vals[i]); ok {
				rec.Year = n
			}
		}
	}

	for i, role := range roles {
		switch role {
		case colProfit:
			f, ok := asFloat(vals[i])
			if !ok {
				return rec, &domain.DataError{
					Table:     table,
					PeriodKey: rec.Key(kind),
					Field:     "net_profit",
					Reason:    "missing or non-numeric",
				}
			}
			rec.NetProfit = f
			profitSet = true
		case colTrades:
			if n, ok := asInt(vals[i]); ok {
				rec.TradeCount = n
			}
		case colGains:
			if n, ok := asInt(vals[i]); ok {
				rec.GainsCount = n
			}
		case colLosses:
			if n, ok := asInt(vals[i]); ok {
				rec.LossesCount = n
			}
		}
	}

	if !profitSet {
		return rec, &domain.DataError{
			Table:     table,
			PeriodKey: rec.Key(kind),
			Field:     "net_profit",
			Reason:    "missing or non-numeric",
		}
	}

	return rec, nil
}

// SQLite is dynamically typed, so numeric cells can surface as int64,
// float64 or text depending on how the recorder wrote them.

func asString(v any) (string, bool) {
	switch s := v.(type) {
	case string:
		return s, true
	case []byte:
		return string(s), true
	}
	return "", false
}

func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int64:
		return float64(n), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		return f, err == nil
	case []byte:
		f, err := strconv.ParseFloat(strings.TrimSpace(string(n)), 64)
		return f, err == nil
	}
	return 0, false
}

func asInt(v any) (int, bool) {
	switch n := v.(type) {
	case int64:
		return int(n), true
	case float64:
		return int(n), true
	case string:
		i, err := strconv.Atoi(strings.TrimSpace(n))
		return i, err == nil
	case []byte:
		i, err := strconv.Atoi(strings.TrimSpace(string(n)))
		return i, err == nil
	}
	return 0, false
}
