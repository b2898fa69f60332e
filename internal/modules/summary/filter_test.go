package summary

import (
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aristath/trading-dashboard/internal/domain"
)

func TestFilterFromQuery(t *testing.T) {
	q := url.Values{}
	q.Set("from", "2024-01-15")
	q.Set("to", "2024-03-31")
	q.Set("months", "01/2024, 02/2024")
	q.Set("years", "2023,2024")
	q.Set("sign", "positive")

	f, err := FilterFromQuery(q)
	require.NoError(t, err)

	assert.Equal(t, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), *f.From)
	assert.Equal(t, time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC), *f.To)
	assert.Equal(t, []string{"01/2024", "02/2024"}, f.Months)
	assert.Equal(t, []int{2023, 2024}, f.Years)
	assert.Equal(t, SignPositive, f.Sign)
}

func TestFilterFromQuery_Empty(t *testing.T) {
	f, err := FilterFromQuery(url.Values{})
	require.NoError(t, err)

	assert.Nil(t, f.From)
	assert.Nil(t, f.To)
	assert.Empty(t, f.Months)
	assert.Empty(t, f.Years)
	assert.Equal(t, SignAll, f.Sign)
}

func TestFilterFromQuery_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"bad from", "from", "15/01/2024"},
		{"bad to", "to", "soon"},
		{"bad year", "years", "twenty"},
		{"bad sign", "sign", "winning"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := url.Values{}
			q.Set(tt.key, tt.value)

			_, err := FilterFromQuery(q)
			assert.Error(t, err)
		})
	}
}

func TestFilter_ApplyDateRange(t *testing.T) {
	records := []domain.PeriodRecord{
		{Date: time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC), NetProfit: 1},
		{Date: time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC), NetProfit: 2},
		{Date: time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC), NetProfit: 3},
	}

	from := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 2, 28, 0, 0, 0, 0, time.UTC)
	f := Filter{From: &from, To: &to}

	got := f.Apply(records)
	require.Len(t, got, 1)
	assert.Equal(t, 2.0, got[0].NetProfit)
}

func TestFilter_ApplyDateRangeInclusive(t *testing.T) {
	day := time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC)
	records := []domain.PeriodRecord{{Date: day, NetProfit: 1}}

	f := Filter{From: &day, To: &day}
	assert.Len(t, f.Apply(records), 1)
}

func TestFilter_ApplyMonths(t *testing.T) {
	records := []domain.PeriodRecord{
		{Label: "01/2024", NetProfit: 1},
		{Label: "02/2024", NetProfit: 2},
		{Label: "03/2024", NetProfit: 3},
	}

	f := Filter{Months: []string{"03/2024", "01/2024"}}
	got := f.Apply(records)

	require.Len(t, got, 2)
	assert.Equal(t, "01/2024", got[0].Label)
	assert.Equal(t, "03/2024", got[1].Label)
}

func TestFilter_ApplyYears(t *testing.T) {
	records := []domain.PeriodRecord{
		{Year: 2022, NetProfit: 1},
		{Year: 2023, NetProfit: 2},
	}

	f := Filter{Years: []int{2023}}
	got := f.Apply(records)

	require.Len(t, got, 1)
	assert.Equal(t, 2023, got[0].Year)
}

func TestFilter_ApplySign(t *testing.T) {
	records := []domain.PeriodRecord{
		{Year: 2022, NetProfit: 10},
		{Year: 2023, NetProfit: 0},
		{Year: 2024, NetProfit: -5},
	}

	positive := Filter{Sign: SignPositive}.Apply(records)
	require.Len(t, positive, 1)
	assert.Equal(t, 10.0, positive[0].NetProfit)

	negative := Filter{Sign: SignNegative}.Apply(records)
	require.Len(t, negative, 1)
	assert.Equal(t, -5.0, negative[0].NetProfit)

	all := Filter{}.Apply(records)
	assert.Len(t, all, 3)
}

func TestFilter_CacheKeyStable(t *testing.T) {
	a := Filter{Months: []string{"02/2024", "01/2024"}, Years: []int{2024, 2023}, Sign: SignNegative}
	b := Filter{Months: []string{"01/2024", "02/2024"}, Years: []int{2023, 2024}, Sign: SignNegative}

	assert.Equal(t, a.CacheKey(), b.CacheKey())
	assert.NotEqual(t, a.CacheKey(), Filter{}.CacheKey())
	assert.Equal(t, "", Filter{}.CacheKey())
}
