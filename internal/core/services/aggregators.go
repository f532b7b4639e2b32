package services

import (
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/sesma-ti/glpi-dashboard-backend/internal/core/domain"
)

// Aggregators are pure functions over an immutable record slice. They are
// total: malformed records are skipped per-aggregator, unknown codes are
// labeled, and empty input yields a well-formed empty shape.

// monthAbbrs holds Portuguese month abbreviations, 1-indexed.
var monthAbbrs = [13]string{
	"", "Jan", "Fev", "Mar", "Abr", "Mai", "Jun",
	"Jul", "Ago", "Set", "Out", "Nov", "Dez",
}

// monthKey builds a zero-padded "YYYY-MM" grouping key. Lexicographic
// order on these keys equals chronological order.
func monthKey(t time.Time) string {
	return fmt.Sprintf("%04d-%02d", t.Year(), int(t.Month()))
}

// monthKeyLabel renders a "YYYY-MM" key as "Mon/YY".
func monthKeyLabel(key string) string {
	month, err := strconv.Atoi(key[5:])
	if err != nil || month < 1 || month > 12 {
		return "?/" + key[2:4]
	}
	return monthAbbrs[month] + "/" + key[2:4]
}

// sortedMonthKeys returns the map's keys in chronological order.
func sortedMonthKeys[V any](byMonth map[string]V) []string {
	keys := make([]string, 0, len(byMonth))
	for key := range byMonth {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// MonthlyCounts groups records into calendar months by their opened-at
// timestamp. Records without a timestamp are excluded from this chart.
func MonthlyCounts(records []domain.TicketRecord) domain.ChartSeries {
	counts := make(map[string]int)
	for _, rec := range records {
		if rec.OpenedAt == nil {
			continue
		}
		counts[monthKey(*rec.OpenedAt)]++
	}

	keys := sortedMonthKeys(counts)
	series := domain.ChartSeries{
		Labels: make([]string, 0, len(keys)),
		Data:   make([]int, 0, len(keys)),
	}
	for _, key := range keys {
		series.Labels = append(series.Labels, monthKeyLabel(key))
		series.Data = append(series.Data, counts[key])
	}
	return series
}

// FieldSelector extracts one optional display value from a record.
type FieldSelector func(domain.TicketRecord) *string

// CountOptions configures CountByField.
type CountOptions struct {
	// TopN keeps only the N highest-count entries when positive.
	TopN int
	// UseStatusLabel counts the record's status label instead of the
	// selected field. Used for the status distribution chart.
	UseStatusLabel bool
	// IncludeOthers folds entries beyond TopN into a single "Outros"
	// entry instead of dropping them.
	IncludeOthers bool
	// ExcludeValues removes entries from the tally entirely; their
	// counts do not fold into "Outros".
	ExcludeValues []string
}

// CountByField tallies records per distinct field value, sorted by count
// descending with ties in first-encounter order. Nil or empty values count
// as "Desconhecido". The returned labels and data always have equal length.
func CountByField(records []domain.TicketRecord, field FieldSelector, opts CountOptions) domain.ChartSeries {
	counts := make(map[string]int)
	order := make([]string, 0)

	for _, rec := range records {
		value := domain.UnknownLabel
		if opts.UseStatusLabel {
			value = domain.StatusLabel(rec.StatusCode)
		} else if field != nil {
			if v := field(rec); v != nil && *v != "" {
				value = *v
			}
		}
		if _, seen := counts[value]; !seen {
			order = append(order, value)
		}
		counts[value]++
	}

	for _, excluded := range opts.ExcludeValues {
		delete(counts, excluded)
	}

	type entry struct {
		label string
		count int
	}
	entries := make([]entry, 0, len(counts))
	for _, label := range order {
		if count, ok := counts[label]; ok {
			entries = append(entries, entry{label, count})
		}
	}
	// Stable: ties keep encounter order, which decides chart prominence.
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].count > entries[j].count
	})

	series := domain.ChartSeries{
		Labels: make([]string, 0, len(entries)),
		Data:   make([]int, 0, len(entries)),
	}

	if opts.TopN > 0 && len(entries) > opts.TopN {
		for _, e := range entries[:opts.TopN] {
			series.Labels = append(series.Labels, e.label)
			series.Data = append(series.Data, e.count)
		}
		if opts.IncludeOthers {
			others := 0
			for _, e := range entries[opts.TopN:] {
				others += e.count
			}
			if others > 0 {
				series.Labels = append(series.Labels, domain.OthersLabel)
				series.Data = append(series.Data, others)
			}
		}
		return series
	}

	for _, e := range entries {
		series.Labels = append(series.Labels, e.label)
		series.Data = append(series.Data, e.count)
	}
	return series
}

// KindByMonth breaks the monthly volume into incident and request tracks.
// Records missing a kind or a timestamp, or with an unrecognized kind, are
// excluded from this chart only.
func KindByMonth(records []domain.TicketRecord) domain.MultiSeriesChart {
	type kindCounts struct {
		incidents int
		requests  int
	}
	byMonth := make(map[string]*kindCounts)

	for _, rec := range records {
		if rec.Kind == nil || rec.OpenedAt == nil || !rec.Kind.IsValid() {
			continue
		}
		key := monthKey(*rec.OpenedAt)
		counts := byMonth[key]
		if counts == nil {
			counts = &kindCounts{}
			byMonth[key] = counts
		}
		switch *rec.Kind {
		case domain.KindIncident:
			counts.incidents++
		case domain.KindRequest:
			counts.requests++
		}
	}

	if len(byMonth) == 0 {
		return domain.MultiSeriesChart{
			Labels:   []string{},
			Datasets: []domain.Dataset{},
		}
	}

	keys := sortedMonthKeys(byMonth)
	chart := domain.MultiSeriesChart{
		Labels: make([]string, 0, len(keys)),
		Datasets: []domain.Dataset{
			{Label: "Incidentes", Data: make([]int, 0, len(keys))},
			{Label: "Requisições", Data: make([]int, 0, len(keys))},
		},
	}
	for _, key := range keys {
		chart.Labels = append(chart.Labels, monthKeyLabel(key))
		chart.Datasets[0].Data = append(chart.Datasets[0].Data, byMonth[key].incidents)
		chart.Datasets[1].Data = append(chart.Datasets[1].Data, byMonth[key].requests)
	}
	return chart
}

// Snapshot computes the header counters in a single pass. Each record
// contributes to at most one status bucket; unrecognized codes count only
// toward the total. "today" is injected to keep the function testable.
func Snapshot(records []domain.TicketRecord, today time.Time) domain.MetricsSnapshot {
	metrics := domain.MetricsSnapshot{Total: len(records)}
	todayYear, todayMonth, todayDay := today.Date()

	for _, rec := range records {
		switch domain.StatusBucketFor(rec.StatusCode) {
		case domain.BucketNew:
			metrics.New++
		case domain.BucketInProgress:
			metrics.InProgress++
		case domain.BucketPending:
			metrics.Pending++
		case domain.BucketResolved:
			metrics.Resolved++
		}

		if rec.OpenedAt != nil {
			year, month, day := rec.OpenedAt.Date()
			if year == todayYear && month == todayMonth && day == todayDay {
				metrics.OpenedToday++
			}
		}
	}
	return metrics
}
