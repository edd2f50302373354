package deploy

import (
	"sort"
	"time"
)

// SummaryRow is one rendered line of a deployment summary.
type SummaryRow struct {
	Kind   Kind
	Name   string
	Op     Op
	Detail string
}

// Summary is the aggregated, presentation-ready view of a Result. It is
// computed purely from already-collected data; no cluster access happens
// here.
type Summary struct {
	Status  Status
	Elapsed time.Duration
	Rollout *RolloutState
	Rows    []SummaryRow
}

// Summarize aggregates a Result into a Summary. Rows are sorted by the
// fixed dependency order (stable within equal rank) so output is
// deterministic for identical input.
func Summarize(result Result) Summary {
	rows := make([]SummaryRow, 0, len(result.Outcomes))
	for _, o := range result.Outcomes {
		detail := o.Detail
		if o.Err != nil {
			detail = o.Err.Error()
		}
		rows = append(rows, SummaryRow{Kind: o.Kind, Name: o.Name, Op: o.Op, Detail: detail})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return kindRank[rows[i].Kind] < kindRank[rows[j].Kind]
	})

	return Summary{
		Status:  result.Status,
		Elapsed: result.Elapsed.Round(time.Millisecond),
		Rollout: result.Rollout,
		Rows:    rows,
	}
}
