// Package render turns a result document into its output representations:
// JSON view models for the interactive UI, markdown and plain-text exports,
// and SVG summary images. Every number shown comes from internal/report;
// nothing in this package computes a score on its own.
package render

import (
	"kernel-matrix/internal/report"
)

// TestView is one test row with its fixed status label.
type TestView struct {
	Name         string `json:"name"`
	Description  string `json:"description,omitempty"`
	MessageType  string `json:"message_type,omitempty"`
	Label        string `json:"label"`
	DurationMS   int64  `json:"duration_ms"`
	Reason       string `json:"reason,omitempty"`
	FailureKind  string `json:"failure_kind,omitempty"`
	ScorePercent *int   `json:"score_percent,omitempty"`
	Notes        string `json:"notes,omitempty"`
}

// TierSection is one accordion section of the kernel detail view. Tiers with
// zero tests are never emitted.
type TierSection struct {
	Tier   string     `json:"tier"`
	Number int        `json:"number"`
	Label  string     `json:"label"`
	Passed int        `json:"passed"`
	Total  int        `json:"total"`
	Tests  []TestView `json:"tests"`
}

// FailureGroupView is one cluster of failing tests sharing a reason key.
type FailureGroupView struct {
	Key   string   `json:"key"`
	Count int      `json:"count"`
	Tests []string `json:"tests"`
}

// KernelView is the interactive detail view of one kernel. When the kernel
// never started, StartupFailure carries the sole content and Tiers stays
// empty; tier data is meaningless after a startup failure.
type KernelView struct {
	Kernel          string             `json:"kernel"`
	Language        string             `json:"language"`
	Implementation  string             `json:"implementation"`
	ProtocolVersion string             `json:"protocol_version"`
	Passed          int                `json:"passed"`
	Total           int                `json:"total"`
	Percent         int                `json:"percent"`
	TotalDurationMS int64              `json:"total_duration_ms"`
	StartupFailure  string             `json:"startup_failure,omitempty"`
	Tiers           []TierSection      `json:"tiers,omitempty"`
	FailureGroups   []FailureGroupView `json:"failure_groups,omitempty"`
}

// TierScoreView is a (passed, total) pair for one tier.
type TierScoreView struct {
	Tier   string `json:"tier"`
	Number int    `json:"number"`
	Passed int    `json:"passed"`
	Total  int    `json:"total"`
}

// SummaryRow is one kernel line of the summary table, already in display
// order when it comes out of BuildSummaryView.
type SummaryRow struct {
	Kernel         string          `json:"kernel"`
	Implementation string          `json:"implementation"`
	Language       string          `json:"language"`
	Passed         int             `json:"passed"`
	Total          int             `json:"total"`
	Percent        int             `json:"percent"`
	Tiers          []TierScoreView `json:"tiers"`
	StartupFailure bool            `json:"startup_failure,omitempty"`
}

type SummaryView struct {
	GeneratedAt string       `json:"generated_at"`
	Revision    string       `json:"revision,omitempty"`
	KernelCount int          `json:"kernel_count"`
	Passed      int          `json:"passed"`
	Total       int          `json:"total"`
	Percent     int          `json:"percent"`
	Rows        []SummaryRow `json:"rows"`
}

// MatrixRow is one test across every kernel column; a kernel that did not
// run the test gets "-".
type MatrixRow struct {
	Name  string   `json:"name"`
	Cells []string `json:"cells"`
}

type MatrixView struct {
	Kernels []string    `json:"kernels"`
	Rows    []MatrixRow `json:"rows"`
}

type Card struct {
	Kernel         string          `json:"kernel"`
	Implementation string          `json:"implementation"`
	Language       string          `json:"language"`
	Passed         int             `json:"passed"`
	Total          int             `json:"total"`
	Percent        int             `json:"percent"`
	StartupFailure string          `json:"startup_failure,omitempty"`
	Tiers          []TierScoreView `json:"tiers"`
}

type CardsView struct {
	Cards []Card `json:"cards"`
}

// BuildKernelView derives the interactive detail view for one report.
func BuildKernelView(r *report.KernelReport) KernelView {
	view := KernelView{
		Kernel:          r.KernelName,
		Language:        r.Language,
		Implementation:  r.Implementation,
		ProtocolVersion: r.ProtocolVersion,
		Passed:          r.Passed(),
		Total:           r.Total(),
		Percent:         report.Percent(r.Passed(), r.Total()),
		TotalDurationMS: r.TotalDurationMS,
	}
	if r.HasStartupFailure() {
		view.StartupFailure = r.StartupFailure
		return view
	}
	for _, tier := range report.Tiers() {
		records := r.TierResults(tier)
		if len(records) == 0 {
			continue
		}
		passed, total := r.TierScore(tier)
		section := TierSection{
			Tier:   string(tier),
			Number: tier.Number(),
			Label:  tier.Label(),
			Passed: passed,
			Total:  total,
		}
		for _, record := range records {
			section.Tests = append(section.Tests, buildTestView(record))
		}
		view.Tiers = append(view.Tiers, section)
	}
	for _, group := range r.FailureGroups() {
		gv := FailureGroupView{Key: group.Key, Count: len(group.Tests)}
		for _, test := range group.Tests {
			gv.Tests = append(gv.Tests, test.Name)
		}
		view.FailureGroups = append(view.FailureGroups, gv)
	}
	return view
}

func buildTestView(record report.TestRecord) TestView {
	view := TestView{
		Name:        record.Name,
		Description: record.Description,
		MessageType: record.MessageType,
		Label:       record.Result.Label(),
		DurationMS:  record.DurationMS,
	}
	switch record.Result.Status() {
	case report.StatusFail:
		view.Reason = record.Result.Reason()
		view.FailureKind = string(record.Result.Kind())
	case report.StatusPartialPass:
		percent := report.FractionPercent(record.Result.PartialScore())
		view.ScorePercent = &percent
		view.Notes = record.Result.Notes()
	}
	return view
}

// BuildSummaryView derives the summary list, kernels ordered by descending
// score with document order breaking ties.
func BuildSummaryView(doc *report.Document) SummaryView {
	passed, total := doc.Aggregate()
	view := SummaryView{
		GeneratedAt: doc.GeneratedAt,
		Revision:    doc.Revision,
		KernelCount: len(doc.Reports),
		Passed:      passed,
		Total:       total,
		Percent:     report.Percent(passed, total),
	}
	for _, r := range doc.SortedReports() {
		view.Rows = append(view.Rows, buildSummaryRow(r))
	}
	return view
}

func buildSummaryRow(r report.KernelReport) SummaryRow {
	row := SummaryRow{
		Kernel:         r.KernelName,
		Implementation: r.Implementation,
		Language:       r.Language,
		Passed:         r.Passed(),
		Total:          r.Total(),
		Percent:        report.Percent(r.Passed(), r.Total()),
		StartupFailure: r.HasStartupFailure(),
		Tiers:          tierScores(&r),
	}
	return row
}

func tierScores(r *report.KernelReport) []TierScoreView {
	out := make([]TierScoreView, 0, 4)
	for _, tier := range report.Tiers() {
		passed, total := r.TierScore(tier)
		out = append(out, TierScoreView{
			Tier:   string(tier),
			Number: tier.Number(),
			Passed: passed,
			Total:  total,
		})
	}
	return out
}

// BuildMatrixView derives the test-by-kernel matrix. Row order is the sorted
// distinct test-name sequence; column order matches the summary ordering.
func BuildMatrixView(doc *report.Document) MatrixView {
	sorted := doc.SortedReports()
	view := MatrixView{}
	for _, r := range sorted {
		view.Kernels = append(view.Kernels, r.KernelName)
	}
	for _, name := range doc.AllTestNames() {
		row := MatrixRow{Name: name}
		for i := range sorted {
			row.Cells = append(row.Cells, matrixCell(&sorted[i], name))
		}
		view.Rows = append(view.Rows, row)
	}
	return view
}

func matrixCell(r *report.KernelReport, testName string) string {
	if r.HasStartupFailure() {
		return "-"
	}
	for _, record := range r.Results {
		if record.Name == testName {
			return record.Result.Label()
		}
	}
	return "-"
}

// BuildCardsView derives the card list in summary order.
func BuildCardsView(doc *report.Document) CardsView {
	view := CardsView{}
	for _, r := range doc.SortedReports() {
		card := Card{
			Kernel:         r.KernelName,
			Implementation: r.Implementation,
			Language:       r.Language,
			Passed:         r.Passed(),
			Total:          r.Total(),
			Percent:        report.Percent(r.Passed(), r.Total()),
			StartupFailure: r.StartupFailure,
		}
		if !r.HasStartupFailure() {
			card.Tiers = tierScores(&r)
		}
		view.Cards = append(view.Cards, card)
	}
	return view
}
