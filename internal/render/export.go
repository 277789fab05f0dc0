package render

import (
	"fmt"
	"net/url"
	"strings"

	"kernel-matrix/internal/format"
	"kernel-matrix/internal/report"
)

// ExportDelimiter separates kernel sections in the full concatenation feed.
const ExportDelimiter = "\n\n---\n\n"

const indexTitle = "Kernel Conformance Matrix"

// KernelFileName is the deterministic export file name for a kernel,
// percent-encoded so names with reserved characters stay one path segment.
func KernelFileName(name string) string {
	return url.PathEscape(name) + ".md"
}

func percentCell(passed, total int) string {
	return fmt.Sprintf("%d%%", report.Percent(passed, total))
}

func tierCell(r *report.KernelReport, tier report.Tier) string {
	passed, total := r.TierScore(tier)
	return fmt.Sprintf("%d/%d", passed, total)
}

func summaryTable(doc *report.Document, style format.Style) string {
	t := format.New(style)
	t.Header("Kernel", "Implementation", "Score", "Tier 1", "Tier 2", "Tier 3", "Tier 4")
	t.RightAlign(3, 4, 5, 6, 7)
	for _, r := range doc.SortedReports() {
		t.Row(
			r.KernelName,
			r.Implementation,
			percentCell(r.Passed(), r.Total()),
			tierCell(&r, report.Tier1Basic),
			tierCell(&r, report.Tier2Interactive),
			tierCell(&r, report.Tier3RichOutput),
			tierCell(&r, report.Tier4Advanced),
		)
	}
	return t.Render()
}

// Index renders the top-level markdown document: title, provenance line,
// kernel count and the summary table.
func Index(doc *report.Document) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", indexTitle)
	fmt.Fprintf(&b, "Generated: %s", doc.GeneratedAt)
	if doc.Revision != "" {
		fmt.Fprintf(&b, " (revision `%s`)", doc.Revision)
	}
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "Kernels tested: %d\n\n", len(doc.Reports))
	b.WriteString(summaryTable(doc, format.Markdown))
	b.WriteString("\n")
	return b.String()
}

// Matrix renders the test-by-kernel markdown table. Cells carry the fixed
// status labels; a kernel that did not run a test gets "-".
func Matrix(doc *report.Document) string {
	matrix := BuildMatrixView(doc)
	var b strings.Builder
	fmt.Fprintf(&b, "# %s: Test Matrix\n\n", indexTitle)
	t := format.New(format.Markdown)
	header := append([]string{"Test"}, matrix.Kernels...)
	t.Header(header...)
	for _, row := range matrix.Rows {
		cells := make([]any, 0, len(row.Cells)+1)
		cells = append(cells, row.Name)
		for _, cell := range row.Cells {
			cells = append(cells, cell)
		}
		t.Row(cells...)
	}
	b.WriteString(t.Render())
	b.WriteString("\n")
	return b.String()
}

// KernelDetail renders one kernel's markdown section, mirroring the
// interactive detail view. A startup failure replaces every tier section.
func KernelDetail(r *report.KernelReport) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s Conformance Report\n\n", r.KernelName)
	fmt.Fprintf(&b, "- **Implementation**: %s\n", r.Implementation)
	fmt.Fprintf(&b, "- **Language**: %s\n", r.Language)
	fmt.Fprintf(&b, "- **Protocol Version**: %s\n", r.ProtocolVersion)

	if r.HasStartupFailure() {
		b.WriteString("\n## Startup failure\n\n")
		b.WriteString("The kernel never reached a testable state:\n\n")
		fmt.Fprintf(&b, "```\n%s\n```\n", r.StartupFailure)
		return b.String()
	}

	fmt.Fprintf(&b, "- **Score**: %d/%d (%s)\n", r.Passed(), r.Total(), percentCell(r.Passed(), r.Total()))

	for _, tier := range report.Tiers() {
		records := r.TierResults(tier)
		if len(records) == 0 {
			continue
		}
		passed, total := r.TierScore(tier)
		fmt.Fprintf(&b, "\n## Tier %d: %s (%d/%d)\n\n", tier.Number(), tier.Label(), passed, total)
		t := format.New(format.Markdown)
		t.Header("Test", "Result", "Duration")
		t.RightAlign(3)
		for _, record := range records {
			t.Row(record.Name, resultCell(record.Result), fmt.Sprintf("%dms", record.DurationMS))
		}
		b.WriteString(t.Render())
		b.WriteString("\n")
	}

	if groups := r.FailureGroups(); len(groups) > 0 {
		b.WriteString("\n## Failures\n\n")
		for _, group := range groups {
			names := make([]string, 0, len(group.Tests))
			for _, test := range group.Tests {
				names = append(names, test.Name)
			}
			fmt.Fprintf(&b, "- **%s** (%d): %s\n", group.Key, len(group.Tests), strings.Join(names, ", "))
		}
	}
	return b.String()
}

func resultCell(o report.Outcome) string {
	switch o.Status() {
	case report.StatusFail:
		return fmt.Sprintf("FAIL: %s", truncate(o.Reason(), 60))
	case report.StatusPartialPass:
		return fmt.Sprintf("PART (%d%%): %s", report.FractionPercent(o.PartialScore()), truncate(o.Notes(), 60))
	}
	return o.Label()
}

// KernelNotFound is the placeholder document for a kernel absent from the
// loaded result document.
func KernelNotFound(name string) string {
	return fmt.Sprintf("# %s\n\nNo conformance report for kernel %q in the current document.\n", name, name)
}

// LinkIndex renders the short machine-readable feed: one summary line and a
// link per kernel detail document.
func LinkIndex(doc *report.Document) string {
	passed, total := doc.Aggregate()
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", indexTitle)
	fmt.Fprintf(&b, "> Protocol conformance results for %d kernels: %d/%d tests passing (%s) overall.\n\n",
		len(doc.Reports), passed, total, percentCell(passed, total))
	b.WriteString("## Kernels\n\n")
	for _, r := range doc.SortedReports() {
		if r.HasStartupFailure() {
			fmt.Fprintf(&b, "- [%s](%s): startup failure\n", r.KernelName, KernelFileName(r.KernelName))
			continue
		}
		fmt.Fprintf(&b, "- [%s](%s): %s (%d/%d)\n",
			r.KernelName, KernelFileName(r.KernelName),
			percentCell(r.Passed(), r.Total()), r.Passed(), r.Total())
	}
	return b.String()
}

// FullExport concatenates the index and every kernel detail section into one
// document for text-oriented clients.
func FullExport(doc *report.Document) string {
	parts := []string{Index(doc)}
	for _, r := range doc.SortedReports() {
		parts = append(parts, KernelDetail(&r))
	}
	return strings.Join(parts, ExportDelimiter)
}

// Terminal renders a kernel report as a fixed-width text block for the CLI.
func Terminal(r *report.KernelReport) string {
	var b strings.Builder
	rule := strings.Repeat("=", 60)
	fmt.Fprintf(&b, "%s\nConformance Report: %s (%s)\n", rule, r.KernelName, r.Implementation)
	fmt.Fprintf(&b, "Language: %s | Protocol: %s | Duration: %dms\n%s\n", r.Language, r.ProtocolVersion, r.TotalDurationMS, rule)

	if r.HasStartupFailure() {
		fmt.Fprintf(&b, "\nSTARTUP FAILURE: %s\n", r.StartupFailure)
		return b.String()
	}

	for _, tier := range report.Tiers() {
		records := r.TierResults(tier)
		if len(records) == 0 {
			continue
		}
		passed, total := r.TierScore(tier)
		fmt.Fprintf(&b, "\nTier %d: %s (%d/%d)\n", tier.Number(), tier.Label(), passed, total)
		t := format.New(format.Plain)
		t.Header("Result", "Test", "Duration")
		t.RightAlign(3)
		for _, record := range records {
			t.Row(record.Result.Label(), record.Name, fmt.Sprintf("%dms", record.DurationMS))
		}
		b.WriteString(t.Render())
		b.WriteString("\n")
		for _, record := range records {
			switch record.Result.Status() {
			case report.StatusFail:
				fmt.Fprintf(&b, "  %s: %s\n", record.Name, record.Result.Reason())
			case report.StatusPartialPass:
				fmt.Fprintf(&b, "  %s: %d%% - %s\n", record.Name, report.FractionPercent(record.Result.PartialScore()), record.Result.Notes())
			}
		}
	}
	fmt.Fprintf(&b, "\n%s\nTotal: %d/%d (%s)\n", rule, r.Passed(), r.Total(), percentCell(r.Passed(), r.Total()))
	return b.String()
}

// TerminalSummary renders the document summary table for terminals.
func TerminalSummary(doc *report.Document) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n\n", indexTitle)
	b.WriteString(summaryTable(doc, format.Plain))
	b.WriteString("\n")
	return b.String()
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}
