package render

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"kernel-matrix/internal/report"
)

func sampleDocument() *report.Document {
	return &report.Document{
		GeneratedAt: "2026-08-20T12:00:00Z",
		Revision:    "9f2c1ab",
		Reports: []report.KernelReport{
			{
				KernelName:      "ir",
				Language:        "R",
				Implementation:  "IRkernel",
				ProtocolVersion: "5.3",
				TotalDurationMS: 30000,
				Results: []report.TestRecord{
					{Name: "kernel_info", Tier: report.Tier1Basic, DurationMS: 100, Result: report.Pass()},
					{Name: "execute_simple", Tier: report.Tier1Basic, DurationMS: 200, Result: report.Fail("Bad reply", "")},
					{Name: "complete_request", Tier: report.Tier2Interactive, DurationMS: 150, Result: report.Fail("Handshake Timeout after 10s", report.KindTimeout)},
					{Name: "display_data", Tier: report.Tier3RichOutput, DurationMS: 90, Result: report.PartialPass(0.5, "png only")},
				},
			},
			{
				KernelName:      "python3",
				Language:        "python",
				Implementation:  "ipykernel",
				ProtocolVersion: "5.3",
				TotalDurationMS: 20000,
				Results: []report.TestRecord{
					{Name: "kernel_info", Tier: report.Tier1Basic, DurationMS: 80, Result: report.Pass()},
					{Name: "execute_simple", Tier: report.Tier1Basic, DurationMS: 120, Result: report.Pass()},
					{Name: "stdin_request", Tier: report.Tier4Advanced, DurationMS: 60, Result: report.Unsupported()},
				},
			},
			{
				KernelName:     "ghost",
				Language:       "unknown",
				Implementation: "ghostkernel",
				StartupFailure: "kernel process exited before binding sockets",
			},
		},
	}
}

func TestKernelViewTierSections(t *testing.T) {
	doc := sampleDocument()
	r, _ := doc.Find("ir")
	view := BuildKernelView(r)
	if view.Percent != 50 || view.Passed != 2 || view.Total != 4 {
		t.Fatalf("unexpected totals: %d/%d (%d%%)", view.Passed, view.Total, view.Percent)
	}
	// tier4 has no tests and must be omitted, not shown empty
	var tiers []int
	for _, section := range view.Tiers {
		tiers = append(tiers, section.Number)
	}
	if diff := cmp.Diff([]int{1, 2, 3}, tiers); diff != "" {
		t.Fatalf("unexpected tier sections (-want +got):\n%s", diff)
	}
	if view.Tiers[0].Tests[1].Label != "FAIL" || view.Tiers[0].Tests[1].Reason != "Bad reply" {
		t.Fatalf("unexpected fail row: %+v", view.Tiers[0].Tests[1])
	}
	part := view.Tiers[2].Tests[0]
	if part.Label != "PART" || part.ScorePercent == nil || *part.ScorePercent != 50 {
		t.Fatalf("unexpected partial row: %+v", part)
	}
}

func TestKernelViewFailureGroups(t *testing.T) {
	doc := sampleDocument()
	r, _ := doc.Find("ir")
	view := BuildKernelView(r)
	if len(view.FailureGroups) != 2 {
		t.Fatalf("expected 2 failure groups, got %d", len(view.FailureGroups))
	}
	if view.FailureGroups[0].Key != "Bad reply" || view.FailureGroups[1].Key != "Timeout" {
		t.Fatalf("unexpected group keys: %+v", view.FailureGroups)
	}
}

func TestKernelViewStartupFailureSuppressesTiers(t *testing.T) {
	doc := sampleDocument()
	r, _ := doc.Find("ghost")
	view := BuildKernelView(r)
	if view.StartupFailure == "" {
		t.Fatal("expected startup failure content")
	}
	if len(view.Tiers) != 0 || len(view.FailureGroups) != 0 {
		t.Fatalf("startup failure must suppress tier data: %+v", view)
	}
	if view.Total != 0 || view.Percent != 0 {
		t.Fatalf("expected zero score, got %d%% of %d", view.Percent, view.Total)
	}
}

func TestSummaryViewOrdering(t *testing.T) {
	view := BuildSummaryView(sampleDocument())
	if view.KernelCount != 3 {
		t.Fatalf("expected 3 kernels, got %d", view.KernelCount)
	}
	var names []string
	for _, row := range view.Rows {
		names = append(names, row.Kernel)
	}
	// python3 2/3 (67%), ir 2/4 (50%), ghost 0
	if diff := cmp.Diff([]string{"python3", "ir", "ghost"}, names); diff != "" {
		t.Fatalf("unexpected row order (-want +got):\n%s", diff)
	}
	if !view.Rows[2].StartupFailure {
		t.Fatal("ghost row must be flagged as startup failure")
	}
	if view.Passed != 4 || view.Total != 7 {
		t.Fatalf("unexpected aggregate %d/%d", view.Passed, view.Total)
	}
}

func TestMatrixViewCells(t *testing.T) {
	view := BuildMatrixView(sampleDocument())
	if diff := cmp.Diff([]string{"python3", "ir", "ghost"}, view.Kernels); diff != "" {
		t.Fatalf("unexpected columns (-want +got):\n%s", diff)
	}
	var names []string
	for _, row := range view.Rows {
		names = append(names, row.Name)
	}
	want := []string{"complete_request", "display_data", "execute_simple", "kernel_info", "stdin_request"}
	if diff := cmp.Diff(want, names); diff != "" {
		t.Fatalf("unexpected row order (-want +got):\n%s", diff)
	}
	// execute_simple: python3 passes, ir fails, ghost never ran
	for _, row := range view.Rows {
		if row.Name == "execute_simple" {
			if diff := cmp.Diff([]string{"PASS", "FAIL", "-"}, row.Cells); diff != "" {
				t.Fatalf("unexpected cells (-want +got):\n%s", diff)
			}
		}
	}
}

func TestCardsViewStartupFailure(t *testing.T) {
	view := BuildCardsView(sampleDocument())
	if len(view.Cards) != 3 {
		t.Fatalf("expected 3 cards, got %d", len(view.Cards))
	}
	ghost := view.Cards[2]
	if ghost.StartupFailure == "" || len(ghost.Tiers) != 0 {
		t.Fatalf("ghost card must carry only the startup failure: %+v", ghost)
	}
	if len(view.Cards[0].Tiers) != 4 {
		t.Fatalf("expected 4 tier scores on a healthy card, got %d", len(view.Cards[0].Tiers))
	}
}
