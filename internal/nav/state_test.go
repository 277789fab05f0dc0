package nav

import (
	"testing"

	"kernel-matrix/internal/report"
)

func twoKernelDoc() *report.Document {
	return &report.Document{Reports: []report.KernelReport{
		{KernelName: "python3"},
		{KernelName: "deno/ts"},
	}}
}

func TestRoundTripLocationShapes(t *testing.T) {
	doc := twoKernelDoc()
	states := []State{
		{Mode: ModeSummary},
		{Mode: ModeMatrix},
		{Mode: ModeCards},
		{Mode: ModeSummary, Kernel: "python3"},
	}
	for _, state := range states {
		location := state.Encode()
		decoded := DecodeLocation(location, doc)
		if decoded != state {
			t.Fatalf("round trip via %q: got %+v, want %+v", location, decoded, state)
		}
	}
}

func TestKernelNameIsPercentEncoded(t *testing.T) {
	doc := twoKernelDoc()
	state := State{Mode: ModeSummary, Kernel: "deno/ts"}
	location := state.Encode()
	if location != "/kernel/deno%2Fts" {
		t.Fatalf("unexpected encoding: %q", location)
	}
	if decoded := DecodeLocation(location, doc); decoded != state {
		t.Fatalf("decode of %q: got %+v, want %+v", location, decoded, state)
	}
}

func TestUnrecognizedLocationsFallBackToSummary(t *testing.T) {
	doc := twoKernelDoc()
	for _, location := range []string{"/nonsense", "/kernel/", "/kernel/python3/extra", "///", "/MATRIX", "/kernel/%zz"} {
		state := DecodeLocation(location, doc)
		if state.Mode != ModeSummary || state.Kernel != "" {
			t.Fatalf("location %q: expected summary with no selection, got %+v", location, state)
		}
	}
}

func TestDetailForUnknownKernelDropsSelection(t *testing.T) {
	state := DecodeLocation("/kernel/haskell", twoKernelDoc())
	if state.Mode != ModeSummary || state.Kernel != "" {
		t.Fatalf("expected summary without selection, got %+v", state)
	}
	// same when no document is loaded at all
	state = DecodeLocation("/kernel/python3", nil)
	if state.Kernel != "" {
		t.Fatalf("expected no selection without a document, got %+v", state)
	}
}

func TestSelectionKeepsUnderlyingMode(t *testing.T) {
	doc := twoKernelDoc()
	state := State{Mode: ModeCards}.WithKernel("python3", doc)
	if state.Mode != ModeCards || state.Kernel != "python3" {
		t.Fatalf("selection must keep the list mode, got %+v", state)
	}
	// leaving the detail returns to cards, not unconditionally to summary
	back := state.WithKernel("", doc)
	if back.Mode != ModeCards || back.Kernel != "" {
		t.Fatalf("expected cards with no selection, got %+v", back)
	}
}

func TestModeChangeClearsSelection(t *testing.T) {
	doc := twoKernelDoc()
	state := State{Mode: ModeSummary}.WithKernel("python3", doc).WithMode(ModeMatrix)
	if state.Mode != ModeMatrix || state.Kernel != "" {
		t.Fatalf("mode change must clear the selection, got %+v", state)
	}
	if got := state.WithMode("time-travel"); got.Mode != ModeSummary {
		t.Fatalf("invalid mode must fall back to summary, got %+v", got)
	}
}

func TestFragmentPrefixAccepted(t *testing.T) {
	state := DecodeLocation("#/matrix", twoKernelDoc())
	if state.Mode != ModeMatrix {
		t.Fatalf("expected matrix, got %+v", state)
	}
}
