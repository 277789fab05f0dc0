// Package nav is the client-side view-state machine. A State is a pure
// value; the location string it encodes to is the single source of truth, so
// decoding a location always reproduces the same view. Navigation never
// touches the loaded document beyond checking that a kernel name exists.
package nav

import (
	"net/url"
	"strings"

	"kernel-matrix/internal/report"
)

// Mode is one of the three list views.
type Mode string

const (
	ModeSummary Mode = "summary"
	ModeMatrix  Mode = "matrix"
	ModeCards   Mode = "cards"
)

func (m Mode) Valid() bool {
	switch m {
	case ModeSummary, ModeMatrix, ModeCards:
		return true
	}
	return false
}

// State is the complete view state: the underlying list mode plus an
// optional selected kernel shown as a detail overlay. Keeping the mode while
// a kernel is selected is what lets "back" return to the list the user came
// from instead of always landing on the summary.
type State struct {
	Mode   Mode
	Kernel string
}

// DecodeLocation maps an addressable location to a State. A detail location
// selects the named kernel over the summary list; a name absent from doc
// falls back to no selection. Anything unrecognized resolves to the summary
// with no selection, never an error.
func DecodeLocation(location string, doc *report.Document) State {
	path := strings.TrimPrefix(strings.TrimSpace(location), "#")
	path = strings.TrimSuffix(path, "/")
	switch path {
	case "", "/summary":
		return State{Mode: ModeSummary}
	case "/matrix":
		return State{Mode: ModeMatrix}
	case "/cards":
		return State{Mode: ModeCards}
	}
	if raw, ok := strings.CutPrefix(path, "/kernel/"); ok && raw != "" && !strings.Contains(raw, "/") {
		name, err := url.PathUnescape(raw)
		if err == nil && kernelExists(doc, name) {
			return State{Mode: ModeSummary, Kernel: name}
		}
	}
	return State{Mode: ModeSummary}
}

// Encode renders the State back to its location string. A selected kernel
// always wins over the list mode, so the encoding of a detail view is
// mode-independent; the in-session mode survives only through transitions,
// not through the location.
func (s State) Encode() string {
	if s.Kernel != "" {
		return "/kernel/" + url.PathEscape(s.Kernel)
	}
	switch s.Mode {
	case ModeMatrix:
		return "/matrix"
	case ModeCards:
		return "/cards"
	}
	return "/"
}

// WithKernel selects a kernel without discarding the current list mode.
// A name the document does not contain clears the selection instead.
func (s State) WithKernel(name string, doc *report.Document) State {
	next := s
	if kernelExists(doc, name) {
		next.Kernel = name
	} else {
		next.Kernel = ""
	}
	return next
}

// WithMode switches the list mode and clears any kernel selection.
func (s State) WithMode(mode Mode) State {
	if !mode.Valid() {
		mode = ModeSummary
	}
	return State{Mode: mode}
}

func kernelExists(doc *report.Document, name string) bool {
	if doc == nil || name == "" {
		return false
	}
	_, ok := doc.Find(name)
	return ok
}
