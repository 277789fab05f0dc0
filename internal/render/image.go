package render

import (
	"fmt"
	"strings"

	"kernel-matrix/internal/report"
)

// Summary images are fixed-dimension SVG documents sized for social preview
// cards. They are built from the same derivations as every other renderer
// and are byte-deterministic for a given document.
const (
	imageWidth  = 1200
	imageHeight = 630
)

var svgEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
)

func svgOpen(b *strings.Builder) {
	fmt.Fprintf(b, `<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">`,
		imageWidth, imageHeight, imageWidth, imageHeight)
	b.WriteString(`<rect width="100%" height="100%" fill="#1a1a2e"/>`)
}

func svgText(b *strings.Builder, x, y, size int, fill, text string) {
	fmt.Fprintf(b, `<text x="%d" y="%d" font-family="monospace" font-size="%d" fill="%s">%s</text>`,
		x, y, size, fill, svgEscaper.Replace(text))
}

func svgBar(b *strings.Builder, y, percent int) {
	const barX, barWidth, barHeight = 100, 1000, 40
	fmt.Fprintf(b, `<rect x="%d" y="%d" width="%d" height="%d" rx="8" fill="#31304d"/>`,
		barX, y, barWidth, barHeight)
	filled := barWidth * percent / 100
	if filled > 0 {
		fmt.Fprintf(b, `<rect x="%d" y="%d" width="%d" height="%d" rx="8" fill="#4ecca3"/>`,
			barX, y, filled, barHeight)
	}
}

// DocumentImage renders the whole-document summary card: kernel count and
// aggregate pass rate.
func DocumentImage(doc *report.Document) string {
	passed, total := doc.Aggregate()
	percent := report.Percent(passed, total)
	var b strings.Builder
	svgOpen(&b)
	svgText(&b, 100, 140, 56, "#ffffff", "Kernel Conformance Matrix")
	svgText(&b, 100, 260, 40, "#a6a6c9", fmt.Sprintf("%d kernels tested", len(doc.Reports)))
	svgText(&b, 100, 340, 40, "#a6a6c9", fmt.Sprintf("%d/%d tests passing", passed, total))
	svgBar(&b, 400, percent)
	svgText(&b, 100, 520, 72, "#4ecca3", fmt.Sprintf("%d%%", percent))
	b.WriteString("</svg>")
	return b.String()
}

// KernelImage renders one kernel's summary card. A startup failure replaces
// the score content entirely, matching every other renderer.
func KernelImage(r *report.KernelReport) string {
	var b strings.Builder
	svgOpen(&b)
	svgText(&b, 100, 140, 56, "#ffffff", fmt.Sprintf("%s Conformance", r.KernelName))
	svgText(&b, 100, 230, 36, "#a6a6c9", r.Implementation)
	if r.HasStartupFailure() {
		svgText(&b, 100, 360, 44, "#e94560", "Startup failure")
		svgText(&b, 100, 440, 28, "#a6a6c9", truncate(r.StartupFailure, 70))
		b.WriteString("</svg>")
		return b.String()
	}
	passed, total := r.Passed(), r.Total()
	percent := report.Percent(passed, total)
	failed := total - passed
	svgText(&b, 100, 340, 40, "#a6a6c9", fmt.Sprintf("%d passed, %d not passing", passed, failed))
	svgBar(&b, 400, percent)
	svgText(&b, 100, 520, 72, "#4ecca3", fmt.Sprintf("%d%%", percent))
	b.WriteString("</svg>")
	return b.String()
}

// NotFoundImage is the placeholder card for a kernel name absent from the
// loaded document.
func NotFoundImage(name string) string {
	var b strings.Builder
	svgOpen(&b)
	svgText(&b, 100, 140, 56, "#ffffff", "Kernel Conformance Matrix")
	svgText(&b, 100, 300, 44, "#e94560", fmt.Sprintf("No report for %q", truncate(name, 40)))
	b.WriteString("</svg>")
	return b.String()
}
