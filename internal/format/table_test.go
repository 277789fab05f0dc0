package format

import (
	"strings"
	"testing"
)

func TestMarkdownTable(t *testing.T) {
	tbl := New(Markdown)
	tbl.Header("Kernel", "Score")
	tbl.RightAlign(2)
	tbl.Row("python3", "87%")
	out := tbl.Render()
	if !strings.Contains(out, "| Kernel |") {
		t.Fatalf("markdown header missing or reformatted:\n%s", out)
	}
	if !strings.Contains(out, "python3") || !strings.Contains(out, "87%") {
		t.Fatalf("markdown row missing:\n%s", out)
	}
}

func TestPlainTable(t *testing.T) {
	tbl := New(Plain)
	tbl.Header("Kernel", "Score")
	tbl.Row("python3", "87%")
	out := tbl.Render()
	if !strings.Contains(out, "Kernel") || !strings.Contains(out, "python3") {
		t.Fatalf("plain table incomplete:\n%s", out)
	}
	if strings.Contains(out, "KERNEL") {
		t.Fatalf("header must keep its written case:\n%s", out)
	}
}
