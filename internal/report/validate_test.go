package report

import (
	"strings"
	"testing"
)

const validDocument = `{
  "generated_at": "2026-08-20T12:00:00Z",
  "revision": "9f2c1ab",
  "reports": [
    {
      "kernel_name": "python3",
      "language": "python",
      "implementation": "ipykernel",
      "protocol_version": "5.3",
      "timestamp": "2026-08-20T10:00:00Z",
      "total_duration": 48000,
      "results": [
        {"name": "kernel_info", "category": "tier1_basic", "message_type": "kernel_info_request", "duration": 120, "result": {"status": "pass"}},
        {"name": "execute_simple", "category": "tier1_basic", "duration": 340, "result": {"status": "fail", "reason": "Bad reply"}},
        {"name": "display_data", "category": "tier3_rich_output", "duration": 200, "result": {"status": "partial_pass", "score": 0.5, "notes": "png only"}}
      ]
    },
    {
      "kernel_name": "ghost",
      "language": "unknown",
      "implementation": "ghostkernel",
      "protocol_version": "5.3",
      "timestamp": "2026-08-20T10:05:00Z",
      "total_duration": 0,
      "startup_failure": "kernel process exited before binding sockets",
      "results": []
    }
  ]
}`

func TestDecodeValidDocument(t *testing.T) {
	doc, err := DecodeDocument([]byte(validDocument))
	if err != nil {
		t.Fatalf("DecodeDocument: %v", err)
	}
	if len(doc.Reports) != 2 {
		t.Fatalf("expected 2 reports, got %d", len(doc.Reports))
	}
	if doc.Revision != "9f2c1ab" {
		t.Fatalf("expected revision 9f2c1ab, got %q", doc.Revision)
	}
	python, ok := doc.Find("python3")
	if !ok {
		t.Fatal("python3 report missing")
	}
	if python.Passed() != 2 || python.Total() != 3 {
		t.Fatalf("expected 2/3, got %d/%d", python.Passed(), python.Total())
	}
	ghost, ok := doc.Find("ghost")
	if !ok {
		t.Fatal("ghost report missing")
	}
	if !ghost.HasStartupFailure() {
		t.Fatal("expected startup failure on ghost")
	}
}

func TestDecodeRejectsMissingRequiredField(t *testing.T) {
	in := strings.Replace(validDocument, `"kernel_name": "python3",`, "", 1)
	if _, err := DecodeDocument([]byte(in)); err == nil {
		t.Fatal("expected validation error for missing kernel_name")
	}
}

func TestDecodeRejectsUnknownStatus(t *testing.T) {
	in := strings.Replace(validDocument, `{"status": "pass"}`, `{"status": "maybe"}`, 1)
	if _, err := DecodeDocument([]byte(in)); err == nil {
		t.Fatal("expected validation error for unknown status")
	}
}

func TestDecodeRejectsFailWithoutReason(t *testing.T) {
	in := strings.Replace(validDocument, `{"status": "fail", "reason": "Bad reply"}`, `{"status": "fail"}`, 1)
	if _, err := DecodeDocument([]byte(in)); err == nil {
		t.Fatal("expected validation error for fail without reason")
	}
}

func TestDecodeRejectsDuplicateKernelNames(t *testing.T) {
	in := strings.Replace(validDocument, `"kernel_name": "ghost"`, `"kernel_name": "python3"`, 1)
	if _, err := DecodeDocument([]byte(in)); err == nil {
		t.Fatal("expected validation error for duplicate kernel name")
	}
}

func TestDecodeKeepsUnknownFieldsHarmless(t *testing.T) {
	in := strings.Replace(validDocument, `"generated_at"`, `"producer_version": "2.1", "generated_at"`, 1)
	doc, err := DecodeDocument([]byte(in))
	if err != nil {
		t.Fatalf("unknown top-level field must not fail validation: %v", err)
	}
	if len(doc.Reports) != 2 {
		t.Fatalf("expected 2 reports, got %d", len(doc.Reports))
	}
}

func TestDecodeRejectsMalformedJSON(t *testing.T) {
	if _, err := DecodeDocument([]byte(`{"reports": [`)); err == nil {
		t.Fatal("expected error for truncated payload")
	}
}
