package report

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestOutcomeDecodeVariants(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want Status
	}{
		{"pass", `{"status":"pass"}`, StatusPass},
		{"fail", `{"status":"fail","reason":"Bad reply"}`, StatusFail},
		{"fail classified", `{"status":"fail","reason":"no reply","failure_kind":"protocol_error"}`, StatusFail},
		{"unsupported", `{"status":"unsupported"}`, StatusUnsupported},
		{"timeout", `{"status":"timeout"}`, StatusTimeout},
		{"partial", `{"status":"partial_pass","score":0.5,"notes":"half the streams"}`, StatusPartialPass},
	}
	for _, tc := range cases {
		var o Outcome
		if err := json.Unmarshal([]byte(tc.in), &o); err != nil {
			t.Fatalf("%s: unmarshal failed: %v", tc.name, err)
		}
		if o.Status() != tc.want {
			t.Fatalf("%s: expected status %s, got %s", tc.name, tc.want, o.Status())
		}
	}
}

func TestOutcomeDecodeRejectsBadVariants(t *testing.T) {
	cases := []struct {
		name string
		in   string
	}{
		{"missing tag", `{"reason":"x"}`},
		{"empty tag", `{"status":""}`},
		{"unknown tag", `{"status":"exploded"}`},
		{"fail without reason", `{"status":"fail"}`},
		{"partial without score", `{"status":"partial_pass","notes":"n"}`},
		{"partial score above one", `{"status":"partial_pass","score":1.5}`},
		{"unknown failure kind", `{"status":"fail","reason":"x","failure_kind":"cosmic_ray"}`},
	}
	for _, tc := range cases {
		var o Outcome
		if err := json.Unmarshal([]byte(tc.in), &o); err == nil {
			t.Fatalf("%s: expected decode error, got %+v", tc.name, o)
		}
	}
}

func TestOutcomeExtraFieldsIgnored(t *testing.T) {
	var o Outcome
	in := `{"status":"pass","score":0.5,"producer_note":"future field"}`
	if err := json.Unmarshal([]byte(in), &o); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if o.Status() != StatusPass {
		t.Fatalf("expected pass, got %s", o.Status())
	}
	if o.PartialScore() != 0 {
		t.Fatalf("pass outcome must not carry a score, got %v", o.PartialScore())
	}
}

func TestOutcomeMarshalCarriesPayload(t *testing.T) {
	data, err := json.Marshal(Fail("Request Timeout after 10s", KindTimeout))
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	for _, want := range []string{`"status":"fail"`, `"reason":"Request Timeout after 10s"`, `"failure_kind":"timeout"`} {
		if !strings.Contains(string(data), want) {
			t.Fatalf("marshal output missing %s: %s", want, data)
		}
	}

	data, err = json.Marshal(Pass())
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if strings.Contains(string(data), "reason") || strings.Contains(string(data), "score") {
		t.Fatalf("pass outcome must carry only the tag: %s", data)
	}
}

func TestOutcomeLabels(t *testing.T) {
	cases := map[string]Outcome{
		"PASS": Pass(),
		"FAIL": Fail("broken", ""),
		"SKIP": Unsupported(),
		"TIME": Timeout(),
		"PART": PartialPass(0.25, "some"),
	}
	for want, o := range cases {
		if got := o.Label(); got != want {
			t.Fatalf("expected label %s, got %s", want, got)
		}
	}
}

func TestTierOrderAndNumbers(t *testing.T) {
	tiers := Tiers()
	if len(tiers) != 4 {
		t.Fatalf("expected 4 tiers, got %d", len(tiers))
	}
	for i, tier := range tiers {
		if tier.Number() != i+1 {
			t.Fatalf("tier %s: expected number %d, got %d", tier, i+1, tier.Number())
		}
		if !tier.Valid() {
			t.Fatalf("tier %s should be valid", tier)
		}
	}
	if Tier("tier9_quantum").Valid() {
		t.Fatal("unknown tier must not validate")
	}
}
