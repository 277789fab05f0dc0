package report

import "testing"

func TestDigestIgnoresKeyOrderAndWhitespace(t *testing.T) {
	a := []byte(`{"generated_at":"2026-08-20T12:00:00Z","reports":[]}`)
	b := []byte(`{
		"reports": [],
		"generated_at": "2026-08-20T12:00:00Z"
	}`)
	da, err := Digest(a)
	if err != nil {
		t.Fatalf("Digest(a): %v", err)
	}
	db, err := Digest(b)
	if err != nil {
		t.Fatalf("Digest(b): %v", err)
	}
	if da != db {
		t.Fatalf("equivalent documents got different digests: %s vs %s", da, db)
	}
	if len(da) != 64 {
		t.Fatalf("expected hex sha256, got %q", da)
	}
}

func TestDigestDistinguishesContent(t *testing.T) {
	da, err := Digest([]byte(`{"generated_at":"a","reports":[]}`))
	if err != nil {
		t.Fatalf("Digest: %v", err)
	}
	db, err := Digest([]byte(`{"generated_at":"b","reports":[]}`))
	if err != nil {
		t.Fatalf("Digest: %v", err)
	}
	if da == db {
		t.Fatal("different documents share a digest")
	}
}

func TestDigestRejectsInvalidJSON(t *testing.T) {
	if _, err := Digest([]byte("not json")); err == nil {
		t.Fatal("expected error for invalid JSON")
	}
}
