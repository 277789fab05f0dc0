// Package report holds the conformance result document model and the
// derivation functions every renderer shares. A document is immutable once
// decoded; all derived values are computed on demand from it.
package report

import (
	"encoding/json"
	"fmt"
)

// Tier classifies a test into one of four ordered bands.
type Tier string

const (
	Tier1Basic       Tier = "tier1_basic"
	Tier2Interactive Tier = "tier2_interactive"
	Tier3RichOutput  Tier = "tier3_rich_output"
	Tier4Advanced    Tier = "tier4_advanced"
)

// Tiers returns all tiers in order. Every test belongs to exactly one.
func Tiers() []Tier {
	return []Tier{Tier1Basic, Tier2Interactive, Tier3RichOutput, Tier4Advanced}
}

func (t Tier) Valid() bool {
	switch t {
	case Tier1Basic, Tier2Interactive, Tier3RichOutput, Tier4Advanced:
		return true
	}
	return false
}

func (t Tier) Number() int {
	switch t {
	case Tier1Basic:
		return 1
	case Tier2Interactive:
		return 2
	case Tier3RichOutput:
		return 3
	case Tier4Advanced:
		return 4
	}
	return 0
}

func (t Tier) Label() string {
	switch t {
	case Tier1Basic:
		return "Basic Protocol"
	case Tier2Interactive:
		return "Interactive Features"
	case Tier3RichOutput:
		return "Rich Output"
	case Tier4Advanced:
		return "Advanced Features"
	}
	return string(t)
}

// Status is the active variant tag of an Outcome.
type Status string

const (
	StatusPass        Status = "pass"
	StatusFail        Status = "fail"
	StatusUnsupported Status = "unsupported"
	StatusTimeout     Status = "timeout"
	StatusPartialPass Status = "partial_pass"
)

// FailureKind is the optional classification carried by a fail outcome. The
// producer does not emit one for every failure.
type FailureKind string

const (
	KindTimeout               FailureKind = "timeout"
	KindProtocolError         FailureKind = "protocol_error"
	KindUnexpectedMessageType FailureKind = "unexpected_message_type"
	KindUnexpectedContent     FailureKind = "unexpected_content"
	KindKernelError           FailureKind = "kernel_error"
	KindHarnessError          FailureKind = "harness_error"
)

func (k FailureKind) valid() bool {
	switch k {
	case KindTimeout, KindProtocolError, KindUnexpectedMessageType,
		KindUnexpectedContent, KindKernelError, KindHarnessError:
		return true
	}
	return false
}

// Outcome is a closed five-way tagged union. The fields are unexported so an
// outcome can only be built through the constructors or decoded from JSON,
// which both guarantee exactly one active variant.
type Outcome struct {
	status      Status
	reason      string
	failureKind FailureKind
	score       float64
	notes       string
}

func Pass() Outcome { return Outcome{status: StatusPass} }

// Fail records a failure reason and an optional kind ("" when the producer
// did not classify it).
func Fail(reason string, kind FailureKind) Outcome {
	return Outcome{status: StatusFail, reason: reason, failureKind: kind}
}

func Unsupported() Outcome { return Outcome{status: StatusUnsupported} }

// Timeout is the outcome of a kernel that never answered. Distinct from a
// fail whose kind is KindTimeout.
func Timeout() Outcome { return Outcome{status: StatusTimeout} }

// PartialPass records a fractional score in [0,1] with free-text notes.
func PartialPass(score float64, notes string) Outcome {
	return Outcome{status: StatusPartialPass, score: score, notes: notes}
}

func (o Outcome) Status() Status { return o.status }

// Reason returns the failure reason; empty for non-fail outcomes.
func (o Outcome) Reason() string { return o.reason }

// Kind returns the failure classification; empty unless the outcome is a
// classified fail.
func (o Outcome) Kind() FailureKind { return o.failureKind }

// PartialScore returns the fractional score of a partial pass; zero otherwise.
func (o Outcome) PartialScore() float64 { return o.score }

func (o Outcome) Notes() string { return o.notes }

// IsPass reports whether the outcome counts toward the passed counter.
// A partial pass counts fully; its score is informational only.
func (o Outcome) IsPass() bool {
	return o.status == StatusPass || o.status == StatusPartialPass
}

// Label returns the fixed five-value status label used by every renderer.
func (o Outcome) Label() string {
	switch o.status {
	case StatusPass:
		return "PASS"
	case StatusFail:
		return "FAIL"
	case StatusUnsupported:
		return "SKIP"
	case StatusTimeout:
		return "TIME"
	case StatusPartialPass:
		return "PART"
	}
	return "?"
}

type outcomeWire struct {
	Status      Status   `json:"status"`
	Reason      *string  `json:"reason,omitempty"`
	FailureKind string   `json:"failure_kind,omitempty"`
	Score       *float64 `json:"score,omitempty"`
	Notes       *string  `json:"notes,omitempty"`
}

func (o Outcome) MarshalJSON() ([]byte, error) {
	wire := outcomeWire{Status: o.status}
	switch o.status {
	case StatusFail:
		reason := o.reason
		wire.Reason = &reason
		wire.FailureKind = string(o.failureKind)
	case StatusPartialPass:
		score := o.score
		notes := o.notes
		wire.Score = &score
		wire.Notes = &notes
	}
	return json.Marshal(wire)
}

func (o *Outcome) UnmarshalJSON(data []byte) error {
	var wire outcomeWire
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	switch wire.Status {
	case StatusPass:
		*o = Pass()
	case StatusUnsupported:
		*o = Unsupported()
	case StatusTimeout:
		*o = Timeout()
	case StatusFail:
		if wire.Reason == nil {
			return fmt.Errorf("fail outcome missing reason")
		}
		kind := FailureKind(wire.FailureKind)
		if kind != "" && !kind.valid() {
			return fmt.Errorf("unknown failure_kind %q", wire.FailureKind)
		}
		*o = Fail(*wire.Reason, kind)
	case StatusPartialPass:
		if wire.Score == nil {
			return fmt.Errorf("partial_pass outcome missing score")
		}
		if *wire.Score < 0 || *wire.Score > 1 {
			return fmt.Errorf("partial_pass score %v outside [0,1]", *wire.Score)
		}
		notes := ""
		if wire.Notes != nil {
			notes = *wire.Notes
		}
		*o = PartialPass(*wire.Score, notes)
	case "":
		return fmt.Errorf("outcome missing status tag")
	default:
		return fmt.Errorf("unknown outcome status %q", wire.Status)
	}
	return nil
}

// TestRecord is one executed test inside a kernel report. Durations are
// carried as milliseconds, matching the producer's wire format.
type TestRecord struct {
	Name        string  `json:"name"`
	Tier        Tier    `json:"category"`
	Description string  `json:"description,omitempty"`
	MessageType string  `json:"message_type,omitempty"`
	DurationMS  int64   `json:"duration"`
	Result      Outcome `json:"result"`
}

// KernelReport is the conformance run of one kernel implementation.
// StartupFailure, when non-empty, means the kernel never reached a testable
// state; Results carries no meaning in that case and no consumer shows
// per-test detail.
type KernelReport struct {
	KernelName      string       `json:"kernel_name"`
	Language        string       `json:"language"`
	Implementation  string       `json:"implementation"`
	ProtocolVersion string       `json:"protocol_version"`
	Results         []TestRecord `json:"results"`
	Timestamp       string       `json:"timestamp"`
	TotalDurationMS int64        `json:"total_duration"`
	StartupFailure  string       `json:"startup_failure,omitempty"`
}

// Document is the top-level result artifact published by the test executor.
// Kernel names are unique within a document; report order is as received and
// carries no meaning, so listings sort explicitly (see SortedReports).
type Document struct {
	Reports     []KernelReport `json:"reports"`
	GeneratedAt string         `json:"generated_at"`
	Revision    string         `json:"revision,omitempty"`
}
