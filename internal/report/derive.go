package report

import (
	"math"
	"sort"
	"strings"
)

// Passed counts tests whose outcome is pass or partial_pass. A partial pass
// counts as a full pass here; its fractional score is never weighted in.
func (r *KernelReport) Passed() int {
	count := 0
	for _, t := range r.Results {
		if t.Result.IsPass() {
			count++
		}
	}
	return count
}

func (r *KernelReport) Total() int {
	return len(r.Results)
}

// Score is the passed fraction in [0,1]. A report with zero tests scores 0.
func (r *KernelReport) Score() float64 {
	total := r.Total()
	if total == 0 {
		return 0
	}
	return float64(r.Passed()) / float64(total)
}

// TierResults returns the records of one tier, preserving original order.
func (r *KernelReport) TierResults(tier Tier) []TestRecord {
	var out []TestRecord
	for _, t := range r.Results {
		if t.Tier == tier {
			out = append(out, t)
		}
	}
	return out
}

// TierScore returns (passed, total) restricted to one tier.
func (r *KernelReport) TierScore(tier Tier) (int, int) {
	passed, total := 0, 0
	for _, t := range r.Results {
		if t.Tier != tier {
			continue
		}
		total++
		if t.Result.IsPass() {
			passed++
		}
	}
	return passed, total
}

// HasStartupFailure reports whether the kernel never reached a testable
// state. Consumers show the startup failure text instead of any per-test
// detail when this is true.
func (r *KernelReport) HasStartupFailure() bool {
	return strings.TrimSpace(r.StartupFailure) != ""
}

// FailureGroup clusters failing tests that share a normalized reason key.
type FailureGroup struct {
	Key   string
	Tests []TestRecord
}

// timeoutGroupKey coalesces every reason containing the producer's literal
// "Timeout" marker into one group.
const timeoutGroupKey = "Timeout"

// FailureGroups partitions the fail-outcome records of a report by reason
// text. Any reason containing the substring "Timeout" (case-sensitive, the
// producer's convention) collapses into the single "Timeout" group. Groups
// come back ordered by descending size, ties in first-encountered order.
// This is a heuristic over free text, not a semantic classification.
func (r *KernelReport) FailureGroups() []FailureGroup {
	var order []string
	members := map[string][]TestRecord{}
	for _, t := range r.Results {
		if t.Result.Status() != StatusFail {
			continue
		}
		key := t.Result.Reason()
		if strings.Contains(key, timeoutGroupKey) {
			key = timeoutGroupKey
		}
		if _, ok := members[key]; !ok {
			order = append(order, key)
		}
		members[key] = append(members[key], t)
	}
	groups := make([]FailureGroup, 0, len(order))
	for _, key := range order {
		groups = append(groups, FailureGroup{Key: key, Tests: members[key]})
	}
	sort.SliceStable(groups, func(i, j int) bool {
		return len(groups[i].Tests) > len(groups[j].Tests)
	})
	return groups
}

// AllTestNames returns the distinct test names across every report, sorted
// lexicographically. The order is the row order of every matrix-style output,
// so it must be identical on every call.
func (d *Document) AllTestNames() []string {
	seen := map[string]bool{}
	var names []string
	for _, r := range d.Reports {
		for _, t := range r.Results {
			if !seen[t.Name] {
				seen[t.Name] = true
				names = append(names, t.Name)
			}
		}
	}
	sort.Strings(names)
	return names
}

// SortedReports returns the reports ordered by descending score. Ties keep
// the original document order, so every multi-kernel listing agrees on what
// sits at the top.
func (d *Document) SortedReports() []KernelReport {
	out := make([]KernelReport, len(d.Reports))
	copy(out, d.Reports)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Score() > out[j].Score()
	})
	return out
}

// Find returns the report for a kernel name, or false when the document does
// not contain it.
func (d *Document) Find(name string) (*KernelReport, bool) {
	for i := range d.Reports {
		if d.Reports[i].KernelName == name {
			return &d.Reports[i], true
		}
	}
	return nil, false
}

// Aggregate sums (passed, total) over every report in the document.
func (d *Document) Aggregate() (int, int) {
	passed, total := 0, 0
	for i := range d.Reports {
		passed += d.Reports[i].Passed()
		total += d.Reports[i].Total()
	}
	return passed, total
}

// Percent is the one rounding rule for displayed percentages. Every renderer
// goes through it so no two outputs can disagree on a shown value.
func Percent(passed, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(100 * float64(passed) / float64(total)))
}

// FractionPercent applies the same rounding rule to a fraction in [0,1],
// used for displaying partial-pass scores.
func FractionPercent(fraction float64) int {
	return int(math.Round(100 * fraction))
}
