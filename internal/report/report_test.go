package report

import "testing"

func TestNewResultVerdictFollowsFindings(t *testing.T) {
	res := NewResult("inventory", []Finding{
		{Probe: "inventory", Severity: SeverityInfo, Message: "language tag missing"},
	})
	if !res.Passed {
		t.Fatalf("info-only findings should pass")
	}

	res = NewResult("inventory", []Finding{
		{Probe: "inventory", Severity: SeverityInfo, Message: "language tag missing"},
		{Probe: "inventory", Severity: SeverityWarning, Message: "no audio streams"},
	})
	if res.Passed {
		t.Fatalf("warning finding should fail the probe")
	}
}

func TestAggregateCountsProbesNotFindings(t *testing.T) {
	rep := Aggregate([]ProbeResult{
		NewResult("structure", []Finding{
			{Severity: SeverityWarning, Message: "missing tracks element"},
			{Severity: SeverityWarning, Message: "missing cluster"},
			{Severity: SeverityWarning, Message: "missing segment"},
		}),
		NewResult("integrity", nil),
		NewResult("avsync", []Finding{{Severity: SeverityError, Message: "audio leads by 1.5s"}}),
	})
	if rep.TotalIssues != 2 {
		t.Fatalf("expected 2 issues, got %d", rep.TotalIssues)
	}
	if rep.FindingCount() != 4 {
		t.Fatalf("expected 4 findings, got %d", rep.FindingCount())
	}
	if rep.Healthy() {
		t.Fatalf("report with issues must not be healthy")
	}
}

func TestParseSeverity(t *testing.T) {
	cases := []struct {
		in   string
		want Severity
	}{
		{"error", SeverityError},
		{"Warning", SeverityWarning},
		{"warn", SeverityWarning},
		{"note", SeverityInfo},
		{"", SeverityInfo},
	}
	for _, tc := range cases {
		if got := ParseSeverity(tc.in); got != tc.want {
			t.Fatalf("ParseSeverity(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestSeverityOrdering(t *testing.T) {
	if !(SeverityError > SeverityWarning && SeverityWarning > SeverityInfo) {
		t.Fatalf("severity ordering broken")
	}
}
