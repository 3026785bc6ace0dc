package report

import "strings"

// Severity classifies a finding. Error outranks Warning outranks Info.
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityWarning
	SeverityError
)

// String returns the canonical lowercase label for the severity.
func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	default:
		return "info"
	}
}

// ParseSeverity maps a tool-emitted classification onto a Severity.
// Unrecognized values map to Info.
func ParseSeverity(value string) Severity {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "error":
		return SeverityError
	case "warning", "warn":
		return SeverityWarning
	default:
		return SeverityInfo
	}
}

// Finding is a single immutable observation produced by a probe.
type Finding struct {
	Probe    string   `json:"probe"`
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`
	// Detail carries an optional numeric measurement backing the finding,
	// such as a channel count or a timestamp gap count.
	Detail float64 `json:"detail,omitempty"`
}

// ProbeResult holds the ordered findings of one probe run.
type ProbeResult struct {
	Probe    string    `json:"probe"`
	Findings []Finding `json:"findings,omitempty"`
	Passed   bool      `json:"passed"`
}

// Failed reports whether any finding reaches Warning severity or above.
func Failed(findings []Finding) bool {
	for _, f := range findings {
		if f.Severity >= SeverityWarning {
			return true
		}
	}
	return false
}

// NewResult builds a ProbeResult whose verdict follows from its findings:
// the probe passes only when no finding reaches Warning severity.
func NewResult(probe string, findings []Finding) ProbeResult {
	return ProbeResult{
		Probe:    probe,
		Findings: findings,
		Passed:   !Failed(findings),
	}
}

// AnalysisReport is the aggregate outcome of one analysis run.
type AnalysisReport struct {
	Results     []ProbeResult `json:"results"`
	TotalIssues int           `json:"total_issues"`
}

// Aggregate combines probe results in the order given. TotalIssues counts
// results whose probe failed, one per probe regardless of finding count.
func Aggregate(results []ProbeResult) AnalysisReport {
	issues := 0
	for _, res := range results {
		if !res.Passed {
			issues++
		}
	}
	return AnalysisReport{Results: results, TotalIssues: issues}
}

// FindingCount returns the number of findings across all probe results.
func (r AnalysisReport) FindingCount() int {
	count := 0
	for _, res := range r.Results {
		count += len(res.Findings)
	}
	return count
}

// Healthy reports whether no probe failed.
func (r AnalysisReport) Healthy() bool {
	return r.TotalIssues == 0
}
