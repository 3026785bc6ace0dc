package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/mattn/go-isatty"

	"ripdoctor/internal/repair"
	"ripdoctor/internal/report"
)

const (
	ansiReset  = "\x1b[0m"
	ansiRed    = "\x1b[31m"
	ansiGreen  = "\x1b[32m"
	ansiYellow = "\x1b[33m"
)

// renderReport writes the analysis report to w. With jsonOutput the report
// is emitted as indented JSON; otherwise a per-probe table is printed,
// followed by every finding when verbose is set.
func renderReport(w io.Writer, rep report.AnalysisReport, verbose, jsonOutput bool) error {
	if jsonOutput {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(rep)
	}

	colorize := shouldColorize(w)

	headers := []string{"Probe", "Result", "Findings"}
	rows := make([][]string, 0, len(rep.Results))
	for _, res := range rep.Results {
		rows = append(rows, []string{
			res.Probe,
			probeVerdict(res, colorize),
			summarizeFindings(res.Findings),
		})
	}
	fmt.Fprintln(w, renderTable(headers, rows, []columnAlignment{alignLeft, alignLeft, alignLeft}))

	if verbose {
		for _, res := range rep.Results {
			for _, f := range res.Findings {
				fmt.Fprintf(w, "  %s %s: %s\n", severityTag(f.Severity, colorize), f.Probe, f.Message)
			}
		}
	}

	if rep.Healthy() {
		fmt.Fprintln(w, "no issues found")
	} else {
		fmt.Fprintf(w, "%d of %d probes reported issues\n", rep.TotalIssues, len(rep.Results))
	}
	return nil
}

func probeVerdict(res report.ProbeResult, colorize bool) string {
	if res.Passed {
		return colorizeLabel("pass", ansiGreen, colorize)
	}
	return colorizeLabel("fail", ansiRed, colorize)
}

func severityTag(sev report.Severity, colorize bool) string {
	label := fmt.Sprintf("[%s]", strings.ToUpper(sev.String()))
	switch sev {
	case report.SeverityError:
		return colorizeLabel(label, ansiRed, colorize)
	case report.SeverityWarning:
		return colorizeLabel(label, ansiYellow, colorize)
	default:
		return label
	}
}

func colorizeLabel(label, color string, colorize bool) string {
	if !colorize {
		return label
	}
	return color + label + ansiReset
}

// summarizeFindings collapses a finding list into one short cell. The worst
// severity leads, so a failed probe reads sensibly without verbose mode.
func summarizeFindings(findings []report.Finding) string {
	if len(findings) == 0 {
		return ""
	}
	worst := findings[0]
	for _, f := range findings[1:] {
		if f.Severity > worst.Severity {
			worst = f
		}
	}
	if len(findings) == 1 {
		return worst.Message
	}
	return fmt.Sprintf("%s (+%d more)", worst.Message, len(findings)-1)
}

func renderOutcome(w io.Writer, outcome repair.Outcome) {
	colorize := shouldColorize(w)
	if outcome.Verified {
		fmt.Fprintf(w, "repair %s: %s\n", colorizeLabel("verified", ansiGreen, colorize), outcome.OutputPath)
	} else {
		fmt.Fprintf(w, "repair %s: %s\n", colorizeLabel("unverified", ansiYellow, colorize), outcome.OutputPath)
	}
	if outcome.BackupPath != "" {
		fmt.Fprintf(w, "backup: %s\n", outcome.BackupPath)
	}
	for _, note := range outcome.Notes {
		fmt.Fprintf(w, "note: %s\n", note)
	}
}

func shouldColorize(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

type columnAlignment int

const (
	alignLeft columnAlignment = iota
	alignRight
)

func renderTable(headers []string, rows [][]string, aligns []columnAlignment) string {
	columns := len(headers)
	if columns == 0 {
		return ""
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)

	header := make(table.Row, columns)
	for i := 0; i < columns; i++ {
		header[i] = headers[i]
	}
	tw.AppendHeader(header)

	for _, row := range rows {
		r := make(table.Row, columns)
		for i := 0; i < columns; i++ {
			if i < len(row) {
				r[i] = row[i]
			} else {
				r[i] = ""
			}
		}
		tw.AppendRow(r)
	}

	columnConfigs := make([]table.ColumnConfig, 0, columns)
	for i := 0; i < columns; i++ {
		align := text.AlignLeft
		if i < len(aligns) && aligns[i] == alignRight {
			align = text.AlignRight
		}
		columnConfigs = append(columnConfigs, table.ColumnConfig{
			Number:      i + 1,
			Align:       align,
			AlignHeader: text.AlignLeft,
		})
	}
	tw.SetColumnConfigs(columnConfigs)

	return tw.Render()
}
