package main

import (
	"fmt"
	"io"
	"math"
	"path/filepath"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/olekukonko/tablewriter"
)

const (
	tableStyleAuto  = "auto"
	tableStyleRich  = "rich"
	tableStylePlain = "plain"

	noRows = "(no rows)"
)

type tableRenderer interface {
	Render(w io.Writer, headers []string, rows [][]string)
}

// richTable prints GitHub-flavoured markdown tables.
type richTable struct{}

func (richTable) Render(w io.Writer, headers []string, rows [][]string) {
	if len(rows) == 0 {
		fmt.Fprintln(w, noRows)
		return
	}
	table := tablewriter.NewWriter(w)
	table.SetHeader(headers)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetBorders(tablewriter.Border{Left: true, Top: false, Right: true, Bottom: false})
	table.SetCenterSeparator("|")
	table.AppendBulk(rows)
	table.Render()
}

// plainTable is the fixed-width fallback: left-justified, two-space gutters.
type plainTable struct{}

func (plainTable) Render(w io.Writer, headers []string, rows [][]string) {
	if len(rows) == 0 {
		fmt.Fprintln(w, noRows)
		return
	}
	widths := make([]int, len(headers))
	for i, header := range headers {
		widths[i] = utf8.RuneCountInString(header)
	}
	for _, row := range rows {
		for i := 0; i < len(widths) && i < len(row); i++ {
			if n := utf8.RuneCountInString(row[i]); n > widths[i] {
				widths[i] = n
			}
		}
	}

	writeRow := func(cells []string) {
		padded := make([]string, len(widths))
		for i, width := range widths {
			cell := ""
			if i < len(cells) {
				cell = cells[i]
			}
			padded[i] = cell + strings.Repeat(" ", width-utf8.RuneCountInString(cell))
		}
		fmt.Fprintln(w, strings.Join(padded, "  "))
	}

	writeRow(headers)
	for _, row := range rows {
		writeRow(row)
	}
}

// selectTableRenderer prefers the rich renderer when the output can show it.
func selectTableRenderer(style string, terminal bool) tableRenderer {
	switch style {
	case tableStyleRich:
		return richTable{}
	case tableStylePlain:
		return plainTable{}
	}
	if terminal {
		return richTable{}
	}
	return plainTable{}
}

func asciiBar(pct float64, width int) string {
	filled := int(math.RoundToEven(pct / 100 * float64(width)))
	if filled < 0 {
		filled = 0
	}
	if filled > width {
		filled = width
	}
	return "[" + strings.Repeat("#", filled) + strings.Repeat(" ", width-filled) + "]"
}

func human(value time.Time) string {
	return value.UTC().Format("2006-01-02 15:04:05 UTC")
}

type reportPrinter struct {
	w            io.Writer
	tables       tableRenderer
	barWidth     int
	exampleLimit int
}

func printReport(w io.Writer, report Report, tables tableRenderer, barWidth int, exampleLimit int) {
	p := reportPrinter{w: w, tables: tables, barWidth: barWidth, exampleLimit: exampleLimit}
	p.summary(report)
	p.missing(report.Missing)
	p.late(report.Late)
	p.timing(report.Timing)
	p.timeOfDay(report.TimeOfDay)
	p.milestones(report.Milestones)
}

func (p reportPrinter) section(title string) {
	fmt.Fprintf(p.w, "\n**%s**\n", title)
}

func (p reportPrinter) summary(report Report) {
	p.section("Summary")
	fmt.Fprintf(p.w, "Input: %s\n", filepath.Base(report.Source))
	fmt.Fprintf(p.w, "Total students detected: %d\n", len(report.Students))
	fmt.Fprintf(p.w, "Days found in data: %s\n", joinInts(report.Days, ", "))
	if report.DeadlinesPath != "" {
		fmt.Fprintf(p.w, "Deadlines: %s (%s)\n", report.DeadlineMode, report.DeadlinesPath)
	} else {
		fmt.Fprintf(p.w, "Deadlines: %s from earliest submission per day\n", report.DeadlineMode)
	}
	fmt.Fprintf(p.w, "Report ID: %s\n", report.ID)
}

func (p reportPrinter) missing(days []MissingDay) {
	p.section("Missing Submissions (per day)")
	rows := make([][]string, 0, len(days))
	for _, entry := range days {
		rows = append(rows, []string{
			strconv.Itoa(entry.Day),
			strconv.Itoa(len(entry.Students)),
			examples(entry.Students, p.exampleLimit),
		})
	}
	p.tables.Render(p.w, []string{"Day", "Missing Count", "Examples"}, rows)
}

func (p reportPrinter) late(late []LateSubmission) {
	p.section("Late Submissions")
	if len(late) == 0 {
		fmt.Fprintln(p.w, "No late submissions detected using current deadlines.")
		return
	}
	rows := make([][]string, 0, len(late))
	for _, entry := range late {
		rows = append(rows, []string{
			strconv.Itoa(entry.Day),
			entry.Student,
			human(entry.SubmittedAt),
			human(entry.Deadline),
			fmt.Sprintf("%.1fh late", entry.HoursLate),
		})
	}
	p.tables.Render(p.w, []string{"Day", "Student", "Sub Time", "Deadline", "Offset"}, rows)
}

func (p reportPrinter) timing(histogram Histogram) {
	p.section("Timing Distribution (hours relative to deadline)")
	p.tables.Render(p.w, []string{"Bucket", "Count", "Percent", "Bar"}, p.countRows(histogram.Rows))
}

func (p reportPrinter) timeOfDay(tod TimeOfDay) {
	p.section("Peak Activity Times (by time-of-day)")
	p.tables.Render(p.w, []string{"Time Window", "Count", "Percent", "Bar"}, p.countRows(tod.Windows))

	fmt.Fprintln(p.w, "\nSubmissions by hour (UTC):")
	rows := make([][]string, 0, len(tod.Hours))
	for hour, count := range tod.Hours {
		rows = append(rows, []string{fmt.Sprintf("%02d", hour), strconv.Itoa(count)})
	}
	p.tables.Render(p.w, []string{"Hour", "Count"}, rows)
}

func (p reportPrinter) milestones(mc MilestoneCompletion) {
	p.section(fmt.Sprintf("Completion Rate for milestones: [%s]", joinInts(mc.Milestones, ", ")))
	fmt.Fprintf(p.w, "Completed all %d milestones: %d/%d (%.1f%%)\n", len(mc.Milestones), mc.Completed, mc.Students, mc.Percent)
	fmt.Fprintln(p.w, asciiBar(mc.Percent, p.barWidth))

	if len(mc.Incomplete) == 0 {
		fmt.Fprintln(p.w, "All students completed the specified milestones.")
		return
	}
	rows := make([][]string, 0, len(mc.Incomplete))
	for _, gap := range mc.Incomplete {
		rows = append(rows, []string{gap.Student, joinInts(gap.Missing, ", ")})
	}
	p.tables.Render(p.w, []string{"Student", "Missing Milestones"}, rows)
}

func (p reportPrinter) countRows(counts []BucketCount) [][]string {
	rows := make([][]string, 0, len(counts))
	for _, entry := range counts {
		rows = append(rows, []string{
			entry.Label,
			strconv.Itoa(entry.Count),
			fmt.Sprintf("%.1f%%", entry.Percent),
			asciiBar(entry.Percent, p.barWidth),
		})
	}
	return rows
}

func examples(names []string, limit int) string {
	if len(names) <= limit {
		return strings.Join(names, ", ")
	}
	return strings.Join(names[:limit], ", ") + "..."
}

func joinInts(values []int, sep string) string {
	parts := make([]string, len(values))
	for i, value := range values {
		parts[i] = strconv.Itoa(value)
	}
	return strings.Join(parts, sep)
}
