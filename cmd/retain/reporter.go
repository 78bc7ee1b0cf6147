package main

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/mattn/go-runewidth"

	"github.com/dialectlab/retain/internal/models"
)

func printRunSummary(run *models.RunResult) {
	s := run.Summary

	fmt.Println("=" + strings.Repeat("=", 50))
	fmt.Println(" RETENTION RESULTS")
	fmt.Println("=" + strings.Repeat("=", 50))
	fmt.Println()

	fmt.Printf("Total Tests:       %d\n", s.TotalTests)
	fmt.Printf("Successful:        %d\n", s.SuccessfulTests)
	fmt.Printf("Models Tested:     %d\n", s.ModelsTested)
	fmt.Printf("Varieties Tested:  %d\n", s.VarietiesTested)
	fmt.Printf("Avg Retention:     %.1f%%\n", s.AverageRetentionRate*100)

	duration := time.Duration(run.DurationMs) * time.Millisecond
	fmt.Printf("Duration:          %v\n", duration)
	fmt.Println()

	if len(s.ModelPerformance) > 0 {
		printRateTable("MODEL PERFORMANCE", "Model", s.ModelPerformance)
	}
	if len(s.VarietyDifficulty) > 0 {
		printRateTable("VARIETY DIFFICULTY", "Variety", s.VarietyDifficulty)
	}

	printPivot("RETENTION BY MODEL AND VARIETY", s.ModelByVariety)
	printPivot("SUCCESS BY MODEL AND TASK", s.ModelByTask)

	if len(run.ModelStats) > 0 {
		printModelStats(run.ModelStats)
	}
}

func printRateTable(title, label string, rates map[string]float64) {
	fmt.Println("-" + strings.Repeat("-", 50))
	fmt.Printf(" %s\n", title)
	fmt.Println("-" + strings.Repeat("-", 50))

	keys := make([]string, 0, len(rates))
	width := runewidth.StringWidth(label)
	for k := range rates {
		keys = append(keys, k)
		if w := runewidth.StringWidth(k); w > width {
			width = w
		}
	}
	sort.Strings(keys)

	fmt.Printf("  %s  %s\n", padRight(label, width), "Retention")
	for _, k := range keys {
		fmt.Printf("  %s  %.1f%%\n", padRight(k, width), rates[k]*100)
	}
	fmt.Println()
}

func printPivot(title string, t models.PivotTable) {
	if len(t.Rows) == 0 || len(t.Columns) == 0 {
		return
	}

	fmt.Println("-" + strings.Repeat("-", 50))
	fmt.Printf(" %s\n", title)
	fmt.Println("-" + strings.Repeat("-", 50))

	rowWidth := 0
	for _, row := range t.Rows {
		if w := runewidth.StringWidth(row); w > rowWidth {
			rowWidth = w
		}
	}

	colWidths := make([]int, len(t.Columns))
	for i, col := range t.Columns {
		colWidths[i] = runewidth.StringWidth(col)
		if colWidths[i] < 5 {
			colWidths[i] = 5
		}
	}

	fmt.Printf("  %s", padRight("", rowWidth))
	for i, col := range t.Columns {
		fmt.Printf("  %s", padRight(col, colWidths[i]))
	}
	fmt.Println()

	for _, row := range t.Rows {
		fmt.Printf("  %s", padRight(row, rowWidth))
		for i, col := range t.Columns {
			fmt.Printf("  %s", padRight(fmt.Sprintf("%.3f", t.Value(row, col)), colWidths[i]))
		}
		fmt.Println()
	}
	fmt.Println()
}

func printModelStats(stats map[string]*models.ModelStats) {
	fmt.Println("-" + strings.Repeat("-", 50))
	fmt.Println(" MODEL STATISTICS")
	fmt.Println("-" + strings.Repeat("-", 50))

	names := make([]string, 0, len(stats))
	width := runewidth.StringWidth("Model")
	for name := range stats {
		names = append(names, name)
		if w := runewidth.StringWidth(name); w > width {
			width = w
		}
	}
	sort.Strings(names)

	fmt.Printf("  %s  %-7s %-7s %-7s %s\n", padRight("Model", width), "Mean", "StdDev", "Range", "95% CI")
	for _, name := range names {
		st := stats[name]
		rangeStr := fmt.Sprintf("%.2f-%.2f", st.MinRetention, st.MaxRetention)
		ciStr := fmt.Sprintf("[%.2f, %.2f]", st.CI95Lo, st.CI95Hi)
		fmt.Printf("  %s  %-7.3f %-7.3f %-7s %s\n",
			padRight(name, width), st.MeanRetention, st.StdDevRetention, rangeStr, ciStr)
	}
	fmt.Println()
}

// padRight pads s with spaces so its terminal display width reaches width.
func padRight(s string, width int) string {
	sw := runewidth.StringWidth(s)
	if sw >= width {
		return s
	}
	return s + strings.Repeat(" ", width-sw)
}
