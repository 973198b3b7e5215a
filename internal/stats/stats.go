package stats

import (
	"fmt"
	"io"
	"math"
	"strings"

	"gonum.org/v1/gonum/stat"

	"github.com/verte-zerg/gcdstats/internal/model"
)

const sparkChars = " .:-=+*#%@"

// Aggregate holds totals across several encounters.
type Aggregate struct {
	Encounters    int
	Reported      int
	TotalClip     float64
	TotalWaste    float64
	MeanClip      float64
	StdDevClip    float64
	MeanWaste     float64
	StdDevWaste   float64
	CombatSeconds float64
}

// Summarize aggregates encounter summaries.
func Summarize(encounters []model.EncounterSummary) Aggregate {
	agg := Aggregate{Encounters: len(encounters)}
	if len(encounters) == 0 {
		return agg
	}
	clips := make([]float64, len(encounters))
	wastes := make([]float64, len(encounters))
	for i, e := range encounters {
		clips[i] = e.TotalClip
		wastes[i] = e.TotalWaste
		agg.TotalClip += e.TotalClip
		agg.TotalWaste += e.TotalWaste
		agg.CombatSeconds += e.Elapsed.Seconds()
		if e.Reported {
			agg.Reported++
		}
	}
	agg.MeanClip, agg.StdDevClip = meanStdDev(clips)
	agg.MeanWaste, agg.StdDevWaste = meanStdDev(wastes)
	return agg
}

func meanStdDev(values []float64) (mean, std float64) {
	if len(values) == 1 {
		return values[0], 0
	}
	mean, std = stat.MeanStdDev(values, nil)
	if math.IsNaN(std) {
		std = 0
	}
	return mean, std
}

// Sparkline renders a single-line ASCII sparkline for the values.
func Sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	minVal := values[0]
	maxVal := values[0]
	for _, v := range values[1:] {
		if v < minVal {
			minVal = v
		}
		if v > maxVal {
			maxVal = v
		}
	}
	if math.Abs(maxVal-minVal) < 1e-9 {
		return strings.Repeat(string(sparkChars[len(sparkChars)/2]), len(values))
	}
	var b strings.Builder
	for _, v := range values {
		pos := (v - minVal) / (maxVal - minVal)
		idx := int(math.Round(pos * float64(len(sparkChars)-1)))
		if idx < 0 {
			idx = 0
		}
		if idx >= len(sparkChars) {
			idx = len(sparkChars) - 1
		}
		b.WriteByte(sparkChars[idx])
	}
	return b.String()
}

// RenderEncounters prints a table of encounters followed by aggregate lines.
func RenderEncounters(w io.Writer, encounters []model.EncounterSummary, inSeconds bool) error {
	if len(encounters) == 0 {
		_, err := fmt.Fprintln(w, "No encounters found.")
		return err
	}

	headers := []string{"#", "Duration", "Clipped", "Clips", "Wasted", "Wastes", "Reported"}
	rows := make([][]string, 0, len(encounters))
	wastes := make([]float64, len(encounters))
	for i, e := range encounters {
		reported := "no"
		if e.Reported {
			reported = "yes"
		}
		rows = append(rows, []string{
			fmt.Sprintf("%d", i+1),
			FormatElapsed(e.Elapsed, inSeconds),
			fmt.Sprintf("%.2f", e.TotalClip),
			fmt.Sprintf("%d", e.Clips),
			fmt.Sprintf("%.2f", e.TotalWaste),
			fmt.Sprintf("%d", e.Wastes),
			reported,
		})
		wastes[i] = e.TotalWaste
	}
	if _, err := fmt.Fprintln(w, "Encounters"); err != nil {
		return err
	}
	rightAlign := map[int]bool{0: true, 1: true, 2: true, 3: true, 4: true, 5: true}
	for _, line := range formatTable(headers, rows, rightAlign) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintln(w, ""); err != nil {
		return err
	}

	agg := Summarize(encounters)
	if _, err := fmt.Fprintf(w, "Encounters: %d (%d reported)\n", agg.Encounters, agg.Reported); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Combat time: %.1fs\n", agg.CombatSeconds); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Clipped: %.2f (avg %.2f ± %.2f)\n", agg.TotalClip, agg.MeanClip, agg.StdDevClip); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Wasted: %.2f (avg %.2f ± %.2f)\n", agg.TotalWaste, agg.MeanWaste, agg.StdDevWaste); err != nil {
		return err
	}
	if len(wastes) > 1 {
		if _, err := fmt.Fprintf(w, "Waste trend: [%s]\n", Sparkline(wastes)); err != nil {
			return err
		}
	}
	return nil
}
