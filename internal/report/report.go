// Package report renders experiment results for the two external
// consumers: a console/file summary of the per-frequency statistics and
// CSV exports (raw error vectors, histogram bins) for chart tooling.
package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"

	"github.com/Emil667/Delta-Hedging-EU-Call-Options-Sim/internal/experiment"
)

// WriteJSON writes the full result, raw error vectors included, to
// result.json in outdir.
func WriteJSON(res *experiment.Result, outdir string) error {
	b, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(outdir, "result.json"), b, 0644)
}

// WriteCSV writes errors.csv: one row per path, one column per schedule.
// Schedules share the same underlying paths, so row i of every column
// refers to the same simulated path.
func WriteCSV(res *experiment.Result, outdir string) error {
	f, err := os.Create(filepath.Join(outdir, "errors.csv"))
	if err != nil {
		return err
	}
	defer f.Close()
	w := csv.NewWriter(f)
	defer w.Flush()

	headers := make([]string, 0, len(res.Summaries)+1)
	headers = append(headers, "path")
	for _, s := range res.Summaries {
		headers = append(headers, s.Name)
	}
	if err := w.Write(headers); err != nil {
		return err
	}

	for i := 0; i < res.NumPaths; i++ {
		row := make([]string, 0, len(headers))
		row = append(row, strconv.Itoa(i))
		for _, s := range res.Summaries {
			row = append(row, strconv.FormatFloat(s.Errors[i], 'g', -1, 64))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

// WriteHistogramCSV writes histogram.csv: uniform bins spanning the
// combined error range of all schedules, with one count column per
// schedule. Sharing the bin edges across schedules keeps the overlaid
// histograms directly comparable.
func WriteHistogramCSV(res *experiment.Result, bins int, outdir string) error {
	if bins < 1 {
		return fmt.Errorf("histogram bins must be >= 1, got %d", bins)
	}

	lo, hi := math.Inf(1), math.Inf(-1)
	for _, s := range res.Summaries {
		for _, e := range s.Errors {
			lo = math.Min(lo, e)
			hi = math.Max(hi, e)
		}
	}
	if lo >= hi {
		// degenerate distribution, widen to a token interval
		hi = lo + 1e-9
	}
	width := (hi - lo) / float64(bins)

	counts := make([][]int, len(res.Summaries))
	for si, s := range res.Summaries {
		counts[si] = make([]int, bins)
		for _, e := range s.Errors {
			b := int((e - lo) / width)
			if b >= bins {
				b = bins - 1 // hi itself lands in the last bin
			}
			counts[si][b]++
		}
	}

	f, err := os.Create(filepath.Join(outdir, "histogram.csv"))
	if err != nil {
		return err
	}
	defer f.Close()
	w := csv.NewWriter(f)
	defer w.Flush()

	headers := []string{"bin_low", "bin_high"}
	for _, s := range res.Summaries {
		headers = append(headers, s.Name)
	}
	if err := w.Write(headers); err != nil {
		return err
	}
	for b := 0; b < bins; b++ {
		row := []string{
			strconv.FormatFloat(lo+float64(b)*width, 'g', -1, 64),
			strconv.FormatFloat(lo+float64(b+1)*width, 'g', -1, 64),
		}
		for si := range res.Summaries {
			row = append(row, strconv.Itoa(counts[si][b]))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

// PrintSummary writes the per-frequency statistics table to w.
func PrintSummary(w io.Writer, res *experiment.Result) {
	fmt.Fprintf(w, "S0=%.2f K=%.2f T=%.2fy r=%.4f sigma=%.4f | %d paths x %d steps, seed %d\n",
		res.Params.S0, res.Params.K, res.Params.T, res.Params.R, res.Params.Sigma,
		res.NumPaths, res.Grid.Steps, res.Seed)
	fmt.Fprintf(w, "call price=%.6f delta=%.6f gamma=%.6f vega=%.6f\n\n",
		res.InitialPrice, res.InitialDelta, res.InitialGamma, res.InitialVega)
	fmt.Fprintf(w, "%-12s %8s %14s %14s %14s %24s\n",
		"schedule", "stride", "mean", "std", "variance", "mean 95% CI")
	for _, s := range res.Summaries {
		fmt.Fprintf(w, "%-12s %8d %+14.6f %14.6f %14.6f   [%+.6f, %+.6f]\n",
			s.Name, s.Stride, s.Mean, s.Std, s.Variance, s.CI95Low, s.CI95High)
	}
}
