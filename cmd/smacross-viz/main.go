// Command smacross-viz renders a recorded run's chart output into a single
// self-contained HTML report: price with buy/sell markers, the two moving
// averages, and a reconciled trade table.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"smacross/internal/report"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	chartName := flag.String("chart", "SPY", "chart name to read from the run file")
	output := flag.String("output", "", "output html path (default: <input-stem>-viz.html)")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [flags] <run.json>\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		return fmt.Errorf("expected exactly one input file, got %d", flag.NArg())
	}
	input := flag.Arg(0)

	outPath := *output
	if outPath == "" {
		stem := strings.TrimSuffix(input, filepath.Ext(input))
		outPath = stem + "-viz.html"
	}

	rf, err := report.LoadRunFile(input)
	if err != nil {
		return err
	}
	chart, err := rf.Chart(*chartName)
	if err != nil {
		return err
	}

	bundle := report.ExtractBundle(chart)
	trades := report.BuildTrades(bundle.Buy, bundle.Sell)

	title := fmt.Sprintf("Run: %s (Price + Trades + SMA)", *chartName)
	html, err := report.Render(title, bundle, trades)
	if err != nil {
		return err
	}
	if err := os.WriteFile(outPath, html, 0o644); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}

	if len(trades) > 0 {
		fmt.Println("Trades (UTC):")
		for _, tr := range trades {
			fmt.Printf("- %s %s @ %.4f\n", tr.TimeUTC, tr.Side, tr.Price)
		}
	}
	fmt.Println(outPath)
	return nil
}
