// Command chromproc processes a Waters Acquity chromatogram export and
// prints the detected peaks.
//
// Usage:
//
//	chromproc [flags] export.txt
//
// The processing method comes from the built-in defaults, an optional YAML
// method file and CHROM_* environment variables.
//
// Examples:
//
//	chromproc injection.txt
//	chromproc -method gradient.yaml -v injection.txt
//	CHROM_PEAKS_BORDER_METHOD=FWHM chromproc injection.txt
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"text/tabwriter"

	"github.com/google/uuid"

	"github.com/cwbudde/algo-chrom/chromatogram"
	"github.com/cwbudde/algo-chrom/chromatogram/acquity"
	"github.com/cwbudde/algo-chrom/dsp/core"
	"github.com/cwbudde/algo-chrom/internal/config"
	"github.com/cwbudde/algo-chrom/stats/noise"
)

var errUsage = errors.New("usage")

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if !errors.Is(err, errUsage) {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
		}
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("chromproc", flag.ContinueOnError)
	fs.SetOutput(stderr)
	methodPath := fs.String("method", "", "YAML method file")
	xCol := fs.String("x", acquity.TimeColumn, "time column")
	yCol := fs.String("y", acquity.ValueColumn, "response column")
	verbose := fs.Bool("v", false, "log processing stages")
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: chromproc [flags] export.txt\n\n")
		fmt.Fprintf(stderr, "Detects and integrates peaks in an Acquity chromatogram export.\n\n")
		fmt.Fprintf(stderr, "Flags:\n")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return errUsage
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return errUsage
	}

	method, err := config.Load(*methodPath)
	if err != nil {
		return err
	}

	logger := newLogger(stderr, method.Logging, *verbose).With(
		slog.String("run_id", uuid.NewString()),
		slog.String("file", fs.Arg(0)),
	)

	export, err := acquity.ParseFile(fs.Arg(0))
	if err != nil {
		return err
	}
	for _, w := range export.Warnings {
		logger.Warn("export metadata", slog.String("detail", w))
	}

	trace, err := export.Trace(*xCol, *yCol)
	if err != nil {
		return err
	}
	y, err := trace.Column(*yCol)
	if err != nil {
		return err
	}

	opts := append(method.Options(core.Range(y)), chromatogram.WithLogger(logger))
	proc, err := chromatogram.NewProcessor(trace, *xCol, *yCol, opts...)
	if err != nil {
		return err
	}
	if err := proc.Run(); err != nil {
		return err
	}
	logger.Info("processed chromatogram",
		slog.Int("samples", trace.Len()),
		slog.Int("peaks", len(proc.Peaks())))

	baseline, err := proc.Noise()
	if err != nil {
		logger.Warn("no baseline left for a noise estimate", slog.Any("error", err))
	}

	printSummary(stdout, export, proc, baseline)
	return printPeaks(stdout, proc.Peaks(), baseline)
}

func newLogger(w io.Writer, cfg config.LoggingConfig, verbose bool) *slog.Logger {
	level := cfg.SlogLevel()
	if verbose {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}

	if cfg.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func printSummary(w io.Writer, e *acquity.Export, p *chromatogram.Processor, baseline noise.Summary) {
	fmt.Fprintf(w, "File:      %s\n", e.Filename)
	if e.Injection.Injection != "" {
		fmt.Fprintf(w, "Injection: %s\n", e.Injection.Injection)
	}
	if v := e.Injection.InjectionVolumeUL; v != nil {
		fmt.Fprintf(w, "Volume:    %g µL\n", *v)
	}
	if e.Chromatogram.Detector != "" {
		fmt.Fprintf(w, "Detector:  %s\n", e.Chromatogram.Detector)
	}
	cfg := p.Config()
	fmt.Fprintf(w, "Method:    %s borders, %s\n", cfg.BorderMethod, cfg.IntegrationMethod)
	if baseline.Length > 0 {
		fmt.Fprintf(w, "Noise:     %.4g peak-to-peak over %d samples\n", baseline.PeakToPeak(), baseline.Length)
	}
	fmt.Fprintf(w, "Peaks:     %d\n\n", len(p.Peaks()))
}

func printPeaks(w io.Writer, found []*chromatogram.Peak, baseline noise.Summary) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintf(tw, "#\tTime\tHeight\tLeft\tRight\tArea\tS/N\t\n")

	for i, pk := range found {
		x := pk.Signal().XValues()
		left, right, _ := pk.Borders()
		area, _ := pk.Area()
		sn := "-"
		if baseline.Length > 0 {
			sn = fmt.Sprintf("%.1f", noise.SignalToNoise(pk.Height(), baseline))
		}
		fmt.Fprintf(tw, "%d\t%.3f\t%.4f\t%.3f\t%.3f\t%.5f\t%s\t\n",
			i+1, pk.Time(), pk.Height(), x[left], x[max(right-1, left)], area, sn)
	}

	return tw.Flush()
}
