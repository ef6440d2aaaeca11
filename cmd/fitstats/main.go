package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/2beens/fitcompare/internal/activity"
	"github.com/2beens/fitcompare/internal/export"
	"github.com/2beens/fitcompare/internal/logging"

	log "github.com/sirupsen/logrus"
)

func main() {
	var (
		outputFormat = flag.String("output", "text", "stat table format: text|json")
		exportFormat = flag.String("export", "", "also export all samples: csv|parquet")
		exportPath   = flag.String("export-path", "", "export file path (default comparison.<format>)")
		concurrency  = flag.Int("concurrency", activity.DefaultComparisonConcurrency, "max files decoded at once")
		logLevel     = flag.String("log-level", "warn", "log level")
	)
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [flags] ride1.fit [ride2.fit ...]\n", filepath.Base(os.Args[0]))
		flag.PrintDefaults()
	}
	flag.Parse()

	logging.Setup(logging.LoggerSetupParams{LogLevel: *logLevel})

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	set := activity.AssembleComparisonSet(context.Background(), fileSources(flag.Args()), *concurrency)
	for _, skipped := range set.Skipped {
		fmt.Fprintf(os.Stderr, "skipped %s: %s\n", skipped.Name, skipped.Err)
	}
	if len(set.Series) == 0 {
		log.Fatalln("no readable files")
	}

	rows := activity.ComputeAllStats(set)
	var err error
	switch *outputFormat {
	case "json":
		err = writeJSON(os.Stdout, rows)
	case "text":
		err = writeTable(os.Stdout, rows)
	default:
		log.Fatalf("unknown output format: %s", *outputFormat)
	}
	if err != nil {
		log.Fatalf("write stats: %s", err)
	}

	if *exportFormat != "" {
		if err := exportSet(set, *exportFormat, *exportPath); err != nil {
			log.Fatalf("export: %s", err)
		}
	}
}

func fileSources(paths []string) []activity.NamedSource {
	sources := make([]activity.NamedSource, 0, len(paths))
	for _, path := range paths {
		sources = append(sources, activity.NamedSource{
			Name: filepath.Base(path),
			Source: func(context.Context) ([]activity.Record, error) {
				data, err := os.ReadFile(path)
				if err != nil {
					return nil, err
				}
				return activity.Decode(data)
			},
		})
	}
	return sources
}

func writeJSON(w io.Writer, rows []activity.StatRow) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(rows)
}

func writeTable(w io.Writer, rows []activity.StatRow) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "FILE\tAVG W\tWP\tMAX W\tAVG HR\tAVG RPM\tAVG KM/H\tKM\tASCENT M")
	for _, r := range rows {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%.2f\t%.0f\n",
			r.FileName,
			cell(r.AvgPower, 0),
			cell(r.WeightedPower, 0),
			cell(r.MaxPower, 0),
			cell(r.AvgHeartRate, 0),
			cell(r.AvgCadence, 0),
			cell(r.AvgSpeed, 1),
			r.Distance,
			r.Ascent,
		)
	}
	return tw.Flush()
}

func cell(v *float64, decimals int) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf("%.*f", decimals, *v)
}

func exportSet(set activity.ComparisonSet, rawFormat, path string) error {
	format, err := export.ParseFormat(rawFormat)
	if err != nil {
		return err
	}
	if path == "" {
		path = "comparison." + string(format)
	}

	var data []byte
	switch format {
	case export.FormatParquet:
		data, err = export.MarshalParquet(set)
	default:
		buf := &bytes.Buffer{}
		err = export.WriteCSV(buf, set)
		data = buf.Bytes()
	}
	if err != nil {
		return err
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	fmt.Fprintf(os.Stderr, "exported %s\n", path)
	return nil
}
