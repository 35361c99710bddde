// Command inspect runs the extraction and classification stages against a
// locally saved bulletin page, printing the detected schema and the report
// that a live run would produce. Useful when a layout change breaks column
// detection: save the page, inspect it offline.
//
// Usage:
//
//	go run ./cmd/inspect -file saved_bulletin.html
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/quakewatch/quake-report-etl/internal/adapter/htmltable"
	"github.com/quakewatch/quake-report-etl/internal/adapter/render"
	"github.com/quakewatch/quake-report-etl/internal/domain"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	file := flag.String("file", "", "path to a saved HTML bulletin page")
	flag.Parse()

	if *file == "" {
		flag.Usage()
		return fmt.Errorf("missing required flag: -file")
	}

	f, err := os.Open(*file)
	if err != nil {
		return fmt.Errorf("open: %w", err)
	}
	defer f.Close()

	table, err := htmltable.Extract(f)
	if err != nil {
		return fmt.Errorf("extract table: %w", err)
	}
	log.Printf("largest table: %d headers, %d rows", len(table.Headers), len(table.Rows))

	schema, err := domain.DetectSchema(table)
	if err != nil {
		return fmt.Errorf("detect schema: %w", err)
	}
	log.Printf("schema: magnitude=%d location=%d date=%d",
		schema.MagnitudeCol, schema.LocationCol, schema.DateCol)

	records := domain.ParseRows(table, schema)
	unparseable := 0
	for _, rec := range records {
		if rec.Magnitude == nil {
			unparseable++
			log.Printf("unparseable magnitude: %q", rec.Signature)
		}
	}
	log.Printf("parsed %d records (%d without magnitude)", len(records), unparseable)

	// No snapshot offline: every record renders as new.
	report := domain.BuildReport(records, map[string]struct{}{})
	return render.NewConsole(os.Stdout).Render(report)
}
