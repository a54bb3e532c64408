package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/nepali-holidays/nepcal/internal/calendar"
	"github.com/nepali-holidays/nepcal/internal/holiday"
	"github.com/nepali-holidays/nepcal/internal/wikitable"
)

var (
	input = flag.String("input", "testdata/fixtures/public_holidays_in_nepal.html", "Saved copy of the holidays page (e.g. debug.html)")
	class = flag.String("class", wikitable.DefaultClass, "Class marker of the holiday tables")
)

func main() {
	flag.Parse()

	f, err := os.Open(*input)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening page: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	var rows []holiday.RawRow
	if *class == wikitable.DefaultClass {
		rows, err = wikitable.ExtractFrom(f)
	} else {
		rows, err = wikitable.ExtractClass(f, *class)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error extracting tables: %v\n", err)
		os.Exit(1)
	}

	holidays, skipped := holiday.NewNormalizer(nil).NormalizeAll(rows)
	for _, res := range skipped {
		fmt.Fprintf(os.Stderr, "skipped row %d (%s): %s\n", res.Row, res.Skip, res.Raw)
	}

	data, err := calendar.Encode(calendar.Build(calendar.DefaultMeta(), holidays, time.Now()))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding calendar: %v\n", err)
		os.Exit(1)
	}

	fmt.Fprintf(os.Stderr, "✅ %d events from %d rows\n\n", len(holidays), len(rows))
	os.Stdout.Write(data)
}
