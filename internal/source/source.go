// Package source reads the row-oriented source configuration: one row per
// department website, with the URL, metadata and the scrape method to use.
package source

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"

	"liontalk/seminarworker/internal/seminar"
)

// Required columns of the configuration file.
const (
	colWebsite    = "website"
	colDepartment = "department"
	colSeries     = "series"
	colMethod     = "scrape_method"
)

// Load reads the CSV at path and returns the sources in row order. A row with
// an unparsable scrape_method is kept with StrategyUnknown so the pipeline can
// report and skip it; only structural problems (missing file, missing columns)
// fail the load.
func Load(path string) ([]seminar.Source, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open source configuration: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.TrimLeadingSpace = true

	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read source configuration: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("source configuration is empty")
	}

	cols, err := columnIndex(rows[0])
	if err != nil {
		return nil, err
	}

	var sources []seminar.Source
	for _, row := range rows[1:] {
		src := seminar.Source{
			URL:        strings.TrimSpace(row[cols[colWebsite]]),
			Department: strings.TrimSpace(row[cols[colDepartment]]),
			Series:     strings.TrimSpace(row[cols[colSeries]]),
		}
		if id, err := strconv.Atoi(strings.TrimSpace(row[cols[colMethod]])); err == nil {
			src.Strategy = seminar.StrategyID(id)
		}
		sources = append(sources, src)
	}

	return sources, nil
}

func columnIndex(header []string) (map[string]int, error) {
	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, required := range []string{colWebsite, colDepartment, colSeries, colMethod} {
		if _, ok := cols[required]; !ok {
			return nil, fmt.Errorf("source configuration is missing column %q", required)
		}
	}
	return cols, nil
}
