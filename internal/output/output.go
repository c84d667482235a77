// Package output emits the per-run results as CSV and JSON for downstream
// use, plus the batch-level clash, chain and skipped-show reports.
package output

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/laurab04-design/fossedata-render/internal/cost"
	"github.com/laurab04-design/fossedata-render/internal/planner"
	"github.com/laurab04-design/fossedata-render/internal/show"
)

// csvHeader is the fixed column order of the results CSV.
var csvHeader = []string{
	"show", "date", "show_type", "postcode", "judge",
	"eligible_classes", "entered_classes",
	"entry_cost", "catalogue_cost", "entry_total",
	"distance_km", "duration_hr", "diesel_cost", "overnight_cost", "total_cost",
	"points", "entry_close_postal", "entry_close_online",
	"clash", "overnight_chain",
}

// Run bundles everything a single run produces.
type Run struct {
	GeneratedAt time.Time       `json:"generated_at"`
	Results     []*show.Result  `json:"results"`
	Report      *planner.Report `json:"report"`
}

// WriteCSV writes the results as CSV. Monetary values are rounded to two
// decimals here, at the output boundary.
func WriteCSV(w io.Writer, results []*show.Result) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("writing CSV header: %w", err)
	}

	for _, r := range results {
		if err := cw.Write(resultRow(r)); err != nil {
			return fmt.Errorf("writing CSV row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// resultRow flattens one result into CSV fields. Unknown numeric fields
// become empty cells rather than zeros.
func resultRow(r *show.Result) []string {
	return []string{
		r.ShowURL,
		r.DateText,
		string(r.ShowType),
		r.Postcode,
		strings.Join(r.Judges, "; "),
		strings.Join(r.EligibleClasses, "; "),
		strings.Join(r.EnteredClasses, "; "),
		money(r.EntryCost),
		money(r.CatalogueCost),
		money(r.EntryTotal),
		optFloat(r.DistanceKM, 1),
		optFloat(r.DurationHours, 2),
		optMoney(r.DieselCost),
		optMoney(r.OvernightCost),
		money(r.TotalCost),
		strconv.Itoa(r.Points),
		r.EntryClosePostal,
		r.EntryCloseOnline,
		boolCell(r.Clash),
		chainCell(r.OvernightChain),
	}
}

// WriteJSON writes the full run payload as indented JSON.
func WriteJSON(w io.Writer, run *Run) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(run)
}

// SaveAll writes results.csv and results.json into outDir.
func SaveAll(outDir string, run *Run) error {
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	csvFile, err := os.Create(filepath.Join(outDir, "results.csv"))
	if err != nil {
		return fmt.Errorf("creating results.csv: %w", err)
	}
	defer csvFile.Close()
	if err := WriteCSV(csvFile, run.Results); err != nil {
		return err
	}

	jsonFile, err := os.Create(filepath.Join(outDir, "results.json"))
	if err != nil {
		return fmt.Errorf("creating results.json: %w", err)
	}
	defer jsonFile.Close()
	return WriteJSON(jsonFile, run)
}

func money(v float64) string {
	return strconv.FormatFloat(cost.Round(v), 'f', 2, 64)
}

func optMoney(v *float64) string {
	if v == nil {
		return ""
	}
	return money(*v)
}

func optFloat(v *float64, decimals int) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', decimals, 64)
}

func boolCell(b bool) string {
	if b {
		return "yes"
	}
	return ""
}

func chainCell(n int) string {
	if n == 0 {
		return ""
	}
	return strconv.Itoa(n)
}
