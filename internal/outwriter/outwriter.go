// Package outwriter has output and writer logic.
package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/huangsam/divrank/internal/contract"
	"github.com/huangsam/divrank/internal/parquet"
	"github.com/huangsam/divrank/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// maxCityWidth caps the city column in table output.
const maxCityWidth = 20

// WriteRankings outputs a ranked view, dispatching based on the output format configured.
func WriteRankings(view *schema.RankedView, cfg *contract.Config, duration time.Duration) error {
	switch cfg.Output {
	case schema.JSONOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, view)
		}, "Wrote JSON"); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return WriteRankedCSV(w, view.Rows)
		}, "Wrote CSV"); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.ParquetOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return parquet.WriteRankedRows(w, view.Rows)
		}, "Wrote Parquet"); err != nil {
			return fmt.Errorf("error writing Parquet output: %w", err)
		}
	default:
		// Default to human-readable table
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeRankingsTable(w, view, cfg, duration)
		}, "Wrote table")
	}
	return nil
}

// WriteRankedCSV writes ranked rows as CSV with a header row and no index column.
// Floats use the shortest exact representation, so the file parses back to the same values.
func WriteRankedCSV(w io.Writer, rows []schema.RankedRow) error {
	return writeCSVWithHeader(w, schema.RankedColumns, func(cw *csv.Writer) error {
		for _, r := range rows {
			rec := []string{
				strconv.Itoa(r.Rank),
				r.Institution,
				r.City,
				r.State,
				formatExact(r.DiversityScore),
				formatExact(r.PercentFemale),
				formatExact(r.PercentOfColor),
			}
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}

// writeRankingsTable generates and writes the human-readable table.
func writeRankingsTable(w io.Writer, view *schema.RankedView, cfg *contract.Config, duration time.Duration) error {
	fmtFloat := createFormatter(cfg.Precision)
	nameWidth := getMaxInstitutionWidth(cfg)

	if _, err := fmt.Fprintf(w, "%s\n", schema.AppTitle); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Top Institutions by %s\n", view.Label); err != nil {
		return err
	}

	table := tablewriter.NewWriter(w)
	table.Header([]string{"Rank", "Institution", "City", "State", "Score", "% Female", "% Of Color"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	data := make([][]string, 0, len(view.Rows))
	for _, r := range view.Rows {
		data = append(data, []string{
			contract.GetColorRank(r.Rank),
			contract.TruncateText(r.Institution, nameWidth),
			contract.TruncateText(r.City, maxCityWidth),
			r.State,
			fmtFloat(r.DiversityScore),
			fmtFloat(r.PercentFemale),
			fmtFloat(r.PercentOfColor),
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	if _, err := fmt.Fprintf(w, "Showing %d institutions in %s\n", len(view.Rows), schema.DescribeStates(view.States)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Ranking completed in %v. Cache backend: %s\n", duration, cfg.CacheBackend); err != nil {
		return err
	}
	return nil
}

// WriteStates outputs the distinct state list.
func WriteStates(model schema.StatesRenderModel, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, model)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVWithHeader(w, []string{"state"}, func(cw *csv.Writer) error {
				for _, s := range model.States {
					if err := cw.Write([]string{s}); err != nil {
						return err
					}
				}
				return nil
			})
		}, "Wrote CSV")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			if _, err := fmt.Fprintf(w, "🗺️  %d states in %s\n", len(model.States), model.Source); err != nil {
				return err
			}
			for _, s := range model.States {
				if _, err := fmt.Fprintln(w, s); err != nil {
					return err
				}
			}
			return nil
		}, "Wrote text")
	}
}

// WriteMetrics outputs the metric catalogue with dataset availability.
func WriteMetrics(model schema.MetricsRenderModel, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, model)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVWithHeader(w, []string{"label", "key", "available", "scored"}, func(cw *csv.Writer) error {
				for _, m := range model.Metrics {
					rec := []string{m.Label, string(m.Key), strconv.FormatBool(m.Available), strconv.Itoa(m.Scored)}
					if err := cw.Write(rec); err != nil {
						return err
					}
				}
				return nil
			})
		}, "Wrote CSV")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeMetricsTable(w, model)
		}, "Wrote text")
	}
}

// writeMetricsTable renders the catalogue as a table.
func writeMetricsTable(w io.Writer, model schema.MetricsRenderModel) error {
	if _, err := fmt.Fprintf(w, "📊 %s\n", model.Title); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Dataset: %s (%d institutions)\n", model.Source, model.Total); err != nil {
		return err
	}

	table := tablewriter.NewWriter(w)
	table.Header([]string{"Label", "Key", "Available", "Scored"})
	data := make([][]string, 0, len(model.Metrics))
	for _, m := range model.Metrics {
		available := "no"
		if m.Available {
			available = "yes"
		}
		data = append(data, []string{m.Label, string(m.Key), available, strconv.Itoa(m.Scored)})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}
