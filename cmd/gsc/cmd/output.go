package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	domain "github.com/gamescout/gamescout/pkg/types"
)

// tabWriter wraps tabwriter with error tracking.
type tabWriter struct {
	*tabwriter.Writer
	err error
}

func newTabWriter(w io.Writer) *tabWriter {
	return &tabWriter{Writer: tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)}
}

func (tw *tabWriter) writef(format string, args ...any) {
	if tw.err != nil {
		return
	}
	_, tw.err = fmt.Fprintf(tw.Writer, format, args...)
}

func (tw *tabWriter) finish() error {
	if tw.err != nil {
		return tw.err
	}
	return tw.Flush()
}

func printResultsTable(results []domain.SearchResult) error {
	tw := newTabWriter(os.Stdout)
	tw.writef("ID\tNAME\tRELEASED\tRATING\tCHEAPEST\n")
	for i := range results {
		r := &results[i]
		rating := "-"
		if r.TotalRating != nil {
			rating = fmt.Sprintf("%.0f", *r.TotalRating)
		}
		price := "-"
		if r.CheapestPrice != "" {
			price = "$" + r.CheapestPrice
		}
		released := r.ReleaseDate
		if released == "" {
			released = "-"
		}
		tw.writef("%d\t%s\t%s\t%s\t%s\n",
			r.ID,
			truncate(r.Name, 40),
			released,
			rating,
			price,
		)
	}
	return tw.finish()
}

func printGameDetail(g *domain.GameDetails) error {
	tw := newTabWriter(os.Stdout)
	tw.writef("ID:\t%d\n", g.ID)
	tw.writef("Name:\t%s\n", g.Name)
	tw.writef("Slug:\t%s\n", g.Slug)
	if g.ReleaseDate != "" {
		tw.writef("Released:\t%s\n", g.ReleaseDate)
	}
	if g.TotalRating != nil {
		tw.writef("Rating:\t%.0f/100\n", *g.TotalRating)
	}
	if len(g.Platforms) > 0 {
		names := make([]string, len(g.Platforms))
		for i, p := range g.Platforms {
			names[i] = p.Name
		}
		tw.writef("Platforms:\t%s\n", strings.Join(names, ", "))
	}
	if len(g.Genres) > 0 {
		names := make([]string, len(g.Genres))
		for i, gn := range g.Genres {
			names[i] = gn.Name
		}
		tw.writef("Genres:\t%s\n", strings.Join(names, ", "))
	}
	if len(g.Developers) > 0 {
		tw.writef("Developers:\t%s\n", strings.Join(g.Developers, ", "))
	}
	if len(g.Publishers) > 0 {
		tw.writef("Publishers:\t%s\n", strings.Join(g.Publishers, ", "))
	}
	if g.Summary != "" {
		tw.writef("Summary:\t%s\n", truncate(g.Summary, 120))
	}
	if g.CheapestPriceEver != nil {
		tw.writef("Cheapest Ever:\t$%s on %s\n",
			g.CheapestPriceEver.Price,
			g.CheapestPriceEver.Date,
		)
	}
	if err := tw.finish(); err != nil {
		return err
	}

	if len(g.Deals) == 0 {
		return nil
	}

	fmt.Println()
	dw := newTabWriter(os.Stdout)
	dw.writef("STORE\tPRICE\tRETAIL\tSAVINGS\n")
	for i := range g.Deals {
		d := &g.Deals[i]
		dw.writef("%s\t$%s\t$%s\t%s%%\n",
			d.StoreName,
			d.Price,
			d.RetailPrice,
			d.Savings,
		)
	}
	return dw.finish()
}

func printPlatformsTable(platforms []domain.Platform) error {
	tw := newTabWriter(os.Stdout)
	tw.writef("ID\tNAME\tABBR\tFAMILY\n")
	for i := range platforms {
		p := &platforms[i]
		tw.writef("%d\t%s\t%s\t%s\n", p.ID, p.Name, p.Abbreviation, p.Family)
	}
	return tw.finish()
}

func printStoresTable(stores []domain.Store) error {
	tw := newTabWriter(os.Stdout)
	tw.writef("ID\tNAME\n")
	for i := range stores {
		tw.writef("%s\t%s\n", stores[i].ID, stores[i].Name)
	}
	return tw.finish()
}

func outputJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
