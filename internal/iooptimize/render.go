package iooptimize

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/gnames/valemdb/pkg/valem"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

// row is a stored entity with its renderings.
type row struct {
	ID    int    `gorm:"column:id"`
	Text  string `gorm:"column:text"`
	HTML  string `gorm:"column:html"`
	LaTeX string `gorm:"column:latex"`
}

// rendered is the output of the parser for a stored text.
type rendered struct {
	text, html, latex string
}

// renderer describes how rows of one table are rendered.
type renderer struct {
	table     string
	withLaTeX bool
	render    func(p valem.Parser, text string) (rendered, error)
}

type update struct {
	id     int
	values map[string]any
}

type renderStats struct {
	rows, updated, stale int
}

var renderers = []renderer{
	{table: "species", render: renderFormula},
	{table: "states", render: renderState},
	{table: "rps", render: renderRP},
	{table: "reactions", withLaTeX: true, render: renderReaction},
}

func renderFormula(p valem.Parser, text string) (rendered, error) {
	f, err := p.Formula(text)
	if err != nil {
		return rendered{}, err
	}
	return rendered{text: f.Text, html: f.HTML, latex: f.LaTeX}, nil
}

func renderState(p valem.Parser, text string) (rendered, error) {
	s, err := p.State(text)
	if err != nil {
		return rendered{}, err
	}
	return rendered{text: s.Text, html: s.HTML, latex: s.LaTeX}, nil
}

func renderRP(p valem.Parser, text string) (rendered, error) {
	ss, err := p.StatefulSpecies(text)
	if err != nil {
		return rendered{}, err
	}
	return rendered{text: ss.Text, html: ss.HTML, latex: ss.LaTeX}, nil
}

// renderReaction falls back to the non-strict parser, stored reactions
// may have been created without balance checks.
func renderReaction(p valem.Parser, text string) (rendered, error) {
	r, err := p.Reaction(text, true)
	if err != nil {
		r, err = p.Reaction(text, false)
	}
	if err != nil {
		return rendered{}, err
	}
	return rendered{text: r.Text, html: r.HTML, latex: r.LaTeX}, nil
}

func (r renderer) columns() []string {
	if r.withLaTeX {
		return []string{"id", "text", "html", "latex"}
	}
	return []string{"id", "text", "html"}
}

// changes returns the columns of v that differ from the rendering.
func (r renderer) changes(v row, rd rendered) map[string]any {
	res := make(map[string]any)
	if rd.html != v.HTML {
		res["html"] = rd.html
	}
	if r.withLaTeX && rd.latex != v.LaTeX {
		res["latex"] = rd.latex
	}
	return res
}

// render reads a table in batches, renders rows concurrently and saves
// the changed renderings from a single goroutine.
func (o *optimizer) render(
	ctx context.Context,
	r renderer,
) (*renderStats, error) {
	chIn := make(chan []row)
	chOut := make(chan []update)
	g, gCtx := errgroup.WithContext(ctx)
	stats := &renderStats{}
	var stale atomic.Int64

	g.Go(func() error {
		defer close(chIn)
		return o.loadRows(gCtx, r, chIn, stats)
	})

	var wg sync.WaitGroup
	for range max(o.cfg.JobsNumber, 1) {
		wg.Add(1)
		g.Go(func() error {
			defer wg.Done()
			return o.renderWorker(gCtx, r, chIn, chOut, &stale)
		})
	}

	g.Go(func() error {
		return o.saveRendered(gCtx, r, chOut, stats)
	})

	go func() {
		wg.Wait()
		close(chOut)
	}()

	if err := g.Wait(); err != nil {
		return nil, err
	}

	stats.stale = int(stale.Load())
	slog.Info("Rendered table",
		"table", r.table,
		"rows", stats.rows,
		"updated", stats.updated,
		"stale", stats.stale,
	)
	return stats, nil
}

// loadRows pages through the table by primary key.
func (o *optimizer) loadRows(
	ctx context.Context,
	r renderer,
	chIn chan<- []row,
	stats *renderStats,
) error {
	batchSize := max(o.cfg.Database.BatchSize, 1)
	gdb := o.operator.DB().WithContext(ctx)

	var lastID int
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		var batch []row
		err := gdb.Table(r.table).
			Select(r.columns()).
			Where("id > ?", lastID).
			Order("id").
			Limit(batchSize).
			Find(&batch).Error
		if err != nil {
			return RenderError(r.table, err)
		}
		if len(batch) == 0 {
			return nil
		}
		stats.rows += len(batch)
		lastID = batch[len(batch)-1].ID

		select {
		case <-ctx.Done():
			return ctx.Err()
		case chIn <- batch:
		}
	}
}

func (o *optimizer) renderWorker(
	ctx context.Context,
	r renderer,
	chIn <-chan []row,
	chOut chan<- []update,
	stale *atomic.Int64,
) error {
	for batch := range chIn {
		select {
		case <-ctx.Done():
			for range chIn {
			}
			return ctx.Err()
		default:
		}

		var res []update
		for _, v := range batch {
			rd, err := r.render(o.parser, v.Text)
			if err != nil {
				slog.Warn("Cannot parse stored text",
					"table", r.table, "id", v.ID, "text", v.Text, "error", err)
				stale.Add(1)
				continue
			}
			if rd.text != v.Text {
				slog.Warn("Stored text is not canonical",
					"table", r.table, "id", v.ID, "text", v.Text,
					"canonical", rd.text)
				stale.Add(1)
			}
			if vals := r.changes(v, rd); len(vals) > 0 {
				res = append(res, update{id: v.ID, values: vals})
			}
		}
		if len(res) == 0 {
			continue
		}

		select {
		case <-ctx.Done():
			for range chIn {
			}
			return ctx.Err()
		case chOut <- res:
		}
	}
	return nil
}

// saveRendered writes each batch of updates in one transaction.
func (o *optimizer) saveRendered(
	ctx context.Context,
	r renderer,
	chOut <-chan []update,
	stats *renderStats,
) error {
	gdb := o.operator.DB().WithContext(ctx)
	for batch := range chOut {
		err := gdb.Transaction(func(tx *gorm.DB) error {
			for _, v := range batch {
				err := tx.Table(r.table).
					Where("id = ?", v.id).
					Updates(v.values).Error
				if err != nil {
					return err
				}
			}
			return nil
		})
		if err != nil {
			return RenderError(r.table, err)
		}
		stats.updated += len(batch)
	}
	return nil
}
