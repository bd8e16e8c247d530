// Package ioimport loads species, stateful species and reactions from
// line-oriented text files into the catalogue.
//
// Reaction lines have the form
//
//	text|comment|ABBR,ABBR
//
// where comment and process type abbreviations are optional. Species and
// RP files hold one text per line. Empty lines and lines starting with
// "#" are ignored.
//
// Lines are read by one goroutine, canonicalized by JobsNumber workers
// and written by a single goroutine, so the database sees one
// get-or-create at a time.
package ioimport

import (
	"bufio"
	"cmp"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/cheggaaa/pb/v3"
	"github.com/dustin/go-humanize"
	"github.com/gnames/valemdb/internal/iostore"
	"github.com/gnames/valemdb/pkg/config"
	"github.com/gnames/valemdb/pkg/registry"
	"github.com/gnames/valemdb/pkg/valem"
	"golang.org/x/sync/errgroup"
)

// Kinds of import files.
const (
	KindReactions = "reactions"
	KindRPs       = "rps"
	KindSpecies   = "species"
)

// Importer writes records from text files through the registries of a
// store.
type Importer struct {
	cfg    *config.Config
	store  *iostore.Store
	parser valem.Parser
}

// Stats summarizes an import.
type Stats struct {
	// Records is the number of non-comment lines.
	Records  int       `json:"records"`
	Created  int       `json:"created"`
	Existing int       `json:"existing"`
	Failed   int       `json:"failed"`
	Failures []Failure `json:"failures,omitempty"`
}

// Failure describes a line that could not be imported.
type Failure struct {
	Line  int    `json:"line"`
	Text  string `json:"text"`
	Error string `json:"error"`
}

type record struct {
	line         int
	text         string
	comment      string
	processTypes []string
	canonical    string
	err          error
}

// New creates an Importer. Texts are canonicalized with the parser of
// the store.
func New(cfg *config.Config, st *iostore.Store) *Importer {
	return &Importer{
		cfg:    cfg,
		store:  st,
		parser: st.Parser(),
	}
}

// Import reads records of the given kind from r.
func (im *Importer) Import(
	ctx context.Context,
	r io.Reader,
	kind string,
) (*Stats, error) {
	return im.run(ctx, r, kind, 0)
}

// ImportFile imports a file. The file is scanned once beforehand to size
// the progress bar.
func (im *Importer) ImportFile(
	ctx context.Context,
	path, kind string,
) (*Stats, error) {
	var total int
	var err error
	if im.cfg.Import.WithProgress {
		total, err = countRecords(path)
		if err != nil {
			return nil, err
		}
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, ReadError(path, err)
	}
	defer f.Close()

	return im.run(ctx, f, kind, total)
}

func (im *Importer) run(
	ctx context.Context,
	r io.Reader,
	kind string,
	total int,
) (*Stats, error) {
	if !slices.Contains([]string{KindReactions, KindRPs, KindSpecies}, kind) {
		return nil, KindError(kind)
	}

	chIn := make(chan record)
	chOut := make(chan record)
	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer close(chIn)
		return readRecords(gCtx, r, kind, chIn)
	})

	workerCount := max(im.cfg.JobsNumber, 1)
	var wg sync.WaitGroup
	for range workerCount {
		wg.Add(1)
		g.Go(func() error {
			defer wg.Done()
			return im.canonicalize(gCtx, kind, chIn, chOut)
		})
	}

	stats := &Stats{}
	g.Go(func() error {
		return im.save(gCtx, kind, chOut, stats, total)
	})

	go func() {
		wg.Wait()
		close(chOut)
	}()

	if err := g.Wait(); err != nil {
		return nil, err
	}

	slices.SortFunc(stats.Failures, func(a, b Failure) int {
		return cmp.Compare(a.Line, b.Line)
	})
	slog.Info("Import finished",
		"kind", kind,
		"records", stats.Records,
		"created", stats.Created,
		"existing", stats.Existing,
		"failed", stats.Failed,
	)
	return stats, nil
}

func readRecords(
	ctx context.Context,
	r io.Reader,
	kind string,
	chIn chan<- record,
) error {
	sc := newScanner(r)
	var lineNum int
	for sc.Scan() {
		lineNum++
		line := strings.TrimSpace(sc.Text())
		if skipLine(line) {
			continue
		}
		rec := parseLine(kind, line)
		rec.line = lineNum

		if err := ctx.Err(); err != nil {
			return err
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case chIn <- rec:
		}
	}
	if err := sc.Err(); err != nil {
		return ReadError("input", err)
	}
	return nil
}

func parseLine(kind, line string) record {
	if kind != KindReactions {
		return record{text: line}
	}

	parts := strings.SplitN(line, "|", 3)
	res := record{text: strings.TrimSpace(parts[0])}
	if len(parts) > 1 {
		res.comment = strings.TrimSpace(parts[1])
	}
	if len(parts) > 2 {
		for v := range strings.SplitSeq(parts[2], ",") {
			if v = strings.TrimSpace(v); v != "" {
				res.processTypes = append(res.processTypes, v)
			}
		}
	}
	return res
}

func (im *Importer) canonicalize(
	ctx context.Context,
	kind string,
	chIn <-chan record,
	chOut chan<- record,
) error {
	strict := !im.cfg.Import.NonStrict
	for rec := range chIn {
		select {
		case <-ctx.Done():
			for range chIn {
			}
			return ctx.Err()
		default:
		}

		switch kind {
		case KindReactions:
			if r, err := im.parser.Reaction(rec.text, strict); err != nil {
				rec.err = err
			} else {
				rec.canonical = r.Text
			}
		case KindRPs:
			if ss, err := im.parser.StatefulSpecies(rec.text); err != nil {
				rec.err = err
			} else {
				rec.canonical = ss.Text
			}
		case KindSpecies:
			if f, err := im.parser.Formula(rec.text); err != nil {
				rec.err = err
			} else {
				rec.canonical = f.Text
			}
		}

		select {
		case <-ctx.Done():
			for range chIn {
			}
			return ctx.Err()
		case chOut <- rec:
		}
	}
	return nil
}

func (im *Importer) save(
	ctx context.Context,
	kind string,
	chOut <-chan record,
	stats *Stats,
	total int,
) error {
	var bar *pb.ProgressBar
	if im.cfg.Import.WithProgress && total > 0 {
		bar = newProgressBar(total, fmt.Sprintf("Importing %s: ", kind))
		defer bar.Finish()
	}
	timeStart := time.Now()

	for rec := range chOut {
		stats.Records++
		if bar != nil {
			bar.Increment()
		} else if im.cfg.Import.WithProgress && stats.Records%1_000 == 0 {
			printProgress(stats.Records, timeStart)
		}

		if rec.err != nil {
			stats.fail(rec, rec.err)
			continue
		}

		created, err := im.write(ctx, kind, rec)
		switch {
		case err == nil && created:
			stats.Created++
		case err == nil:
			stats.Existing++
		case isLineError(err):
			stats.fail(rec, err)
		default:
			return WriteError(rec.line, rec.text, err)
		}
	}

	if bar == nil && im.cfg.Import.WithProgress {
		fmt.Fprintf(os.Stderr, "\r%s\r", strings.Repeat(" ", 50))
	}
	return nil
}

func (im *Importer) write(
	ctx context.Context,
	kind string,
	rec record,
) (bool, error) {
	var created bool
	var err error
	switch kind {
	case KindReactions:
		opts := registry.ReactionOptions{
			Comment:      rec.comment,
			ProcessTypes: rec.processTypes,
			NonStrict:    im.cfg.Import.NonStrict,
		}
		_, created, err = im.store.Reactions().GetOrCreate(ctx, rec.canonical, opts)
	case KindRPs:
		_, created, err = im.store.RPs().GetOrCreate(ctx, rec.canonical)
	case KindSpecies:
		_, created, err = im.store.Species().GetOrCreate(ctx, rec.canonical)
	}
	return created, err
}

func (s *Stats) fail(rec record, err error) {
	slog.Warn("Cannot import line", "line", rec.line, "text", rec.text,
		"error", err)
	s.Failed++
	s.Failures = append(s.Failures, Failure{
		Line:  rec.line,
		Text:  rec.text,
		Error: err.Error(),
	})
}

// isLineError reports errors caused by the content of a line. They are
// recorded and the import goes on.
func isLineError(err error) bool {
	return valem.IsParseError(err) ||
		registry.IsProcessTypeNotFound(err) ||
		registry.IsConflict(err)
}

func countRecords(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, ReadError(path, err)
	}
	defer f.Close()

	var res int
	sc := newScanner(f)
	for sc.Scan() {
		if !skipLine(strings.TrimSpace(sc.Text())) {
			res++
		}
	}
	if err = sc.Err(); err != nil {
		return 0, ReadError(path, err)
	}
	return res, nil
}

func newScanner(r io.Reader) *bufio.Scanner {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	return sc
}

func skipLine(line string) bool {
	return line == "" || strings.HasPrefix(line, "#")
}

func printProgress(count int, timeStart time.Time) {
	speed := int64(float64(count) / time.Since(timeStart).Seconds())
	fmt.Fprintf(os.Stderr, "\r%s", strings.Repeat(" ", 50))
	fmt.Fprintf(os.Stderr, "\rImported %s records, %s records/sec",
		humanize.Comma(int64(count)), humanize.Comma(speed))
}
