/*
Copyright © 2025 Dmitry Mozzherin <dmozzherin@gmail.com>

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"time"

	"github.com/gnames/gn"
	"github.com/gnames/gnfmt"
	"github.com/gnames/valemdb/internal/iodb"
	"github.com/gnames/valemdb/internal/iostore"
	"github.com/gnames/valemdb/pkg/db"
	"github.com/gnames/valemdb/pkg/errcode"
	"github.com/gnames/valemdb/pkg/parsecache"
	"github.com/gnames/valemdb/pkg/valem"
)

// connect opens the configured database and reports where it is.
func connect(ctx context.Context) (db.Operator, error) {
	op, err := iodb.Connect(ctx, cfg)
	if err != nil {
		return nil, err
	}

	if cfg.Database.Driver == "sqlite" {
		gn.Info("Connected to SQLite database: <em>%s</em>", cfg.SQLitePath())
	} else {
		gn.Info("Connected to database: <em>%s@%s:%d/%s</em>",
			cfg.Database.User, cfg.Database.Host,
			cfg.Database.Port, cfg.Database.Database)
	}
	return op, nil
}

// openStore connects to a database that already has a schema and
// returns a store with a cached parser. The caller closes the operator.
func openStore(ctx context.Context) (*iostore.Store, db.Operator, error) {
	op, err := iodb.Connect(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	slog.Info("Connected to database", "driver", cfg.Database.Driver)

	hasTables, err := op.HasTables(ctx)
	if err != nil {
		_ = op.Close()
		return nil, nil, err
	}
	if !hasTables {
		_ = op.Close()
		err = &gn.Error{
			Code: errcode.DBEmptyDatabaseError,
			Msg: `<err>Database appears to be empty.</err>
   Run <em>'valemdb create'</em> first to initialize the schema.`,
			Err: errors.New("database has no tables"),
		}
		return nil, nil, err
	}

	return iostore.New(op.DB(), newParser()), op, nil
}

// newParser returns the valem parser behind a cache that keeps results
// for ParseCacheTTL minutes.
func newParser() valem.Parser {
	ttl := time.Duration(cfg.ParseCacheTTL) * time.Minute
	return parsecache.New(valem.New(), ttl, 2*ttl)
}

// withStore runs fn against an open store and prints any error.
func withStore(fn func(ctx context.Context, st *iostore.Store) error) error {
	ctx := context.Background()
	st, op, err := openStore(ctx)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	defer op.Close()

	if err = fn(ctx, st); err != nil {
		gn.PrintErrorMessage(err)
	}
	return err
}

func reportCreated(created bool, qid, text string) {
	if created {
		slog.Info("Created", "id", qid, "text", text)
		return
	}
	slog.Info("Found existing", "id", qid, "text", text)
}

func printJSON(w io.Writer, v any) error {
	enc := gnfmt.GNjson{Pretty: true}
	res, err := enc.Encode(v)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(res))
	return err
}

func parseID(s string) (int, error) {
	id, err := strconv.Atoi(s)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid ID %q", s)
	}
	return id, nil
}
