package ioimport

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/gnames/gnlib"
	"github.com/gnames/valemdb/pkg/errcode"
)

// KindError is returned for an unknown kind of import file.
func KindError(kind string) error {
	msg := `Unknown import kind <em>%s</em>

Use one of: reactions, rps, species.`

	return &gn.Error{
		Code: errcode.ImportKindError,
		Msg:  msg,
		Vars: []any{kind},
		Err:  fmt.Errorf("unknown import kind %q", kind),
	}
}

// ReadError is returned when the import input cannot be read.
func ReadError(source string, err error) error {
	msg := "Cannot read import data from <em>%s</em>"

	return &gn.Error{
		Code: errcode.ImportReadError,
		Msg:  msg,
		Vars: []any{source},
		Err:  fmt.Errorf("failed to read %s: %w", source, err),
	}
}

// ImportWriteError is returned when a record cannot be saved for a
// reason unrelated to its content.
type ImportWriteError struct {
	error
	gnlib.MessageBase
}

// WriteError creates a new import write error.
func WriteError(line int, text string, err error) error {
	msgBase := gnlib.MessageBase{
		Msg: `<title>Import Stopped</title>
<warn>Line %d (%s) could not be saved.</warn>

<em>How to fix:</em>
  1. Verify the database connection is active
  2. Make sure the schema is up to date: <em>valemdb migrate</em>
  3. Check the log file for details
`,
		Vars: []any{line, text},
	}

	return ImportWriteError{
		error:       fmt.Errorf("failed to save line %d %q: %w", line, text, err),
		MessageBase: msgBase,
	}
}

func (e ImportWriteError) Unwrap() error {
	return e.error
}
