package iodb

import (
	"errors"
	"testing"

	"github.com/gnames/gn"
	"github.com/gnames/valemdb/pkg/errcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestConnectionError_Structure verifies error structure.
func TestConnectionError_Structure(t *testing.T) {
	originalErr := errors.New("connection refused")

	err := ConnectionError("localhost", 5432, "valem", "postgres",
		originalErr)

	require.NotNil(t, err)

	gnErr, ok := err.(*gn.Error)
	require.True(t, ok, "Error should be of type *gn.Error")

	assert.Equal(t, errcode.DBConnectionError, gnErr.Code)
	assert.NotEmpty(t, gnErr.Msg)
	assert.Len(t, gnErr.Vars, 4)
	assert.ErrorIs(t, gnErr.Err, originalErr)
}

// TestAllErrors_Codes verifies codes and wrapping.
func TestAllErrors_Codes(t *testing.T) {
	originalErr := errors.New("root cause")

	tests := []struct {
		name string
		err  error
		code gn.ErrorCode
		wrap bool
	}{
		{"sqlite", SQLiteConnectionError("x.db", originalErr),
			errcode.DBConnectionError, true},
		{"driver", UnknownDriverError("mysql"),
			errcode.DBConnectionError, false},
		{"gorm", GORMOpenError(originalErr),
			errcode.SchemaGORMConnectionError, true},
		{"not connected", NotConnectedError(),
			errcode.DBNotConnectedError, false},
		{"table check", TableCheckError(originalErr),
			errcode.DBTableCheckError, true},
		{"query tables", QueryTablesError(originalErr),
			errcode.DBQueryTablesError, true},
		{"drop", DropTableError("species", originalErr),
			errcode.DBDropTableError, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gnErr, ok := tt.err.(*gn.Error)
			require.True(t, ok)
			assert.Equal(t, tt.code, gnErr.Code)
			assert.NotEmpty(t, gnErr.Msg)
			if tt.wrap {
				assert.ErrorIs(t, gnErr.Err, originalErr)
			}
		})
	}
}
