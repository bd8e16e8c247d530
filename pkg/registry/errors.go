package registry

import (
	"errors"

	"github.com/gnames/gn"
	"github.com/gnames/valemdb/pkg/errcode"
)

// IsNotFound reports whether err means that a looked up row does not
// exist.
func IsNotFound(err error) bool {
	return hasCode(err, errcode.StoreNotFoundError)
}

// IsConflict reports whether err is a uniqueness violation such as an
// alias already taken by a species.
func IsConflict(err error) bool {
	return hasCode(err, errcode.StoreAliasConflictError) ||
		hasCode(err, errcode.StoreConflictError)
}

// IsDuplicateReaction reports whether an explicit reaction creation was
// refused because the reaction exists.
func IsDuplicateReaction(err error) bool {
	return hasCode(err, errcode.StoreDuplicateReactionError)
}

// IsProcessTypeNotFound reports whether a process type abbreviation is
// unknown.
func IsProcessTypeNotFound(err error) bool {
	return hasCode(err, errcode.StoreProcessTypeNotFoundError)
}

func hasCode(err error, code gn.ErrorCode) bool {
	var gnErr *gn.Error
	if errors.As(err, &gnErr) {
		return gnErr.Code == code
	}
	return false
}
