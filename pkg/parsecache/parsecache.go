// Package parsecache memoizes results of a valem.Parser.
//
// Parsed structures are shared between callers and must be treated as
// read-only. Parse errors are never cached.
package parsecache

import (
	"log/slog"
	"strconv"
	"time"

	"github.com/gnames/valemdb/pkg/valem"
	gocache "github.com/patrickmn/go-cache"
)

const (
	DefaultExpiration      = 30 * time.Minute
	DefaultCleanupInterval = 60 * time.Minute
)

type cached struct {
	parser valem.Parser
	cache  *gocache.Cache
}

// New wraps p with an in-memory cache. Entries live for ttl, expired
// entries are purged every cleanup interval.
func New(p valem.Parser, ttl, cleanup time.Duration) valem.Parser {
	if ttl <= 0 {
		ttl = DefaultExpiration
	}
	if cleanup <= 0 {
		cleanup = DefaultCleanupInterval
	}
	return &cached{
		parser: p,
		cache:  gocache.New(ttl, cleanup),
	}
}

func (c *cached) Formula(text string) (*valem.Formula, error) {
	return lookup(c, "f:"+text, func() (*valem.Formula, error) {
		return c.parser.Formula(text)
	})
}

func (c *cached) State(text string) (*valem.State, error) {
	return lookup(c, "s:"+text, func() (*valem.State, error) {
		return c.parser.State(text)
	})
}

func (c *cached) StatefulSpecies(text string) (*valem.StatefulSpecies, error) {
	return lookup(c, "ss:"+text, func() (*valem.StatefulSpecies, error) {
		return c.parser.StatefulSpecies(text)
	})
}

func (c *cached) Reaction(text string, strict bool) (*valem.Reaction, error) {
	key := "r:" + strconv.FormatBool(strict) + ":" + text
	return lookup(c, key, func() (*valem.Reaction, error) {
		return c.parser.Reaction(text, strict)
	})
}

func lookup[V any](c *cached, key string, parse func() (V, error)) (V, error) {
	if val, found := c.cache.Get(key); found {
		if v, ok := val.(V); ok {
			return v, nil
		}
		slog.Error("wrong type assertion when getting value", "key", key)
	}
	res, err := parse()
	if err != nil {
		return res, err
	}
	c.cache.SetDefault(key, res)
	return res, nil
}
