// Package appcore owns the application state handed to page loaders: an
// immutable render-pipeline snapshot that the CMS webhook can rebuild and
// swap without restarting the server.
package appcore

import (
	"errors"
	"fmt"
	"html/template"
	"sync/atomic"
	"time"

	"cmsblog/internal/cms"
	"cmsblog/internal/content"
)

var errPipelineUnavailable = errors.New("render pipeline unavailable")

// State is one build of the render pipeline. A snapshot never changes after
// construction; requests in flight keep the snapshot they started with.
type State struct {
	Content    *content.Service
	ChromaCSS  template.CSS
	Generation uint64
	BuiltAt    time.Time
}

// BuildStateFunc assembles a fresh pipeline snapshot. The generation number
// is unique per attempt; failed attempts leave gaps.
type BuildStateFunc func(generation uint64) (*State, error)

type Context struct {
	build      BuildStateFunc
	state      atomic.Pointer[State]
	generation atomic.Uint64
}

// NewContext builds the first snapshot eagerly so a misconfigured pipeline
// fails at startup instead of on the first request.
func NewContext(build BuildStateFunc) (*Context, error) {
	appCtx := &Context{build: build}
	if _, err := appCtx.Reinit(); err != nil {
		return nil, fmt.Errorf("initial pipeline build: %w", err)
	}

	return appCtx, nil
}

// State returns the snapshot currently being served.
func (c *Context) State() *State {
	return c.state.Load()
}

// Reinit builds a fresh snapshot and swaps it in atomically. On failure the
// previous snapshot keeps serving and the error is returned.
func (c *Context) Reinit() (*State, error) {
	generation := c.generation.Add(1)

	next, err := c.build(generation)
	if err != nil {
		return nil, fmt.Errorf("rebuild pipeline generation %d: %w", generation, err)
	}
	if next == nil {
		return nil, errPipelineUnavailable
	}

	c.state.Store(next)
	return next, nil
}

func IsNotFoundError(err error) bool {
	return errors.Is(err, cms.ErrNotFound)
}
