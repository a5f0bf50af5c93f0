// Package session runs tree generations one at a time for an interactive
// caller. A new request supersedes the one in flight instead of queueing
// behind it, and a failed request leaves the last good result in place.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/scottkirkwood/arbor/fractals"
	"github.com/scottkirkwood/arbor/mesh"
	"github.com/scottkirkwood/arbor/rng"
	"github.com/scottkirkwood/arbor/tree"
)

// ErrSuperseded is returned to a request that a newer one replaced.
var ErrSuperseded = errors.New("superseded by a newer request")

// Request describes one generation.
type Request struct {
	// Recipe is fractals.Tree3D or fractals.Plant3D.
	Recipe  string
	Tree    fractals.TreeParams
	Options tree.Options

	PlantIterations int
	PlantScale      float32
}

type generateFunc func(ctx context.Context, req Request, leaf *mesh.Mesh, rnd *rng.Xorshift) (*tree.Result, error)

// Session owns the master random generator and the current result. It is
// safe for concurrent use.
type Session struct {
	log  *slog.Logger
	leaf *mesh.Mesh
	gen  generateFunc

	mu      sync.Mutex
	master  *rng.Xorshift
	seq     uint64
	cancel  context.CancelFunc
	current *tree.Result
}

// New starts a session. Every request draws its own generator from a
// master seeded with seed, so a fixed seed replays the same sequence of
// trees. leaf is shared read-only by all requests.
func New(seed uint64, leaf *mesh.Mesh, log *slog.Logger) *Session {
	return &Session{
		log:    log,
		leaf:   leaf,
		gen:    generate,
		master: rng.New(seed),
	}
}

func generate(ctx context.Context, req Request, leaf *mesh.Mesh, rnd *rng.Xorshift) (*tree.Result, error) {
	switch req.Recipe {
	case fractals.Tree3D:
		return tree.Generate(ctx, req.Tree, leaf, rnd, req.Options)
	case fractals.Plant3D:
		return tree.GeneratePlant(ctx, req.PlantIterations, req.PlantScale, rnd)
	}
	return nil, fmt.Errorf("%w: %q", fractals.ErrUnknownRecipe, req.Recipe)
}

// Generate runs req and makes its result current. A call made while
// another is running cancels it; the earlier caller gets ErrSuperseded.
// On any other error the previous result stays current.
func (s *Session) Generate(ctx context.Context, req Request) (*tree.Result, error) {
	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	s.seq++
	id := s.seq
	s.cancel = cancel
	rnd := rng.New(s.master.Uint64())
	s.mu.Unlock()

	log := s.log.With(slog.Uint64("request", id), slog.String("recipe", req.Recipe))
	log.Debug("generating")
	start := time.Now()
	res, err := s.gen(ctx, req, s.leaf, rnd)

	s.mu.Lock()
	defer s.mu.Unlock()
	if id != s.seq {
		log.Debug("superseded")
		return nil, ErrSuperseded
	}
	s.cancel = nil
	if err != nil {
		log.Warn("generation failed, keeping previous result", slog.Any("err", err))
		return nil, err
	}
	s.current = res
	log.Info("Done!",
		slog.Int("branches", res.BranchCount),
		slog.Int("branch_triangles", res.Branches.TriangleCount()),
		slog.Int("leaves", res.LeafCount),
		slog.Int("leaf_triangles", res.Leaves.TriangleCount()),
		slog.Duration("took", time.Since(start)))
	return res, nil
}

// Current returns the last successful result, or nil.
func (s *Session) Current() *tree.Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Cancel stops the request in flight, if any. Its caller gets
// ErrSuperseded.
func (s *Session) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
		s.seq++
	}
}
