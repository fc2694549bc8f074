// Package session owns the mutable geometric payload of a working session:
// an immutable original mesh, the current mesh produced by transforms, and
// the store that keys states by session ID with expiry and capacity limits.
package session

import (
	"sync"
	"time"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/alecKarfonta/electroplating/pkg/analysis"
	"github.com/alecKarfonta/electroplating/pkg/errdefs"
	"github.com/alecKarfonta/electroplating/pkg/stl"
)

// ScaleFactor is a scale request: either uniform or per-axis. The zero
// value is invalid; construct with Uniform or PerAxis.
type ScaleFactor struct {
	factors r3.Vec
}

// Uniform builds a scale factor applied to all three axes.
func Uniform(f float64) ScaleFactor {
	return ScaleFactor{factors: r3.Vec{X: f, Y: f, Z: f}}
}

// PerAxis builds independent per-axis scale factors.
func PerAxis(x, y, z float64) ScaleFactor {
	return ScaleFactor{factors: r3.Vec{X: x, Y: y, Z: z}}
}

// Vec returns the normalized per-axis factors.
func (s ScaleFactor) Vec() r3.Vec {
	return s.factors
}

func (s ScaleFactor) validate() error {
	if s.factors.X <= 0 || s.factors.Y <= 0 || s.factors.Z <= 0 {
		return errdefs.InvalidParameter("scale_factor",
			"all components must be greater than zero, got (%g, %g, %g)",
			s.factors.X, s.factors.Y, s.factors.Z)
	}
	return nil
}

// State is the mesh payload for one working session. The original mesh is
// a write-once snapshot taken at creation; current is what transforms
// mutate and what all statistics are derived from. A single RWMutex keeps
// readers from observing a half-applied transform.
type State struct {
	mu sync.RWMutex

	name            string
	original        *stl.Mesh
	current         *stl.Mesh
	cumulativeScale r3.Vec

	created      time.Time
	lastAccessed time.Time
	closed       bool
}

// NewState creates a session state around a parsed mesh. The mesh is
// snapshotted; the caller must not retain and mutate it.
func NewState(m *stl.Mesh, name string) *State {
	now := time.Now()
	return &State{
		name:            name,
		original:        m.Clone(),
		current:         m,
		cumulativeScale: r3.Vec{X: 1, Y: 1, Z: 1},
		created:         now,
		lastAccessed:    now,
	}
}

// Name returns the label the state was created with (typically the
// uploaded filename).
func (s *State) Name() string {
	return s.name
}

// Scale multiplies the current mesh's vertices component-wise. Repeated
// calls compound multiplicatively against the current mesh; the cumulative
// factor relative to the original is tracked for auditability. Components
// must all be positive.
func (s *State) Scale(factor ScaleFactor) error {
	if err := factor.validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return errdefs.NotFound("session", s.name)
	}

	f := factor.Vec()
	s.current.Scale(f)
	s.cumulativeScale = r3.Vec{
		X: s.cumulativeScale.X * f.X,
		Y: s.cumulativeScale.Y * f.Y,
		Z: s.cumulativeScale.Z * f.Z,
	}
	return nil
}

// Translate adds the offset to every vertex of the current mesh.
func (s *State) Translate(offset r3.Vec) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return errdefs.NotFound("session", s.name)
	}

	s.current.Translate(offset)
	return nil
}

// Reset restores the current mesh to the original snapshot and clears the
// recorded cumulative scale.
func (s *State) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return errdefs.NotFound("session", s.name)
	}

	s.current = s.original.Clone()
	s.cumulativeScale = r3.Vec{X: 1, Y: 1, Z: 1}
	return nil
}

// CumulativeScale reports the component-wise product of all scale factors
// applied since creation or the last reset.
func (s *State) CumulativeScale() r3.Vec {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cumulativeScale
}

// Statistics computes fresh statistics from the current mesh. Like the
// write operations it fails with NotFoundError once the state is closed,
// so a caller racing the expiry sweep gets an error instead of statistics
// for an empty mesh.
func (s *State) Statistics() (*analysis.MeshStatistics, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return nil, errdefs.NotFound("session", s.name)
	}
	return analysis.Analyze(s.current), nil
}

// Validate runs the structural validator against the current mesh.
func (s *State) Validate() (*analysis.ValidationResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return nil, errdefs.NotFound("session", s.name)
	}
	return analysis.Validate(s.current), nil
}

// Snapshot returns a deep copy of the current mesh, safe to use without
// holding the session lock.
func (s *State) Snapshot() (*stl.Mesh, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return nil, errdefs.NotFound("session", s.name)
	}
	return s.current.Clone(), nil
}

// TriangleCount reports the triangle count of the current mesh.
func (s *State) TriangleCount() (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return 0, errdefs.NotFound("session", s.name)
	}
	return s.current.TriangleCount(), nil
}

// touch bumps the last-access time.
func (s *State) touch(now time.Time) {
	s.mu.Lock()
	s.lastAccessed = now
	s.mu.Unlock()
}

// expired reports whether the state has been idle past the timeout.
func (s *State) expired(now time.Time, timeout time.Duration) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return now.Sub(s.lastAccessed) > timeout
}

// close marks the state unavailable. It blocks until all in-flight
// operations on the state have released the lock, so a sweep never frees a
// mesh out from under a reader.
func (s *State) close() {
	s.mu.Lock()
	s.closed = true
	s.original = nil
	s.current = stl.NewMesh(s.name)
	s.mu.Unlock()
}
