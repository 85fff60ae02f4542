package sweep

import (
	"errors"
	"fmt"
	"math"

	"github.com/npillmayer/linkage"
	"github.com/npillmayer/linkage/mech"
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'sweep'
func tracer() tracing.Trace {
	return tracing.Select("sweep")
}

var (
	// ErrNoSolver indicates a configuration without a position solver.
	ErrNoSolver = errors.New("trace configuration has no solver")
	// ErrNoJoints indicates an empty seed state.
	ErrNoJoints = errors.New("trace configuration has no joints")
	// ErrInvalidSeed indicates a seed coordinate containing NaN/Inf.
	ErrInvalidSeed = errors.New("seed position is not a finite coordinate")
	// ErrNoDrivers indicates an empty driver list.
	ErrNoDrivers = errors.New("trace configuration has no drivers")
	// ErrBadDriver indicates a driver joint index outside the joint range.
	ErrBadDriver = errors.New("driver joint outside joint range")
	// ErrMappingSize indicates a joint-name mapping not covering every joint.
	ErrMappingSize = errors.New("joint-name mapping does not match joint count")
	// ErrBadInterval indicates a sweep interval that cannot complete a revolution.
	ErrBadInterval = errors.New("sweep interval must be positive and divide 360")
	// ErrSolverContract indicates a solver returning a frame of the wrong size.
	ErrSolverContract = errors.New("solver violated its frame-size contract")
)

// DefaultInterval is the angular step per sweep sample, in degrees.
// Downstream consumers assume the resulting 120-samples-per-revolution
// resolution; change it only together with them.
const DefaultInterval = 3.0

// Solver resolves the joint positions of a mechanism for a given set of
// driver angles (degrees). The state argument seeds fixed joints and the
// link-length measurement and must not be mutated; implementations return
// a fresh frame. A geometrically infeasible configuration is reported as
// an error and is recoverable for the caller. *expr.System satisfies
// Solver.
type Solver interface {
	Solve(state []mech.Position, angles []float64) ([]mech.Position, error)
}

// Config assembles the inputs of a trace run.
type Config struct {
	Solver   Solver          // position solver, mandatory
	Start    []mech.Position // seed position per joint, defines the joint count
	Drivers  []int           // driver joint indices in sweep-precedence order
	Mapping  []string        // optional joint name per index, for Path labelling
	Interval float64         // absolute sweep step in degrees; 0 means DefaultInterval
}

// Tracer produces per-joint paths from a mechanism configuration. Create
// one with New; a Tracer is immutable and may be reused for several runs.
type Tracer struct {
	solver   Solver
	start    []mech.Position
	drivers  []int
	mapping  []string
	interval float64
}

// New validates a trace configuration. Any violation is a configuration
// error: it is returned immediately and no trace can be run.
func New(cfg Config) (*Tracer, error) {
	if cfg.Solver == nil {
		return nil, ErrNoSolver
	}
	if len(cfg.Start) == 0 {
		return nil, ErrNoJoints
	}
	for i, ps := range cfg.Start {
		if ps.IsNaN() {
			return nil, fmt.Errorf("%w: joint %d", ErrInvalidSeed, i)
		}
	}
	if len(cfg.Drivers) == 0 {
		return nil, ErrNoDrivers
	}
	for i, d := range cfg.Drivers {
		if d < 0 || d >= len(cfg.Start) {
			return nil, fmt.Errorf("%w: driver %d is joint %d of %d", ErrBadDriver, i, d, len(cfg.Start))
		}
	}
	if cfg.Mapping != nil && len(cfg.Mapping) != len(cfg.Start) {
		return nil, fmt.Errorf("%w: %d names for %d joints", ErrMappingSize, len(cfg.Mapping), len(cfg.Start))
	}
	interval := cfg.Interval
	if interval == 0 {
		interval = DefaultInterval
	}
	if interval < 0 || math.Mod(360, interval) != 0 {
		return nil, fmt.Errorf("%w: %g", ErrBadInterval, interval)
	}
	return &Tracer{
		solver:   cfg.Solver,
		start:    append([]mech.Position(nil), cfg.Start...),
		drivers:  append([]int(nil), cfg.Drivers...),
		mapping:  append([]string(nil), cfg.Mapping...),
		interval: interval,
	}, nil
}

// Trace sweeps every driver through a full revolution, forward then
// backward, and returns one sample sequence per joint. Sample k of every
// joint belongs to the same configuration; infeasible configurations are
// recorded as sentinel (NaN) pairs. See the package documentation for the
// sweep policy.
//
// Solver failures are absorbed into sentinel samples and never escape. A
// solver violating its contract (frame size != joint count) aborts the
// trace with an error and no partial path.
func (t *Tracer) Trace() (Path, error) {
	path := make(Path, len(t.start))
	for _, interval := range []float64{t.interval, -t.interval} {
		if err := t.phase(path, interval); err != nil {
			return nil, err
		}
	}
	tracer().Infof("traced %d joints, %d samples each", len(path), len(path[0]))
	return path, nil
}

// phase runs one sweep direction, appending its samples to path. Each
// phase starts from the seed state with every driver at zero.
func (t *Tracer) phase(path Path, interval float64) error {
	state := append([]mech.Position(nil), t.start...)
	angles := make([]float64, len(t.drivers))
	progress := make([]float64, len(t.drivers))
	dp := 0
	for dp < len(t.drivers) {
		frame, err := t.solver.Solve(state, angles)
		if err != nil {
			// One sentinel sample for every joint, then give up on this
			// driver: back off the infeasible angle and move on.
			tracer().Debugf("infeasible at angles %v: %v", angles, err)
			for i := range path {
				path[i] = append(path[i], linkage.NaNPair)
			}
			angles[dp] -= interval
			dp++
			continue
		}
		if len(frame) != len(path) {
			return fmt.Errorf("%w: %d positions for %d joints",
				ErrSolverContract, len(frame), len(path))
		}
		for i := range path {
			path[i] = append(path[i], frame[i].Pin)
		}
		state = frame
		angles[dp] = linkage.WrapDeg(angles[dp] + interval)
		progress[dp] += math.Abs(interval)
		if progress[dp] >= 360 {
			// Revolution complete. Undo the wrap so the settled driver
			// rests at its last feasible angle for the remaining solves.
			angles[dp] -= interval
			dp++
		}
	}
	return nil
}

// Names returns the joint name per path index, or nil if the tracer was
// configured without a mapping.
func (t *Tracer) Names() []string {
	if len(t.mapping) == 0 {
		return nil
	}
	return append([]string(nil), t.mapping...)
}
