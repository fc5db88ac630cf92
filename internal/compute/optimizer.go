package compute

import (
	"context"
	"math"
	"slices"

	"github.com/rs/zerolog"
	"gonum.org/v1/gonum/diff/fd"
	"gonum.org/v1/gonum/optimize"
)

// Objective is the function an Optimizer minimizes.
type Objective func(x []float64) (float64, error)

// Optimum is the best point an Optimizer found.
type Optimum struct {
	X         []float64
	F         float64
	Gradients [][]float64
	Status    string
}

// Optimizer minimizes an objective starting from x0.
type Optimizer interface {
	Minimize(ctx context.Context, f Objective, x0 []float64) (*Optimum, error)
}

// converged lists the gonum statuses accepted without trying the fallback method.
var converged = map[optimize.Status]bool{
	optimize.Success:             true,
	optimize.GradientThreshold:   true,
	optimize.FunctionConvergence: true,
	optimize.MethodConverge:      true,
}

// GonumOptimizer minimizes with BFGS over central finite-difference gradients
// and retries with Nelder-Mead when BFGS fails to converge.
type GonumOptimizer struct {
	step      float64
	maxIter   int
	threshold float64
	log       zerolog.Logger
}

// OptimizerOption configures a GonumOptimizer.
type OptimizerOption func(*GonumOptimizer)

// WithStep sets the finite-difference step.
func WithStep(h float64) OptimizerOption {
	return func(o *GonumOptimizer) { o.step = h }
}

// WithMaxIterations caps the number of major iterations per method.
func WithMaxIterations(n int) OptimizerOption {
	return func(o *GonumOptimizer) { o.maxIter = n }
}

// WithGradientThreshold stops once the gradient infinity norm drops below t.
func WithGradientThreshold(t float64) OptimizerOption {
	return func(o *GonumOptimizer) { o.threshold = t }
}

// WithOptimizerLogger sets the logger.
func WithOptimizerLogger(l zerolog.Logger) OptimizerOption {
	return func(o *GonumOptimizer) { o.log = l }
}

func NewGonumOptimizer(opts ...OptimizerOption) *GonumOptimizer {
	o := &GonumOptimizer{step: 1e-6, log: zerolog.Nop()}
	for _, opt := range opts {
		opt(o)
	}
	o.log = o.log.With().Str("component", "compute").Logger()
	return o
}

func (o *GonumOptimizer) Minimize(ctx context.Context, f Objective, x0 []float64) (*Optimum, error) {
	// A failed evaluation poisons the run; the recorder reports it on the next operation.
	var evalErr error
	fn := func(x []float64) float64 {
		if evalErr != nil {
			return math.NaN()
		}
		v, err := f(x)
		if err != nil {
			evalErr = err
			return math.NaN()
		}
		return v
	}
	grad := func(dst, x []float64) {
		fd.Gradient(dst, fn, x, &fd.Settings{Formula: fd.Central, Step: o.step})
	}

	if len(x0) == 0 {
		v, err := f(nil)
		if err != nil {
			return nil, err
		}
		return &Optimum{X: []float64{}, F: v, Gradients: [][]float64{}, Status: optimize.Success.String()}, nil
	}

	problem := optimize.Problem{Func: fn, Grad: grad}

	var best *Optimum
	for _, method := range []optimize.Method{&optimize.BFGS{}, &optimize.NelderMead{}} {
		rec := &gradientRecorder{ctx: ctx, grad: grad, failed: func() error { return evalErr }}
		settings := &optimize.Settings{
			MajorIterations:   o.maxIter,
			GradientThreshold: o.threshold,
			Recorder:          rec,
		}

		result, err := optimize.Minimize(problem, slices.Clone(x0), settings, method)
		if evalErr != nil {
			return nil, evalErr
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		if err != nil {
			o.log.Debug().Err(err).Msgf("%T failed", method)
			if result == nil {
				continue
			}
		}

		o.log.Debug().
			Float64("energy", result.F).
			Int("iterations", result.MajorIterations).
			Str("status", result.Status.String()).
			Msgf("%T finished", method)

		opt := &Optimum{
			X:         slices.Clone(result.X),
			F:         result.F,
			Gradients: rec.history,
			Status:    result.Status.String(),
		}
		if best == nil || opt.F < best.F {
			best = opt
		}
		if err == nil && converged[result.Status] {
			break
		}
	}

	if best == nil {
		x := slices.Clone(x0)
		v, err := f(x)
		if err != nil {
			return nil, err
		}
		best = &Optimum{X: x, F: v, Gradients: [][]float64{}, Status: optimize.Failure.String()}
	}
	return best, nil
}

// gradientRecorder keeps the gradient of every major iteration. Methods that
// do not evaluate gradients get a finite-difference one at the iterate.
type gradientRecorder struct {
	ctx     context.Context
	grad    func(dst, x []float64)
	failed  func() error
	history [][]float64
}

func (r *gradientRecorder) Init() error {
	r.history = [][]float64{}
	return nil
}

func (r *gradientRecorder) Record(loc *optimize.Location, op optimize.Operation, _ *optimize.Stats) error {
	if err := r.ctx.Err(); err != nil {
		return err
	}
	if err := r.failed(); err != nil {
		return err
	}
	if op&optimize.MajorIteration == 0 {
		return nil
	}
	g := make([]float64, len(loc.X))
	if loc.Gradient != nil {
		copy(g, loc.Gradient)
	} else {
		r.grad(g, loc.X)
	}
	r.history = append(r.history, g)
	return nil
}
