// Package compute minimizes the expectation value of a Hamiltonian over the
// variables of a parametrized circuit.
//
// The package does not simulate anything itself. An Estimator supplies
// expectation values and an Optimizer drives the search; GonumOptimizer is the
// default optimizer.
package compute

import (
	"context"
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"qanalyse/internal/circuit"
)

var (
	// ErrSizeMismatch is returned by ComputeMany when the input lists cannot be
	// paired up after broadcasting.
	ErrSizeMismatch = errors.New("compute: input lists have different sizes")

	// ErrMissingValue is returned when explicit initial values omit a circuit variable.
	ErrMissingValue = errors.New("compute: no initial value for variable")
)

// Hamiltonian is opaque here; only the Estimator interprets it.
type Hamiltonian any

// Estimator evaluates the expectation value of h in the state prepared by c
// with its variables bound to values.
type Estimator interface {
	Expectation(ctx context.Context, h Hamiltonian, c *circuit.Circuit, values map[string]float64) (float64, error)
}

// EstimatorFunc adapts a function to Estimator.
type EstimatorFunc func(ctx context.Context, h Hamiltonian, c *circuit.Circuit, values map[string]float64) (float64, error)

func (f EstimatorFunc) Expectation(ctx context.Context, h Hamiltonian, c *circuit.Circuit, values map[string]float64) (float64, error) {
	return f(ctx, h, c, values)
}

// Initial holds the starting point of an optimization: either one value for
// every variable or explicit per-variable values. The zero value starts every
// variable at 0.
type Initial struct {
	value  float64
	values map[string]float64
}

// Broadcast starts every variable at v.
func Broadcast(v float64) Initial { return Initial{value: v} }

// Values starts each variable at the given value. Every circuit variable must
// be present; extra names are ignored.
func Values(m map[string]float64) Initial {
	cp := make(map[string]float64, len(m))
	for k, v := range m {
		cp[k] = v
	}
	return Initial{values: cp}
}

func (in Initial) vector(vars []string) ([]float64, error) {
	x := make([]float64, len(vars))
	for i, v := range vars {
		if in.values == nil {
			x[i] = in.value
			continue
		}
		val, ok := in.values[v]
		if !ok {
			return nil, fmt.Errorf("%w %q", ErrMissingValue, v)
		}
		x[i] = val
	}
	return x, nil
}

// Result is the outcome of one minimization.
type Result struct {
	Energy    float64            `json:"energy" msgpack:"energy"`
	Variables map[string]float64 `json:"variables" msgpack:"variables"`
	// Gradients holds the gradient at every major iteration, indexed like the
	// circuit's variables.
	Gradients [][]float64 `json:"gradients" msgpack:"gradients"`
	Status    string      `json:"status" msgpack:"status"`
}

func assign(vars []string, x []float64) map[string]float64 {
	m := make(map[string]float64, len(vars))
	for i, v := range vars {
		m[v] = x[i]
	}
	return m
}

// Compute minimizes the expectation value of h over the variables of c. A nil
// optimizer uses NewGonumOptimizer().
func Compute(ctx context.Context, h Hamiltonian, c *circuit.Circuit, est Estimator, opt Optimizer, init Initial) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	vars := c.Variables()
	x0, err := init.vector(vars)
	if err != nil {
		return nil, err
	}
	if opt == nil {
		opt = NewGonumOptimizer()
	}

	objective := func(x []float64) (float64, error) {
		return est.Expectation(ctx, h, c, assign(vars, x))
	}
	o, err := opt.Minimize(ctx, objective, x0)
	if err != nil {
		return nil, err
	}
	return &Result{
		Energy:    o.F,
		Variables: assign(vars, o.X),
		Gradients: o.Gradients,
		Status:    o.Status,
	}, nil
}

// ComputeMany runs Compute for every Hamiltonian in order. A single circuit or
// a single initial value is used for every Hamiltonian; otherwise the lists
// must all have the same length. Nothing is computed when they do not.
func ComputeMany(ctx context.Context, hs []Hamiltonian, cs []*circuit.Circuit, est Estimator, opt Optimizer, inits []Initial) ([]*Result, error) {
	n := len(hs)
	if len(cs) == 1 {
		cs = broadcast(cs[0], n)
	}
	switch len(inits) {
	case 0:
		inits = broadcast(Initial{}, n)
	case 1:
		inits = broadcast(inits[0], n)
	}
	if len(cs) != n || len(inits) != n {
		return nil, fmt.Errorf("%w: %d hamiltonians, %d circuits, %d initial values", ErrSizeMismatch, n, len(cs), len(inits))
	}

	results := make([]*Result, 0, n)
	for i := range hs {
		r, err := Compute(ctx, hs[i], cs[i], est, opt, inits[i])
		if err != nil {
			return nil, fmt.Errorf("compute %d: %w", i, err)
		}
		results = append(results, r)
	}
	return results, nil
}

func broadcast[T any](v T, n int) []T {
	out := make([]T, n)
	for i := range out {
		out[i] = v
	}
	return out
}

// MaxGradients returns the largest absolute gradient component of every
// recorded iteration.
func MaxGradients(r *Result) []float64 {
	out := make([]float64, 0, len(r.Gradients))
	for _, g := range r.Gradients {
		if len(g) == 0 {
			out = append(out, 0)
			continue
		}
		out = append(out, floats.Norm(g, math.Inf(1)))
	}
	return out
}
