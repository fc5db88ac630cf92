// Package analyse canonicalizes circuits, optionally routes them onto a device
// and reports their structural metrics.
package analyse

import (
	"errors"
	"fmt"
	"io"

	"github.com/rs/zerolog"

	"qanalyse/internal/arch"
	"qanalyse/internal/canon"
	"qanalyse/internal/circuit"
	"qanalyse/internal/device"
	"qanalyse/internal/route"
)

// ErrConflictingOptions is returned when both a canonicalizer config and a
// canonicalizer are supplied.
var ErrConflictingOptions = errors.New("analyse: give a canonicalizer config or a canonicalizer, not both")

type options struct {
	cfg           *canon.Config
	canonicalizer canon.Canonicalizer
	arch          *arch.Architecture
	router        *route.Router
	noRouting     bool
	log           zerolog.Logger
}

// Option configures an Analyser.
type Option func(*options)

// WithConfig canonicalizes with a compiler built from cfg.
func WithConfig(cfg canon.Config) Option {
	return func(o *options) { o.cfg = &cfg }
}

// WithCanonicalizer canonicalizes with k.
func WithCanonicalizer(k canon.Canonicalizer) Option {
	return func(o *options) { o.canonicalizer = k }
}

// WithArchitecture routes every analysis onto a unless AnalyseOn overrides it.
func WithArchitecture(a *arch.Architecture) Option {
	return func(o *options) { o.arch = a }
}

// WithRouter uses r instead of a default router.
func WithRouter(r *route.Router) Option {
	return func(o *options) { o.router = r }
}

// WithoutRouting disables routing even when an architecture is given.
func WithoutRouting() Option {
	return func(o *options) { o.noRouting = true }
}

// WithLogger sets the logger.
func WithLogger(l zerolog.Logger) Option {
	return func(o *options) { o.log = l }
}

// Analyser binds a canonicalizer, an optional default architecture and the
// router resolved at construction. It is immutable and safe for concurrent use.
type Analyser struct {
	canon  canon.Canonicalizer
	arch   *arch.Architecture
	router *route.Router
	log    zerolog.Logger
}

// New builds an Analyser. Without WithConfig or WithCanonicalizer the default
// canonicalizer configuration is used.
func New(opts ...Option) (*Analyser, error) {
	o := options{log: zerolog.Nop()}
	for _, opt := range opts {
		opt(&o)
	}
	if o.cfg != nil && o.canonicalizer != nil {
		return nil, ErrConflictingOptions
	}

	log := o.log.With().Str("component", "analyse").Logger()
	a := &Analyser{arch: o.arch, log: log}

	switch {
	case o.canonicalizer != nil:
		a.canon = o.canonicalizer
	case o.cfg != nil:
		a.canon = canon.New(*o.cfg, canon.WithLogger(o.log))
	default:
		a.canon = canon.New(canon.Default(), canon.WithLogger(o.log))
	}

	switch {
	case o.noRouting:
	case o.router != nil:
		a.router = o.router
	default:
		r, err := route.New(route.WithLogger(o.log))
		if err != nil && !errors.Is(err, device.ErrCapabilityMissing) {
			return nil, err
		}
		a.router = r
	}

	return a, nil
}

// Architecture returns the bound default architecture, or nil.
func (a *Analyser) Architecture() *arch.Architecture { return a.arch }

// CanRoute reports whether a router is available.
func (a *Analyser) CanRoute() bool { return a.router != nil }

// Canonical returns c compiled by the bound canonicalizer.
func (a *Analyser) Canonical(c *circuit.Circuit) (*circuit.Circuit, error) {
	return a.canon.Compile(c)
}

// Analyse reports on c, routed onto the bound architecture when there is one.
func (a *Analyser) Analyse(c *circuit.Circuit) (*Report, error) {
	return a.AnalyseOn(c, a.arch)
}

// AnalyseOn reports on c routed onto ar. A nil architecture, or a missing
// router, analyses the canonical circuit unrouted.
func (a *Analyser) AnalyseOn(c *circuit.Circuit, ar *arch.Architecture) (*Report, error) {
	compiled, err := a.Canonical(c)
	if err != nil {
		return nil, err
	}

	if ar != nil {
		if a.router == nil {
			a.log.Warn().Str("architecture", ar.Name()).Msg("no router available, analysing unrouted circuit")
		} else {
			routed, err := a.router.Route(compiled, ar)
			if err != nil {
				return nil, err
			}
			compiled = routed.Circuit
		}
	}

	r := Compute(compiled)
	a.log.Debug().
		Int("qubits", r.QubitCount).
		Int("depth", r.GateDepth).
		Int("gates", r.GateCount).
		Int("parameters", r.ParameterCount).
		Msg("analysed")
	return r, nil
}

// Route canonicalizes c and routes it onto ar.
func (a *Analyser) Route(c *circuit.Circuit, ar *arch.Architecture) (*route.Routed, error) {
	if a.router == nil {
		return nil, device.ErrCapabilityMissing
	}
	compiled, err := a.Canonical(c)
	if err != nil {
		return nil, err
	}
	return a.router.Route(compiled, ar)
}

// Info writes the verbose report of c to w.
func (a *Analyser) Info(w io.Writer, c *circuit.Circuit) error {
	r, err := a.Analyse(c)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprint(w, r.Info()); err != nil {
		return err
	}
	return nil
}
