package circuit

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"slices"
	"strconv"
	"strings"
)

// ErrInvalidParameter is returned when a parameter expression cannot be parsed.
var ErrInvalidParameter = errors.New("circuit: invalid parameter")

// ParamForm tags the shape held by a Parameter.
type ParamForm int

const (
	ParamNone ParamForm = iota
	ParamFixed
	ParamNamed
	ParamExpression
)

func (f ParamForm) String() string {
	switch f {
	case ParamNone:
		return "none"
	case ParamFixed:
		return "fixed"
	case ParamNamed:
		return "named"
	case ParamExpression:
		return "expression"
	}
	return fmt.Sprintf("ParamForm(%d)", int(f))
}

// Parameter is the angle of a rotation gate: a fixed value in radians, a named
// variable bound later, or an expression over one or more variables.
type Parameter struct {
	Form  ParamForm
	Value float64  // ParamFixed, radians
	Name  string   // ParamNamed
	Free  []string // ParamExpression, sorted and deduplicated
	Text  string   // ParamExpression, display form
}

// Fixed returns a numeric parameter in radians.
func Fixed(v float64) Parameter {
	return Parameter{Form: ParamFixed, Value: v}
}

// Named returns a symbolic parameter bound to variable id.
func Named(id string) Parameter {
	return Parameter{Form: ParamNamed, Name: id}
}

// Expression returns a composite parameter over the given free variables.
func Expression(text string, free ...string) Parameter {
	vars := slices.Clone(free)
	slices.Sort(vars)
	return Parameter{Form: ParamExpression, Text: text, Free: slices.Compact(vars)}
}

// Variables lists the variable identifiers the parameter depends on.
func (p Parameter) Variables() []string {
	switch p.Form {
	case ParamNamed:
		return []string{p.Name}
	case ParamExpression:
		return slices.Clone(p.Free)
	}
	return nil
}

func (p Parameter) clone() Parameter {
	p.Free = slices.Clone(p.Free)
	return p
}

func (p Parameter) String() string {
	switch p.Form {
	case ParamFixed:
		return formatParam(p.Value)
	case ParamNamed:
		return p.Name
	case ParamExpression:
		return p.Text
	}
	return ""
}

// Scale multiplies a parameter by k. Symbolic parameters become expressions over
// the same variables.
func Scale(p Parameter, k float64) Parameter {
	if k == 1 {
		return p
	}
	switch p.Form {
	case ParamFixed:
		return Fixed(p.Value * k)
	case ParamNamed:
		return Expression(scaledText(k, p.Name), p.Name)
	case ParamExpression:
		return Expression(scaledText(k, "("+p.Text+")"), p.Free...)
	}
	return p
}

func scaledText(k float64, term string) string {
	if k == -1 {
		return "-" + term
	}
	return strconv.FormatFloat(k, 'g', -1, 64) + "*" + term
}

// piExprRegex matches expressions like: pi, 2pi, 2*pi, pi/2, 3pi/4, 3*pi/4, -pi, -pi/2, -3*pi/4
var piExprRegex = regexp.MustCompile(`^(-?)(\d*\.?\d*)\s*\*?\s*pi(?:\s*/\s*(\d+\.?\d*))?$`)

// identRegex finds variable names that are not part of a numeric literal.
var identRegex = regexp.MustCompile(`(?:^|[^A-Za-z0-9_.])([A-Za-z_][A-Za-z0-9_]*)`)

var plainIdentRegex = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// parseParamExpr parses a single numeric expression, supporting plain numbers and pi expressions.
// Returns the parsed float64 value and true on success, or 0 and false on failure.
//
// Supported formats:
//   - Plain numbers: "1.5707", "3.14", "-0.5"
//   - Pi constant: "pi"
//   - Pi fractions: "pi/2", "pi/4", "pi/3"
//   - Coefficients: "2pi", "2*pi", "3pi/4", "3*pi/4"
//   - Negative: "-pi", "-pi/2", "-3*pi/4"
func parseParamExpr(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}

	// Try plain number first
	if val, err := strconv.ParseFloat(s, 64); err == nil {
		return val, true
	}

	// Try pi expression
	s = strings.ToLower(s)
	if matches := piExprRegex.FindStringSubmatch(s); matches != nil {
		negative := matches[1] == "-"
		coeffStr := matches[2]
		denomStr := matches[3]

		coeff := 1.0
		if coeffStr != "" {
			var err error
			coeff, err = strconv.ParseFloat(coeffStr, 64)
			if err != nil {
				return 0, false
			}
		}

		result := coeff * math.Pi

		if denomStr != "" {
			denom, err := strconv.ParseFloat(denomStr, 64)
			if err != nil || denom == 0 {
				return 0, false
			}
			result /= denom
		}

		if negative {
			result = -result
		}
		return result, true
	}

	return 0, false
}

// ParseParameter reads a parameter as written in QASM: a number or pi expression
// gives a fixed value, a bare identifier a named variable, and anything else that
// mentions identifiers an expression over them.
func ParseParameter(s string) (Parameter, error) {
	s = strings.TrimSpace(s)
	if v, ok := parseParamExpr(s); ok {
		return Fixed(v), nil
	}
	if plainIdentRegex.MatchString(s) && !strings.EqualFold(s, "pi") {
		return Named(s), nil
	}
	var free []string
	for _, m := range identRegex.FindAllStringSubmatch(s, -1) {
		if strings.EqualFold(m[1], "pi") {
			continue
		}
		free = append(free, m[1])
	}
	if len(free) == 0 {
		return Parameter{}, fmt.Errorf("%w: %q", ErrInvalidParameter, s)
	}
	return Expression(s, free...), nil
}

// formatParam formats a float64 parameter value, using pi notation when possible.
// Recognizes common pi fractions: pi, pi/2, pi/4, pi/3, pi/6, pi/8, 2pi, 3pi/4, etc.
func formatParam(val float64) string {
	type piForm struct {
		value   float64
		display string
	}
	piForms := []piForm{
		{2 * math.Pi, "2*pi"},
		{math.Pi, "pi"},
		{math.Pi / 2, "pi/2"},
		{math.Pi / 3, "pi/3"},
		{math.Pi / 4, "pi/4"},
		{math.Pi / 6, "pi/6"},
		{math.Pi / 8, "pi/8"},
		{3 * math.Pi / 4, "3*pi/4"},
		{3 * math.Pi / 2, "3*pi/2"},
		{2 * math.Pi / 3, "2*pi/3"},
	}

	for _, pf := range piForms {
		if math.Abs(val-pf.value) < 1e-10 {
			return pf.display
		}
		if math.Abs(val+pf.value) < 1e-10 {
			return "-" + pf.display
		}
	}

	return strconv.FormatFloat(val, 'g', -1, 64)
}
