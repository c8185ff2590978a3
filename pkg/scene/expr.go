package scene

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/curveplot/pkg/errors"
)

// Expr is the source of a numeric expression. Scene files may give it as a
// string or a bare number.
type Expr string

// UnmarshalYAML accepts any scalar.
func (e *Expr) UnmarshalYAML(n *yaml.Node) error {
	if n.Kind != yaml.ScalarNode {
		return errors.New(errors.ErrCodeInvalidFormat, "line %d: expression must be a scalar", n.Line)
	}
	*e = Expr(n.Value)
	return nil
}

// UnmarshalTOML accepts strings, integers and floats.
func (e *Expr) UnmarshalTOML(v any) error {
	switch x := v.(type) {
	case string:
		*e = Expr(x)
	case int64:
		*e = Expr(strconv.FormatInt(x, 10))
	case float64:
		*e = Expr(strconv.FormatFloat(x, 'g', -1, 64))
	default:
		return errors.New(errors.ErrCodeInvalidFormat, "expression must be a string or number, got %T", v)
	}
	return nil
}

// UnmarshalJSON accepts strings and numbers.
func (e *Expr) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*e = Expr(s)
		return nil
	}
	if _, err := strconv.ParseFloat(string(b), 64); err != nil {
		return errors.New(errors.ErrCodeInvalidFormat, "expression must be a string or number, got %s", b)
	}
	*e = Expr(b)
	return nil
}

// env is the evaluation environment. It is passed by value so concurrent
// evaluations never share state.
type env struct {
	T     float64 `expr:"t"`
	Theta float64 `expr:"theta"`
	X     float64 `expr:"x"`
	Y     float64 `expr:"y"`
	P     float64 `expr:"p"`
	Pi    float64 `expr:"pi"`
	E     float64 `expr:"e"`

	Sin   func(float64) float64          `expr:"sin"`
	Cos   func(float64) float64          `expr:"cos"`
	Tan   func(float64) float64          `expr:"tan"`
	Asin  func(float64) float64          `expr:"asin"`
	Acos  func(float64) float64          `expr:"acos"`
	Atan  func(float64) float64          `expr:"atan"`
	Atan2 func(float64, float64) float64 `expr:"atan2"`
	Sinh  func(float64) float64          `expr:"sinh"`
	Cosh  func(float64) float64          `expr:"cosh"`
	Tanh  func(float64) float64          `expr:"tanh"`
	Exp   func(float64) float64          `expr:"exp"`
	Log   func(float64) float64          `expr:"log"`
	Log10 func(float64) float64          `expr:"log10"`
	Sqrt  func(float64) float64          `expr:"sqrt"`
	Cbrt  func(float64) float64          `expr:"cbrt"`
	Pow   func(float64, float64) float64 `expr:"pow"`
	Hypot func(float64, float64) float64 `expr:"hypot"`
	Mod   func(float64, float64) float64 `expr:"mod"`
	Sign  func(float64) float64          `expr:"sign"`
}

var baseEnv = env{
	Pi:    math.Pi,
	E:     math.E,
	Sin:   math.Sin,
	Cos:   math.Cos,
	Tan:   math.Tan,
	Asin:  math.Asin,
	Acos:  math.Acos,
	Atan:  math.Atan,
	Atan2: math.Atan2,
	Sinh:  math.Sinh,
	Cosh:  math.Cosh,
	Tanh:  math.Tanh,
	Exp:   math.Exp,
	Log:   math.Log,
	Log10: math.Log10,
	Sqrt:  math.Sqrt,
	Cbrt:  math.Cbrt,
	Pow:   math.Pow,
	Hypot: math.Hypot,
	Mod:   math.Mod,
	Sign:  sign,
}

func sign(v float64) float64 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return v
}

// program is a compiled expression.
type program struct {
	src  string
	prog *vm.Program
}

func compile(field string, e Expr) (*program, error) {
	src := strings.TrimSpace(string(e))
	if src == "" {
		return nil, errors.Config("%s: missing expression", field)
	}
	p, err := expr.Compile(src, expr.Env(env{}), expr.AsFloat64())
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "%s: compile %q", field, src)
	}
	return &program{src: src, prog: p}, nil
}

func (p *program) eval(en env) float64 {
	out, err := expr.Run(p.prog, en)
	if err != nil {
		return math.NaN()
	}
	f, ok := out.(float64)
	if !ok {
		return math.NaN()
	}
	return f
}

// at evaluates with only the animation parameter bound.
func (p *program) at(param float64) float64 {
	en := baseEnv
	en.P = param
	return p.eval(en)
}

// Eval compiles and evaluates a standalone expression of p.
func Eval(e Expr, p float64) (float64, error) {
	prog, err := compile("expression", e)
	if err != nil {
		return 0, err
	}
	return prog.at(p), nil
}
