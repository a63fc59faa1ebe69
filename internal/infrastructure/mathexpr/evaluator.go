// Package mathexpr evaluates arithmetic expressions for the calculator tool.
package mathexpr

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"taskchat/internal/application/port/output"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/ast"
)

var _ output.ExpressionEvaluator = (*Evaluator)(nil)

var (
	ErrEmptyExpression = errors.New("empty expression")
	ErrNotANumber      = errors.New("expression did not produce a finite number")
)

const maxExpressionLen = 512

// Evaluator supports + - * / % and ^ (or **) for powers, parentheses, the
// constants pi and e, and the usual math functions. abs, ceil, floor, round,
// min and max come from the expression language itself. All arithmetic is
// float64, so large products lose precision instead of wrapping. Results
// that are not numbers, comparisons included, yield ErrNotANumber.
type Evaluator struct {
	env  map[string]any
	opts []expr.Option
}

func NewEvaluator() *Evaluator {
	env := map[string]any{
		"pi": math.Pi,
		"e":  math.E,
	}
	opts := []expr.Option{
		expr.Env(env),
		expr.Patch(floatLiterals{}),
		expr.Function("mod", func(params ...any) (any, error) {
			x, err := toFloat(params[0])
			if err != nil {
				return nil, err
			}
			y, err := toFloat(params[1])
			if err != nil {
				return nil, err
			}
			return math.Mod(x, y), nil
		}, new(func(float64, float64) float64)),
		expr.Operator("%", "mod"),
	}

	unary := map[string]func(float64) float64{
		"sqrt":  math.Sqrt,
		"cbrt":  math.Cbrt,
		"exp":   math.Exp,
		"log":   math.Log,
		"ln":    math.Log,
		"log10": math.Log10,
		"log2":  math.Log2,
		"sin":   math.Sin,
		"cos":   math.Cos,
		"tan":   math.Tan,
		"asin":  math.Asin,
		"acos":  math.Acos,
		"atan":  math.Atan,
		"sinh":  math.Sinh,
		"cosh":  math.Cosh,
		"tanh":  math.Tanh,
	}
	for name, fn := range unary {
		opts = append(opts, expr.Function(name, unaryFunc(name, fn)))
	}

	opts = append(opts, expr.Function("pow", func(params ...any) (any, error) {
		if len(params) != 2 {
			return nil, fmt.Errorf("pow expects 2 arguments, got %d", len(params))
		}
		x, err := toFloat(params[0])
		if err != nil {
			return nil, err
		}
		y, err := toFloat(params[1])
		if err != nil {
			return nil, err
		}
		return math.Pow(x, y), nil
	}))

	return &Evaluator{env: env, opts: opts}
}

// Evaluate returns the formatted numeric result of expression.
func (e *Evaluator) Evaluate(expression string) (string, error) {
	src := strings.TrimSpace(expression)
	if src == "" {
		return "", ErrEmptyExpression
	}
	if len(src) > maxExpressionLen {
		return "", fmt.Errorf("expression longer than %d characters", maxExpressionLen)
	}

	program, err := expr.Compile(src, e.opts...)
	if err != nil {
		return "", fmt.Errorf("compile: %w", err)
	}

	out, err := expr.Run(program, e.env)
	if err != nil {
		return "", fmt.Errorf("run: %w", err)
	}

	return formatResult(out)
}

// floatLiterals turns integer literals into floats before type checking.
type floatLiterals struct{}

func (floatLiterals) Visit(node *ast.Node) {
	if n, ok := (*node).(*ast.IntegerNode); ok {
		*node = &ast.FloatNode{Value: float64(n.Value)}
	}
}

func unaryFunc(name string, fn func(float64) float64) func(params ...any) (any, error) {
	return func(params ...any) (any, error) {
		if len(params) != 1 {
			return nil, fmt.Errorf("%s expects 1 argument, got %d", name, len(params))
		}
		x, err := toFloat(params[0])
		if err != nil {
			return nil, err
		}
		return fn(x), nil
	}
}

func toFloat(v any) (float64, error) {
	switch n := v.(type) {
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case float64:
		return n, nil
	default:
		return 0, fmt.Errorf("expected a number, got %T", v)
	}
}

func formatResult(v any) (string, error) {
	switch n := v.(type) {
	case int:
		return strconv.Itoa(n), nil
	case int64:
		return strconv.FormatInt(n, 10), nil
	case float64:
		return formatFloat(n)
	default:
		return "", fmt.Errorf("%w: got %T", ErrNotANumber, v)
	}
}

func formatFloat(f float64) (string, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return "", ErrNotANumber
	}
	if f == math.Trunc(f) && math.Abs(f) < 1e15 {
		return strconv.FormatInt(int64(f), 10), nil
	}
	// 14 significant digits hides binary noise such as 0.1+0.2.
	return strconv.FormatFloat(f, 'g', 14, 64), nil
}
