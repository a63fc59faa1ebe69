package output

type ExpressionEvaluator interface {
	Evaluate(expression string) (string, error)
}
