package evaluator

import (
	"math"

	"github.com/funvibe/gl/internal/ast"
)

func (v *evalVisitor) VisitOperateExpression(node *ast.OperateExpression) Object {
	left := v.eval(node.Left)
	if isError(left) {
		return left
	}
	right := v.eval(node.Right)
	if isError(right) {
		return right
	}
	return evalArithmetic(node.Operator, left, right)
}

func (v *evalVisitor) VisitCompareExpression(node *ast.CompareExpression) Object {
	left := v.eval(node.Left)
	if isError(left) {
		return left
	}
	right := v.eval(node.Right)
	if isError(right) {
		return right
	}
	return evalComparison(node.Operator, left, right)
}

func evalArithmetic(op string, left, right Object) Object {
	if op == "+" {
		ls, lok := left.(*String)
		rs, rok := right.(*String)
		if lok || rok {
			l, r := left.Inspect(), right.Inspect()
			if lok {
				l = ls.Value
			}
			if rok {
				r = rs.Value
			}
			return &String{Value: l + r}
		}
	}

	li, lInt := left.(*Integer)
	ri, rInt := right.(*Integer)
	if lInt && rInt {
		return evalIntegerArithmetic(op, li.Value, ri.Value)
	}

	lf, lok := toFloat(left)
	rf, rok := toFloat(right)
	if !lok || !rok {
		return typeError("unsupported operand types for %s: %s and %s", op, TypeName(left), TypeName(right))
	}
	return evalFloatArithmetic(op, lf, rf)
}

// evalIntegerArithmetic keeps results exact while they fit in an int64 and
// falls back to floating point otherwise.
func evalIntegerArithmetic(op string, a, b int64) Object {
	switch op {
	case "+":
		c := a + b
		if (c > a) == (b > 0) {
			return &Integer{Value: c}
		}
	case "-":
		c := a - b
		if (c < a) == (b > 0) {
			return &Integer{Value: c}
		}
	case "*":
		if a == 0 || b == 0 {
			return &Integer{Value: 0}
		}
		c := a * b
		if c/b == a && !(a == -1 && b == math.MinInt64) && !(b == -1 && a == math.MinInt64) {
			return &Integer{Value: c}
		}
	case "/":
		if b != 0 && a%b == 0 && !(a == math.MinInt64 && b == -1) {
			return &Integer{Value: a / b}
		}
	case "%":
		if b != 0 {
			if b == -1 {
				return &Integer{Value: 0}
			}
			return &Integer{Value: a % b}
		}
	}
	return evalFloatArithmetic(op, float64(a), float64(b))
}

func evalFloatArithmetic(op string, a, b float64) Object {
	switch op {
	case "+":
		return &Float{Value: a + b}
	case "-":
		return &Float{Value: a - b}
	case "*":
		return &Float{Value: a * b}
	case "/":
		return &Float{Value: a / b}
	case "%":
		return &Float{Value: math.Mod(a, b)}
	}
	return typeError("unknown operator: %s", op)
}

func evalComparison(op string, left, right Object) Object {
	switch op {
	case "==":
		return nativeBoolToBooleanObject(objectsEqual(left, right))
	case "!=":
		return nativeBoolToBooleanObject(!objectsEqual(left, right))
	}

	result, ok := compareOrdered(op, left, right)
	if !ok {
		return typeError("cannot compare %s %s %s", TypeName(left), op, TypeName(right))
	}
	return nativeBoolToBooleanObject(result)
}

// compareOrdered applies an ordering operator to two numbers or two
// strings. ok is false for any other pair of operands.
func compareOrdered(op string, left, right Object) (result bool, ok bool) {
	if ls, isStr := left.(*String); isStr {
		rs, isStr := right.(*String)
		if !isStr {
			return false, false
		}
		return applyOrdering(op, ls.Value, rs.Value), true
	}

	li, lInt := left.(*Integer)
	ri, rInt := right.(*Integer)
	if lInt && rInt {
		return applyOrdering(op, li.Value, ri.Value), true
	}

	lf, lok := toFloat(left)
	rf, rok := toFloat(right)
	if !lok || !rok {
		return false, false
	}
	return applyOrdering(op, lf, rf), true
}

func applyOrdering[T int64 | float64 | string](op string, a, b T) bool {
	switch op {
	case "<":
		return a < b
	case "<=":
		return a <= b
	case ">":
		return a > b
	case ">=":
		return a >= b
	}
	return false
}
