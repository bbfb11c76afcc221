package core

// BinaryOperator is an infix operator, e.g. `1 + 1` or `foo > bar`.
type BinaryOperator int

// Binary operators.
const (
	OpPlus BinaryOperator = iota
	OpMinus
	OpMultiply
	OpDivide
	OpModulus
	OpGt
	OpLt
	OpGtEq
	OpLtEq
	OpEq
	OpNotEq
	OpAnd
	OpOr
	OpLike
	OpNotLike
)

var binaryOperatorText = [...]string{
	OpPlus:     "+",
	OpMinus:    "-",
	OpMultiply: "*",
	OpDivide:   "/",
	OpModulus:  "%",
	OpGt:       ">",
	OpLt:       "<",
	OpGtEq:     ">=",
	OpLtEq:     "<=",
	OpEq:       "=",
	OpNotEq:    "<>",
	OpAnd:      "AND",
	OpOr:       "OR",
	OpLike:     "LIKE",
	OpNotLike:  "NOT LIKE",
}

// String returns the operator as written in SQL.
func (op BinaryOperator) String() string {
	if int(op) < len(binaryOperatorText) {
		return binaryOperatorText[op]
	}
	return "?"
}

// UnaryOperator is a prefix operator, e.g. `NOT foo`.
type UnaryOperator int

// Unary operators.
const (
	OpUnaryPlus UnaryOperator = iota
	OpUnaryMinus
	OpNot
)

// String returns the operator as written in SQL.
func (op UnaryOperator) String() string {
	switch op {
	case OpUnaryPlus:
		return "+"
	case OpUnaryMinus:
		return "-"
	case OpNot:
		return "NOT"
	}
	return "?"
}
