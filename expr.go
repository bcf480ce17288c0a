package parsec

// Operator-precedence expression builder. An expression grammar is a term
// parser plus a list of precedence levels, tightest binding first; each
// level holds the operators that bind at that strength. The tower of
// parsers this builds is ordinary alternation and chaining, nothing more.

type operatorKind uint8

const (
	opPrefix operatorKind = iota
	opPostfix
	opInfixL
	opInfixR
	opInfixN
)

// Operator is one row of a precedence table. Construct rows with Prefix,
// Postfix, InfixL, InfixR, or InfixN.
type Operator[T comparable, R any] struct {
	kind   operatorKind
	unary  Parser[T, func(R) R]
	binary Parser[T, func(R, R) R]
}

// Prefix declares a prefix operator; op yields the function to apply.
func Prefix[T comparable, R any](op Parser[T, func(R) R]) Operator[T, R] {
	mustParser(op)
	return Operator[T, R]{kind: opPrefix, unary: op}
}

// Postfix declares a postfix operator.
func Postfix[T comparable, R any](op Parser[T, func(R) R]) Operator[T, R] {
	mustParser(op)
	return Operator[T, R]{kind: opPostfix, unary: op}
}

// InfixL declares a left-associative infix operator.
func InfixL[T comparable, R any](op Parser[T, func(R, R) R]) Operator[T, R] {
	mustParser(op)
	return Operator[T, R]{kind: opInfixL, binary: op}
}

// InfixR declares a right-associative infix operator.
func InfixR[T comparable, R any](op Parser[T, func(R, R) R]) Operator[T, R] {
	mustParser(op)
	return Operator[T, R]{kind: opInfixR, binary: op}
}

// InfixN declares a non-associative infix operator: at most one use per
// level, so `a < b < c` is rejected by the grammar.
func InfixN[T comparable, R any](op Parser[T, func(R, R) R]) Operator[T, R] {
	mustParser(op)
	return Operator[T, R]{kind: opInfixN, binary: op}
}

// ExpressionParser builds a parser for term combined by the given operator
// levels, tightest binding first.
func ExpressionParser[T comparable, R any](term Parser[T, R], levels [][]Operator[T, R]) Parser[T, R] {
	mustParser(term)
	p := term
	for _, level := range levels {
		p = buildLevel(p, level)
	}
	return p
}

func buildLevel[T comparable, R any](term Parser[T, R], ops []Operator[T, R]) Parser[T, R] {
	var prefixes, postfixes []Parser[T, func(R) R]
	var infixL, infixR, infixN []Parser[T, func(R, R) R]
	for _, op := range ops {
		switch op.kind {
		case opPrefix:
			prefixes = append(prefixes, op.unary)
		case opPostfix:
			postfixes = append(postfixes, op.unary)
		case opInfixL:
			infixL = append(infixL, op.binary)
		case opInfixR:
			infixR = append(infixR, op.binary)
		case opInfixN:
			infixN = append(infixN, op.binary)
		}
	}

	operand := term
	if len(prefixes) > 0 {
		pre := OneOf(prefixes...)
		inner := operand
		operand = Bind(pre.Many(), func(fs []func(R) R) Parser[T, R] {
			return Map(inner, func(x R) R {
				for i := len(fs) - 1; i >= 0; i-- {
					x = fs[i](x)
				}
				return x
			})
		})
	}
	if len(postfixes) > 0 {
		post := OneOf(postfixes...)
		inner := operand
		operand = Bind(inner, func(x R) Parser[T, R] {
			return Map(post.Many(), func(fs []func(R) R) R {
				for _, f := range fs {
					x = f(x)
				}
				return x
			})
		})
	}

	identity := func(x R) R { return x }
	var rests []Parser[T, func(R) R]
	if len(infixL) > 0 {
		rests = append(rests, leftChain(OneOf(infixL...), operand))
	}
	if len(infixR) > 0 {
		rests = append(rests, rightChain(OneOf(infixR...), operand))
	}
	if len(infixN) > 0 {
		op := OneOf(infixN...)
		rests = append(rests, map2(op, operand, func(f func(R, R) R, y R) func(R) R {
			return func(x R) R { return f(x, y) }
		}))
	}
	if len(rests) == 0 {
		return operand
	}
	rest := OneOf(append(rests, Return[T](identity))...)
	return Bind(operand, func(x R) Parser[T, R] {
		return Map(rest, func(k func(R) R) R { return k(x) })
	})
}

// leftChain parses `(op operand)+` and folds left: x a y b z becomes
// b(a(x, y), z).
func leftChain[T comparable, R any](op Parser[T, func(R, R) R], operand Parser[T, R]) Parser[T, func(R) R] {
	step := map2(op, operand, func(f func(R, R) R, y R) func(R) R {
		return func(x R) R { return f(x, y) }
	})
	return Map(step.AtLeastOnce(), func(fs []func(R) R) func(R) R {
		return func(x R) R {
			for _, f := range fs {
				x = f(x)
			}
			return x
		}
	})
}

// rightChain parses `(op operand)+` and folds right: x a y b z becomes
// a(x, b(y, z)).
func rightChain[T comparable, R any](op Parser[T, func(R, R) R], operand Parser[T, R]) Parser[T, func(R) R] {
	type link struct {
		f func(R, R) R
		y R
	}
	step := map2(op, operand, func(f func(R, R) R, y R) link {
		return link{f: f, y: y}
	})
	return Map(step.AtLeastOnce(), func(links []link) func(R) R {
		return func(x R) R {
			n := len(links)
			acc := links[n-1].y
			for i := n - 1; i >= 1; i-- {
				acc = links[i].f(links[i-1].y, acc)
			}
			return links[0].f(x, acc)
		}
	})
}

// map2 sequences two parsers and combines their results.
func map2[T comparable, A, B, C any](pa Parser[T, A], pb Parser[T, B], f func(A, B) C) Parser[T, C] {
	return Bind(pa, func(a A) Parser[T, C] {
		return Map(pb, func(b B) C { return f(a, b) })
	})
}
