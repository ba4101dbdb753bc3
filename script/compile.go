package script

import "math"

// builtin function table: opcode plus checked arity.
var functions = map[string]struct {
	op    opcode
	arity int
}{
	"sin":   {opSin, 1},
	"cos":   {opCos, 1},
	"atan2": {opAtan2, 2},
	"sqrt":  {opSqrt, 1},
	"abs":   {opAbs, 1},
	"min":   {opMin, 2},
	"max":   {opMax, 2},
}

// named constants reachable with the $ prefix.
var constants = map[string]float64{
	"PI": math.Pi,
}

// Compile parses src and produces an executable Program.
//
// The returned error, when non-nil, is a *CompileError carrying the source
// position. Compile never panics on malformed input. An empty or
// whitespace-only script is valid and compiles to a no-op program.
func Compile(src string) (*Program, error) {
	c := &compiler{lx: newLexer(src)}
	if err := c.init(); err != nil {
		return nil, err
	}
	for c.cur.kind != tokEOF {
		if err := c.statement(); err != nil {
			return nil, err
		}
	}
	return &Program{code: c.code, consts: c.consts}, nil
}

// compiler holds the two-token parse window and the code being emitted.
// Emission tracks the operand stack depth so that Eval can run against a
// fixed-size stack with no runtime checks.
type compiler struct {
	lx   *lexer
	cur  token
	next token

	code   []instr
	consts []float64

	depth    int // current operand stack depth at this point in the code
	maxDepth int
}

func (c *compiler) init() *CompileError {
	var err *CompileError
	if c.cur, err = c.lx.next(); err != nil {
		return err
	}
	c.next, err = c.lx.next()
	return err
}

// advance shifts the parse window forward one token.
func (c *compiler) advance() *CompileError {
	var err *CompileError
	c.cur = c.next
	c.next, err = c.lx.next()
	return err
}

func (c *compiler) expect(kind tokenKind, what string) *CompileError {
	if c.cur.kind != kind {
		return errorf(c.cur, "expected %s, found %s", what, c.cur.describe())
	}
	return c.advance()
}

// emit appends one instruction, tracking stack depth. delta is the
// instruction's net effect on the operand stack.
func (c *compiler) emit(tok token, op opcode, arg uint8, delta int) *CompileError {
	c.code = append(c.code, instr{op: op, arg: arg})
	c.depth += delta
	if c.depth > c.maxDepth {
		c.maxDepth = c.depth
		if c.maxDepth > maxStack {
			return errorf(tok, "expression too deeply nested")
		}
	}
	return nil
}

// emitConst pushes a literal, pooling duplicate values.
func (c *compiler) emitConst(tok token, v float64) *CompileError {
	idx := -1
	for i, existing := range c.consts {
		// Compare bit patterns so -0 and 0 stay distinct and NaN literals
		// (impossible from the lexer, but cheap to be exact) would pool.
		if math.Float64bits(existing) == math.Float64bits(v) {
			idx = i
			break
		}
	}
	if idx < 0 {
		if len(c.consts) >= 256 {
			return errorf(tok, "too many distinct constants")
		}
		idx = len(c.consts)
		c.consts = append(c.consts, v)
	}
	return c.emit(tok, opConst, uint8(idx), +1)
}

// statement := [ ident "=" ] expr ";"
// Empty statements (stray semicolons) are skipped. The terminating
// semicolon is required between statements and optional before EOF.
func (c *compiler) statement() *CompileError {
	for c.cur.kind == tokSemi {
		if err := c.advance(); err != nil {
			return err
		}
	}
	if c.cur.kind == tokEOF {
		return nil
	}

	if c.cur.kind == tokIdent && c.next.kind == tokAssign {
		target := c.cur
		slot, ok := varNames[target.text]
		if !ok {
			return errorf(target, "unknown variable %q", target.text)
		}
		if err := c.advance(); err != nil { // ident
			return err
		}
		if err := c.advance(); err != nil { // '='
			return err
		}
		if err := c.expr(); err != nil {
			return err
		}
		if err := c.emit(target, opStore, slot, -1); err != nil {
			return err
		}
	} else {
		tok := c.cur
		if err := c.expr(); err != nil {
			return err
		}
		if err := c.emit(tok, opDrop, 0, -1); err != nil {
			return err
		}
	}

	switch c.cur.kind {
	case tokSemi:
		return c.advance()
	case tokEOF:
		return nil
	default:
		return errorf(c.cur, "expected ';', found %s", c.cur.describe())
	}
}

// expr := term { ("+"|"-") term }
func (c *compiler) expr() *CompileError {
	if err := c.term(); err != nil {
		return err
	}
	for c.cur.kind == tokPlus || c.cur.kind == tokMinus {
		op := opAdd
		if c.cur.kind == tokMinus {
			op = opSub
		}
		tok := c.cur
		if err := c.advance(); err != nil {
			return err
		}
		if err := c.term(); err != nil {
			return err
		}
		if err := c.emit(tok, op, 0, -1); err != nil {
			return err
		}
	}
	return nil
}

// term := unary { ("*"|"/") unary }
func (c *compiler) term() *CompileError {
	if err := c.unary(); err != nil {
		return err
	}
	for c.cur.kind == tokStar || c.cur.kind == tokSlash {
		op := opMul
		if c.cur.kind == tokSlash {
			op = opDiv
		}
		tok := c.cur
		if err := c.advance(); err != nil {
			return err
		}
		if err := c.unary(); err != nil {
			return err
		}
		if err := c.emit(tok, op, 0, -1); err != nil {
			return err
		}
	}
	return nil
}

// unary := "-" unary | primary
func (c *compiler) unary() *CompileError {
	if c.cur.kind == tokMinus {
		tok := c.cur
		if err := c.advance(); err != nil {
			return err
		}
		if err := c.unary(); err != nil {
			return err
		}
		return c.emit(tok, opNeg, 0, 0)
	}
	return c.primary()
}

// primary := number | "$" const | ident | ident "(" args ")" | "(" expr ")"
func (c *compiler) primary() *CompileError {
	tok := c.cur
	switch tok.kind {
	case tokNumber:
		if err := c.advance(); err != nil {
			return err
		}
		return c.emitConst(tok, tok.val)

	case tokConst:
		v, ok := constants[tok.text]
		if !ok {
			return errorf(tok, "unknown constant $%s", tok.text)
		}
		if err := c.advance(); err != nil {
			return err
		}
		return c.emitConst(tok, v)

	case tokIdent:
		if c.next.kind == tokLParen {
			return c.call(tok)
		}
		slot, ok := varNames[tok.text]
		if !ok {
			return errorf(tok, "unknown identifier %q", tok.text)
		}
		if err := c.advance(); err != nil {
			return err
		}
		return c.emit(tok, opLoad, slot, +1)

	case tokLParen:
		if err := c.advance(); err != nil {
			return err
		}
		if err := c.expr(); err != nil {
			return err
		}
		return c.expect(tokRParen, "')'")

	default:
		return errorf(tok, "expected expression, found %s", tok.describe())
	}
}

// call parses ident "(" expr { "," expr } ")" with arity checked against
// the function table.
func (c *compiler) call(name token) *CompileError {
	fn, ok := functions[name.text]
	if !ok {
		return errorf(name, "unknown function %q", name.text)
	}
	if err := c.advance(); err != nil { // ident
		return err
	}
	if err := c.advance(); err != nil { // '('
		return err
	}

	args := 0
	if c.cur.kind != tokRParen {
		for {
			if err := c.expr(); err != nil {
				return err
			}
			args++
			if c.cur.kind != tokComma {
				break
			}
			if err := c.advance(); err != nil {
				return err
			}
		}
	}
	if err := c.expect(tokRParen, "')'"); err != nil {
		return err
	}
	if args != fn.arity {
		return errorf(name, "%s expects %d argument(s), got %d", name.text, fn.arity, args)
	}
	return c.emit(name, fn.op, 0, 1-fn.arity)
}
