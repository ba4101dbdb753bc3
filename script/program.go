package script

import "math"

// Vars is the fixed variable set a script reads and writes. The caller
// binds all six fields before each Eval and reads back the ones its
// coordinate mode cares about.
type Vars struct {
	X  float64 // horizontal position, normalized to roughly [-1, 1]
	Y  float64 // vertical position, normalized to roughly [-1, 1]
	R  float64 // polar angle in radians
	D  float64 // distance from center, normalized by the half-diagonal
	SW float64 // source buffer width in pixels
	SH float64 // source buffer height in pixels
}

// Variable slots, in Vars field order.
const (
	varX = iota
	varY
	varR
	varD
	varSW
	varSH
)

var varNames = map[string]uint8{
	"x": varX, "y": varY, "r": varR, "d": varD, "sw": varSW, "sh": varSH,
}

func (v *Vars) load(slot uint8) float64 {
	switch slot {
	case varX:
		return v.X
	case varY:
		return v.Y
	case varR:
		return v.R
	case varD:
		return v.D
	case varSW:
		return v.SW
	default:
		return v.SH
	}
}

func (v *Vars) store(slot uint8, f float64) {
	switch slot {
	case varX:
		v.X = f
	case varY:
		v.Y = f
	case varR:
		v.R = f
	case varD:
		v.D = f
	case varSW:
		v.SW = f
	default:
		v.SH = f
	}
}

// opcode is one stack-machine operation. Binary operators pop two values
// and push one; functions pop their arity and push one; opStore and opDrop
// pop one.
type opcode uint8

const (
	opConst opcode = iota // push consts[arg]
	opLoad                // push variable arg
	opStore               // pop into variable arg
	opDrop                // pop and discard (bare expression statement)
	opNeg
	opAdd
	opSub
	opMul
	opDiv // division by zero yields 0
	opSin
	opCos
	opAtan2
	opSqrt // negative operand yields 0
	opAbs
	opMin
	opMax
)

type instr struct {
	op  opcode
	arg uint8
}

// maxStack is the operand stack depth available to Eval. Compile rejects
// expressions that would need more, so Eval never checks.
const maxStack = 64

// Program is a compiled script: an instruction list over a small constant
// pool. Programs are immutable and safe for concurrent Eval calls.
type Program struct {
	code   []instr
	consts []float64
}

// Eval runs the program against v, mutating it in place. It performs no
// allocation and never panics on numeric edge cases: division by zero and
// sqrt of a negative both produce 0 rather than Inf or NaN.
func (p *Program) Eval(v *Vars) {
	var stack [maxStack]float64
	sp := 0
	for _, in := range p.code {
		switch in.op {
		case opConst:
			stack[sp] = p.consts[in.arg]
			sp++
		case opLoad:
			stack[sp] = v.load(in.arg)
			sp++
		case opStore:
			sp--
			v.store(in.arg, stack[sp])
		case opDrop:
			sp--
		case opNeg:
			stack[sp-1] = -stack[sp-1]
		case opAdd:
			sp--
			stack[sp-1] += stack[sp]
		case opSub:
			sp--
			stack[sp-1] -= stack[sp]
		case opMul:
			sp--
			stack[sp-1] *= stack[sp]
		case opDiv:
			sp--
			if stack[sp] == 0 {
				stack[sp-1] = 0
			} else {
				stack[sp-1] /= stack[sp]
			}
		case opSin:
			stack[sp-1] = math.Sin(stack[sp-1])
		case opCos:
			stack[sp-1] = math.Cos(stack[sp-1])
		case opAtan2:
			sp--
			stack[sp-1] = math.Atan2(stack[sp-1], stack[sp])
		case opSqrt:
			if x := stack[sp-1]; x < 0 {
				stack[sp-1] = 0
			} else {
				stack[sp-1] = math.Sqrt(x)
			}
		case opAbs:
			stack[sp-1] = math.Abs(stack[sp-1])
		case opMin:
			sp--
			stack[sp-1] = math.Min(stack[sp-1], stack[sp])
		case opMax:
			sp--
			stack[sp-1] = math.Max(stack[sp-1], stack[sp])
		}
	}
}

// Len returns the number of compiled instructions. An empty script
// compiles to a zero-length program that leaves Vars untouched.
func (p *Program) Len() int { return len(p.code) }
