// Package script implements the per-pixel expression language used by
// warp's custom transform effects.
//
// # Language
//
// A script is a sequence of statements separated by semicolons. Each
// statement either assigns an expression to a variable or evaluates a bare
// expression (whose value is discarded):
//
//	r = r + 0.1;
//	d = d * 0.95;
//
// Expressions support +, -, *, / with the usual precedence, unary minus,
// parentheses, the constant $PI, and the functions
//
//	sin(x)  cos(x)  atan2(y, x)  sqrt(x)  abs(x)  min(a, b)  max(a, b)
//
// Line comments start with // and run to the end of the line. Identifiers
// are case-insensitive. The trailing semicolon after the last statement is
// optional.
//
// # Variables
//
// Exactly six variables exist, bound fresh for every pixel by the caller:
//
//	x, y    pixel position, normalized to roughly [-1, 1] per axis
//	r, d    polar angle and distance (d normalized by the half-diagonal)
//	sw, sh  source buffer width and height in pixels
//
// Any other identifier is a compile error — the language has no
// user-defined variables, no strings and no control flow.
//
// # Execution
//
// Compile parses and checks a script once, producing an immutable Program.
// Program.Eval runs the compiled code against a caller-supplied Vars,
// mutating it in place. Eval allocates nothing and is safe to call
// concurrently on one Program from many goroutines, each with its own
// Vars — warp's table generator does exactly that from its worker pool.
//
// Division by zero yields 0 and sqrt of a negative yields 0, so ordinary
// numeric edge cases never raise anything. NaN or Inf can still emerge
// from extreme intermediate values; callers are expected to check the
// variables they read back (the table generator substitutes the pixel's
// own coordinate when that happens).
package script
