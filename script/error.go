package script

import "fmt"

// CompileError describes why a script failed to compile, with a 1-based
// source position pointing at the offending token.
type CompileError struct {
	Line int
	Col  int
	Msg  string
}

// Error implements the error interface.
func (e *CompileError) Error() string {
	return fmt.Sprintf("script: %d:%d: %s", e.Line, e.Col, e.Msg)
}

// errorf builds a CompileError at the given token's position.
func errorf(tok token, format string, args ...any) *CompileError {
	return &CompileError{
		Line: tok.line,
		Col:  tok.col,
		Msg:  fmt.Sprintf(format, args...),
	}
}
