// Package lower walks an internal/ast tree and emits the textual
// stack-machine assembly the internal/vm package executes. It owns the two
// monotonic label counters (for if/while) that must stay unique across the
// whole program, not just within one function, so a single lowerer value
// processes every Function in declaration order.
package lower

import (
	"fmt"
	"io"

	"stackc/internal/ast"
)

// lowerer carries the mutable state threaded through one lowering pass:
// the output sink and the two global label counters. There is no per-
// function reset; labels are unique program-wide (spec invariant: every
// emitted label is unique within a program).
type lowerer struct {
	out       io.Writer
	err       error
	ifCount   int
	whileCount int
}

func (lw *lowerer) line(format string, args ...any) {
	if lw.err != nil {
		return
	}
	if _, err := fmt.Fprintf(lw.out, format+"\n", args...); err != nil {
		lw.err = err
	}
}

func (lw *lowerer) comment(format string, args ...any) {
	lw.line("; "+format, args...)
}

func (lw *lowerer) newIfLabels() (elseLabel, endLabel string) {
	n := lw.ifCount
	lw.ifCount++
	return fmt.Sprintf("else_%d:", n), fmt.Sprintf("endif_%d:", n)
}

func (lw *lowerer) newWhileLabels() (topLabel, endLabel string) {
	n := lw.whileCount
	lw.whileCount++
	return fmt.Sprintf("while_start_%d:", n), fmt.Sprintf("while_end_%d:", n)
}

// Program lowers an entire program to out, a preamble jump to _main:
// followed by every function's body in declaration order. It writes
// directly to the caller-owned sink rather than building the text in
// memory first.
func Program(prog *ast.Program, out io.Writer) error {
	lw := &lowerer{out: out}
	lw.line("jump _main:")
	for _, fn := range prog.Functions {
		lw.function(fn)
	}
	return lw.err
}

func (lw *lowerer) function(fn *ast.Function) {
	lw.line("_%s:", fn.Name)
	lw.block(fn.Body)
	// A function whose body falls off the end without an explicit return
	// needs a terminator; a bare ret restores the caller's frame (in the
	// outermost activation, which has no saved call frame, it terminates
	// the whole program, per the VM's call/ret convention).
	lw.line("ret")
}

func (lw *lowerer) block(b *ast.Block) {
	for _, s := range b.Stmts {
		lw.stmt(s)
	}
}

func (lw *lowerer) stmt(s ast.Stmt) {
	switch n := s.(type) {
	case *ast.Block:
		lw.block(n)
	case *ast.VarDecl:
		lw.expr(n.Init)
		lw.line("push %d", n.Slot)
		lw.line("store bp")
		// Slot n.Slot is exactly the next free stack cell at this point in
		// a function's body, so store bp here writes the value into the
		// cell that already holds it: the declaration's storage IS this
		// stack position. Unlike Assign, there is no leftover to pop.
	case *ast.If:
		lw.ifStmt(n)
	case *ast.While:
		lw.whileStmt(n)
	case *ast.Return:
		if n.Expr == nil {
			lw.line("ret")
			return
		}
		lw.expr(n.Expr)
		lw.line("retv")
	case *ast.ExprStatement:
		lw.expr(n.Expr)
		lw.line("pop")
	default:
		lw.err = fmt.Errorf("lower: unknown statement node %T", n)
	}
}

func (lw *lowerer) ifStmt(n *ast.If) {
	elseLabel, endLabel := lw.newIfLabels()
	lw.expr(n.Cond)
	lw.line("brz %s", elseLabel)
	lw.stmt(n.Then)
	lw.line("jump %s", endLabel)
	lw.line("%s", elseLabel)
	if n.Else != nil {
		lw.stmt(n.Else)
	}
	lw.line("%s", endLabel)
}

func (lw *lowerer) whileStmt(n *ast.While) {
	topLabel, endLabel := lw.newWhileLabels()
	lw.line("jump %s", topLabel)
	lw.line("%s", topLabel)
	lw.expr(n.Cond)
	lw.line("brz %s", endLabel)
	lw.stmt(n.Body)
	lw.line("jump %s", topLabel)
	lw.line("%s", endLabel)
}

// expr lowers e so it leaves exactly one value on the stack.
func (lw *lowerer) expr(e ast.Expr) {
	switch n := e.(type) {
	case *ast.Literal:
		if n.IsString {
			lw.line("push %q", n.Str)
		} else {
			lw.line("push %d", n.Int)
		}

	case *ast.VarRef:
		lw.line("push %d", n.Slot)
		lw.line("load bp")

	case *ast.Assign:
		lw.expr(n.Rhs)
		lw.line("push %d", n.Slot)
		lw.line("save bp")
		// save bp pops only the offset, leaving exactly the assigned value
		// on the stack, satisfying Expr's one-value contract.

	case *ast.BinaryOp:
		lw.expr(n.Left)
		lw.expr(n.Right)
		lw.line("%s", binOpMnemonic(n.Op))

	case *ast.Call:
		for _, arg := range n.Args {
			lw.expr(arg)
		}
		lw.line("push %d", len(n.Args))
		lw.line("call _%s:", n.Name)

	default:
		lw.err = fmt.Errorf("lower: unknown expression node %T", n)
	}
}

func binOpMnemonic(op ast.BinOp) string {
	switch op {
	case ast.Add:
		return "add"
	case ast.Sub:
		return "sub"
	case ast.Mul:
		return "mul"
	case ast.Div:
		return "div"
	case ast.Mod:
		return "mod"
	case ast.Eq:
		return "eq"
	case ast.Neq:
		return "neq"
	case ast.Lt:
		return "lt"
	case ast.Lte:
		return "lte"
	case ast.Gt:
		return "gt"
	case ast.Gte:
		return "gte"
	default:
		return fmt.Sprintf("; unknown binop %d", int(op))
	}
}
