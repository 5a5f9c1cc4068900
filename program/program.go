package program

import (
	"github.com/inert-io/conprog/internal/node"
)

// Unit is the result type of programs that are run for their effects only,
// such as Print.
type Unit struct{}

// Program is an inert description of a console computation yielding a value
// of type T. Building a Program performs no I/O: the combinators in this
// package only allocate tree nodes. Effects happen when — and only when —
// an interpreter walks the tree.
//
// A Program is an immutable value. It may be built on any goroutine,
// handed around freely, and interpreted independently of any other Program.
type Program[T any] struct {
	// Node is the type-erased tree consumed by interpreters. Client code
	// never needs to touch it.
	Node node.Node
}

// Print describes writing message as one line to the console.
func Print(message string) Program[Unit] {
	return Program[Unit]{Node: node.Perform{Op: node.PrintOp{Message: message}}}
}

// Read describes reading one line from the console, terminator stripped.
func Read() Program[string] {
	return Program[string]{Node: node.Perform{Op: node.ReadOp{}}}
}

// Pure lifts a plain value into a Program that performs no effect.
func Pure[T any](value T) Program[T] {
	return Program[T]{Node: node.Pure{Value: value}}
}

// Bind sequences p with a continuation k deriving the next program from
// p's result. Nothing runs here: Bind records the dependency so that an
// interpreter can run p first and only then construct k's program.
//
// k must be a pure function of the produced value. Performing console I/O
// inside k (rather than returning a Program that describes it) breaks
// every interpreter guarantee.
func Bind[S, T any](p Program[S], k func(S) Program[T]) Program[T] {
	if k == nil {
		panic("conprog: Bind with nil continuation")
	}
	return Program[T]{Node: node.Seq{
		First: p.Node,
		Next: func(v any) node.Node {
			// A nil interface value (Pure[error](nil) and friends) erases
			// to a bare nil, which a plain assertion would reject.
			if v == nil {
				var zero S
				return k(zero).Node
			}
			return k(v.(S)).Node
		},
	}}
}

// Map applies a pure function to p's eventual result.
// Map(p, f) is Bind(p, func(s S) Program[T] { return Pure(f(s)) }).
func Map[S, T any](p Program[S], f func(S) T) Program[T] {
	return Bind(p, func(s S) Program[T] {
		return Pure(f(s))
	})
}

// Then sequences p before q, discarding p's result. Convenience for the
// common "print, then carry on" pattern where the continuation ignores
// its input.
func Then[S, T any](p Program[S], q Program[T]) Program[T] {
	return Bind(p, func(S) Program[T] {
		return q
	})
}
