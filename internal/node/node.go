package node

// Node is the closed union backing program values. The public program
// package wraps a Node with a phantom result type; interpreters walk the
// raw tree and recover concrete types at the boundary.
//
// The tree is type-erased because a sequencing node joins a sub-program of
// some result type S to a continuation producing the overall result type T,
// and Go generics cannot express the existential S inside a homogeneous
// tree. Concrete types are reintroduced by the program combinators, which
// are the only constructors of Node values.
type Node interface {
	node() // unexported marker method
}

// Pure yields its value without performing any effect.
type Pure struct {
	Value any
}

func (Pure) node() {}

// Perform wraps exactly one primitive console operation.
type Perform struct {
	Op Op
}

func (Perform) node() {}

// Seq runs First, then feeds its result to Next to obtain the rest of the
// computation. Next must be pure: it may only build another Node, never
// touch the console itself.
type Seq struct {
	First Node
	Next  func(any) Node
}

func (Seq) node() {}

// Op is the closed set of primitive console operations. Interpreters
// switch exhaustively over PrintOp and ReadOp; adding a variant is a
// breaking change to every interpreter.
type Op interface {
	op() // unexported marker method
}

// PrintOp writes one line to the console and yields Unit.
type PrintOp struct {
	Message string
}

func (PrintOp) op() {}

// ReadOp blocks until one input line is available and yields that line.
type ReadOp struct{}

func (ReadOp) op() {}
