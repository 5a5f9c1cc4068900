// Package program represents console computations as pure, inert data.
//
// A [Program] is a description: Print and Read build single-effect
// programs, Pure lifts plain values, and Bind/Map/Then compose programs
// sequentially, letting later steps depend on earlier results. No console
// I/O happens while a Program is built — interpretation is a separate
// concern, handled by the interp package, and the same Program can be run
// synchronously or asynchronously without changing a line of the code
// that built it.
//
// Example:
//
//	login := program.Bind(program.Print("user:"), func(program.Unit) program.Program[string] {
//		return program.Read()
//	})
//
// The combinators satisfy the monad laws (left/right identity and
// associativity of Bind) with respect to observable effect order and
// final result, which is what allows interpreters to recurse structurally
// without knowing anything about the business logic inside continuations.
package program
