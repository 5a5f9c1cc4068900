// Package interp turns inert program values into actual console I/O.
//
// Two execution strategies share one structural walk over the program
// tree:
//
//   - [Run] performs effects inline on the calling goroutine and blocks
//     until the final value is available.
//   - [RunAsync] schedules effects on a worker pool and returns a
//     task.Task immediately; dependent steps still execute strictly in
//     order because each stage is derived only after its predecessor's
//     effect has completed.
//
// Swapping one strategy for the other never requires touching the code
// that built the program — that separation is the point of representing
// programs as data.
package interp
