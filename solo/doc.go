// Package solo provides small, explicit single-instance helpers for Go.
//
// This package intentionally supports two granularities:
//
//   - Holder[T]: a thread-safe holder around one *T with introspection
//     (Initialized/Err/Peek), sticky construction outcomes and Reset for tests.
//     Best when you want the holder itself visible in your composition root,
//     or grouped warm-up/teardown via Group.
//
//   - Func / FuncOf / MustFunc: package-level accessor functions with no holder
//     exposed. Best when you want the minimal classic Instance() surface and
//     nothing else.
//
// Both avoid reflection and do not provide an automatic container, dependency
// graph or injection. How instances relate to each other remains explicit in
// your code.
//
// Quick guidance
//
// Use Holder + Group when you want:
//   - Startup warm-up of all instances in one place (InitAll)
//   - Introspection (what is initialized? what failed?) and test reset
//   - Structured errors you can assert in tests
//
// Use Func/MustFunc when you want:
//   - Just an accessor function at package level
//   - Zero holder concepts in the consuming code
//   - Minimal runtime overhead and simplest API
//
// Runnable examples live under examples/v1 and examples/v2.
//
// Import:
//
//	"github.com/sghaida/solo/solo"
package solo
