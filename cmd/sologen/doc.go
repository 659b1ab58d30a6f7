// Command sologen generates v3 style single-instance accessors.
//
// Version v3 introduces code generation (cmd/sologen) to keep instance
// ownership explicit while removing the accessor boilerplate:
//
//   - You write a tiny *.single.json spec next to your type.
//   - You add a //go:generate ... directive in the owner Go file.
//   - sologen generates a package-level accessor built on solo.Lazy with:
//       - <Accessor>() (*T, error) returning the shared instance
//       - Must<Accessor>() *T convenience
//       - <Accessor>Initialized() bool introspection
//       - Reset<Accessor>ForTest() re-arming the holder in tests
//
// There is no container, no reflection and no wiring graph. The generated file
// owns exactly one holder.
//
// When to use v3
//
// Use v3 when you want:
//
//   - The classic package-level Instance() surface without hand-writing it.
//   - Uniform accessor naming across many packages.
//   - The holder kept private so consumers only see the accessor functions.
//   - Test reset generated consistently (Reset<Accessor>ForTest).
//
// When NOT to use v3
//
// Avoid v3 if a hand-written solo.Func accessor (v2) or an explicit Holder in
// your composition root (v1) already reads fine, or if your tooling policy
// forbids codegen. The generated code is nothing you couldn't write by hand.
//
// Core idea
//
// sologen generates a private holder plus exported accessors around a concrete
// constructor:
//
//   - var sharedHolder = solo.Lazy(...) calls your constructor at most once
//   - Shared() / MustShared() hand out the identical pointer on every call
//   - Reset only exists under a ForTest name to keep intent obvious
//
// Spec format (*.single.json)
//
// Minimal example:
//
//	{
//	  "package": "store",
//	  "typeName": "Store",
//	  "constructor": "newStore",
//	  "accessor": "Shared",
//	  "imports": { "solo": "github.com/sghaida/solo/solo" }
//	}
//
// Fields:
//
//   - package: target package name for the generated file
//   - typeName: the concrete type guarded by the holder (generated code uses *typeName)
//   - constructor: a free function in the same package building the instance
//   - accessor: exported base name for the generated functions
//   - imports.solo: fallback import path for the solo package, used only when
//     the owner file does not already import something usable as `solo`
//   - constructorReturnsError (optional): explicit override; when omitted the
//     generator parses the constructor signature to decide between
//     `func() *T` and `func() (*T, error)`
//
// Usage
//
//	//go:generate go run ../../cmd/sologen -spec ./specs/store.single.json -out ./store_singleton.gen.go
//
// The generator consults the owner file (the file carrying the go:generate
// directive) to reuse the package's existing solo import path and alias, and
// writes the output atomically (temp file + rename).
package main
