// Command capsule bundles a JavaScript entry point and rewrites the result
// so it can run inside a capability-limited sandbox.
//
// A one-shot build exits non-zero if the bundle cannot be produced or
// written; with -watch the process stays up across failed builds and
// rebuilds on source changes.
package main
