// Package postprocess rewrites bundler output into source that a
// capability-limited JavaScript sandbox will accept.
//
// The sandbox disallows direct eval, bare `import` property access, and
// HTML-comment token sequences, and supplies globals such as Buffer and
// window as endowments rather than ambient values. The pipeline applies a
// fixed, order-sensitive chain of text substitutions to reconcile a bundle
// with those rules, then wraps the result in a zero-argument arrow function
// so the whole bundle is a single callable unit.
//
// Rewrites operate on raw text with regular expressions, not a syntax tree.
// Known limitations of that choice (nested parentheses in eval argument
// lists, patterns inside string literals) are documented on the individual
// rules and preserved for output compatibility.
package postprocess
