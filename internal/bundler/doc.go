// Package bundler resolves a JavaScript entry point and its transitive
// dependencies into a single script using esbuild.
//
// The producer is deliberately thin: given an entry path and options it
// returns the bundle text or a build error carrying esbuild's diagnostics.
// Everything sandbox-specific happens downstream in package postprocess.
package bundler
