/*
Package sandbox verifies postprocessed bundles inside a restricted goja
runtime that mirrors the capability discipline of the target environment.

# Overview

The runtime grants no ambient authority. Node globals (require, process,
module, exports) are removed, and everything the bundle may touch is an
explicit endowment: window (the global object alias the postprocessor
rewrites worker-style references to), a minimal Buffer placeholder, and a
capturing console. setImmediate is deliberately absent, matching the
environment the postprocessor patches bundles for.

# Verification

A postprocessed bundle is a single expression evaluating to a zero-argument
function. Verify evaluates the text, asserts the result is callable, and
invokes it once under a timeout. Any of those steps failing means the
postprocessor produced output the sandbox would reject.
*/
package sandbox
