// Package build orchestrates a single bundle run: produce the raw bundle,
// postprocess it for the sandbox, and write the result to the destination.
//
// Failures are classified as build errors (the producer emitted no usable
// output) or write errors (the destination could not be written, including
// the empty-bundle case raised by the postprocessor). Either way the
// destination file is removed best-effort, so a failed build never leaves a
// stale bundle behind. Whether a failure terminates the process is decided
// by the run mode passed to HandleFailure: one-shot builds exit non-zero,
// watch runs report and continue.
package build
