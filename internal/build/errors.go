package build

import (
	"os"

	"go.uber.org/zap"

	"github.com/capsulejs/capsule/internal/logging"
)

// Mode selects how failures terminate. Watch runs must survive individual
// build failures so the rebuild loop continues.
type Mode int

const (
	Once Mode = iota
	Watch
)

// Kind classifies a build failure for reporting.
type Kind int

const (
	// KindBuild means the producer failed to emit a bundle.
	KindBuild Kind = iota
	// KindWrite means the destination could not be written; the
	// postprocessor's empty-bundle failure is reported the same way.
	KindWrite
	// KindCheck means the written bundle failed sandbox verification.
	KindCheck
)

func (k Kind) prefix() string {
	switch k {
	case KindBuild:
		return "Build error:"
	case KindCheck:
		return "Check error:"
	default:
		return "Write error:"
	}
}

// Error pairs a failure with its classification.
type Error struct {
	Kind Kind
	Err  error
}

func (e *Error) Error() string {
	return e.Kind.prefix() + " " + e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// HandleFailure reports err and, outside watch mode, terminates the
// process with a non-zero exit code.
func HandleFailure(log *logging.Logger, err *Error, mode Mode) {
	log.Error(err.Kind.prefix(), zap.Error(err.Err))
	if mode != Watch {
		log.Sync()
		os.Exit(1)
	}
}
