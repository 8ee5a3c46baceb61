package build

import (
	"context"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/capsulejs/capsule/internal/bundler"
	"github.com/capsulejs/capsule/internal/logging"
	"github.com/capsulejs/capsule/internal/postprocess"
	"github.com/capsulejs/capsule/internal/report"
	"github.com/capsulejs/capsule/internal/sandbox"
)

// Options configures a builder.
type Options struct {
	SourceMaps    bool
	StripComments bool

	// ReportPath, when set, receives a JSON build report per run.
	ReportPath string

	// Check evaluates the written bundle in the verification sandbox.
	Check        bool
	CheckTimeout time.Duration
}

// Builder runs the produce → postprocess → write pipeline. Safe for
// repeated use; each Bundle call is independent.
type Builder struct {
	log  *logging.Logger
	opts Options
}

// New creates a builder.
func New(log *logging.Logger, opts Options) *Builder {
	return &Builder{log: log, opts: opts}
}

// Bundle packages entry into a sandbox-safe bundle at dest. On failure the
// destination is removed and the returned error carries its classification;
// a nil error means dest holds the final bundle.
func (b *Builder) Bundle(entry, dest string) (*report.Report, *Error) {
	rep := report.New(entry, dest)

	bundleStart := time.Now()
	raw, err := bundler.Produce(entry, bundler.Options{SourceMaps: b.opts.SourceMaps})
	bundleTime := time.Since(bundleStart)
	if err != nil {
		return nil, b.fail(dest, KindBuild, err)
	}
	rep.RawBytes = len(raw)

	processStart := time.Now()
	processed, err := postprocess.Process([]byte(raw), postprocess.Options{
		StripComments: b.opts.StripComments,
	})
	if err != nil {
		// Empty-bundle failures get write-error treatment: same
		// cleanup, same reporting prefix.
		return nil, b.fail(dest, KindWrite, err)
	}
	rep.ProcessedBytes = len(processed)
	rep.SourceMaps = b.opts.SourceMaps
	rep.StripComments = b.opts.StripComments
	rep.SetTimings(bundleTime, time.Since(processStart))

	if err := os.WriteFile(dest, []byte(processed), 0o644); err != nil {
		return nil, b.fail(dest, KindWrite, err)
	}

	if b.opts.Check {
		if err := b.check(processed); err != nil {
			return nil, b.fail(dest, KindCheck, err)
		}
	}

	if b.opts.ReportPath != "" {
		if err := rep.Write(b.opts.ReportPath); err != nil {
			b.log.Warn("Failed to write build report", zap.Error(err))
		}
	}

	b.log.Info("Build complete",
		zap.String("entry", entry),
		zap.String("dest", dest),
		zap.Int("raw_bytes", rep.RawBytes),
		zap.Int("processed_bytes", rep.ProcessedBytes),
		zap.Duration("bundle_time", bundleTime),
	)
	return rep, nil
}

// check verifies the bundle evaluates to a callable under sandbox
// constraints.
func (b *Builder) check(bundle string) error {
	timeout := b.opts.CheckTimeout
	if timeout <= 0 {
		timeout = sandbox.DefaultConfig().Timeout
	}

	runtime, err := sandbox.New(sandbox.Config{Timeout: timeout, EnableConsole: true})
	if err != nil {
		return err
	}
	defer runtime.Close()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	_, err = runtime.Verify(ctx, bundle)
	return err
}

// fail removes the destination and wraps err. Removal is best-effort; a
// missing file is the desired state.
func (b *Builder) fail(dest string, kind Kind, err error) *Error {
	_ = os.Remove(dest)
	return &Error{Kind: kind, Err: err}
}
