package bundler

import (
	"errors"
	"fmt"

	"github.com/evanw/esbuild/pkg/api"
)

// Options configures a single produce run.
type Options struct {
	// SourceMaps embeds an inline source map in the bundle text.
	SourceMaps bool
}

// Produce bundles the module graph rooted at entry into a single script and
// returns its text. On failure the returned text is empty and the error
// joins every esbuild diagnostic.
func Produce(entry string, opts Options) (string, error) {
	buildOpts := api.BuildOptions{
		EntryPoints: []string{entry},
		Outfile:     "bundle.js",
		Bundle:      true,
		Write:       false,
		Format:      api.FormatIIFE,
		Platform:    api.PlatformNeutral,
		LogLevel:    api.LogLevelSilent,
	}
	if opts.SourceMaps {
		buildOpts.Sourcemap = api.SourceMapInline
	}

	result := api.Build(buildOpts)
	if len(result.Errors) > 0 {
		errs := make([]error, len(result.Errors))
		for i, msg := range result.Errors {
			if msg.Location != nil {
				errs[i] = fmt.Errorf("%s:%d: %s", msg.Location.File, msg.Location.Line, msg.Text)
			} else {
				errs[i] = fmt.Errorf("%s", msg.Text)
			}
		}
		return "", errors.Join(errs...)
	}
	if len(result.OutputFiles) == 0 {
		return "", errors.New("bundler produced no output")
	}
	return string(result.OutputFiles[0].Contents), nil
}
