package staticgeninternal

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/sublee/staticgen/internal/load"
	"github.com/sublee/staticgen/internal/synth"
)

var Version string

// Overrides are options given on the command line. A nil field keeps the
// option of each description file.
type Overrides struct {
	Crate             *string
	FieldPrefix       *string
	Strict            *bool
	OutlivesLifetimes *bool
}

// Apply merges the options of a description file with the overrides.
func (ov Overrides) Apply(opts load.Options) synth.Config {
	cfg := synth.Config{
		Crate:             opts.Crate,
		FieldPrefix:       opts.FieldPrefix,
		Strict:            opts.Strict,
		OutlivesLifetimes: opts.OutlivesLifetimes,
	}
	if ov.Crate != nil {
		cfg.Crate = *ov.Crate
	}
	if ov.FieldPrefix != nil {
		cfg.FieldPrefix = *ov.FieldPrefix
	}
	if ov.Strict != nil {
		cfg.Strict = *ov.Strict
	}
	if ov.OutlivesLifetimes != nil {
		cfg.OutlivesLifetimes = *ov.OutlivesLifetimes
	}
	return cfg
}

// Main is the main entry point for Staticgen. It is used by the command-line
// tool directly.
//
// ctx cancels processing of the remaining files. wd is the path of the
// working directory which relative paths are resolved against. ov overrides
// the options of every file. suffix replaces the extension of each input
// file to name its output file, like "_static.rs". And paths are the
// description files to process. Files are processed concurrently.
//
// It returns a map of output file paths to their contents. If any error
// occurs, it returns a non-nil error and no output at all.
func Main(ctx context.Context, wd string, ov Overrides, suffix string, paths []string) (map[string][]byte, error) {
	if len(paths) == 0 {
		return nil, errors.New("no description files given")
	}

	codes := make([][]byte, len(paths))
	fileErrs := make([]error, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			codes[i], fileErrs[i] = generateFile(wd, path, ov)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	errs := checkOutputPaths(wd, suffix, paths)
	outs := make(map[string][]byte)
	for i, path := range paths {
		if fileErrs[i] != nil {
			errs = errors.Join(errs, fileErrs[i])
			continue
		}
		if len(codes[i]) == 0 {
			continue
		}
		outs[outputPath(displayPath(wd, path), suffix)] = codes[i]
	}
	if errs != nil {
		// errs already contains comprehensive error messages. So we don't need
		// to attach another error message.
		return nil, reorderErrors(errs)
	}

	return outs, nil
}

// generateFile loads a description file and generates its code. It returns
// nil code if the file has no declarations.
func generateFile(wd, path string, ov Overrides) ([]byte, error) {
	abs := path
	if !filepath.IsAbs(abs) {
		abs = filepath.Join(wd, abs)
	}

	data, err := os.ReadFile(abs)
	if err != nil {
		return nil, fmt.Errorf("failed to read description file: %w", err)
	}

	f, err := load.Parse(displayPath(wd, path), data)
	if err != nil {
		return nil, err
	}

	sg := New(f, ov.Apply(f.Options))
	if err := sg.Build(); err != nil {
		return nil, err
	}
	return sg.Generate(), nil
}

// checkOutputPaths reports inputs which would write the same output file, and
// outputs which would overwrite an input.
func checkOutputPaths(wd, suffix string, paths []string) error {
	inputs := make(map[string]bool, len(paths))
	for _, path := range paths {
		inputs[displayPath(wd, path)] = true
	}

	var errs error
	owners := make(map[string]string, len(paths))
	for _, path := range paths {
		in := displayPath(wd, path)
		out := outputPath(in, suffix)
		if prev, ok := owners[out]; ok {
			errs = errors.Join(errs, fmt.Errorf("%s and %s have the same output file %s", prev, in, out))
			continue
		}
		owners[out] = in
		if inputs[out] {
			errs = errors.Join(errs, fmt.Errorf("output file of %s would overwrite input %s", in, out))
		}
	}
	return errs
}

// displayPath returns path relative to wd if possible.
func displayPath(wd, path string) string {
	if !filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	if rel, err := filepath.Rel(wd, path); err == nil && !strings.HasPrefix(rel, "..") {
		return rel
	}
	return path
}

// outputPath replaces the extension of path with suffix:
// "decls.yaml" becomes "decls_static.rs".
func outputPath(path, suffix string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + suffix
}

func reorderErrors(errs error) error {
	if errs == nil {
		return nil
	}

	// Flatten nested errors
	list := []error{errs}
	for i := 0; i < len(list); i++ {
		if u, ok := list[i].(interface{ Unwrap() []error }); ok {
			// errors.Join collapses errors with a single error having Unwrap()
			// []error method. The underlying errors could be retrieved using
			// the Unwrap() method.
			list = append(list, u.Unwrap()...)

			// The underlying errors are appended to the list. So the original
			// error can be removed.
			list[i] = nil
			continue
		}
	}
	list = slices.DeleteFunc(list, func(err error) bool {
		return err == nil
	})

	// Sort errors by message
	sort.Slice(list, func(i, j int) bool {
		return list[i].Error() < list[j].Error()
	})
	return errors.Join(list...)
}
