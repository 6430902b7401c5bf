package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"regexp"

	"github.com/davecgh/go-spew/spew"
	"github.com/fatih/color"
	"golang.org/x/sys/unix"

	"github.com/sublee/staticgen/internal/load"
	staticgeninternal "github.com/sublee/staticgen/internal/staticgen"
)

var Version = "dev"

var (
	oFlag        = flag.String("o", "_static.rs", "output file suffix replacing the extension of each input")
	crateFlag    = flag.String("crate", "::bounded_static", "path of the runtime crate")
	prefixFlag   = flag.String("prefix", "field_", "prefix of positional field bindings")
	strictFlag   = flag.Bool("strict", false, "reject nested non-static references, raw pointers and non-static trait objects")
	outlivesFlag = flag.Bool("outlives", false, "require type parameters to outlive every lifetime parameter")
	cFlag        = flag.String("c", "auto", "colorize (auto|always|never)")
	dumpFlag     = flag.Bool("dump", false, "dump loaded declarations instead of generating code")
)

func init() {
	staticgeninternal.Version = Version
}

func main() {
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: staticgen [flags] decls.yaml...\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	wd, err := os.Getwd()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	color := false
	switch *cFlag {
	case "auto":
		color = isatty()
	case "always":
		color = true
	case "never":
		color = false
	default:
		fmt.Fprintln(os.Stderr, "invalid -c value:", *cFlag)
		os.Exit(1)
	}

	if *dumpFlag {
		if err := dump(flag.Args()); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	outs, err := staticgeninternal.Main(ctx, wd, overrides(), *oFlag, flag.Args())
	if err != nil {
		message := err.Error()
		if color {
			message = colorize(message)
		}
		fmt.Fprintln(os.Stderr, message)
		os.Exit(1)
	}

	for out, code := range outs {
		path := out
		if !filepath.IsAbs(path) {
			path = filepath.Join(wd, path)
		}
		if err := os.WriteFile(path, code, 0o644); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		fmt.Println("Generated:", out)
	}
}

// overrides collects the flags set explicitly. The others keep the options
// of each description file.
func overrides() staticgeninternal.Overrides {
	var ov staticgeninternal.Overrides
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "crate":
			ov.Crate = crateFlag
		case "prefix":
			ov.FieldPrefix = prefixFlag
		case "strict":
			ov.Strict = strictFlag
		case "outlives":
			ov.OutlivesLifetimes = outlivesFlag
		}
	})
	return ov
}

// dump prints the declarations loaded from the files.
func dump(paths []string) error {
	cfg := spew.ConfigState{Indent: "  ", DisablePointerAddresses: true, SortKeys: true}
	for _, path := range paths {
		f, err := load.LoadFile(path)
		if err != nil {
			return err
		}
		cfg.Dump(f)
	}
	return nil
}

// isatty reports whether stderr is a terminal. If it is true, errors are
// colorized by default.
func isatty() bool {
	_, err := unix.IoctlGetWinsize(int(os.Stderr.Fd()), unix.TIOCGWINSZ)
	return err == nil
}

var (
	rePos      = regexp.MustCompile(`(?m)^[^\s:]+:\d+:\d+:`)
	reDeriving = regexp.MustCompile(`deriving \S*?:\s`)

	posColor      = forcedColor(color.Faint)
	derivingColor = forcedColor(color.FgRed)
)

// forcedColor ignores NO_COLOR and the terminal check of the color package.
// The -c flag decides instead.
func forcedColor(attrs ...color.Attribute) *color.Color {
	c := color.New(attrs...)
	c.EnableColor()
	return c
}

// colorize dims positions and highlights attribution paths in the message.
func colorize(message string) string {
	m := []byte(message)
	m = rePos.ReplaceAllFunc(m, func(b []byte) []byte {
		return []byte(posColor.Sprint(string(b)))
	})
	m = reDeriving.ReplaceAllFunc(m, func(b []byte) []byte {
		return []byte(derivingColor.Sprint(string(b)))
	})
	return string(m)
}
