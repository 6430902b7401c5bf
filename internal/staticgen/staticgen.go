package staticgeninternal

import (
	"bytes"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/sublee/staticgen/internal/codefmt"
	"github.com/sublee/staticgen/internal/load"
	"github.com/sublee/staticgen/internal/synth"
)

// Staticgen generates capability implementations for every declaration of a
// description file. Call [Staticgen.Build] and then [Staticgen.Generate] to
// get the generated code. All potential errors are returned by Build. Once
// Build succeeds, Generate never fails.
type Staticgen struct {
	f      *load.File
	cfg    synth.Config
	synths []*synth.Synth
}

// New creates a new [Staticgen] for the loaded file. cfg is already merged
// from the file options and the overrides; see [Overrides.Apply].
func New(f *load.File, cfg synth.Config) *Staticgen {
	return &Staticgen{f: f, cfg: cfg}
}

// Build builds every declaration independently. A declaration that fails to
// build does not stop the others from being checked, so that every problem
// of the file is reported at once.
func (sg *Staticgen) Build() error {
	var errs error
	sg.synths = sg.synths[:0]
	for _, d := range sg.f.Decls {
		s := synth.New(d, sg.cfg)
		if err := s.Build(); err != nil {
			errs = errors.Join(errs, err)
			continue
		}
		sg.synths = append(sg.synths, s)
	}
	return errs
}

// Generate generates the code of the file. It returns nil if the file has no
// declarations. It must be called after [Staticgen.Build] succeeds.
func (sg *Staticgen) Generate() []byte {
	if len(sg.synths) == 0 {
		return nil
	}

	var buf bytes.Buffer
	for _, s := range sg.synths {
		fmt.Fprintf(&buf, "// staticgen: %s\n\n", s.Decl())
		buf.Write(s.Generate())
		buf.WriteString("\n")
	}
	return sg.frameCode(buf.Bytes())
}

func (sg *Staticgen) frameCode(body []byte) []byte {
	versionSuffix := ""
	if Version != "" {
		versionSuffix = "@" + Version
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "// Code generated by github.com/sublee/staticgen%s. DO NOT EDIT.\n", versionSuffix)
	fmt.Fprintf(&buf, "// Source: %s\n\n", filepath.ToSlash(sg.f.Path))
	buf.Write(body)
	return codefmt.Indent(buf.Bytes())
}
