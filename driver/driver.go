// Package driver runs the assembly pipeline over source files.
package driver

import (
	"context"
	"errors"
	"io/fs"
	"log"
	"path"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/ezrec/asm14/asm"
	"github.com/ezrec/asm14/config"
	"github.com/ezrec/asm14/object"
	"github.com/ezrec/asm14/preproc"
)

const (
	EXT_SOURCE   = ".as" // Assembly source.
	EXT_EXPANDED = ".am" // Macro expanded source.
)

// Result is the outcome of assembling one source file.
type Result struct {
	Name        string           // Source file name.
	Diagnostics []asm.Diagnostic // Validation diagnostics.
	Symbols     *asm.SymbolTable // Symbol table, if validation ran.
	Program     *asm.Program     // Program, if assembly succeeded.
	Err         error
}

// Driver assembles source files into artifacts.
type Driver struct {
	Verbose bool            // If set, verbosely logs the driver actions.
	Config  config.Config   // Assembler settings.
	FS      object.CreateFS // Filesystem for sources and artifacts.

	// Report is called with every result, in the order the files were named.
	Report func(res *Result)
}

// Stem returns a source name without its .as extension, and the source file name.
func Stem(name string) (stem string, source string) {
	stem = strings.TrimSuffix(name, EXT_SOURCE)
	source = stem + EXT_SOURCE
	return
}

// output returns the filesystem and stem for the artifacts of a source.
func (drv *Driver) output(stem string) (fsys object.CreateFS, out string, err error) {
	if len(drv.Config.OutputDir) == 0 {
		fsys = drv.FS
		out = stem
		return
	}

	out = path.Base(stem)
	fsys, err = drv.FS.Sub(drv.Config.OutputDir)
	if errors.Is(err, fs.ErrNotExist) {
		err = drv.FS.Mkdir(drv.Config.OutputDir, 0o755)
		if err != nil && !errors.Is(err, fs.ErrExist) {
			return
		}
		fsys, err = drv.FS.Sub(drv.Config.OutputDir)
	}
	return
}

// writeExpanded writes the macro expanded source.
func (drv *Driver) writeExpanded(name string, lines []string) (err error) {
	file, err := drv.FS.Create(name)
	if err != nil {
		return
	}
	defer func() {
		cerr := file.Close()
		if err == nil {
			err = cerr
		}
	}()

	for _, line := range lines {
		_, err = file.Write([]byte(line + "\n"))
		if err != nil {
			return
		}
	}
	return
}

// Assemble runs the pipeline over one source file.
func (drv *Driver) Assemble(name string) (res *Result) {
	stem, source := Stem(name)
	res = &Result{Name: source}

	defer func() {
		if res.Err != nil {
			res.Err = &ErrFile{Name: source, Err: res.Err}
		}
	}()

	if drv.Verbose {
		log.Printf("driver: %v", source)
	}

	input, err := drv.FS.Open(source)
	if err != nil {
		res.Err = err
		return
	}
	exp := &preproc.Expander{Verbose: drv.Verbose}
	lines, err := exp.Expand(input)
	input.Close()
	if err != nil {
		res.Err = err
		return
	}

	expanded := stem + EXT_EXPANDED
	if drv.Config.KeepExpanded {
		err = drv.writeExpanded(expanded, lines)
		if err != nil {
			res.Err = err
			return
		}
	}

	as := &asm.Assembler{
		Verbose:       drv.Verbose,
		File:          expanded,
		BaseAddress:   drv.Config.BaseAddress,
		LineLengthMax: drv.Config.MaxLineLength,
	}
	for define, value := range drv.Config.Predefine {
		as.Predefine(define, value)
	}

	prog, err := as.Assemble(lines)
	res.Diagnostics = as.Diagnostics
	res.Symbols = as.Symbols
	if err != nil {
		res.Err = err
		return
	}
	res.Program = prog

	fsys, out, err := drv.output(stem)
	if err != nil {
		res.Err = err
		return
	}

	err = object.NewListing(prog).Marshal(fsys, out)
	if err != nil {
		res.Err = err
		return
	}

	return
}

// Run assembles each named source. A failing file does not stop the others;
// the returned error joins the error of every failed file.
func (drv *Driver) Run(ctx context.Context, names []string) (err error) {
	jobs := max(drv.Config.Jobs, 1)

	results := make([]*Result, len(names))
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(jobs)

	for n, name := range names {
		eg.Go(func() error {
			if cerr := ctx.Err(); cerr != nil {
				return cerr
			}
			results[n] = drv.Assemble(name)
			return nil
		})
	}
	gerr := eg.Wait()

	var errs []error
	for _, res := range results {
		if res == nil {
			continue
		}
		if drv.Report != nil {
			drv.Report(res)
		}
		if res.Err != nil {
			errs = append(errs, res.Err)
		}
	}
	errs = append(errs, gerr)

	err = errors.Join(errs...)
	return
}
