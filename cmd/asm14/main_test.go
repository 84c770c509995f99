package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/asm14/asm"
	"github.com/ezrec/asm14/config"
	"github.com/ezrec/asm14/driver"
)

func TestReporter(t *testing.T) {
	assert := assert.New(t)

	var out bytes.Buffer
	rep := &reporter{Output: &out}
	rep.Report(&driver.Result{
		Name: "x.as",
		Diagnostics: []asm.Diagnostic{
			{File: "x.am", LineNo: 3, Line: "move r1", Severity: asm.SEVERITY_ERROR, Err: asm.ErrInstructionInvalid},
			{File: "x.am", LineNo: 4, Line: "L: .entry X", Severity: asm.SEVERITY_WARNING, Err: asm.ErrLinkLabel},
		},
	})
	assert.Equal("x.am:3: error: "+asm.ErrInstructionInvalid.Error()+"\n\t> move r1\n"+
		"x.am:4: warning: "+asm.ErrLinkLabel.Error()+"\n\t> L: .entry X\n", out.String())

	out.Reset()
	rep.Color = true
	rep.Diagnostic(asm.Diagnostic{File: "x.am", LineNo: 1, Severity: asm.SEVERITY_ERROR, Err: errors.New("oops")})
	assert.Equal("x.am:1: "+colorError+"error:"+colorReset+" oops\n", out.String())
}

func TestReporterFailed(t *testing.T) {
	assert := assert.New(t)

	var out bytes.Buffer
	rep := &reporter{Output: &out}

	diags := []asm.Diagnostic{
		{File: "x.am", LineNo: 1, Line: ".entry X", Severity: asm.SEVERITY_ERROR, Err: asm.ErrEntryMissing("X")},
	}
	rep.Report(&driver.Result{
		Name:        "x.as",
		Diagnostics: diags,
		Err:         &driver.ErrFile{Name: "x.as", Err: asm.ErrDiagnostics(diags)},
	})
	assert.Equal(1, rep.Failed)
	assert.Equal(1, strings.Count(out.String(), asm.ErrEntryMissing("X").Error()), out.String())

	out.Reset()
	rep.Report(&driver.Result{
		Name: "y.as",
		Err:  &driver.ErrFile{Name: "y.as", Err: os.ErrNotExist},
	})
	assert.Equal(2, rep.Failed)
	assert.Equal("error: y.as: "+os.ErrNotExist.Error()+"\n", out.String())

	out.Reset()
	rep.Report(&driver.Result{Name: "z.as"})
	assert.Equal(2, rep.Failed)
	assert.Empty(out.String())
}

func TestCommandFailed(t *testing.T) {
	assert := assert.New(t)

	dir := t.TempDir()
	good := filepath.Join(dir, "good.as")
	assert.NoError(os.WriteFile(good, []byte("hlt\n"), 0o644))
	bad := filepath.Join(dir, "bad.as")
	assert.NoError(os.WriteFile(bad, []byte(".entry X\nhlt\n"), 0o644))

	var stdout, stderr bytes.Buffer
	cmd := newCommand()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs([]string{good, bad, filepath.Join(dir, "missing.as")})

	err := cmd.Execute()
	assert.ErrorIs(err, ErrFailed(2))
	assert.Equal(1, strings.Count(stderr.String(), asm.ErrEntryMissing("X").Error()), stderr.String())
	assert.Contains(stderr.String(), "missing.as")

	_, err = os.Stat(filepath.Join(dir, "good.ob"))
	assert.NoError(err)
}

func TestCommand(t *testing.T) {
	assert := assert.New(t)

	dir := t.TempDir()
	source := filepath.Join(dir, "prog.as")
	assert.NoError(os.WriteFile(source, []byte("MAIN: mov r1,r2\nhlt\n.entry MAIN\n"), 0o644))
	conf := filepath.Join(dir, "asm14.star")
	assert.NoError(os.WriteFile(conf, []byte("keep_expanded = False\n"), 0o644))

	var stdout, stderr bytes.Buffer
	cmd := newCommand()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs([]string{"--config", conf, "--out", filepath.Join(dir, "build"), "--symbols", source})
	assert.NoError(cmd.Execute())

	ob, err := os.ReadFile(filepath.Join(dir, "build", "prog.ob"))
	assert.NoError(err)
	assert.Equal("  3 0\n", string(ob[:6]))
	_, err = os.Stat(filepath.Join(dir, "build", "prog.ent"))
	assert.NoError(err)
	_, err = os.Stat(filepath.Join(dir, "prog.am"))
	assert.ErrorIs(err, os.ErrNotExist)
	assert.Contains(stdout.String(), "MAIN")
	assert.Empty(stderr.String())

	cmd = newCommand()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs([]string{"--jobs", "0", source})
	assert.ErrorIs(cmd.Execute(), config.ErrJobsInvalid)

	cmd = newCommand()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs([]string{"--base", "0", source})
	assert.ErrorIs(cmd.Execute(), config.ErrBaseInvalid)

	cmd = newCommand()
	cmd.SetArgs([]string{})
	assert.Error(cmd.Execute())
}
