package driver

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/asm14/asm"
	"github.com/ezrec/asm14/config"
	"github.com/ezrec/asm14/object"
	"github.com/ezrec/asm14/preproc"
)

const goodSource = `; good
mcr twice
  inc r1
  inc r1
endmcr
MAIN: clr r1
twice
.entry MAIN
.extern W
jmp W
hlt
`

const badSource = `.entry X
hlt
`

func newDriver() (drv *Driver, mfs *object.MemFS) {
	mfs = object.NewMemFS()
	mfs.WriteFile("good.as", []byte(goodSource))
	mfs.WriteFile("bad.as", []byte(badSource))
	mfs.WriteFile("macro.as", []byte("endmcr\n"))

	drv = &Driver{
		Config: config.Default(),
		FS:     mfs,
	}
	return
}

func TestStem(t *testing.T) {
	assert := assert.New(t)

	stem, source := Stem("dir/prog.as")
	assert.Equal("dir/prog", stem)
	assert.Equal("dir/prog.as", source)

	stem, source = Stem("prog")
	assert.Equal("prog", stem)
	assert.Equal("prog.as", source)
}

func TestAssemble(t *testing.T) {
	assert := assert.New(t)

	drv, mfs := newDriver()

	res := drv.Assemble("good")
	assert.NoError(res.Err)
	assert.Equal("good.as", res.Name)
	assert.NotNil(res.Program)
	assert.NotNil(res.Symbols)
	assert.Empty(res.Diagnostics)

	assert.Equal([]string{"bad.as", "good.am", "good.as", "good.ent", "good.ext", "good.ob", "macro.as"}, mfs.Files())

	expanded, _ := mfs.ReadFile("good.am")
	assert.Equal("; good\nMAIN: clr r1\n  inc r1\n  inc r1\n.entry MAIN\n.extern W\njmp W\nhlt\n", string(expanded))

	ob, _ := mfs.ReadFile("good.ob")
	lines := strings.Split(strings.TrimRight(string(ob), "\n"), "\n")
	assert.Equal("  9 0", lines[0])
	assert.Len(lines, 10)

	ent, _ := mfs.ReadFile("good.ent")
	assert.Equal("MAIN 0100\n", string(ent))
	ext, _ := mfs.ReadFile("good.ext")
	assert.Equal("W 0107\n", string(ext))
}

func TestAssembleFailure(t *testing.T) {
	assert := assert.New(t)

	drv, mfs := newDriver()

	res := drv.Assemble("bad.as")
	assert.ErrorIs(res.Err, asm.ErrEntryMissing("X"))
	var efile *ErrFile
	if assert.True(errors.As(res.Err, &efile)) {
		assert.Equal("bad.as", efile.Name)
	}
	assert.Nil(res.Program)
	if assert.Len(res.Diagnostics, 1) {
		assert.Equal("bad.am", res.Diagnostics[0].File)
		assert.Equal(1, res.Diagnostics[0].LineNo)
	}

	_, ok := mfs.ReadFile("bad.ob")
	assert.False(ok)
	_, ok = mfs.ReadFile("bad.ent")
	assert.False(ok)

	res = drv.Assemble("macro")
	assert.ErrorIs(res.Err, preproc.ErrMacroLonelyEnd)

	res = drv.Assemble("missing")
	assert.Error(res.Err)
}

func TestAssembleOutputDir(t *testing.T) {
	assert := assert.New(t)

	drv, mfs := newDriver()
	drv.Config.OutputDir = "build"
	drv.Config.KeepExpanded = false
	drv.Config.Predefine = map[string]int{"N": 3}

	res := drv.Assemble("good.as")
	assert.NoError(res.Err)
	_, ok := mfs.ReadFile("build/good.ob")
	assert.True(ok)
	_, ok = mfs.ReadFile("good.am")
	assert.False(ok)

	kind, ok := res.Symbols.Kind("N")
	assert.True(ok)
	assert.Equal(asm.KIND_CONSTANT, kind)

	res = drv.Assemble("good.as")
	assert.NoError(res.Err)
}

func TestRun(t *testing.T) {
	assert := assert.New(t)

	for _, jobs := range []int{0, 1, 4} {
		drv, _ := newDriver()
		drv.Config.Jobs = jobs

		var mutex sync.Mutex
		var names []string
		drv.Report = func(res *Result) {
			mutex.Lock()
			defer mutex.Unlock()
			names = append(names, res.Name)
		}

		err := drv.Run(context.Background(), []string{"good", "bad", "good.as", "macro"})
		assert.Error(err)
		assert.ErrorIs(err, asm.ErrEntryMissing("X"))
		assert.ErrorIs(err, preproc.ErrMacroLonelyEnd)
		assert.Equal([]string{"good.as", "bad.as", "good.as", "macro.as"}, names)
	}

	drv, _ := newDriver()
	assert.NoError(drv.Run(context.Background(), []string{"good"}))
}

func TestRunCanceled(t *testing.T) {
	assert := assert.New(t)

	drv, mfs := newDriver()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := drv.Run(ctx, []string{"good"})
	assert.ErrorIs(err, context.Canceled)
	_, ok := mfs.ReadFile("good.ob")
	assert.False(ok)
}
