// Package config loads assembler settings from Starlark configuration files.
package config

import (
	"strings"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"

	"github.com/ezrec/asm14/asm"
)

// Config is the set of assembler settings.
type Config struct {
	BaseAddress   int            // Address of the first instruction.
	MaxLineLength int            // Maximum significant characters per source line.
	OutputDir     string         // Directory for artifacts; empty places them beside the source.
	Verbose       bool           // Verbose logging.
	Jobs          int            // Files assembled concurrently.
	KeepExpanded  bool           // Write the macro expanded source as a .am file.
	Predefine     map[string]int // Constants defined before every source.
}

// Default returns the default configuration.
func Default() (cfg Config) {
	cfg = Config{
		BaseAddress:   asm.BASE_ADDRESS,
		MaxLineLength: asm.LINE_LENGTH_MAX,
		Jobs:          1,
		KeepExpanded:  true,
		Predefine:     map[string]int{},
	}
	return
}

// Validate checks the ranges of the settings.
// The base address must be in 1..ADDRESS_LIMIT-1.
func (cfg Config) Validate() (err error) {
	switch {
	case cfg.Jobs < 1:
		err = ErrJobsInvalid
	case cfg.BaseAddress < 1 || cfg.BaseAddress >= asm.ADDRESS_LIMIT:
		err = ErrBaseInvalid
	}
	return
}

// predeclared are the names visible to configuration files.
func predeclared() starlark.StringDict {
	return starlark.StringDict{
		"BASE_ADDRESS":    starlark.MakeInt(asm.BASE_ADDRESS),
		"LINE_LENGTH_MAX": starlark.MakeInt(asm.LINE_LENGTH_MAX),
		"ADDRESS_LIMIT":   starlark.MakeInt(asm.ADDRESS_LIMIT),
	}
}

func asInt(name string, value starlark.Value) (i int, err error) {
	i, err = starlark.AsInt32(value)
	if err != nil {
		err = ErrType{Name: name, Want: "int", Got: value.Type()}
	}
	return
}

func asBool(name string, value starlark.Value) (b bool, err error) {
	st_bool, ok := value.(starlark.Bool)
	if !ok {
		err = ErrType{Name: name, Want: "bool", Got: value.Type()}
		return
	}
	b = bool(st_bool)
	return
}

func asString(name string, value starlark.Value) (s string, err error) {
	s, ok := starlark.AsString(value)
	if !ok {
		err = ErrType{Name: name, Want: "string", Got: value.Type()}
	}
	return
}

func asDefines(name string, value starlark.Value) (defines map[string]int, err error) {
	dict, ok := value.(*starlark.Dict)
	if !ok {
		err = ErrType{Name: name, Want: "dict", Got: value.Type()}
		return
	}

	defines = make(map[string]int, dict.Len())
	for _, item := range dict.Items() {
		key, ok := starlark.AsString(item[0])
		if !ok {
			err = ErrType{Name: name, Want: "dict of string to int", Got: item[0].Type()}
			return
		}
		defines[key], err = asInt(name+"."+key, item[1])
		if err != nil {
			return
		}
	}

	return
}

// Load executes a Starlark configuration file. Its globals override the
// defaults. src is the file content, or nil to read filename.
func Load(filename string, src any) (cfg Config, err error) {
	cfg = Default()

	thread := starlark.Thread{Name: "config"}
	opts := syntax.FileOptions{}
	globals, err := starlark.ExecFileOptions(&opts, &thread, filename, src, predeclared())
	if err != nil {
		return
	}

	for _, name := range globals.Keys() {
		if strings.HasPrefix(name, "_") {
			continue
		}

		value := globals[name]
		switch name {
		case "base_address":
			cfg.BaseAddress, err = asInt(name, value)
		case "max_line_length":
			cfg.MaxLineLength, err = asInt(name, value)
		case "output_dir":
			cfg.OutputDir, err = asString(name, value)
		case "verbose":
			cfg.Verbose, err = asBool(name, value)
		case "jobs":
			cfg.Jobs, err = asInt(name, value)
		case "keep_expanded":
			cfg.KeepExpanded, err = asBool(name, value)
		case "predefine":
			cfg.Predefine, err = asDefines(name, value)
		default:
			if _, ok := value.(*starlark.Function); ok {
				continue
			}
			err = ErrUnknown(name)
		}
		if err != nil {
			return
		}
	}

	err = cfg.Validate()
	if err != nil {
		err = &ErrSetting{Name: filename, Err: err}
	}

	return
}
