package config

import (
	"errors"

	"github.com/ezrec/asm14/translate"
)

var f = translate.From

var (
	ErrJobsInvalid = errors.New(f("jobs must be at least 1"))
	ErrBaseInvalid = errors.New(f("base address out of range"))
)

type ErrUnknown string

func (err ErrUnknown) Error() string {
	return f("unknown setting %v", string(err))
}

type ErrType struct {
	Name string
	Want string
	Got  string
}

func (err ErrType) Error() string {
	return f("setting %v is %v, want %v", err.Name, err.Got, err.Want)
}

type ErrSetting struct {
	Name string
	Err  error
}

func (err ErrSetting) Error() string {
	return f("setting %v: %v", err.Name, err.Err)
}

func (err ErrSetting) Unwrap() error {
	return err.Err
}
