package driver

import (
	"github.com/ezrec/asm14/translate"
)

var f = translate.From

type ErrFile struct {
	Name string
	Err  error
}

func (err ErrFile) Error() string {
	return f("%v: %v", err.Name, err.Err)
}

func (err ErrFile) Unwrap() error {
	return err.Err
}
