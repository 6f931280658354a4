package synth

import (
	"errors"

	"github.com/ezrec/fractran/translate"
)

var f = translate.From

var (
	ErrBudgetInvalid = errors.New(f("step budget invalid"))
	ErrTargetUnknown = errors.New(f("render target unknown"))
)
