package common

import (
	"errors"
	"fmt"

	"usergate/logger"
)

func NewErrorf(format string, a ...any) error {
	msg := fmt.Sprintf(format, a...)
	return errors.New(msg)
}

func NewError(a ...any) error {
	msg := fmt.Sprintln(a...)
	return errors.New(msg)
}

// Combine merges multiple errors into one, skipping nils.
func Combine(errs ...error) error {
	var errmsgs []string
	for _, err := range errs {
		if err != nil {
			errmsgs = append(errmsgs, err.Error())
		}
	}
	if len(errmsgs) == 0 {
		return nil
	}
	msg := errmsgs[0]
	for _, errmsg := range errmsgs[1:] {
		msg += ", " + errmsg
	}
	return errors.New(msg)
}

func Recover(msg string) any {
	panicErr := recover()
	if panicErr != nil {
		if msg != "" {
			logger.Error(msg, "panic:", panicErr)
		}
	}
	return panicErr
}
