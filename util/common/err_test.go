package common

import (
	"errors"
	"testing"

	"usergate/logger"

	"github.com/op/go-logging"
	"github.com/stretchr/testify/assert"
)

func TestNewError(t *testing.T) {
	err := NewError("wrong data", "username")
	assert.Contains(t, err.Error(), "wrong data username")

	err = NewErrorf("create user %q: %v", "bob", errors.New("disk full"))
	assert.Equal(t, `create user "bob": disk full`, err.Error())
}

func TestCombine(t *testing.T) {
	assert.NoError(t, Combine())
	assert.NoError(t, Combine(nil, nil))

	err := Combine(errors.New("first"), nil, errors.New("second"))
	assert.EqualError(t, err, "first, second")

	assert.EqualError(t, Combine(nil, errors.New("only")), "only")
}

func TestRecover(t *testing.T) {
	logger.InitLogger(logging.ERROR)

	assert.NotPanics(t, func() {
		defer Recover("test")
		panic("boom")
	})

	// Nothing to recover outside a panic.
	assert.Nil(t, Recover(""))
}
