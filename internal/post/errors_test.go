package post

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorConstructorsUnwrapToKind(t *testing.T) {
	err := InvalidArgument("Invalid date '%s' on post %d.", "soon", 3)
	assert.True(t, errors.Is(err, ErrInvalidArgument))
	assert.Equal(t, "Invalid date 'soon' on post 3.", err.Error())

	err = NotFound()
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.Equal(t, MsgPostNotFound, err.Error())

	err = MissingField(MsgAuthorRequired)
	assert.True(t, errors.Is(err, ErrMissingField))
	assert.False(t, errors.Is(err, ErrInvalidArgument))
	assert.Equal(t, MsgAuthorRequired, err.Error())
}
