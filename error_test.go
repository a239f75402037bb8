package pagescan_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/linotak/pagescan"
)

func TestErrorf(t *testing.T) {
	t.Parallel()

	err := pagescan.Errorf(pagescan.EINVALID, "invalid base URL %q", "::")

	assert.Equal(t, pagescan.EINVALID, pagescan.ErrorCode(err))
	assert.Equal(t, "invalid base URL \"::\"", pagescan.ErrorMessage(err))
}

func TestErrorCode_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, pagescan.ErrorCode(nil))
}

func TestErrorCode_NonApplicationError(t *testing.T) {
	t.Parallel()

	assert.Equal(t, pagescan.EINTERNAL, pagescan.ErrorCode(errors.New("disk on fire")))
}

func TestErrorMessage_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, pagescan.ErrorMessage(nil))
}

func TestErrorMessage_NonApplicationError(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Internal error.", pagescan.ErrorMessage(errors.New("disk on fire")))
}
