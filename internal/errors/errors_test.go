package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"

	"statreport/domain/core"

	"github.com/stretchr/testify/assert"
)

func TestWrapKeepsCode(t *testing.T) {
	err := Wrap(InvalidInput("missing file field"), "upload rejected")
	assert.Equal(t, CodeInvalidInput, GetCode(err))
	assert.Equal(t, "upload rejected: missing file field", err.Error())
	assert.Nil(t, Wrap(nil, "ignored"))
}

func TestGetCodeFromDomainErrors(t *testing.T) {
	tests := []struct {
		err    error
		code   string
		status int
	}{
		{core.ErrUploadNotFound, CodeNotFound, http.StatusNotFound},
		{core.NewColumnError("age"), CodeNotFound, http.StatusNotFound},
		{core.NewMalformedInputError("a.xlsx", stderrors.New("zip")), CodeMalformedInput, http.StatusBadRequest},
		{fmt.Errorf("request: %w", core.ErrInvalidPolicy), CodeInvalidInput, http.StatusBadRequest},
		{core.NewAssemblyError("x", stderrors.New("bad png")), CodeAssemblyFailed, http.StatusInternalServerError},
		{stderrors.New("disk on fire"), CodeInternalError, http.StatusInternalServerError},
		{TooLarge(25), CodeTooLarge, http.StatusRequestEntityTooLarge},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.code, GetCode(tt.err), tt.err.Error())
		assert.Equal(t, tt.status, HTTPStatus(tt.err), tt.err.Error())
	}
}

func TestWrapDomainErrorStillMatches(t *testing.T) {
	err := Wrapf(core.ErrUploadNotFound, "upload %s", "abc")
	assert.True(t, stderrors.Is(err, core.ErrNotFound))
	assert.Equal(t, http.StatusNotFound, HTTPStatus(err))
	assert.True(t, IsAppError(err))
}

func TestWithCode(t *testing.T) {
	err := WithCode(CodeValidationError, stderrors.New("bad"))
	assert.Equal(t, CodeValidationError, GetCode(err))
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(err))
}
