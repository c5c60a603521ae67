package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPostcodeRule(t *testing.T) {
	v := New()

	assert.NoError(t, v.Var("3000", "au_postcode"))
	assert.Error(t, v.Var("300", "au_postcode"))
	assert.Error(t, v.Var("30001", "au_postcode"))
	assert.Error(t, v.Var("3OOO", "au_postcode"))
}

func TestStruct(t *testing.T) {
	type input struct {
		Postcode string `validate:"omitempty,au_postcode"`
		Limit    int    `validate:"min=1"`
	}

	v := New()
	assert.NoError(t, v.Struct(input{Limit: 1}))
	assert.Error(t, v.Struct(input{Postcode: "abc", Limit: 1}))
	assert.Error(t, v.Struct(input{}))
}
