package validator

import (
	"testing"

	"github.com/gin-gonic/gin/binding"
	validatorV10 "github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Content string `json:"content" binding:"required"`
}

func TestSetupTranslatesWithJSONFieldNames(t *testing.T) {
	uni, err := Setup()
	require.NoError(t, err)

	err = binding.Validator.ValidateStruct(&sample{})
	require.Error(t, err)

	var verrs validatorV10.ValidationErrors
	require.ErrorAs(t, err, &verrs)

	trans, _ := uni.GetTranslator("en")
	assert.Equal(t, "content is a required field", verrs[0].Translate(trans))
}

func TestValidateStructIgnoresNonStructs(t *testing.T) {
	v := NewCustomValidator()

	assert.NoError(t, v.ValidateStruct(nil))
	assert.NoError(t, v.ValidateStruct([]string{"a"}))
	assert.NoError(t, v.ValidateStruct(&sample{Content: "x"}))
}
