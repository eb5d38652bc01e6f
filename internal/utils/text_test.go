package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFold(t *testing.T) {
	assert.Equal(t, "marco", Fold("Março"))
	assert.Equal(t, "fevrier", Fold("FÉVRIER"))
	assert.Equal(t, "aout", Fold("août"))
	assert.Equal(t, "coracao", Fold("coração"))
	assert.Equal(t, "plain", Fold("plain"))
}
