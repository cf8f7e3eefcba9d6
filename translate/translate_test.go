package translate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFrom(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("bus: unmapped", From("bus: unmapped"))
	assert.Contains(From("level %d", 3), "3")
}
