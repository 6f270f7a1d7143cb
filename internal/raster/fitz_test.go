package raster

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOpen_RejectsGarbage(t *testing.T) {
	_, err := NewFitzRasterizer().Open([]byte("not a pdf"))

	assert.Error(t, err)
}
