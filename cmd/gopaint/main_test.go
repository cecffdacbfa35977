package main

import (
	"testing"

	"github.com/annel0/gopaint/internal/brush"
	"github.com/annel0/gopaint/internal/brush/settings"
	"github.com/annel0/gopaint/internal/vec"
	"github.com/annel0/gopaint/internal/world/block"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseVec3(t *testing.T) {
	v, err := parseVec3("1, -2,3")
	require.NoError(t, err)
	assert.Equal(t, vec.Vec3{X: 1, Y: -2, Z: 3}, v)

	_, err = parseVec3("1,2")
	assert.Error(t, err)
	_, err = parseVec3("a,b,c")
	assert.Error(t, err)
}

func TestApplyFlags(t *testing.T) {
	reg := brush.DefaultRegistry()
	s := settings.New(settings.DefaultLimits(), reg)
	s.AddBlock(block.Of(block.SandBlockID), 7)

	err := applyFlags(s, reg, options{
		brush:   "splatter brush",
		size:    4,
		falloff: 80,
		blocks:  "stone, dirt:1",
		mask:    "grass_block",
	})
	require.NoError(t, err)

	assert.Equal(t, "Splatter Brush", s.Brush().Name())
	assert.Equal(t, 4, s.Size())
	assert.Equal(t, 80, s.FalloffStrength())
	assert.Equal(t, []block.Content{block.Of(block.StoneBlockID), {ID: block.DirtBlockID, Data: 1}}, s.Blocks(),
		"палитра из флага заменяет прежнюю")
	assert.Equal(t, brush.MaskInterface, s.MaskMode())
	assert.NotNil(t, s.Mask())
}

func TestApplyFlags_Errors(t *testing.T) {
	reg := brush.DefaultRegistry()
	s := settings.New(settings.DefaultLimits(), reg)

	assert.Error(t, applyFlags(s, reg, options{brush: "Lasso Brush", falloff: -1}))
	assert.Error(t, applyFlags(s, reg, options{blocks: "unobtainium", falloff: -1}))
	assert.ErrorIs(t, applyFlags(s, reg, options{mask: "fire", falloff: -1}), settings.ErrInvalidMask)
}
