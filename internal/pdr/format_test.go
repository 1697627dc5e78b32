package pdr

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatDH(t *testing.T) {
	assert.Equal(t, "14,000,000 DH", FormatDH(14000000))
	assert.Equal(t, "0 DH", FormatDH(0))
}

func TestFormatMDH(t *testing.T) {
	assert.Equal(t, "14.0 MDH", FormatMDH(14000000))
	assert.Equal(t, "0.5 MDH", FormatMDH(500000))
}

func TestFormatPercent(t *testing.T) {
	assert.Equal(t, "42.5%", FormatPercent(42.5, true))
	assert.Equal(t, NoData, FormatPercent(0, false))
}

func TestShortAmount(t *testing.T) {
	assert.Equal(t, "7.00M", ShortAmount(7000000))
	assert.Equal(t, "1.5K", ShortAmount(1500))
	assert.Equal(t, "950", ShortAmount(950))
}
