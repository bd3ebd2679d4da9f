package settings

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDataDefaultsAndValues(t *testing.T) {
	d := New()
	assert.Equal(t, 0.0, d.GetDouble("missing"))
	assert.Equal(t, int64(0), d.GetInt("missing"))

	d.SetDefaultDouble("blur_radius", 4)
	d.SetDefaultInt("color", 0x80000000)
	assert.Equal(t, 4.0, d.GetDouble("blur_radius"))
	assert.Equal(t, int64(0x80000000), d.GetInt("color"))
	assert.False(t, d.HasUserValue("blur_radius"))

	d.SetDouble("blur_radius", -5)
	assert.Equal(t, -5.0, d.GetDouble("blur_radius"))
	assert.True(t, d.HasUserValue("blur_radius"))
}

func TestDataConversions(t *testing.T) {
	d := New()
	d.SetInt("n", 7)
	d.SetDouble("f", 2.75)
	assert.Equal(t, 7.0, d.GetDouble("n"))
	assert.Equal(t, int64(2), d.GetInt("f"))
}
