package sky

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStarSize(t *testing.T) {
	assert.Greater(t, StarSize(-1.46), StarSize(2))
	assert.Greater(t, StarSize(2), StarSize(5))
	assert.Equal(t, float32(1), StarSize(12))
	assert.Equal(t, float32(6), StarSize(-10))
}

func TestTint(t *testing.T) {
	assert.Equal(t, uint8(255), Tint(0).B)

	hot := Tint(25000)
	cool := Tint(3200)
	assert.Greater(t, hot.B, cool.B, "hot stars are bluer")
	assert.Greater(t, cool.R, cool.B, "cool stars are redder")
	assert.Equal(t, uint8(255), hot.A)

	sun := Tint(5778)
	assert.Equal(t, uint8(255), sun.R)
	assert.Greater(t, sun.B, uint8(200))
}

func TestBrightness(t *testing.T) {
	assert.Equal(t, uint8(255), Brightness(0))
	assert.Equal(t, uint8(155), Brightness(7))
	assert.Equal(t, uint8(90), Brightness(20))
}
