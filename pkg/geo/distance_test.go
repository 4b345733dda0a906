package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDistance_SamePointIsZero(t *testing.T) {
	assert.Equal(t, 0.0, Distance(28.6139, 77.2090, 28.6139, 77.2090))
}

func TestDistance_Symmetric(t *testing.T) {
	// Delhi <-> Mumbai
	d1 := Distance(28.6139, 77.2090, 19.0760, 72.8777)
	d2 := Distance(19.0760, 72.8777, 28.6139, 77.2090)
	assert.InDelta(t, d1, d2, 1e-9)
}

func TestDistance_KnownValue(t *testing.T) {
	// Delhi to Mumbai is roughly 1150 km great-circle
	d := Distance(28.6139, 77.2090, 19.0760, 72.8777)
	assert.InDelta(t, 1150, d, 20)
}

func TestDistance_ShortRange(t *testing.T) {
	// ~0.1 degree latitude is ~11.1 km
	d := Distance(10.0, 10.0, 10.1, 10.0)
	assert.InDelta(t, 11.1, d, 0.2)
}
