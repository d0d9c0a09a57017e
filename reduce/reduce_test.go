package reduce

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSingleProcessIsIdentity(t *testing.T) {
	var g Reducer = SingleProcess{}
	assert.Equal(t, 7, g.SumInt(7))
	assert.Equal(t, -2.5, g.SumFloat64(-2.5))
	assert.Equal(t, complex(1, -3), g.SumComplex128(complex(1, -3)))
	assert.Equal(t, 9.0, g.MaxFloat64(9.0))
}
