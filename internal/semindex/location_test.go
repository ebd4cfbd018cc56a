package semindex

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func loc(sl, sc, el, ec int) Location {
	return Location{FilePath: "f.py", StartLine: sl, StartColumn: sc, EndLine: el, EndColumn: ec}
}

func TestLocationContains(t *testing.T) {
	outer := loc(1, 1, 10, 1)

	tests := []struct {
		name  string
		inner Location
		want  bool
	}{
		{"strictly inside", loc(2, 1, 5, 10), true},
		{"equal boundaries count as contained", outer, true},
		{"same start, earlier end", loc(1, 1, 9, 99), true},
		{"starts before", loc(1, 0, 5, 1), false},
		{"ends after", loc(5, 1, 10, 2), false},
		{"single point inside", loc(3, 4, 3, 4), true},
		{"column ordering within same line", loc(10, 1, 10, 1), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, outer.Contains(tt.inner))
		})
	}
}

func TestLocationArea(t *testing.T) {
	assert.Equal(t, 0, loc(3, 4, 3, 4).Area())
	assert.Equal(t, 16, loc(3, 4, 3, 20).Area())
	assert.Equal(t, 10000, loc(1, 1, 2, 1).Area())

	// The smaller of two nested spans has the smaller area.
	assert.Less(t, loc(2, 1, 3, 1).Area(), loc(1, 1, 10, 1).Area())
}

func TestLocationEqual(t *testing.T) {
	a := loc(1, 2, 3, 4)
	assert.True(t, a.Equal(loc(1, 2, 3, 4)))
	assert.False(t, a.Equal(loc(1, 2, 3, 5)))

	b := a
	b.FilePath = "other.py"
	assert.False(t, a.Equal(b))
}
