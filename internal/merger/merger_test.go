package merger

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHeadersMatch(t *testing.T) {
	tests := map[string]struct {
		a, b     []string
		expected bool
	}{
		"identical":           {a: []string{"a", "b"}, b: []string{"a", "b"}, expected: true},
		"surrounding spaces":  {a: []string{"a ", " b"}, b: []string{"a", "b"}, expected: true},
		"tabs":                {a: []string{"\ta"}, b: []string{"a\t"}, expected: true},
		"different length":    {a: []string{"a", "b"}, b: []string{"a", "b", "c"}, expected: false},
		"case sensitive":      {a: []string{"A"}, b: []string{"a"}, expected: false},
		"order sensitive":     {a: []string{"a", "b"}, b: []string{"b", "a"}, expected: false},
		"inner space matters": {a: []string{"a b"}, b: []string{"ab"}, expected: false},
		"both empty":          {a: []string{}, b: nil, expected: true},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, test.expected, HeadersMatch(test.a, test.b))
			assert.Equal(t, test.expected, HeadersMatch(test.b, test.a))
		})
	}
}

func TestDivergence(t *testing.T) {
	assert.Equal(t, -1, Divergence([]string{"x", "y"}, []string{"x ", "y"}))
	assert.Equal(t, 1, Divergence([]string{"x", "y"}, []string{"x", "z"}))
	assert.Equal(t, 2, Divergence([]string{"x", "y"}, []string{"x", "y", "z"}))
	assert.Equal(t, 0, Divergence([]string{"x"}, nil))
}

func TestTag(t *testing.T) {
	assert.Equal(t, "f1.c", Tag("in/f1.csv", 4))
	assert.Equal(t, "ab", Tag("/data/ab", 4))
	assert.Equal(t, "FY24", Tag("FY24_Q1_export.csv", 4))
	assert.Equal(t, "отче", Tag("отчет.csv", 4))
	assert.Equal(t, "FY24_Q", Tag("FY24_Q1_export.csv", 6))
}
