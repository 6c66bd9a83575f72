package orders

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseOrderNumber(t *testing.T) {
	cases := []struct {
		in   string
		want int64
		ok   bool
	}{
		{"#1042", 1042, true},
		{"1042", 1042, true},
		{"#12abc", 12, true},
		{"  #7", 7, true},
		{"#-3", -3, true},
		{"", 0, false},
		{"#", 0, false},
		{"abc", 0, false},
	}
	for _, tc := range cases {
		got, ok := ParseOrderNumber(tc.in)
		assert.Equal(t, tc.ok, ok, tc.in)
		assert.Equal(t, tc.want, got, tc.in)
	}
}

func TestNextFromSequence(t *testing.T) {
	assert.EqualValues(t, 1001, nextFromSequence(0, nil))
	assert.EqualValues(t, 1051, nextFromSequence(1050, []Order{{OrderNumber: "#1010"}}))
	assert.EqualValues(t, 1043, nextFromSequence(1001, []Order{{OrderNumber: "#1042"}}))
	assert.EqualValues(t, 1001, nextFromSequence(0, []Order{{OrderNumber: "#5"}}))
}

func TestParseNumbering(t *testing.T) {
	n, err := ParseNumbering("")
	require.NoError(t, err)
	assert.Equal(t, NumberingLast, n)

	n, err = ParseNumbering("Sequence")
	require.NoError(t, err)
	assert.Equal(t, NumberingSequence, n)

	_, err = ParseNumbering("random")
	assert.Error(t, err)
}
