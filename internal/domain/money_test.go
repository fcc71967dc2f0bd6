package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCentavos(t *testing.T) {
	cases := []struct {
		in   string
		want Centavos
	}{
		{"100", 10000},
		{"40.25", 4025},
		{"0", 0},
		{"12,34", 1234},
		{"12.344", 1234},
		{"12.345", 1235},
		{"12.346", 1235},
		{".5", 50},
	}
	for _, tc := range cases {
		got, err := ParseCentavos(tc.in)
		require.NoError(t, err, "input %q", tc.in)
		assert.Equal(t, tc.want, got, "input %q", tc.in)
	}
}

func TestParseCentavosRejects(t *testing.T) {
	for _, in := range []string{"", "-5", "+5", "abc", "1.2.3", "12.", "1e5"} {
		_, err := ParseCentavos(in)
		assert.ErrorIs(t, err, ErrInvalidAmount, "input %q", in)
	}
}

func TestCentavosString(t *testing.T) {
	assert.Equal(t, "100", Centavos(10000).String())
	assert.Equal(t, "40.25", Centavos(4025).String())
	assert.Equal(t, "0", Centavos(0).String())
	assert.Equal(t, "-60", Centavos(-6000).String())
	assert.Equal(t, "-0.50", Centavos(-50).String())
}

func TestCentavosJSON(t *testing.T) {
	b, err := json.Marshal(Centavos(4025))
	require.NoError(t, err)
	assert.Equal(t, "40.25", string(b))

	var c Centavos
	require.NoError(t, json.Unmarshal([]byte("100"), &c))
	assert.Equal(t, Centavos(10000), c)

	require.NoError(t, json.Unmarshal([]byte(`"40.25"`), &c))
	assert.Equal(t, Centavos(4025), c)

	assert.Error(t, json.Unmarshal([]byte(`-3`), &c))
}
