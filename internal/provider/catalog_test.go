package provider

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookup_CaseInsensitive(t *testing.T) {
	for _, key := range []string{"pcs", "PCS", " Pcs "} {
		p, ok := Lookup(key)
		require.True(t, ok, "key %q should resolve", key)
		assert.Equal(t, "PCS", p.DisplayName)
		assert.Equal(t, 16, p.CodeLength)
	}
}

func TestLookup_Unknown(t *testing.T) {
	_, ok := Lookup("itunes")
	assert.False(t, ok)
}

func TestNormalize_StripsAndTruncates(t *testing.T) {
	pcs, ok := Lookup("pcs")
	require.True(t, ok)

	// Separators and stray characters are stripped, then the value is
	// truncated to the provider length.
	assert.Equal(t, "1111222233334444", pcs.Normalize("1111 2222-3333.4444"))
	assert.Equal(t, "1111222233334444", pcs.Normalize("11112222333344449999"))
	assert.Equal(t, "1234", pcs.Normalize("12ab34"))
	assert.Equal(t, "", pcs.Normalize("abcd"))
}

func TestNormalize_SteamUppercases(t *testing.T) {
	steam, ok := Lookup("steam")
	require.True(t, ok)

	assert.Equal(t, "ABCDE12345FGHIJ", steam.Normalize("abcde-12345-fghij"))
}

func TestFormat_Grouping(t *testing.T) {
	pcs, _ := Lookup("pcs")
	assert.Equal(t, "1111 2222 3333 4444", pcs.Format("1111222233334444"))

	steam, _ := Lookup("steam")
	assert.Equal(t, "ABCDE-12345-FGHIJ", steam.Format("ABCDE12345FGHIJ"))

	// Partial codes group as far as the input goes.
	assert.Equal(t, "1111 22", pcs.Format("111122"))

	// Providers without grouping render verbatim.
	neosurf, _ := Lookup("neosurf")
	assert.Equal(t, "0123456789", neosurf.Format("0123456789"))
}

func TestFormat_NormalizeInverse(t *testing.T) {
	for _, key := range Keys() {
		p, ok := Lookup(key)
		require.True(t, ok)

		code := p.Normalize("ABC0123456789012345678")
		assert.Equal(t, code, p.Normalize(p.Format(code)),
			"formatting must stay cosmetic for %s", key)
	}
}

func TestComplete(t *testing.T) {
	neosurf, _ := Lookup("neosurf")
	assert.True(t, neosurf.Complete("0123456789"))
	assert.False(t, neosurf.Complete("012345678"))
}
