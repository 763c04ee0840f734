package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveFallsBackToDefault(t *testing.T) {
	b := NewBundle()

	assert.Equal(t, "en", b.Resolve("en"))
	assert.Equal(t, "tw", b.Resolve("tw"))
	assert.Equal(t, "en", b.Resolve(""))
	assert.Equal(t, "en", b.Resolve("fr"))
	assert.Equal(t, "en", b.Resolve("EN"))
}

func TestDictNeverNil(t *testing.T) {
	b := NewBundle()

	assert.Equal(t, "Health Tips", b.Dict("en")["title"])
	assert.Equal(t, "Akwaaba Mobi Mama", b.Dict("tw")["welcome"])

	// Unknown code resolves to the default dictionary instead of crashing.
	dict := b.Dict("xx")
	assert.NotNil(t, dict)
	assert.Equal(t, "Health Tips", dict["title"])
}

func TestSupported(t *testing.T) {
	b := NewBundle()

	assert.True(t, b.Supported("en"))
	assert.True(t, b.Supported("tw"))
	assert.False(t, b.Supported("xx"))
}
