package dictionary

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilterDefinitions(t *testing.T) {
	raw := []rawDefinition{
		{text: "a device used for writing things down", example: "she grabbed a pen"},
		{text: "too short"},
		{text: "a word that describes some shit here", example: "clean example"},
		{text: "an enclosure for keeping animals safely", example: "the pigs live in a shit hole"},
	}

	clean := filterDefinitions(raw, "noun")

	require.Len(t, clean, 2)
	assert.Equal(t, "a device used for writing things down", clean[0].Definition)
	assert.Equal(t, "she grabbed a pen", clean[0].Example)
	assert.Equal(t, "noun", clean[0].PartOfSpeech)
	// the definition survives but its profane example is dropped
	assert.Equal(t, "an enclosure for keeping animals safely", clean[1].Definition)
	assert.Empty(t, clean[1].Example)
}
