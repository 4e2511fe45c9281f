package card

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleCard(id ID, rarity Rarity, tags ...string) Card {
	return New(id, "Card "+string(id), KindUnit, rarity, [EdgeCount]Edge{"a", "b", "c", "d", "e", "f"}, tags)
}

func TestRarity_RankOrdering(t *testing.T) {
	assert.Less(t, RarityCommon.Rank(), RarityUncommon.Rank())
	assert.Less(t, RarityUncommon.Rank(), RarityRare.Rank())
	assert.Equal(t, -1, Rarity("mythic").Rank())
}

func TestCard_TagQueries(t *testing.T) {
	c := sampleCard("c1", RarityCommon, "flying", "mechanical")

	assert.True(t, c.HasTag("flying"))
	assert.False(t, c.HasTag("aquatic"))
	assert.True(t, c.HasEveryTag([]string{"flying", "mechanical"}))
	assert.False(t, c.HasEveryTag([]string{"flying", "aquatic"}))
	assert.True(t, c.HasEveryTag(nil))
}

func TestDeck_PickResolvesInRequestOrder(t *testing.T) {
	d := NewDeck("d1", "p1", "Starter", []Card{
		sampleCard("c1", RarityCommon),
		sampleCard("c2", RarityUncommon),
		sampleCard("c3", RarityRare),
	})

	picked, err := d.Pick([]ID{"c3", "c1"})
	require.NoError(t, err)
	require.Len(t, picked, 2)
	assert.Equal(t, ID("c3"), picked[0].ID)
	assert.Equal(t, ID("c1"), picked[1].ID)

	_, err = d.Pick([]ID{"c1", "missing"})
	assert.Error(t, err)
}

func TestDeck_ValidateRejectsDuplicatesAndUnknownRarity(t *testing.T) {
	d := NewDeck("d1", "p1", "Starter", []Card{
		sampleCard("c1", RarityCommon),
		sampleCard("c1", RarityCommon),
	})
	assert.Error(t, d.Validate())

	d = NewDeck("d1", "p1", "Starter", []Card{sampleCard("c1", "mythic")})
	assert.Error(t, d.Validate())

	d = NewDeck("d1", "p1", "Starter", []Card{
		sampleCard("c1", RarityCommon),
		sampleCard("c2", RarityRare),
	})
	assert.NoError(t, d.Validate())
}
