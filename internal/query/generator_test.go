package query

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedPtr(v int64) *int64 {
	return &v
}

func wordSet(p *Pools, categories ...string) map[string]bool {
	set := make(map[string]bool)
	for _, c := range categories {
		for _, w := range p.Words(c) {
			set[w] = true
		}
	}
	return set
}

func TestGeneratorSameSeedSameSequence(t *testing.T) {
	pools := DefaultPools()
	shapes := []Shape{ShapeAny, ShapeSimple, ShapePhrase, ShapeSentence, ShapeAny, ShapeAny}

	for _, seed := range []int64{0, 1, 42, -7, 1 << 40} {
		a := NewGenerator(pools, seedPtr(seed))
		b := NewGenerator(pools, seedPtr(seed))

		var got, want []string
		for i := 0; i < 50; i++ {
			shape := shapes[i%len(shapes)]
			got = append(got, a.Next(shape))
			want = append(want, b.Next(shape))
		}
		assert.Equal(t, want, got, "seed %d", seed)
	}
}

func TestGeneratorDifferentSeedsDiverge(t *testing.T) {
	pools := DefaultPools()
	a := NewGenerator(pools, seedPtr(1))
	b := NewGenerator(pools, seedPtr(2))

	var sa, sb []string
	for i := 0; i < 20; i++ {
		sa = append(sa, a.Next(ShapeSentence))
		sb = append(sb, b.Next(ShapeSentence))
	}
	assert.NotEqual(t, sa, sb)
}

func TestGeneratorSimpleReturnsPoolWord(t *testing.T) {
	pools := DefaultPools()
	all := wordSet(pools, pools.Names()...)
	g := NewGenerator(pools, seedPtr(3))

	for i := 0; i < 200; i++ {
		w := g.Simple()
		assert.NotContains(t, w, " ")
		assert.True(t, all[w], "unexpected word %q", w)
	}
}

func TestGeneratorPhraseNeverUsesAdjectiveNoun(t *testing.T) {
	pools := DefaultPools()
	adjectives := wordSet(pools, CategoryAdjectives)
	nouns := wordSet(pools, CategoryFood, CategoryCooking, CategoryTopics, CategoryActions)
	g := NewGenerator(pools, seedPtr(11))

	for i := 0; i < 500; i++ {
		parts := strings.Split(g.Phrase(), " ")
		require.Len(t, parts, 2)
		assert.True(t, adjectives[parts[0]], "first word %q is not an adjective", parts[0])
		assert.False(t, adjectives[parts[1]], "noun %q is an adjective", parts[1])
		assert.True(t, nouns[parts[1]], "unexpected noun %q", parts[1])
	}
}

func TestGeneratorSentenceShape(t *testing.T) {
	pools := DefaultPools()
	actions := wordSet(pools, CategoryActions)
	adjectives := wordSet(pools, CategoryAdjectives)
	g := NewGenerator(pools, seedPtr(5))

	for i := 0; i < 500; i++ {
		parts := strings.Split(g.Sentence(), " ")
		require.Len(t, parts, 3)
		assert.True(t, actions[parts[0]])
		assert.True(t, adjectives[parts[1]])
		assert.False(t, adjectives[parts[2]], "noun %q is an adjective", parts[2])
	}
}

func TestGeneratorNextDispatch(t *testing.T) {
	pools := DefaultPools()

	tests := []struct {
		name  string
		shape Shape
		words int
	}{
		{"simple", ShapeSimple, 1},
		{"phrase", ShapePhrase, 2},
		{"sentence", ShapeSentence, 3},
		{"unknown falls back to simple", Shape("haiku"), 1},
		{"empty falls back to simple", Shape(""), 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewGenerator(pools, seedPtr(9))
			for i := 0; i < 20; i++ {
				assert.Len(t, strings.Fields(g.Next(tt.shape)), tt.words)
			}
		})
	}
}

func TestGeneratorAnyCoversAllShapes(t *testing.T) {
	g := NewGenerator(DefaultPools(), seedPtr(42))

	seen := make(map[int]bool)
	for i := 0; i < 300; i++ {
		seen[len(strings.Fields(g.Next(ShapeAny)))] = true
	}
	assert.Equal(t, map[int]bool{1: true, 2: true, 3: true}, seen)
}

func TestGeneratorUnseeded(t *testing.T) {
	g := NewGenerator(DefaultPools(), nil)
	assert.NotEmpty(t, g.Next(ShapeAny))
}

func TestParseShape(t *testing.T) {
	for _, s := range Shapes {
		got, err := ParseShape(string(s))
		require.NoError(t, err)
		assert.Equal(t, s, got)
	}

	_, err := ParseShape("poem")
	var unknown *UnknownShapeError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "poem", unknown.Name)
}
