// Package query generates randomized search queries from fixed word pools.
package query

import (
	"math/rand/v2"
)

// Shape is the structural pattern of a generated query.
type Shape string

const (
	ShapeAny      Shape = "any"
	ShapeSimple   Shape = "simple"
	ShapePhrase   Shape = "phrase"
	ShapeSentence Shape = "sentence"
)

// Shapes lists the accepted shape names in display order.
var Shapes = []Shape{ShapeAny, ShapeSimple, ShapePhrase, ShapeSentence}

var concreteShapes = []Shape{ShapeSimple, ShapePhrase, ShapeSentence}

// UnknownShapeError is returned when a shape name is not recognised.
type UnknownShapeError struct {
	Name string
}

func (e *UnknownShapeError) Error() string {
	return "unknown query type: " + e.Name + " (supported: any, simple, phrase, sentence)"
}

// ParseShape validates a shape name.
func ParseShape(name string) (Shape, error) {
	for _, s := range Shapes {
		if string(s) == name {
			return s, nil
		}
	}
	return "", &UnknownShapeError{Name: name}
}

// Generator produces queries. It owns its random source, so two generators
// built with the same seed and called in the same order yield the same queries.
type Generator struct {
	pools *Pools
	rng   *rand.Rand
}

// NewGenerator creates a generator over pools. A nil seed seeds from the
// runtime's entropy source.
func NewGenerator(pools *Pools, seed *int64) *Generator {
	var src rand.Source
	if seed != nil {
		s := uint64(*seed)
		src = rand.NewPCG(s, s)
	} else {
		src = rand.NewPCG(rand.Uint64(), rand.Uint64())
	}
	return &Generator{pools: pools, rng: rand.New(src)}
}

// Simple returns a single word from a uniformly chosen category.
func (g *Generator) Simple() string {
	category := g.pickCategory()
	return g.pick(g.pools.Words(category))
}

// Phrase returns "<adjective> <noun>".
func (g *Generator) Phrase() string {
	adjective := g.pick(g.pools.Words(CategoryAdjectives))
	noun := g.noun()
	return adjective + " " + noun
}

// Sentence returns "<action> <adjective> <noun>".
func (g *Generator) Sentence() string {
	action := g.pick(g.pools.Words(CategoryActions))
	adjective := g.pick(g.pools.Words(CategoryAdjectives))
	noun := g.noun()
	return action + " " + adjective + " " + noun
}

// Next returns a query of the requested shape. ShapeAny picks one of the
// concrete shapes first; unrecognised shapes fall back to Simple.
func (g *Generator) Next(shape Shape) string {
	if shape == ShapeAny {
		shape = concreteShapes[g.rng.IntN(len(concreteShapes))]
	}
	switch shape {
	case ShapePhrase:
		return g.Phrase()
	case ShapeSentence:
		return g.Sentence()
	default:
		return g.Simple()
	}
}

// noun picks a word from a random category, never from the adjectives.
func (g *Generator) noun() string {
	category := g.pickCategory()
	if category == CategoryAdjectives {
		category = CategoryFood
	}
	return g.pick(g.pools.Words(category))
}

func (g *Generator) pickCategory() string {
	return g.pools.Categories[g.rng.IntN(len(g.pools.Categories))].Name
}

func (g *Generator) pick(words []string) string {
	return words[g.rng.IntN(len(words))]
}
