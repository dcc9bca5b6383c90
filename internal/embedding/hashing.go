// Otto - Vehicle Comparison and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/otto

// Package embedding provides a deterministic feature-hashing embedder used
// when no hosted embedding model is configured.
package embedding

import (
	"context"
	"hash/fnv"
	"math"
	"strings"
	"unicode"
)

// DefaultDimensions is the vector width produced by NewHashing(0).
const DefaultDimensions = 256

// Hashing maps tokens and token bigrams into a fixed-width signed vector and
// L2-normalises it. Equal texts always produce equal vectors.
type Hashing struct {
	dims int
}

// NewHashing creates an embedder with the given width.
func NewHashing(dims int) *Hashing {
	if dims <= 0 {
		dims = DefaultDimensions
	}
	return &Hashing{dims: dims}
}

// Dimensions returns the vector width.
func (h *Hashing) Dimensions() int {
	return h.dims
}

// GenerateEmbeddings embeds each text. It only fails when ctx is done.
func (h *Hashing) GenerateEmbeddings(ctx context.Context, texts []string) ([][]float64, error) {
	out := make([][]float64, len(texts))
	for i, text := range texts {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		out[i] = h.embed(text)
	}
	return out, nil
}

func (h *Hashing) embed(text string) []float64 {
	vec := make([]float64, h.dims)
	tokens := Tokenize(text)

	for i, tok := range tokens {
		h.add(vec, tok, 1.0)
		if i > 0 {
			h.add(vec, tokens[i-1]+" "+tok, 0.5)
		}
	}

	var norm float64
	for _, v := range vec {
		norm += v * v
	}
	if norm == 0 {
		return vec
	}
	norm = math.Sqrt(norm)
	for i := range vec {
		vec[i] /= norm
	}
	return vec
}

func (h *Hashing) add(vec []float64, feature string, weight float64) {
	hasher := fnv.New64a()
	_, _ = hasher.Write([]byte(feature))
	sum := hasher.Sum64()

	idx := int(sum % uint64(h.dims))
	if sum&(1<<63) != 0 {
		weight = -weight
	}
	vec[idx] += weight
}

// Tokenize lowercases text and splits it on anything that is not a letter or digit.
func Tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}
