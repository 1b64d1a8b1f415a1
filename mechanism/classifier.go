//
// Copyright 2024 The alignDP Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//

// Package mechanism implements the privatization mechanisms that map true
// category labels to privatized emissions: uniform randomized response in
// its binary-flip and k-ary variants, and the selective privatizer that
// concentrates the privacy budget on rare categories.
//
// Categories are opaque ordered values; the mechanisms work for any such
// type without interpreting it.
package mechanism

import (
	"golang.org/x/exp/constraints"
)

// Classifier reports whether a category belongs to a fixed rare set. The set
// is captured at construction and never mutated.
type Classifier[C constraints.Ordered] struct {
	rare map[C]struct{}
}

// NewClassifier returns a Classifier over the given rare categories.
func NewClassifier[C constraints.Ordered](rareCategories []C) *Classifier[C] {
	rare := make(map[C]struct{}, len(rareCategories))
	for _, c := range rareCategories {
		rare[c] = struct{}{}
	}
	return &Classifier[C]{rare: rare}
}

// IsRare is a pure O(1) membership test.
func (cl *Classifier[C]) IsRare(category C) bool {
	_, ok := cl.rare[category]
	return ok
}
