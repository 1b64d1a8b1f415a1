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

package mechanism

import (
	"fmt"

	"golang.org/x/exp/constraints"
	"golang.org/x/exp/maps"

	"github.com/krimler/alignDP/checks"
	"github.com/krimler/alignDP/noise"
	"github.com/krimler/alignDP/rand"
	"github.com/krimler/alignDP/sketch"
)

// SelectivePrivatizerOptions contains the options necessary to initialize a
// SelectivePrivatizer.
type SelectivePrivatizerOptions[C constraints.Ordered] struct {
	// Categories that receive the strong privacy guarantee. Required.
	RareCategories []C
	// Privacy parameter ε applied to rare categories. Must be strictly
	// positive and finite: the no-privacy sentinel would defeat the purpose
	// of the mechanism. Required.
	EpsilonRare float64
	// Records observed regular categories for non-private analytics.
	// Optional.
	Sketch *sketch.Membership
	// Noise perturbing the unit count of each rare occurrence. Defaults to
	// Laplace noise drawn from Rand.
	Noise noise.Noise
	// Source of random draws for the default noise. Defaults to a fresh
	// crypto-seeded instance.
	Rand *rand.Rand
}

// SelectivePrivatizer applies a differential-privacy guarantee only to rare
// categories. A rare event is treated as a unit count, perturbed with
// Laplace noise, and materialized as max(0, noisedCount) repetitions of the
// category; this noised multiplicity is the mechanism's only source of
// output-length variance. Regular events pass through untouched, with an
// effectively infinite ε, and are tracked in a plain tally and an optional
// membership sketch.
//
// Uniform local-DP mechanisms spend the same budget on every category no
// matter how identifying it is. Concentrating the budget on the rare
// categories trades utility on them for leaving the common categories
// undistorted.
//
// Not thread-safe.
type SelectivePrivatizer[C constraints.Ordered] struct {
	classifier  *Classifier[C]
	epsilonRare float64
	noise       noise.Noise
	sketch      *sketch.Membership
	regular     map[C]int64
	output      []C
}

// NewSelectivePrivatizer returns a SelectivePrivatizer with an empty output
// stream.
func NewSelectivePrivatizer[C constraints.Ordered](opt *SelectivePrivatizerOptions[C]) (*SelectivePrivatizer[C], error) {
	if opt == nil {
		opt = &SelectivePrivatizerOptions[C]{}
	}
	if err := checks.CheckEpsilonStrict(opt.EpsilonRare, "EpsilonRare"); err != nil {
		return nil, err
	}
	n := opt.Noise
	if n == nil {
		n = noise.Laplace(opt.Rand)
	}
	return &SelectivePrivatizer[C]{
		classifier:  NewClassifier(opt.RareCategories),
		epsilonRare: opt.EpsilonRare,
		noise:       n,
		sketch:      opt.Sketch,
		regular:     make(map[C]int64),
	}, nil
}

// Process feeds one event through the privatizer.
func (sp *SelectivePrivatizer[C]) Process(category C) error {
	if sp.classifier.IsRare(category) {
		noisy, err := sp.noise.AddNoiseInt64(1, sp.epsilonRare)
		if err != nil {
			return fmt.Errorf("couldn't noise rare-event count: %w", err)
		}
		for i := int64(0); i < noisy; i++ {
			sp.output = append(sp.output, category)
		}
		return nil
	}
	sp.regular[category]++
	if sp.sketch != nil {
		sp.sketch.Add(fmt.Sprint(category))
	}
	sp.output = append(sp.output, category)
	return nil
}

// ProcessAll feeds every event of the stream through the privatizer in
// order.
func (sp *SelectivePrivatizer[C]) ProcessAll(events []C) error {
	for _, c := range events {
		if err := sp.Process(c); err != nil {
			return err
		}
	}
	return nil
}

// Output returns the privatized stream accumulated so far. The slice is
// owned by the mechanism; callers must not modify it.
func (sp *SelectivePrivatizer[C]) Output() []C {
	return sp.output
}

// RegularTally returns a copy of the non-private tally of regular events
// seen so far.
func (sp *SelectivePrivatizer[C]) RegularTally() map[C]int64 {
	return maps.Clone(sp.regular)
}
