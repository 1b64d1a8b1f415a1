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
	"math"

	"golang.org/x/exp/constraints"
	"golang.org/x/exp/slices"

	"github.com/krimler/alignDP/checks"
	"github.com/krimler/alignDP/rand"
)

// TruthProbability returns p = e^ε / (e^ε + V - 1), the probability that the
// k-ary randomized-response mechanism reports the true category for a
// vocabulary of V categories. It is monotonically increasing in ε for fixed
// V, approaches 1/V as ε approaches 0, and equals 1 exactly when ε is +∞.
func TruthProbability(epsilon float64, vocabularySize int) float64 {
	e := math.Exp(epsilon)
	if math.IsInf(e, 1) {
		return 1
	}
	return e / (e + float64(vocabularySize) - 1)
}

// FlipProbability returns 1 / (e^ε + 1), the probability that the
// binary-flip mechanism reports the other category. It equals 0 exactly when
// ε is +∞ and approaches 1/2 as ε approaches 0.
func FlipProbability(epsilon float64) float64 {
	e := math.Exp(epsilon)
	if math.IsInf(e, 1) {
		return 0
	}
	return 1 / (e + 1)
}

// RandomizedResponseOptions contains the options necessary to initialize a
// RandomizedResponse.
type RandomizedResponseOptions[C constraints.Ordered] struct {
	// Privacy parameter ε. +Inf disables the mechanism (identity transform).
	// Required.
	Epsilon float64
	// Universe of categories the mechanism can emit. Must contain at least 2
	// distinct values. Required.
	Vocabulary []C
	// Source of random draws. Defaults to a fresh crypto-seeded instance.
	Rand *rand.Rand
}

// RandomizedResponse is the k-ary local-DP randomized-response mechanism:
// every event is reported truthfully with probability
//
//	p = e^ε / (e^ε + V - 1)
//
// and as a uniformly chosen alternative from the rest of the vocabulary
// otherwise. It emits exactly one category per input event, so the
// privatized stream always matches the input stream in length.
//
// Not thread-safe.
type RandomizedResponse[C constraints.Ordered] struct {
	epsilon float64
	vocab   []C
	index   map[C]int
	p       float64
	rand    *rand.Rand
	output  []C
}

// NewRandomizedResponse returns a RandomizedResponse with an empty output
// stream.
func NewRandomizedResponse[C constraints.Ordered](opt *RandomizedResponseOptions[C]) (*RandomizedResponse[C], error) {
	if opt == nil {
		opt = &RandomizedResponseOptions[C]{}
	}
	vocab, index := normalizeVocabulary(opt.Vocabulary)
	if err := checks.CheckVocabularySize(len(vocab), 2); err != nil {
		return nil, err
	}
	if err := checks.CheckEpsilonOrNoPrivacy(opt.Epsilon); err != nil {
		return nil, err
	}
	r := opt.Rand
	if r == nil {
		r = rand.New()
	}
	return &RandomizedResponse[C]{
		epsilon: opt.Epsilon,
		vocab:   vocab,
		index:   index,
		p:       TruthProbability(opt.Epsilon, len(vocab)),
		rand:    r,
	}, nil
}

// TruthProbability returns the probability p with which this instance
// reports the true category.
func (rr *RandomizedResponse[C]) TruthProbability() float64 {
	return rr.p
}

// Privatize reports a single event, appending the emission to the output
// stream and returning it.
func (rr *RandomizedResponse[C]) Privatize(category C) C {
	emitted := category
	if rr.rand.Uniform() > rr.p {
		emitted = rr.alternative(category)
	}
	rr.output = append(rr.output, emitted)
	return emitted
}

// PrivatizeAll reports every event of the stream in order.
func (rr *RandomizedResponse[C]) PrivatizeAll(events []C) {
	for _, c := range events {
		rr.Privatize(c)
	}
}

// Output returns the privatized stream accumulated so far. The slice is
// owned by the mechanism; callers must not modify it.
func (rr *RandomizedResponse[C]) Output() []C {
	return rr.output
}

// alternative draws uniformly from the vocabulary excluding the true
// category. A category outside the vocabulary has the whole vocabulary as
// alternatives.
func (rr *RandomizedResponse[C]) alternative(category C) C {
	idx, ok := rr.index[category]
	if !ok {
		return rr.vocab[rr.rand.I63n(int64(len(rr.vocab)))]
	}
	j := rr.rand.I63n(int64(len(rr.vocab) - 1))
	if j >= int64(idx) {
		j++
	}
	return rr.vocab[j]
}

// BinaryResponseOptions contains the options necessary to initialize a
// BinaryResponse.
type BinaryResponseOptions[C constraints.Ordered] struct {
	// Privacy parameter ε. +Inf disables the mechanism (identity transform).
	// Required.
	Epsilon float64
	// Universe of categories. Must contain exactly 2 distinct values.
	// Required.
	Vocabulary []C
	// Source of random draws. Defaults to a fresh crypto-seeded instance.
	Rand *rand.Rand
}

// BinaryResponse is the minimal two-category randomized response: with
// probability 1/(e^ε+1) it reports the other category of the pair, otherwise
// it reports honestly. A category outside the pair is flipped to the first
// pair element. Like the k-ary mechanism it emits exactly one category per
// input event.
//
// Not thread-safe.
type BinaryResponse[C constraints.Ordered] struct {
	epsilon  float64
	pair     [2]C
	flipProb float64
	rand     *rand.Rand
	output   []C
}

// NewBinaryResponse returns a BinaryResponse with an empty output stream.
func NewBinaryResponse[C constraints.Ordered](opt *BinaryResponseOptions[C]) (*BinaryResponse[C], error) {
	if opt == nil {
		opt = &BinaryResponseOptions[C]{}
	}
	vocab, _ := normalizeVocabulary(opt.Vocabulary)
	if err := checks.CheckBinaryVocabularySize(len(vocab)); err != nil {
		return nil, err
	}
	if err := checks.CheckEpsilonOrNoPrivacy(opt.Epsilon); err != nil {
		return nil, err
	}
	r := opt.Rand
	if r == nil {
		r = rand.New()
	}
	return &BinaryResponse[C]{
		epsilon:  opt.Epsilon,
		pair:     [2]C{vocab[0], vocab[1]},
		flipProb: FlipProbability(opt.Epsilon),
		rand:     r,
	}, nil
}

// FlipProbability returns the probability with which this instance reports
// the other category.
func (br *BinaryResponse[C]) FlipProbability() float64 {
	return br.flipProb
}

// Privatize reports a single event, appending the emission to the output
// stream and returning it.
func (br *BinaryResponse[C]) Privatize(category C) C {
	emitted := category
	if br.rand.Uniform() <= br.flipProb {
		emitted = br.other(category)
	}
	br.output = append(br.output, emitted)
	return emitted
}

// PrivatizeAll reports every event of the stream in order.
func (br *BinaryResponse[C]) PrivatizeAll(events []C) {
	for _, c := range events {
		br.Privatize(c)
	}
}

// Output returns the privatized stream accumulated so far. The slice is
// owned by the mechanism; callers must not modify it.
func (br *BinaryResponse[C]) Output() []C {
	return br.output
}

func (br *BinaryResponse[C]) other(category C) C {
	if category == br.pair[0] {
		return br.pair[1]
	}
	return br.pair[0]
}

// normalizeVocabulary sorts and deduplicates a vocabulary and builds the
// category-to-position index the mechanisms draw alternatives with.
func normalizeVocabulary[C constraints.Ordered](vocabulary []C) ([]C, map[C]int) {
	vocab := slices.Clone(vocabulary)
	slices.Sort(vocab)
	vocab = slices.Compact(vocab)
	index := make(map[C]int, len(vocab))
	for i, c := range vocab {
		index[c] = i
	}
	return vocab, index
}
