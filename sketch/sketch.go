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

// Package sketch provides the approximate-membership structure used to track
// which regular (non-rare) categories have been observed.
//
// The sketch is auxiliary bookkeeping only. It carries no privacy guarantee
// and recording an item consumes no epsilon budget.
package sketch

import (
	"github.com/bits-and-blooms/bloom/v3"

	"github.com/krimler/alignDP/checks"
)

// Params sizes the sketch: the length m of the bit vector and the number k
// of hash functions.
type Params struct {
	Bits   uint
	Hashes uint
}

// ForCapacity returns Params sized for n insertions at the target
// false-positive rate, using m = -n·ln(p)/ln(2)² and k = m/n·ln(2).
func ForCapacity(n uint, fpRate float64) Params {
	m, k := bloom.EstimateParameters(n, fpRate)
	return Params{Bits: m, Hashes: k}
}

// Membership records observed items in a Bloom filter. MightContain can
// report false positives but never false negatives, and there is no way to
// remove an item once added.
//
// Not thread-safe.
type Membership struct {
	filter *bloom.BloomFilter
}

// New returns an empty Membership sketch with the given sizing.
func New(p Params) (*Membership, error) {
	if err := checks.CheckSketchParams(p.Bits, p.Hashes); err != nil {
		return nil, err
	}
	return &Membership{filter: bloom.New(p.Bits, p.Hashes)}, nil
}

// Add records an item.
func (m *Membership) Add(item string) {
	m.filter.AddString(item)
}

// MightContain reports whether item may have been added. A false result is
// definitive; a true result may be a false positive.
func (m *Membership) MightContain(item string) bool {
	return m.filter.TestString(item)
}

// ApproximateCount estimates the number of distinct items added.
func (m *Membership) ApproximateCount() uint32 {
	return m.filter.ApproximatedSize()
}
