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

// Package rand provides the random draws consumed by the privacy mechanisms.
//
// Every Rand owns its source. Mechanisms that are handed distinct instances
// never share mutable generator state, and instances built with NewSeeded
// reproduce their draws exactly, which makes simulation runs repeatable.
package rand

import (
	cryptorand "crypto/rand"
	"encoding/binary"
	mathrand "math/rand"

	log "github.com/golang/glog"
)

// Rand is a sequential source of uniform random draws. Not thread-safe: a
// Rand must be owned by a single mechanism instance per run.
type Rand struct {
	src *mathrand.Rand
}

// New returns a Rand seeded from the operating system's entropy source.
func New() *Rand {
	var b [8]byte
	if _, err := cryptorand.Read(b[:]); err != nil {
		log.Fatalf("out of randomness, should never happen: %v", err)
	}
	return NewSeeded(int64(binary.LittleEndian.Uint64(b[:])))
}

// NewSeeded returns a Rand with a fixed seed. Two instances built with the
// same seed produce identical draw sequences.
func NewSeeded(seed int64) *Rand {
	return &Rand{src: mathrand.New(mathrand.NewSource(seed))}
}

// Uniform returns a float64 from the interval (0,1]. Zero is excluded so
// that callers may take the log of the output.
func (r *Rand) Uniform() float64 {
	return 1 - r.src.Float64()
}

// I63n returns an integer from the set {0,...,n-1} uniformly at random.
// The value of n must be positive.
func (r *Rand) I63n(n int64) int64 {
	return r.src.Int63n(n)
}

// Boolean returns true or false with equal probability.
func (r *Rand) Boolean() bool {
	return r.src.Int63()&1 == 1
}

// Sign returns +1.0 or -1.0 with equal probabilities.
func (r *Rand) Sign() float64 {
	if r.Boolean() {
		return 1.0
	}
	return -1.0
}
