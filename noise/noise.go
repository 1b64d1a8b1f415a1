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

// Package noise contains methods to generate and add noise to data.
package noise

// Noise is an interface for primitives that add calibrated noise to a value
// of a unit-sensitivity counting query to make it differentially private.
type Noise interface {
	// AddNoiseInt64 adds noise to the specified int64 x so that the output is
	// ε-differentially private given the unit sensitivity of the query.
	AddNoiseInt64(x int64, epsilon float64) (int64, error)

	// AddNoiseFloat64 adds noise to the specified float64 x so that the output
	// is ε-differentially private given the unit sensitivity of the query.
	AddNoiseFloat64(x float64, epsilon float64) (float64, error)
}

type none struct{}

// None returns a Noise instance that passes every value through unchanged.
// Useful where a mechanism slot requires a Noise but no distortion is wanted.
func None() Noise {
	return none{}
}

func (none) AddNoiseInt64(x int64, _ float64) (int64, error) {
	return x, nil
}

func (none) AddNoiseFloat64(x float64, _ float64) (float64, error) {
	return x, nil
}

func (none) String() string {
	return "No Noise"
}
