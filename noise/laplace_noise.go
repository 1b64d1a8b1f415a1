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

package noise

import (
	"math"

	"github.com/krimler/alignDP/checks"
	"github.com/krimler/alignDP/rand"
)

// sensitivity is the L_1 sensitivity of the counting query being privatized.
// The mechanisms in this module noise the unit count of a single occurrence,
// so it is fixed at 1.
const sensitivity = 1.0

type laplace struct {
	rand *rand.Rand
}

// Laplace returns a Noise instance that adds Laplace noise with location 0
// and scale sensitivity/ε, drawing from r. When r is nil a fresh
// crypto-seeded source is used.
//
// Passing ε = +Inf is the explicit no-privacy sentinel: the input is returned
// unchanged without consuming entropy.
func Laplace(r *rand.Rand) Noise {
	if r == nil {
		r = rand.New()
	}
	return &laplace{rand: r}
}

// AddNoiseFloat64 adds Laplace noise to the specified float64 x so that the
// output is ε-differentially private.
func (lap *laplace) AddNoiseFloat64(x float64, epsilon float64) (float64, error) {
	if err := checks.CheckEpsilonOrNoPrivacy(epsilon); err != nil {
		return 0, err
	}
	if math.IsInf(epsilon, 1) {
		return x, nil
	}
	return x + lap.sample(sensitivity/epsilon), nil
}

// AddNoiseInt64 adds Laplace noise to the specified int64 x so that the
// output is ε-differentially private. The noised value is truncated toward
// zero. The result may be negative; callers that need a non-negative count
// are responsible for clamping.
func (lap *laplace) AddNoiseInt64(x int64, epsilon float64) (int64, error) {
	noised, err := lap.AddNoiseFloat64(float64(x), epsilon)
	if err != nil {
		return 0, err
	}
	return int64(noised), nil
}

func (*laplace) String() string {
	return "Laplace Noise"
}

// sample draws from a Laplace distribution with location 0 and the given
// scale, as the difference of two exponential draws. Both uniforms are in
// (0,1], so the logs stay finite where the inverse CDF has singular
// endpoints.
func (lap *laplace) sample(scale float64) float64 {
	return scale * math.Log(lap.rand.Uniform()/lap.rand.Uniform())
}
