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

package sketch

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/krimler/alignDP/checks"
)

func TestMembershipHasNoFalseNegatives(t *testing.T) {
	m, err := New(ForCapacity(1000, 0.01))
	require.NoError(t, err)

	for i := 0; i < 1000; i++ {
		m.Add(fmt.Sprintf("item-%d", i))
	}
	for i := 0; i < 1000; i++ {
		assert.True(t, m.MightContain(fmt.Sprintf("item-%d", i)),
			"added item item-%d must always be reported as present", i)
	}
}

func TestMembershipFalsePositiveRateIsBounded(t *testing.T) {
	m, err := New(ForCapacity(1000, 0.01))
	require.NoError(t, err)

	for i := 0; i < 1000; i++ {
		m.Add(fmt.Sprintf("item-%d", i))
	}
	falsePositives := 0
	const probes = 10000
	for i := 0; i < probes; i++ {
		if m.MightContain(fmt.Sprintf("absent-%d", i)) {
			falsePositives++
		}
	}
	// Sized for a 1% rate; 5% leaves generous slack.
	assert.Less(t, float64(falsePositives)/probes, 0.05)
}

func TestEmptyMembershipContainsNothing(t *testing.T) {
	m, err := New(Params{Bits: 1000, Hashes: 5})
	require.NoError(t, err)

	for i := 0; i < 100; i++ {
		assert.False(t, m.MightContain(fmt.Sprintf("item-%d", i)))
	}
}

func TestApproximateCountGrowsWithInsertions(t *testing.T) {
	m, err := New(ForCapacity(1000, 0.01))
	require.NoError(t, err)

	require.Zero(t, m.ApproximateCount())
	for i := 0; i < 500; i++ {
		m.Add(fmt.Sprintf("item-%d", i))
	}
	count := m.ApproximateCount()
	assert.Greater(t, count, uint32(400))
	assert.Less(t, count, uint32(600))
}

func TestForCapacityReturnsPositiveSizing(t *testing.T) {
	p := ForCapacity(1000, 0.01)
	assert.Positive(t, p.Bits)
	assert.Positive(t, p.Hashes)
}

func TestNewRejectsDegenerateParams(t *testing.T) {
	for _, tc := range []struct {
		name   string
		params Params
	}{
		{"zero bits", Params{Bits: 0, Hashes: 5}},
		{"zero hashes", Params{Bits: 1000, Hashes: 0}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			_, err := New(tc.params)
			assert.True(t, errors.Is(err, checks.ErrInvalidConfiguration),
				"got %v, want an ErrInvalidConfiguration", err)
		})
	}
}
