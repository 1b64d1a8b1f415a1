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

// Package checks contains construction-time validation for the privacy
// mechanisms. All checks are fatal to the mechanism instance being built:
// an invalid parameter is surfaced to the caller, never silently coerced.
package checks

import (
	"errors"
	"fmt"
	"math"
)

// Error kinds wrapped by every check, so that callers can branch with
// errors.Is.
var (
	// ErrInvalidParameter marks a numeric parameter that is out of range,
	// such as a non-positive or non-finite epsilon.
	ErrInvalidParameter = errors.New("invalid parameter")
	// ErrInvalidConfiguration marks a structurally invalid mechanism setup,
	// such as a vocabulary that is too small.
	ErrInvalidConfiguration = errors.New("invalid configuration")
)

const epsilonName = "Epsilon"

func verifyName(defaultName string, nameSlice []string) (string, error) {
	var name string
	switch len(nameSlice) {
	case 0:
		name = defaultName
	case 1:
		name = nameSlice[0]
	default:
		return "", fmt.Errorf("This should never happen. There should be 0 or 1 'name' parameter, got %d", len(nameSlice))
	}
	return name, nil
}

// CheckEpsilonStrict returns an error if ε is nonpositive, NaN or ±∞.
// Used where the no-privacy sentinel is not an acceptable value, such as the
// rare-event budget of the selective privatizer.
func CheckEpsilonStrict(epsilon float64, name ...string) error {
	epsName, err := verifyName(epsilonName, name)
	if err != nil {
		return err
	}
	if epsilon <= 0 || math.IsInf(epsilon, 0) || math.IsNaN(epsilon) {
		return fmt.Errorf("%w: %s is %f, must be strictly positive and finite", ErrInvalidParameter, epsName, epsilon)
	}
	return nil
}

// CheckEpsilonOrNoPrivacy returns an error if ε is nonpositive, NaN or -∞.
// Unlike CheckEpsilonStrict it accepts +∞, the sentinel that disables a
// mechanism entirely.
func CheckEpsilonOrNoPrivacy(epsilon float64, name ...string) error {
	epsName, err := verifyName(epsilonName, name)
	if err != nil {
		return err
	}
	if math.IsInf(epsilon, 1) {
		return nil
	}
	if epsilon <= 0 || math.IsInf(epsilon, -1) || math.IsNaN(epsilon) {
		return fmt.Errorf("%w: %s is %f, must be strictly positive, or +Inf to disable the mechanism", ErrInvalidParameter, epsName, epsilon)
	}
	return nil
}

// CheckVocabularySize returns an error if a randomized-response vocabulary
// holds fewer than min distinct categories.
func CheckVocabularySize(size, min int) error {
	if size < min {
		return fmt.Errorf("%w: vocabulary holds %d distinct categories, must hold at least %d", ErrInvalidConfiguration, size, min)
	}
	return nil
}

// CheckBinaryVocabularySize returns an error if a binary-flip vocabulary does
// not hold exactly two distinct categories.
func CheckBinaryVocabularySize(size int) error {
	if size != 2 {
		return fmt.Errorf("%w: vocabulary holds %d distinct categories, must hold exactly 2", ErrInvalidConfiguration, size)
	}
	return nil
}

// CheckSketchParams returns an error if the membership-sketch sizing is
// degenerate: both the bit-vector length and the hash count must be positive.
func CheckSketchParams(bits, hashes uint) error {
	if bits == 0 {
		return fmt.Errorf("%w: sketch bit-vector length is 0, must be positive", ErrInvalidConfiguration)
	}
	if hashes == 0 {
		return fmt.Errorf("%w: sketch hash count is 0, must be positive", ErrInvalidConfiguration)
	}
	return nil
}
