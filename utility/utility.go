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

// Package utility measures the reconstruction error between an original
// category distribution and a privatized output stream.
package utility

import (
	"math"
	"strconv"

	"golang.org/x/exp/constraints"
	"golang.org/x/exp/slices"
	"gonum.org/v1/gonum/stat"
)

// Ratio is a relative error that may be undefined when its denominator is
// zero. The undefined state is a first-class variant, distinguishable from a
// numeric 0. The zero value of Ratio is the undefined ratio.
type Ratio struct {
	value   float64
	defined bool
}

// DefinedRatio returns a defined Ratio with the given value.
func DefinedRatio(value float64) Ratio {
	return Ratio{value: value, defined: true}
}

// UndefinedRatio returns the undefined Ratio.
func UndefinedRatio() Ratio {
	return Ratio{}
}

// Value returns the numeric ratio and whether it is defined. When the second
// return value is false the first is meaningless.
func (r Ratio) Value() (float64, bool) {
	return r.value, r.defined
}

// Defined reports whether the ratio is defined.
func (r Ratio) Defined() bool {
	return r.defined
}

// String renders the ratio, using "N/A" for the undefined variant.
func (r Ratio) String() string {
	if !r.defined {
		return "N/A"
	}
	return strconv.FormatFloat(r.value, 'f', 4, 64)
}

// CategoryRecord is the per-category utility of a privatized stream.
type CategoryRecord[C constraints.Ordered] struct {
	Category C
	// Original is the true count of the category.
	Original int64
	// Noisy is the count of the category in the privatized stream.
	Noisy int64
	// RelativeError is |Original-Noisy|/Original, undefined when Original
	// is 0.
	RelativeError Ratio
}

// Report is the utility of one privatized stream against the true
// distribution.
type Report[C constraints.Ordered] struct {
	// Categories holds one record per category in the union of the original
	// and noisy distributions, sorted by category for reproducible output.
	Categories []CategoryRecord[C]
	// TotalOriginal is the total number of true events.
	TotalOriginal int64
	// TotalNoisy is the length of the privatized stream.
	TotalNoisy int64
	// TotalRelativeError is |TotalOriginal-TotalNoisy|/TotalOriginal,
	// undefined when TotalOriginal is 0.
	TotalRelativeError Ratio
}

// Count tallies a stream of categories.
func Count[C comparable](stream []C) map[C]int64 {
	counts := make(map[C]int64)
	for _, c := range stream {
		counts[c]++
	}
	return counts
}

// Evaluate compares the original category counts against a privatized
// stream. It is a pure function: neither input is modified and division by
// zero yields the undefined Ratio, never a failure.
func Evaluate[C constraints.Ordered](originalCounts map[C]int64, privatized []C) Report[C] {
	noisyCounts := Count(privatized)

	keys := make([]C, 0, len(originalCounts))
	for c := range originalCounts {
		keys = append(keys, c)
	}
	for c := range noisyCounts {
		if _, ok := originalCounts[c]; !ok {
			keys = append(keys, c)
		}
	}
	slices.Sort(keys)

	report := Report[C]{
		Categories: make([]CategoryRecord[C], 0, len(keys)),
		TotalNoisy: int64(len(privatized)),
	}
	for _, c := range keys {
		original := originalCounts[c]
		noisy := noisyCounts[c]
		report.Categories = append(report.Categories, CategoryRecord[C]{
			Category:      c,
			Original:      original,
			Noisy:         noisy,
			RelativeError: relativeError(original, noisy),
		})
		report.TotalOriginal += original
	}
	report.TotalRelativeError = relativeError(report.TotalOriginal, report.TotalNoisy)
	return report
}

// MeanDefined returns the mean of the defined ratios, or the undefined Ratio
// when none are defined. Used to average utility across repeated simulation
// runs.
func MeanDefined(ratios []Ratio) Ratio {
	var values []float64
	for _, r := range ratios {
		if v, ok := r.Value(); ok {
			values = append(values, v)
		}
	}
	if len(values) == 0 {
		return UndefinedRatio()
	}
	return DefinedRatio(stat.Mean(values, nil))
}

func relativeError(original, noisy int64) Ratio {
	if original <= 0 {
		return UndefinedRatio()
	}
	return DefinedRatio(math.Abs(float64(original-noisy)) / float64(original))
}
