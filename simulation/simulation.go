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

// Package simulation runs the privacy mechanisms side by side over a shared
// event stream and scores each against the true distribution.
package simulation

import (
	"fmt"

	log "github.com/golang/glog"
	"golang.org/x/exp/slices"

	"github.com/krimler/alignDP/checks"
	"github.com/krimler/alignDP/mechanism"
	"github.com/krimler/alignDP/rand"
	"github.com/krimler/alignDP/sketch"
	"github.com/krimler/alignDP/utility"
)

// Mechanism identifiers used in comparison results.
const (
	MechanismBinaryResponse = "BinaryRandomizedResponse"
	MechanismKAryResponse   = "KAryRandomizedResponse"
	MechanismALIGNDP        = "ALIGNDP"
)

// Offsets added to the base seed so that mechanisms and repeated runs draw
// from independent generators.
const (
	seedOffsetBinary = 1
	seedOffsetKAry   = 2
	seedOffsetRare   = 3
	seedRunStride    = 101
)

// Config describes one comparison run.
type Config struct {
	// Vocabulary of categories the randomized-response mechanisms may emit.
	// Derived from the event stream when empty.
	Vocabulary []string
	// RareCategories receive the strong guarantee under ALIGNDP. Every rare
	// category must belong to the vocabulary. Required.
	RareCategories []string
	// Epsilon is the privacy parameter given to every mechanism under
	// comparison. For ALIGNDP it is the rare-event budget, so it must be
	// strictly positive and finite. Required.
	Epsilon float64
	// SketchParams sizes the regular-event membership sketch. Defaults to a
	// sketch sized for the event-stream length at a 1% false-positive rate.
	SketchParams sketch.Params
	// Seed makes the run reproducible when non-zero. Zero draws a fresh
	// crypto seed per mechanism.
	Seed int64
	// Runs is the number of repetitions performed by RunRepeated. Defaults
	// to 1.
	Runs int
}

// Result is the scored output of a single mechanism.
type Result struct {
	Mechanism string
	Report    utility.Report[string]
}

// RunComparison feeds the event stream independently through each mechanism
// and evaluates every privatized stream against the true distribution. The
// binary-flip mechanism participates only when the vocabulary holds exactly
// two categories.
func RunComparison(events []string, cfg *Config) ([]Result, error) {
	vocab, err := resolveVocabulary(events, cfg)
	if err != nil {
		return nil, err
	}
	originalCounts := utility.Count(events)
	log.Infof("comparing mechanisms over %d events, %d categories, epsilon = %f", len(events), len(vocab), cfg.Epsilon)

	var results []Result

	if len(vocab) == 2 {
		br, err := mechanism.NewBinaryResponse(&mechanism.BinaryResponseOptions[string]{
			Epsilon:    cfg.Epsilon,
			Vocabulary: vocab,
			Rand:       mechanismRand(cfg.Seed, seedOffsetBinary),
		})
		if err != nil {
			return nil, fmt.Errorf("couldn't initialize binary randomized response: %w", err)
		}
		br.PrivatizeAll(events)
		results = append(results, Result{
			Mechanism: MechanismBinaryResponse,
			Report:    utility.Evaluate(originalCounts, br.Output()),
		})
	}

	rr, err := mechanism.NewRandomizedResponse(&mechanism.RandomizedResponseOptions[string]{
		Epsilon:    cfg.Epsilon,
		Vocabulary: vocab,
		Rand:       mechanismRand(cfg.Seed, seedOffsetKAry),
	})
	if err != nil {
		return nil, fmt.Errorf("couldn't initialize k-ary randomized response: %w", err)
	}
	rr.PrivatizeAll(events)
	results = append(results, Result{
		Mechanism: MechanismKAryResponse,
		Report:    utility.Evaluate(originalCounts, rr.Output()),
	})

	params := cfg.SketchParams
	if params == (sketch.Params{}) {
		params = sketch.ForCapacity(uint(len(events)), 0.01)
	}
	regularSketch, err := sketch.New(params)
	if err != nil {
		return nil, fmt.Errorf("couldn't initialize membership sketch: %w", err)
	}
	sp, err := mechanism.NewSelectivePrivatizer(&mechanism.SelectivePrivatizerOptions[string]{
		RareCategories: cfg.RareCategories,
		EpsilonRare:    cfg.Epsilon,
		Sketch:         regularSketch,
		Rand:           mechanismRand(cfg.Seed, seedOffsetRare),
	})
	if err != nil {
		return nil, fmt.Errorf("couldn't initialize selective privatizer: %w", err)
	}
	if err := sp.ProcessAll(events); err != nil {
		return nil, fmt.Errorf("couldn't run selective privatizer: %w", err)
	}
	results = append(results, Result{
		Mechanism: MechanismALIGNDP,
		Report:    utility.Evaluate(originalCounts, sp.Output()),
	})

	return results, nil
}

// CategoryMean is the mean per-category relative error across repeated runs.
type CategoryMean struct {
	Category          string
	MeanRelativeError utility.Ratio
}

// AveragedResult is the utility of one mechanism averaged over repeated
// runs. Undefined per-run ratios are skipped when averaging; a mean over no
// defined ratios is itself undefined.
type AveragedResult struct {
	Mechanism         string
	Runs              int
	CategoryMeans     []CategoryMean
	TotalMeanRelative utility.Ratio
}

// RunRepeated performs cfg.Runs comparison runs and averages the relative
// errors per mechanism and category. With a non-zero seed every run is
// derived deterministically from it.
func RunRepeated(events []string, cfg *Config) ([]AveragedResult, error) {
	runs := cfg.Runs
	if runs <= 0 {
		runs = 1
	}

	perCategory := make(map[string]map[string][]utility.Ratio)
	totals := make(map[string][]utility.Ratio)
	var order []string

	for run := 0; run < runs; run++ {
		runCfg := *cfg
		if cfg.Seed != 0 {
			runCfg.Seed = cfg.Seed + int64(run)*seedRunStride
		}
		results, err := RunComparison(events, &runCfg)
		if err != nil {
			return nil, err
		}
		for _, res := range results {
			if _, ok := perCategory[res.Mechanism]; !ok {
				perCategory[res.Mechanism] = make(map[string][]utility.Ratio)
				order = append(order, res.Mechanism)
			}
			for _, rec := range res.Report.Categories {
				perCategory[res.Mechanism][rec.Category] = append(perCategory[res.Mechanism][rec.Category], rec.RelativeError)
			}
			totals[res.Mechanism] = append(totals[res.Mechanism], res.Report.TotalRelativeError)
		}
	}

	averaged := make([]AveragedResult, 0, len(order))
	for _, name := range order {
		categories := make([]string, 0, len(perCategory[name]))
		for c := range perCategory[name] {
			categories = append(categories, c)
		}
		slices.Sort(categories)

		means := make([]CategoryMean, 0, len(categories))
		for _, c := range categories {
			means = append(means, CategoryMean{
				Category:          c,
				MeanRelativeError: utility.MeanDefined(perCategory[name][c]),
			})
		}
		averaged = append(averaged, AveragedResult{
			Mechanism:         name,
			Runs:              runs,
			CategoryMeans:     means,
			TotalMeanRelative: utility.MeanDefined(totals[name]),
		})
	}
	return averaged, nil
}

// resolveVocabulary derives the vocabulary from the events when the config
// does not fix one, and validates the rare/vocabulary relationship.
func resolveVocabulary(events []string, cfg *Config) ([]string, error) {
	if len(events) == 0 {
		return nil, fmt.Errorf("%w: event stream is empty", checks.ErrInvalidConfiguration)
	}
	vocab := cfg.Vocabulary
	if len(vocab) == 0 {
		seen := make(map[string]struct{})
		for _, e := range events {
			if _, ok := seen[e]; !ok {
				seen[e] = struct{}{}
				vocab = append(vocab, e)
			}
		}
	}
	inVocab := make(map[string]struct{}, len(vocab))
	for _, v := range vocab {
		inVocab[v] = struct{}{}
	}
	for _, r := range cfg.RareCategories {
		if _, ok := inVocab[r]; !ok {
			return nil, fmt.Errorf("%w: rare category %q is not part of the vocabulary", checks.ErrInvalidConfiguration, r)
		}
	}
	return vocab, nil
}

func mechanismRand(seed, offset int64) *rand.Rand {
	if seed == 0 {
		return rand.New()
	}
	return rand.NewSeeded(seed + offset)
}
