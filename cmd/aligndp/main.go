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

// This is a command line utility which compares the uniform randomized
// response mechanisms against the ALIGNDP selective privatizer over a
// feedback event stream.
// Usage examples:
// go run ./cmd/aligndp --num_events=10000 --epsilon=1.0 --rare=like
// go run ./cmd/aligndp --input_file=feedback.csv --rare=override --runs=100 --seed=42
package main

import (
	"flag"
	"strings"

	log "github.com/golang/glog"

	"github.com/krimler/alignDP/rand"
	"github.com/krimler/alignDP/simulation"
)

var (
	inputFile      = flag.String("input_file", "", "Input csv file with raw feedback data. When empty, synthetic data is generated.")
	feedbackColumn = flag.String("feedback_column", "Feedback", "Name of the csv column holding the feedback category.")
	numEvents      = flag.Int("num_events", 10000, "Number of synthetic events to generate when no input file is given.")
	epsilon        = flag.Float64("epsilon", 1.0, "Privacy parameter epsilon used by every mechanism under comparison.")
	rare           = flag.String("rare", "override", "Comma-separated categories treated as rare by the selective privatizer.")
	runs           = flag.Int("runs", 1, "Number of simulation runs to average over.")
	seed           = flag.Int64("seed", 0, "Seed for reproducible runs. 0 uses fresh entropy.")
	outputPrefix   = flag.String("output_prefix", "", "When set, per-mechanism reports are written to <prefix>.<mechanism>.csv (single-run only).")
)

func main() {
	flag.Parse()

	var events []string
	var err error
	if *inputFile != "" {
		events, err = simulation.ReadCategoriesFromCSV(*inputFile, *feedbackColumn)
		if err != nil {
			log.Exitf("Couldn't load feedback data, err = %v", err)
		}
		log.Infof("Loaded %d events from %q", len(events), *inputFile)
	} else {
		var r *rand.Rand
		if *seed != 0 {
			r = rand.NewSeeded(*seed)
		}
		events = simulation.Categories(simulation.GenerateFeedback(*numEvents, r))
		log.Infof("Generated %d synthetic events", len(events))
	}

	cfg := &simulation.Config{
		RareCategories: splitCategories(*rare),
		Epsilon:        *epsilon,
		Seed:           *seed,
		Runs:           *runs,
	}

	if *runs > 1 {
		averaged, err := simulation.RunRepeated(events, cfg)
		if err != nil {
			log.Exitf("Couldn't run the comparison, err = %v", err)
		}
		for _, res := range averaged {
			log.Infof("%s: mean total relative error over %d runs = %v", res.Mechanism, res.Runs, res.TotalMeanRelative)
			for _, cm := range res.CategoryMeans {
				log.Infof("  %s: mean relative error = %v", cm.Category, cm.MeanRelativeError)
			}
		}
		return
	}

	results, err := simulation.RunComparison(events, cfg)
	if err != nil {
		log.Exitf("Couldn't run the comparison, err = %v", err)
	}
	for _, res := range results {
		log.Infof("%s: total relative error = %v (original = %d, noisy = %d)",
			res.Mechanism, res.Report.TotalRelativeError, res.Report.TotalOriginal, res.Report.TotalNoisy)
		for _, rec := range res.Report.Categories {
			log.Infof("  %s: original = %d, noisy = %d, relative error = %v",
				rec.Category, rec.Original, rec.Noisy, rec.RelativeError)
		}
		if *outputPrefix != "" {
			outputFile := *outputPrefix + "." + res.Mechanism + ".csv"
			if err := simulation.WriteReportToCSV(res.Report, outputFile); err != nil {
				log.Exitf("Couldn't write results, err = %v", err)
			}
			log.Infof("Wrote %s report to %q", res.Mechanism, outputFile)
		}
	}
}

func splitCategories(s string) []string {
	var categories []string
	for _, c := range strings.Split(s, ",") {
		if trimmed := strings.TrimSpace(c); trimmed != "" {
			categories = append(categories, trimmed)
		}
	}
	return categories
}
