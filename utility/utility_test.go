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

package utility

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestCount(t *testing.T) {
	got := Count([]string{"like", "dislike", "like", "override", "like"})
	want := map[string]int64{"like": 3, "dislike": 1, "override": 1}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Count: unexpected tally (-want +got):\n%s", diff)
	}
}

func TestCountEmptyStream(t *testing.T) {
	if got := Count([]string{}); len(got) != 0 {
		t.Errorf("Count of empty stream gave %v, want empty map", got)
	}
}

// An identity mechanism reproduces the original distribution exactly, so
// every relative error must be a defined 0.
func TestEvaluateIdentityStream(t *testing.T) {
	original := map[string]int64{"like": 100, "dislike": 300, "override": 200}
	var stream []string
	for category, count := range original {
		for i := int64(0); i < count; i++ {
			stream = append(stream, category)
		}
	}

	report := Evaluate(original, stream)

	if report.TotalOriginal != 600 || report.TotalNoisy != 600 {
		t.Errorf("totals got (%d, %d), want (600, 600)", report.TotalOriginal, report.TotalNoisy)
	}
	if v, ok := report.TotalRelativeError.Value(); !ok || v != 0 {
		t.Errorf("TotalRelativeError got %v, want defined 0", report.TotalRelativeError)
	}
	for _, rec := range report.Categories {
		if rec.Original != rec.Noisy {
			t.Errorf("category %q: got noisy count %d, want %d", rec.Category, rec.Noisy, rec.Original)
		}
		if v, ok := rec.RelativeError.Value(); !ok || v != 0 {
			t.Errorf("category %q: RelativeError got %v, want defined 0", rec.Category, rec.RelativeError)
		}
	}
}

func TestEvaluatePerCategoryErrors(t *testing.T) {
	original := map[string]int64{"like": 100, "dislike": 200}
	stream := make([]string, 0, 230)
	for i := 0; i < 80; i++ {
		stream = append(stream, "like")
	}
	for i := 0; i < 150; i++ {
		stream = append(stream, "dislike")
	}

	report := Evaluate(original, stream)

	wantErrors := map[string]float64{"like": 0.2, "dislike": 0.25}
	for _, rec := range report.Categories {
		v, ok := rec.RelativeError.Value()
		if !ok {
			t.Errorf("category %q: RelativeError is undefined, want defined", rec.Category)
			continue
		}
		if math.Abs(v-wantErrors[rec.Category]) > 1e-12 {
			t.Errorf("category %q: RelativeError got %f, want %f", rec.Category, v, wantErrors[rec.Category])
		}
	}
	// |300-230|/300
	if v, ok := report.TotalRelativeError.Value(); !ok || math.Abs(v-70.0/300.0) > 1e-12 {
		t.Errorf("TotalRelativeError got %v, want %f", report.TotalRelativeError, 70.0/300.0)
	}
}

// A category present only in the noisy stream has original count 0, and its
// relative error is the undefined sentinel rather than a division failure.
func TestEvaluateZeroOriginalIsUndefined(t *testing.T) {
	original := map[string]int64{"like": 10}
	stream := []string{"like", "like", "override"}

	report := Evaluate(original, stream)

	var overrideRecord *CategoryRecord[string]
	for i := range report.Categories {
		if report.Categories[i].Category == "override" {
			overrideRecord = &report.Categories[i]
		}
	}
	if overrideRecord == nil {
		t.Fatal("category \"override\" missing from report, want present with undefined error")
	}
	if overrideRecord.RelativeError.Defined() {
		t.Errorf("RelativeError for zero-original category got %v, want undefined", overrideRecord.RelativeError)
	}
	if overrideRecord.Noisy != 1 {
		t.Errorf("Noisy for \"override\" got %d, want 1", overrideRecord.Noisy)
	}
}

func TestEvaluateEmptyOriginalIsUndefined(t *testing.T) {
	report := Evaluate(map[string]int64{}, []string{"like"})
	if report.TotalRelativeError.Defined() {
		t.Errorf("TotalRelativeError got %v, want undefined when there are no true events", report.TotalRelativeError)
	}
}

func TestEvaluateCategoriesAreSorted(t *testing.T) {
	original := map[string]int64{"override": 1, "dislike": 2, "like": 3}
	report := Evaluate(original, []string{"a", "z"})

	got := make([]string, 0, len(report.Categories))
	for _, rec := range report.Categories {
		got = append(got, rec.Category)
	}
	want := []string{"a", "dislike", "like", "override", "z"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Evaluate: categories not sorted union of keys (-want +got):\n%s", diff)
	}
}

func TestEvaluateDoesNotModifyInputs(t *testing.T) {
	original := map[string]int64{"like": 2}
	stream := []string{"like", "dislike"}
	Evaluate(original, stream)

	if diff := cmp.Diff(map[string]int64{"like": 2}, original); diff != "" {
		t.Errorf("Evaluate modified the original counts (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"like", "dislike"}, stream); diff != "" {
		t.Errorf("Evaluate modified the input stream (-want +got):\n%s", diff)
	}
}

func TestRatioString(t *testing.T) {
	for _, tc := range []struct {
		ratio Ratio
		want  string
	}{
		{UndefinedRatio(), "N/A"},
		{DefinedRatio(0), "0.0000"},
		{DefinedRatio(0.25), "0.2500"},
		{DefinedRatio(1.0 / 3.0), "0.3333"},
	} {
		if got := tc.ratio.String(); got != tc.want {
			t.Errorf("String() of %v got %q, want %q", tc.ratio, got, tc.want)
		}
	}
}

func TestRatioZeroValueIsUndefined(t *testing.T) {
	var r Ratio
	if r.Defined() {
		t.Error("zero-value Ratio is defined, want undefined")
	}
}

func TestMeanDefined(t *testing.T) {
	for _, tc := range []struct {
		desc        string
		ratios      []Ratio
		want        float64
		wantDefined bool
	}{
		{
			desc:        "all defined",
			ratios:      []Ratio{DefinedRatio(0.1), DefinedRatio(0.2), DefinedRatio(0.3)},
			want:        0.2,
			wantDefined: true,
		},
		{
			desc:        "undefined entries are skipped",
			ratios:      []Ratio{DefinedRatio(0.1), UndefinedRatio(), DefinedRatio(0.3)},
			want:        0.2,
			wantDefined: true,
		},
		{
			desc:        "all undefined",
			ratios:      []Ratio{UndefinedRatio(), UndefinedRatio()},
			wantDefined: false,
		},
		{
			desc:        "empty",
			ratios:      nil,
			wantDefined: false,
		},
	} {
		got := MeanDefined(tc.ratios)
		if got.Defined() != tc.wantDefined {
			t.Errorf("%s: MeanDefined defined=%t, want %t", tc.desc, got.Defined(), tc.wantDefined)
			continue
		}
		if v, ok := got.Value(); ok && math.Abs(v-tc.want) > 1e-12 {
			t.Errorf("%s: MeanDefined got %f, want %f", tc.desc, v, tc.want)
		}
	}
}

func TestEvaluateIntegerCategories(t *testing.T) {
	original := map[int64]int64{1: 5, 2: 10}
	report := Evaluate(original, []int64{1, 1, 2, 2, 2})
	if len(report.Categories) != 2 {
		t.Fatalf("got %d categories, want 2", len(report.Categories))
	}
	if report.Categories[0].Category != 1 || report.Categories[1].Category != 2 {
		t.Errorf("categories got (%d, %d), want (1, 2)",
			report.Categories[0].Category, report.Categories[1].Category)
	}
}
