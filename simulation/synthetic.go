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

package simulation

import "github.com/krimler/alignDP/rand"

// Feedback is one synthetic user-feedback event: the interaction that
// produced it and the categorical feedback label. Only the category enters
// the privacy mechanisms; prompt and response exist to make the synthetic
// data resemble real interaction logs.
type Feedback struct {
	Prompt   string
	Response string
	Category string
}

// The categories slice encodes the sampling weights: dislike is drawn three
// times as often as like, override twice as often.
var (
	syntheticCategories = []string{"dislike", "dislike", "dislike", "override", "override", "like"}
	syntheticPrompts    = []string{
		"Tell me about machine learning.",
		"Write a poem about the sea.",
	}
	syntheticResponses = []string{
		"Machine learning is a field of AI...",
		"The ocean breathes in tides of blue...",
	}
)

// GenerateFeedback returns n synthetic feedback events drawn from r.
func GenerateFeedback(n int, r *rand.Rand) []Feedback {
	if r == nil {
		r = rand.New()
	}
	events := make([]Feedback, 0, n)
	for i := 0; i < n; i++ {
		events = append(events, Feedback{
			Prompt:   syntheticPrompts[r.I63n(int64(len(syntheticPrompts)))],
			Response: syntheticResponses[r.I63n(int64(len(syntheticResponses)))],
			Category: syntheticCategories[r.I63n(int64(len(syntheticCategories)))],
		})
	}
	return events
}

// Categories extracts the ordered category stream from feedback events.
func Categories(events []Feedback) []string {
	categories := make([]string, 0, len(events))
	for _, e := range events {
		categories = append(categories, e.Category)
	}
	return categories
}
