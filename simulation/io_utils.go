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

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/krimler/alignDP/utility"
)

// ReadCategoriesFromCSV reads the ordered category stream from the named
// column of a CSV file. The first row must be a header containing the
// column.
func ReadCategoriesFromCSV(inputFile, column string) ([]string, error) {
	csvFile, err := os.Open(inputFile)
	if err != nil {
		return nil, fmt.Errorf("couldn't open the csv file = %q, err = %v", inputFile, err)
	}
	defer csvFile.Close()

	r := csv.NewReader(csvFile)
	header, err := r.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("the csv file = %q is empty", inputFile)
	}
	if err != nil {
		return nil, fmt.Errorf("couldn't read the csv file = %q, err = %v", inputFile, err)
	}

	columnIndex := -1
	for i, name := range header {
		if name == column {
			columnIndex = i
			break
		}
	}
	if columnIndex == -1 {
		return nil, fmt.Errorf("the csv file = %q has no %q column", inputFile, column)
	}

	categories := make([]string, 0)
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("couldn't read the csv file = %q, err = %v", inputFile, err)
		}
		if columnIndex >= len(record) {
			return nil, fmt.Errorf("the csv file = %q has incorrect format", inputFile)
		}
		categories = append(categories, record[columnIndex])
	}
	return categories, nil
}

// WriteReportToCSV writes one row per category (category, original count,
// noisy count, relative error) followed by a total row. Undefined relative
// errors are written as "N/A".
func WriteReportToCSV(report utility.Report[string], outputFile string) error {
	csvFile, err := os.Create(outputFile)
	if err != nil {
		return fmt.Errorf("couldn't open the csv file = %q, err = %v", outputFile, err)
	}

	writer := csv.NewWriter(csvFile)
	rows := [][]string{{"category", "original", "noisy", "relative_error"}}
	for _, rec := range report.Categories {
		rows = append(rows, []string{
			rec.Category,
			strconv.FormatInt(rec.Original, 10),
			strconv.FormatInt(rec.Noisy, 10),
			rec.RelativeError.String(),
		})
	}
	rows = append(rows, []string{
		"total",
		strconv.FormatInt(report.TotalOriginal, 10),
		strconv.FormatInt(report.TotalNoisy, 10),
		report.TotalRelativeError.String(),
	})

	for _, row := range rows {
		if err := writer.Write(row); err != nil {
			return fmt.Errorf(
				"couldn't write to the csv file = %q, err = %v",
				outputFile, combineErrors(err, csvFile.Close()))
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf(
			"couldn't write to the csv file = %q, err = %v",
			outputFile, combineErrors(err, csvFile.Close()))
	}

	if err := csvFile.Close(); err != nil {
		return fmt.Errorf("couldn't close the csv file = %q, err = %v", outputFile, err)
	}
	return nil
}

func combineErrors(errors ...error) string {
	var nonNilErrors []error
	for _, err := range errors {
		if err != nil {
			nonNilErrors = append(nonNilErrors, err)
		}
	}
	return fmt.Sprintf("%+v", nonNilErrors)
}
