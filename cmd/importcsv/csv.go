// Foodgram - Recipe Sharing Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodgram

package main

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/tomtom215/foodgram/internal/models"
)

// csvRecords reads every record of r. When the first record names all of
// columns it is treated as a header and the returned rows are re-ordered to
// match columns; otherwise rows are taken positionally. Rows with fewer
// fields than columns are an error.
func csvRecords(r io.Reader, columns ...string) ([][]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	var (
		index []int
		out   [][]string
		line  int
	)
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		line++

		if line == 1 {
			if idx, ok := headerIndex(record, columns); ok {
				index = idx
				continue
			}
		}
		if isBlank(record) {
			continue
		}

		row := make([]string, len(columns))
		for i := range columns {
			pos := i
			if index != nil {
				pos = index[i]
			}
			if pos >= len(record) {
				return nil, fmt.Errorf("line %d: expected %d fields, got %d", line, len(columns), len(record))
			}
			row[i] = strings.TrimSpace(record[pos])
		}
		out = append(out, row)
	}
	return out, nil
}

// headerIndex maps columns to positions in record when record is a header.
func headerIndex(record, columns []string) ([]int, bool) {
	positions := make(map[string]int, len(record))
	for i, name := range record {
		positions[strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")))] = i
	}
	index := make([]int, len(columns))
	for i, col := range columns {
		pos, ok := positions[col]
		if !ok {
			return nil, false
		}
		index[i] = pos
	}
	return index, true
}

func isBlank(record []string) bool {
	for _, f := range record {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}

// readIngredients parses name,measurement_unit rows.
func readIngredients(r io.Reader) ([]models.Ingredient, error) {
	rows, err := csvRecords(r, "name", "measurement_unit")
	if err != nil {
		return nil, fmt.Errorf("failed to read ingredients: %w", err)
	}
	items := make([]models.Ingredient, 0, len(rows))
	for _, row := range rows {
		if row[0] == "" || row[1] == "" {
			continue
		}
		items = append(items, models.Ingredient{Name: row[0], MeasurementUnit: row[1]})
	}
	return items, nil
}

// readTags parses name,color,slug rows. An id column, if present in the
// header, is ignored; ids are assigned by the database.
func readTags(r io.Reader) ([]models.Tag, error) {
	rows, err := csvRecords(r, "name", "color", "slug")
	if err != nil {
		return nil, fmt.Errorf("failed to read tags: %w", err)
	}
	tags := make([]models.Tag, 0, len(rows))
	for _, row := range rows {
		if row[0] == "" || row[2] == "" {
			continue
		}
		tags = append(tags, models.Tag{Name: row[0], Color: strings.ToUpper(row[1]), Slug: row[2]})
	}
	return tags, nil
}

func readIngredientsFile(path string) ([]models.Ingredient, error) {
	f, err := os.Open(path) //nolint:gosec // operator supplied path
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()
	return readIngredients(f)
}

func readTagsFile(path string) ([]models.Tag, error) {
	f, err := os.Open(path) //nolint:gosec // operator supplied path
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()
	return readTags(f)
}
