package analysis

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

var (
	ErrNoFeedback      = errors.New("no valid feedback found; expected a column like 'review', 'feedback' or 'text'")
	ErrInvalidEncoding = errors.New("invalid file encoding, expected UTF-8")
)

// feedbackColumns are matched as substrings of the lower-cased header.
var feedbackColumns = []string{"review", "feedback", "text", "comment", "description", "content", "message"}

const minFallbackCellLength = 20

// ExtractCSVFeedback pulls feedback text out of an uploaded CSV. Columns whose
// header names a feedback field are preferred; without any, the first long
// cell of each row is used.
func ExtractCSVFeedback(r io.Reader) ([]string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("[CSV] failed to read upload: %w", err)
	}
	if !utf8.Valid(data) {
		return nil, ErrInvalidEncoding
	}
	data = bytes.TrimPrefix(data, []byte("\uFEFF"))

	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("[CSV] parsing error: %w", err)
	}
	if len(records) < 2 {
		return nil, ErrNoFeedback
	}

	header, rows := records[0], records[1:]
	columns := matchFeedbackColumns(header)

	var reviews []string
	for _, row := range rows {
		for _, idx := range columns {
			if idx >= len(row) {
				continue
			}
			text := strings.TrimSpace(row[idx])
			if utf8.RuneCountInString(text) > minFeedbackLength {
				reviews = append(reviews, text)
			}
		}
	}
	if len(reviews) > 0 {
		return reviews, nil
	}

	for _, row := range rows {
		for _, value := range row {
			if utf8.RuneCountInString(value) > minFallbackCellLength {
				reviews = append(reviews, strings.TrimSpace(value))
				break
			}
		}
	}
	if len(reviews) == 0 {
		return nil, ErrNoFeedback
	}
	return reviews, nil
}

// matchFeedbackColumns returns, in feedbackColumns order, the first header
// index matching each candidate. A column is used at most once.
func matchFeedbackColumns(header []string) []int {
	used := make(map[int]bool)
	var columns []int
	for _, candidate := range feedbackColumns {
		for idx, name := range header {
			if strings.Contains(strings.ToLower(name), candidate) {
				if !used[idx] {
					used[idx] = true
					columns = append(columns, idx)
				}
				break
			}
		}
	}
	return columns
}
