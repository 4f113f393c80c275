package lingo

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strings"
)

// Per-language file codec: UTF-8, newline-joined rows, header
// Id,Text,Context, standard quote-escaping (fields containing the
// delimiter, a quote, or a newline are wrapped in quotes with internal
// quotes doubled). encoding/csv implements exactly those rules.

func encodeLanguageFile(dict map[string]Entry, keyColumn string) []byte {
	keys := make([]string, 0, len(dict))
	for k := range dict {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	_ = w.Write([]string{keyColumn, "Text", "Context"})
	for _, k := range keys {
		e := dict[k]
		_ = w.Write([]string{k, e.Text, e.Context})
	}
	w.Flush()
	return buf.Bytes()
}

func decodeLanguageFile(data []byte, keyColumn string) (map[string]Entry, error) {
	dict := make(map[string]Entry)

	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1

	first := true
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("malformed row: %w", err)
		}
		if len(row) == 0 {
			continue
		}

		// Header match is case-insensitive.
		if first {
			first = false
			if strings.EqualFold(strings.TrimSpace(row[0]), keyColumn) {
				continue
			}
		}

		key := row[0]
		if key == "" {
			continue
		}
		entry := Entry{}
		if len(row) > 1 {
			entry.Text = row[1]
		}
		if len(row) > 2 {
			entry.Context = row[2]
		}
		dict[key] = entry
	}
	return dict, nil
}
