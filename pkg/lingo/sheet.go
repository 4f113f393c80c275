package lingo

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Single horizontal file codec: header row
// <KeyColumn>,[~Meta...],<lang1>,<lang2>,..., an optional second row of
// type-declaration tokens, then one data row per key. Metadata columns
// carry the configured prefix and are skipped during language-column
// detection. Header cells that are neither the key column, a metadata
// column, nor a parsable language are silently ignored; unknown columns
// are forward-compatible, not an error.

const (
	metaDescription = "description"
	metaCategory    = "category"
	metaFixed       = "fixed"
)

// primitiveTypeNames drives the type-declaration-row heuristic: the second
// row is skipped when more than half of its non-key cells match one of
// these tokens. Carried forward as-is; it can misclassify data rows whose
// text happens to match.
var primitiveTypeNames = map[string]bool{
	"string": true, "int": true, "float": true, "bool": true,
	"long": true, "double": true, "short": true, "byte": true,
	"sbyte": true, "uint": true, "ulong": true, "ushort": true,
	"decimal": true, "char": true,
}

type parsedSheet struct {
	keys      map[string]KeyMeta
	languages map[string]Language
	entries   map[string]map[string]Entry // code -> key -> entry
}

type sheetColumn struct {
	index int
	lang  Language // language column when not zero
	meta  string   // metadata field name when non-empty
}

func parseSheet(data []byte, keyColumn, metaPrefix string) (*parsedSheet, error) {
	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("malformed sheet: %w", err)
	}

	out := &parsedSheet{
		keys:      make(map[string]KeyMeta),
		languages: make(map[string]Language),
		entries:   make(map[string]map[string]Entry),
	}
	if len(records) == 0 {
		return out, nil
	}

	header := records[0]
	keyIdx := -1
	var columns []sheetColumn

	for i, cell := range header {
		cell = strings.TrimSpace(cell)
		switch {
		case keyIdx == -1 && strings.EqualFold(cell, keyColumn):
			keyIdx = i
		case metaPrefix != "" && strings.HasPrefix(cell, metaPrefix):
			name := strings.ToLower(strings.TrimPrefix(cell, metaPrefix))
			if name == "desc" {
				name = metaDescription
			}
			switch name {
			case metaDescription, metaCategory, metaFixed:
				columns = append(columns, sheetColumn{index: i, meta: name})
			}
			// Unknown metadata columns are skipped entirely.
		default:
			if lang, ok := ParseLanguage(cell); ok {
				columns = append(columns, sheetColumn{index: i, lang: lang})
				out.languages[lang.Code()] = lang
				out.entries[lang.Code()] = make(map[string]Entry)
			}
		}
	}
	if keyIdx == -1 {
		return nil, fmt.Errorf("sheet is missing the %q key column", keyColumn)
	}

	rows := records[1:]
	if len(rows) > 0 && isTypeDeclarationRow(rows[0], keyIdx) {
		rows = rows[1:]
	}

	for _, row := range rows {
		if len(row) <= keyIdx {
			continue
		}
		key := strings.TrimSpace(row[keyIdx])
		if key == "" {
			continue
		}

		meta := out.keys[key]
		meta.ID = key
		for _, col := range columns {
			if col.index >= len(row) {
				continue
			}
			cell := row[col.index]
			if col.meta != "" {
				switch col.meta {
				case metaDescription:
					meta.Description = cell
				case metaCategory:
					meta.Category = cell
				case metaFixed:
					fixed, err := strconv.ParseBool(strings.TrimSpace(cell))
					meta.Fixed = err == nil && fixed
				}
				continue
			}
			out.entries[col.lang.Code()][key] = Entry{Text: cell}
		}
		out.keys[key] = meta
	}
	return out, nil
}

// isTypeDeclarationRow applies the heuristic threshold: more than half of
// the non-key cells must look like a primitive type name.
func isTypeDeclarationRow(row []string, keyIdx int) bool {
	matches, nonKey := 0, 0
	for i, cell := range row {
		if i == keyIdx {
			continue
		}
		nonKey++
		if primitiveTypeNames[strings.ToLower(strings.TrimSpace(cell))] {
			matches++
		}
	}
	return nonKey > 0 && matches*2 > nonKey
}

// renderSheetLocked rewrites the whole sheet from the union of keys across
// key metadata and all loaded languages. There is no partial write of a
// single language's column.
func (s *Store) renderSheetLocked() ([]byte, error) {
	langs := sortedLanguages(s.loaded)

	union := make(map[string]bool, len(s.keys))
	for k := range s.keys {
		union[k] = true
	}
	for _, dict := range s.languages {
		for k := range dict {
			union[k] = true
		}
	}
	keys := make([]string, 0, len(union))
	for k := range union {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	header := []string{
		s.cfg.KeyColumn,
		s.cfg.MetaPrefix + "Description",
		s.cfg.MetaPrefix + "Category",
		s.cfg.MetaPrefix + "Fixed",
	}
	for _, lang := range langs {
		header = append(header, lang.Code())
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, key := range keys {
		meta := s.keys[key]
		row := []string{key, meta.Description, meta.Category, strconv.FormatBool(meta.Fixed)}
		for _, lang := range langs {
			row = append(row, s.languages[lang.Code()][key].Text)
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
