// Package lingo is the authoritative in-memory and on-disk representation
// of all localized game text: per-language dictionaries, key metadata, the
// two file encodings, and the key lifecycle operations.
package lingo

import (
	"strings"

	"golang.org/x/text/language"
)

// Language identifies one localization partition: an ISO-style short code
// plus a human display name, backed by a BCP 47 tag.
type Language struct {
	code string
	name string
	tag  language.Tag
}

// Code returns the short ISO-style code (e.g. "en", "ko").
func (l Language) Code() string { return l.code }

// Name returns the human display name (e.g. "Korean").
func (l Language) Name() string { return l.name }

// Tag returns the underlying BCP 47 tag.
func (l Language) Tag() language.Tag { return l.tag }

// IsZero reports whether the language is the zero value (no selection).
func (l Language) IsZero() bool { return l.code == "" }

func (l Language) String() string { return l.code }

// The enumerated set of languages the toolkit knows about.
var (
	English    = Language{"en", "English", language.English}
	Korean     = Language{"ko", "Korean", language.Korean}
	Japanese   = Language{"ja", "Japanese", language.Japanese}
	ChineseCN  = Language{"zh-CN", "Chinese (Simplified)", language.SimplifiedChinese}
	French     = Language{"fr", "French", language.French}
	German     = Language{"de", "German", language.German}
	Spanish    = Language{"es", "Spanish", language.Spanish}
	Portuguese = Language{"pt", "Portuguese", language.Portuguese}
	Russian    = Language{"ru", "Russian", language.Russian}
	Italian    = Language{"it", "Italian", language.Italian}
)

var known = []Language{
	English, Korean, Japanese, ChineseCN, French,
	German, Spanish, Portuguese, Russian, Italian,
}

// Known returns the enumerated language set in stable order.
func Known() []Language {
	out := make([]Language, len(known))
	copy(out, known)
	return out
}

// ParseLanguage matches a header cell against the known language set.
// It accepts the short code or the display name case-insensitively, and
// falls back to BCP 47 parsing so variants like "en-US" resolve to their
// base language. Unmatchable cells return ok=false; they are not an error.
func ParseLanguage(cell string) (Language, bool) {
	cell = strings.TrimSpace(cell)
	if cell == "" {
		return Language{}, false
	}

	for _, l := range known {
		if strings.EqualFold(cell, l.code) || strings.EqualFold(cell, l.name) {
			return l, true
		}
	}

	tag, err := language.Parse(cell)
	if err != nil {
		return Language{}, false
	}
	base, conf := tag.Base()
	if conf == language.No {
		return Language{}, false
	}
	for _, l := range known {
		if kb, _ := l.tag.Base(); kb == base {
			return l, true
		}
	}
	return Language{}, false
}
