package lingo

// Entry is the localized payload for one (key, language) pair.
type Entry struct {
	Text    string
	Context string
}

// KeyMeta describes a localization key independent of any language.
// Fixed forbids deleting or renaming the key; it never restricts editing
// the per-language text.
type KeyMeta struct {
	ID          string `yaml:"id"`
	Description string `yaml:"description,omitempty"`
	Category    string `yaml:"category,omitempty"`
	Fixed       bool   `yaml:"fixed,omitempty"`
}
