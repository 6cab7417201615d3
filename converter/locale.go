package converter

import (
	_ "embed"
	"fmt"
	"sort"
	"strings"
	"sync"

	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// BaseLanguage is used when a requested language has no table entry.
const BaseLanguage = "en"

// Caption keys understood by the Localization table.
const (
	CaptionFeedback     = "feedback"
	CaptionHideFeedback = "hideFeedback"
	CaptionSolution     = "solution"
	CaptionHideSolution = "hideSolution"
)

//go:embed locales.yaml
var localesYAML []byte

// Localization maps two-letter language codes to default caption strings.
// It is read-only after construction.
type Localization struct {
	captions map[string]map[string]string
}

var (
	defaultLocalization     *Localization
	defaultLocalizationOnce sync.Once
)

// DefaultLocalization returns the process-wide table built from the embedded
// locales file.
func DefaultLocalization() *Localization {
	defaultLocalizationOnce.Do(func() {
		loc, err := ParseLocalization(localesYAML)
		if err != nil {
			panic(fmt.Sprintf("invalid embedded locales: %v", err))
		}
		defaultLocalization = loc
	})
	return defaultLocalization
}

// ParseLocalization builds a table from YAML shaped as language -> key -> caption.
func ParseLocalization(data []byte) (*Localization, error) {
	var raw map[string]map[string]string
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse locales: %w", err)
	}
	if _, ok := raw[BaseLanguage]; !ok {
		return nil, fmt.Errorf("locales must define base language %q", BaseLanguage)
	}

	captions := make(map[string]map[string]string, len(raw))
	for lang, entries := range raw {
		code := NormalizeLanguage(lang)
		if code == "" {
			return nil, fmt.Errorf("invalid language code %q", lang)
		}
		captions[code] = entries
	}
	return &Localization{captions: captions}, nil
}

// NormalizeLanguage reduces a language tag such as "es-ES" or "PT_br" to its
// lowercase base language. Unparseable input keeps its first subtag, cut to two letters.
func NormalizeLanguage(code string) string {
	code = strings.TrimSpace(strings.ReplaceAll(code, "_", "-"))
	if code == "" {
		return ""
	}
	if tag, err := language.Parse(code); err == nil {
		if base, conf := tag.Base(); conf != language.No {
			return base.String()
		}
	}
	code = strings.ToLower(code)
	if idx := strings.Index(code, "-"); idx >= 0 {
		code = code[:idx]
	}
	if len(code) > 2 {
		code = code[:2]
	}
	return code
}

// Has reports whether the table has an entry for the given language.
func (l *Localization) Has(lang string) bool {
	_, ok := l.captions[NormalizeLanguage(lang)]
	return ok
}

// Languages returns the table's language codes, sorted.
func (l *Localization) Languages() []string {
	langs := make([]string, 0, len(l.captions))
	for lang := range l.captions {
		langs = append(langs, lang)
	}
	sort.Strings(langs)
	return langs
}

// Caption returns the caption for key in lang, falling back to the base
// language, then to the key itself.
func (l *Localization) Caption(lang, key string) string {
	if entries, ok := l.captions[NormalizeLanguage(lang)]; ok {
		if caption, ok := entries[key]; ok && caption != "" {
			return caption
		}
	}
	if caption, ok := l.captions[BaseLanguage][key]; ok && caption != "" {
		return caption
	}
	return key
}
