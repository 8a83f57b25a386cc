// Package i18n provides the message catalogs for user-facing text.
// Catalogs are YAML files baked into the binary with go:embed; the language
// comes from appearance.language in the config. Unknown languages and
// missing keys fall back to English, and a key with no English entry
// renders as the key itself so a typo is visible instead of silent.
package i18n

import (
	"embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed locales
var locales embed.FS

// Bundle resolves message keys for one language.
type Bundle struct {
	messages map[string]string
	fallback map[string]string
}

// NewBundle loads the catalog for lang, falling back to English for any
// missing keys.
func NewBundle(lang string) (*Bundle, error) {
	fallback, err := loadCatalog("en")
	if err != nil {
		return nil, fmt.Errorf("failed to load base catalog: %w", err)
	}

	messages := fallback
	if lang != "" && lang != "en" {
		if m, err := loadCatalog(lang); err == nil {
			messages = m
		}
	}

	return &Bundle{messages: messages, fallback: fallback}, nil
}

// T resolves a message key, formatting args fmt.Sprintf-style.
func (b *Bundle) T(key string, args ...any) string {
	msg, ok := b.messages[key]
	if !ok {
		msg, ok = b.fallback[key]
	}
	if !ok {
		return key
	}
	if len(args) == 0 {
		return msg
	}
	return fmt.Sprintf(msg, args...)
}

func loadCatalog(lang string) (map[string]string, error) {
	data, err := locales.ReadFile("locales/" + lang + ".yaml")
	if err != nil {
		return nil, err
	}
	catalog := map[string]string{}
	if err := yaml.Unmarshal(data, &catalog); err != nil {
		return nil, fmt.Errorf("invalid catalog %s: %w", lang, err)
	}
	return catalog, nil
}
