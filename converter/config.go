package converter

import (
	"fmt"
	"slices"
	"strings"

	"github.com/rs/zerolog"
)

// Config holds converter configuration options.
type Config struct {
	// DefaultLanguage is used for localized captions when a conversion does
	// not name a language.
	DefaultLanguage string `json:"defaultLanguage,omitempty" yaml:"defaultLanguage,omitempty"`
	// Handlers are tried before the built-in handlers.
	Handlers []Handler       `json:"-" yaml:"-"`
	Logger   *zerolog.Logger `json:"-" yaml:"-"`
}

func (c Config) applyDefaults() Config {
	if strings.TrimSpace(c.DefaultLanguage) == "" {
		c.DefaultLanguage = BaseLanguage
	}
	if c.Logger == nil {
		nop := zerolog.Nop()
		c.Logger = &nop
	}
	return c
}

// clone returns a copy of Config that does not share the handler slice.
func (c Config) clone() Config {
	cloned := c
	cloned.Handlers = slices.Clone(c.Handlers)
	return cloned
}

// Validate checks that config values are valid.
func (c Config) Validate() error {
	if !DefaultLocalization().Has(c.DefaultLanguage) {
		return fmt.Errorf("invalid defaultLanguage %q: supported languages are %s",
			c.DefaultLanguage, strings.Join(DefaultLocalization().Languages(), ", "))
	}
	names := make(map[string]struct{}, len(c.Handlers))
	for i, h := range c.Handlers {
		if h == nil {
			return fmt.Errorf("handlers[%d] is nil", i)
		}
		name := strings.TrimSpace(h.Name())
		if name == "" {
			return fmt.Errorf("handlers[%d] has an empty name", i)
		}
		if _, dup := names[name]; dup {
			return fmt.Errorf("duplicate handler name %q", name)
		}
		names[name] = struct{}{}
	}
	return nil
}
