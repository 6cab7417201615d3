package converter

import (
	"fmt"
	"strings"
)

// Converter turns legacy iDevice records into modern component records.
// It is safe for concurrent use.
type Converter struct {
	config   Config
	registry *Registry
}

// New creates a Converter. Custom handlers from config are tried before the
// built-in ones.
func New(config Config) (*Converter, error) {
	cfg := config.clone().applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	handlers := make([]Handler, 0, len(cfg.Handlers)+len(builtinHandlers()))
	handlers = append(handlers, cfg.Handlers...)
	handlers = append(handlers, builtinHandlers()...)

	return &Converter{
		config:   cfg,
		registry: NewRegistry(handlers...),
	}, nil
}

// ConvertOptions carries the per-record inputs of a conversion.
type ConvertOptions struct {
	// Language selects localized default captions. Empty uses the
	// configured default language.
	Language    string
	ComponentID string
}

// Registry returns the registry used for dispatch.
func (c *Converter) Registry() *Registry {
	return c.registry
}

// Convert converts one legacy record. It never fails: unknown classes go
// through the default handler and damaged payloads are reported as warnings.
func (c *Converter) Convert(record Record, opts ConvertOptions) Result {
	handler := c.registry.Handler(record.Class, record.TypeHint)

	language := strings.TrimSpace(opts.Language)
	if language == "" {
		language = c.config.DefaultLanguage
	}
	ctx := ExtractionContext{
		Language:    language,
		ComponentID: opts.ComponentID,
		Class:       record.Class,
		TypeHint:    record.TypeHint,
		Logger:      c.config.Logger,
	}

	log := c.config.Logger
	log.Debug().
		Str("class", record.Class).
		Str("typeHint", record.TypeHint).
		Str("handler", handler.Name()).
		Str("component", opts.ComponentID).
		Msg("converting legacy component")

	component := ModernComponentRecord{
		TargetType:      handler.TargetType(),
		HTMLView:        handler.ExtractHTMLView(record.Dict, ctx),
		Properties:      handler.ExtractProperties(record.Dict, ctx),
		BlockProperties: handler.BlockProperties(),
	}
	if component.Properties == nil {
		component.Properties = newProperties(ctx)
	}

	var warnings []Warning
	if _, ok := handler.(defaultHandler); ok {
		warnings = append(warnings, Warning{
			Type:    WarningUnrecognizedType,
			Class:   record.Class,
			Message: fmt.Sprintf("no handler for legacy class %q, converted as %s", record.Class, component.TargetType),
		})
	}
	if d, ok := handler.(diagnoser); ok {
		warnings = append(warnings, d.Diagnose(record.Dict, ctx)...)
	}
	if strings.TrimSpace(component.HTMLView) == "" && !hasContentProperties(component.Properties) {
		warnings = append(warnings, Warning{
			Type:    WarningEmptyContent,
			Class:   record.Class,
			Message: "no content recovered",
		})
	}

	for _, w := range warnings {
		log.Warn().
			Str("class", record.Class).
			Str("handler", handler.Name()).
			Str("component", opts.ComponentID).
			Str("warning", string(w.Type)).
			Msg(w.Message)
	}

	return Result{
		Component: component,
		Handler:   handler.Name(),
		Warnings:  warnings,
	}
}

// hasContentProperties reports whether props carries any text or collection
// besides the component id. Flags and numbers do not count as content.
func hasContentProperties(props *Properties) bool {
	if props == nil {
		return false
	}
	for pair := props.Oldest(); pair != nil; pair = pair.Next() {
		if pair.Key == "ideviceId" || pair.Key == "id" {
			continue
		}
		switch v := pair.Value.(type) {
		case string:
			if strings.TrimSpace(v) != "" {
				return true
			}
		case []map[string]any:
			if len(v) > 0 {
				return true
			}
		case map[string]any:
			if len(v) > 0 {
				return true
			}
		case interface{ Len() int }:
			if v.Len() > 0 {
				return true
			}
		}
	}
	return false
}
