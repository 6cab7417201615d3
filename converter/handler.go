package converter

import (
	"strings"

	"github.com/rgonek/exe-legacy-converter/legacy"
	"github.com/rs/zerolog"
)

// Record is one legacy component handed to the converter.
type Record struct {
	Class    string
	Dict     *legacy.Node
	TypeHint string
}

// ExtractionContext carries per-conversion inputs. Handlers receive it by value
// and must not retain it.
type ExtractionContext struct {
	Language    string
	ComponentID string
	Class       string
	TypeHint    string
	Logger      *zerolog.Logger
}

func (c ExtractionContext) logger() *zerolog.Logger {
	if c.Logger == nil {
		nop := zerolog.Nop()
		return &nop
	}
	return c.Logger
}

// Feedback is the optional rich-text feedback attached to a component.
type Feedback struct {
	Content       string `json:"content"`
	ButtonCaption string `json:"buttonCaption"`
}

// IsEmpty reports whether no feedback content was found.
func (f Feedback) IsEmpty() bool {
	return strings.TrimSpace(f.Content) == ""
}

// Handler converts one family of legacy iDevice classes.
//
// Implementations must be stateless: everything a call depends on arrives
// through its arguments, so a single value can serve concurrent conversions.
type Handler interface {
	Name() string
	CanHandle(className, typeHint string) bool
	TargetType() string
	ExtractHTMLView(dict *legacy.Node, ctx ExtractionContext) string
	ExtractProperties(dict *legacy.Node, ctx ExtractionContext) *Properties
	ExtractFeedback(dict *legacy.Node, ctx ExtractionContext) Feedback
	BlockProperties() map[string]any
}

// diagnoser is implemented by handlers that can report recoverable problems
// with a record.
type diagnoser interface {
	Diagnose(dict *legacy.Node, ctx ExtractionContext) []Warning
}

// baseHandler supplies the optional parts of the Handler contract.
type baseHandler struct{}

func (baseHandler) ExtractFeedback(*legacy.Node, ExtractionContext) Feedback {
	return Feedback{}
}

func (baseHandler) BlockProperties() map[string]any {
	return nil
}

// classMatcher matches legacy class names by their last dotted segment.
type classMatcher struct {
	exact    []string
	contains []string
	hints    []string // type hints accepted when the class is a generic wrapper
	wrappers []string // wrapper classes that require a hint
}

func (m classMatcher) match(className, typeHint string) bool {
	short := legacy.ShortClass(className)
	if short == "" {
		return false
	}

	for _, name := range m.exact {
		if short == name {
			return true
		}
	}
	for _, fragment := range m.contains {
		if strings.Contains(short, fragment) {
			return true
		}
	}

	if len(m.hints) == 0 {
		return false
	}
	hint := normalizeTypeHint(typeHint)
	if hint == "" {
		return false
	}
	isWrapper := false
	for _, wrapper := range m.wrappers {
		if short == wrapper {
			isWrapper = true
			break
		}
	}
	if !isWrapper {
		return false
	}
	for _, accepted := range m.hints {
		if hint == accepted {
			return true
		}
	}
	return false
}

// normalizeTypeHint reduces a hint such as "/idevices/Interactive-Video/" to
// "interactive-video".
func normalizeTypeHint(hint string) string {
	hint = strings.TrimSpace(strings.ReplaceAll(hint, "\\", "/"))
	hint = strings.Trim(hint, "/")
	if idx := strings.LastIndex(hint, "/"); idx >= 0 {
		hint = hint[idx+1:]
	}
	return strings.ToLower(hint)
}

// scriptWrapperClasses are generic iDevices whose meaning lives in the type hint.
var scriptWrapperClasses = []string{"JsIdevice", "GenericIdevice"}

func newProperties(ctx ExtractionContext) *Properties {
	props := NewProperties()
	props.Set("ideviceId", ctx.ComponentID)
	return props
}
