package converter

import (
	"sync"
)

// Registry dispatches legacy class names to handlers. The first handler whose
// CanHandle accepts the class wins; the default handler is always last, so
// every lookup yields a handler.
type Registry struct {
	handlers []Handler
}

// NewRegistry builds a registry that tries handlers in the given order, then
// the default handler. Nil handlers and additional default handlers are
// ignored.
func NewRegistry(handlers ...Handler) *Registry {
	ordered := make([]Handler, 0, len(handlers)+1)
	for _, h := range handlers {
		if h == nil {
			continue
		}
		if _, ok := h.(defaultHandler); ok {
			continue
		}
		ordered = append(ordered, h)
	}
	ordered = append(ordered, defaultHandler{})
	return &Registry{handlers: ordered}
}

var (
	defaultRegistryOnce sync.Once
	defaultRegistry     *Registry
)

// DefaultRegistry returns the shared registry of built-in handlers.
func DefaultRegistry() *Registry {
	defaultRegistryOnce.Do(func() {
		defaultRegistry = NewRegistry(builtinHandlers()...)
	})
	return defaultRegistry
}

// builtinHandlers lists the built-in handlers in dispatch order. Handlers
// keyed on a script wrapper plus type hint come first, then the specific
// families, then the broad text families.
func builtinHandlers() []Handler {
	handlers := []Handler{
		interactiveVideoHandler{},
		geogebraHandler{},
	}
	handlers = append(handlers, newGameHandlers()...)
	handlers = append(handlers,
		newSolvedExerciseHandler(),
		scormTestHandler{},
		multipleChoiceHandler{},
		trueFalseHandler{},
		newDropdownHandler(),
		newClozeHandler(),
		newCaseStudyHandler(),
		galleryHandler{},
		externalURLHandler{},
		attachmentHandler{},
		magnifierHandler{},
		newWikipediaHandler(),
		newRSSHandler(),
		newNotaHandler(),
		newFreeTextHandler(),
	)
	return handlers
}

// Handler returns the handler for className. typeHint disambiguates generic
// wrapper classes and may be empty.
func (r *Registry) Handler(className, typeHint string) Handler {
	for _, h := range r.handlers {
		if h.CanHandle(className, typeHint) {
			return h
		}
	}
	return defaultHandler{}
}

// Handlers returns the handlers in dispatch order.
func (r *Registry) Handlers() []Handler {
	out := make([]Handler, len(r.handlers))
	copy(out, r.handlers)
	return out
}
