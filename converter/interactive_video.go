package converter

import (
	"errors"

	"github.com/tidwall/gjson"

	"github.com/rgonek/exe-legacy-converter/legacy"
)

// interactiveVideoHandler recovers the JSON island of interactive video
// iDevices and re-embeds it as a JSON script element.
type interactiveVideoHandler struct {
	baseHandler
}

var interactiveVideoMatcher = classMatcher{
	exact:    []string{"InteractiveVideoIdevice"},
	hints:    []string{TypeInteractiveVideo},
	wrappers: scriptWrapperClasses,
}

func (interactiveVideoHandler) Name() string { return "interactive-video" }

func (interactiveVideoHandler) CanHandle(className, typeHint string) bool {
	return interactiveVideoMatcher.match(className, typeHint)
}

func (interactiveVideoHandler) TargetType() string { return TypeInteractiveVideo }

func (interactiveVideoHandler) ExtractHTMLView(dict *legacy.Node, ctx ExtractionContext) string {
	content := defaultContent(dict)
	recovered, err := RecoverInteractiveVideo(content)
	if err != nil && !errors.Is(err, ErrNoEmbeddedPayload) {
		ctx.logger().Debug().Err(err).Str("component", ctx.ComponentID).Msg("keeping interactive video content unchanged")
	}
	return recovered
}

func (interactiveVideoHandler) ExtractProperties(dict *legacy.Node, ctx ExtractionContext) *Properties {
	props := newProperties(ctx)

	island, err := findJSIsland(defaultContent(dict))
	if err != nil {
		return props
	}
	for _, field := range []string{"title", "url", "type"} {
		if value := gjson.GetBytes(island.JSON, field); value.Exists() {
			props.Set(field, value.String())
		}
	}
	props.Set("slideCount", gjson.GetBytes(island.JSON, "slides.#").Int())
	return props
}

// Diagnose reports a payload that was found but could not be recovered.
func (interactiveVideoHandler) Diagnose(dict *legacy.Node, ctx ExtractionContext) []Warning {
	_, err := findJSIsland(defaultContent(dict))
	if err == nil || errors.Is(err, ErrNoEmbeddedPayload) {
		return nil
	}
	return []Warning{{
		Type:    WarningMalformedPayload,
		Class:   ctx.Class,
		Message: err.Error(),
	}}
}
