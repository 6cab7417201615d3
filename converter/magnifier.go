package converter

import (
	"fmt"
	"html"
	"strconv"
	"strings"

	"github.com/rgonek/exe-legacy-converter/legacy"
)

// Magnifier defaults applied when the legacy field omits a parameter.
const (
	defaultMagnifierWidth       = ""
	defaultMagnifierHeight      = ""
	defaultMagnifierInitialZoom = "100"
	defaultMagnifierMaxZoom     = "2"
	defaultMagnifierGlassSize   = "2"
	defaultMagnifierAlign       = "left"
)

var (
	magnifierFieldKeys    = []string{"imageMagnifier", "_imageMagnifier"}
	magnifierImageKeys    = []string{"imageResource", "_imageResource", "resource"}
	magnifierTextKeys     = []string{"text", "_text", "textTextArea"}
	magnifierDefaultFlags = []string{"isDefaultImage", "_isDefaultImage"}
)

type magnifierHandler struct {
	baseHandler
}

var magnifierMatcher = classMatcher{exact: []string{"ImageMagnifierIdevice"}}

func (magnifierHandler) Name() string { return "image-magnifier" }

func (magnifierHandler) CanHandle(className, typeHint string) bool {
	return magnifierMatcher.match(className, typeHint)
}

func (magnifierHandler) TargetType() string { return TypeMagnifier }

// magnifierField returns the MagnifierField instance, or the iDevice itself
// for vintages that stored the parameters inline.
func magnifierField(dict *legacy.Node) *legacy.Node {
	for _, key := range magnifierFieldKeys {
		if field := legacy.FindInstance(dict, key); field != nil {
			return field
		}
	}
	return dict
}

func magnifierParam(field *legacy.Node, key, fallback string) string {
	if n, ok := legacy.FindInt(field, key); ok {
		return strconv.Itoa(n)
	}
	if value, ok := legacy.FindString(field, key); ok && strings.TrimSpace(value) != "" {
		return strings.TrimSpace(value)
	}
	return fallback
}

// magnifierIsDefaultImage prefers evidence of a real resource over the legacy
// flag, which older files left stale.
func magnifierIsDefaultImage(field *legacy.Node, image string) bool {
	if image != "" {
		return false
	}
	for _, key := range magnifierDefaultFlags {
		if legacy.HasKey(field, key) {
			return legacy.FindBool(field, key)
		}
	}
	return true
}

func (magnifierHandler) ExtractHTMLView(dict *legacy.Node, _ ExtractionContext) string {
	field := magnifierField(dict)
	image := findResource(field, magnifierImageKeys)
	text := firstFieldText(field, magnifierTextKeys)
	if image == "" {
		return text
	}
	return fmt.Sprintf(
		`<div class="ImageMagnifierIdevice"><div class="image-thumbnail"><img src="%s" alt="" data-magnifysize="%s" data-size="%s" /></div>%s</div>`,
		html.EscapeString(image),
		magnifierParam(field, "glassSize", defaultMagnifierGlassSize),
		magnifierParam(field, "initialZSize", defaultMagnifierInitialZoom),
		text,
	)
}

func (magnifierHandler) ExtractProperties(dict *legacy.Node, ctx ExtractionContext) *Properties {
	field := magnifierField(dict)
	image := findResource(field, magnifierImageKeys)

	props := newProperties(ctx)
	props.Set("textTextarea", firstFieldText(field, magnifierTextKeys))
	props.Set("imageResource", image)
	props.Set("isDefaultImage", magnifierIsDefaultImage(field, image))
	props.Set("width", magnifierParam(field, "width", defaultMagnifierWidth))
	props.Set("height", magnifierParam(field, "height", defaultMagnifierHeight))
	props.Set("initialZSize", magnifierParam(field, "initialZSize", defaultMagnifierInitialZoom))
	props.Set("maxZSize", magnifierParam(field, "maxZSize", defaultMagnifierMaxZoom))
	props.Set("glassSize", magnifierParam(field, "glassSize", defaultMagnifierGlassSize))
	props.Set("align", magnifierParam(field, "align", defaultMagnifierAlign))
	return props
}
