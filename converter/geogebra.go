package converter

import (
	"regexp"

	"github.com/rgonek/exe-legacy-converter/legacy"
)

var (
	geogebraClassPattern = regexp.MustCompile(`auto-geogebra-ide-([A-Za-z0-9]+)`)
	geogebraURLPattern   = regexp.MustCompile(`geogebra\.org/m/([A-Za-z0-9]+)`)
)

// GeogebraMaterialID returns the GeoGebra material id referenced by content,
// or "" when none is found. The auto-geogebra class wins over a material URL.
func GeogebraMaterialID(content string) string {
	if m := geogebraClassPattern.FindStringSubmatch(content); m != nil {
		return m[1]
	}
	if m := geogebraURLPattern.FindStringSubmatch(content); m != nil {
		return m[1]
	}
	return ""
}

type geogebraHandler struct {
	baseHandler
}

var geogebraMatcher = classMatcher{
	exact:    []string{"GeogebraIdevice"},
	hints:    []string{TypeGeogebra},
	wrappers: scriptWrapperClasses,
}

func (geogebraHandler) Name() string { return "geogebra" }

func (geogebraHandler) CanHandle(className, typeHint string) bool {
	return geogebraMatcher.match(className, typeHint)
}

func (geogebraHandler) TargetType() string { return TypeGeogebra }

func (geogebraHandler) ExtractHTMLView(dict *legacy.Node, _ ExtractionContext) string {
	return defaultContent(dict)
}

func (geogebraHandler) ExtractProperties(dict *legacy.Node, ctx ExtractionContext) *Properties {
	content := defaultContent(dict)

	props := newProperties(ctx)
	if id := GeogebraMaterialID(content); id != "" {
		props.Set("geogebraMaterialId", id)
	}
	props.Set("textTextarea", content)
	return props
}
