package converter

import (
	"strings"

	"github.com/iancoleman/strcase"
	"github.com/rgonek/exe-legacy-converter/legacy"
)

// Modern component types produced by the built-in handlers.
const (
	TypeText             = "text"
	TypeForm             = "form"
	TypeTrueOrFalse      = "trueorfalse"
	TypeCaseStudy        = "casestudy"
	TypeImageGallery     = "image-gallery"
	TypeExternalWebsite  = "external-website"
	TypeMagnifier        = "magnifier"
	TypeGeogebra         = "geogebra-activity"
	TypeInteractiveVideo = "interactive-video"
)

// legacyTypeNames maps the last segment of a legacy class name to its modern type.
var legacyTypeNames = map[string]string{
	// free text and its annotated variants
	"FreeTextIdevice":                 TypeText,
	"FreeTextfpdIdevice":              TypeText,
	"GenericIdevice":                  TypeText,
	"JsIdevice":                       TypeText,
	"ReflectionIdevice":               TypeText,
	"ReflectionfpdIdevice":            TypeText,
	"ReflectionfpdmodifIdevice":       TypeText,
	"ParasabermasfpdIdevice":          TypeText,
	"CitasparapensarfpdIdevice":       TypeText,
	"DebesconocerfpdIdevice":          TypeText,
	"DestacadofpdIdevice":             TypeText,
	"OrientacionesalumnadofpdIdevice": TypeText,
	"OrientacionestutoriafpdIdevice":  TypeText,
	"NotaIdevice":                     TypeText,
	"NotaInformacionIdevice":          TypeText,
	"WikipediaIdevice":                TypeText,
	"RssIdevice":                      TypeText,
	"FileAttachIdevice":               TypeText,
	"FileAttachIdeviceInc":            TypeText,
	"AttachmentIdevice":               TypeText,

	// selection quizzes, cloze and dropdown
	"MultichoiceIdevice":          TypeForm,
	"MultiSelectIdevice":          TypeForm,
	"EleccionmultiplefpdIdevice":  TypeForm,
	"SeleccionmultiplefpdIdevice": TypeForm,
	"QuizTestIdevice":             TypeForm,
	"ScormTestIdevice":            TypeForm,
	"ClozeIdevice":                TypeForm,
	"ClozefpdIdevice":             TypeForm,
	"ClozelangfpdIdevice":         TypeForm,
	"ListaIdevice":                TypeForm,

	"TrueFalseIdevice":         TypeTrueOrFalse,
	"VerdaderofalsofpdIdevice": TypeTrueOrFalse,

	"CasestudyIdevice":            TypeCaseStudy,
	"CasopracticofpdIdevice":      TypeCaseStudy,
	"EjercicioresueltofpdIdevice": TypeCaseStudy,

	"GalleryIdevice":          TypeImageGallery,
	"ExternalUrlIdevice":      TypeExternalWebsite,
	"ImageMagnifierIdevice":   TypeMagnifier,
	"GeogebraIdevice":         TypeGeogebra,
	"InteractiveVideoIdevice": TypeInteractiveVideo,
}

// LegacyTypeName maps a legacy fully-qualified class name to a modern type.
// Unknown classes derive a name: "exe.engine.x.MyCustomfpdIdevice" becomes
// "my-custom".
func LegacyTypeName(className string) string {
	short := legacy.ShortClass(className)
	if short == "" {
		return TypeText
	}
	if modern, ok := legacyTypeNames[short]; ok {
		return modern
	}

	derived := strings.TrimSuffix(short, "Idevice")
	derived = strings.TrimSuffix(derived, "fpd")
	if derived == "" {
		return TypeText
	}
	return strings.ToLower(strcase.ToKebab(derived))
}
