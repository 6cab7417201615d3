package converter

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLegacyTypeName(t *testing.T) {
	tests := []struct {
		class string
		want  string
	}{
		{class: "exe.engine.freetextidevice.FreeTextIdevice", want: TypeText},
		{class: "exe.engine.multichoiceidevice.MultichoiceIdevice", want: TypeForm},
		{class: "exe.engine.listaidevice.ListaIdevice", want: TypeForm},
		{class: "exe.engine.truefalseidevice.TrueFalseIdevice", want: TypeTrueOrFalse},
		{class: "exe.engine.ejercicioresueltofpdidevice.EjercicioresueltofpdIdevice", want: TypeCaseStudy},
		{class: "exe.engine.galleryidevice.GalleryIdevice", want: TypeImageGallery},
		{class: "exe.engine.externalurlidevice.ExternalUrlIdevice", want: TypeExternalWebsite},
		{class: "exe.engine.imagemagnifieridevice.ImageMagnifierIdevice", want: TypeMagnifier},
		{class: "GeogebraIdevice", want: TypeGeogebra},
		{class: "exe.engine.x.MyCustomfpdIdevice", want: "my-custom"},
		{class: "exe.engine.x.SpinTheWheelIdevice", want: "spin-the-wheel"},
		{class: "exe.engine.x.Idevice", want: TypeText},
		{class: "", want: TypeText},
	}

	for _, tt := range tests {
		t.Run(tt.class, func(t *testing.T) {
			assert.Equal(t, tt.want, LegacyTypeName(tt.class))
		})
	}
}

func TestLegacyTypeNameCoversHandlers(t *testing.T) {
	reg := DefaultRegistry()
	for short, modern := range legacyTypeNames {
		h := reg.Handler("exe.engine."+short, "")
		if _, ok := h.(defaultHandler); ok {
			continue
		}
		if short == "JsIdevice" || short == "GenericIdevice" {
			continue
		}
		assert.Equal(t, modern, h.TargetType(), "class %s handled by %s", short, h.Name())
	}
}
