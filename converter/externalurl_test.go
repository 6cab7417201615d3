package converter

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rgonek/exe-legacy-converter/legacy"
)

func TestHeightSize(t *testing.T) {
	tests := map[int]string{
		150: "1",
		200: "1",
		201: "2",
		300: "2",
		450: "3",
		500: "3",
		501: "4",
		900: "4",
	}
	for height, want := range tests {
		t.Run(strconv.Itoa(height), func(t *testing.T) {
			assert.Equal(t, want, HeightSize(height))
		})
	}
}

func TestExternalURLHandler(t *testing.T) {
	h := externalURLHandler{}

	t.Run("url and height", func(t *testing.T) {
		dict := instance("ExternalUrlIdevice",
			legacy.KV("url", legacy.NewUnicode("https://example.com/?a=1&b=2")),
			legacy.KV("height", legacy.NewUnicode("450")),
		)

		props := h.ExtractProperties(dict, testContext("ExternalUrlIdevice"))
		assert.Equal(t, []string{"ideviceId", "url", "height", "size"}, propKeys(props))
		assert.Equal(t, "https://example.com/?a=1&b=2", prop(t, props, "url"))
		assert.Equal(t, "450", prop(t, props, "height"))
		assert.Equal(t, "3", prop(t, props, "size"))

		assert.Equal(t,
			`<div id="iframeWebsiteIdevice"><iframe src="https://example.com/?a=1&amp;b=2" width="600" height="450" data-size="3" style="width:100%"></iframe></div>`,
			h.ExtractHTMLView(dict, testContext("ExternalUrlIdevice")),
		)
	})

	t.Run("int height leaf", func(t *testing.T) {
		dict := instance("ExternalUrlIdevice",
			legacy.KV("url", legacy.NewUnicode("https://example.com")),
			legacy.KV("height", legacy.NewInt("900")),
		)
		assert.Equal(t, "4", prop(t, h.ExtractProperties(dict, testContext("ExternalUrlIdevice")), "size"))
	})

	t.Run("missing height uses default", func(t *testing.T) {
		dict := instance("ExternalUrlIdevice", legacy.KV("url", legacy.NewUnicode("https://example.com")))
		props := h.ExtractProperties(dict, testContext("ExternalUrlIdevice"))
		assert.Equal(t, "300", prop(t, props, "height"))
		assert.Equal(t, "2", prop(t, props, "size"))
	})

	t.Run("garbage height uses default", func(t *testing.T) {
		dict := instance("ExternalUrlIdevice",
			legacy.KV("url", legacy.NewUnicode("https://example.com")),
			legacy.KV("height", legacy.NewUnicode("tall")),
		)
		assert.Equal(t, "300", prop(t, h.ExtractProperties(dict, testContext("ExternalUrlIdevice")), "height"))
	})

	t.Run("missing url", func(t *testing.T) {
		dict := instance("ExternalUrlIdevice")
		assert.Equal(t, "", h.ExtractHTMLView(dict, testContext("ExternalUrlIdevice")))
		assert.Equal(t, "", prop(t, h.ExtractProperties(dict, testContext("ExternalUrlIdevice")), "url"))
	})
}
