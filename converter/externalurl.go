package converter

import (
	"fmt"
	"html"
	"strconv"
	"strings"

	"github.com/rgonek/exe-legacy-converter/legacy"
)

// defaultExternalURLHeight applies when the legacy height is missing or unusable.
const defaultExternalURLHeight = 300

var (
	externalURLKeys    = []string{"url", "_url"}
	externalHeightKeys = []string{"height", "_height"}
)

// HeightSize buckets an iframe height in pixels into the modern size class.
func HeightSize(height int) string {
	switch {
	case height <= 200:
		return "1"
	case height <= 300:
		return "2"
	case height <= 500:
		return "3"
	default:
		return "4"
	}
}

type externalURLHandler struct {
	baseHandler
}

var externalURLMatcher = classMatcher{exact: []string{"ExternalUrlIdevice"}}

func (externalURLHandler) Name() string { return "external-url" }

func (externalURLHandler) CanHandle(className, typeHint string) bool {
	return externalURLMatcher.match(className, typeHint)
}

func (externalURLHandler) TargetType() string { return TypeExternalWebsite }

func externalURL(dict *legacy.Node) string {
	url, _ := legacy.FirstString(dict, externalURLKeys)
	return strings.TrimSpace(DecodeHTMLContent(url))
}

func externalHeight(dict *legacy.Node) int {
	for _, key := range externalHeightKeys {
		if height, ok := legacy.FindInt(dict, key); ok && height > 0 {
			return height
		}
	}
	return defaultExternalURLHeight
}

func (externalURLHandler) ExtractHTMLView(dict *legacy.Node, _ ExtractionContext) string {
	url := externalURL(dict)
	if url == "" {
		return ""
	}
	height := externalHeight(dict)
	return fmt.Sprintf(
		`<div id="iframeWebsiteIdevice"><iframe src="%s" width="600" height="%d" data-size="%s" style="width:100%%"></iframe></div>`,
		html.EscapeString(url), height, HeightSize(height),
	)
}

func (externalURLHandler) ExtractProperties(dict *legacy.Node, ctx ExtractionContext) *Properties {
	height := externalHeight(dict)

	props := newProperties(ctx)
	props.Set("url", externalURL(dict))
	props.Set("height", strconv.Itoa(height))
	props.Set("size", HeightSize(height))
	return props
}
