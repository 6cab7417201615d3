package converter

import (
	"fmt"
	"maps"
	"strings"

	"github.com/rgonek/exe-legacy-converter/legacy"
)

var (
	freeTextContentKeys  = []string{"content", "_content", "activityTextArea", "commentTextArea"}
	freeTextFeedbackKeys = []string{"answerTextArea", "feedbackTextArea", "feedback"}
	notaContentKeys      = []string{"commentTextArea", "content", "_content"}
	wikipediaContentKeys = []string{"article", "_article", "content"}
	rssContentKeys       = []string{"rss", "_rss", "content"}
)

// textHandler covers the legacy families whose output is a single rich-text
// block, optionally followed by feedback.
type textHandler struct {
	name         string
	matcher      classMatcher
	contentKeys  []string
	feedbackKeys []string
	wrapClass    string
	block        map[string]any
	extraProps   func(dict *legacy.Node, props *Properties)
}

func (h textHandler) Name() string { return h.name }

func (h textHandler) CanHandle(className, typeHint string) bool {
	return h.matcher.match(className, typeHint)
}

func (h textHandler) TargetType() string { return TypeText }

func (h textHandler) content(dict *legacy.Node) string {
	content := firstFieldText(dict, h.contentKeys)
	if content == "" || h.wrapClass == "" {
		return content
	}
	return fmt.Sprintf(`<div class="%s">%s</div>`, h.wrapClass, content)
}

func (h textHandler) ExtractHTMLView(dict *legacy.Node, ctx ExtractionContext) string {
	return h.content(dict) + renderFeedbackHTML(h.ExtractFeedback(dict, ctx))
}

func (h textHandler) ExtractProperties(dict *legacy.Node, ctx ExtractionContext) *Properties {
	props := newProperties(ctx)
	props.Set("textTextarea", h.content(dict))

	feedback := h.ExtractFeedback(dict, ctx)
	if !feedback.IsEmpty() {
		props.Set("textFeedbackInput", feedback.ButtonCaption)
		props.Set("textFeedbackTextarea", feedback.Content)
	}
	if h.extraProps != nil {
		h.extraProps(dict, props)
	}
	return props
}

func (h textHandler) ExtractFeedback(dict *legacy.Node, ctx ExtractionContext) Feedback {
	if len(h.feedbackKeys) == 0 {
		return Feedback{}
	}
	return extractFeedbackFrom(dict, h.feedbackKeys, feedbackCaptionKeys, CaptionFeedback, ctx)
}

func (h textHandler) BlockProperties() map[string]any {
	if h.block == nil {
		return nil
	}
	return maps.Clone(h.block)
}

func newFreeTextHandler() Handler {
	return textHandler{
		name: "free-text",
		matcher: classMatcher{
			exact: []string{
				"FreeTextIdevice",
				"FreeTextfpdIdevice",
				"ReflectionIdevice",
				"ParasabermasfpdIdevice",
				"CitasparapensarfpdIdevice",
				"DebesconocerfpdIdevice",
				"DestacadofpdIdevice",
				"OrientacionesalumnadofpdIdevice",
				"OrientacionestutoriafpdIdevice",
			},
			contains: []string{"Reflectionfpd"},
		},
		contentKeys:  freeTextContentKeys,
		feedbackKeys: freeTextFeedbackKeys,
	}
}

// newNotaHandler converts annotations. They read like free text but their
// block starts collapsed.
func newNotaHandler() Handler {
	return textHandler{
		name:        "nota",
		matcher:     classMatcher{exact: []string{"NotaIdevice", "NotaInformacionIdevice"}},
		contentKeys: notaContentKeys,
		block:       map[string]any{"minimized": true},
	}
}

func newWikipediaHandler() Handler {
	return textHandler{
		name:        "wikipedia",
		matcher:     classMatcher{exact: []string{"WikipediaIdevice"}},
		contentKeys: wikipediaContentKeys,
		wrapClass:   "exe-wikipedia-content",
		extraProps: func(dict *legacy.Node, props *Properties) {
			if site, ok := legacy.FindString(dict, "site"); ok && site != "" {
				props.Set("wikipediaSite", site)
			}
			if article, ok := legacy.FindString(dict, "articleName"); ok && article != "" {
				props.Set("wikipediaArticle", article)
			}
		},
	}
}

func newRSSHandler() Handler {
	return textHandler{
		name:        "rss",
		matcher:     classMatcher{exact: []string{"RssIdevice"}},
		contentKeys: rssContentKeys,
		extraProps: func(dict *legacy.Node, props *Properties) {
			if url, ok := legacy.FindString(dict, "url"); ok && url != "" {
				props.Set("rssUrl", url)
			}
		},
	}
}

// defaultContentKeys are the historically common content field names tried
// by the fallback handler.
var defaultContentKeys = []string{
	"content",
	"_content",
	"text",
	"article",
	"activityTextArea",
	"commentTextArea",
	"storyTextArea",
}

// defaultHandler accepts every class and recovers whatever text it can.
type defaultHandler struct {
	baseHandler
}

func (defaultHandler) Name() string { return "default" }

func (defaultHandler) CanHandle(string, string) bool { return true }

func (defaultHandler) TargetType() string { return TypeText }

func (defaultHandler) ExtractHTMLView(dict *legacy.Node, _ ExtractionContext) string {
	return defaultContent(dict)
}

func (defaultHandler) ExtractProperties(dict *legacy.Node, ctx ExtractionContext) *Properties {
	props := newProperties(ctx)
	props.Set("textTextarea", defaultContent(dict))
	return props
}

// defaultContent tries the generic "fields" list, then common field names,
// then any text field anywhere below dict.
func defaultContent(dict *legacy.Node) string {
	if fields := legacy.FindList(dict, "fields"); fields != nil {
		var parts []string
		for _, field := range fields.Items() {
			if isTextAreaShaped(field) {
				parts = append(parts, nodeText(field))
			}
		}
		if content := joinNonEmpty(parts, "\n"); content != "" {
			return content
		}
	}

	if content := firstFieldText(dict, defaultContentKeys); content != "" {
		return content
	}

	root := dict.Dictionary()
	var found string
	legacy.Walk(root, func(n *legacy.Node) bool {
		if n == root || !isTextAreaShaped(n) {
			return true
		}
		if text := nodeText(n); strings.TrimSpace(text) != "" {
			found = text
			return false
		}
		return true
	})
	return found
}
