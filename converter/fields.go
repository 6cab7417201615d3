package converter

import (
	"fmt"
	"html"
	"strings"

	"github.com/rgonek/exe-legacy-converter/legacy"
)

// textAreaContentKeys lists where a TextAreaField keeps its HTML, newest first.
var textAreaContentKeys = []string{
	"content_w_resourcePaths",
	"content_wo_resourcePaths",
	"content",
	"_content",
	"_encodedContent",
}

// feedbackCaptionKeys lists the legacy names of a feedback button caption.
var feedbackCaptionKeys = []string{
	"buttonCaption",
	"_buttonCaption",
	"feedbackButtonCaption",
}

// fieldText reads the rich text stored under key. The value may be a field
// instance (TextAreaField, TextField, FeedbackField) or a bare string leaf.
func fieldText(dict *legacy.Node, key string) string {
	value := legacy.FindValue(dict, key)
	return nodeText(value)
}

// firstFieldText tries keys in order and returns the first non-empty text.
func firstFieldText(dict *legacy.Node, keys []string) string {
	for _, key := range keys {
		if text := fieldText(dict, key); strings.TrimSpace(text) != "" {
			return text
		}
	}
	return ""
}

// nodeText extracts decoded text from a leaf or from a text-area-shaped instance.
func nodeText(value *legacy.Node) string {
	value = value.Resolve()
	if value == nil {
		return ""
	}
	if value.IsText() {
		return DecodeHTMLContent(value.Value)
	}
	if value.Kind != legacy.KindInstance {
		return ""
	}
	if text, ok := legacy.FirstString(value, textAreaContentKeys); ok && strings.TrimSpace(text) != "" {
		return DecodeHTMLContent(text)
	}
	return ""
}

// isTextAreaShaped reports whether an instance looks like a legacy text field.
func isTextAreaShaped(n *legacy.Node) bool {
	n = n.Resolve()
	if n == nil || n.Kind != legacy.KindInstance {
		return false
	}
	short := legacy.ShortClass(n.Class)
	if strings.HasSuffix(short, "TextAreaField") || strings.HasSuffix(short, "FeedbackField") || short == "TextField" {
		return true
	}
	for _, key := range textAreaContentKeys {
		if _, ok := legacy.FindString(n, key); ok {
			return true
		}
	}
	return false
}

// extractFeedbackFrom implements the shared feedback pattern: the first
// non-empty content key wins, and a missing caption falls back to the localized
// default named by captionKey.
func extractFeedbackFrom(dict *legacy.Node, contentKeys []string, captionKeys []string, captionKey string, ctx ExtractionContext) Feedback {
	content := firstFieldText(dict, contentKeys)
	if strings.TrimSpace(content) == "" {
		return Feedback{}
	}

	caption, _ := legacy.FirstString(dict, captionKeys)
	caption = strings.TrimSpace(DecodeHTMLContent(caption))
	if caption == "" {
		caption = DefaultLocalization().Caption(ctx.Language, captionKey)
	}
	return Feedback{Content: content, ButtonCaption: caption}
}

// renderFeedbackHTML renders the toggle button and hidden feedback block used
// by text-like components.
func renderFeedbackHTML(feedback Feedback) string {
	if feedback.IsEmpty() {
		return ""
	}
	return fmt.Sprintf(
		`<div class="iDevice_buttons feedback-button js-required"><input type="button" class="feedbacktooglebutton" value="%s" /></div><div class="feedback js-feedback js-hidden">%s</div>`,
		html.EscapeString(feedback.ButtonCaption),
		feedback.Content,
	)
}

var resourceFileNameKeys = []string{"_storageName", "storageName", "_fn", "fileName"}

// resourceFileName returns the stored file name of a legacy Resource instance.
func resourceFileName(resource *legacy.Node) string {
	resource = resource.Resolve()
	if resource == nil {
		return ""
	}
	if resource.IsText() {
		return strings.TrimSpace(resource.Value)
	}
	name, _ := legacy.FirstString(resource, resourceFileNameKeys)
	return strings.TrimSpace(name)
}

// findResource returns the first resource found under keys.
func findResource(dict *legacy.Node, keys []string) string {
	for _, key := range keys {
		if name := resourceFileName(legacy.FindValue(dict, key)); name != "" {
			return name
		}
	}
	return ""
}

func joinNonEmpty(parts []string, sep string) string {
	kept := make([]string, 0, len(parts))
	for _, part := range parts {
		if strings.TrimSpace(part) != "" {
			kept = append(kept, part)
		}
	}
	return strings.Join(kept, sep)
}
