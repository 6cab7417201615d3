package converter

import (
	"regexp"
	"strings"

	"github.com/rgonek/exe-legacy-converter/legacy"
)

// Inline blank markers. Only the underline form is known to occur in real
// legacy packages; the select and input forms are kept for producers that
// emitted them.
var (
	underlineBlankPattern  = regexp.MustCompile(`(?is)<u>(.*?)</u>`)
	selectAttrBlankPattern = regexp.MustCompile(`(?is)<select\b[^>]*\bdata-correct\s*=\s*"([^"]*)"[^>]*>.*?</select>`)
	selectBlockPattern     = regexp.MustCompile(`(?is)<select\b[^>]*>(.*?)</select>`)
	selectedOptionPattern  = regexp.MustCompile(`(?is)<option\b[^>]*\bselected\b[^>]*>(.*?)</option>`)
	inputBlankPattern      = regexp.MustCompile(`(?is)<input\b[^>]*\bdata-correct\s*=\s*"([^"]*)"[^>]*/?>`)
)

var (
	blankContentKeys       = []string{"_content", "content"}
	blankFieldTextKeys     = []string{"_encodedContent", "content_w_resourcePaths", "encodedContent", "content"}
	dropdownDistractorKeys = []string{"otras", "_otras", "otherWords", "_otherWords"}
	blankFeedbackKeys      = []string{"_feedback", "feedback", "feedbackTextArea"}
)

func placeholder(answer string) string {
	return "{{" + answer + "}}"
}

// replaceUnderlineBlanks rewrites <u>answer</u> as {{answer}}.
func replaceUnderlineBlanks(text string, answers *[]string) string {
	return underlineBlankPattern.ReplaceAllStringFunc(text, func(match string) string {
		sub := underlineBlankPattern.FindStringSubmatch(match)
		answer := StripHTMLTags(sub[1])
		*answers = append(*answers, answer)
		return placeholder(answer)
	})
}

// replaceSelectAttrBlanks rewrites <select data-correct="answer">…</select>.
func replaceSelectAttrBlanks(text string, answers *[]string) string {
	return selectAttrBlankPattern.ReplaceAllStringFunc(text, func(match string) string {
		sub := selectAttrBlankPattern.FindStringSubmatch(match)
		answer := strings.TrimSpace(DecodeHTMLContent(sub[1]))
		*answers = append(*answers, answer)
		return placeholder(answer)
	})
}

// replaceSelectedOptionBlanks rewrites a <select> whose selected option holds
// the answer. Selects without a selected option are left alone.
func replaceSelectedOptionBlanks(text string, answers *[]string) string {
	return selectBlockPattern.ReplaceAllStringFunc(text, func(match string) string {
		sub := selectBlockPattern.FindStringSubmatch(match)
		option := selectedOptionPattern.FindStringSubmatch(sub[1])
		if option == nil {
			return match
		}
		answer := StripHTMLTags(option[1])
		*answers = append(*answers, answer)
		return placeholder(answer)
	})
}

// replaceInputBlanks rewrites <input data-correct="answer">.
func replaceInputBlanks(text string, answers *[]string) string {
	return inputBlankPattern.ReplaceAllStringFunc(text, func(match string) string {
		sub := inputBlankPattern.FindStringSubmatch(match)
		answer := strings.TrimSpace(DecodeHTMLContent(sub[1]))
		*answers = append(*answers, answer)
		return placeholder(answer)
	})
}

// parseBlanks rewrites every inline blank marker as a {{answer}} placeholder
// and returns the answers in the order the patterns found them.
func parseBlanks(text string) (string, []string) {
	answers := []string{}
	text = replaceUnderlineBlanks(text, &answers)
	text = replaceSelectAttrBlanks(text, &answers)
	text = replaceSelectedOptionBlanks(text, &answers)
	text = replaceInputBlanks(text, &answers)
	return text, answers
}

// blankHandler converts legacy cloze and dropdown ("lista") iDevices into
// form questions with inline placeholders.
type blankHandler struct {
	name           string
	matcher        classMatcher
	activityType   string
	withDistractor bool
}

func (h blankHandler) Name() string { return h.name }

func (h blankHandler) CanHandle(className, typeHint string) bool {
	return h.matcher.match(className, typeHint)
}

func (blankHandler) TargetType() string { return TypeForm }

func (blankHandler) ExtractHTMLView(*legacy.Node, ExtractionContext) string {
	return ""
}

// blankField returns the field instance holding the marked-up text, falling
// back to the iDevice dictionary itself.
func blankField(dict *legacy.Node) *legacy.Node {
	for _, key := range blankContentKeys {
		if field := legacy.FindInstance(dict, key); field != nil {
			return field
		}
	}
	return dict
}

func (h blankHandler) ExtractProperties(dict *legacy.Node, ctx ExtractionContext) *Properties {
	field := blankField(dict)
	raw, _ := legacy.FirstString(field, blankFieldTextKeys)
	baseText, answers := parseBlanks(DecodeHTMLContent(raw))

	entry := map[string]any{
		"activityType": h.activityType,
		"baseText":     baseText,
		"blanks":       answers,
	}
	if h.withDistractor {
		distractors, ok := legacy.FirstString(field, dropdownDistractorKeys)
		if !ok {
			distractors, _ = legacy.FirstString(dict, dropdownDistractorKeys)
		}
		entry["otherWordsText"] = distractors
	} else {
		entry["checkCapitalization"] = legacy.FindBool(field, "checkCaps")
		entry["strict"] = legacy.FindBool(field, "strictMarking")
		entry["instantMarking"] = legacy.FindBool(field, "instantMarking")
	}

	props := newProperties(ctx)
	setFormInstructions(dict, props)
	props.Set("questionsData", []map[string]any{entry})

	if feedback := h.ExtractFeedback(dict, ctx); !feedback.IsEmpty() {
		props.Set("textFeedbackInput", feedback.ButtonCaption)
		props.Set("textFeedbackTextarea", feedback.Content)
	}
	return props
}

func (blankHandler) ExtractFeedback(dict *legacy.Node, ctx ExtractionContext) Feedback {
	return extractFeedbackFrom(dict, blankFeedbackKeys, feedbackCaptionKeys, CaptionFeedback, ctx)
}

func (blankHandler) BlockProperties() map[string]any {
	return nil
}

func newDropdownHandler() Handler {
	return blankHandler{
		name:           "dropdown",
		matcher:        classMatcher{exact: []string{"ListaIdevice"}},
		activityType:   "dropdown",
		withDistractor: true,
	}
}

func newClozeHandler() Handler {
	return blankHandler{
		name:         "cloze",
		matcher:      classMatcher{exact: []string{"ClozeIdevice", "ClozefpdIdevice", "ClozelangfpdIdevice"}},
		activityType: "fill",
	}
}
