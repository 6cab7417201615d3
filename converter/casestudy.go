package converter

import (
	"fmt"
	"strings"

	"github.com/rgonek/exe-legacy-converter/legacy"
)

var (
	caseStudyStoryKeys          = []string{"storyTextArea", "story", "_story"}
	caseStudyActivityKeys       = []string{"questionTextArea", "question", "_question"}
	caseStudyFeedbackKeys       = []string{"feedbackTextArea", "feedback"}
	solvedExerciseStatementKeys = []string{"storyTextArea", "enunciado", "_enunciado", "story"}
)

// caseStudyActivity is one activity of a case study with its feedback.
type caseStudyActivity struct {
	Activity string
	Feedback Feedback
}

// caseStudyHandler converts narrative case studies. The solved-exercise family
// shares the layout and differs only in its default caption.
type caseStudyHandler struct {
	name       string
	matcher    classMatcher
	storyKeys  []string
	captionKey string
}

func (h caseStudyHandler) Name() string { return h.name }

func (h caseStudyHandler) CanHandle(className, typeHint string) bool {
	return h.matcher.match(className, typeHint)
}

func (caseStudyHandler) TargetType() string { return TypeCaseStudy }

func (h caseStudyHandler) activities(dict *legacy.Node, ctx ExtractionContext) []caseStudyActivity {
	list := findFirstList(dict, questionListKeys)
	if list == nil {
		return nil
	}

	var activities []caseStudyActivity
	for _, item := range list.Items() {
		item = item.Resolve()
		if item == nil || item.Kind != legacy.KindInstance {
			continue
		}
		activities = append(activities, caseStudyActivity{
			Activity: firstFieldText(item, caseStudyActivityKeys),
			Feedback: extractFeedbackFrom(item, caseStudyFeedbackKeys, feedbackCaptionKeys, h.captionKey, ctx),
		})
	}
	return activities
}

func (h caseStudyHandler) ExtractHTMLView(dict *legacy.Node, ctx ExtractionContext) string {
	var b strings.Builder
	if story := firstFieldText(dict, h.storyKeys); story != "" {
		fmt.Fprintf(&b, `<div class="exe-casestudy-story">%s</div>`, story)
	}
	for _, activity := range h.activities(dict, ctx) {
		if activity.Activity == "" && activity.Feedback.IsEmpty() {
			continue
		}
		b.WriteString(`<div class="exe-casestudy-activity">`)
		b.WriteString(activity.Activity)
		b.WriteString(renderFeedbackHTML(activity.Feedback))
		b.WriteString(`</div>`)
	}
	return b.String()
}

func (h caseStudyHandler) ExtractProperties(dict *legacy.Node, ctx ExtractionContext) *Properties {
	activities := make([]map[string]any, 0)
	for _, activity := range h.activities(dict, ctx) {
		activities = append(activities, map[string]any{
			"activity":      activity.Activity,
			"feedback":      activity.Feedback.Content,
			"buttonCaption": activity.Feedback.ButtonCaption,
		})
	}

	props := newProperties(ctx)
	props.Set("history", firstFieldText(dict, h.storyKeys))
	props.Set("activities", activities)
	return props
}

// ExtractFeedback reports the first activity feedback, the closest thing a
// case study has to component-level feedback.
func (h caseStudyHandler) ExtractFeedback(dict *legacy.Node, ctx ExtractionContext) Feedback {
	for _, activity := range h.activities(dict, ctx) {
		if !activity.Feedback.IsEmpty() {
			return activity.Feedback
		}
	}
	return Feedback{}
}

func (caseStudyHandler) BlockProperties() map[string]any {
	return nil
}

func newCaseStudyHandler() Handler {
	return caseStudyHandler{
		name:       "case-study",
		matcher:    classMatcher{exact: []string{"CasestudyIdevice", "CasopracticofpdIdevice"}},
		storyKeys:  caseStudyStoryKeys,
		captionKey: CaptionFeedback,
	}
}

func newSolvedExerciseHandler() Handler {
	return caseStudyHandler{
		name:       "solved-exercise",
		matcher:    classMatcher{exact: []string{"EjercicioresueltofpdIdevice"}},
		storyKeys:  solvedExerciseStatementKeys,
		captionKey: CaptionSolution,
	}
}
