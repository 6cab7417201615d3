package converter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rgonek/exe-legacy-converter/legacy"
)

func caseStudyDict(class string) *legacy.Node {
	return instance(class,
		legacy.KV("storyTextArea", textArea("<p>Once upon a time</p>")),
		legacy.KV("questions", legacy.NewList(
			instance("Question",
				legacy.KV("questionTextArea", textArea("<p>What now?</p>")),
				legacy.KV("feedbackTextArea", feedbackField("<p>Run</p>")),
			),
			instance("Question",
				legacy.KV("questionTextArea", textArea("<p>And then?</p>")),
				legacy.KV("feedback", feedbackField("<p>Rest</p>")),
				legacy.KV("buttonCaption", legacy.NewUnicode("Reveal")),
			),
			instance("Question",
				legacy.KV("questionTextArea", textArea("<p>No feedback</p>")),
			),
		)),
	)
}

func TestCaseStudyProperties(t *testing.T) {
	h := newCaseStudyHandler()
	props := h.ExtractProperties(caseStudyDict("CasestudyIdevice"), testContext("CasestudyIdevice"))

	assert.Equal(t, []string{"ideviceId", "history", "activities"}, propKeys(props))
	assert.Equal(t, "<p>Once upon a time</p>", prop(t, props, "history"))

	activities := prop(t, props, "activities").([]map[string]any)
	require.Len(t, activities, 3)
	assert.Equal(t, map[string]any{
		"activity":      "<p>What now?</p>",
		"feedback":      "<p>Run</p>",
		"buttonCaption": "Show Feedback",
	}, activities[0])
	assert.Equal(t, "<p>Rest</p>", activities[1]["feedback"], "falls back to the older feedback key")
	assert.Equal(t, "Reveal", activities[1]["buttonCaption"])
	assert.Equal(t, "", activities[2]["feedback"])
	assert.Equal(t, "", activities[2]["buttonCaption"])
}

func TestCaseStudyHTMLView(t *testing.T) {
	view := newCaseStudyHandler().ExtractHTMLView(caseStudyDict("CasestudyIdevice"), testContext("CasestudyIdevice"))

	assert.Contains(t, view, `<div class="exe-casestudy-story"><p>Once upon a time</p></div>`)
	assert.Contains(t, view, `<div class="exe-casestudy-activity"><p>What now?</p>`)
	assert.Contains(t, view, `value="Reveal"`)
	assert.Contains(t, view, `<div class="exe-casestudy-activity"><p>No feedback</p></div>`)
}

func TestCaseStudyFeedback(t *testing.T) {
	feedback := newCaseStudyHandler().ExtractFeedback(caseStudyDict("CasestudyIdevice"), testContext("CasestudyIdevice"))
	assert.Equal(t, "<p>Run</p>", feedback.Content)

	assert.True(t, newCaseStudyHandler().ExtractFeedback(nil, testContext("CasestudyIdevice")).IsEmpty())
}

func TestSolvedExerciseCaption(t *testing.T) {
	h := newSolvedExerciseHandler()
	assert.Equal(t, TypeCaseStudy, h.TargetType())

	props := h.ExtractProperties(caseStudyDict("EjercicioresueltofpdIdevice"), ExtractionContext{Language: "es"})
	activities := prop(t, props, "activities").([]map[string]any)
	require.Len(t, activities, 3)
	assert.Equal(t, "Mostrar solución", activities[0]["buttonCaption"])
	assert.Equal(t, "Reveal", activities[1]["buttonCaption"])
}

func TestCaseStudyEmpty(t *testing.T) {
	h := newCaseStudyHandler()
	props := h.ExtractProperties(instance("CasestudyIdevice"), testContext("CasestudyIdevice"))
	assert.Equal(t, "", prop(t, props, "history"))
	assert.Empty(t, prop(t, props, "activities"))
	assert.Equal(t, "", h.ExtractHTMLView(instance("CasestudyIdevice"), testContext("CasestudyIdevice")))
}
