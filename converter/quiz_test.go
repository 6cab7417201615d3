package converter

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rgonek/exe-legacy-converter/legacy"
)

func quizOptionNode(text string, correct bool) *legacy.Node {
	return instance("exe.engine.quizoption.QuizOptionElement",
		legacy.KV("answerTextArea", textArea(text)),
		legacy.KV("isCorrect", legacy.NewBool(correct)),
	)
}

func quizQuestionNode(text string, options ...*legacy.Node) *legacy.Node {
	entries := []legacy.Entry{legacy.KV("questionTextArea", textArea(text))}
	if options != nil {
		entries = append(entries, legacy.KV("options", legacy.NewList(options...)))
	}
	return instance("exe.engine.quizquestion.QuizQuestionField", entries...)
}

func quizDict(class string, questions ...*legacy.Node) *legacy.Node {
	return instance(class, legacy.KV("questions", legacy.NewList(questions...)))
}

func questionsData(t *testing.T, props *Properties) []map[string]any {
	t.Helper()
	data, ok := prop(t, props, "questionsData").([]map[string]any)
	require.True(t, ok)
	return data
}

func TestMultipleChoiceArityFollowsClass(t *testing.T) {
	h := multipleChoiceHandler{}

	t.Run("multi-select with one correct option", func(t *testing.T) {
		dict := quizDict("MultiSelectIdevice", quizQuestionNode("Q",
			quizOptionNode("a", true),
			quizOptionNode("b", false),
		))
		data := questionsData(t, h.ExtractProperties(dict, testContext("exe.engine.multiselectidevice.MultiSelectIdevice")))
		require.Len(t, data, 1)
		assert.Equal(t, SelectionMultiple, data[0]["selectionType"])
	})

	t.Run("single choice with two correct options", func(t *testing.T) {
		dict := quizDict("MultichoiceIdevice", quizQuestionNode("Q",
			quizOptionNode("a", true),
			quizOptionNode("b", true),
		))
		data := questionsData(t, h.ExtractProperties(dict, testContext("exe.engine.multichoiceidevice.MultichoiceIdevice")))
		require.Len(t, data, 1)
		assert.Equal(t, SelectionSingle, data[0]["selectionType"])
	})

	t.Run("fpd multi-select", func(t *testing.T) {
		assert.Equal(t, SelectionMultiple, selectionTypeForClass("SeleccionmultiplefpdIdevice"))
		assert.Equal(t, SelectionSingle, selectionTypeForClass("EleccionmultiplefpdIdevice"))
	})
}

func TestMultipleChoiceQuestions(t *testing.T) {
	dict := quizDict("MultichoiceIdevice",
		quizQuestionNode("<p>Q1</p>",
			quizOptionNode("one", true),
			quizOptionNode("two", false),
		),
		quizQuestionNode("<p>Q2</p>"),
	)
	dict.Dictionary().Children = append(dict.Dictionary().Children,
		legacy.NewKey("instructionsForLearners"), textArea("Pick one"),
	)

	props := multipleChoiceHandler{}.ExtractProperties(dict, testContext("MultichoiceIdevice"))
	assert.Equal(t, []string{"ideviceId", "eXeFormInstructions", "questionsData"}, propKeys(props))
	assert.Equal(t, "Pick one", prop(t, props, "eXeFormInstructions"))

	data := questionsData(t, props)
	require.Len(t, data, 2)

	assert.Equal(t, "selection", data[0]["activityType"])
	assert.Equal(t, "<p>Q1</p>", data[0]["baseText"])
	answers := data[0]["answers"].([]map[string]any)
	require.Len(t, answers, 2)
	assert.Equal(t, map[string]any{"text": "one", "correct": true, "feedback": ""}, answers[0])
	assert.Equal(t, map[string]any{"text": "two", "correct": false, "feedback": ""}, answers[1])

	assert.Equal(t, "<p>Q2</p>", data[1]["baseText"])
	assert.Empty(t, data[1]["answers"])

	encoded, err := json.Marshal(props)
	require.NoError(t, err)
	assert.Contains(t, string(encoded), `"answers":[]`)
	assert.NotContains(t, string(encoded), `"answers":null`)
}

func TestMultipleChoiceWithoutQuestions(t *testing.T) {
	props := multipleChoiceHandler{}.ExtractProperties(instance("MultichoiceIdevice"), testContext("MultichoiceIdevice"))
	assert.Empty(t, questionsData(t, props))
	assert.Equal(t, "", multipleChoiceHandler{}.ExtractHTMLView(nil, testContext("MultichoiceIdevice")))
}

func TestScormTestArityFollowsCorrectCount(t *testing.T) {
	dict := quizDict("QuizTestIdevice",
		quizQuestionNode("one correct", quizOptionNode("a", true), quizOptionNode("b", false)),
		quizQuestionNode("two correct", quizOptionNode("a", true), quizOptionNode("b", true)),
		quizQuestionNode("none correct", quizOptionNode("a", false)),
	)

	props := scormTestHandler{}.ExtractProperties(dict, testContext("QuizTestIdevice"))
	data := questionsData(t, props)
	require.Len(t, data, 3)
	assert.Equal(t, SelectionSingle, data[0]["selectionType"])
	assert.Equal(t, SelectionMultiple, data[1]["selectionType"])
	assert.Equal(t, SelectionSingle, data[2]["selectionType"])

	assert.Equal(t, "50", prop(t, props, "passRate"))
	assert.Equal(t, true, prop(t, props, "isScorm"))
}

func TestScormTestPassRate(t *testing.T) {
	dict := instance("QuizTestIdevice", legacy.KV("passRate", legacy.NewUnicode(" 70 ")))
	props := scormTestHandler{}.ExtractProperties(dict, testContext("QuizTestIdevice"))
	assert.Equal(t, "70", prop(t, props, "passRate"))
}

func TestQuizHintAndFeedback(t *testing.T) {
	question := instance("QuizQuestionField",
		legacy.KV("questionTextArea", textArea("Q")),
		legacy.KV("hintTextArea", textArea("think")),
		legacy.KV("feedbackTextArea", feedbackField("well done")),
		legacy.KV("options", legacy.NewList(
			instance("QuizOptionElement",
				legacy.KV("answerTextArea", textArea("a")),
				legacy.KV("feedbackTextArea", feedbackField("because")),
				legacy.KV("isCorrect", legacy.NewBool(true)),
			),
		)),
	)

	data := questionsData(t, multipleChoiceHandler{}.ExtractProperties(quizDict("MultichoiceIdevice", question), testContext("MultichoiceIdevice")))
	require.Len(t, data, 1)
	assert.Equal(t, "think", data[0]["hint"])
	assert.Equal(t, "well done", data[0]["feedback"])
	assert.Equal(t, "because", data[0]["answers"].([]map[string]any)[0]["feedback"])
}
