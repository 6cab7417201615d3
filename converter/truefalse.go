package converter

import (
	"encoding/json"
	"fmt"
	"html"

	"github.com/rgonek/exe-legacy-converter/legacy"
)

var (
	trueFalseMatcher = classMatcher{exact: []string{"TrueFalseIdevice", "VerdaderofalsofpdIdevice"}}

	trueFalseStatementKeys = []string{"questionTextArea", "question", "_question"}
	trueFalseHintKeys      = []string{"hintTextArea", "hint", "_hint"}
	trueFalseFeedbackKeys  = []string{"feedbackTextArea", "feedback", "_feedback"}
)

// trueFalseMessages is the fixed message catalogue shipped with every
// true/false game configuration.
func trueFalseMessages() map[string]string {
	return map[string]string{
		"msgTrue":         "True",
		"msgFalse":        "False",
		"msgCheck":        "Check",
		"msgNext":         "Next",
		"msgReboot":       "Try again",
		"msgCorrect":      "Correct",
		"msgIncorrect":    "Incorrect",
		"msgHint":         "Hint",
		"msgFeedback":     "Feedback",
		"msgScore":        "Score",
		"msgYouScore":     "Your score",
		"msgEndGame":      "Game over",
		"msgQuestion":     "Question",
		"msgSaveScore":    "Save score",
		"msgOnlySaveOnce": "You can only save the score once",
	}
}

// trueFalseHandler reshapes true/false questions into the configuration of
// the standalone true-or-false game.
type trueFalseHandler struct {
	baseHandler
}

func (trueFalseHandler) Name() string { return "true-false" }

func (trueFalseHandler) CanHandle(className, typeHint string) bool {
	return trueFalseMatcher.match(className, typeHint)
}

func (trueFalseHandler) TargetType() string { return TypeTrueOrFalse }

func (h trueFalseHandler) ExtractHTMLView(dict *legacy.Node, ctx ExtractionContext) string {
	data, err := json.Marshal(h.ExtractProperties(dict, ctx))
	if err != nil {
		ctx.logger().Warn().Err(err).Str("component", ctx.ComponentID).Msg("failed to encode true/false game data")
		return ""
	}
	return fmt.Sprintf(
		`<div class="trueorfalse-IDevice"><div class="trueorfalse-DataGame js-hidden">%s</div></div>`,
		html.EscapeString(string(data)),
	)
}

func (trueFalseHandler) ExtractProperties(dict *legacy.Node, ctx ExtractionContext) *Properties {
	questions := make([]map[string]any, 0)
	if list := findFirstList(dict, questionListKeys); list != nil {
		for _, item := range list.Items() {
			item = item.Resolve()
			if item == nil || item.Kind != legacy.KindInstance {
				continue
			}
			questions = append(questions, map[string]any{
				"question": firstFieldText(item, trueFalseStatementKeys),
				"solution": findAnyBool(item, optionCorrectKeys),
				"hint":     firstFieldText(item, trueFalseHintKeys),
				"feedback": firstFieldText(item, trueFalseFeedbackKeys),
			})
		}
	}

	props := newProperties(ctx)
	props.Set("id", ctx.ComponentID)
	props.Set("typeGame", "TrueOrFalse")
	props.Set("instructions", firstFieldText(dict, formInstructionsKeys))
	props.Set("questionsGame", questions)
	props.Set("msgs", trueFalseMessages())
	props.Set("isScorm", 0)
	props.Set("textButtonScorm", "")
	props.Set("repeatActivity", true)
	props.Set("percentageQuestions", 100)
	props.Set("evaluation", false)
	props.Set("evaluationID", "")
	return props
}
