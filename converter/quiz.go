package converter

import (
	"strings"

	"github.com/rgonek/exe-legacy-converter/legacy"
)

// Selection arity reported in questionsData entries.
const (
	SelectionSingle   = "single"
	SelectionMultiple = "multiple"
)

var (
	questionListKeys      = []string{"questions", "_questions"}
	questionTextKeys      = []string{"questionTextArea", "question", "_question"}
	questionHintKeys      = []string{"hintTextArea", "hint", "_hint"}
	questionFeedbackKeys  = []string{"feedbackTextArea", "feedback", "_feedback"}
	optionListKeys        = []string{"options", "_options", "answers"}
	optionTextKeys        = []string{"answerTextArea", "answer", "_answer"}
	optionFeedbackKeys    = []string{"feedbackTextArea", "feedback", "_feedback"}
	optionCorrectKeys     = []string{"isCorrect", "_isCorrect", "correct"}
	formInstructionsKeys  = []string{"instructionsForLearners", "_instructionsForLearners", "instructions"}
	multipleSelectClasses = []string{"MultiSelectIdevice", "SeleccionmultiplefpdIdevice"}
)

// quizOption is one answer of a selection question.
type quizOption struct {
	Text     string
	Correct  bool
	Feedback string
}

// quizQuestion is one legacy selection question.
type quizQuestion struct {
	Text     string
	Hint     string
	Feedback string
	Options  []quizOption
}

func (q quizQuestion) correctCount() int {
	n := 0
	for _, opt := range q.Options {
		if opt.Correct {
			n++
		}
	}
	return n
}

// findFirstList returns the first list found under keys.
func findFirstList(dict *legacy.Node, keys []string) *legacy.Node {
	for _, key := range keys {
		if list := legacy.FindList(dict, key); list != nil {
			return list
		}
	}
	return nil
}

func findAnyBool(dict *legacy.Node, keys []string) bool {
	for _, key := range keys {
		if legacy.FindBool(dict, key) {
			return true
		}
	}
	return false
}

// readQuizQuestions reads every question instance under the questions list.
// Missing option lists produce questions with no options.
func readQuizQuestions(dict *legacy.Node) []quizQuestion {
	list := findFirstList(dict, questionListKeys)
	if list == nil {
		return nil
	}

	var questions []quizQuestion
	for _, item := range list.Items() {
		item = item.Resolve()
		if item == nil || item.Kind != legacy.KindInstance {
			continue
		}
		q := quizQuestion{
			Text:     firstFieldText(item, questionTextKeys),
			Hint:     firstFieldText(item, questionHintKeys),
			Feedback: firstFieldText(item, questionFeedbackKeys),
			Options:  []quizOption{},
		}
		if options := findFirstList(item, optionListKeys); options != nil {
			for _, opt := range options.Items() {
				opt = opt.Resolve()
				if opt == nil || opt.Kind != legacy.KindInstance {
					continue
				}
				q.Options = append(q.Options, quizOption{
					Text:     firstFieldText(opt, optionTextKeys),
					Correct:  findAnyBool(opt, optionCorrectKeys),
					Feedback: firstFieldText(opt, optionFeedbackKeys),
				})
			}
		}
		questions = append(questions, q)
	}
	return questions
}

// selectionQuestionsData renders questions in the form component's shape.
// arity decides selectionType for each question.
func selectionQuestionsData(questions []quizQuestion, arity func(quizQuestion) string) []map[string]any {
	data := make([]map[string]any, 0, len(questions))
	for _, q := range questions {
		answers := make([]map[string]any, 0, len(q.Options))
		for _, opt := range q.Options {
			answers = append(answers, map[string]any{
				"text":     opt.Text,
				"correct":  opt.Correct,
				"feedback": opt.Feedback,
			})
		}
		entry := map[string]any{
			"activityType":  "selection",
			"selectionType": arity(q),
			"baseText":      q.Text,
			"answers":       answers,
		}
		if q.Hint != "" {
			entry["hint"] = q.Hint
		}
		if q.Feedback != "" {
			entry["feedback"] = q.Feedback
		}
		data = append(data, entry)
	}
	return data
}

func setFormInstructions(dict *legacy.Node, props *Properties) {
	if instructions := firstFieldText(dict, formInstructionsKeys); instructions != "" {
		props.Set("eXeFormInstructions", instructions)
	}
}

// multipleChoiceHandler converts the multiple-choice and multi-select family.
// Arity follows the source class: multi-select classes are always "multiple",
// whatever the number of correct options.
type multipleChoiceHandler struct {
	baseHandler
}

func (multipleChoiceHandler) Name() string { return "multiple-choice" }

var multipleChoiceMatcher = classMatcher{
	exact: []string{
		"MultichoiceIdevice",
		"MultiSelectIdevice",
		"EleccionmultiplefpdIdevice",
		"SeleccionmultiplefpdIdevice",
	},
}

func (multipleChoiceHandler) CanHandle(className, typeHint string) bool {
	return multipleChoiceMatcher.match(className, typeHint)
}

func (multipleChoiceHandler) TargetType() string { return TypeForm }

func (multipleChoiceHandler) ExtractHTMLView(*legacy.Node, ExtractionContext) string {
	return ""
}

func (multipleChoiceHandler) ExtractProperties(dict *legacy.Node, ctx ExtractionContext) *Properties {
	arity := selectionTypeForClass(ctx.Class)
	props := newProperties(ctx)
	setFormInstructions(dict, props)
	props.Set("questionsData", selectionQuestionsData(readQuizQuestions(dict), func(quizQuestion) string {
		return arity
	}))
	return props
}

// selectionTypeForClass maps a multiple-choice family class to its arity.
func selectionTypeForClass(className string) string {
	short := legacy.ShortClass(className)
	for _, class := range multipleSelectClasses {
		if strings.EqualFold(short, class) {
			return SelectionMultiple
		}
	}
	return SelectionSingle
}

// scormTestHandler converts SCORM quiz tests. Unlike the multiple-choice
// family, arity follows the number of correct options.
type scormTestHandler struct {
	baseHandler
}

func (scormTestHandler) Name() string { return "scorm-test" }

var scormTestMatcher = classMatcher{exact: []string{"QuizTestIdevice", "ScormTestIdevice"}}

func (scormTestHandler) CanHandle(className, typeHint string) bool {
	return scormTestMatcher.match(className, typeHint)
}

func (scormTestHandler) TargetType() string { return TypeForm }

func (scormTestHandler) ExtractHTMLView(*legacy.Node, ExtractionContext) string {
	return ""
}

func (scormTestHandler) ExtractProperties(dict *legacy.Node, ctx ExtractionContext) *Properties {
	props := newProperties(ctx)
	setFormInstructions(dict, props)
	props.Set("questionsData", selectionQuestionsData(readQuizQuestions(dict), selectionTypeByCorrectCount))

	passRate := "50"
	if rate, ok := legacy.FindString(dict, "passRate"); ok && strings.TrimSpace(rate) != "" {
		passRate = strings.TrimSpace(rate)
	}
	props.Set("passRate", passRate)
	props.Set("isScorm", true)
	return props
}

func selectionTypeByCorrectCount(q quizQuestion) string {
	if q.correctCount() > 1 {
		return SelectionMultiple
	}
	return SelectionSingle
}
