package converter

import (
	"strings"

	xhtml "golang.org/x/net/html"

	"github.com/rgonek/exe-legacy-converter/legacy"
)

// gameTypes lists the type hints of script-hosted game iDevices. The modern
// component type of each game is its hint.
var gameTypes = []string{
	"az-quiz-game",
	"classify",
	"complete",
	"crossword",
	"discover",
	"flipcards",
	"guess",
	"identify",
	"mathematical-problems",
	"math-operations",
	"memory-game",
	"padlock",
	"puzzle",
	"quick-questions",
	"quick-questions-multiple-choice",
	"quick-questions-video",
	"relate",
	"scrambled-list",
	"select-media-files",
	"sort",
	"trivial",
	"word-search",
}

// gameHandler converts one game type hosted by a script wrapper. The game
// configuration already lives in the HTML as a hidden *-DataGame block, so
// the content is carried as is.
type gameHandler struct {
	baseHandler
	gameType string
	matcher  classMatcher
}

func newGameHandler(gameType string) Handler {
	return gameHandler{
		gameType: gameType,
		matcher:  classMatcher{hints: []string{gameType}, wrappers: scriptWrapperClasses},
	}
}

func newGameHandlers() []Handler {
	handlers := make([]Handler, 0, len(gameTypes))
	for _, gameType := range gameTypes {
		handlers = append(handlers, newGameHandler(gameType))
	}
	return handlers
}

func (h gameHandler) Name() string { return "game:" + h.gameType }

func (h gameHandler) CanHandle(className, typeHint string) bool {
	return h.matcher.match(className, typeHint)
}

func (h gameHandler) TargetType() string { return h.gameType }

func (gameHandler) ExtractHTMLView(dict *legacy.Node, _ ExtractionContext) string {
	return defaultContent(dict)
}

func (h gameHandler) ExtractProperties(dict *legacy.Node, ctx ExtractionContext) *Properties {
	content := defaultContent(dict)

	props := newProperties(ctx)
	props.Set("gameType", h.gameType)
	props.Set("gameDataFound", hasGameData(content))
	return props
}

// hasGameData reports whether content holds an element whose class ends in
// "-DataGame", the hidden block game runtimes read their configuration from.
func hasGameData(content string) bool {
	if !strings.Contains(content, "DataGame") {
		return false
	}
	nodes, err := parseHTMLFragment(content)
	if err != nil {
		return false
	}
	for _, node := range nodes {
		if containsGameData(node) {
			return true
		}
	}
	return false
}

func containsGameData(node *xhtml.Node) bool {
	if node.Type == xhtml.ElementNode {
		for _, attr := range node.Attr {
			if attr.Key != "class" {
				continue
			}
			for _, class := range strings.Fields(attr.Val) {
				if strings.HasSuffix(class, "-DataGame") {
					return true
				}
			}
		}
	}
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		if containsGameData(child) {
			return true
		}
	}
	return false
}
