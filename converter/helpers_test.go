package converter

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rgonek/exe-legacy-converter/legacy"
)

func textArea(html string) *legacy.Node {
	return legacy.NewInstance("exe.engine.field.TextAreaField", legacy.NewDictionary(
		legacy.KV("content_w_resourcePaths", legacy.NewUnicode(html)),
	))
}

func feedbackField(html string) *legacy.Node {
	return legacy.NewInstance("exe.engine.field.FeedbackField", legacy.NewDictionary(
		legacy.KV("content_w_resourcePaths", legacy.NewUnicode(html)),
	))
}

func resource(name string) *legacy.Node {
	return legacy.NewInstance("exe.engine.resource.Resource", legacy.NewDictionary(
		legacy.KV("_storageName", legacy.NewUnicode(name)),
	))
}

func instance(class string, entries ...legacy.Entry) *legacy.Node {
	return legacy.NewInstance(class, legacy.NewDictionary(entries...))
}

func testContext(class string) ExtractionContext {
	return ExtractionContext{Language: "en", ComponentID: "c1", Class: class}
}

func prop(t *testing.T, props *Properties, key string) any {
	t.Helper()
	require.NotNil(t, props)
	value, ok := props.Get(key)
	require.Truef(t, ok, "property %q missing", key)
	return value
}

func propKeys(props *Properties) []string {
	var keys []string
	for pair := props.Oldest(); pair != nil; pair = pair.Next() {
		keys = append(keys, pair.Key)
	}
	return keys
}
