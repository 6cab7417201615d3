package legacy

import (
	"strconv"
	"strings"
)

// FindValue returns the value that immediately follows the key marker named key.
// References are followed one hop. It returns nil when the key is absent.
func FindValue(dict *Node, key string) *Node {
	dict = dict.Dictionary()
	if dict == nil {
		return nil
	}

	children := dict.Children
	for i := 0; i < len(children)-1; i++ {
		marker := children[i]
		if marker.Kind != KindKey || marker.Value != key {
			continue
		}
		return children[i+1].Resolve()
	}
	return nil
}

// HasKey reports whether dict declares key, regardless of the value's shape.
func HasKey(dict *Node, key string) bool {
	dict = dict.Dictionary()
	if dict == nil {
		return false
	}
	for i := 0; i < len(dict.Children)-1; i++ {
		if dict.Children[i].Kind == KindKey && dict.Children[i].Value == key {
			return true
		}
	}
	return false
}

// FindString returns the text of a string or unicode value stored under key.
func FindString(dict *Node, key string) (string, bool) {
	value := FindValue(dict, key)
	if !value.IsText() {
		return "", false
	}
	return value.Value, true
}

// FirstString tries keys in order and returns the first non-empty string value.
func FirstString(dict *Node, keys []string) (string, bool) {
	for _, key := range keys {
		if value, ok := FindString(dict, key); ok && value != "" {
			return value, true
		}
	}
	return "", false
}

// FindList returns the list stored under key, or nil.
func FindList(dict *Node, key string) *Node {
	value := FindValue(dict, key)
	if value == nil || value.Kind != KindList {
		return nil
	}
	return value
}

// FindInstance returns the instance stored under key, or nil.
func FindInstance(dict *Node, key string) *Node {
	value := FindValue(dict, key)
	if value == nil || value.Kind != KindInstance {
		return nil
	}
	return value
}

// FindBool returns the boolean stored under key. Missing or malformed values are false.
func FindBool(dict *Node, key string) bool {
	value := FindValue(dict, key)
	if value == nil || !value.IsLeaf() {
		return false
	}
	return parseBool(value.Value)
}

// FindInt returns an integer stored under key, either as an int leaf or as a
// numeric string.
func FindInt(dict *Node, key string) (int, bool) {
	value := FindValue(dict, key)
	if value == nil {
		return 0, false
	}
	switch value.Kind {
	case KindInt, KindString, KindUnicode:
		trimmed := strings.TrimSpace(value.Value)
		if n, err := strconv.Atoi(trimmed); err == nil {
			return n, true
		}
		if f, err := strconv.ParseFloat(trimmed, 64); err == nil {
			return int(f), true
		}
	}
	return 0, false
}

func parseBool(raw string) bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "true", "1", "yes":
		return true
	}
	return false
}
