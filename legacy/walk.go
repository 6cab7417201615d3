package legacy

import "strings"

// Walk visits n and its descendants depth-first in document order. Returning
// false from fn stops the walk. Reference nodes are visited but not followed, so
// cyclic graphs terminate.
func Walk(n *Node, fn func(*Node) bool) bool {
	if n == nil {
		return true
	}
	if !fn(n) {
		return false
	}
	for _, child := range n.Children {
		if !Walk(child, fn) {
			return false
		}
	}
	return true
}

// FindInstances returns every instance under root, root included, for which
// match returns true.
func FindInstances(root *Node, match func(*Node) bool) []*Node {
	var found []*Node
	Walk(root, func(n *Node) bool {
		if n.Kind == KindInstance && match(n) {
			found = append(found, n)
		}
		return true
	})
	return found
}

// ShortClass returns the last dotted segment of a fully-qualified class name.
func ShortClass(class string) string {
	class = strings.TrimSpace(class)
	if idx := strings.LastIndex(class, "."); idx >= 0 {
		return class[idx+1:]
	}
	return class
}
