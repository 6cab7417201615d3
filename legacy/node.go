package legacy

// Kind identifies the shape of a Node in the legacy object graph.
type Kind int

const (
	KindDictionary Kind = iota
	KindList
	KindInstance
	KindKey
	KindString
	KindUnicode
	KindBool
	KindInt
	KindNone
	KindReference
)

var kindNames = map[Kind]string{
	KindDictionary: "dictionary",
	KindList:       "list",
	KindInstance:   "instance",
	KindKey:        "key",
	KindString:     "string",
	KindUnicode:    "unicode",
	KindBool:       "bool",
	KindInt:        "int",
	KindNone:       "none",
	KindReference:  "reference",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// Node is one element of the legacy object graph.
//
// A dictionary holds alternating key markers and values. An instance holds a class
// name and exactly one dictionary child. Leaves carry their literal text in Value.
type Node struct {
	Kind     Kind
	Class    string // instance class name
	Value    string // leaf text, key name, or reference target id
	Ref      string // instance reference id, if declared
	Children []*Node

	target *Node
}

// IsLeaf reports whether the node carries a literal value.
func (n *Node) IsLeaf() bool {
	if n == nil {
		return false
	}
	switch n.Kind {
	case KindString, KindUnicode, KindBool, KindInt, KindNone:
		return true
	}
	return false
}

// IsText reports whether the node is a string or unicode leaf.
func (n *Node) IsText() bool {
	return n != nil && (n.Kind == KindString || n.Kind == KindUnicode)
}

// Resolve follows a reference node to its target instance. Any other node is
// returned unchanged; an unresolved reference yields nil.
func (n *Node) Resolve() *Node {
	if n == nil || n.Kind != KindReference {
		return n
	}
	return n.target
}

// Dictionary returns the dictionary backing n: n itself for a dictionary, the
// single dictionary child for an instance, nil otherwise.
func (n *Node) Dictionary() *Node {
	n = n.Resolve()
	if n == nil {
		return nil
	}
	switch n.Kind {
	case KindDictionary:
		return n
	case KindInstance:
		for _, child := range n.Children {
			if child.Kind == KindDictionary {
				return child
			}
		}
	}
	return nil
}

// Items returns the elements of a list node.
func (n *Node) Items() []*Node {
	n = n.Resolve()
	if n == nil || n.Kind != KindList {
		return nil
	}
	return n.Children
}

// Entry is a key/value pair used to build dictionaries.
type Entry struct {
	Key   string
	Value *Node
}

// KV builds an Entry.
func KV(key string, value *Node) Entry {
	return Entry{Key: key, Value: value}
}

// NewDictionary builds a dictionary node from ordered entries.
func NewDictionary(entries ...Entry) *Node {
	dict := &Node{Kind: KindDictionary}
	for _, entry := range entries {
		dict.Children = append(dict.Children, NewKey(entry.Key), entry.Value)
	}
	return dict
}

// NewInstance builds an instance node of the given class around dict.
func NewInstance(class string, dict *Node) *Node {
	if dict == nil {
		dict = NewDictionary()
	}
	return &Node{Kind: KindInstance, Class: class, Children: []*Node{dict}}
}

// NewList builds a list node.
func NewList(items ...*Node) *Node {
	return &Node{Kind: KindList, Children: items}
}

func NewKey(name string) *Node {
	return &Node{Kind: KindKey, Value: name}
}

func NewString(value string) *Node {
	return &Node{Kind: KindString, Value: value}
}

func NewUnicode(value string) *Node {
	return &Node{Kind: KindUnicode, Value: value}
}

func NewBool(value bool) *Node {
	if value {
		return &Node{Kind: KindBool, Value: "True"}
	}
	return &Node{Kind: KindBool, Value: "False"}
}

func NewInt(value string) *Node {
	return &Node{Kind: KindInt, Value: value}
}

func NewNone() *Node {
	return &Node{Kind: KindNone}
}
