package load

import (
	"errors"
	"go/token"
	"iter"

	"gopkg.in/yaml.v3"

	"github.com/sublee/staticgen/internal/lcs"
)

// position is a location in a description file.
type position token.Position

// Pos implements [codefmt.Poser].
func (p position) Pos() token.Position { return token.Position(p) }

// pairs iterates over the key-value pairs of a mapping node in order.
func pairs(n *yaml.Node) iter.Seq2[*yaml.Node, *yaml.Node] {
	return func(yield func(*yaml.Node, *yaml.Node) bool) {
		for i := 0; i+1 < len(n.Content); i += 2 {
			if !yield(n.Content[i], n.Content[i+1]) {
				return
			}
		}
	}
}

// strings returns the string items of a sequence node. A null node is an
// empty sequence.
func (l loader) strings(n *yaml.Node, what string) ([]*yaml.Node, error) {
	if isNull(n) {
		return nil, nil
	}
	if n.Kind != yaml.SequenceNode {
		return nil, l.errorf(n, "%s must be a sequence of strings", what)
	}

	var (
		items []*yaml.Node
		errs  error
	)
	for _, item := range n.Content {
		if item.Kind != yaml.ScalarNode || isNull(item) {
			errs = errors.Join(errs, l.errorf(item, "%s must be a sequence of strings", what))
			continue
		}
		items = append(items, item)
	}
	return items, errs
}

// unknown reports an unexpected key, suggesting a known one with a similar
// spelling.
func (l loader) unknown(key *yaml.Node, what string, known []string) error {
	if s, ok := lcs.Closest(key.Value, known, 3); ok {
		return l.errorf(key, "unknown %s %q; did you mean %q?", what, key.Value, s)
	}
	return l.errorf(key, "unknown %s %q", what, key.Value)
}

func isNull(n *yaml.Node) bool {
	return n.Kind == yaml.ScalarNode && n.ShortTag() == "!!null"
}
