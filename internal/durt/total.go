package durt

import (
	"path/filepath"
	"slices"
	"strings"

	"github.com/samber/lo"
	"github.com/sirupsen/logrus"
)

// trieNode is one canonical path component.
// A node with a nonzero size is terminal: it stands for a whole input entry.
type trieNode struct {
	children map[string]*trieNode
	size     uint64
}

func newTrieNode() *trieNode {
	return &trieNode{children: make(map[string]*trieNode)}
}

// insert adds size at the end of components.
//
// Descending into a terminal node stops the insertion: the entry lies inside an
// already accounted path (or repeats it) and adds nothing. Reaching the last
// component makes that node terminal and drops its children, since whatever was
// inserted below it is now part of its size. Skipping that drop counts nested
// entries twice.
func (n *trieNode) insert(components []string, size uint64) bool {
	current := n

	for i, component := range components {
		next, ok := current.children[component]
		if !ok {
			next = newTrieNode()
			current.children[component] = next
		}

		if next.size != 0 {
			return false
		}

		if i == len(components)-1 {
			next.size = size
			clear(next.children)
		}

		current = next
	}

	return true
}

// sum returns the size of the node plus the sums of all its children.
func (n *trieNode) sum() uint64 {
	total := n.size
	for _, child := range n.children {
		total += child.sum()
	}

	return total
}

// accounted lists the joined component paths of all terminal nodes, sorted by component.
func (n *trieNode) accounted(prefix string) []string {
	var paths []string

	if n.size != 0 {
		paths = append(paths, prefix)
	}

	keys := lo.Keys(n.children)
	slices.Sort(keys)

	for _, key := range keys {
		paths = append(paths, n.children[key].accounted(filepath.Join(prefix, key))...)
	}

	return paths
}

// splitComponents splits an absolute, clean path into its volume/root followed by its names.
// "/a/b" gives ["/", "a", "b"], `C:\a` gives [`C:\`, "a"].
func splitComponents(path string) []string {
	volume := filepath.VolumeName(path)
	rest := path[len(volume):]

	components := []string{volume + string(filepath.Separator)}

	for _, name := range strings.Split(rest, string(filepath.Separator)) {
		if name != "" {
			components = append(components, name)
		}
	}

	return components
}

// canonicalize returns the absolute, symlink-resolved form of path.
func canonicalize(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}

	return filepath.EvalSymlinks(abs)
}

// Totaler computes unique totals.
type Totaler struct {
	// Errors receives canonicalization failures. A nil ErrorLog drops them.
	Errors *ErrorLog
	// Log receives debug traces. Nil discards them.
	Log logrus.FieldLogger
}

// UniqueTotal is Totaler{Errors: errs}.Total(entries).
func UniqueTotal(entries []Entry, errs *ErrorLog) uint64 {
	return Totaler{Errors: errs}.Total(entries)
}

// Total sums the sizes of entries, counting each physical path once.
//
// Entries are inserted in order into a trie keyed by canonical path components.
// An entry below an earlier entry is shadowed and adds nothing; an entry above
// earlier entries absorbs them. Either way only the ancestor's size counts.
//
// Entries whose path cannot be canonicalized are logged and left out of the
// total, even though they still appear in the per-path listing.
func (t Totaler) Total(entries []Entry) uint64 {
	log := t.Log
	if log == nil {
		log = discard()
	}

	root := newTrieNode()

	for _, entry := range entries {
		canonical, err := canonicalize(entry.Path)
		if err != nil {
			t.Errors.Log(entry.Path, err)

			continue
		}

		if !root.insert(splitComponents(canonical), entry.Size) {
			log.WithField("path", entry.Path).Debugf("shadowed by an accounted path: %s", canonical)
		}
	}

	for _, path := range root.accounted("") {
		log.Debugf("counted in total: %s", path)
	}

	return root.sum()
}
