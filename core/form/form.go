// Package form holds the authoritative in-memory tree for a screen's form
// while it is being edited. Variable-length list fields (learning outcomes,
// quiz questions, a question's answer options) keep a stable identity per
// row, minted at creation time and independent of the row's current position,
// so removing an earlier row never reshuffles the identity of the survivors.
package form

import (
	"sync"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// ItemID identifies one list row for its whole lifetime.
type ItemID string

var (
	ErrNoSuchField = errors.New("no such field")
	ErrNotAList    = errors.New("field is not a list")
	ErrNoSuchItem  = errors.New("no such list item")
)

type nodeKind int

const (
	kindScalar nodeKind = iota
	kindObject
	kindList
)

type node struct {
	kind   nodeKind
	scalar interface{}
	object map[string]*node
	list   []listItem
}

type listItem struct {
	id   ItemID
	node *node
}

// Item is one row of a list field as exposed to callers.
type Item struct {
	ID    ItemID
	Value interface{}
}

// Form is a tree of scalar, object and list fields.
// All mutations mark the form dirty.
type Form struct {
	mu    sync.Mutex
	root  *node
	dirty bool
}

func New() *Form {
	return &Form{root: newObject()}
}

// Initialize replaces the entire tree. Used when a fetched entity arrives or
// when resetting after a save. Lists in `values` get fresh row identities.
// Initialize does not mark the form dirty.
func (f *Form) Initialize(values map[string]interface{}) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.root = buildNode(values)
	f.dirty = false
}

// Set sets a scalar field (or replaces a whole subtree when `v` is a map or
// a slice; slices get fresh row identities).
func (f *Form) Set(path string, v interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	target, err := f.lookup(path, true)
	if err != nil {
		return err
	}
	*target = *buildNode(v)
	f.dirty = true
	return nil
}

// Get returns the current value at `path` (lists come back as []interface{}
// without their identities; use Items for those).
func (f *Form) Get(path string) (interface{}, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	target, err := f.lookup(path, false)
	if err != nil {
		return nil, err
	}
	return snapshotNode(target), nil
}

// Append appends an item to the list at `path` and returns the fresh
// identity minted for it. The list is created if the field does not exist yet.
func (f *Form) Append(path string, item interface{}) (ItemID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	target, err := f.lookup(path, true)
	if err != nil {
		return "", err
	}
	if target.kind == kindScalar && target.scalar == nil {
		*target = node{kind: kindList}
	}
	if target.kind != kindList {
		return "", errors.Wrap(ErrNotAList, path)
	}
	id := newItemID()
	target.list = append(target.list, listItem{id: id, node: buildNode(item)})
	f.dirty = true
	return id, nil
}

// Remove removes the item matching `id` from the list at `path`. Remaining
// items keep their identities; the gap is closed, preserving order.
func (f *Form) Remove(path string, id ItemID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	target, err := f.lookup(path, false)
	if err != nil {
		return err
	}
	if target.kind != kindList {
		return errors.Wrap(ErrNotAList, path)
	}
	for i, it := range target.list {
		if it.id == id {
			target.list = append(target.list[:i], target.list[i+1:]...)
			f.dirty = true
			return nil
		}
	}
	return errors.Wrap(ErrNoSuchItem, string(id))
}

// Items returns the rows of the list at `path` in their current order.
func (f *Form) Items(path string) ([]Item, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	target, err := f.lookup(path, false)
	if err != nil {
		return nil, err
	}
	if target.kind != kindList {
		return nil, errors.Wrap(ErrNotAList, path)
	}
	items := make([]Item, len(target.list))
	for i, it := range target.list {
		items[i] = Item{ID: it.id, Value: snapshotNode(it.node)}
	}
	return items, nil
}

// Dirty reports whether the form has unsaved changes.
func (f *Form) Dirty() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.dirty
}

// ClearDirty marks the form as saved.
func (f *Form) ClearDirty() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.dirty = false
}

// Snapshot returns a deep copy of the current values: objects as
// map[string]interface{}, lists as []interface{} in current order.
func (f *Form) Snapshot() map[string]interface{} {
	f.mu.Lock()
	defer f.mu.Unlock()
	return snapshotNode(f.root).(map[string]interface{})
}

// lookup resolves a field path to its node. With `create`, missing
// intermediate objects and the final field are created along the way.
// Node children are pointers shared with the tree, so mutating through the
// returned *node updates the form in place.
func (f *Form) lookup(path string, create bool) (*node, error) {
	segs, err := parsePath(path)
	if err != nil {
		return nil, err
	}
	curr := f.root
	for i, seg := range segs {
		last := i == len(segs)-1
		if curr.kind != kindObject {
			return nil, errors.Wrap(ErrNoSuchField, seg.name)
		}
		child, ok := curr.object[seg.name]
		if !ok {
			if !create {
				return nil, errors.Wrap(ErrNoSuchField, seg.name)
			}
			if last && !seg.indexed {
				child = &node{kind: kindScalar}
			} else {
				child = newObject()
			}
			curr.object[seg.name] = child
		}
		if seg.indexed {
			if child.kind != kindList {
				return nil, errors.Wrap(ErrNotAList, seg.name)
			}
			if seg.index >= len(child.list) {
				return nil, errors.Wrapf(ErrNoSuchItem, "%s[%d]", seg.name, seg.index)
			}
			child = child.list[seg.index].node
		}
		curr = child
	}
	return curr, nil
}

func newObject() *node {
	return &node{kind: kindObject, object: make(map[string]*node)}
}

func newItemID() ItemID {
	return ItemID(uuid.NewString())
}

// buildNode converts a plain value into tree form; slices get fresh row IDs.
func buildNode(v interface{}) *node {
	switch val := v.(type) {
	case map[string]interface{}:
		obj := newObject()
		for k, child := range val {
			obj.object[k] = buildNode(child)
		}
		return obj
	case []interface{}:
		n := &node{kind: kindList, list: make([]listItem, len(val))}
		for i, child := range val {
			n.list[i] = listItem{id: newItemID(), node: buildNode(child)}
		}
		return n
	default:
		return &node{kind: kindScalar, scalar: v}
	}
}

func snapshotNode(n *node) interface{} {
	switch n.kind {
	case kindObject:
		m := make(map[string]interface{}, len(n.object))
		for k, child := range n.object {
			m[k] = snapshotNode(child)
		}
		return m
	case kindList:
		l := make([]interface{}, len(n.list))
		for i, it := range n.list {
			l[i] = snapshotNode(it.node)
		}
		return l
	default:
		return n.scalar
	}
}
