package devtools

import "testing"

// buildTestTree builds:
//
//	root
//	├── a
//	│   ├── a1
//	│   └── a2
//	└── b
func buildTestTree() *ComponentTree {
	tree := NewComponentTree()
	tree.Insert("root", nil)
	root := Handle("root")
	tree.Insert("a", &root)
	tree.Insert("b", &root)
	a := Handle("a")
	tree.Insert("a1", &a)
	tree.Insert("a2", &a)
	return tree
}

func TestNavigatorNextDepthFirst(t *testing.T) {
	nav := NewNavigator(buildTestTree())
	nav.Next() // -> root
	if h, _ := nav.Selected(); h != "root" {
		t.Fatalf("expected root, got %s", h)
	}
	nav.Next() // first child of root
	if h, _ := nav.Selected(); h != "a" {
		t.Fatalf("expected a, got %s", h)
	}
	nav.Next() // first child of a
	if h, _ := nav.Selected(); h != "a1" {
		t.Fatalf("expected a1, got %s", h)
	}
	nav.Next() // next sibling of a1
	if h, _ := nav.Selected(); h != "a2" {
		t.Fatalf("expected a2, got %s", h)
	}
	nav.Next() // a2 has no children/siblings, go up to a's next sibling
	if h, _ := nav.Selected(); h != "b" {
		t.Fatalf("expected b, got %s", h)
	}
	nav.Next() // b is the last node entirely, stays put
	if h, _ := nav.Selected(); h != "b" {
		t.Fatalf("expected navigation to stop at b, got %s", h)
	}
}

func TestNavigatorPrevIsExactReverse(t *testing.T) {
	tree := buildTestTree()
	nav := NewNavigator(tree)
	order := []Handle{}
	for i := 0; i < 5; i++ {
		nav.Next()
		h, _ := nav.Selected()
		order = append(order, h)
	}

	for i := len(order) - 1; i > 0; i-- {
		nav.Prev()
		h, _ := nav.Selected()
		if h != order[i-1] {
			t.Fatalf("step %d: expected %s, got %s", i, order[i-1], h)
		}
	}
}

func TestNavigatorIntoAndOut(t *testing.T) {
	nav := NewNavigator(buildTestTree())
	nav.Select("a")
	nav.Into()
	if h, _ := nav.Selected(); h != "a1" {
		t.Fatalf("expected into to select first child a1, got %s", h)
	}
	nav.Out()
	if h, _ := nav.Selected(); h != "a" {
		t.Fatalf("expected out to select parent a, got %s", h)
	}
}

func TestNavigatorOutAtRootIsNoop(t *testing.T) {
	nav := NewNavigator(buildTestTree())
	nav.Select("root")
	nav.Out()
	if h, _ := nav.Selected(); h != "root" {
		t.Fatalf("expected out at root to be a no-op, got %s", h)
	}
}

func TestComponentTreeSiblingLookups(t *testing.T) {
	tree := buildTestTree()
	if next, ok := tree.NextSibling("a1"); !ok || next != "a2" {
		t.Fatalf("expected a1's next sibling to be a2, got %s ok=%v", next, ok)
	}
	if prev, ok := tree.PrevSibling("a2"); !ok || prev != "a1" {
		t.Fatalf("expected a2's prev sibling to be a1, got %s ok=%v", prev, ok)
	}
	if _, ok := tree.NextSibling("b"); ok {
		t.Fatalf("expected b to have no next sibling")
	}
}
