package node

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/dshills/richtext/internal/engine/path"
)

// testDoc builds:
//
//	doc[paragraph["Hello " link!inline["world"] ""] image!void[""] paragraph["Bye"]]
func testDoc() *Document {
	return NewDocument("d",
		NewElement("p1", "paragraph",
			NewText("t1", "Hello "),
			NewElement("l1", "link", NewText("t2", "world")).WithInline(true),
			NewText("t3", ""),
		),
		NewElement("v1", "image", NewText("t4", "")).WithVoid(true),
		NewElement("p2", "paragraph", NewText("t5", "Bye")),
	)
}

func collect(it *Iterator) []string {
	var keys []string
	for it.Next() {
		keys = append(keys, it.Entry().Node.Key())
	}
	return keys
}

func TestGet(t *testing.T) {
	doc := testDoc()

	n, err := Get(doc, path.New(0, 1, 0))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n.Key() != "t2" {
		t.Errorf("expected t2, got %s", n.Key())
	}

	if _, err := Get(doc, path.New(0, 5)); !errors.Is(err, ErrNodeNotFound) {
		t.Errorf("expected ErrNodeNotFound, got %v", err)
	}
	if _, err := Get(doc, path.New(0, 0, 0)); !errors.Is(err, ErrNodeNotFound) {
		t.Errorf("descending into a text should fail, got %v", err)
	}

	root, err := Get(doc, path.Root())
	if err != nil || root != Node(doc) {
		t.Error("root path should return the document")
	}
}

func TestFindPath(t *testing.T) {
	doc := testDoc()

	p, ok := doc.FindPath("t5")
	if !ok {
		t.Fatal("expected t5 to be found")
	}
	if diff := cmp.Diff(path.New(2, 0), p); diff != "" {
		t.Errorf("path mismatch (-want +got):\n%s", diff)
	}
	if _, ok := doc.FindPath("missing"); ok {
		t.Error("missing key should not be found")
	}
	if _, err := doc.GetByKey("missing"); !errors.Is(err, ErrNodeNotFound) {
		t.Errorf("expected ErrNodeNotFound, got %v", err)
	}

	// An edited document gets its own index.
	doc2, _, err := doc.RemoveNode(path.New(0))
	if err != nil {
		t.Fatal(err)
	}
	p, _ = doc2.FindPath("t5")
	if diff := cmp.Diff(path.New(1, 0), p); diff != "" {
		t.Errorf("path mismatch after edit (-want +got):\n%s", diff)
	}
	p, _ = doc.FindPath("t5")
	if diff := cmp.Diff(path.New(2, 0), p); diff != "" {
		t.Errorf("old snapshot changed (-want +got):\n%s", diff)
	}
}

func TestAncestors(t *testing.T) {
	doc := testDoc()

	ancestors, err := Ancestors(doc, path.New(0, 1, 0))
	if err != nil {
		t.Fatal(err)
	}
	var keys []string
	for _, e := range ancestors {
		keys = append(keys, e.Node.Key())
	}
	if diff := cmp.Diff([]string{"d", "p1", "l1"}, keys); diff != "" {
		t.Errorf("ancestors mismatch (-want +got):\n%s", diff)
	}

	parent, err := GetParent(doc, path.New(0, 1, 0))
	if err != nil || parent.Key() != "l1" {
		t.Errorf("expected parent l1, got %v (%v)", parent, err)
	}
}

func TestClosest(t *testing.T) {
	doc := testDoc()

	block, ok, err := ClosestBlock(doc, path.New(0, 1, 0))
	if err != nil || !ok || block.Node.Key() != "p1" {
		t.Errorf("expected closest block p1, got %v %v %v", block.Node, ok, err)
	}

	inline, ok, err := ClosestInline(doc, path.New(0, 1, 0))
	if err != nil || !ok || inline.Node.Key() != "l1" {
		t.Errorf("expected closest inline l1, got %v %v %v", inline.Node, ok, err)
	}

	if _, ok, _ := ClosestInline(doc, path.New(0, 0)); ok {
		t.Error("t1 has no inline ancestor")
	}
	if _, _, err := ClosestBlock(doc, path.New(9)); !errors.Is(err, ErrNodeNotFound) {
		t.Errorf("expected ErrNodeNotFound, got %v", err)
	}
}

func TestFurthestVoid(t *testing.T) {
	inner := NewElement("iv", "emoji", NewText("x", "")).WithVoid(true).WithInline(true)
	doc := NewDocument("d",
		NewElement("outer", "embed", NewElement("b", "figure", inner)).WithVoid(true),
	)

	e, ok, err := FurthestVoid(doc, path.New(0, 0, 0, 0))
	if err != nil || !ok {
		t.Fatalf("expected a void ancestor, got %v %v", ok, err)
	}
	if e.Node.Key() != "outer" {
		t.Errorf("expected outermost void, got %s", e.Node.Key())
	}

	e, ok, _ = FurthestVoid(doc, path.New(0))
	if !ok || e.Node.Key() != "outer" {
		t.Error("a void element is its own furthest void")
	}

	if IsInVoid(testDoc(), path.New(0, 0)) {
		t.Error("t1 is not inside a void")
	}
}

func TestTextOfSkipsVoids(t *testing.T) {
	doc := NewDocument("d",
		NewElement("p", "paragraph",
			NewText("a", "ab"),
			NewElement("v", "mention", NewText("hidden", "xyz")).WithVoid(true).WithInline(true),
			NewText("b", "cd"),
		),
	)

	if got := TextOf(doc); got != "abcd" {
		t.Errorf("expected abcd, got %q", got)
	}
	if got := Length(doc); got != 4 {
		t.Errorf("expected length 4, got %d", got)
	}

	off, err := Offset(doc.children[0], path.New(2))
	if err != nil || off != 2 {
		t.Errorf("expected offset 2, got %d (%v)", off, err)
	}
	off, err = Offset(doc, path.New(0, 1, 0))
	if err != nil || off != 2 {
		t.Errorf("expected offset 2 inside void, got %d (%v)", off, err)
	}
}

func TestOffsetCountsRunes(t *testing.T) {
	p := NewElement("p", "paragraph", NewText("a", "héllo"), NewText("b", "!"))

	off, err := Offset(p, path.New(1))
	if err != nil || off != 5 {
		t.Errorf("expected 5, got %d (%v)", off, err)
	}
}

func TestTextsIterator(t *testing.T) {
	doc := testDoc()

	if diff := cmp.Diff([]string{"t1", "t2", "t3", "t4", "t5"}, collect(Texts(doc, IterOptions{}))); diff != "" {
		t.Errorf("forward texts (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"t5", "t4", "t3", "t2", "t1"}, collect(Texts(doc, IterOptions{Reverse: true}))); diff != "" {
		t.Errorf("reverse texts (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"p1", "l1", "v1", "p2"}, collect(Elements(doc, IterOptions{}))); diff != "" {
		t.Errorf("elements (-want +got):\n%s", diff)
	}
}

func TestIteratorScoped(t *testing.T) {
	doc := testDoc()

	got := collect(Texts(doc, IterOptions{From: path.New(0, 1), To: path.New(1)}))
	if diff := cmp.Diff([]string{"t2", "t3", "t4"}, got); diff != "" {
		t.Errorf("scoped forward (-want +got):\n%s", diff)
	}

	got = collect(Texts(doc, IterOptions{From: path.New(0, 1), To: path.New(1), Reverse: true}))
	if diff := cmp.Diff([]string{"t4", "t3", "t2"}, got); diff != "" {
		t.Errorf("scoped reverse (-want +got):\n%s", diff)
	}

	// Ancestors of From are part of the range.
	got = collect(Elements(doc, IterOptions{From: path.New(0, 1, 0), To: path.New(0, 2)}))
	if diff := cmp.Diff([]string{"p1", "l1"}, got); diff != "" {
		t.Errorf("scoped elements (-want +got):\n%s", diff)
	}
}

func TestIteratorEarlyStopAndReset(t *testing.T) {
	it := Texts(testDoc(), IterOptions{})
	if !it.Next() || it.Entry().Node.Key() != "t1" {
		t.Fatal("expected t1 first")
	}
	if !it.Next() || it.Entry().Node.Key() != "t2" {
		t.Fatal("expected t2 second")
	}

	it.Reset()
	if diff := cmp.Diff([]string{"t1", "t2", "t3", "t4", "t5"}, collect(it)); diff != "" {
		t.Errorf("after reset (-want +got):\n%s", diff)
	}
	if it.Next() {
		t.Error("exhausted iterator should stay exhausted")
	}
}

func TestNextPreviousText(t *testing.T) {
	doc := testDoc()

	next, ok, err := NextText(doc, path.New(0, 1, 0))
	if err != nil || !ok || next.Node.Key() != "t3" {
		t.Errorf("expected next t3, got %v %v %v", next.Node, ok, err)
	}

	next, ok, _ = NextText(doc, path.New(0))
	if !ok || next.Node.Key() != "t4" {
		t.Errorf("next text after a block should skip its subtree, got %v", next.Node)
	}

	prev, ok, err := PreviousText(doc, path.New(2, 0))
	if err != nil || !ok || prev.Node.Key() != "t4" {
		t.Errorf("expected previous t4, got %v %v %v", prev.Node, ok, err)
	}

	if _, ok, _ := PreviousText(doc, path.New(0, 0)); ok {
		t.Error("t1 has no previous text")
	}
	if _, ok, _ := NextText(doc, path.New(2, 0)); ok {
		t.Error("t5 has no next text")
	}
}

func TestFirstLastText(t *testing.T) {
	doc := testDoc()

	first, ok := FirstText(doc.children[0])
	if !ok || first.Node.Key() != "t1" {
		t.Errorf("expected t1, got %v", first.Node)
	}
	last, ok := LastText(doc.children[0])
	if !ok || last.Node.Key() != "t3" {
		t.Errorf("expected t3, got %v", last.Node)
	}
	self, ok := FirstText(NewText("x", "abc"))
	if !ok || len(self.Path) != 0 {
		t.Error("a text is its own first text")
	}
}

func TestEditsShareStructure(t *testing.T) {
	doc := testDoc()

	doc2, err := doc.UpdateNode(path.New(2, 0), func(n Node) (Node, error) {
		return n.(*Text).InsertText(3, "!"), nil
	})
	if err != nil {
		t.Fatal(err)
	}

	if TextOf(doc.children[2]) != "Bye" {
		t.Error("original document must not change")
	}
	if TextOf(doc2.children[2]) != "Bye!" {
		t.Errorf("expected Bye!, got %q", TextOf(doc2.children[2]))
	}
	if doc2.children[0] != doc.children[0] {
		t.Error("untouched subtrees should be shared")
	}
}

func TestInsertRemoveNode(t *testing.T) {
	doc := testDoc()

	doc2, err := doc.InsertNode(path.New(3), NewElement("p3", "paragraph", NewText("t6", "end")))
	if err != nil {
		t.Fatal(err)
	}
	want := `doc[paragraph["Hello " link!inline["world"] ""] image!void[""] paragraph["Bye"] paragraph["end"]]`
	if diff := cmp.Diff(want, Dump(doc2)); diff != "" {
		t.Errorf("insert (-want +got):\n%s", diff)
	}

	if _, err := doc.InsertNode(path.New(9), NewText("x", "")); !errors.Is(err, ErrNodeNotFound) {
		t.Errorf("expected ErrNodeNotFound, got %v", err)
	}

	doc3, removed, err := doc2.RemoveNode(path.New(1))
	if err != nil {
		t.Fatal(err)
	}
	if removed.Key() != "v1" {
		t.Errorf("expected v1 removed, got %s", removed.Key())
	}
	if doc3.HasKey("t4") {
		t.Error("removed subtree keys should be gone")
	}
}

func TestTextEdits(t *testing.T) {
	txt := NewText("a", "héllo", NewMark("bold"))

	if got := txt.InsertText(2, "XY").Text(); got != "héXYllo" {
		t.Errorf("InsertText = %q", got)
	}
	if got := txt.RemoveText(1, 2).Text(); got != "hlo" {
		t.Errorf("RemoveText = %q", got)
	}

	left, right := txt.SplitText(2, "b")
	if left.Text() != "hé" || right.Text() != "llo" {
		t.Errorf("SplitText = %q, %q", left.Text(), right.Text())
	}
	if left.Key() != "a" || right.Key() != "b" || !right.Marks().Has("bold") {
		t.Error("split halves should keep keys and marks")
	}
	if got := SliceRunes("héllo", 1, 3); got != "él" {
		t.Errorf("SliceRunes = %q", got)
	}
}

func TestMarkSet(t *testing.T) {
	ab := NewMarkSet(NewMark("b"), NewMark("a"))
	bc := NewMarkSet(NewMark("c"), NewMark("b"))

	if diff := cmp.Diff([]string{"a", "b"}, ab.Keys()); diff != "" {
		t.Errorf("keys should be sorted (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"b"}, ab.Intersect(bc).Keys()); diff != "" {
		t.Errorf("intersect (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"a", "b", "c"}, ab.Union(bc).Keys()); diff != "" {
		t.Errorf("union (-want +got):\n%s", diff)
	}

	dup := NewMarkSet(NewMark("a"), NewMark("a"))
	if dup.Len() != 1 {
		t.Errorf("marks should be deduplicated by key, got %d", dup.Len())
	}

	colored, ok := ab.Set("a", Data{"color": "red"})
	if !ok {
		t.Fatal("Set on existing mark should succeed")
	}
	m, _ := colored.Get("a")
	if m.Properties["color"] != "red" {
		t.Error("properties should merge onto the mark")
	}
	if ab.Equal(colored) {
		t.Error("changed properties should make sets unequal")
	}
	if colored.Intersect(ab).Has("a") {
		t.Error("marks with different properties do not intersect")
	}
	if _, ok := ab.Set("z", nil); ok {
		t.Error("Set on missing mark should report false")
	}
}

func TestApplyProperties(t *testing.T) {
	e := NewElement("p", "paragraph", NewText("t", "x")).WithData(Data{"align": "left"})
	props := Properties{Type: String("heading"), Data: Data{"align": "center", "level": 2}}

	old := CaptureProperties(e, props)
	n, err := ApplyProperties(e, props)
	if err != nil {
		t.Fatal(err)
	}
	h := n.(*Element)
	if h.Type() != "heading" || h.Data()["align"] != "center" || h.Data()["level"] != 2 {
		t.Errorf("unexpected element %s %v", h.Type(), h.Data())
	}

	back, err := ApplyProperties(h, old)
	if err != nil {
		t.Fatal(err)
	}
	if !Equal(back, e) {
		t.Errorf("captured properties should restore the element, got %s %v", back.(*Element).Type(), back.(*Element).Data())
	}

	if _, err := ApplyProperties(NewText("t", "x"), props); !errors.Is(err, ErrInvalidProperties) {
		t.Errorf("expected ErrInvalidProperties, got %v", err)
	}
}

func TestSequenceKeys(t *testing.T) {
	g := NewSequenceKeys("k", 0)
	if g.NewKey() != "k0" || g.NewKey() != "k1" {
		t.Error("sequence keys should count up")
	}
	var u UUIDKeys
	if u.NewKey() == u.NewKey() {
		t.Error("uuid keys should be unique")
	}
}

func TestDiff(t *testing.T) {
	a := NewElement("a", "paragraph").WithData(Data{"align": "left", "x": 1})
	b := NewElement("b", "heading").WithVoid(true).WithData(Data{"align": "left", "level": 2})

	p := Diff(a, b)
	n, err := ApplyProperties(a, p)
	if err != nil {
		t.Fatal(err)
	}
	got := n.(*Element)
	if got.Type() != "heading" || !got.IsVoid() {
		t.Errorf("diff should carry type and void, got %s void=%v", got.Type(), got.IsVoid())
	}
	if !got.Data().Equal(b.Data()) {
		t.Errorf("diff should carry data, got %v", got.Data())
	}

	ta := NewText("a", "x")
	tb := NewText("b", "y").WithMarks(NewMarkSet(NewMark("bold")))
	tn, err := ApplyProperties(ta, Diff(ta, tb))
	if err != nil {
		t.Fatal(err)
	}
	if !tn.(*Text).Marks().Equal(tb.Marks()) {
		t.Errorf("diff should carry marks, got %s", tn.(*Text).Marks())
	}
	if !Diff(ta, ta).IsEmpty() {
		t.Error("diff of a node with itself should be empty")
	}
}

func TestChildEdits(t *testing.T) {
	p := testDoc().children[0].(*Element)

	replaced, err := ReplaceChild(p, 0, NewText("t9", "Hi "))
	if err != nil {
		t.Fatal(err)
	}
	inserted, err := InsertChild(replaced, 3, NewText("t8", "!"))
	if err != nil {
		t.Fatal(err)
	}
	removed, err := RemoveChild(inserted, 1)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(`paragraph["Hi " "" "!"]`, Dump(removed.(*Element))); diff != "" {
		t.Errorf("child edits (-want +got):\n%s", diff)
	}
	if Dump(p) != `paragraph["Hello " link!inline["world"] ""]` {
		t.Errorf("original should be unchanged, got %s", Dump(p))
	}

	for _, err := range []error{
		func() error { _, err := ReplaceChild(p, 3, NewText("x", "")); return err }(),
		func() error { _, err := InsertChild(p, 4, NewText("x", "")); return err }(),
		func() error { _, err := RemoveChild(p, -1); return err }(),
	} {
		if !errors.Is(err, ErrNodeNotFound) {
			t.Errorf("expected ErrNodeNotFound, got %v", err)
		}
	}
}

func TestHasDescendant(t *testing.T) {
	doc := testDoc()
	if !HasDescendant(doc, "t2") || !HasDescendant(doc, "v1") {
		t.Error("expected t2 and v1 below the document")
	}
	if HasDescendant(doc, "d") {
		t.Error("a node is not its own descendant")
	}
	p := doc.children[0]
	if !HasDescendant(p, "t2") || HasDescendant(p, "t5") || HasDescendant(p, "p1") {
		t.Error("element descendants mismatch")
	}
}
