package position

import (
	"errors"
	"fmt"
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/dshills/richtext/internal/engine/node"
	"github.com/dshills/richtext/internal/engine/selection"
)

func labels(points []selection.Point) []string {
	out := make([]string, len(points))
	for i, p := range points {
		out[i] = fmt.Sprintf("%s@%d", p.Key, p.Offset)
	}
	return out
}

func collect(t *testing.T, doc *node.Document, opts Options) []string {
	t.Helper()
	points, err := Collect(doc, opts)
	if err != nil {
		t.Fatal(err)
	}
	for _, p := range points {
		if p.Path == nil {
			t.Errorf("%s has no resolved path", p)
		}
	}
	return labels(points)
}

func paragraph(key string, children ...node.Node) *node.Element {
	return node.NewElement(key, "paragraph", children...)
}

func TestVoidBetweenBlocks(t *testing.T) {
	doc := node.NewDocument("d",
		paragraph("p1", node.NewText("a", "a")),
		node.NewElement("img", "image", node.NewText("v", "")).WithVoid(true),
		paragraph("p2", node.NewText("b", "b")),
	)

	got := collect(t, doc, Options{Point: selection.NewPoint("a", 0), Unit: Character})
	if diff := cmp.Diff([]string{"a@1", "v@0", "b@1"}, got); diff != "" {
		t.Errorf("forward (-want +got):\n%s", diff)
	}

	got = collect(t, doc, Options{Point: selection.NewPoint("b", 1), Unit: Character, Reverse: true})
	if diff := cmp.Diff([]string{"v@0", "a@1", "a@0"}, got); diff != "" {
		t.Errorf("backward (-want +got):\n%s", diff)
	}
}

func TestEmptyBlockAfterVoid(t *testing.T) {
	doc := node.NewDocument("d",
		paragraph("p1", node.NewText("a", "a")),
		node.NewElement("img", "image", node.NewText("v", "")).WithVoid(true),
		paragraph("p2", node.NewText("e", "")),
		paragraph("p3", node.NewText("b", "b")),
	)

	got := collect(t, doc, Options{Point: selection.NewPoint("a", 0), Unit: Character})
	if diff := cmp.Diff([]string{"a@1", "v@0", "b@0", "b@1"}, got); diff != "" {
		t.Errorf("forward (-want +got):\n%s", diff)
	}
}

func TestInlineVoid(t *testing.T) {
	doc := node.NewDocument("d",
		paragraph("p",
			node.NewText("a", "a"),
			node.NewElement("e", "emoji", node.NewText("v", "xyz")).WithInline(true).WithVoid(true),
			node.NewText("b", "b"),
		),
	)
	for _, unit := range []Unit{Offset, Character, Word} {
		t.Run(unit.String(), func(t *testing.T) {
			got := collect(t, doc, Options{Unit: unit})
			if diff := cmp.Diff([]string{"a@1", "v@0", "b@1"}, got); diff != "" {
				t.Errorf("forward (-want +got):\n%s", diff)
			}
			got = collect(t, doc, Options{Unit: unit, Reverse: true})
			if diff := cmp.Diff([]string{"v@0", "a@1", "a@0"}, got); diff != "" {
				t.Errorf("backward (-want +got):\n%s", diff)
			}
		})
	}
}

func TestVoidIsAtomic(t *testing.T) {
	doc := node.NewDocument("d",
		paragraph("p1", node.NewText("a", "a")),
		node.NewElement("fig", "figure",
			paragraph("c1", node.NewText("x", "a long caption")),
			paragraph("c2", node.NewText("y", "more")),
		).WithVoid(true),
		paragraph("p2", node.NewText("b", "")),
	)
	// The empty block right after the void shares the void's position.
	got := collect(t, doc, Options{Unit: Offset})
	if diff := cmp.Diff([]string{"a@1", "x@0"}, got); diff != "" {
		t.Errorf("forward (-want +got):\n%s", diff)
	}

	// Starting inside the void behaves like starting at its position.
	got = collect(t, doc, Options{Point: selection.NewPoint("y", 2), Unit: Offset, Reverse: true})
	if diff := cmp.Diff([]string{"a@1", "a@0"}, got); diff != "" {
		t.Errorf("backward from inside (-want +got):\n%s", diff)
	}
}

// exhaustiveDoc builds:
//
//	doc[paragraph["ab" link!inline["cd"] ""] image!void[""] paragraph["é"] paragraph[""]]
func exhaustiveDoc() *node.Document {
	return node.NewDocument("d",
		paragraph("p1",
			node.NewText("t1", "ab"),
			node.NewElement("l", "link", node.NewText("t2", "cd")).WithInline(true),
			node.NewText("t3", ""),
		),
		node.NewElement("img", "image", node.NewText("v", "")).WithVoid(true),
		paragraph("p2", node.NewText("t5", "é")),
		paragraph("p3", node.NewText("t6", "")),
	)
}

func TestOffsetIsExhaustiveAndReversible(t *testing.T) {
	doc := exhaustiveDoc()

	forward := collect(t, doc, Options{Unit: Offset})
	want := []string{"t1@1", "t1@2", "t2@1", "t2@2", "v@0", "t5@1", "t6@0"}
	if diff := cmp.Diff(want, forward); diff != "" {
		t.Fatalf("forward (-want +got):\n%s", diff)
	}

	backward := collect(t, doc, Options{Unit: Offset, Reverse: true})
	full := append([]string{"t1@0"}, forward...)
	slices.Reverse(full)
	if diff := cmp.Diff(full[1:], backward); diff != "" {
		t.Errorf("backward should mirror forward (-want +got):\n%s", diff)
	}
}

func TestOffsetIsMonotonic(t *testing.T) {
	doc := exhaustiveDoc()
	points, err := Collect(doc, Options{Unit: Offset})
	if err != nil {
		t.Fatal(err)
	}
	for i := 1; i < len(points); i++ {
		c, err := selection.Compare(doc, points[i-1], points[i])
		if err != nil {
			t.Fatal(err)
		}
		if c >= 0 {
			t.Errorf("%s should come before %s", points[i-1], points[i])
		}
	}
}

func TestBlockBoundaryBetweenTexts(t *testing.T) {
	doc := node.NewDocument("d", paragraph("p",
		node.NewText("a", "ab"),
		node.NewText("e", ""),
		node.NewText("b", "cd"),
	))
	got := collect(t, doc, Options{Unit: Offset})
	if diff := cmp.Diff([]string{"a@1", "a@2", "b@1", "b@2"}, got); diff != "" {
		t.Errorf("forward (-want +got):\n%s", diff)
	}
	got = collect(t, doc, Options{Point: selection.NewPoint("b", 0), Unit: Offset, Reverse: true})
	if diff := cmp.Diff([]string{"a@1", "a@0"}, got); diff != "" {
		t.Errorf("backward from a boundary (-want +got):\n%s", diff)
	}
}

func TestCharacterUsesGraphemeClusters(t *testing.T) {
	// e + combining acute, x, thumbs up + skin tone modifier
	doc := node.NewDocument("d", paragraph("p", node.NewText("t", "e\u0301x\U0001F44D\U0001F3FD")))

	got := collect(t, doc, Options{Unit: Character})
	if diff := cmp.Diff([]string{"t@2", "t@3", "t@5"}, got); diff != "" {
		t.Errorf("forward (-want +got):\n%s", diff)
	}
	got = collect(t, doc, Options{Unit: Character, Reverse: true})
	if diff := cmp.Diff([]string{"t@3", "t@2", "t@0"}, got); diff != "" {
		t.Errorf("backward (-want +got):\n%s", diff)
	}
}

func TestWord(t *testing.T) {
	doc := node.NewDocument("d", paragraph("p", node.NewText("t", "hello, world  foo")))

	got := collect(t, doc, Options{Unit: Word})
	if diff := cmp.Diff([]string{"t@5", "t@14", "t@17"}, got); diff != "" {
		t.Errorf("forward (-want +got):\n%s", diff)
	}
	got = collect(t, doc, Options{Unit: Word, Reverse: true})
	if diff := cmp.Diff([]string{"t@14", "t@7", "t@0"}, got); diff != "" {
		t.Errorf("backward (-want +got):\n%s", diff)
	}
}

func TestWordAcrossTexts(t *testing.T) {
	doc := node.NewDocument("d", paragraph("p",
		node.NewText("a", "hel"),
		node.NewText("b", "lo world"),
	))
	got := collect(t, doc, Options{Unit: Word})
	if diff := cmp.Diff([]string{"b@3", "b@8"}, got); diff != "" {
		t.Errorf("forward (-want +got):\n%s", diff)
	}
}

func TestLine(t *testing.T) {
	doc := node.NewDocument("d",
		paragraph("p1", node.NewText("a", "one "), node.NewText("b", "two")),
		paragraph("p2", node.NewText("c", "three")),
	)
	got := collect(t, doc, Options{Point: selection.NewPoint("a", 1), Unit: Line})
	if diff := cmp.Diff([]string{"b@3", "c@0", "c@5"}, got); diff != "" {
		t.Errorf("forward (-want +got):\n%s", diff)
	}
	got = collect(t, doc, Options{Unit: Line, Reverse: true})
	if diff := cmp.Diff([]string{"c@0", "b@3", "a@0"}, got); diff != "" {
		t.Errorf("backward (-want +got):\n%s", diff)
	}
}

func TestReset(t *testing.T) {
	doc := exhaustiveDoc()
	it := New(doc, Options{Point: selection.NewPoint("t1", 1), Unit: Offset})
	var first, second []selection.Point
	for i := 0; i < 3 && it.Next(); i++ {
		first = append(first, it.Point())
	}
	it.Reset()
	for i := 0; i < 3 && it.Next(); i++ {
		second = append(second, it.Point())
	}
	if diff := cmp.Diff(labels(first), labels(second)); diff != "" {
		t.Errorf("reset should replay (-first +second):\n%s", diff)
	}
}

func TestStaleStart(t *testing.T) {
	it := New(exhaustiveDoc(), Options{Point: selection.NewPoint("gone", 0)})
	if it.Next() {
		t.Error("iterator over a stale point should yield nothing")
	}
	if !errors.Is(it.Err(), selection.ErrStalePoint) {
		t.Errorf("expected ErrStalePoint, got %v", it.Err())
	}
}

func TestEmptyDocument(t *testing.T) {
	got := collect(t, node.NewDocument("d"), Options{})
	if len(got) != 0 {
		t.Errorf("expected no positions, got %v", got)
	}
}

func TestParseUnit(t *testing.T) {
	tests := []struct {
		in   string
		want Unit
		ok   bool
	}{
		{"offset", Offset, true},
		{"Character", Character, true},
		{"word", Word, true},
		{"LINE", Line, true},
		{"page", 0, false},
	}
	for _, tt := range tests {
		got, err := ParseUnit(tt.in)
		if (err == nil) != tt.ok || got != tt.want {
			t.Errorf("ParseUnit(%q) = %v, %v", tt.in, got, err)
		}
	}
}
