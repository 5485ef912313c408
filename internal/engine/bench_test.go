package engine

import (
	"fmt"
	"strings"
	"testing"

	"github.com/dshills/richtext/internal/engine/node"
	"github.com/dshills/richtext/internal/engine/operation"
	"github.com/dshills/richtext/internal/engine/path"
	"github.com/dshills/richtext/internal/engine/position"
	"github.com/dshills/richtext/internal/engine/selection"
	"github.com/dshills/richtext/internal/logging"
)

// setupLargeEngine creates an engine with the given number of paragraphs.
func setupLargeEngine(b *testing.B, blocks int) *Engine {
	b.Helper()
	children := make([]node.Node, blocks)
	for i := range children {
		text := node.NewText(fmt.Sprintf("t%d", i), strings.Repeat("lorem ipsum ", 8))
		children[i] = node.NewElement(fmt.Sprintf("p%d", i), "paragraph", text)
	}
	return New(node.NewDocument("d", children...),
		WithLogger(logging.Null()),
		WithKeyGenerator(node.NewSequenceKeys("k", 0)),
		WithMaxChanges(1000))
}

func BenchmarkEngineApplyInsertText(b *testing.B) {
	e := setupLargeEngine(b, 1000)
	op := operation.InsertText{Path: path.New(500, 0), Offset: 0, Text: "x"}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = e.Apply(op)
	}
}

func BenchmarkEngineApplyBatch(b *testing.B) {
	e := setupLargeEngine(b, 1000)
	ops := []operation.Operation{
		operation.InsertText{Path: path.New(10, 0), Offset: 0, Text: "x"},
		operation.RemoveText{Path: path.New(10, 0), Offset: 0, Text: "x"},
		operation.AddMark{Path: path.New(20, 0), Mark: node.NewMark("bold")},
		operation.RemoveMark{Path: path.New(20, 0), Mark: node.NewMark("bold")},
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = e.Apply(ops...)
	}
}

func BenchmarkEngineText(b *testing.B) {
	e := setupLargeEngine(b, 1000)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = e.Text()
	}
}

func BenchmarkPositionsCharacter(b *testing.B) {
	e := setupLargeEngine(b, 100)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		it := e.Positions(position.Options{Unit: position.Character})
		for it.Next() {
		}
	}
}

func BenchmarkPositionsWord(b *testing.B) {
	e := setupLargeEngine(b, 100)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		it := e.Positions(position.Options{Unit: position.Word})
		for it.Next() {
		}
	}
}

func BenchmarkActiveMarks(b *testing.B) {
	e := setupLargeEngine(b, 100)
	r := selection.NewRange(selection.NewPoint("t0", 3), selection.NewPoint("t99", 3))
	_ = e.Select(r)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = e.ActiveMarks(true)
	}
}
