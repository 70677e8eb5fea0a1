package treegraph

import (
	"context"
	"strings"
	"testing"

	"github.com/matzehuels/anchorui/pkg/surface/dom"
	"github.com/matzehuels/anchorui/pkg/ui"
)

func newTree() *ui.Root {
	doc := dom.NewDocument(400, 300, dom.WithMeasurer(dom.FixedMeasurer{CharWidth: 8, LineHeight: 16}))
	root := ui.NewRoot(doc, ui.WithLabel("hud"), ui.WithIDAllocator(ui.NewIDAllocator()))
	panel := root.AddRect("panel")
	panel.SetAnchors(0, 1, 0, 0.5)
	title := panel.AddText("title")
	title.SetText("Score")
	ghost := root.AddRect("ghost")
	ghost.Hide()
	return root
}

func TestToDOT_Basic(t *testing.T) {
	dot := ToDOT(newTree().Node, Options{})

	wants := []string{
		"digraph G",
		`"GUID0" [label="hud (0)"`,
		`"GUID1" [label="panel (1)"`,
		`"GUID0" -> "GUID1";`,
		`"GUID1" -> "GUID2";`,
		`"GUID0" -> "GUID4";`,
		"peripheries=2",
		"shape=note",
	}
	for _, want := range wants {
		if !strings.Contains(dot, want) {
			t.Errorf("ToDOT() output missing %s\n%s", want, dot)
		}
	}
	if strings.Contains(dot, "GUID3") {
		t.Error("content surface ids leaked into the tree diagram")
	}
}

func TestToDOT_Detailed(t *testing.T) {
	dot := ToDOT(newTree().Node, Options{Detailed: true})

	for _, want := range []string{"box: 400x150@(0,0)", "anchors: 0 1 0 0.5", `text: \"Score\"`} {
		if !strings.Contains(dot, want) {
			t.Errorf("ToDOT() detailed output missing %s", want)
		}
	}
}

func TestToDOT_HiddenAndDebug(t *testing.T) {
	root := newTree()
	root.SetDebug(true)
	dot := ToDOT(root.Node, Options{})

	if !strings.Contains(dot, "dashed") {
		t.Error("hidden node not dashed")
	}
	if want := `fillcolor="` + ui.DebugColor(1).Hex() + `"`; !strings.Contains(dot, want) {
		t.Errorf("debug node missing %s", want)
	}
}

func TestRenderSVG(t *testing.T) {
	svg, err := RenderSVG(context.Background(), ToDOT(newTree().Node, Options{}))
	if err != nil {
		t.Fatalf("RenderSVG() error = %v", err)
	}
	s := string(svg)
	if !strings.HasPrefix(strings.TrimSpace(s), "<") || !strings.Contains(s, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 `) {
		t.Errorf("unexpected SVG header:\n%.300s", s)
	}
	if !strings.Contains(s, "panel (1)") {
		t.Error("SVG missing node label")
	}
}

func TestRenderSVG_InvalidDOT(t *testing.T) {
	if _, err := RenderSVG(context.Background(), "digraph {"); err == nil {
		t.Error("RenderSVG() accepted invalid DOT")
	}
}
