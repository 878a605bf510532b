package wfc

import (
	"errors"
	"testing"
)

func TestCollapsePicksFromDomain(t *testing.T) {
	g, _ := NewGrid(2, 2)
	g.at(Point{1, 0}).Domain = NewTileSet(Left, Down)

	tile, err := Collapse(g, Point{1, 0}, &fixedRand{vals: []int{1}})
	if err != nil {
		t.Fatal(err)
	}
	if tile != Down {
		t.Errorf("collapsed to %s, want down", tile)
	}
	c, _ := g.Cell(1, 0)
	if !c.Collapsed || c.Domain != NewTileSet(Down) || c.Entropy != 1.0 {
		t.Errorf("unexpected collapsed cell %+v", c)
	}
}

func TestCollapseAlreadyCollapsedIsRejected(t *testing.T) {
	g, _ := NewGrid(2, 2)
	if _, err := Collapse(g, Point{0, 0}, &fixedRand{vals: []int{3}}); err != nil {
		t.Fatal(err)
	}
	before, _ := g.Cell(0, 0)

	_, err := Collapse(g, Point{0, 0}, &fixedRand{vals: []int{0}})
	if !errors.Is(err, ErrAlreadyCollapsed) {
		t.Fatalf("expected ErrAlreadyCollapsed, got %v", err)
	}
	after, _ := g.Cell(0, 0)
	if before != after {
		t.Errorf("cell changed by rejected collapse: %+v -> %+v", before, after)
	}
}

func TestCollapseEmptyDomain(t *testing.T) {
	g, _ := NewGrid(1, 1)
	g.at(Point{0, 0}).Domain = 0
	if _, err := Collapse(g, Point{0, 0}, &fixedRand{}); !errors.Is(err, ErrContradiction) {
		t.Fatalf("expected ErrContradiction, got %v", err)
	}
}

func TestCollapseOutOfBounds(t *testing.T) {
	g, _ := NewGrid(1, 1)
	if _, err := Collapse(g, Point{1, 0}, &fixedRand{}); !errors.Is(err, ErrOutOfBounds) {
		t.Fatalf("expected ErrOutOfBounds, got %v", err)
	}
}
