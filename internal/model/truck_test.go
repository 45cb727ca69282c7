package model

import (
	"reflect"
	"testing"
)

func sections(side string, widths ...float64) []LayoutSection {
	out := make([]LayoutSection, 0, len(widths))
	for i, w := range widths {
		out = append(out, LayoutSection{Side: side, Position: i + 1, WidthM: w})
	}
	return out
}

func TestNewSideLayoutTag(t *testing.T) {
	cases := []struct {
		left, right []LayoutSection
		want        LayoutSide
	}{
		{nil, nil, SideNone},
		{sections("LEFT", 1.0), nil, SideLeft},
		{nil, sections("RIGHT", 1.0), SideRight},
		{sections("LEFT", 1.0), sections("RIGHT", 2.0), SideBoth},
	}
	for _, c := range cases {
		if got := NewSideLayout(c.left, c.right).Side; got != c.want {
			t.Fatalf("tag for left=%d right=%d sections = %v, want %v",
				len(c.left), len(c.right), got, c.want)
		}
	}
}

func TestSideLayoutLeftPrecedence(t *testing.T) {
	l := NewSideLayout(sections("LEFT", 1.5, 2.0), sections("RIGHT", 9.0))
	if got := l.SectionWidths(); !reflect.DeepEqual(got, []float64{1.5, 2.0}) {
		t.Fatalf("widths = %v, want left side [1.5 2.0]", got)
	}
}

func TestSideLayoutRightOnly(t *testing.T) {
	l := NewSideLayout(nil, sections("RIGHT", 3.0, 1.0))
	if got := l.SectionWidths(); !reflect.DeepEqual(got, []float64{3.0, 1.0}) {
		t.Fatalf("widths = %v, want right side [3.0 1.0]", got)
	}
}

func TestSideLayoutEmpty(t *testing.T) {
	l := NewSideLayout(nil, nil)
	if l.ActiveSections() != nil {
		t.Fatalf("empty layout has active sections")
	}
	if l.SectionWidths() != nil {
		t.Fatalf("empty layout has widths")
	}
}
