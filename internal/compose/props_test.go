package compose

import (
	"testing"

	"mdpress/internal/event"
)

type badgeProps struct {
	Label    string `md:"label"`
	Count    int    `md:"count"`
	Ratio    float64
	Active   bool
	Children Children
}

func TestComponentPropDecoding(t *testing.T) {
	var got badgeProps
	reg := NewRegistry().With("badge", Component(func(p *badgeProps) View {
		got = *p
		return HTML("")
	}))

	_, err := Compose([]event.Event{
		event.Start("badge"),
		event.Attr("label", "new"),
		event.Attr("count", "42"),
		event.Attr("ratio", "0.5"),
		event.Attr("active", "true"),
		event.End(),
	}, reg, HTMLBuilder{})
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}

	if got.Label != "new" {
		t.Errorf("Label = %q, want %q", got.Label, "new")
	}
	if got.Count != 42 {
		t.Errorf("Count = %d, want 42", got.Count)
	}
	if got.Ratio != 0.5 {
		t.Errorf("Ratio = %v, want 0.5", got.Ratio)
	}
	if !got.Active {
		t.Error("Active should be true")
	}
}

func TestComponentBareBoolAttr(t *testing.T) {
	var got badgeProps
	reg := NewRegistry().With("badge", Component(func(p *badgeProps) View {
		got = *p
		return HTML("")
	}))

	_, err := Compose([]event.Event{
		event.Start("badge"),
		event.Attr("active", ""),
		event.End(),
	}, reg, HTMLBuilder{})
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}
	if !got.Active {
		t.Error("bare boolean attribute should set the field to true")
	}
}

// TestComponentUnknownPropSkipped verifies per-attribute recovery: an
// unknown prop is dropped and the component still renders with the rest.
func TestComponentUnknownPropSkipped(t *testing.T) {
	var got badgeProps
	reg := NewRegistry().With("badge", Component(func(p *badgeProps) View {
		got = *p
		return HTML("ok")
	}))

	view, err := Compose([]event.Event{
		event.Start("badge"),
		event.Attr("label", "keep"),
		event.Attr("nonsense", "dropped"),
		event.End(),
	}, reg, HTMLBuilder{})
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}
	if string(view.(HTML)) != "ok" {
		t.Error("component should still render with its valid props")
	}
	if got.Label != "keep" {
		t.Errorf("Label = %q, want %q", got.Label, "keep")
	}
}

// TestComponentBadValueSkipped verifies that an unparsable value leaves
// the field at its zero value without failing the render.
func TestComponentBadValueSkipped(t *testing.T) {
	var got badgeProps
	reg := NewRegistry().With("badge", Component(func(p *badgeProps) View {
		got = *p
		return HTML("ok")
	}))

	view, err := Compose([]event.Event{
		event.Start("badge"),
		event.Attr("count", "not-a-number"),
		event.Attr("label", "still here"),
		event.End(),
	}, reg, HTMLBuilder{})
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}
	if string(view.(HTML)) != "ok" {
		t.Error("component should still render after a bad prop value")
	}
	if got.Count != 0 {
		t.Errorf("Count = %d, want zero after parse failure", got.Count)
	}
	if got.Label != "still here" {
		t.Errorf("Label = %q, want %q", got.Label, "still here")
	}
}

func TestComponentChildrenField(t *testing.T) {
	reg := NewRegistry().With("box", Component(func(p *badgeProps) View {
		inner, err := p.Children.Render()
		if err != nil {
			t.Fatalf("children render: %v", err)
		}
		return HTML("[" + string(inner.(HTML)) + "]")
	}))

	view, err := Compose([]event.Event{
		event.Start("box"),
		event.Start("em"), event.Text("kid"), event.End(),
		event.End(),
	}, reg, HTMLBuilder{})
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}
	if string(view.(HTML)) != "[<em>kid</em>]" {
		t.Errorf("got %q", view)
	}
}

func TestComponentZeroChildren(t *testing.T) {
	var c Children
	view, err := c.Render()
	if err != nil {
		t.Fatalf("zero children render: %v", err)
	}
	if view != nil {
		t.Errorf("zero children should render to nil, got %v", view)
	}
}
