package uiassert

// Rect is an axis-aligned bounding rectangle in page coordinates.
type Rect struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// Contains reports whether other lies fully inside r.
func (r Rect) Contains(other Rect) bool {
	return other.X >= r.X && other.Y >= r.Y &&
		other.X+other.Width <= r.X+r.Width &&
		other.Y+other.Height <= r.Y+r.Height
}

// Element is the observable-state surface of a located UI element. The
// engine only queries it; locating, caching and invalidating handles is the
// driver's business.
type Element interface {
	Visible() (bool, error)
	Enabled() (bool, error)
	Checked() (bool, error)
	Focused() (bool, error)
	Text() (string, error)
	// Attribute reports the attribute value and whether it is present.
	Attribute(name string) (value string, ok bool, err error)
	// Style reports a computed style property value.
	Style(property string) (string, error)
	// Box reports the element's bounding rectangle.
	Box() (Rect, error)
	// Viewport reports the bounding rectangle of the viewport owning the
	// element, for viewport-membership checks.
	Viewport() (Rect, error)
}

// Locator resolves to however many elements currently match a selector.
// Count assertions operate over the whole match set.
type Locator interface {
	Count() (int, error)
}
