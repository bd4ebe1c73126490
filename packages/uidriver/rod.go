package uidriver

import (
	"github.com/go-rod/rod"

	"github.com/verityhq/verity/packages/uiassert"
)

// Element adapts a located rod element to uiassert.Element.
type Element struct {
	page *rod.Page
	el   *rod.Element
}

var _ uiassert.Element = (*Element)(nil)

// NewElement wraps an already-located rod element.
func NewElement(page *rod.Page, el *rod.Element) *Element {
	return &Element{page: page, el: el}
}

// Locate finds the first match for selector and wraps it.
func Locate(page *rod.Page, selector string) (*Element, error) {
	el, err := page.Element(selector)
	if err != nil {
		return nil, err
	}
	return NewElement(page, el), nil
}

func (e *Element) Visible() (bool, error) {
	return e.el.Visible()
}

func (e *Element) Enabled() (bool, error) {
	result, err := e.el.Eval(`() => !this.disabled`)
	if err != nil {
		return false, err
	}
	return result.Value.Bool(), nil
}

func (e *Element) Checked() (bool, error) {
	result, err := e.el.Eval(`() => !!this.checked`)
	if err != nil {
		return false, err
	}
	return result.Value.Bool(), nil
}

func (e *Element) Focused() (bool, error) {
	result, err := e.el.Eval(`() => document.activeElement === this`)
	if err != nil {
		return false, err
	}
	return result.Value.Bool(), nil
}

func (e *Element) Text() (string, error) {
	return e.el.Text()
}

func (e *Element) Attribute(name string) (string, bool, error) {
	value, err := e.el.Attribute(name)
	if err != nil {
		return "", false, err
	}
	if value == nil {
		return "", false, nil
	}
	return *value, true, nil
}

func (e *Element) Style(property string) (string, error) {
	result, err := e.el.Eval(`(prop) => window.getComputedStyle(this)[prop]`, property)
	if err != nil {
		return "", err
	}
	return result.Value.Str(), nil
}

// Box reports the bounding client rect in viewport coordinates.
func (e *Element) Box() (uiassert.Rect, error) {
	result, err := e.el.Eval(`() => {
		const r = this.getBoundingClientRect();
		return {x: r.x, y: r.y, width: r.width, height: r.height};
	}`)
	if err != nil {
		return uiassert.Rect{}, err
	}
	m := result.Value.Map()
	return uiassert.Rect{
		X:      m["x"].Num(),
		Y:      m["y"].Num(),
		Width:  m["width"].Num(),
		Height: m["height"].Num(),
	}, nil
}

// Viewport reports the page viewport rect. Box coordinates are
// viewport-relative, so the origin is always zero.
func (e *Element) Viewport() (uiassert.Rect, error) {
	result, err := e.page.Eval(`() => ({width: window.innerWidth, height: window.innerHeight})`)
	if err != nil {
		return uiassert.Rect{}, err
	}
	m := result.Value.Map()
	return uiassert.Rect{
		Width:  m["width"].Num(),
		Height: m["height"].Num(),
	}, nil
}

// Locator adapts a rod page and selector to uiassert.Locator.
type Locator struct {
	page     *rod.Page
	selector string
}

var _ uiassert.Locator = (*Locator)(nil)

// NewLocator creates a locator for a CSS selector.
func NewLocator(page *rod.Page, selector string) *Locator {
	return &Locator{page: page, selector: selector}
}

func (l *Locator) Count() (int, error) {
	els, err := l.page.Elements(l.selector)
	if err != nil {
		return 0, err
	}
	return len(els), nil
}
