// Package uidriver adapts go-rod pages and elements to the capabilities the
// UI assertion engine consumes.
//
// Element wraps a located rod element and answers the state queries
// (visibility, text, attributes, computed style, focus, geometry); Locator
// counts selector matches; Screenshotter implements the failure-artifact
// hook used by the screenshot assertion option.
package uidriver
