// Package sifen reads SIFEN electronic invoice XML (rDE documents) and
// extracts the canonical KUDE view-model from it.
//
// Only the rDE/DE wrapper is mandatory: its absence is a structural error.
// Every other group or field may be missing and degrades to an empty
// value, because real government-issued documents legitimately omit
// optional fields.
package sifen

import (
	"strings"

	"github.com/beevik/etree"

	"github.com/maxdominios/go-kude/internal/model"
)

// Document is a parsed SIFEN XML tree positioned at its DE entry.
type Document struct {
	de    *etree.Element
	qrURL string
}

// Parse reads XML bytes and locates the mandatory rDE/DE document entry.
// A malformed tree or a missing entry yields a structural error.
func Parse(data []byte) (*Document, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, model.NewStructuralError("rDE", "malformed XML", err)
	}

	root := doc.Root()
	if root == nil || root.Tag != "rDE" {
		return nil, model.NewStructuralError("rDE", "root element rDE not found", nil)
	}

	de := child(root, "DE")
	if de == nil {
		return nil, model.NewStructuralError("DE", "document entry DE not found", nil)
	}

	// The QR verification URL lives outside DE and is optional.
	qrURL := text(child(root, "gCamFuFD"), "dCarQR")

	return &Document{de: de, qrURL: qrURL}, nil
}

// ParseString reads XML from a string.
func ParseString(content string) (*Document, error) {
	return Parse([]byte(content))
}

// DE returns the document entry element.
func (d *Document) DE() *etree.Element {
	return d.de
}

// QRURL returns the verification URL, or the empty string when the
// document carries none.
func (d *Document) QRURL() string {
	return d.qrURL
}

// child returns the first matching child element, tolerating a nil parent
// and ignoring namespace prefixes.
func child(e *etree.Element, tag string) *etree.Element {
	if e == nil {
		return nil
	}
	for _, c := range e.ChildElements() {
		if c.Tag == tag {
			return c
		}
	}
	return nil
}

// children returns all matching child elements. A group that appears once
// comes back as a one-element slice, so callers always see a sequence.
func children(e *etree.Element, tag string) []*etree.Element {
	if e == nil {
		return nil
	}
	var out []*etree.Element
	for _, c := range e.ChildElements() {
		if c.Tag == tag {
			out = append(out, c)
		}
	}
	return out
}

// text returns the trimmed text of a child element, or "" when absent.
func text(e *etree.Element, tag string) string {
	c := child(e, tag)
	if c == nil {
		return ""
	}
	return strings.TrimSpace(c.Text())
}

// attr returns the value of an attribute, or "" when absent.
func attr(e *etree.Element, key string) string {
	if e == nil {
		return ""
	}
	return e.SelectAttrValue(key, "")
}
