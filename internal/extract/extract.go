// Package extract wraps goquery lookups with fail-fast contracts. Every
// Require* helper either returns a usable value or a *sourceerr.Error naming
// the selector and the caller's context label. Optional* helpers exist only
// where absence is expected.
package extract

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/brogergvhs/manhuafast/internal/sourceerr"
)

// Document is a parsed page plus the label used in diagnostics.
type Document struct {
	doc   *goquery.Document
	Label string
}

// Parse builds a Document. Empty input is a parse failure, not an empty page.
func Parse(html, label string) (*Document, error) {
	if strings.TrimSpace(html) == "" {
		return nil, &sourceerr.Error{Kind: sourceerr.KindParse, Context: label, Err: fmt.Errorf("empty body")}
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, &sourceerr.Error{Kind: sourceerr.KindParse, Context: label, Err: err}
	}

	return &Document{doc: doc, Label: label}, nil
}

// Root is the document-level selection for queries.
func (d *Document) Root() *goquery.Selection {
	return d.doc.Selection
}

func RequireElement(scope *goquery.Selection, selector, context string) (*goquery.Selection, error) {
	if scope == nil || scope.Length() == 0 {
		return nil, sourceerr.Extraction(selector, context+" (no parent)")
	}

	el := scope.Find(selector).First()
	if el.Length() == 0 {
		return nil, sourceerr.Extraction(selector, context)
	}
	return el, nil
}

// RequireElements fails when the selector matches nothing.
func RequireElements(scope *goquery.Selection, selector, context string) (*goquery.Selection, error) {
	if scope == nil || scope.Length() == 0 {
		return nil, sourceerr.Extraction(selector, context+" (no parent)")
	}

	els := scope.Find(selector)
	if els.Length() == 0 {
		return nil, sourceerr.Extraction(selector, context)
	}
	return els, nil
}

func OptionalElement(scope *goquery.Selection, selectors ...string) (*goquery.Selection, bool) {
	if scope == nil {
		return nil, false
	}
	for _, sel := range selectors {
		if el := scope.Find(sel).First(); el.Length() > 0 {
			return el, true
		}
	}
	return nil, false
}

// RequireText returns the trimmed text content of el.
func RequireText(el *goquery.Selection, context string) (string, error) {
	if el == nil || el.Length() == 0 {
		return "", sourceerr.Extraction("text()", context)
	}
	return strings.TrimSpace(el.Text()), nil
}

func OptionalText(scope *goquery.Selection, selector string) string {
	el, ok := OptionalElement(scope, selector)
	if !ok {
		return ""
	}
	return strings.TrimSpace(el.Text())
}

// RequireAttr treats a blank attribute the same as a missing one.
func RequireAttr(el *goquery.Selection, attr, context string) (string, error) {
	if el == nil || el.Length() == 0 {
		e := sourceerr.Extraction("["+attr+"]", context+" (no element)")
		e.Err = sourceerr.AttrMissing(attr)
		return "", e
	}

	v, _ := el.Attr(attr)
	v = strings.TrimSpace(v)
	if v == "" {
		e := sourceerr.Extraction("["+attr+"]", context)
		e.Err = sourceerr.AttrMissing(attr)
		return "", e
	}
	return v, nil
}

// RequireImageSrc prefers the lazy-load data-src over src.
func RequireImageSrc(img *goquery.Selection, context string) (string, error) {
	if src, ok := OptionalImageSrc(img); ok {
		return src, nil
	}
	e := sourceerr.Extraction("img[data-src|src]", context)
	e.Err = sourceerr.AttrMissing("data-src/src")
	return "", e
}

func OptionalImageSrc(img *goquery.Selection) (string, bool) {
	if img == nil || img.Length() == 0 {
		return "", false
	}
	for _, attr := range []string{"data-src", "src"} {
		if v, ok := img.Attr(attr); ok {
			if v = strings.TrimSpace(v); v != "" {
				return v, true
			}
		}
	}
	return "", false
}

// ItemError is one list entry that failed extraction.
type ItemError struct {
	Index int
	Err   error
}

func (e ItemError) Error() string {
	return fmt.Sprintf("item[%d]: %v", e.Index, e.Err)
}

func (e ItemError) Unwrap() error { return e.Err }

// MapItems runs fn over every element of items and partitions the results:
// successes keep their source order, failures are returned separately so a
// single malformed entry never blanks a whole listing.
func MapItems[T any](items *goquery.Selection, fn func(i int, item *goquery.Selection) (T, error)) ([]T, []ItemError) {
	if items == nil {
		return nil, nil
	}

	ok := make([]T, 0, items.Length())
	var failed []ItemError

	items.Each(func(i int, s *goquery.Selection) {
		v, err := fn(i, s)
		if err != nil {
			failed = append(failed, ItemError{Index: i, Err: err})
			return
		}
		ok = append(ok, v)
	})

	return ok, failed
}
