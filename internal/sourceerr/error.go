// Package sourceerr defines the error taxonomy surfaced to the host.
package sourceerr

import (
	"errors"
	"fmt"
	"strings"
)

// ChallengeSignal is the exact value the host matches to open its manual
// verification UI. Do not reword it.
const ChallengeSignal = "CAPTCHA_REQUIRED"

type Kind int

const (
	KindUnknown Kind = iota
	// KindFetch: neither the primary nor the mirror domain gave a usable response.
	KindFetch
	// KindChallenge: an anti-bot verification page was served.
	KindChallenge
	// KindParse: non-empty input could not be parsed as a document.
	KindParse
	// KindExtraction: a required element or attribute was absent.
	KindExtraction
)

func (k Kind) String() string {
	switch k {
	case KindFetch:
		return "fetch"
	case KindChallenge:
		return "challenge"
	case KindParse:
		return "parse"
	case KindExtraction:
		return "extraction"
	default:
		return "unknown"
	}
}

type Error struct {
	Kind Kind

	// fetch / challenge
	Method      string
	URL         string
	FallbackURL string
	Status      int

	// extraction
	Selector string
	Context  string

	Err error
}

var (
	ErrFetch             = &Error{Kind: KindFetch}
	ErrChallengeRequired = &Error{Kind: KindChallenge}
	ErrParse             = &Error{Kind: KindParse}
	ErrExtraction        = &Error{Kind: KindExtraction}
)

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}

	switch e.Kind {
	case KindChallenge:
		return ChallengeSignal
	case KindFetch:
		return e.fetchMessage()
	case KindParse:
		msg := "cannot parse document"
		if e.Context != "" {
			msg += " from " + e.Context
		}
		if e.Err != nil {
			msg += ": " + e.Err.Error()
		}
		return msg
	case KindExtraction:
		msg := fmt.Sprintf("%s '%s' in %s", e.extractionWhat(), e.Selector, e.Context)
		if e.Err != nil {
			msg += ": " + e.Err.Error()
		}
		return msg
	}

	if e.Err != nil {
		return e.Err.Error()
	}
	return "source error"
}

func (e *Error) fetchMessage() string {
	var b strings.Builder
	fmt.Fprintf(&b, "HTTP %s failed for %s", e.Method, e.URL)
	if e.FallbackURL != "" {
		fmt.Fprintf(&b, " and %s", e.FallbackURL)
	}
	if e.Status > 0 {
		fmt.Fprintf(&b, ", last HTTP code: %d", e.Status)
	} else {
		b.WriteString(", no response")
	}
	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	return b.String()
}

func (e *Error) extractionWhat() string {
	if e.Err != nil && errors.Is(e.Err, errAttr) {
		return "attribute missing"
	}
	return "element not found"
}

var errAttr = errors.New("attribute")

// AttrMissing marks an extraction failure as an absent or blank attribute.
func AttrMissing(attr string) error {
	return fmt.Errorf("%w %s empty or absent", errAttr, attr)
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches any *Error of the same kind, so callers can write
// errors.Is(err, sourceerr.ErrChallengeRequired).
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok || e == nil || t == nil {
		return false
	}
	return t.Kind == e.Kind
}

// KindOf reports the kind of the first *Error in err's chain.
func KindOf(err error) Kind {
	var se *Error
	if errors.As(err, &se) {
		return se.Kind
	}
	return KindUnknown
}

func Challenge(method, url string, status int) *Error {
	return &Error{Kind: KindChallenge, Method: method, URL: url, Status: status}
}

func Extraction(selector, context string) *Error {
	return &Error{Kind: KindExtraction, Selector: selector, Context: context}
}
