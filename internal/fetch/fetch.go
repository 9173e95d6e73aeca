// Package fetch issues the plugin's HTTP requests with a single
// primary-to-mirror failover and anti-bot challenge detection.
package fetch

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/brogergvhs/manhuafast/internal/normalize"
	"github.com/brogergvhs/manhuafast/internal/sourceerr"
)

type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

type Logger interface {
	Debugf(format string, args ...any)
}

type FetchResult struct {
	StatusCode int
	Body       string
	FinalURL   string
}

// DefaultChallengeMarkers are matched case-insensitively against every body,
// whatever the status code.
var DefaultChallengeMarkers = []string{
	"please wait while we verify",
	"checking your browser before accessing",
	"/cdn-cgi/challenge-platform/",
	"challenges.cloudflare.com/turnstile",
	"cf-browser-verification",
	"window._cf_chl_opt",
	"check.ddos-guard.net",
}

const DefaultUserAgent = "Mozilla/5.0 (Linux; Android 14; Pixel 8 Pro) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Mobile Safari/537.36"

type Options struct {
	Client    Doer
	Canon     *normalize.Canonicalizer
	UserAgent string
	Markers   []string
	Logger    Logger
}

type Fetcher struct {
	client  Doer
	canon   *normalize.Canonicalizer
	ua      string
	markers [][]byte
	log     Logger
}

func New(opts Options) *Fetcher {
	client := opts.Client
	if client == nil {
		client = http.DefaultClient
	}

	ua := opts.UserAgent
	if ua == "" {
		ua = DefaultUserAgent
	}

	markers := opts.Markers
	if markers == nil {
		markers = DefaultChallengeMarkers
	}
	lower := make([][]byte, 0, len(markers))
	for _, m := range markers {
		m = strings.TrimSpace(m)
		if m == "" {
			continue
		}
		lower = append(lower, bytes.ToLower([]byte(m)))
	}

	log := opts.Logger
	if log == nil {
		log = nopLogger{}
	}

	return &Fetcher{
		client:  client,
		canon:   opts.Canon,
		ua:      ua,
		markers: lower,
		log:     log,
	}
}

func (f *Fetcher) Get(ctx context.Context, url string) (FetchResult, error) {
	return f.Fetch(ctx, http.MethodGet, url, "")
}

func (f *Fetcher) Post(ctx context.Context, url, body string) (FetchResult, error) {
	return f.Fetch(ctx, http.MethodPost, url, body)
}

// Fetch tries url once. An unusable answer from the primary domain is
// retried exactly once on the mirror; anything else fails immediately.
// A challenge page on either attempt aborts with sourceerr.KindChallenge.
func (f *Fetcher) Fetch(ctx context.Context, method, url, body string) (FetchResult, error) {
	res, err := f.attempt(ctx, method, url, body, f.refererFor(url))
	if sourceerr.KindOf(err) == sourceerr.KindChallenge {
		return FetchResult{}, err
	}
	if err == nil && usable(res) {
		return res, nil
	}

	var fallback string
	ok := false
	if f.canon != nil {
		fallback, ok = f.canon.MirrorOf(url)
	}
	if !ok {
		return FetchResult{}, &sourceerr.Error{
			Kind:   sourceerr.KindFetch,
			Method: method,
			URL:    url,
			Status: res.StatusCode,
			Err:    err,
		}
	}

	f.log.Debugf("HTTP %s trying fallback -> %s", method, fallback)

	// a mirror that never answers must not hide the primary's status
	lastStatus := res.StatusCode

	res, err = f.attempt(ctx, method, fallback, body, f.canon.Mirror()+"/")
	if sourceerr.KindOf(err) == sourceerr.KindChallenge {
		return FetchResult{}, err
	}
	if err == nil && usable(res) {
		return res, nil
	}
	if res.StatusCode != 0 {
		lastStatus = res.StatusCode
	}

	return FetchResult{}, &sourceerr.Error{
		Kind:        sourceerr.KindFetch,
		Method:      method,
		URL:         url,
		FallbackURL: fallback,
		Status:      lastStatus,
		Err:         err,
	}
}

// attempt performs one request. Transport failures come back as an error
// with a zero result; they count as "no response", not as fatal.
func (f *Fetcher) attempt(ctx context.Context, method, url, body, referer string) (FetchResult, error) {
	var rd io.Reader
	if method != http.MethodGet {
		rd = strings.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, rd)
	if err != nil {
		return FetchResult{}, fmt.Errorf("build request: %w", err)
	}
	f.setHeaders(req, referer)

	f.log.Debugf("HTTP %s -> %s bodyLen=%d", method, url, len(body))

	resp, err := f.client.Do(req)
	if err != nil {
		f.log.Debugf("HTTP %s %s exception: %v", method, url, err)
		return FetchResult{}, err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		f.log.Debugf("HTTP %s %s read failed: %v", method, url, err)
		return FetchResult{StatusCode: resp.StatusCode}, fmt.Errorf("read body: %w", err)
	}

	res := FetchResult{
		StatusCode: resp.StatusCode,
		Body:       string(b),
		FinalURL:   url,
	}
	if resp.Request != nil && resp.Request.URL != nil {
		res.FinalURL = resp.Request.URL.String()
	}

	f.log.Debugf("HTTP %s %s code=%d bodyLen=%d", method, url, res.StatusCode, len(b))

	if f.isChallenge(b) {
		f.log.Debugf("HTTP %s %s challenge page detected", method, url)
		return FetchResult{}, sourceerr.Challenge(method, res.FinalURL, res.StatusCode)
	}

	return res, nil
}

func (f *Fetcher) setHeaders(req *http.Request, referer string) {
	req.Header.Set("User-Agent", f.ua)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.5")
	if referer != "" {
		req.Header.Set("Referer", referer)
	}
}

func (f *Fetcher) refererFor(url string) string {
	if f.canon == nil {
		return ""
	}
	if f.canon.OnMirror(url) {
		return f.canon.Mirror() + "/"
	}
	return f.canon.Primary() + "/"
}

func (f *Fetcher) isChallenge(body []byte) bool {
	if len(body) == 0 || len(f.markers) == 0 {
		return false
	}
	lowerBody := bytes.ToLower(body)
	for _, m := range f.markers {
		if bytes.Contains(lowerBody, m) {
			return true
		}
	}
	return false
}

func usable(res FetchResult) bool {
	if res.StatusCode == 0 || res.StatusCode >= 400 {
		return false
	}
	return strings.TrimSpace(res.Body) != ""
}

type nopLogger struct{}

func (nopLogger) Debugf(string, ...any) {}
