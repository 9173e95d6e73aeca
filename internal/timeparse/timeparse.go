// Package timeparse turns the site's "N units ago" labels and absolute
// dates into epoch seconds. Unparseable input yields 0, never an error.
package timeparse

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

var humanAgo = regexp.MustCompile(
	`([0-9]+) (seconds|second|minutes|minute|mins|min|hours|hour|days|day|weeks|week|months|month|years|year) ago`,
)

// Coarse on purpose: only recency ordering matters.
var unitSeconds = map[string]int64{
	"second":  1,
	"seconds": 1,
	"min":     60,
	"mins":    60,
	"minute":  60,
	"minutes": 60,
	"hour":    3600,
	"hours":   3600,
	"day":     86400,
	"days":    86400,
	"week":    604800,
	"weeks":   604800,
	"month":   2592000,
	"months":  2592000,
	"year":    31536000,
	"years":   31536000,
}

type Parser struct {
	Now func() time.Time
	// Location applies to absolute dates without a zone. Defaults to UTC.
	Location *time.Location
}

func New() *Parser {
	return &Parser{Now: time.Now, Location: time.UTC}
}

var std = New()

// Parse is Parser.Parse on a wall-clock parser.
func Parse(text string) int64 {
	return std.Parse(text)
}

func (p *Parser) Parse(text string) int64 {
	text = strings.TrimSpace(text)
	if text == "" {
		return 0
	}

	if m := humanAgo.FindStringSubmatch(strings.ToLower(text)); m != nil {
		n, err := strconv.ParseInt(m[1], 10, 64)
		unit := unitSeconds[m[2]]
		if err != nil || n > math.MaxInt64/unit {
			return 0
		}
		return p.now().Unix() - n*unit
	}

	loc := p.Location
	if loc == nil {
		loc = time.UTC
	}
	t, err := dateparse.ParseIn(text, loc)
	if err != nil {
		return 0
	}
	return t.Unix()
}

func (p *Parser) now() time.Time {
	if p.Now == nil {
		return time.Now()
	}
	return p.Now()
}
