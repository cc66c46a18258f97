// Package duration parses the compact ISO-8601 style durations returned by the
// video API ("PT4M13S") and formats them as clock strings.
package duration

import (
	"fmt"
	"regexp"
	"strconv"
)

var pattern = regexp.MustCompile(`^P(?:(\d+)D)?T(?:(\d+)H)?(?:(\d+)M)?(?:(\d+)S)?$`)

// Duration holds the parsed components of a duration string.
//
// Days is captured but is not part of Seconds or Format.
type Duration struct {
	Days    int
	Hours   int
	Minutes int
	Seconds int
}

// Parse decodes s. The boolean is false when s does not match the grammar or
// carries no component at all; callers should then display s unchanged.
func Parse(s string) (Duration, bool) {
	m := pattern.FindStringSubmatch(s)
	if m == nil {
		return Duration{}, false
	}
	if m[1] == "" && m[2] == "" && m[3] == "" && m[4] == "" {
		return Duration{}, false
	}

	return Duration{
		Days:    atoi(m[1]),
		Hours:   atoi(m[2]),
		Minutes: atoi(m[3]),
		Seconds: atoi(m[4]),
	}, true
}

// TotalSeconds returns hours, minutes and seconds as seconds.
func (d Duration) TotalSeconds() int {
	return d.Hours*3600 + d.Minutes*60 + d.Seconds
}

func (d Duration) String() string {
	return Format(d.Hours, d.Minutes, d.Seconds)
}

// Format renders "H:MM:SS" when hours > 0, otherwise "M:SS".
func Format(hours, minutes, seconds int) string {
	if hours > 0 {
		return fmt.Sprintf("%d:%02d:%02d", hours, minutes, seconds)
	}
	return fmt.Sprintf("%d:%02d", minutes, seconds)
}

// Humanize parses s and formats it, returning s itself when it cannot be parsed.
func Humanize(s string) string {
	d, ok := Parse(s)
	if !ok {
		return s
	}
	return d.String()
}

// Seconds returns the total seconds of s, or 0 when s cannot be parsed.
func Seconds(s string) int {
	d, ok := Parse(s)
	if !ok {
		return 0
	}
	return d.TotalSeconds()
}

func atoi(s string) int {
	if s == "" {
		return 0
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}
