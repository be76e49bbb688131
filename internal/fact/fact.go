// Package fact provides the note that owns one or more cards, and its tag string helpers.
package fact

import (
	"slices"
	"strings"
)

// LeechTag marks facts with a card that keeps failing.
const LeechTag = "Leech"

// Fact is a row of the facts table.
type Fact struct {
	ID       int64   `db:"id"`
	Tags     string  `db:"tags"`
	Modified float64 `db:"modified"`
}

// ParseTags splits a tag string separated by spaces or commas.
func ParseTags(tags string) []string {
	fields := strings.FieldsFunc(tags, func(r rune) bool {
		return r == ' ' || r == ','
	})
	if len(fields) == 0 {
		return nil
	}
	return fields
}

func JoinTags(tags []string) string {
	return strings.Join(tags, " ")
}

// HasTag reports whether tag is in tags, ignoring case.
func HasTag(tag string, tags []string) bool {
	return slices.ContainsFunc(tags, func(t string) bool {
		return strings.EqualFold(t, tag)
	})
}

// AddTags appends the tags in add that are not yet present in tags.
func AddTags(add, tags string) string {
	current := ParseTags(tags)
	for _, tag := range ParseTags(add) {
		if !HasTag(tag, current) {
			current = append(current, tag)
		}
	}
	return JoinTags(current)
}

// Canonify strips leading colons, removes duplicates and sorts the tags.
func Canonify(tags string) string {
	parsed := ParseTags(tags)
	for i, t := range parsed {
		parsed[i] = strings.TrimLeft(t, ":")
	}
	parsed = slices.DeleteFunc(parsed, func(t string) bool { return t == "" })
	slices.Sort(parsed)
	return JoinTags(slices.Compact(parsed))
}
