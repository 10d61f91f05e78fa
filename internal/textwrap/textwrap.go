// Package textwrap implements the greedy line wrapper used for long
// line-item descriptions.
package textwrap

// Lines splits text into lines of at most max characters, preferring to
// break at the last space or hyphen within the window and force-splitting
// with a synthetic hyphen when no break character exists. Continuation lines
// are prefixed with a single space. Empty input yields no lines.
//
// The wrap is greedy and single-pass: earlier lines are never re-flowed.
// A break character at index 0 (the continuation prefix itself) is ignored,
// otherwise an unbreakable token longer than the window would never shrink.
func Lines(text string, max int) []string {
	if text == "" || max < 1 {
		if text == "" {
			return nil
		}
		max = 1
	}

	lines := []string{text}
	for {
		last := []rune(lines[len(lines)-1])
		if len(last) <= max {
			return lines
		}
		lines = lines[:len(lines)-1]

		window := last[:max+1]
		br := -1
		for i, r := range window {
			if i > 0 && (r == ' ' || r == '-') {
				br = i
			}
		}

		if br >= 0 {
			// Keep the break character on the first part.
			lines = append(lines, string(last[:br+1]), " "+string(last[br+1:]))
		} else {
			lines = append(lines, string(last[:max+1])+"-", " "+string(last[max+1:]))
		}
	}
}
