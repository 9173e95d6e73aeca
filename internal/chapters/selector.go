package chapters

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/brogergvhs/manhuafast/internal/platform"
)

// Select picks chapters by 1-based position in the listing as displayed.
// chapter matches a name first and falls back to an index; rng is "a-b";
// list is "i,j,k". With all selectors empty every chapter is returned.
func Select(all []platform.Content, chapter, rng, list string) ([]platform.Content, error) {
	switch {
	case chapter != "":
		if byName := SelectByName(all, chapter); len(byName) > 0 {
			return byName, nil
		}
		idx, err := atoi(chapter)
		if err != nil {
			return nil, fmt.Errorf("no chapter named %q", chapter)
		}
		if idx <= 0 || idx > len(all) {
			return nil, fmt.Errorf("chapter %d out of range 1-%d", idx, len(all))
		}
		return []platform.Content{all[idx-1]}, nil
	case rng != "":
		return SelectRange(all, rng)
	case list != "":
		return SelectList(all, list), nil
	}
	return all, nil
}

func SelectByName(all []platform.Content, name string) []platform.Content {
	var out []platform.Content
	for _, c := range all {
		if strings.EqualFold(c.ContentName(), strings.TrimSpace(name)) {
			out = append(out, c)
		}
	}
	return out
}

func SelectRange(all []platform.Content, rng string) ([]platform.Content, error) {
	parts := strings.Split(rng, "-")
	if len(parts) != 2 {
		return nil, fmt.Errorf("invalid range %q, want a-b", rng)
	}
	start, err1 := atoi(parts[0])
	end, err2 := atoi(parts[1])
	if err1 != nil || err2 != nil {
		return nil, fmt.Errorf("invalid range %q, want a-b", rng)
	}
	if start <= 0 || end <= 0 || start > end || end > len(all) {
		return nil, fmt.Errorf("range %d-%d outside 1-%d", start, end, len(all))
	}
	return all[start-1 : end], nil
}

// SelectList ignores entries that are not numbers or out of range.
func SelectList(all []platform.Content, list string) []platform.Content {
	out := []platform.Content{}
	for p := range strings.SplitSeq(list, ",") {
		idx, err := atoi(p)
		if err != nil || idx <= 0 || idx > len(all) {
			continue
		}
		out = append(out, all[idx-1])
	}
	return out
}

func atoi(s string) (int, error) {
	return strconv.Atoi(strings.TrimSpace(s))
}
