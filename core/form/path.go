package form

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// segment is one step of a field path: a name and an optional list index,
// eg. "options[1]" -> {name: "options", index: 1, indexed: true}.
type segment struct {
	name    string
	index   int
	indexed bool
}

func parsePath(path string) ([]segment, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("empty field path")
	}
	parts := strings.Split(path, ".")
	segs := make([]segment, 0, len(parts))
	for _, part := range parts {
		seg := segment{name: part}
		if open := strings.IndexByte(part, '['); open >= 0 {
			if !strings.HasSuffix(part, "]") {
				return nil, errors.Errorf("malformed field path %q", path)
			}
			idx, err := strconv.Atoi(part[open+1 : len(part)-1])
			if err != nil || idx < 0 {
				return nil, errors.Errorf("malformed index in field path %q", path)
			}
			seg.name = part[:open]
			seg.index = idx
			seg.indexed = true
		}
		if seg.name == "" {
			return nil, errors.Errorf("malformed field path %q", path)
		}
		segs = append(segs, seg)
	}
	return segs, nil
}
