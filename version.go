package fluidgo

import (
	"fmt"
	"strconv"
	"strings"
)

// Version is a three-part engine version. Comparison is numeric per
// component, never lexical: "2.10.0" is newer than "2.9.0".
type Version struct {
	Major, Minor, Micro int
}

// ParseVersion parses a "major.minor.micro" string.
func ParseVersion(s string) (Version, error) {
	parts := strings.Split(s, ".")
	if len(parts) != 3 {
		return Version{}, fmt.Errorf("malformed version %q", s)
	}
	var v Version
	for i, dst := range []*int{&v.Major, &v.Minor, &v.Micro} {
		n, err := strconv.Atoi(parts[i])
		if err != nil {
			return Version{}, fmt.Errorf("malformed version %q: %w", s, err)
		}
		*dst = n
	}
	return v, nil
}

// AtLeast reports whether v >= min, boundary inclusive.
func (v Version) AtLeast(min Version) bool {
	if v.Major != min.Major {
		return v.Major > min.Major
	}
	if v.Minor != min.Minor {
		return v.Minor > min.Minor
	}
	return v.Micro >= min.Micro
}

func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Micro)
}
