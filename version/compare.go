// Package version checks for newer releases.
package version

import (
	"fmt"
	"strconv"
	"strings"
)

type semver struct {
	parts      [3]int
	prerelease string
}

// parse accepts "v1.2.3", "1.2" and "1.2.3-rc1". Missing components are 0.
func parse(s string) (semver, error) {
	var v semver

	core, pre, _ := strings.Cut(strings.TrimPrefix(strings.TrimSpace(s), "v"), "-")
	v.prerelease = pre

	fields := strings.Split(core, ".")
	if len(fields) > 3 {
		return v, fmt.Errorf("invalid version %q", s)
	}

	for i, f := range fields {
		n, err := strconv.Atoi(f)
		if err != nil || n < 0 {
			return v, fmt.Errorf("invalid version %q", s)
		}
		v.parts[i] = n
	}

	return v, nil
}

// Compare returns 1 if a is newer than b, -1 if older and 0 if equal.
// A pre-release sorts before its release.
func Compare(a, b string) (int, error) {
	av, err := parse(a)
	if err != nil {
		return 0, err
	}

	bv, err := parse(b)
	if err != nil {
		return 0, err
	}

	for i := range av.parts {
		switch {
		case av.parts[i] > bv.parts[i]:
			return 1, nil
		case av.parts[i] < bv.parts[i]:
			return -1, nil
		}
	}

	switch {
	case av.prerelease == bv.prerelease:
		return 0, nil
	case av.prerelease == "":
		return 1, nil
	case bv.prerelease == "":
		return -1, nil
	default:
		return strings.Compare(av.prerelease, bv.prerelease), nil
	}
}
