package tree

import (
	"strings"

	"go.trai.ch/deptree/internal/core/domain"
	"go.trai.ch/zerr"
)

const maxFragment = 256

func fragment(raw string) string {
	raw = strings.TrimSpace(raw)
	if len(raw) > maxFragment {
		return raw[:maxFragment] + "..."
	}
	return raw
}

func malformed(msg, raw string) error {
	frag := fragment(raw)
	err := zerr.Wrap(domain.ErrMalformedTreeOutput, msg+": "+frag)
	return zerr.With(err, "fragment", frag)
}

func unresolved(name, reason string) error {
	err := zerr.Wrap(domain.ErrUnresolvedPackage, "package "+name+" "+reason)
	return zerr.With(err, "package", name)
}

// cycle reports path, whose last element repeats an earlier one.
func cycle(path []domain.PackageRef) error {
	members := make([]string, 0, len(path))
	for _, ref := range path[:len(path)-1] {
		members = append(members, ref.String())
	}
	msg := "dependency cycle " + strings.Join(members, " -> ") + " -> " + path[len(path)-1].String()
	return zerr.With(zerr.Wrap(domain.ErrDependencyCycle, msg), "cycle", members)
}
