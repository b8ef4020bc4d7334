package module

import (
	phttp "airwatch/internal/platform/net/http"
)

// MountAll mounts mods on r in order and panics when two share a name
func MountAll(r phttp.Router, mods ...Module) []string {
	names := make([]string, 0, len(mods))
	seen := make(map[string]bool, len(mods))
	for _, m := range mods {
		n := m.Name()
		if seen[n] {
			panic("module: duplicate module " + n)
		}
		seen[n] = true
		m.MountRoutes(r)
		names = append(names, n)
	}
	return names
}
