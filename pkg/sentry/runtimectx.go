// runtimectx.go captures runtime and host context payloads for events.

package sentry

import (
	"os"
	"runtime"
	"runtime/debug"
)

// RuntimeContexts returns context payloads describing the Go runtime and the
// host at the current moment, suitable for EventDefaults.Contexts or a
// builder's Contexts map.
func RuntimeContexts() map[string]any {
	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)

	hostname, _ := os.Hostname() // empty hostname is acceptable

	return map[string]any{
		"runtime": map[string]any{
			"name":               "go",
			"version":            runtime.Version(),
			"go_maxprocs":        runtime.GOMAXPROCS(0),
			"goroutines":         runtime.NumGoroutine(),
			"memory_alloc_bytes": int64(memStats.Alloc),
		},
		"os": map[string]any{
			"name": runtime.GOOS,
		},
		"device": map[string]any{
			"arch":     runtime.GOARCH,
			"hostname": hostname,
		},
	}
}

// LoadedModules reports the dependency versions baked into the running
// binary, for the event's modules field. Returns nil when build info is
// unavailable.
func LoadedModules() map[string]string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return nil
	}
	mods := make(map[string]string, len(info.Deps)+1)
	if info.Main.Path != "" {
		mods[info.Main.Path] = info.Main.Version
	}
	for _, dep := range info.Deps {
		mods[dep.Path] = dep.Version
	}
	return mods
}
