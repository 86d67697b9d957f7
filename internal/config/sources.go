package config

import (
	"sort"
	"strings"
)

// Presets maps short names to well-known token list URLs.
var Presets = map[string]string{
	"arbitrum":        "https://bridge.arbitrum.io/token-list-42161.json",
	"uniswap-example": "https://raw.githubusercontent.com/Uniswap/token-lists/refs/heads/main/test/schema/bigexample.tokenlist.json",
	"1inch":           "https://wispy-bird-88a7.uniswap.workers.dev/?url=http://tokens.1inch.eth.link",
	"coingecko":       "https://tokens.coingecko.com/uniswap/all.json",
}

// ResolveSource expands a preset name; anything else is returned unchanged.
func ResolveSource(source string) string {
	source = strings.TrimSpace(source)
	if url, ok := Presets[strings.ToLower(source)]; ok {
		return url
	}
	return source
}

// ResolveSources expands presets and drops duplicates, keeping first occurrence order.
func ResolveSources(sources []string) []string {
	out := make([]string, 0, len(sources))
	seen := make(map[string]struct{}, len(sources))
	for _, source := range sources {
		resolved := ResolveSource(source)
		if resolved == "" {
			continue
		}
		if _, ok := seen[resolved]; ok {
			continue
		}
		seen[resolved] = struct{}{}
		out = append(out, resolved)
	}
	return out
}

// PresetNames returns the preset names in sorted order.
func PresetNames() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
