package page

import (
	"sort"
	"strings"

	theme "github.com/goliatone/go-theme"
)

// StylesheetAsset is the asset key resolved for the page stylesheet.
const StylesheetAsset = "page.stylesheet"

// ThemeConfig flattens a manifest and variant into renderer settings:
// variant tokens, templates and asset files override the base ones, and
// every token is exposed as a "--token" CSS variable.
func ThemeConfig(manifest *theme.Manifest, variant string) *theme.RendererConfig {
	if manifest == nil {
		return nil
	}
	cfg := &theme.RendererConfig{
		Theme:    manifest.Name,
		Variant:  variant,
		Tokens:   merge(manifest.Tokens, nil),
		Partials: merge(manifest.Templates, nil),
	}
	prefix := manifest.Assets.Prefix
	files := merge(manifest.Assets.Files, nil)
	if v, ok := manifest.Variants[variant]; ok {
		cfg.Tokens = merge(cfg.Tokens, v.Tokens)
		cfg.Partials = merge(cfg.Partials, v.Templates)
		files = merge(files, v.Assets.Files)
		if v.Assets.Prefix != "" {
			prefix = v.Assets.Prefix
		}
	}

	if len(cfg.Tokens) > 0 {
		cfg.CSSVars = make(map[string]string, len(cfg.Tokens))
		for key, value := range cfg.Tokens {
			cfg.CSSVars["--"+key] = value
		}
	}
	cfg.AssetURL = func(key string) string {
		file, ok := files[key]
		if !ok || file == "" {
			return ""
		}
		if prefix == "" || strings.Contains(file, "://") || strings.HasPrefix(file, "/") {
			return file
		}
		return strings.TrimSuffix(prefix, "/") + "/" + file
	}
	return cfg
}

func merge(base, override map[string]string) map[string]string {
	if len(base) == 0 && len(override) == 0 {
		return nil
	}
	out := make(map[string]string, len(base)+len(override))
	for key, value := range base {
		out[key] = value
	}
	for key, value := range override {
		out[key] = value
	}
	return out
}

func cssVarsStyle(vars map[string]string) string {
	if len(vars) == 0 {
		return ""
	}
	keys := make([]string, 0, len(vars))
	for key := range vars {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(":root {\n")
	for _, key := range keys {
		b.WriteString("  ")
		b.WriteString(key)
		b.WriteString(": ")
		b.WriteString(vars[key])
		b.WriteString(";\n")
	}
	b.WriteString("}\n")
	return b.String()
}
