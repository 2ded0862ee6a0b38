package lspserver

import "github.com/bastiangx/scls-go/pkg/config"

// decodePartialSettingsMap pulls the recognized fields out of a
// workspace/didChangeConfiguration JSON payload decoded as
// map[string]any, building a PartialSettings where unrecognized or
// mistyped keys are simply absent rather than an error (spec.md §4.9:
// unset fields preserve current values).
func decodePartialSettingsMap(m map[string]any) (*config.PartialSettings, error) {
	p := &config.PartialSettings{}

	if v, ok := intField(m, "max_completion_items"); ok {
		p.MaxCompletionItems = &v
	}
	if v, ok := intField(m, "max_chars_prefix_len"); ok {
		p.MaxCharsPrefixLen = &v
	}
	if v, ok := intField(m, "min_chars_prefix_len"); ok {
		p.MinCharsPrefixLen = &v
	}
	if v, ok := intField(m, "max_snippet_prefix_len"); ok {
		p.MaxSnippetPrefixLen = &v
	}
	if v, ok := intField(m, "max_unicode_prefix_len"); ok {
		p.MaxUnicodePrefixLen = &v
	}
	if v, ok := boolField(m, "snippets_first"); ok {
		p.SnippetsFirst = &v
	}
	if v, ok := boolField(m, "snippets_inline_by_word_tail"); ok {
		p.SnippetsInlineByWordTail = &v
	}
	if v, ok := stringField(m, "citation_prefix_trigger"); ok {
		p.CitationPrefixTrigger = &v
	}
	if v, ok := stringField(m, "citation_bibfile_extract_regexp"); ok {
		p.CitationBibfileExtractRegexp = &v
	}
	if v, ok := boolField(m, "feature_words"); ok {
		p.FeatureWords = &v
	}
	if v, ok := boolField(m, "feature_snippets"); ok {
		p.FeatureSnippets = &v
	}
	if v, ok := boolField(m, "feature_unicode_input"); ok {
		p.FeatureUnicodeInput = &v
	}
	if v, ok := boolField(m, "feature_paths"); ok {
		p.FeaturePaths = &v
	}
	if v, ok := boolField(m, "feature_citations"); ok {
		p.FeatureCitations = &v
	}
	return p, nil
}

func intField(m map[string]any, key string) (int, bool) {
	switch v := m[key].(type) {
	case float64:
		return int(v), true
	case int:
		return v, true
	default:
		return 0, false
	}
}

func boolField(m map[string]any, key string) (bool, bool) {
	v, ok := m[key].(bool)
	return v, ok
}

func stringField(m map[string]any, key string) (string, bool) {
	v, ok := m[key].(string)
	return v, ok
}
