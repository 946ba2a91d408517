package catalog

// paramGroup maps well-known constructor parameter names to semantic
// groups. Anything unmatched falls into "other". Fixed table; not a
// caller-extensible surface.
var paramGroup = map[string]string{
	"h": "forecasting",

	"loss":       "loss",
	"valid_loss": "loss",

	"config":      "search_space",
	"search_alg":  "search_space",
	"num_samples": "search_space",
	"backend":     "search_space",
	"callbacks":   "search_space",

	"cpus": "resources",
	"gpus": "resources",

	"refit_with_val": "workflow",
	"verbose":        "workflow",
	"alias":          "workflow",

	"S":              "hierarchical",
	"cls_model":      "hierarchical",
	"reconciliation": "hierarchical",

	"n_series": "data",
}

// ClassifyParam returns the semantic group for a parameter name.
func ClassifyParam(name string) string {
	if g, ok := paramGroup[name]; ok {
		return g
	}
	return "other"
}
