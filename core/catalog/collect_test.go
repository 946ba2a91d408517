package catalog

import (
	"errors"
	"testing"

	"github.com/rs/zerolog"
)

func TestClassifyParam(t *testing.T) {
	tests := []struct {
		param string
		want  string
	}{
		{"h", "forecasting"},
		{"loss", "loss"},
		{"valid_loss", "loss"},
		{"config", "search_space"},
		{"num_samples", "search_space"},
		{"cpus", "resources"},
		{"gpus", "resources"},
		{"verbose", "workflow"},
		{"S", "hierarchical"},
		{"n_series", "data"},
		{"totally_unknown_param", "other"},
	}

	for _, tt := range tests {
		if got := ClassifyParam(tt.param); got != tt.want {
			t.Errorf("ClassifyParam(%q) = %q, want %q", tt.param, got, tt.want)
		}
	}
}

func autoModule() ModuleClasses {
	return ModuleClasses{
		Module: "neuralforecast.auto",
		Classes: []Class{
			{
				Name:   "AutoNBEATS",
				Module: "neuralforecast.auto",
				Doc:    "NBEATS hyperparameter search.\n\nLong description.",
				Params: []Param{
					{Name: "self", Kind: "positional_or_keyword"},
					{Name: "h", Annotation: "int", Kind: "positional_or_keyword", Required: true},
					{Name: "loss", Annotation: "MAE", Kind: "positional_or_keyword",
						Default: Object{Type: "MAE", Repr: "MAE()"}},
					{Name: "num_samples", Annotation: "int", Kind: "keyword_only", Default: 10},
					{Name: "kwargs", Kind: "var_keyword"},
				},
				HasDefaultConfigAttr: true,
				DefaultConfig: func() (map[string]any, error) {
					return map[string]any{
						"max_steps": 1000,
						"learning_rate": Object{
							Type: "loguniform",
							Repr: "Float(low=0.0001, high=0.1)",
						},
					}, nil
				},
			},
			{
				Name:   "AutoRNN",
				Module: "neuralforecast.auto",
				Params: []Param{
					{Name: "h", Annotation: "int", Required: true},
					{Name: "loss", Annotation: "MAE",
						Default: Object{Type: "MAE", Repr: "MAE()"}},
				},
				HasGetDefaultConfig: true,
				DefaultConfig: func() (map[string]any, error) {
					return nil, errors.New("requires a backend")
				},
			},
			{Name: "_AutoHidden", Module: "neuralforecast.auto"},
			{Name: "NBEATS", Module: "neuralforecast.auto"},
			{Name: "AutoReexported", Module: "neuralforecast.auto",
				DefinedIn: "neuralforecast.common"},
		},
	}
}

func TestCollectAuto_Models(t *testing.T) {
	af := CollectAuto([]ModuleClasses{autoModule()}, zerolog.Nop())

	if len(af.Models) != 2 {
		t.Fatalf("len(Models) = %d, want 2", len(af.Models))
	}
	if af.Models[0].AutoName != "AutoNBEATS" || af.Models[1].AutoName != "AutoRNN" {
		t.Errorf("model order = %s, %s, want AutoNBEATS, AutoRNN",
			af.Models[0].AutoName, af.Models[1].AutoName)
	}

	m := af.Models[0]
	if m.Library != "neuralforecast" || m.Namespace != "auto" {
		t.Errorf("module split = %s/%s, want neuralforecast/auto", m.Library, m.Namespace)
	}
	if m.Doc != "NBEATS hyperparameter search." {
		t.Errorf("Doc = %q, want first docstring line", m.Doc)
	}
	if !m.HasDefaultConfigAttr || m.HasGetDefaultConfig {
		t.Errorf("capability flags = (%v, %v), want (true, false)",
			m.HasDefaultConfigAttr, m.HasGetDefaultConfig)
	}
}

func TestCollectAuto_ModelParams(t *testing.T) {
	af := CollectAuto([]ModuleClasses{autoModule()}, zerolog.Nop())

	// self/kwargs excluded: AutoNBEATS has h, loss, num_samples;
	// AutoRNN has h, loss.
	if len(af.ModelParams) != 5 {
		t.Fatalf("len(ModelParams) = %d, want 5", len(af.ModelParams))
	}

	byKey := map[string]ModelParamRecord{}
	for _, r := range af.ModelParams {
		byKey[r.AutoName+"/"+r.Param] = r
	}

	h := byKey["AutoNBEATS/h"]
	if !h.Required || h.DefaultKind != DefaultEmpty || h.DefaultScalar != "" || h.DefaultObjID != "" {
		t.Errorf("h record = %+v, want required with empty default", h)
	}

	ns := byKey["AutoNBEATS/num_samples"]
	if ns.Required || ns.DefaultKind != DefaultScalar || ns.DefaultScalar != "10" {
		t.Errorf("num_samples record = %+v, want scalar default 10", ns)
	}
	if ns.Kind != "keyword_only" {
		t.Errorf("num_samples kind = %q, want keyword_only", ns.Kind)
	}

	loss := byKey["AutoNBEATS/loss"]
	if loss.DefaultKind != DefaultObject || loss.DefaultObjID == "" {
		t.Errorf("loss record = %+v, want object default", loss)
	}
	if other := byKey["AutoRNN/loss"]; other.DefaultObjID != loss.DefaultObjID {
		t.Errorf("identical MAE defaults got distinct ids: %s vs %s",
			other.DefaultObjID, loss.DefaultObjID)
	}
}

func TestCollectAuto_ParamsMaster(t *testing.T) {
	af := CollectAuto([]ModuleClasses{autoModule()}, zerolog.Nop())

	if len(af.Params) != 3 {
		t.Fatalf("len(Params) = %d, want 3 (h, loss, num_samples)", len(af.Params))
	}
	// Sorted by (group, param): forecasting/h, loss/loss, search_space/num_samples.
	wantOrder := []string{"h", "loss", "num_samples"}
	for i, p := range af.Params {
		if p.Param != wantOrder[i] {
			t.Errorf("Params[%d] = %s, want %s", i, p.Param, wantOrder[i])
		}
	}
	if af.Params[0].Group != "forecasting" {
		t.Errorf("h group = %q, want forecasting", af.Params[0].Group)
	}
}

func TestCollectAuto_ConfigAndPool(t *testing.T) {
	af := CollectAuto([]ModuleClasses{autoModule()}, zerolog.Nop())

	// AutoRNN's accessor errors and contributes nothing.
	if len(af.ConfigEntries) != 2 {
		t.Fatalf("len(ConfigEntries) = %d, want 2", len(af.ConfigEntries))
	}
	if af.ConfigEntries[0].KeyPath != "default_config.learning_rate" {
		t.Errorf("entry order = %q, want default_config.learning_rate first",
			af.ConfigEntries[0].KeyPath)
	}
	if af.ConfigEntries[0].ValueKind != "object" {
		t.Errorf("learning_rate kind = %q, want object", af.ConfigEntries[0].ValueKind)
	}
	if af.ConfigEntries[1].ValueScalar != "1000" {
		t.Errorf("max_steps = %q, want 1000", af.ConfigEntries[1].ValueScalar)
	}

	// Pool holds the shared MAE default and the loguniform dist.
	if len(af.Objects) != 2 {
		t.Fatalf("len(Objects) = %d, want 2", len(af.Objects))
	}
	for i := 1; i < len(af.Objects); i++ {
		if af.Objects[i-1].ObjID > af.Objects[i].ObjID {
			t.Errorf("objects not sorted by id")
		}
	}
}

func TestCollectAuto_NoSignature(t *testing.T) {
	mods := []ModuleClasses{{
		Module: "neuralforecast.auto",
		Classes: []Class{
			// Signature introspection failed: model row kept, no params.
			{Name: "AutoOpaque", Module: "neuralforecast.auto"},
		},
	}}

	af := CollectAuto(mods, zerolog.Nop())
	if len(af.Models) != 1 {
		t.Fatalf("len(Models) = %d, want 1", len(af.Models))
	}
	if len(af.ModelParams) != 0 {
		t.Errorf("len(ModelParams) = %d, want 0", len(af.ModelParams))
	}
}

func TestCollectAuto_ModuleError(t *testing.T) {
	mods := []ModuleClasses{
		{Module: "neuralforecast.auto", Err: errors.New("boom")},
	}

	af := CollectAuto(mods, zerolog.Nop())
	if len(af.Models) != 0 || len(af.ModelParams) != 0 {
		t.Errorf("failed module contributed rows: %+v", af)
	}
}
