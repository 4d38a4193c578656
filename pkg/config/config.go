package config

type Feature int

const (
	FeatStrict Feature = iota
	FeatPostProcess
	FeatEntryCall
	FeatCount
)

type Warning int

const (
	WarnNaming Warning = iota
	WarnEntryParamName
	WarnElementType
	WarnPrecision
	WarnExtra
	WarnCount
)

type Info struct {
	Name        string
	Enabled     bool
	Description string
}

// Config carries the per-run feature and warning toggles plus output
// settings. One Config may be shared by concurrent translations; it is
// read-only once built.
type Config struct {
	Features    map[Feature]Info
	Warnings    map[Warning]Info
	FeatureMap  map[string]Feature
	WarningMap  map[string]Warning
	IndentWidth int
}

func NewConfig() *Config {
	cfg := &Config{
		Features:    make(map[Feature]Info),
		Warnings:    make(map[Warning]Info),
		FeatureMap:  make(map[string]Feature),
		WarningMap:  make(map[string]Warning),
		IndentWidth: 4,
	}

	features := map[Feature]Info{
		FeatStrict:      {"strict", false, "Strict mode: demote naming-convention errors to warnings."},
		FeatPostProcess: {"post-process", true, "Run the textual fix-up stage over generated code."},
		FeatEntryCall:   {"entry-call", true, "Append a call to the translated entry method."},
	}

	warnings := map[Warning]Info{
		WarnNaming:         {"naming", true, "Warn about naming-convention violations."},
		WarnEntryParamName: {"entry-param-name", true, "Warn when the entry method parameter is not named 'args'."},
		WarnElementType:    {"element-type", true, "Warn when a for-each variable type disagrees with the collection element type."},
		WarnPrecision:      {"precision", true, "Warn about implicit numeric precision changes."},
		WarnExtra:          {"extra", true, "Enable extra miscellaneous warnings."},
	}

	cfg.Features, cfg.Warnings = features, warnings
	for ft, info := range features {
		cfg.FeatureMap[info.Name] = ft
	}
	for wt, info := range warnings {
		cfg.WarningMap[info.Name] = wt
	}

	return cfg
}

func (c *Config) SetFeature(ft Feature, enabled bool) {
	if info, ok := c.Features[ft]; ok {
		info.Enabled = enabled
		c.Features[ft] = info
	}
}

func (c *Config) IsFeatureEnabled(ft Feature) bool { return c.Features[ft].Enabled }

func (c *Config) SetWarning(wt Warning, enabled bool) {
	if info, ok := c.Warnings[wt]; ok {
		info.Enabled = enabled
		c.Warnings[wt] = info
	}
}

func (c *Config) IsWarningEnabled(wt Warning) bool { return c.Warnings[wt].Enabled }
