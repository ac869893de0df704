package engine

// Option configures NewTable.
type Option func(*config)

type config struct {
	chronological bool
	strict        bool
	unitTypes     []string
	source        string
}

// WithChronologicalQuarters orders quarter keys by (year, quarter) instead
// of trusting the column order of the source.
func WithChronologicalQuarters(on bool) Option {
	return func(c *config) { c.chronological = on }
}

// WithStrict makes duplicate (area, unit type) records a load error.
func WithStrict(on bool) Option {
	return func(c *config) { c.strict = on }
}

// WithUnitTypes overrides the unit types compared in cross-sections.
func WithUnitTypes(types []string) Option {
	return func(c *config) {
		if len(types) > 0 {
			c.unitTypes = append([]string{}, types...)
		}
	}
}

// WithSource records where the table came from.
func WithSource(source string) Option {
	return func(c *config) { c.source = source }
}

func applyOptions(opts []Option) *config {
	cfg := &config{
		unitTypes: append([]string{}, UnitTypeCategories...),
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}
