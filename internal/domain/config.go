package domain

// RunConfig is the optional tm2kit.yaml at a model run root. Zero values
// fall back to the defaults below.
type RunConfig struct {
	DataModelPath string
	SummariesDir  string
	ObservedDir   string
	Iteration     int
}

// Defaults for a bare run directory.
const (
	DefaultDataModelPath = "ctramp_data_model.yaml"
	DefaultSummariesDir  = "summaries"
	DefaultObservedDir   = "observed"
	DefaultIteration     = 3
)

// WithDefaults fills unset fields.
func (c RunConfig) WithDefaults() RunConfig {
	if c.DataModelPath == "" {
		c.DataModelPath = DefaultDataModelPath
	}
	if c.SummariesDir == "" {
		c.SummariesDir = DefaultSummariesDir
	}
	if c.ObservedDir == "" {
		c.ObservedDir = DefaultObservedDir
	}
	if c.Iteration == 0 {
		c.Iteration = DefaultIteration
	}
	return c
}
