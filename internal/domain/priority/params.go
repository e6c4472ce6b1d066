package priority

// Weights controls how the smart balance strategy combines sub-scores.
// Other strategies ignore weights.
type Weights struct {
	Urgency      float64 `json:"urgency"`
	Importance   float64 `json:"importance"`
	Effort       float64 `json:"effort"`
	Dependencies float64 `json:"dependencies"`
}

// Default weight values.
const (
	DefaultUrgencyWeight      = 0.3
	DefaultImportanceWeight   = 0.3
	DefaultEffortWeight       = 0.2
	DefaultDependenciesWeight = 0.2
)

// DefaultWeights returns the documented default weights.
func DefaultWeights() Weights {
	return Weights{
		Urgency:      DefaultUrgencyWeight,
		Importance:   DefaultImportanceWeight,
		Effort:       DefaultEffortWeight,
		Dependencies: DefaultDependenciesWeight,
	}
}

// WeightsConfig is a partial override of Weights. Nil fields keep the base value.
type WeightsConfig struct {
	Urgency      *float64 `json:"urgency,omitempty"`
	Importance   *float64 `json:"importance,omitempty"`
	Effort       *float64 `json:"effort,omitempty"`
	Dependencies *float64 `json:"dependencies,omitempty"`
}

// NewWeights applies the non-nil fields of config on top of base.
func NewWeights(base Weights, config WeightsConfig) Weights {
	w := base
	if config.Urgency != nil {
		w.Urgency = *config.Urgency
	}
	if config.Importance != nil {
		w.Importance = *config.Importance
	}
	if config.Effort != nil {
		w.Effort = *config.Effort
	}
	if config.Dependencies != nil {
		w.Dependencies = *config.Dependencies
	}
	return w
}

// IsEmpty reports whether the config overrides nothing.
func (c WeightsConfig) IsEmpty() bool {
	return c.Urgency == nil && c.Importance == nil && c.Effort == nil && c.Dependencies == nil
}
