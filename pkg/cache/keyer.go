package cache

// Keyer derives cache keys.
type Keyer interface {
	// PlanKey returns the key of a solved plan.
	PlanKey(puzzleHash string, opts PlanKeyOpts) string

	// ArtifactKey returns the key of a rendered plan diagram.
	ArtifactKey(planKey string, opts ArtifactKeyOpts) string
}

// PlanKeyOpts holds the solver settings that change a plan. The expansion
// budget is not part of the key: only conclusive plans are cached, and those
// do not depend on it.
type PlanKeyOpts struct {
	Heuristic string `json:"heuristic"`
}

// ArtifactKeyOpts holds the render settings that change an artifact.
type ArtifactKeyOpts struct {
	Format   string `json:"format"`
	Detailed bool   `json:"detailed"`
	MaxMoves int    `json:"max_moves"`
}

// DefaultKeyer is the standard Keyer.
type DefaultKeyer struct{}

// NewDefaultKeyer returns a DefaultKeyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// PlanKey returns "plan:<sha256>" over the puzzle hash and options.
func (DefaultKeyer) PlanKey(puzzleHash string, opts PlanKeyOpts) string {
	return hashKey("plan", puzzleHash, opts)
}

// ArtifactKey returns "artifact:<sha256>" over the plan key and options.
func (DefaultKeyer) ArtifactKey(planKey string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", planKey, opts)
}

var _ Keyer = DefaultKeyer{}
