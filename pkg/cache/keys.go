package cache

// Keyer derives cache keys for render outputs.
type Keyer interface {
	// ArtifactKey identifies one rendered format of a scene.
	ArtifactKey(sceneHash string, opts ArtifactKeyOpts) string

	// DiagramKey identifies a rendered node tree diagram of a scene.
	DiagramKey(sceneHash string, opts DiagramKeyOpts) string
}

// ArtifactKeyOpts holds every option that changes a rendered artifact.
type ArtifactKeyOpts struct {
	Format  string       `json:"format"`
	Width   float64      `json:"width"`
	Height  float64      `json:"height"`
	Debug   bool         `json:"debug,omitempty"`
	Scale   float64      `json:"scale,omitempty"`
	Resizes [][2]float64 `json:"resizes,omitempty"`
}

// DiagramKeyOpts holds the options of a tree diagram. Width and Height are
// the final container size and only matter for detailed diagrams, which
// print node boxes.
type DiagramKeyOpts struct {
	Format   string  `json:"format"`
	Detailed bool    `json:"detailed,omitempty"`
	Debug    bool    `json:"debug,omitempty"`
	Width    float64 `json:"width,omitempty"`
	Height   float64 `json:"height,omitempty"`
}

// DefaultKeyer hashes the inputs of each key type.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// ArtifactKey returns "artifact:<sha256>".
func (DefaultKeyer) ArtifactKey(sceneHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", sceneHash, opts)
}

// DiagramKey returns "diagram:<sha256>".
func (DefaultKeyer) DiagramKey(sceneHash string, opts DiagramKeyOpts) string {
	return hashKey("diagram", sceneHash, opts)
}
