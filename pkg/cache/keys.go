package cache

// Keyer derives cache keys.
type Keyer interface {
	// ArtifactKey identifies one rendered format of a scene.
	ArtifactKey(sceneHash string, opts ArtifactKeyOpts) string

	// RenderKey identifies a render stored by the service under id.
	RenderKey(id string) string
}

// ArtifactKeyOpts lists everything besides the scene that changes an
// artifact's bytes.
type ArtifactKeyOpts struct {
	Format string `json:"format"`
	Engine string `json:"engine,omitempty"`
	// BaseDir changes how image sizes are probed and which image files a
	// pdf embeds.
	BaseDir    string `json:"base_dir,omitempty"`
	Restricted bool   `json:"restricted,omitempty"`
}

// DefaultKeyer produces unprefixed keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// ArtifactKey returns "artifact:<sha256>" over the scene hash and options.
func (DefaultKeyer) ArtifactKey(sceneHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", sceneHash, opts)
}

// RenderKey returns "render:<id>".
func (DefaultKeyer) RenderKey(id string) string {
	return "render:" + id
}
