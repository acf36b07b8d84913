package manifest

// File names looked up inside package and repository roots.
const (
	ModFile  = "go.mod"
	WorkFile = "go.work"
)

// Manifest is a parsed go.mod.
type Manifest struct {
	Module    string
	GoVersion string // empty when no go directive is present
	Require   []Requirement
}

// Requirement is one require entry. Version is kept verbatim.
type Requirement struct {
	Path    string
	Version string
}

// Workspace is a parsed go.work. Use entries are returned as written;
// deduplication is left to the caller.
type Workspace struct {
	GoVersion string
	Use       []string
}

// Requires reports whether the manifest has a requirement on module.
func (m *Manifest) Requires(module string) bool {
	for _, r := range m.Require {
		if r.Path == module {
			return true
		}
	}
	return false
}
