package domain

// FileRole classifies what part a file plays in its repository.
type FileRole string

// Known file roles.
const (
	// RoleSource is program source code.
	RoleSource FileRole = "src"

	// RoleTest is test code. Kept apart from RoleSource so tests never
	// crowd the indexed source set.
	RoleTest FileRole = "test"

	// RoleDocs is prose documentation.
	RoleDocs FileRole = "docs"

	// RoleExamples is example or sample code.
	RoleExamples FileRole = "examples"

	// RoleConfig is configuration (YAML, TOML, INI, env files).
	RoleConfig FileRole = "config"

	// RoleBuild is build tooling (Makefiles, package manifests, lockfiles).
	RoleBuild FileRole = "build"

	// RoleInfra is deployment/infrastructure definitions (Docker, Terraform, CI).
	RoleInfra FileRole = "infra"

	// RoleLicense is a license file.
	RoleLicense FileRole = "license"

	// RoleOther is anything unclassified.
	RoleOther FileRole = "other"
)

// IsValid returns true if the role is recognised.
func (r FileRole) IsValid() bool {
	switch r {
	case RoleSource, RoleTest, RoleDocs, RoleExamples, RoleConfig, RoleBuild, RoleInfra, RoleLicense, RoleOther:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (r FileRole) String() string {
	return string(r)
}

// FileMeta describes one repository file as seen at scan time.
type FileMeta struct {
	// Path is the slash-separated path relative to the repository root.
	Path string

	// Size is the file size in bytes.
	Size int64

	// Language is the detected programming language, empty when unknown.
	Language string

	// Role classifies the file (source, docs, build, ...).
	Role FileRole

	// Hash is the sha256 digest of the file content, empty when unhashed.
	Hash string
}

// Manifest is the file listing produced by one repository scan.
type Manifest struct {
	// Root is the absolute path of the scanned repository.
	Root string

	// Files lists every scanned file in walk order.
	Files []FileMeta
}

// FindPath returns the first file whose path matches, or nil.
func (m *Manifest) FindPath(path string) *FileMeta {
	for i := range m.Files {
		if m.Files[i].Path == path {
			return &m.Files[i]
		}
	}
	return nil
}

// HasRole returns true if any file carries the given role.
func (m *Manifest) HasRole(role FileRole) bool {
	for i := range m.Files {
		if m.Files[i].Role == role {
			return true
		}
	}
	return false
}
