package domain

// MissingDependencyHash stands in for a dependency file that does not exist.
// Any inputs hash containing it differs from one computed over the real file.
const MissingDependencyHash = "missing"

// Fingerprint is everything a page's output depends on, computed fresh on every check.
type Fingerprint struct {
	ContentHash string
	// Deps are the absolute dependency paths, layout first.
	Deps []string
	// DepHashes parallels Deps; an empty string marks a missing file.
	DepHashes  []string
	InputsHash string
}
