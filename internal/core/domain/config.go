package domain

// SiteConfig is the resolved configuration of a site.
type SiteConfig struct {
	// Root is the directory holding quill.yaml.
	Root string
	// SrcDir is the absolute source directory. Empty disables dependency tracking.
	SrcDir string
	// OutDir is the absolute output directory.
	OutDir string
	// CacheDir is the absolute directory holding manifest.json.
	CacheDir string
	// ISG is nil when the isg block is absent.
	ISG *ISGConfig
}

// ISGEnabled reports whether incremental generation is switched on.
func (c *SiteConfig) ISGEnabled() bool {
	return c != nil && c.ISG != nil && c.ISG.Enabled
}

// ISGConfig configures the incremental static generation cache.
// Numeric fields are pointers so the validator can tell "unset" from zero.
type ISGConfig struct {
	Enabled       bool
	TTLSeconds    *int
	MaxAgeCapDays *int
	Aging         []*AgingRule
}

// AgingRule is one TTL bucket: content younger than UntilDays days gets TTLSeconds.
type AgingRule struct {
	UntilDays  *int
	TTLSeconds *int
}

// NewAgingRule returns a complete aging rule.
func NewAgingRule(untilDays, ttlSeconds int) *AgingRule {
	return &AgingRule{UntilDays: &untilDays, TTLSeconds: &ttlSeconds}
}

func (r *AgingRule) complete() bool {
	return r != nil && r.UntilDays != nil && r.TTLSeconds != nil
}
