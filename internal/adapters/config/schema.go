package config

import "gopkg.in/yaml.v3"

// Quillfile represents the structure of the quill.yaml configuration file.
type Quillfile struct {
	SrcDir   string `yaml:"srcDir"`
	OutDir   string `yaml:"outDir"`
	CacheDir string `yaml:"cacheDir"`
	// ISG is decoded by hand so type errors can be reported per field.
	ISG yaml.Node `yaml:"isg"`
}
