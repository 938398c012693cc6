package catalog

// Descriptor names one demo component and where its markup lives.
type Descriptor struct {
	ID          string   `yaml:"id" json:"id"`
	Name        string   `yaml:"name" json:"name"`
	Path        string   `yaml:"path" json:"path"`
	Tags        []string `yaml:"tags,omitempty" json:"tags,omitempty"`
	Description string   `yaml:"description,omitempty" json:"description,omitempty"`
}

// Category is a named, ordered group of descriptors.
type Category struct {
	Name       string       `yaml:"name" json:"name"`
	Components []Descriptor `yaml:"components" json:"components"`
}

// File is the on-disk layout of a catalog file.
type File struct {
	Categories []Category `yaml:"categories" json:"categories"`
}
