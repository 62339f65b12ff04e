package document

// TextStyle is one entry of the document text style catalog.
type TextStyle struct {
	Identifier string `yaml:"id" json:"id"`
	Name       string `yaml:"name" json:"name"`
	Font       string `yaml:"font" json:"font"`
	FontSize   string `yaml:"font_size" json:"font_size"`
	Color      string `yaml:"color" json:"color"`
}

// ColorStyle is one entry of the document color style catalog.
type ColorStyle struct {
	Identifier string `yaml:"id" json:"id"`
	Name       string `yaml:"name" json:"name"`
	Light      string `yaml:"light" json:"light"`
	Dark       string `yaml:"dark" json:"dark"`
}
