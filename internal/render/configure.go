package render

// Configure builds a renderer for the named preset, applying palette
// overrides from the TOML file at stylesPath when it is non-empty.
func Configure(preset, stylesPath string) (*Renderer, error) {
	p, err := LookupPreset(preset)
	if err != nil {
		return nil, err
	}
	opts := []Option{WithPreset(p)}

	if stylesPath != "" {
		styles, err := LoadStyleConfig(stylesPath)
		if err != nil {
			return nil, err
		}
		opts = append(opts, WithStyleConfig(styles))
	}

	return New(opts...), nil
}
