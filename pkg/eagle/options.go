package eagle

// Option adjusts parse behavior.
type Option func(*config)

type config struct {
	strictNames bool
}

// StrictNames makes duplicate name attributes within one scope a parse error
// instead of the default last-entry-wins behavior.
func StrictNames() Option {
	return func(c *config) {
		c.strictNames = true
	}
}
