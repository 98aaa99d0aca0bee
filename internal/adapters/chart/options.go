package chart

// Option applies a configuration option to the Charter.
type Option func(*Charter)

// WithClickPath sets the endpoint that resolves clicked points to commits.
func WithClickPath(path string) Option {
	return func(c *Charter) {
		if path != "" {
			c.clickPath = path
		}
	}
}

// WithScriptURL sets where standalone pages load Chart.js from.
func WithScriptURL(url string) Option {
	return func(c *Charter) {
		if url != "" {
			c.scriptURL = url
		}
	}
}

// WithStandalone makes Chart emit a complete HTML page instead of a fragment.
func WithStandalone(standalone bool) Option {
	return func(c *Charter) {
		c.standalone = standalone
	}
}

// WithDirectLinks makes clicks open the commit URL embedded in the page
// instead of going through the click endpoint. Pages viewed without a
// server need this.
func WithDirectLinks(direct bool) Option {
	return func(c *Charter) {
		c.directLinks = direct
	}
}
