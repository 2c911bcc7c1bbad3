package kleene

// Config controls compilation behavior.
type Config struct {
	disablePrefilter bool
	forceRich        bool
}

// DefaultConfig returns the zero-value Config: prefilters enabled, the
// table-driven poor interpreter used whenever the compiled pattern is
// char-only.
func DefaultConfig() Config {
	return Config{}
}

// Option adjusts a Config.
type Option func(*Config)

// WithoutPrefilter disables the literal/Aho-Corasick prefilter, always
// running the interpreter from every offset in turn. Useful for
// benchmarking or ruling out prefilter bugs.
func WithoutPrefilter() Option {
	return func(c *Config) { c.disablePrefilter = true }
}

// WithForceRich always uses the backtracking rich interpreter, even
// when the compiled pattern is char-only and poorvm could be used.
func WithForceRich() Option {
	return func(c *Config) { c.forceRich = true }
}
