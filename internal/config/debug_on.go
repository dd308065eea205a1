//go:build debug

package config

// Debug reports whether the binary was built with the debug tag.
const Debug = true
