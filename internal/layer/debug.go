//go:build emberdebug

package layer

// Debug reports whether layer introspection is compiled in.
const Debug = true
