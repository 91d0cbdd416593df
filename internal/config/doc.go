// Package config defines the console configuration model and its loaders.
//
// The [Config] struct carries the Ambari endpoint and credentials, the host
// inventory source, the optional blueprint archive and the metrics listener.
// It is assembled by [Load] from built-in defaults, an optional YAML file,
// BLUEPRINTCTL_* environment variables and command-line flags, in that order
// of precedence (flags win).
package config
