// Package hcloud lists Hetzner Cloud servers as assignable hosts.
//
// When the host source is set to "hcloud", the host pool of a session is
// built from the servers matching a label selector instead of the hosts
// registered with Ambari. Servers are reported by name, or by their first
// private network IP when the Ambari agents register with private addresses.
//
// Configuration comes from the hosts.hcloud section of the config file or
// from the HCLOUD_TOKEN environment variable.
package hcloud
