package hcloud

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"slices"
	"time"

	"github.com/hetznercloud/hcloud-go/v2/hcloud"
)

// ErrNoToken is returned when no API token is configured.
var ErrNoToken = errors.New("hcloud token is required for the hcloud host source")

// Inventory lists servers of a Hetzner Cloud project.
type Inventory struct {
	client        *hcloud.Client
	labelSelector string
	usePrivateIP  bool
	timeout       time.Duration
}

// Option configures an Inventory.
type Option func(*Inventory)

// WithHCloudClient sets a custom hcloud client (useful for testing).
func WithHCloudClient(hc *hcloud.Client) Option {
	return func(i *Inventory) {
		i.client = hc
	}
}

// WithLabelSelector restricts the inventory to matching servers.
func WithLabelSelector(selector string) Option {
	return func(i *Inventory) {
		i.labelSelector = selector
	}
}

// WithPrivateIP reports servers by their first private IP.
func WithPrivateIP(enabled bool) Option {
	return func(i *Inventory) {
		i.usePrivateIP = enabled
	}
}

// WithRequestTimeout bounds every API request.
func WithRequestTimeout(d time.Duration) Option {
	return func(i *Inventory) {
		i.timeout = d
	}
}

// NewInventory creates an inventory authenticated with token.
func NewInventory(token string, opts ...Option) (*Inventory, error) {
	inv := &Inventory{}
	for _, opt := range opts {
		opt(inv)
	}
	if inv.client == nil {
		if token == "" {
			return nil, ErrNoToken
		}
		clientOpts := []hcloud.ClientOption{
			hcloud.WithToken(token),
			hcloud.WithApplication("blueprintctl", ""),
		}
		if inv.timeout > 0 {
			clientOpts = append(clientOpts, hcloud.WithHTTPClient(&http.Client{Timeout: inv.timeout}))
		}
		inv.client = hcloud.NewClient(clientOpts...)
	}
	return inv, nil
}

// Hosts returns host name -> server status for the matching servers.
func (i *Inventory) Hosts(ctx context.Context) (map[string]string, error) {
	servers, err := i.client.Server.AllWithOpts(ctx, hcloud.ServerListOpts{
		ListOpts: hcloud.ListOpts{LabelSelector: i.labelSelector},
	})
	if err != nil {
		switch {
		case IsUnauthorized(err):
			return nil, fmt.Errorf("hcloud token rejected: %w", err)
		case IsRateLimited(err):
			return nil, fmt.Errorf("hcloud rate limit exceeded, retry later: %w", err)
		}
		return nil, fmt.Errorf("failed to list servers: %w", err)
	}

	hosts := make(map[string]string, len(servers))
	for _, s := range servers {
		name := i.hostName(s)
		if name == "" {
			continue
		}
		hosts[name] = string(s.Status)
	}
	return hosts, nil
}

// HostNames returns the sorted host names of the matching servers.
func (i *Inventory) HostNames(ctx context.Context) ([]string, error) {
	hosts, err := i.Hosts(ctx)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(hosts))
	for name := range hosts {
		names = append(names, name)
	}
	slices.Sort(names)
	return names, nil
}

// hostName returns "" for servers without a private IP in private mode.
func (i *Inventory) hostName(s *hcloud.Server) string {
	if !i.usePrivateIP {
		return s.Name
	}
	for _, pn := range s.PrivateNet {
		if pn.IP != nil {
			return pn.IP.String()
		}
	}
	return ""
}
