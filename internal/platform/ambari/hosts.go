package ambari

import (
	"context"
	"net/http"
	"net/url"
	"slices"

	"github.com/samber/lo"
)

// Hosts returns registered host name -> host status.
func (c *Client) Hosts(ctx context.Context) (map[string]string, error) {
	var list hostList
	q := url.Values{"fields": {"Hosts/host_status"}}
	if err := c.do(ctx, http.MethodGet, "/hosts", q, nil, &list); err != nil {
		return nil, err
	}

	hosts := make(map[string]string, len(list.Items))
	for _, item := range list.Items {
		hosts[item.Hosts.HostName] = item.Hosts.HostStatus
	}
	return hosts, nil
}

// HostNames returns the sorted names of all registered hosts.
func (c *Client) HostNames(ctx context.Context) ([]string, error) {
	hosts, err := c.Hosts(ctx)
	if err != nil {
		return nil, err
	}
	names := lo.Keys(hosts)
	slices.Sort(names)
	return names, nil
}
