package ambari

import (
	"context"
	"net/http"
	"net/url"
	"sort"
)

// ActiveClusterName returns the name of the cluster managed by the server,
// or an empty string when there is none.
func (c *Client) ActiveClusterName(ctx context.Context) (string, error) {
	var list clusterList
	if err := c.do(ctx, http.MethodGet, "/clusters", nil, nil, &list); err != nil {
		return "", err
	}
	if len(list.Items) == 0 {
		return "", nil
	}
	return list.Items[0].Clusters.ClusterName, nil
}

// CreateCluster submits a cluster creation request built from a blueprint
// and a host group -> hosts assignment.
func (c *Client) CreateCluster(ctx context.Context, blueprintID, clusterName string, hostGroups map[string][]string) error {
	req := createClusterRequest{
		Blueprint:  blueprintID,
		HostGroups: make([]hostGroupAssignment, 0, len(hostGroups)),
	}

	names := make([]string, 0, len(hostGroups))
	for name := range hostGroups {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		hg := hostGroupAssignment{Name: name, Hosts: []hostRef{}}
		for _, host := range hostGroups[name] {
			hg.Hosts = append(hg.Hosts, hostRef{FQDN: host})
		}
		req.HostGroups = append(req.HostGroups, hg)
	}

	return c.do(ctx, http.MethodPost, "/clusters/"+url.PathEscape(clusterName), nil, req, nil)
}

// DeleteCluster deletes a cluster by name.
func (c *Client) DeleteCluster(ctx context.Context, clusterName string) error {
	return c.do(ctx, http.MethodDelete, "/clusters/"+url.PathEscape(clusterName), nil, nil, nil)
}

// ExportBlueprint returns the blueprint JSON of a running cluster as
// produced by Ambari's format=blueprint export.
func (c *Client) ExportBlueprint(ctx context.Context, clusterName string) ([]byte, error) {
	var raw []byte
	q := url.Values{"format": {"blueprint"}}
	if err := c.do(ctx, http.MethodGet, "/clusters/"+url.PathEscape(clusterName), q, nil, &raw); err != nil {
		return nil, err
	}
	return raw, nil
}
