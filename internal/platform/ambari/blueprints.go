package ambari

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"sort"
)

// Blueprints lists the blueprints registered on the server, sorted by name.
func (c *Client) Blueprints(ctx context.Context) ([]BlueprintSummary, error) {
	var list blueprintList
	q := url.Values{"fields": {"Blueprints/stack_name,Blueprints/stack_version"}}
	if err := c.do(ctx, http.MethodGet, "/blueprints", q, nil, &list); err != nil {
		return nil, err
	}

	out := make([]BlueprintSummary, 0, len(list.Items))
	for _, item := range list.Items {
		out = append(out, BlueprintSummary{
			Name:         item.Blueprints.BlueprintName,
			StackName:    item.Blueprints.StackName,
			StackVersion: item.Blueprints.StackVersion,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// Blueprint fetches a single blueprint.
func (c *Client) Blueprint(ctx context.Context, id string) (*Blueprint, error) {
	var resp blueprintResponse
	if err := c.do(ctx, http.MethodGet, "/blueprints/"+url.PathEscape(id), nil, nil, &resp); err != nil {
		return nil, err
	}

	bp := &Blueprint{
		Name:         resp.Blueprints.BlueprintName,
		StackName:    resp.Blueprints.StackName,
		StackVersion: resp.Blueprints.StackVersion,
		HostGroups:   make([]HostGroup, 0, len(resp.HostGroups)),
	}
	if bp.Name == "" {
		bp.Name = id
	}
	for _, hg := range resp.HostGroups {
		group := HostGroup{Name: hg.Name, Cardinality: hg.Cardinality}
		for _, comp := range hg.Components {
			group.Components = append(group.Components, comp.Name)
		}
		bp.HostGroups = append(bp.HostGroups, group)
	}
	return bp, nil
}

// BlueprintExists reports whether a blueprint with the given id is registered.
// A 404 is a plain "no"; any other failure is returned.
func (c *Client) BlueprintExists(ctx context.Context, id string) (bool, error) {
	err := c.do(ctx, http.MethodGet, "/blueprints/"+url.PathEscape(id), nil, nil, nil)
	if err == nil {
		return true, nil
	}
	if IsNotFound(err) {
		return false, nil
	}
	return false, err
}

// BlueprintTopology returns host group name -> component names.
func (c *Client) BlueprintTopology(ctx context.Context, id string) (map[string][]string, error) {
	bp, err := c.Blueprint(ctx, id)
	if err != nil {
		return nil, err
	}

	topology := make(map[string][]string, len(bp.HostGroups))
	for _, hg := range bp.HostGroups {
		topology[hg.Name] = append([]string(nil), hg.Components...)
	}
	return topology, nil
}

// HostGroupTemplate returns the blueprint's host groups, each with an empty
// host list, ready to receive assignments.
func (c *Client) HostGroupTemplate(ctx context.Context, id string) (map[string][]string, error) {
	bp, err := c.Blueprint(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch host groups of %s: %w", id, err)
	}

	template := make(map[string][]string, len(bp.HostGroups))
	for _, hg := range bp.HostGroups {
		template[hg.Name] = []string{}
	}
	return template, nil
}
