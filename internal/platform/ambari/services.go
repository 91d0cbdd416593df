package ambari

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

// Services returns service name -> state for a cluster.
func (c *Client) Services(ctx context.Context, clusterName string) (map[string]string, error) {
	var list serviceList
	q := url.Values{"fields": {"ServiceInfo/state"}}
	if err := c.do(ctx, http.MethodGet, servicesPath(clusterName), q, nil, &list); err != nil {
		return nil, err
	}

	services := make(map[string]string, len(list.Items))
	for _, item := range list.Items {
		services[item.ServiceInfo.ServiceName] = item.ServiceInfo.State
	}
	return services, nil
}

// ServiceComponents returns service -> component -> state for a cluster.
func (c *Client) ServiceComponents(ctx context.Context, clusterName string) (map[string]map[string]string, error) {
	var list serviceList
	q := url.Values{"fields": {"components/ServiceComponentInfo/state"}}
	if err := c.do(ctx, http.MethodGet, servicesPath(clusterName), q, nil, &list); err != nil {
		return nil, err
	}

	out := make(map[string]map[string]string, len(list.Items))
	for _, item := range list.Items {
		comps := make(map[string]string, len(item.Components))
		for _, comp := range item.Components {
			comps[comp.ServiceComponentInfo.ComponentName] = comp.ServiceComponentInfo.State
		}
		out[item.ServiceInfo.ServiceName] = comps
	}
	return out, nil
}

// StartAllServices asks Ambari to start every installed service.
func (c *Client) StartAllServices(ctx context.Context, clusterName string) error {
	return c.setAllServicesState(ctx, clusterName, "Start All Services", StateInstalled, StateStarted)
}

// StopAllServices asks Ambari to stop every started service.
func (c *Client) StopAllServices(ctx context.Context, clusterName string) error {
	return c.setAllServicesState(ctx, clusterName, "Stop All Services", StateStarted, StateInstalled)
}

// Tasks returns task -> status of a request.
func (c *Client) Tasks(ctx context.Context, clusterName string, requestID int) (map[string]string, error) {
	var resp requestTasks
	path := fmt.Sprintf("/clusters/%s/requests/%s", url.PathEscape(clusterName), strconv.Itoa(requestID))
	q := url.Values{"fields": {"tasks/Tasks/*"}}
	if err := c.do(ctx, http.MethodGet, path, q, nil, &resp); err != nil {
		return nil, err
	}

	tasks := make(map[string]string, len(resp.Tasks))
	for _, t := range resp.Tasks {
		name := t.Tasks.CommandDetail
		if name == "" {
			name = strconv.FormatInt(t.Tasks.ID, 10)
		}
		tasks[name] = t.Tasks.Status
	}
	return tasks, nil
}

func (c *Client) setAllServicesState(ctx context.Context, clusterName, reqContext, from, to string) error {
	var req serviceStateRequest
	req.RequestInfo.Context = reqContext
	req.Body.ServiceInfo.State = to

	q := url.Values{"ServiceInfo/state": {from}}
	return c.do(ctx, http.MethodPut, servicesPath(clusterName), q, req, nil)
}

func servicesPath(clusterName string) string {
	return "/clusters/" + url.PathEscape(clusterName) + "/services"
}
