package ambari

// Service states as reported by Ambari.
const (
	StateStarted   = "STARTED"
	StateInstalled = "INSTALLED"
)

// Blueprint is a stack blueprint with its host groups.
type Blueprint struct {
	Name         string      `json:"name"`
	StackName    string      `json:"stack_name"`
	StackVersion string      `json:"stack_version"`
	HostGroups   []HostGroup `json:"host_groups"`
}

// HostGroup is a named role bucket of a blueprint.
type HostGroup struct {
	Name        string   `json:"name"`
	Cardinality string   `json:"cardinality,omitempty"`
	Components  []string `json:"components"`
}

// BlueprintSummary is an entry of the blueprint listing.
type BlueprintSummary struct {
	Name         string
	StackName    string
	StackVersion string
}

// Stack returns "<name>-<version>", e.g. "HDP-2.1".
func (b BlueprintSummary) Stack() string {
	if b.StackVersion == "" {
		return b.StackName
	}
	return b.StackName + "-" + b.StackVersion
}

// Wire formats.

type blueprintInfo struct {
	BlueprintName string `json:"blueprint_name"`
	StackName     string `json:"stack_name"`
	StackVersion  string `json:"stack_version"`
}

type componentRef struct {
	Name string `json:"name"`
}

type blueprintResponse struct {
	Blueprints blueprintInfo `json:"Blueprints"`
	HostGroups []struct {
		Name        string         `json:"name"`
		Cardinality string         `json:"cardinality"`
		Components  []componentRef `json:"components"`
	} `json:"host_groups"`
}

type blueprintList struct {
	Items []struct {
		Blueprints blueprintInfo `json:"Blueprints"`
	} `json:"items"`
}

type hostList struct {
	Items []struct {
		Hosts struct {
			HostName   string `json:"host_name"`
			HostStatus string `json:"host_status"`
		} `json:"Hosts"`
	} `json:"items"`
}

type clusterList struct {
	Items []struct {
		Clusters struct {
			ClusterName string `json:"cluster_name"`
		} `json:"Clusters"`
	} `json:"items"`
}

type hostRef struct {
	FQDN string `json:"fqdn"`
}

type hostGroupAssignment struct {
	Name  string    `json:"name"`
	Hosts []hostRef `json:"hosts"`
}

type createClusterRequest struct {
	Blueprint  string                `json:"blueprint"`
	HostGroups []hostGroupAssignment `json:"host_groups"`
}

type serviceInfo struct {
	ServiceName string `json:"service_name"`
	State       string `json:"state"`
}

type serviceList struct {
	Items []struct {
		ServiceInfo serviceInfo `json:"ServiceInfo"`
		Components  []struct {
			ServiceComponentInfo struct {
				ComponentName string `json:"component_name"`
				State         string `json:"state"`
			} `json:"ServiceComponentInfo"`
		} `json:"components"`
	} `json:"items"`
}

type serviceStateRequest struct {
	RequestInfo struct {
		Context string `json:"context"`
	} `json:"RequestInfo"`
	Body struct {
		ServiceInfo struct {
			State string `json:"state"`
		} `json:"ServiceInfo"`
	} `json:"Body"`
}

type requestTasks struct {
	Tasks []struct {
		Tasks struct {
			ID            int64  `json:"id"`
			CommandDetail string `json:"command_detail"`
			Status        string `json:"status"`
		} `json:"Tasks"`
	} `json:"tasks"`
}

type errorBody struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}
