package ambari_test

import (
	"context"
	"net/http"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/imamik/blueprintctl/internal/platform/ambari"
	"github.com/imamik/blueprintctl/internal/platform/ambari/ambaritest"
)

var _ = Describe("Client", func() {
	var (
		ctx    context.Context
		server *ambaritest.Server
		client *ambari.Client
	)

	BeforeEach(func() {
		ctx = context.Background()
		server = ambaritest.NewServer()
		DeferCleanup(server.Close)

		server.Blueprints["hdp-small"] = ambari.Blueprint{
			StackName:    "HDP",
			StackVersion: "2.1",
			HostGroups: []ambari.HostGroup{
				{Name: "master", Cardinality: "1", Components: []string{"NAMENODE", "ZOOKEEPER_SERVER"}},
				{Name: "slave", Cardinality: "1+", Components: []string{"DATANODE"}},
			},
		}
		server.Hosts["node1.example.com"] = "HEALTHY"
		server.Hosts["node2.example.com"] = "UNHEALTHY"

		var err error
		client, err = ambari.NewClient(server.URL, ambaritest.User, ambaritest.Password)
		Expect(err).NotTo(HaveOccurred())
	})

	Describe("NewClient", func() {
		It("rejects urls without a host", func() {
			_, err := ambari.NewClient("localhost", "u", "p")
			Expect(err).To(MatchError(ContainSubstring("scheme and host are required")))
		})
	})

	Describe("blueprints", func() {
		It("reports existing blueprints", func() {
			exists, err := client.BlueprintExists(ctx, "hdp-small")
			Expect(err).NotTo(HaveOccurred())
			Expect(exists).To(BeTrue())
		})

		It("treats a 404 as not existing", func() {
			exists, err := client.BlueprintExists(ctx, "missing")
			Expect(err).NotTo(HaveOccurred())
			Expect(exists).To(BeFalse())
		})

		It("returns the topology per host group", func() {
			topology, err := client.BlueprintTopology(ctx, "hdp-small")
			Expect(err).NotTo(HaveOccurred())
			Expect(topology).To(Equal(map[string][]string{
				"master": {"NAMENODE", "ZOOKEEPER_SERVER"},
				"slave":  {"DATANODE"},
			}))
		})

		It("returns an empty host template per host group", func() {
			template, err := client.HostGroupTemplate(ctx, "hdp-small")
			Expect(err).NotTo(HaveOccurred())
			Expect(template).To(HaveLen(2))
			Expect(template["master"]).To(BeEmpty())
			Expect(template).To(HaveKey("slave"))
		})

		It("lists blueprints with their stack", func() {
			list, err := client.Blueprints(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(list).To(HaveLen(1))
			Expect(list[0].Name).To(Equal("hdp-small"))
			Expect(list[0].Stack()).To(Equal("HDP-2.1"))
		})
	})

	Describe("hosts", func() {
		It("returns sorted host names", func() {
			names, err := client.HostNames(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(names).To(Equal([]string{"node1.example.com", "node2.example.com"}))
		})

		It("returns host states", func() {
			hosts, err := client.Hosts(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(hosts).To(HaveKeyWithValue("node2.example.com", "UNHEALTHY"))
		})
	})

	Describe("clusters", func() {
		It("has no active cluster initially", func() {
			name, err := client.ActiveClusterName(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(name).To(BeEmpty())
		})

		It("creates and deletes a cluster", func() {
			err := client.CreateCluster(ctx, "hdp-small", "hdp-small", map[string][]string{
				"master": {"node1.example.com"},
				"slave":  {"node2.example.com"},
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(server.Created).To(HaveKeyWithValue("blueprint", "hdp-small"))

			name, err := client.ActiveClusterName(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(name).To(Equal("hdp-small"))

			Expect(client.DeleteCluster(ctx, "hdp-small")).To(Succeed())
			name, err = client.ActiveClusterName(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(name).To(BeEmpty())
		})

		It("surfaces the server message on failure", func() {
			server.CreateError = "Topology validation failed"
			err := client.CreateCluster(ctx, "hdp-small", "hdp-small", map[string][]string{"master": {}})
			Expect(err).To(MatchError("Topology validation failed"))

			var apiErr *ambari.APIError
			Expect(err).To(BeAssignableToTypeOf(apiErr))
		})

		It("reports a missing cluster on delete as not found", func() {
			err := client.DeleteCluster(ctx, "ghost")
			Expect(ambari.IsNotFound(err)).To(BeTrue())
		})

		It("exports the blueprint of a running cluster", func() {
			server.Cluster = "prod"
			server.Export = []byte(`{"Blueprints":{"stack_name":"HDP"}}`)

			raw, err := client.ExportBlueprint(ctx, "prod")
			Expect(err).NotTo(HaveOccurred())
			Expect(string(raw)).To(ContainSubstring(`"stack_name":"HDP"`))
		})
	})

	Describe("services", func() {
		BeforeEach(func() {
			server.Cluster = "prod"
			server.Services["HDFS"] = ambari.StateStarted
			server.Services["YARN"] = ambari.StateStarted
			server.Components["HDFS"] = map[string]string{"NAMENODE": ambari.StateStarted}
			server.Tasks[1] = map[string]string{"NAMENODE START": "COMPLETED"}
		})

		It("lists services and components", func() {
			services, err := client.Services(ctx, "prod")
			Expect(err).NotTo(HaveOccurred())
			Expect(services).To(HaveKeyWithValue("HDFS", ambari.StateStarted))

			comps, err := client.ServiceComponents(ctx, "prod")
			Expect(err).NotTo(HaveOccurred())
			Expect(comps["HDFS"]).To(HaveKeyWithValue("NAMENODE", ambari.StateStarted))
		})

		It("stops and starts all services", func() {
			Expect(client.StopAllServices(ctx, "prod")).To(Succeed())
			services, err := client.Services(ctx, "prod")
			Expect(err).NotTo(HaveOccurred())
			Expect(services).To(HaveEach(ambari.StateInstalled))

			Expect(client.StartAllServices(ctx, "prod")).To(Succeed())
			services, err = client.Services(ctx, "prod")
			Expect(err).NotTo(HaveOccurred())
			Expect(services).To(HaveEach(ambari.StateStarted))
		})

		It("lists the tasks of a request", func() {
			tasks, err := client.Tasks(ctx, "prod", 1)
			Expect(err).NotTo(HaveOccurred())
			Expect(tasks).To(Equal(map[string]string{"NAMENODE START": "COMPLETED"}))
		})
	})

	Describe("authentication", func() {
		It("returns the server message for bad credentials", func() {
			bad, err := ambari.NewClient(server.URL, "admin", "wrong")
			Expect(err).NotTo(HaveOccurred())

			_, err = bad.Hosts(ctx)
			var apiErr *ambari.APIError
			Expect(err).To(HaveOccurred())
			Expect(err).To(BeAssignableToTypeOf(apiErr))
			Expect(err.(*ambari.APIError).StatusCode).To(Equal(http.StatusForbidden))
		})
	})
})
