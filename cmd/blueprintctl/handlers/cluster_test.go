package handlers

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imamik/blueprintctl/internal/config"
	"github.com/imamik/blueprintctl/internal/shell"
	"github.com/imamik/blueprintctl/internal/ui/prompt"
)

const archiveConfig = `archive:
  endpoint: http://minio.local:9000
  bucket: blueprints
  access_key: key
  secret_key: secret
`

type fakeArchiver struct {
	err     error
	cluster string
	data    []byte
}

func (f *fakeArchiver) Archive(_ context.Context, cluster string, data []byte) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.cluster = cluster
	f.data = data
	return cluster + "/blueprint.json", nil
}

func TestClusterBuildAssignCreate(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t)
	ctx, out := bootstrap(t, srv, "")
	app := mustApp(t, ctx)

	require.NoError(t, ClusterBuild(ctx, "single-node"))
	assert.Contains(t, out.String(), "host_group_1")
	assert.Contains(t, out.String(), "NAMENODE, DATANODE")
	assert.Equal(t, "blueprint:single-node>", app.Session.Prompt())

	out.Reset()
	require.NoError(t, ClusterAssign(ctx, "node1.example.com", "host_group_1"))
	assert.Equal(t, "node1.example.com has been added to host_group_1\n", out.String())

	out.Reset()
	require.NoError(t, ClusterPreview(ctx))
	assert.Contains(t, out.String(), "node1.example.com")

	out.Reset()
	require.NoError(t, ClusterCreate(ctx))
	assert.Equal(t, "Successfully created the cluster\n", out.String())
	assert.True(t, app.Session.IsConnectedToCluster())
	assert.Equal(t, "single-node", app.Session.Cluster())
	assert.Equal(t, "single-node", srv.Cluster)
	assert.Equal(t, "single-node", srv.Created["blueprint"])
	assert.Empty(t, app.Orchestrator.HostGroups())
}

func TestClusterBuild_UnknownBlueprint(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t)
	ctx, out := bootstrap(t, srv, "")

	err := ClusterBuild(ctx, "nope")
	assert.ErrorIs(t, err, shell.ErrReported)
	assert.Equal(t, "Not a valid blueprint id\n", out.String())
	assert.False(t, mustApp(t, ctx).Session.IsFocusOnBlueprint())
}

func TestClusterAssign_Rejected(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t)
	ctx, out := bootstrap(t, srv, "")
	require.NoError(t, ClusterBuild(ctx, "single-node"))

	out.Reset()
	assert.ErrorIs(t, ClusterAssign(ctx, "node1.example.com", "host_group_9"), shell.ErrReported)
	assert.Equal(t, "host_group_9 is not a valid host group\n", out.String())

	out.Reset()
	assert.ErrorIs(t, ClusterAssign(ctx, "stranger", "host_group_1"), shell.ErrReported)
	assert.Equal(t, "stranger is not a known host\n", out.String())

	assert.Equal(t, map[string][]string{"host_group_1": {}}, mustApp(t, ctx).Orchestrator.HostGroups())
}

func TestClusterAssign_MissingFlags(t *testing.T) {
	origTTY := isInteractiveTTY
	origAsk := askAssignment
	defer func() {
		isInteractiveTTY = origTTY
		askAssignment = origAsk
	}()

	srv := newTestServer(t)
	ctx, out := bootstrap(t, srv, "")
	require.NoError(t, ClusterBuild(ctx, "single-node"))

	isInteractiveTTY = func() bool { return false }
	err := ClusterAssign(ctx, "node1.example.com", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--hostGroup")

	var gotHosts, gotGroups []string
	isInteractiveTTY = func() bool { return true }
	askAssignment = func(_ context.Context, a *prompt.Assignment, hosts, groups []string) error {
		gotHosts, gotGroups = hosts, groups
		assert.Equal(t, "node1.example.com", a.Host)
		a.Group = "host_group_1"
		return nil
	}

	out.Reset()
	require.NoError(t, ClusterAssign(ctx, "node1.example.com", ""))
	assert.Equal(t, []string{"node1.example.com", "node2.example.com"}, gotHosts)
	assert.Equal(t, []string{"host_group_1"}, gotGroups)
	assert.Equal(t, "node1.example.com has been added to host_group_1\n", out.String())

	askAssignment = func(context.Context, *prompt.Assignment, []string, []string) error {
		return errors.New("user aborted")
	}
	assert.EqualError(t, ClusterAssign(ctx, "", ""), "user aborted")
}

func TestClusterCreate_RollsBack(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t)
	srv.CreateError = "Topology validation failed"
	ctx, out := bootstrap(t, srv, "")
	app := mustApp(t, ctx)

	require.NoError(t, ClusterBuild(ctx, "single-node"))
	require.NoError(t, ClusterAssign(ctx, "node1.example.com", "host_group_1"))

	out.Reset()
	err := ClusterCreate(ctx)
	assert.ErrorIs(t, err, shell.ErrReported)
	assert.Contains(t, out.String(), "Failed to create the cluster")
	assert.Contains(t, out.String(), "Topology validation failed")
	assert.Contains(t, out.String(), "HOSTGROUP")

	assert.Equal(t, 1, srv.CallCount("DELETE /api/v1/clusters/single-node"))
	assert.False(t, app.Session.IsConnectedToCluster())
	assert.Equal(t, "single-node", app.Session.FocusValue())
	assert.Equal(t, map[string][]string{"host_group_1": {}}, app.Orchestrator.HostGroups())
}

func TestClusterReset(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t)
	ctx, out := bootstrap(t, srv, "")
	require.NoError(t, ClusterBuild(ctx, "single-node"))

	out.Reset()
	require.NoError(t, ClusterReset(ctx))
	assert.Equal(t, "Cluster build has been reset\n", out.String())
	assert.False(t, mustApp(t, ctx).Session.IsFocusOnBlueprint())
	assert.Empty(t, mustApp(t, ctx).Orchestrator.HostGroups())
}

func TestClusterDelete(t *testing.T) {
	t.Parallel()

	t.Run("success disconnects", func(t *testing.T) {
		t.Parallel()
		srv := newTestServer(t)
		srv.Cluster = "c1"
		ctx, out := bootstrap(t, srv, "")

		require.NoError(t, ClusterDelete(ctx, false))
		assert.Equal(t, "Successfully deleted the cluster\n", out.String())
		assert.False(t, mustApp(t, ctx).Session.IsConnectedToCluster())
		assert.Empty(t, srv.Cluster)
	})

	t.Run("remote failure keeps the session", func(t *testing.T) {
		t.Parallel()
		srv := newTestServer(t)
		srv.Cluster = "c1"
		srv.DeleteError = "Cluster is busy"
		ctx, out := bootstrap(t, srv, "")

		assert.ErrorIs(t, ClusterDelete(ctx, false), shell.ErrReported)
		assert.Contains(t, out.String(), "Could not delete the cluster: ")
		assert.Contains(t, out.String(), "Cluster is busy")
		assert.True(t, mustApp(t, ctx).Session.IsConnectedToCluster())
	})

	t.Run("archive not configured", func(t *testing.T) {
		t.Parallel()
		srv := newTestServer(t)
		srv.Cluster = "c1"
		ctx, out := bootstrap(t, srv, "")

		assert.ErrorIs(t, ClusterDelete(ctx, true), shell.ErrReported)
		assert.Contains(t, out.String(), "archive is not configured")
		assert.Equal(t, "c1", srv.Cluster)
	})
}

func TestClusterDelete_Archive(t *testing.T) {
	origArchiver := newArchiver
	defer func() { newArchiver = origArchiver }()

	t.Run("uploads before deleting", func(t *testing.T) {
		archiver := &fakeArchiver{}
		newArchiver = func(cfg config.ArchiveConfig) (Archiver, error) {
			assert.Equal(t, "blueprints", cfg.Bucket)
			return archiver, nil
		}
		srv := newTestServer(t)
		srv.Cluster = "c1"
		srv.Export = []byte(`{"Blueprints":{"stack_name":"HDP"}}`)
		ctx, out := bootstrap(t, srv, archiveConfig)

		require.NoError(t, ClusterDelete(ctx, true))
		assert.Equal(t, "c1", archiver.cluster)
		assert.JSONEq(t, `{"Blueprints":{"stack_name":"HDP"}}`, string(archiver.data))
		assert.Contains(t, out.String(), "Blueprint of c1 archived to blueprints/c1/blueprint.json")
		assert.Contains(t, out.String(), "Successfully deleted the cluster")
		assert.Empty(t, srv.Cluster)
	})

	t.Run("failed upload aborts the delete", func(t *testing.T) {
		newArchiver = func(config.ArchiveConfig) (Archiver, error) {
			return &fakeArchiver{err: errors.New("access denied")}, nil
		}
		srv := newTestServer(t)
		srv.Cluster = "c1"
		srv.Export = []byte(`{}`)
		ctx, out := bootstrap(t, srv, archiveConfig)

		assert.ErrorIs(t, ClusterDelete(ctx, true), shell.ErrReported)
		assert.Contains(t, out.String(), "Could not delete the cluster: failed to archive blueprint: access denied")
		assert.Equal(t, "c1", srv.Cluster)
		assert.Zero(t, srv.CallCount("DELETE /api/v1/clusters/c1"))
	})
}

func TestClusterProvision(t *testing.T) {
	t.Parallel()

	t.Run("selects, assigns and creates", func(t *testing.T) {
		t.Parallel()
		srv := newTestServer(t)
		ctx, out := bootstrap(t, srv, "")

		err := ClusterProvision(ctx, "single-node", []string{"node1.example.com=host_group_1", "node2.example.com=host_group_1"})
		require.NoError(t, err)
		assert.Contains(t, out.String(), "node2.example.com has been added to host_group_1")
		assert.Contains(t, out.String(), "Successfully created the cluster")
		assert.Equal(t, "single-node", srv.Cluster)
	})

	t.Run("malformed assignment", func(t *testing.T) {
		t.Parallel()
		srv := newTestServer(t)
		ctx, _ := bootstrap(t, srv, "")

		err := ClusterProvision(ctx, "single-node", []string{"node1.example.com"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "expected host=group")
		assert.Zero(t, srv.CallCount("GET /api/v1/blueprints/single-node"))
	})

	t.Run("rejected assignment resets the build", func(t *testing.T) {
		t.Parallel()
		srv := newTestServer(t)
		ctx, out := bootstrap(t, srv, "")

		err := ClusterProvision(ctx, "single-node", []string{"node1.example.com=master"})
		assert.ErrorIs(t, err, shell.ErrReported)
		assert.Contains(t, out.String(), "master is not a valid host group")
		assert.False(t, mustApp(t, ctx).Session.IsFocusOnBlueprint())
		assert.Zero(t, srv.CallCount("POST /api/v1/clusters/single-node"))
	})
}

func TestHostCompletions(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t)

	names := HostCompletions(context.Background(), Options{ConfigPath: writeConfig(t, srv, "")})
	assert.Equal(t, []string{"node1.example.com", "node2.example.com"}, names)

	assert.Nil(t, HostCompletions(context.Background(), Options{ConfigPath: "/does/not/exist.yaml"}))

	ctx, _ := bootstrap(t, srv, "")
	require.NoError(t, ClusterBuild(ctx, "single-node"))
	assert.Equal(t, []string{"node1.example.com", "node2.example.com"}, HostCompletions(ctx, Options{}))
}
