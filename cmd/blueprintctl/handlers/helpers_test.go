package handlers

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/imamik/blueprintctl/internal/platform/ambari"
	"github.com/imamik/blueprintctl/internal/platform/ambari/ambaritest"
)

func newTestServer(t *testing.T) *ambaritest.Server {
	t.Helper()
	srv := ambaritest.NewServer()
	t.Cleanup(srv.Close)

	srv.Blueprints["single-node"] = ambari.Blueprint{
		Name:         "single-node",
		StackName:    "HDP",
		StackVersion: "2.1",
		HostGroups: []ambari.HostGroup{
			{Name: "host_group_1", Cardinality: "1", Components: []string{"NAMENODE", "DATANODE"}},
		},
	}
	srv.Hosts["node1.example.com"] = "HEALTHY"
	srv.Hosts["node2.example.com"] = "UNHEALTHY"
	return srv
}

// writeConfig writes a config file pointing at srv; extra is appended
// verbatim as YAML.
func writeConfig(t *testing.T, srv *ambaritest.Server, extra string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "blueprintctl.yaml")
	content := fmt.Sprintf("server:\n  url: %s\n  user: %s\n  password: %s\n%s",
		srv.URL, ambaritest.User, ambaritest.Password, extra)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

// bootstrap creates an App for srv and returns the context carrying it
// together with the buffer receiving command output.
func bootstrap(t *testing.T, srv *ambaritest.Server, extra string) (context.Context, *bytes.Buffer) {
	t.Helper()
	ctx, release := NewRuntime(context.Background())
	t.Cleanup(release)

	out := &bytes.Buffer{}
	ctx, err := Bootstrap(ctx, Options{
		ConfigPath: writeConfig(t, srv, extra),
		Out:        out,
		Err:        io.Discard,
	})
	require.NoError(t, err)
	return ctx, out
}

func mustApp(t *testing.T, ctx context.Context) *App {
	t.Helper()
	app, err := appFrom(ctx)
	require.NoError(t, err)
	return app
}
