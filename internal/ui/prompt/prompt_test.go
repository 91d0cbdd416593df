package prompt

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssignmentFields(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		in         Assignment
		hosts      []string
		groups     []string
		wantFields int
		wantErr    error
	}{
		{name: "both given", in: Assignment{Host: "h", Group: "g"}, wantFields: 0},
		{name: "host missing", in: Assignment{Group: "g"}, hosts: []string{"h1"}, wantFields: 1},
		{name: "group missing", in: Assignment{Host: "h"}, groups: []string{"g1"}, wantFields: 1},
		{name: "both missing", hosts: []string{"h1"}, groups: []string{"g1"}, wantFields: 2},
		{name: "no hosts", groups: []string{"g1"}, wantErr: errNoHosts},
		{name: "no groups", in: Assignment{Host: "h"}, wantErr: errNoGroups},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			a := tt.in
			fields, err := assignmentFields(&a, tt.hosts, tt.groups)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Len(t, fields, tt.wantFields)
		})
	}
}

func TestAskAssignment_NothingToAsk(t *testing.T) {
	t.Parallel()
	a := &Assignment{Host: "h", Group: "g"}

	require.NoError(t, AskAssignment(context.Background(), a, nil, nil))
	assert.Equal(t, Assignment{Host: "h", Group: "g"}, *a)
}
