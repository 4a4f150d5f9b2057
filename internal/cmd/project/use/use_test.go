package use

import (
	"bytes"
	"testing"

	"github.com/google/shlex"
	"github.com/schmitthub/nvmd/internal/cmdutil"
	"github.com/stretchr/testify/require"
)

func TestNewCmdUse(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantOpts UseOptions
		wantErr  bool
	}{
		{
			name:     "explicit version",
			input:    "app 20.0.0",
			wantOpts: UseOptions{Name: "app", Version: "20.0.0"},
		},
		{
			name:     "group flag",
			input:    "app --group lts",
			wantOpts: UseOptions{Name: "app", Group: "lts"},
		},
		{
			name:     "group shorthand",
			input:    "app -g lts",
			wantOpts: UseOptions{Name: "app", Group: "lts"},
		},
		{
			name:    "neither version nor group",
			input:   "app",
			wantErr: true,
		},
		{
			name:    "both version and group",
			input:   "app 20.0.0 --group lts",
			wantErr: true,
		},
		{
			name:    "no arguments",
			input:   "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := &cmdutil.Factory{}

			var gotOpts *UseOptions
			cmd := NewCmdUse(f, func(opts *UseOptions) error {
				gotOpts = opts
				return nil
			})

			argv, err := shlex.Split(tt.input)
			require.NoError(t, err)
			cmd.SetArgs(argv)
			cmd.SetIn(&bytes.Buffer{})
			cmd.SetOut(&bytes.Buffer{})
			cmd.SetErr(&bytes.Buffer{})

			_, err = cmd.ExecuteC()
			if tt.wantErr {
				require.Error(t, err)
				return
			}

			require.NoError(t, err)
			require.NotNil(t, gotOpts)
			require.Equal(t, tt.wantOpts.Name, gotOpts.Name)
			require.Equal(t, tt.wantOpts.Version, gotOpts.Version)
			require.Equal(t, tt.wantOpts.Group, gotOpts.Group)
		})
	}
}

func TestCmdUse_Properties(t *testing.T) {
	f := &cmdutil.Factory{}
	cmd := NewCmdUse(f, nil)

	require.Equal(t, "use <name> [<version>]", cmd.Use)
	require.NotEmpty(t, cmd.Short)
	require.NotEmpty(t, cmd.Long)
	require.NotEmpty(t, cmd.Example)
	require.NotNil(t, cmd.RunE)
	require.NotNil(t, cmd.Flags().Lookup("group"))
}
