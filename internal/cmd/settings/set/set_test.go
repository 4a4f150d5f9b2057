package set

import (
	"bytes"
	"os"
	"testing"

	"github.com/google/shlex"
	"github.com/schmitthub/nvmd/internal/cmdutil"
	"github.com/schmitthub/nvmd/internal/config"
	"github.com/schmitthub/nvmd/internal/iostreams"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCmdSet(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantOpts SetOptions
		wantErr  bool
	}{
		{
			name:     "mirror",
			input:    "--mirror https://npmmirror.com/mirrors/node",
			wantOpts: SetOptions{Mirror: "https://npmmirror.com/mirrors/node"},
		},
		{
			name:     "proxy",
			input:    "--proxy http://127.0.0.1:7890",
			wantOpts: SetOptions{ProxyAddress: "http://127.0.0.1:7890"},
		},
		{
			name:     "no-proxy explicit false",
			input:    "--no-proxy=false",
			wantOpts: SetOptions{NoProxy: false, NoProxySet: true},
		},
		{
			name:    "no flags",
			input:   "",
			wantErr: true,
		},
		{
			name:    "proxy and proxy-off conflict",
			input:   "--proxy http://127.0.0.1:7890 --proxy-off",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := &cmdutil.Factory{}

			var gotOpts *SetOptions
			cmd := NewCmdSet(f, func(opts *SetOptions) error {
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
			require.Equal(t, tt.wantOpts.Mirror, gotOpts.Mirror)
			require.Equal(t, tt.wantOpts.ProxyAddress, gotOpts.ProxyAddress)
			require.Equal(t, tt.wantOpts.NoProxySet, gotOpts.NoProxySet)
		})
	}
}

func testSettingsStore(t *testing.T) *config.Store[*config.Settings] {
	t.Helper()
	cfg := config.NewAt(t.TempDir())
	store, err := cfg.Settings()
	require.NoError(t, err)
	return store
}

func TestSetRun_PersistsChanges(t *testing.T) {
	store := testSettingsStore(t)
	ios, out, _ := iostreams.Test()

	opts := &SetOptions{
		IOStreams: ios,
		Settings: func() (*config.Store[*config.Settings], error) {
			return store, nil
		},
		Mirror: "https://npmmirror.com/mirrors/node",
	}

	require.NoError(t, setRun(opts))
	assert.Contains(t, out.String(), "Settings saved")

	data, err := os.ReadFile(store.Path())
	require.NoError(t, err)
	assert.Contains(t, string(data), "npmmirror.com")
	assert.Equal(t, "https://npmmirror.com/mirrors/node", store.Data().Mirror)
}

func TestSetRun_InvalidSettingsRollBack(t *testing.T) {
	store := testSettingsStore(t)
	ios, _, _ := iostreams.Test()

	before := store.Latest().Mirror

	opts := &SetOptions{
		IOStreams: ios,
		Settings: func() (*config.Store[*config.Settings], error) {
			return store, nil
		},
		// Enabled proxy with a blank address fails validation.
		ProxyAddress: " ",
	}

	err := setRun(opts)
	require.Error(t, err)

	// The draft is back to its pre-call state and nothing hit disk.
	assert.Equal(t, before, store.Latest().Mirror)
	assert.Nil(t, store.Latest().Proxy)
	_, statErr := os.Stat(store.Path())
	assert.True(t, os.IsNotExist(statErr))
}
