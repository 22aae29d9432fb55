package keys

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaultKeyMap_Bindings(t *testing.T) {
	k := DefaultKeyMap()

	tests := []struct {
		name     string
		keys     []string
		expected []string
	}{
		{"NewProject", k.NewProject.Keys(), []string{"n"}},
		{"Move", k.Move.Keys(), []string{"m"}},
		{"Enter", k.Enter.Keys(), []string{"enter"}},
		{"Logs", k.Logs.Keys(), []string{"ctrl+g"}},
		{"ToggleStatus", k.ToggleStatus.Keys(), []string{"w"}},
		{"ToggleCounts", k.ToggleCounts.Keys(), []string{"c"}},
		{"Quit", k.Quit.Keys(), []string{"q", "ctrl+c"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.expected, tt.keys)
		})
	}
}

func TestDefaultKeyMap_HelpTextDefined(t *testing.T) {
	k := DefaultKeyMap()

	for _, row := range k.FullHelp() {
		for _, b := range row {
			help := b.Help()
			require.NotEmpty(t, help.Key, "key help should not be empty")
			require.NotEmpty(t, help.Desc, "description help should not be empty")
		}
	}
}

func TestShortHelp(t *testing.T) {
	k := DefaultKeyMap()
	help := k.ShortHelp()
	require.Len(t, help, 2)
}
