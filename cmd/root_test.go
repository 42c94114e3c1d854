package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommand_HasSubcommands(t *testing.T) {
	cmds := rootCmd.Commands()

	names := make(map[string]bool)
	for _, c := range cmds {
		names[c.Name()] = true
	}

	expected := []string{"validate", "convert", "stats", "geo"}
	for _, name := range expected {
		assert.True(t, names[name], "expected subcommand %q not found", name)
	}
}

func TestRootCommand_Metadata(t *testing.T) {
	assert.Equal(t, "geokit", rootCmd.Use)
	assert.NotEmpty(t, rootCmd.Short)
	assert.NotEmpty(t, rootCmd.Long)
}

func TestRootCommand_OutputFlag(t *testing.T) {
	flag := rootCmd.PersistentFlags().Lookup("output")
	require.NotNil(t, flag, "root command should have --output flag")
	assert.Equal(t, "json", flag.DefValue)
	assert.Equal(t, "o", flag.Shorthand)
}

func TestGeoCommand_HasSubcommands(t *testing.T) {
	names := make(map[string]bool)
	for _, c := range geoCmd.Commands() {
		names[c.Name()] = true
	}

	expected := []string{"distance", "area", "buffer", "cluster", "contains"}
	for _, name := range expected {
		assert.True(t, names[name], "expected geo subcommand %q not found", name)
	}
}

func TestConvertCommand_Flags(t *testing.T) {
	tests := []struct {
		name string
		def  string
	}{
		{"format", ""},
		{"out", "."},
		{"minify", "false"},
		{"datum", "none"},
	}
	for _, tt := range tests {
		flag := convertCmd.Flags().Lookup(tt.name)
		require.NotNil(t, flag, "convert command should have --%s flag", tt.name)
		assert.Equal(t, tt.def, flag.DefValue, "--%s default", tt.name)
	}
}

func TestGeoBufferCommand_Flags(t *testing.T) {
	flag := geoBufferCmd.Flags().Lookup("segments")
	require.NotNil(t, flag)
	assert.Equal(t, "32", flag.DefValue)

	flag = geoBufferCmd.Flags().Lookup("radius")
	require.NotNil(t, flag)
	assert.Equal(t, "0", flag.DefValue)
}

func TestGeoDistanceCommand_Flags(t *testing.T) {
	flag := geoDistanceCmd.Flags().Lookup("unit")
	require.NotNil(t, flag)
	assert.Equal(t, "km", flag.DefValue)
}
