package main

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestParseApplicationID(t *testing.T) {
	id := uuid.New()

	parsed, err := parseApplicationID(id.String())
	assert.NoError(t, err)
	assert.Equal(t, id, parsed)

	_, err = parseApplicationID("not-a-uuid")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid application id")
}

func TestParseStageArg(t *testing.T) {
	tests := []struct {
		arg     string
		want    int
		wantErr bool
	}{
		{arg: "1", want: 1},
		{arg: "2", want: 2},
		{arg: "3", want: 3},
		{arg: "0", wantErr: true},
		{arg: "4", wantErr: true},
		{arg: "two", wantErr: true},
		{arg: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.arg, func(t *testing.T) {
			got, err := parseStageArg(tt.arg)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRootCommandRegistersSubcommands(t *testing.T) {
	names := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}

	for _, want := range []string{"serve", "status", "rerun", "override", "migrate", "create-hr", "version"} {
		assert.True(t, names[want], "expected subcommand %q to be registered", want)
	}
}
