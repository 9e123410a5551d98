package reelrun

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseContainerLine(t *testing.T) {
	line := `{"ID":"2b17b7d29d3f","Names":"reelrun-my-videos","Image":"ghcr.io/reelrun/pipeline:latest","State":"running","Status":"Up 2 minutes"}`

	info, err := parseContainerLine(line)
	require.NoError(t, err)

	assert.Equal(t, "2b17b7d29d3f", info.ID)
	assert.Equal(t, "reelrun-my-videos", info.Name)
	assert.Equal(t, "running", info.Status)
	assert.Equal(t, "ghcr.io/reelrun/pipeline:latest", info.Image)
	assert.Empty(t, info.Workspace, "workspace is attached by the caller, not parsed")
}

func TestParseContainerLine_Exited(t *testing.T) {
	line := `{"ID":"9a01cf3e11aa","Names":"reelrun-clips","Image":"ghcr.io/reelrun/pipeline:v3","State":"exited","Status":"Exited (0) 3 hours ago"}`

	info, err := parseContainerLine(line)
	require.NoError(t, err)
	assert.Equal(t, "exited", info.Status)
}

func TestParseContainerLine_Invalid(t *testing.T) {
	_, err := parseContainerLine("not json at all")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse docker ps output")
}
