package version

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/genctl/internal/appcontext"
)

func TestVersionCommand(t *testing.T) {
	app := &appcontext.Mock{VersionFunc: func() string { return "1.2.3" }}
	cmd := NewCommand(app)

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{})
	require.NoError(t, cmd.Execute())

	assert.Contains(t, out.String(), "genctl version 1.2.3\n")
	assert.Contains(t, out.String(), "commit: test\n")
}
