package root_test

import (
	"testing"

	"github.com/dp-213/Inso-liquiplanung/cmd/root"

	"github.com/stretchr/testify/assert"
)

func TestRootCommand_Metadata(t *testing.T) {
	assert.Equal(t, "isk-extract", root.Cmd.Use)
	assert.Contains(t, root.Cmd.Short, "ISK bank statements")
	assert.NotNil(t, root.Cmd.Run)
	assert.NotNil(t, root.Cmd.PersistentPreRun)
}

func TestRootCommand_Flags(t *testing.T) {
	root.Init()

	inputFlag := root.Cmd.PersistentFlags().Lookup("input")
	if assert.NotNil(t, inputFlag) {
		assert.Equal(t, "i", inputFlag.Shorthand)
	}

	outputFlag := root.Cmd.PersistentFlags().Lookup("output")
	if assert.NotNil(t, outputFlag) {
		assert.Equal(t, "o", outputFlag.Shorthand)
	}

	csvFlag := root.Cmd.PersistentFlags().Lookup("csv")
	if assert.NotNil(t, csvFlag) {
		assert.Equal(t, "false", csvFlag.DefValue)
	}
}

func TestGetLogrusAdapter(t *testing.T) {
	assert.NotNil(t, root.GetLogrusAdapter())
}
