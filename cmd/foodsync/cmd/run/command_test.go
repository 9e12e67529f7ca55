package run

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/foodsync/internal/appcontext"
	"github.com/agentstation/foodsync/internal/pipeline"
	"github.com/agentstation/foodsync/pkg/articles"
	"github.com/agentstation/foodsync/pkg/articles/csvcodec"
)

func setup(t *testing.T, format string) (*appcontext.Mock, string) {
	t.Helper()
	root := t.TempDir()

	input := filepath.Join(root, "prices.csv")
	f, err := os.Create(input)
	require.NoError(t, err)
	require.NoError(t, csvcodec.Write(f, []articles.Article{
		articles.New("1", "Hafer", "1 kg", decimal.NewFromInt(2)),
		articles.New("2", "Hafer", "1 kg", decimal.NewFromInt(3)),
	}))
	require.NoError(t, f.Close())

	mock := &appcontext.Mock{
		RunOptionsFunc: func(supplier string) *pipeline.Options {
			return pipeline.Defaults().Apply(
				pipeline.WithSupplier(supplier, 0),
				pipeline.WithOutputDir(filepath.Join(root, "output")),
				pipeline.WithLedgerPath(filepath.Join(root, "config.json")),
			)
		},
		OutputFormatFunc: func() string { return format },
	}
	return mock, root
}

func TestRunCommand(t *testing.T) {
	mock, root := setup(t, "table")
	messageFile := filepath.Join(root, "message.txt")

	cmd := NewCommand(mock)
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs([]string{"Bio", filepath.Join(root, "prices.csv"), "--xlsx", "--message-file", messageFile})

	require.NoError(t, cmd.Execute())

	assert.Contains(t, stdout.String(), "Umbenannte Artikel")
	assert.Contains(t, stderr.String(), "2 articles exported")

	message, err := os.ReadFile(messageFile)
	require.NoError(t, err)
	assert.Contains(t, stdout.String(), string(message))

	matches, err := filepath.Glob(filepath.Join(root, "output", "*", "Bio", "Bio*_1.*"))
	require.NoError(t, err)
	assert.Len(t, matches, 2)
}

func TestRunCommandJSON(t *testing.T) {
	mock, root := setup(t, "json")

	cmd := NewCommand(mock)
	var stdout bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"Bio", filepath.Join(root, "prices.csv")})

	require.NoError(t, cmd.Execute())

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &decoded))
	assert.Equal(t, "Bio", decoded["supplier"])
	assert.NotEmpty(t, decoded["export_file"])
}

func TestRunCommandMissingInput(t *testing.T) {
	mock, root := setup(t, "table")

	cmd := NewCommand(mock)
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"Bio", filepath.Join(root, "missing.csv")})

	assert.Error(t, cmd.Execute())
}
