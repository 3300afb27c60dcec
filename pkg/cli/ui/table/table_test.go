package table_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gitopsware/gitopsctl/pkg/cli/ui/table"
)

func TestRender(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer

	table.Render(&out, []string{"App", "Image", "Tag"}, [][]string{
		{"my-app", "registry.example.com/my-app", "1.3.0"},
		{"other", "registry.example.com/other", "2.0.0"},
	})

	want := `╭────────┬─────────────────────────────┬───────╮
│ App    │ Image                       │ Tag   │
├────────┼─────────────────────────────┼───────┤
│ my-app │ registry.example.com/my-app │ 1.3.0 │
│ other  │ registry.example.com/other  │ 2.0.0 │
╰────────┴─────────────────────────────┴───────╯` + "\n"

	assert.Equal(t, want, out.String())
}

func TestRenderEmptyRows(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer

	table.Render(&out, []string{"Filename", "Folder"}, nil)

	assert.Contains(t, out.String(), "Filename")
	assert.Contains(t, out.String(), "Folder")
}
