package output

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type row struct {
	ModelID string   `json:"model_id"`
	Efforts []string `json:"efforts,omitempty"`
	Enabled bool
	hidden  string
}

func TestJSONFormatter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewFormatter(FormatJSON).Format(&buf, map[string]any{"a": 1}))
	assert.Equal(t, "{\n  \"a\": 1\n}\n", buf.String())
}

func TestYAMLFormatter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewFormatter(FormatYAML).Format(&buf, map[string]any{"a": []string{"alpha", "beta"}}))
	assert.Equal(t, "a:\n- alpha\n- beta\n", buf.String())
}

func TestTableFormatter(t *testing.T) {
	t.Run("data", func(t *testing.T) {
		var buf bytes.Buffer
		err := NewFormatter(FormatTable).Format(&buf, Data{
			Headers:         []string{"Model", "Shape"},
			Rows:            [][]string{{"gpt-5", "openai-responses"}},
			ColumnAlignment: []Align{AlignLeft, AlignRight},
		})
		require.NoError(t, err)
		assert.Contains(t, buf.String(), "gpt-5")
		assert.Contains(t, buf.String(), "openai-responses")
	})

	t.Run("non-struct falls back to yaml", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, NewFormatter(FormatTable).Format(&buf, map[string]any{"k": "v"}))
		assert.Equal(t, "k: v\n", buf.String())
	})
}

func TestConvertToTableData(t *testing.T) {
	f := &TableFormatter{}

	data := f.convertToTableData([]row{{ModelID: "gpt-5", Efforts: []string{"low", "high"}, Enabled: true, hidden: "x"}})
	require.NotNil(t, data)
	assert.Equal(t, []string{"Model Id", "Efforts", "Enabled"}, data.Headers)
	assert.Equal(t, [][]string{{"gpt-5", "low, high", "true"}}, data.Rows)

	data = f.convertToTableData(&row{ModelID: "o3"})
	require.NotNil(t, data)
	assert.Equal(t, []string{"Property", "Value"}, data.Headers)
	assert.Equal(t, []string{"Model Id", "o3"}, data.Rows[0])

	assert.Nil(t, f.convertToTableData("plain"))
	assert.Nil(t, f.convertToTableData([]row{}))
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"json", FormatJSON, false},
		{"YAML", FormatYAML, false},
		{"table", FormatTable, false},
		{"", "", false},
		{"wide", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDetectFormat(t *testing.T) {
	assert.Equal(t, FormatYAML, DetectFormat("Yaml"))
}

func TestTitle(t *testing.T) {
	assert.Equal(t, "Supports Web Search", Title("supports_web_search"))
}
