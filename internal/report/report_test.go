package report

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/tensorworks/dxgi-probe/internal/discovery"
)

var sampleOutputs = []discovery.Output{
	{AdapterIndex: 0, OutputIndex: 0, DeviceName: `\\.\DISPLAY1`, Width: 1920, Height: 1080, Primary: true},
	{AdapterIndex: 0, OutputIndex: 1, DeviceName: `\\.\DISPLAY2`, Width: 1280, Height: 1024, Primary: false},
	{AdapterIndex: 1, OutputIndex: 0, DeviceName: `\\.\DISPLAY3`, Width: 2560, Height: 1440, Primary: false},
}

func TestParseFilter(t *testing.T) {
	tests := []struct {
		input    string
		expected OutputFilter
		wantErr  bool
	}{
		{"", AllOutputs, false},
		{"all", AllOutputs, false},
		{"Primary", PrimaryOutputs, false},
		{" secondary ", SecondaryOutputs, false},
		{"none", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			filter, err := ParseFilter(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, filter)
		})
	}
}

func TestFilterApply(t *testing.T) {
	assert.Equal(t, sampleOutputs, AllOutputs.Apply(sampleOutputs))
	assert.Equal(t, sampleOutputs[:1], PrimaryOutputs.Apply(sampleOutputs))
	assert.Equal(t, sampleOutputs[1:], SecondaryOutputs.Apply(sampleOutputs))
	assert.Empty(t, PrimaryOutputs.Apply(nil))
}

func TestParseFormat(t *testing.T) {
	for input, expected := range map[string]Format{
		"":      FormatTable,
		"table": FormatTable,
		"JSON":  FormatJSON,
		"yaml":  FormatYAML,
		"yml":   FormatYAML,
	} {
		format, err := ParseFormat(input)
		require.NoError(t, err)
		assert.Equal(t, expected, format)
	}

	_, err := ParseFormat("cgf")
	assert.Error(t, err)
}

func TestSummarize(t *testing.T) {
	summary := Summarize(sampleOutputs)
	assert.Equal(t, 2, summary.Adapters)
	assert.Equal(t, 3, summary.Outputs)
	assert.Equal(t, 1, summary.Primary)
	assert.Equal(t, map[int]int{0: 2, 1: 1}, summary.OutputsPerAdapter)
	assert.Equal(t, []int{0, 1}, summary.AdapterIndices())

	empty := Summarize(nil)
	assert.Equal(t, 0, empty.Adapters)
	assert.Empty(t, empty.AdapterIndices())
}

func TestWriteTable(t *testing.T) {
	var buffer bytes.Buffer
	require.NoError(t, Write(&buffer, New(sampleOutputs, nil), FormatTable))

	lines := strings.Split(strings.TrimRight(buffer.String(), "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, []string{"ADAPTER", "OUTPUT", "DEVICE", "WIDTH", "HEIGHT", "PRIMARY"}, strings.Fields(lines[0]))
	assert.Equal(t, []string{"0", "0", `\\.\DISPLAY1`, "1920", "1080", "true"}, strings.Fields(lines[1]))
	assert.Equal(t, []string{"1", "0", `\\.\DISPLAY3`, "2560", "1440", "false"}, strings.Fields(lines[3]))
}

func TestWriteJSONUsesRecordFieldNames(t *testing.T) {
	var buffer bytes.Buffer
	host := &Host{Hostname: "render-01", OS: "windows", Platform: "Microsoft Windows 11 Pro", KernelArch: "x86_64"}
	require.NoError(t, Write(&buffer, New(sampleOutputs[:1], host), FormatJSON))

	var decoded struct {
		Host    map[string]string `json:"host"`
		Outputs []json.RawMessage `json:"outputs"`
		Summary Summary           `json:"summary"`
	}
	require.NoError(t, json.Unmarshal(buffer.Bytes(), &decoded))
	assert.Equal(t, "render-01", decoded.Host["hostname"])
	require.Len(t, decoded.Outputs, 1)

	// Field names and order are part of the record's contract
	assert.Equal(t,
		`{"adapter_index":0,"output_index":0,"device_name":"\\\\.\\DISPLAY1","width":1920,"height":1080,"primary":true}`,
		compact(t, decoded.Outputs[0]),
	)
	assert.Equal(t, 1, decoded.Summary.Primary)
}

func TestWriteJSONOmitsMissingHost(t *testing.T) {
	var buffer bytes.Buffer
	require.NoError(t, Write(&buffer, New(nil, nil), FormatJSON))
	assert.NotContains(t, buffer.String(), `"host"`)
	assert.Contains(t, buffer.String(), `"outputs": []`)
}

func TestWriteYAML(t *testing.T) {
	var buffer bytes.Buffer
	require.NoError(t, Write(&buffer, New(sampleOutputs, nil), FormatYAML))

	var decoded struct {
		Outputs []discovery.Output `yaml:"outputs"`
		Summary Summary            `yaml:"summary"`
	}
	require.NoError(t, yaml.Unmarshal(buffer.Bytes(), &decoded))
	assert.Equal(t, sampleOutputs, decoded.Outputs)
	assert.Equal(t, 2, decoded.Summary.Adapters)
	assert.Contains(t, buffer.String(), "adapter_index: 0")
}

func TestWriteMetrics(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dxgi_probe.prom")
	require.NoError(t, WriteMetrics(path, sampleOutputs))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	text := string(content)

	assert.Contains(t, text, "# TYPE dxgi_probe_outputs gauge")
	assert.Contains(t, text, "dxgi_probe_outputs 3")
	assert.Contains(t, text, "dxgi_probe_adapters 2")
	assert.Contains(t, text, `dxgi_probe_output_width_pixels{adapter="1",device="\\\\.\\DISPLAY3",output="0",primary="false"} 2560`)
	assert.Contains(t, text, `dxgi_probe_output_height_pixels{adapter="0",device="\\\\.\\DISPLAY1",output="0",primary="true"} 1080`)
}

func compact(t *testing.T, raw json.RawMessage) string {
	t.Helper()
	var buffer bytes.Buffer
	require.NoError(t, json.Compact(&buffer, raw))
	return buffer.String()
}

func TestCollectHost(t *testing.T) {
	host, err := CollectHost()
	require.NoError(t, err)
	require.NotNil(t, host)
	assert.NotEmpty(t, host.Hostname)
	assert.NotEmpty(t, host.OS)

	// The collected identity is carried in structured reports
	var out bytes.Buffer
	require.NoError(t, Write(&out, New(nil, host), FormatJSON))
	assert.Contains(t, out.String(), `"hostname": "`+host.Hostname+`"`)
}
