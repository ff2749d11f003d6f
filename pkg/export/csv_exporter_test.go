package export

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCSVExporterRender(t *testing.T) {
	exporter := NewCSVExporter()

	payload, err := exporter.Render(Dataset{
		Headers: []string{"student_id", "name"},
		Rows: []map[string]string{
			{"student_id": "2023214001", "name": "张三"},
			{"student_id": "2023214002"},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "student_id,name\n2023214001,张三\n2023214002,\n", string(payload))
}

func TestCSVExporterRequiresHeaders(t *testing.T) {
	exporter := NewCSVExporter()

	_, err := exporter.Render(Dataset{})
	require.Error(t, err)
}

func TestPDFExporterRender(t *testing.T) {
	exporter := NewPDFExporter()

	payload, err := exporter.Render(Dataset{
		Headers: []string{"student_id", "name"},
		Rows:    []map[string]string{{"student_id": "2023214001", "name": "Zhang San"}},
	}, "Recruitment roster 2026")
	require.NoError(t, err)
	assert.True(t, len(payload) > 0)
	assert.Equal(t, "%PDF", string(payload[:4]))
}
