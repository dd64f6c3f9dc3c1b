package export

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/crashlens/core/model"
)

func sampleReport() model.Report {
	return model.Report{
		ID:  "r1",
		App: "CrashLens AI",
		Accident: model.AccidentContext{
			Intersection: "Crossroad", Hour: 14, RoadType: "Street", Location: "Signal 3",
		},
		Parties: []model.Party{
			{Name: "Party One", Role: model.RoleDriver, Plate: "ABC 123"},
			{Name: "Party Two", Role: model.RoleOwner},
		},
		Analysis: model.Analysis{
			Intersection: "Crossroad", Hour: 14, V1Speed: 60, V1Direction: "N", V2Speed: 50, V2Direction: "N",
			Probs: model.Distribution{A: 0.41, B: 0.35, C: 0.24}, Best: model.ScenarioA,
		},
		GeneratedAt: time.Date(2024, 5, 2, 14, 30, 0, 0, time.UTC),
	}
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, sampleReport()))

	var got map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "CrashLens AI", got["app"])
	an := got["analysis"].(map[string]any)
	assert.Equal(t, "A", an["best"])
	assert.Equal(t, 0.41, an["probs"].(map[string]any)["A"])
}

func TestWriteText(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteText(&buf, sampleReport()))
	out := buf.String()
	for _, want := range []string{"ACCIDENT DETAILS", "PARTY 2", "Scenario A Probability", "0.41", "A (0.41)", "ABC 123"} {
		assert.Contains(t, out, want)
	}
}

func TestWriteChartHTML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteChartHTML(&buf, sampleReport()))
	assert.True(t, strings.Contains(buf.String(), "Scenario Probability Distribution"))
}

func TestWrite_UnknownFormat(t *testing.T) {
	assert.Error(t, Write(&bytes.Buffer{}, "pdf", sampleReport()))
}

func TestWriteResultJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteResultJSON(&buf, model.NewResult(model.Distribution{A: 0.2, B: 0.5, C: 0.3})))
	assert.JSONEq(t, `{"A":0.2,"B":0.5,"C":0.3,"best":"B"}`, buf.String())
}
