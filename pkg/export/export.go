package export

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/kilianp07/crashlens/core/model"
)

// Formats accepted by Write.
const (
	FormatJSON  = "json"
	FormatText  = "text"
	FormatChart = "html"
)

// Write renders rep in the given format.
func Write(w io.Writer, format string, rep model.Report) error {
	switch strings.ToLower(format) {
	case FormatJSON:
		return WriteJSON(w, rep)
	case FormatText:
		return WriteText(w, rep)
	case FormatChart:
		return WriteChartHTML(w, rep)
	default:
		return fmt.Errorf("unsupported format %q", format)
	}
}

// WriteJSON writes the report preview as indented JSON.
func WriteJSON(w io.Writer, rep model.Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(rep)
}

// WriteResultJSON writes a single score_scenario result.
func WriteResultJSON(w io.Writer, res model.Result) error {
	return json.NewEncoder(w).Encode(res)
}

// WriteText writes the report as sectioned tables.
func WriteText(w io.Writer, rep model.Report) error {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleLight)
	tw.SetTitle("%s - Traffic Accident Report", rep.App)
	tw.AppendHeader(table.Row{"Field", "Value"})

	acc := rep.Accident
	section(tw, "Accident Details",
		"Date", acc.Date,
		"Time", acc.Time,
		"Road Type", acc.RoadType,
		"Intersection Type", acc.Intersection,
		"Location", acc.Location,
		"Notes", acc.Notes,
	)
	for i, p := range rep.Parties {
		section(tw, fmt.Sprintf("Party %d", i+1),
			"Name", p.Name,
			"ID", p.ID,
			"Phone", p.Phone,
			"Role", string(p.Role),
			"Vehicle", p.Vehicle,
			"Plate", p.Plate,
			"Insurance", p.Insurance,
			"Damage Notes", p.DamageNotes,
			"Statement", p.Statement,
		)
	}
	an := rep.Analysis
	res := model.Result{Distribution: an.Probs, Best: an.Best}
	section(tw, "Scenario Analysis",
		"Intersection Type", an.Intersection,
		"Hour", an.Hour,
		"Vehicle 1 Speed (km/h)", an.V1Speed,
		"Vehicle 1 Direction", an.V1Direction,
		"Vehicle 2 Speed (km/h)", an.V2Speed,
		"Vehicle 2 Direction", an.V2Direction,
		"Scenario A Probability", fmt.Sprintf("%.2f", an.Probs.A),
		"Scenario B Probability", fmt.Sprintf("%.2f", an.Probs.B),
		"Scenario C Probability", fmt.Sprintf("%.2f", an.Probs.C),
		"Most Likely Scenario", res.Label(),
	)
	tw.AppendFooter(table.Row{"Generated at", rep.GeneratedAt.Format("2006-01-02T15:04:05")})

	_, err := io.WriteString(w, tw.Render()+"\n")
	return err
}

func section(tw table.Writer, title string, kv ...any) {
	tw.AppendRow(table.Row{strings.ToUpper(title), ""})
	for i := 0; i+1 < len(kv); i += 2 {
		tw.AppendRow(table.Row{kv[i], kv[i+1]})
	}
	tw.AppendSeparator()
}

// WriteChartHTML renders the scenario distribution as a bar chart page.
func WriteChartHTML(w io.Writer, rep model.Report) error {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    "Scenario Probability Distribution",
			Subtitle: "Most likely: " + model.Result{Distribution: rep.Analysis.Probs, Best: rep.Analysis.Best}.Label(),
		}),
	)
	labels := make([]string, 0, 3)
	items := make([]opts.BarData, 0, 3)
	for _, s := range model.Scenarios() {
		labels = append(labels, string(s))
		items = append(items, opts.BarData{Value: rep.Analysis.Probs.Get(s)})
	}
	bar.SetXAxis(labels).AddSeries("probability", items)
	return bar.Render(w)
}
