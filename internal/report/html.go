// =============================================================================
// PWD Works Red Flag Analyzer - HTML Report
// =============================================================================

package report

import (
	"html/template"
	"os"

	"github.com/pwdaudit/redflag/internal/types"
)

var htmlTemplate = template.Must(template.New("report").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>PWD Works Red Flag Analysis</title>
<style>
body { font-family: Arial, sans-serif; margin: 2em; color: #222; }
h1 { color: #1f3864; }
table { border-collapse: collapse; width: 100%; margin-bottom: 2em; }
th, td { border: 1px solid #ccc; padding: 6px 10px; text-align: left; }
th { background: #4472c4; color: #fff; }
tr.red td { background: #ffc7ce; color: #9c0006; }
tr.green td { background: #c6efce; color: #006100; }
.severity-HIGH { color: #9c0006; font-weight: bold; }
.severity-MEDIUM { color: #9c6500; font-weight: bold; }
.severity-LOW { color: #006100; }
</style>
</head>
<body>
<h1>PWD Works Red Flag Analysis</h1>
<p>Generated: {{.Timestamp}}</p>

<h2>Summary</h2>
<table>
<tr><th>Total Records</th><td>{{.TotalRecords}}</td></tr>
<tr><th>Red Flagged Records</th><td>{{len .RedFlagged}}</td></tr>
<tr><th>Green Flagged Records</th><td>{{len .GreenFlagged}}</td></tr>
</table>

<h2>Findings by Flag Type</h2>
<table>
<tr><th>Flag Type</th><th>Findings</th></tr>
{{range $name, $count := .FlagSummary.ByFlagType}}<tr><td>{{$name}}</td><td>{{$count}}</td></tr>
{{end}}</table>

<h2>Red Flagged Entries</h2>
<table>
<tr><th>Row</th><th>Budget Item No</th><th>Name of Work</th><th>Flag</th><th>Severity</th><th>Description</th></tr>
{{range .RedFlagged}}{{$e := .}}{{range .Flags}}<tr class="red">
<td>{{$e.RecordIndex}}</td><td>{{$e.BudgetItemNo}}</td><td>{{$e.NameOfWork}}</td>
<td>{{.FlagName}}</td><td class="severity-{{.Severity}}">{{.Severity}}</td><td>{{.Description}}</td>
</tr>
{{end}}{{end}}</table>

<h2>Green Flagged Entries</h2>
<table>
<tr><th>Row</th><th>Budget Item No</th><th>Name of Work</th></tr>
{{range .GreenFlagged}}<tr class="green">
<td>{{.RecordIndex}}</td><td>{{.BudgetItemNo}}</td><td>{{.NameOfWork}}</td>
</tr>
{{end}}</table>
</body>
</html>
`))

func writeHTML(result *types.AnalysisResult, path string) error {
	out, err := os.Create(path)
	if err != nil {
		return err
	}
	defer out.Close()
	return htmlTemplate.Execute(out, result)
}
