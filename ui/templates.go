package ui

// pageTemplates holds the HTML pages. They are deliberately plain: the
// interesting output is the rendered report and the SVG plots.
const pageTemplates = `
{{define "index"}}
<!DOCTYPE html>
<html>
<head><title>Simulation runs</title></head>
<body>
<h1>Simulation runs</h1>
{{if .Runs}}
<table border="1" cellpadding="4">
<tr><th>Run</th><th>n</th><th>effect</th><th>noise</th><th>seed</th><th>F</th><th>p</th></tr>
{{range .Runs}}
<tr>
<td><a href="/runs/{{.ID}}">{{.ID}}</a></td>
<td>{{.Input.SampleSize}}</td>
<td>{{.Input.Effect}}</td>
<td>{{.Input.Noise}}</td>
<td>{{.Input.Seed}}</td>
<td>{{printf "%.4f" .FStatistic}}</td>
<td>{{printf "%.4g" .PValue}}</td>
</tr>
{{end}}
</table>
{{else}}
<p>No stored runs yet.</p>
{{end}}
{{if .HasSamples}}<p><a href="/samples">Expression samples</a></p>{{end}}
</body>
</html>
{{end}}

{{define "run"}}
<!DOCTYPE html>
<html>
<head><title>Run {{.RunID}}</title></head>
<body>
{{.Report}}
<h2>Plots</h2>
<img src="/runs/{{.RunID}}/plot/residual.svg" alt="residual view">
<img src="/runs/{{.RunID}}/plot/explained.svg" alt="explained view">
<p><a href="/">Back</a></p>
</body>
</html>
{{end}}

{{define "samples"}}
<!DOCTYPE html>
<html>
<head><title>Expression samples</title></head>
<body>
<h1>Expression samples</h1>
<table border="1" cellpadding="4">
<tr><th>Sample</th><th>Mean</th><th>SD</th><th>Median</th><th>Density</th></tr>
{{range $i, $s := .Summaries}}
<tr>
<td>{{$s.Sample}}</td>
<td>{{printf "%.3f" $s.Mean}}</td>
<td>{{printf "%.3f" $s.StdDev}}</td>
<td>{{printf "%.3f" $s.Median}}</td>
<td><a href="/samples/{{$i}}/density.svg">curve</a></td>
</tr>
{{end}}
</table>
<p><a href="/">Back</a></p>
</body>
</html>
{{end}}
`
