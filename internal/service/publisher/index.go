package publisher

import (
	"bytes"
	"text/template"
)

var indexTmpl = template.Must(template.New("index").Parse(`# Vocabulary Index

Total words: {{.Total}}

## Words by Letter

{{range .Groups}}- **{{.Label}}**: {{.Count}} words ([{{.File}}.json]({{.File}}.json))
{{end}}`))

// RenderIndex renders the INDEX.md document for the given groups.
func RenderIndex(groups []Group) ([]byte, error) {
	total := 0
	for _, g := range groups {
		total += len(g.Entries)
	}

	var buf bytes.Buffer
	err := indexTmpl.Execute(&buf, struct {
		Total  int
		Groups []GroupSummary
	}{total, Summary(groups)})
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
