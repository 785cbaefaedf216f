package output

import (
	"bytes"
	_ "embed"
	"html/template"
	"time"

	"github.com/rgehrsitz/rpsim/internal/calendar"
)

// HTMLFormatter produces a standalone HTML page
type HTMLFormatter struct{}

func (h HTMLFormatter) Name() string { return "html" }

//go:embed templates/balance_sheet.html.tmpl
var htmlTemplateSource string

var htmlTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"curr": FormatCurrency,
	"pct":  FormatPercentage,
	"date": func(t time.Time) string { return t.Format(calendar.DateFormat) },
}).Parse(htmlTemplateSource))

func (h HTMLFormatter) Format(r *Report) ([]byte, error) {
	var buf bytes.Buffer
	data := struct {
		*Report
		Exposure    []exposureRow
		ReturnLines []returnLine
	}{Report: r, Exposure: r.exposure()}
	if r.LastReturn != nil {
		data.ReturnLines = returnLines(r.LastReturn)
	}
	if err := htmlTemplate.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
