package render

import (
	"bytes"
	"embed"
	"html/template"
	"io"

	"github.com/gomarkdown/markdown"
	mdhtml "github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"

	"github.com/dsci3d/learning-energy-profile/domain/scoring"
)

//go:embed templates/report.html
var templateFS embed.FS

var reportTemplate = template.Must(template.New("").ParseFS(templateFS, "templates/report.html"))

type htmlReportData struct {
	Title       string
	ID          string
	CreatedAt   string
	Version     string
	QualityFlag string
	Warnings    []string
	Radar       template.HTML
	Bars        template.HTML
	Chronotype  template.HTML
	Body        template.HTML
}

// WriteHTML renders a standalone, asset-free HTML report: inline SVG charts
// on top, the markdown report converted through gomarkdown below.
func WriteHTML(w io.Writer, profile *scoring.Profile) error {
	var md bytes.Buffer
	if err := WriteMarkdown(&md, profile); err != nil {
		return err
	}
	p := parser.NewWithExtensions(parser.CommonExtensions)
	renderer := mdhtml.NewRenderer(mdhtml.RendererOptions{Flags: mdhtml.CommonFlags})
	body := markdown.ToHTML(md.Bytes(), p, renderer)

	data := htmlReportData{
		Title:       profile.Meta.Instrument,
		CreatedAt:   profile.Meta.CreatedAt,
		Version:     profile.Meta.Version,
		QualityFlag: profile.ResponseQuality.QualityFlag,
		Warnings:    profile.ResponseQuality.Warnings,
		Radar:       template.HTML(RadarSVG(profile)),
		Bars:        template.HTML(BarsSVG(profile)),
		Chronotype:  template.HTML(ChronotypeSVG(profile.AdditionalIndices.Chronotype)),
		Body:        template.HTML(body),
	}
	if profile.ID != nil {
		data.ID = *profile.ID
	}
	return reportTemplate.ExecuteTemplate(w, "report.html", data)
}
