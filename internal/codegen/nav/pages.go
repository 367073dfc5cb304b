// Package nav renders the static navigation pages enumerating generated
// cells per report template. The pages are informational only; routing
// and serving belong to the surrounding application.
package nav

import (
	"bytes"
	"fmt"

	gomponents "maragu.dev/gomponents"
	html "maragu.dev/gomponents/html"
)

// Cell is one generated report cell shown on a template page.
type Cell struct {
	CombinationCode string
	ClassName       string
	MetricVariable  string
	Products        []string
	Degraded        bool // cell carries a diagnostic from the run
}

// TemplatePage renders the navigation page for one report template.
func TemplatePage(template string, cells []Cell) gomponents.Node {
	rows := make([]gomponents.Node, 0, len(cells))
	for i := range cells {
		c := cells[i]
		status := "ok"
		if c.Degraded {
			status = "degraded"
		}
		metric := c.MetricVariable
		if metric == "" {
			metric = "row count"
		}
		rows = append(rows, html.Tr(
			html.Td(html.A(html.Href("#"+c.ClassName), gomponents.Text(c.CombinationCode))),
			html.Td(html.Code(gomponents.Text(c.ClassName))),
			html.Td(gomponents.Text(metric)),
			html.Td(gomponents.Text(fmt.Sprintf("%d", len(c.Products)))),
			html.Td(html.Class("status-"+status), gomponents.Text(status)),
		))
	}

	return page(fmt.Sprintf("Template %s", template),
		html.P(gomponents.Textf("%d generated cells", len(cells))),
		html.Table(
			html.THead(html.Tr(
				html.Th(gomponents.Text("Cell")),
				html.Th(gomponents.Text("Class")),
				html.Th(gomponents.Text("Metric")),
				html.Th(gomponents.Text("Product tables")),
				html.Th(gomponents.Text("Status")),
			)),
			html.TBody(gomponents.Group(rows)),
		),
	)
}

// IndexPage renders the landing page listing all generated templates.
func IndexPage(templates []string) gomponents.Node {
	items := make([]gomponents.Node, 0, len(templates))
	for _, t := range templates {
		items = append(items, html.Li(html.A(html.Href(PageFileName(t)), gomponents.Text(t))))
	}
	return page("Report templates", html.Ul(gomponents.Group(items)))
}

// PageFileName returns the file name a template's page is written under.
func PageFileName(template string) string {
	return fmt.Sprintf("template_%s.html", template)
}

// RenderPage renders a page node to bytes.
func RenderPage(node gomponents.Node) ([]byte, error) {
	var buf bytes.Buffer
	if err := node.Render(&buf); err != nil {
		return nil, fmt.Errorf("render page: %w", err)
	}
	return buf.Bytes(), nil
}

func page(title string, body ...gomponents.Node) gomponents.Node {
	return html.HTML(
		html.Lang("en"),
		html.Head(
			html.Meta(html.Charset("utf-8")),
			html.TitleEl(gomponents.Text(title+" | regmap")),
		),
		html.Body(
			html.Main(
				html.H1(gomponents.Text(title)),
				gomponents.Group(body),
			),
		),
	)
}
