package ui

import (
	"encoding/json"
	"fmt"
	"html"
	"strings"

	"prism/models"

	"github.com/gomarkdown/markdown"
	mdhtml "github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
)

// RenderMessageHTML renders one webhook message as an HTML fragment for the
// dashboard feed. Every message type has its own rendering; values outside
// the known set were already coerced to text on receipt.
func RenderMessageHTML(msg *models.WebhookMessage) string {
	var b strings.Builder
	b.WriteString(`<div class="webhook-message severity-` + string(msg.Severity) + `">`)
	if msg.Title != "" {
		b.WriteString("<h4>" + html.EscapeString(msg.Title) + "</h4>")
	}

	switch msg.MessageType {
	case models.MessageTypeText:
		b.WriteString(renderMarkdown(msg.Content))
	case models.MessageTypeTable:
		b.WriteString(renderTable(msg.Payload))
	case models.MessageTypeList:
		b.WriteString(renderList(msg))
	case models.MessageTypeCode:
		b.WriteString(renderCode(msg))
	case models.MessageTypeJSON:
		b.WriteString(renderJSON(msg.Payload))
	default:
		b.WriteString("<p>" + html.EscapeString(msg.Content) + "</p>")
	}

	b.WriteString("</div>")
	return b.String()
}

// renderMarkdown converts markdown content to HTML
func renderMarkdown(content string) string {
	p := parser.NewWithExtensions(parser.CommonExtensions | parser.AutoHeadingIDs)
	doc := p.Parse([]byte(content))
	renderer := mdhtml.NewRenderer(mdhtml.RendererOptions{Flags: mdhtml.CommonFlags})
	return string(markdown.Render(doc, renderer))
}

// renderTable builds an HTML table from the payload's columns and rows
func renderTable(payload models.JSONBMap) string {
	columns, _ := payload["columns"].([]interface{})
	rows, _ := payload["rows"].([]interface{})
	if len(columns) == 0 {
		return "<p>Table message carries no columns.</p>"
	}

	var b strings.Builder
	b.WriteString("<table><thead><tr>")
	for _, col := range columns {
		b.WriteString("<th>" + html.EscapeString(cellString(col)) + "</th>")
	}
	b.WriteString("</tr></thead><tbody>")

	for _, row := range rows {
		cells, ok := row.([]interface{})
		if !ok {
			continue
		}
		b.WriteString("<tr>")
		for _, cell := range cells {
			b.WriteString("<td>" + html.EscapeString(cellString(cell)) + "</td>")
		}
		b.WriteString("</tr>")
	}

	b.WriteString("</tbody></table>")
	return b.String()
}

// renderList builds a <ul> from the payload's items, falling back to the
// content's lines when no items were posted
func renderList(msg *models.WebhookMessage) string {
	items, _ := msg.Payload["items"].([]interface{})

	var b strings.Builder
	b.WriteString("<ul>")
	if len(items) > 0 {
		for _, item := range items {
			b.WriteString("<li>" + html.EscapeString(cellString(item)) + "</li>")
		}
	} else {
		for _, line := range strings.Split(msg.Content, "\n") {
			if strings.TrimSpace(line) == "" {
				continue
			}
			b.WriteString("<li>" + html.EscapeString(line) + "</li>")
		}
	}
	b.WriteString("</ul>")
	return b.String()
}

// renderCode wraps the content in a highlighted code block
func renderCode(msg *models.WebhookMessage) string {
	language, _ := msg.Payload["language"].(string)
	class := ""
	if language != "" {
		class = ` class="language-` + html.EscapeString(language) + `"`
	}
	return "<pre><code" + class + ">" + html.EscapeString(msg.Content) + "</code></pre>"
}

// renderJSON pretty-prints the payload
func renderJSON(payload models.JSONBMap) string {
	pretty, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return "<p>Payload could not be rendered.</p>"
	}
	return "<pre>" + html.EscapeString(string(pretty)) + "</pre>"
}

// cellString formats one payload value for display. JSON numbers arrive as
// float64, so whole values are shown without a decimal point.
func cellString(v interface{}) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		if t == float64(int64(t)) {
			return fmt.Sprintf("%d", int64(t))
		}
		return fmt.Sprintf("%g", t)
	case bool:
		return fmt.Sprintf("%t", t)
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", t)
	}
}
