// Copyright 2025 Observatorio Regulatorio
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package loader

import (
	"regexp"
	"strings"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/JohannesKaufmann/html-to-markdown/plugin"
	"golang.org/x/net/html"
)

// Pre-compiled regexes to avoid runtime compilation per document.
var (
	scriptRe         = regexp.MustCompile(`(?is)<script[^>]*>.*?</script>`)
	styleRe          = regexp.MustCompile(`(?is)<style[^>]*>.*?</style>`)
	excessiveLinesRe = regexp.MustCompile(`\n{4,}`)
)

// boilerplateTags are stripped from the DOM before conversion. They carry
// navigation and page furniture, not article text.
var boilerplateTags = []string{
	"script", "style", "noscript", "nav", "header", "footer", "aside", "iframe",
}

// Converter turns HTML documents into markdown text, stripping page
// furniture along the way.
type Converter struct {
	converter *md.Converter
}

// NewConverter creates an HTML to markdown converter.
func NewConverter() *Converter {
	converter := md.NewConverter("", true, nil)
	converter.Use(plugin.GitHubFlavored())

	return &Converter{converter: converter}
}

// Convert transforms an HTML document to cleaned markdown.
func (c *Converter) Convert(htmlContent []byte) (string, error) {
	cleaned := stripBoilerplate(htmlContent)

	markdown, err := c.converter.ConvertString(cleaned)
	if err != nil {
		return "", err
	}

	return cleanMarkdown(markdown), nil
}

// stripBoilerplate removes non-content elements from the document and
// renders the body back to HTML. Unparseable input falls back to regex
// scrubbing of scripts and styles.
func stripBoilerplate(content []byte) string {
	doc, err := html.Parse(strings.NewReader(string(content)))
	if err != nil {
		scrubbed := scriptRe.ReplaceAllString(string(content), "")
		return styleRe.ReplaceAllString(scrubbed, "")
	}

	removeElements(doc, boilerplateTags)

	if body := findElement(doc, "body"); body != nil {
		return renderNode(body)
	}
	return renderNode(doc)
}

// findElement finds the first element with the given tag name.
func findElement(n *html.Node, tag string) *html.Node {
	var result *html.Node
	var find func(*html.Node)
	find = func(node *html.Node) {
		if result != nil {
			return
		}
		if node.Type == html.ElementNode && node.Data == tag {
			result = node
			return
		}
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			find(c)
		}
	}
	find(n)
	return result
}

// removeElements removes all elements with the given tag names.
func removeElements(n *html.Node, tags []string) {
	tagSet := make(map[string]bool)
	for _, tag := range tags {
		tagSet[tag] = true
	}

	var toRemove []*html.Node
	var collect func(*html.Node)
	collect = func(node *html.Node) {
		if node.Type == html.ElementNode && tagSet[node.Data] {
			toRemove = append(toRemove, node)
			return
		}
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			collect(c)
		}
	}
	collect(n)

	for _, node := range toRemove {
		if node.Parent != nil {
			node.Parent.RemoveChild(node)
		}
	}
}

// renderNode renders a node and its children back to an HTML string.
func renderNode(n *html.Node) string {
	var sb strings.Builder
	html.Render(&sb, n)
	return sb.String()
}

// cleanMarkdown trims trailing whitespace and collapses excessive blank lines.
func cleanMarkdown(content string) string {
	content = excessiveLinesRe.ReplaceAllString(content, "\n\n\n")

	lines := strings.Split(content, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}

	return strings.TrimSpace(strings.Join(lines, "\n"))
}
