package extract

import (
    "bytes"
    "fmt"
    "strings"

    "golang.org/x/net/html"
)

// Document is the text content pulled out of one HTML page.
type Document struct {
    Title      string
    // Paragraphs holds the trimmed inner text of every <p> element in
    // document order. It is empty, not an error, when the page has none.
    Paragraphs []string
}

// FromHTML parses UTF-8 HTML and collects the text of every paragraph
// element. Malformed markup is repaired by the HTML5 parser; only a reader
// failure is reported as an error.
func FromHTML(input []byte) (Document, error) {
    node, err := html.Parse(bytes.NewReader(input))
    if err != nil {
        return Document{}, fmt.Errorf("parse html: %w", err)
    }
    if node == nil {
        return Document{Paragraphs: []string{}}, nil
    }
    doc := Document{
        Title:      strings.TrimSpace(findTitle(node)),
        Paragraphs: []string{},
    }
    walkParagraphs(node, func(p *html.Node) {
        var b strings.Builder
        collectText(&b, p)
        doc.Paragraphs = append(doc.Paragraphs, strings.TrimSpace(b.String()))
    })
    return doc, nil
}

// JoinParagraphs concatenates paragraphs with a single space.
func JoinParagraphs(ps []string) string {
    return strings.Join(ps, " ")
}

// NonEmpty returns the paragraphs that contain text, keeping order.
func NonEmpty(ps []string) []string {
    out := make([]string, 0, len(ps))
    for _, p := range ps {
        if p != "" {
            out = append(out, p)
        }
    }
    return out
}

func findTitle(n *html.Node) string {
    head := findFirst(n, "head")
    if head == nil {
        return ""
    }
    t := findFirst(head, "title")
    if t == nil || t.FirstChild == nil {
        return ""
    }
    return t.FirstChild.Data
}

func findFirst(n *html.Node, tag string) *html.Node {
    var res *html.Node
    var dfs func(*html.Node)
    dfs = func(cur *html.Node) {
        if res != nil {
            return
        }
        if cur.Type == html.ElementNode && strings.EqualFold(cur.Data, tag) {
            res = cur
            return
        }
        for c := cur.FirstChild; c != nil; c = c.NextSibling {
            dfs(c)
            if res != nil {
                return
            }
        }
    }
    dfs(n)
    return res
}

// walkParagraphs visits <p> elements in document order.
func walkParagraphs(n *html.Node, visit func(*html.Node)) {
    if n.Type == html.ElementNode && strings.EqualFold(n.Data, "p") {
        visit(n)
    }
    for c := n.FirstChild; c != nil; c = c.NextSibling {
        walkParagraphs(c, visit)
    }
}

func collectText(b *strings.Builder, n *html.Node) {
    if n.Type == html.ElementNode {
        switch strings.ToLower(n.Data) {
        case "script", "style", "noscript", "template":
            return
        }
    }
    if n.Type == html.TextNode {
        b.WriteString(n.Data)
    }
    for c := n.FirstChild; c != nil; c = c.NextSibling {
        collectText(b, c)
    }
}
