package extract

import (
    "reflect"
    "testing"
)

func TestFromHTML_ParagraphsInDocumentOrder(t *testing.T) {
    html := `<!doctype html>
    <html>
      <head><title> 测试页面 </title></head>
      <body>
        <h1>标题不是段落</h1>
        <p>  第一段文字。 </p>
        <div><p>第二段 <b>加粗</b> 内容</p></div>
        <p>第三段</p>
      </body>
    </html>`

    doc, err := FromHTML([]byte(html))
    if err != nil {
        t.Fatalf("FromHTML: %v", err)
    }
    if doc.Title != "测试页面" {
        t.Fatalf("Title=%q", doc.Title)
    }
    want := []string{"第一段文字。", "第二段 加粗 内容", "第三段"}
    if !reflect.DeepEqual(doc.Paragraphs, want) {
        t.Fatalf("Paragraphs=%q, want %q", doc.Paragraphs, want)
    }
}

func TestFromHTML_NoParagraphsIsNotAnError(t *testing.T) {
    doc, err := FromHTML([]byte(`<html><body><div>只有div</div></body></html>`))
    if err != nil {
        t.Fatalf("unexpected error: %v", err)
    }
    if doc.Paragraphs == nil || len(doc.Paragraphs) != 0 {
        t.Fatalf("expected empty non-nil paragraphs, got %q", doc.Paragraphs)
    }
}

func TestFromHTML_MalformedMarkup(t *testing.T) {
    // Unclosed paragraphs are closed implicitly by the next <p>.
    doc, err := FromHTML([]byte(`<p>一<p>二<div>三</div>`))
    if err != nil {
        t.Fatalf("unexpected error: %v", err)
    }
    want := []string{"一", "二"}
    if !reflect.DeepEqual(doc.Paragraphs, want) {
        t.Fatalf("Paragraphs=%q, want %q", doc.Paragraphs, want)
    }
}

func TestFromHTML_SkipsScriptInsideParagraph(t *testing.T) {
    doc, err := FromHTML([]byte(`<p>正文<script>var x = 1;</script><style>p{}</style></p>`))
    if err != nil {
        t.Fatalf("unexpected error: %v", err)
    }
    if len(doc.Paragraphs) != 1 || doc.Paragraphs[0] != "正文" {
        t.Fatalf("Paragraphs=%q", doc.Paragraphs)
    }
}

func TestFromHTML_KeepsEmptyParagraphs(t *testing.T) {
    doc, _ := FromHTML([]byte(`<p></p><p> </p><p>有内容</p>`))
    if len(doc.Paragraphs) != 3 {
        t.Fatalf("expected one entry per <p>, got %q", doc.Paragraphs)
    }
    if got := NonEmpty(doc.Paragraphs); !reflect.DeepEqual(got, []string{"有内容"}) {
        t.Fatalf("NonEmpty=%q", got)
    }
}

func TestJoinParagraphs(t *testing.T) {
    if got := JoinParagraphs([]string{"甲", "乙", "丙"}); got != "甲 乙 丙" {
        t.Fatalf("JoinParagraphs=%q", got)
    }
    if got := JoinParagraphs(nil); got != "" {
        t.Fatalf("JoinParagraphs(nil)=%q", got)
    }
}

func TestParagraphExtractor(t *testing.T) {
    var e Extractor = ParagraphExtractor{}
    doc, err := e.Extract([]byte(`<p>hello</p>`))
    if err != nil || len(doc.Paragraphs) != 1 {
        t.Fatalf("Extract: %v %q", err, doc.Paragraphs)
    }
}
