package segment

import (
	"reflect"
	"strings"
	"sync"
	"testing"
)

var (
	sharedOnce sync.Once
	shared     *GSE
	sharedErr  error
)

// embedded loads the default dictionary once for the whole package.
func embedded(t *testing.T) *GSE {
	t.Helper()
	sharedOnce.Do(func() { shared, sharedErr = NewGSE(Options{}) })
	if sharedErr != nil {
		t.Fatalf("NewGSE: %v", sharedErr)
	}
	return shared
}

func TestGSE_SegmentsKnownWords(t *testing.T) {
	g := embedded(t)
	tokens := g.Cut("我爱北京天安门")
	found := false
	for _, tok := range tokens {
		if tok == "北京" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected 北京 as a token, got %q", tokens)
	}
}

func TestGSE_Deterministic(t *testing.T) {
	g := embedded(t)
	text := "文本分析与词云生成。提取的文本内容，词频排名前二十的词汇。"
	a := g.Cut(text)
	b := g.Cut(text)
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("segmentation not deterministic:\n%q\n%q", a, b)
	}
	if len(a) == 0 {
		t.Fatalf("expected tokens")
	}
}

func TestGSE_EmptyInput(t *testing.T) {
	g := embedded(t)
	if got := g.Cut(""); len(got) != 0 {
		t.Fatalf("expected no tokens, got %q", got)
	}
}

func TestGSE_ConcurrentCut(t *testing.T) {
	g := embedded(t)
	want := g.Cut("数据可视化是一门学问")
	var wg sync.WaitGroup
	errs := make(chan string, 8)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if got := g.Cut("数据可视化是一门学问"); !reflect.DeepEqual(got, want) {
				errs <- "mismatch"
			}
		}()
	}
	wg.Wait()
	close(errs)
	for e := range errs {
		t.Fatalf("concurrent cut: %s", e)
	}
}

func TestNewGSE_MissingDictionary(t *testing.T) {
	if _, err := NewGSE(Options{DictPaths: []string{"/nonexistent/dict.txt"}}); err == nil {
		t.Fatalf("expected error for missing dictionary")
	}
}

func TestGSE_DropsPunctuationAndSpaceRuns(t *testing.T) {
	g := embedded(t)
	tokens := g.Cut("北京是首都。。北京很大！！  北京  的秋天……美丽，，\n\n北京\t\t北京 ... -- 2024 @@ ——")
	for _, tok := range tokens {
		if !hasWordRune(tok) || strings.TrimSpace(tok) != tok {
			t.Fatalf("non-word token %q in %q", tok, tokens)
		}
	}
	n := 0
	for _, tok := range tokens {
		if tok == "北京" {
			n++
		}
	}
	if n != 5 {
		t.Fatalf("北京 seen %d times, want 5: %q", n, tokens)
	}
}
