package chart

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
)

// ErrNoFont is returned by FindFont when no usable font file exists.
var ErrNoFont = errors.New("no CJK TrueType font found")

// knownFonts are TrueType files able to render simplified Chinese. Only
// .ttf is listed: the PDF writer cannot embed collections (.ttc) or CFF
// flavoured OpenType.
var knownFonts = []string{
	"SimHei.ttf",
	"simhei.ttf",
	"NotoSansSC-Regular.ttf",
	"NotoSansCJKsc-Regular.ttf",
	"SourceHanSansSC-Regular.ttf",
	"wqy-microhei.ttf",
	"DroidSansFallbackFull.ttf",
	"DroidSansFallback.ttf",
	"msyh.ttf",
	"simsun.ttf",
}

// FindFont returns configured when it names an existing file. Otherwise it
// searches the working directory, then the XDG data dirs under
// pagefreq/fonts, then system font directories for a known CJK font.
func FindFont(configured string) (string, error) {
	if s := strings.TrimSpace(configured); s != "" {
		if _, err := os.Stat(s); err != nil {
			return "", err
		}
		return s, nil
	}
	for _, name := range knownFonts {
		if _, err := os.Stat(name); err == nil {
			return name, nil
		}
		if p, err := xdg.SearchDataFile(filepath.Join("pagefreq", "fonts", name)); err == nil {
			return p, nil
		}
	}
	for _, dir := range xdg.FontDirs {
		if p := findInDir(dir); p != "" {
			return p, nil
		}
	}
	return "", ErrNoFont
}

func findInDir(dir string) string {
	want := make(map[string]bool, len(knownFonts))
	for _, n := range knownFonts {
		want[strings.ToLower(n)] = true
	}
	var found string
	_ = filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			if d == nil || d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.IsDir() && want[strings.ToLower(d.Name())] {
			found = path
			return filepath.SkipAll
		}
		return nil
	})
	return found
}
