package app

import (
    "fmt"
    "net/url"
    "strings"

    "github.com/cespare/xxhash"

    "github.com/hyperifyio/pagefreq/internal/chart"
    "github.com/hyperifyio/pagefreq/internal/export"
)

// DefaultOutputPath names the file an analysis is written to when no path
// is given: the slugified host, a short URL hash, the chart kind and the
// format extension. The name is stable for a given URL, kind and format.
func DefaultOutputPath(rawURL string, kind chart.Kind, format export.Format) string {
    host := "page"
    if u, err := url.Parse(strings.TrimSpace(rawURL)); err == nil && u.Hostname() != "" {
        host = u.Hostname()
    }
    short := fmt.Sprintf("%016x", xxhash.Sum64String(strings.TrimSpace(rawURL)))[:8]
    name := slugify(host) + "-" + short
    if format == export.PDF || format == export.XLSX {
        name += "-" + kind.String()
    }
    return name + format.Ext()
}

func slugify(s string) string {
    var b strings.Builder
    dash := false
    for _, r := range strings.ToLower(s) {
        switch {
        case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
            b.WriteRune(r)
            dash = false
        case !dash && b.Len() > 0:
            b.WriteByte('-')
            dash = true
        }
    }
    out := strings.TrimSuffix(b.String(), "-")
    if out == "" {
        return "page"
    }
    return out
}
