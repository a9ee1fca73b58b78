package app

import (
	"errors"

	"github.com/hyperifyio/pagefreq/internal/fetch"
)

// User-facing prefixes for the two failure classes.
const (
	MsgNetwork    = "网络请求错误"
	MsgExtraction = "抓取内容时出错"
)

// IsNetworkError reports whether err stems from retrieving the page.
func IsNetworkError(err error) bool {
	var ne *fetch.NetworkError
	return errors.As(err, &ne)
}

// Describe renders err the way it is shown to users: network failures and
// everything else get distinct prefixes, followed by the cause.
func Describe(err error) string {
	if err == nil {
		return ""
	}
	if IsNetworkError(err) {
		return MsgNetwork + ": " + err.Error()
	}
	return MsgExtraction + ": " + err.Error()
}
