package xdom

import (
	"io"
	"net/http"

	"golang.org/x/net/html/charset"
)

// ParseReader reads r fully, transcodes it to UTF-8 using the encoding that
// golang.org/x/net/html/charset sniffs from a byte-order mark or an
// HTML-style meta charset, and parses the result with opts. The encoding
// attribute of a leading XML declaration is not consulted.
func ParseReader(r io.Reader, opts ParserOptions) (QuerySet, error) {
	utf8Reader, err := charset.NewReader(r, "")
	if err != nil {
		return QuerySet{}, newError(ParseError, "detect encoding: %v", err)
	}
	data, err := io.ReadAll(utf8Reader)
	if err != nil {
		return QuerySet{}, newError(ParseError, "read document: %v", err)
	}
	return ParseWithOptions(string(data), opts)
}

// LoadURL fetches url over HTTP(S) and parses the response body with
// DefaultParserOptions, using the response's Content-Type to resolve its
// encoding.
func LoadURL(url string) (QuerySet, error) {
	resp, err := http.Get(url)
	if err != nil {
		return QuerySet{}, newError(ParseError, "fetch %s: %v", url, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return QuerySet{}, newError(ParseError, "fetch %s: %s", url, resp.Status)
	}

	utf8Reader, err := charset.NewReader(resp.Body, resp.Header.Get("Content-Type"))
	if err != nil {
		return QuerySet{}, newError(ParseError, "detect encoding for %s: %v", url, err)
	}
	data, err := io.ReadAll(utf8Reader)
	if err != nil {
		return QuerySet{}, newError(ParseError, "read body of %s: %v", url, err)
	}
	return ParseWithOptions(string(data), DefaultParserOptions())
}
