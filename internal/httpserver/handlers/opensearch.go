package handlers

import (
	"encoding/xml"
	"net/http"
	"net/url"
	"strings"

	"github.com/MrSnakeDoc/myshortcuts/internal/httpserver/deps"
)

const openSearchNS = "http://a9.com/-/spec/opensearch/1.1/"

type openSearchURL struct {
	Type     string `xml:"type,attr"`
	Method   string `xml:"method,attr"`
	Template string `xml:"template,attr"`
}

type openSearchDescription struct {
	XMLName       xml.Name        `xml:"OpenSearchDescription"`
	XMLNS         string          `xml:"xmlns,attr"`
	ShortName     string          `xml:"ShortName"`
	Description   string          `xml:"Description"`
	InputEncoding string          `xml:"InputEncoding"`
	URLs          []openSearchURL `xml:"Url"`
}

// OpenSearch serves the description document that registers the service
// as a browser search engine with live suggestions.
func OpenSearch(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		base := publicBase(d.PublicURL, r)

		doc := openSearchDescription{
			XMLNS:         openSearchNS,
			ShortName:     "myshortcuts",
			Description:   "Jump to saved shortcuts and search engine aliases",
			InputEncoding: "UTF-8",
			URLs: []openSearchURL{
				{Type: "text/html", Method: "get", Template: base + "/search?q={searchTerms}"},
				{Type: "application/x-suggestions+json", Method: "get", Template: base + "/suggest?format=opensearch&q={searchTerms}"},
			},
		}

		w.Header().Set("Content-Type", "application/opensearchdescription+xml")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(xml.Header))
		enc := xml.NewEncoder(w)
		enc.Indent("", "  ")
		_ = enc.Encode(doc)
	}
}

// publicBase prefers the configured URL and otherwise rebuilds it from the
// request (honouring X-Forwarded-Proto when present).
func publicBase(configured string, r *http.Request) string {
	if configured != "" {
		return strings.TrimRight(configured, "/")
	}

	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if p := r.Header.Get("X-Forwarded-Proto"); p == "http" || p == "https" {
		scheme = p
	}
	return (&url.URL{Scheme: scheme, Host: r.Host}).String()
}
