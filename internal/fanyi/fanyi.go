// Package fanyi implements a translation provider backed by the Baidu Fanyi
// web translator. It acquires and caches the page token, signs every request
// with the gtk seed, parses the web API response and renders an HTML fragment.
package fanyi

import (
	"net/url"
	"strings"
)

const (
	// ID identifies the provider in hosts and in the durable token key.
	ID = "plugin-com-baidu-fanyi"

	DefaultBaseURL = "https://fanyi.baidu.com"

	// IconPath is the provider icon shown in the attribution block.
	IconPath = "icons/" + ID + ".png"

	translatePath   = "/v2transapi"
	simpleMeansFlag = "3"
)

// Query is one translation request as supplied by the host.
type Query struct {
	From string `json:"from"`
	To   string `json:"to"`
	Text string `json:"text"`
}

// Token is the session credential scraped from the Baidu landing page.
// Secret is the gtk seed used for signing, Value is sent as the token field.
type Token struct {
	Secret string
	Value  string
}

func (t Token) valid() bool {
	return strings.TrimSpace(t.Secret) != "" && strings.TrimSpace(t.Value) != ""
}

// Translation is the normalized translation record built by ParseTranslation.
type Translation struct {
	From          string    `json:"from"`
	To            string    `json:"to"`
	Query         string    `json:"query"`
	Text          string    `json:"text"`
	Pronunciation string    `json:"pronunciation,omitempty"`
	Details       []Details `json:"details,omitempty"`
}

// Details holds the dictionary meanings for one part of speech.
type Details struct {
	PartOfSpeech string   `json:"part_of_speech"`
	Meanings     []string `json:"meanings"`
}

// Meta describes the provider to hosts.
type Meta struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Source      string `json:"source"`
	SourceURL   string `json:"source_url"`
	Author      string `json:"author"`
	AuthorURL   string `json:"author_url"`
}

var providerMeta = Meta{
	Name:        "Baidu Multi-language Translation",
	Description: "Support up to 28 language translation",
	Source:      "Baidu Fanyi",
	SourceURL:   DefaultBaseURL + "/",
	Author:      "DictHub",
	AuthorURL:   "https://github.com/willings/DictHub",
}

// Result carries everything one Lookup produced. Fragment is always set.
type Result struct {
	Fragment    string       `json:"fragment"`
	Translation *Translation `json:"translation,omitempty"`
	Err         error        `json:"-"`
	Attempts    int          `json:"attempts"`
	FreshToken  bool         `json:"fresh_token"`
}

// OK reports whether the lookup produced a translation.
func (r Result) OK() bool {
	return r.Err == nil && r.Translation != nil
}

// SourceURL builds the deep link into the Baidu web UI for a query.
func SourceURL(baseURL, from, to, text string) string {
	return strings.TrimRight(baseURL, "/") + "/#" + from + "/" + to + "/" + url.PathEscape(text)
}

// VoiceURL builds the text-to-speech link for the query in the source language.
func VoiceURL(baseURL, lang, text string) string {
	return strings.TrimRight(baseURL, "/") + "/gettts?spd=3&source=web&lan=" +
		url.QueryEscape(lang) + "&text=" + url.QueryEscape(text)
}
