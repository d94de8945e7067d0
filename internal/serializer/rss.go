package serializer

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"time"

	"feedfilter/internal/domain"
)

const (
	ContentType = "application/rss+xml; charset=utf-8"
	generator   = "feedfilter"
	rssDocs     = "https://www.rssboard.org/rss-specification"
)

type rssXML struct {
	XMLName xml.Name   `xml:"rss"`
	Version string     `xml:"version,attr"`
	Channel channelXML `xml:"channel"`
}

type channelXML struct {
	Title         string    `xml:"title"`
	Link          string    `xml:"link"`
	Description   string    `xml:"description"`
	LastBuildDate string    `xml:"lastBuildDate"`
	Generator     string    `xml:"generator"`
	Docs          string    `xml:"docs"`
	Items         []itemXML `xml:"item"`
}

type itemXML struct {
	Title       string   `xml:"title"`
	Link        string   `xml:"link"`
	Description string   `xml:"description"`
	Author      string   `xml:"author,omitempty"`
	Categories  []string `xml:"category"`
	GUID        *guidXML `xml:"guid,omitempty"`
	PubDate     string   `xml:"pubDate"`
}

type guidXML struct {
	IsPermaLink bool   `xml:"isPermaLink,attr"`
	Value       string `xml:",chardata"`
}

// RSS сериализует выходной документ в RSS 2.0. Вывод детерминирован:
// один и тот же документ всегда дает одинаковые байты.
type RSS struct{}

func NewRSS() *RSS {
	return &RSS{}
}

func (RSS) Serialize(doc domain.OutputDocument) ([]byte, error) {
	out := rssXML{
		Version: "2.0",
		Channel: channelXML{
			Title:         doc.Title,
			Link:          doc.Link,
			Description:   doc.Description,
			LastBuildDate: formatDate(doc.LastBuildDate),
			Generator:     generator,
			Docs:          rssDocs,
			Items:         make([]itemXML, 0, len(doc.Items)),
		},
	}
	for _, item := range doc.Items {
		x := itemXML{
			Title:       item.Title,
			Link:        item.Link,
			Description: item.Description,
			Author:      item.Author,
			Categories:  item.Categories,
			PubDate:     formatDate(item.PublishedAt),
		}
		if item.GUID != "" {
			x.GUID = &guidXML{IsPermaLink: true, Value: item.GUID}
		}
		out.Channel.Items = append(out.Channel.Items, x)
	}

	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	enc := xml.NewEncoder(&buf)
	enc.Indent("", "  ")
	if err := enc.Encode(out); err != nil {
		return nil, fmt.Errorf("failed to encode RSS: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("failed to flush RSS encoder: %w", err)
	}
	return buf.Bytes(), nil
}

func formatDate(t time.Time) string {
	return t.UTC().Format(time.RFC1123Z)
}
