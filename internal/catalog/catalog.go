package catalog

import (
	"fmt"
	"sort"

	"feedfilter/internal/domain"
)

// Catalog - неизменяемая таблица известных фидов. Создается один раз при старте
// и передается в обработчики явно.
type Catalog struct {
	feeds map[string]domain.FeedConfig
}

func New(feeds []domain.FeedConfig) (*Catalog, error) {
	c := &Catalog{feeds: make(map[string]domain.FeedConfig, len(feeds))}
	for _, f := range feeds {
		if f.Name == "" {
			return nil, fmt.Errorf("feed with url %q has empty name", f.SourceURL)
		}
		if _, ok := c.feeds[f.Name]; ok {
			return nil, fmt.Errorf("duplicate feed name %q", f.Name)
		}
		if f.RuleOrder == "" {
			f.RuleOrder = domain.DisqualifyFirst
		}
		if f.GUID == "" {
			f.GUID = domain.GUIDNone
		}
		f.TitleDisqualifiers = append([]string(nil), f.TitleDisqualifiers...)
		f.TitleQualifiers = append([]string(nil), f.TitleQualifiers...)
		c.feeds[f.Name] = f
	}
	return c, nil
}

// Lookup возвращает копию конфигурации, чтобы вызывающий код не мог изменить таблицу.
func (c *Catalog) Lookup(name string) (domain.FeedConfig, bool) {
	f, ok := c.feeds[name]
	if !ok {
		return domain.FeedConfig{}, false
	}
	f.TitleDisqualifiers = append([]string(nil), f.TitleDisqualifiers...)
	f.TitleQualifiers = append([]string(nil), f.TitleQualifiers...)
	return f, true
}

func (c *Catalog) Names() []string {
	names := make([]string, 0, len(c.feeds))
	for name := range c.feeds {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (c *Catalog) Len() int {
	return len(c.feeds)
}
