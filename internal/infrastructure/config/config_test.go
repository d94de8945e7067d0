package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"feedfilter/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleYAML = `
app:
  cache_ttl: 10m
http:
  host: ${FEEDFILTER_TEST_HOST}
  port: 9090
feeds:
  - name: dappered
    url: https://dappered.com/feed/
    title_disqualifiers: ["thanks to Dappered's advertisers"]
  - name: monitor_deals
    url: http://example.com/buildapcsales
    title_qualifiers: ["monitor"]
    rule_order: qualify_first
    guid: link
`

func TestParse(t *testing.T) {
	t.Setenv("FEEDFILTER_TEST_HOST", "127.0.0.1")

	cfg, err := Parse([]byte(sampleYAML))
	require.NoError(t, err)

	assert.Equal(t, "feedfilter", cfg.GetAppName())
	assert.Equal(t, 10*time.Minute, cfg.App.CacheTTL)
	assert.Equal(t, "127.0.0.1:9090", cfg.GetHTTPAddr())
	assert.Equal(t, 20*time.Second, cfg.Fetch.Timeout)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.False(t, cfg.DBEnabled())
	assert.False(t, cfg.KafkaEnabled())

	feeds := cfg.FeedConfigs()
	require.Len(t, feeds, 2)
	assert.Equal(t, domain.FeedConfig{
		Name:               "dappered",
		SourceURL:          "https://dappered.com/feed/",
		TitleDisqualifiers: []string{"thanks to Dappered's advertisers"},
		RuleOrder:          domain.DisqualifyFirst,
		GUID:               domain.GUIDNone,
	}, feeds[0])
	assert.Equal(t, domain.QualifyFirst, feeds[1].RuleOrder)
	assert.Equal(t, domain.GUIDLink, feeds[1].GUID)
	assert.Equal(t, []string{"monitor"}, feeds[1].TitleQualifiers)
}

func TestParse_FeedRulesKeepDollarSigns(t *testing.T) {
	t.Setenv("FEEDFILTER_TEST_DSN", "postgres://feeds@db/feeds")
	yml := `
db:
  dsn: ${FEEDFILTER_TEST_DSN}
kafka:
  brokers: ["${FEEDFILTER_TEST_UNSET_BROKER}", "kafka:9092"]
feeds:
  - name: monitor_deals
    url: http://example.com/buildapcsales
    title_disqualifiers: ["$HOME office"]
    title_qualifiers: ["$0", "$99 monitor"]
`
	cfg, err := Parse([]byte(yml))
	require.NoError(t, err)

	require.Len(t, cfg.Feeds, 1)
	assert.Equal(t, []string{"$0", "$99 monitor"}, cfg.Feeds[0].TitleQualifiers)
	assert.Equal(t, []string{"$HOME office"}, cfg.Feeds[0].TitleDisqualifiers)
	assert.Equal(t, "postgres://feeds@db/feeds", cfg.DB.DSN)
	assert.Equal(t, []string{"kafka:9092"}, cfg.Kafka.Brokers)
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		msg  string
	}{
		{
			name: "no feeds",
			yaml: "app:\n  name: x\n",
			msg:  "no feeds configured",
		},
		{
			name: "duplicate names",
			yaml: "feeds:\n  - {name: a, url: http://a}\n  - {name: a, url: http://b}\n",
			msg:  `duplicate name "a"`,
		},
		{
			name: "missing url",
			yaml: "feeds:\n  - {name: a}\n",
			msg:  "empty url",
		},
		{
			name: "unknown rule order",
			yaml: "feeds:\n  - {name: a, url: http://a, rule_order: sideways}\n",
			msg:  `unknown rule_order "sideways"`,
		},
		{
			name: "unknown guid policy",
			yaml: "feeds:\n  - {name: a, url: http://a, guid: random}\n",
			msg:  `unknown guid policy "random"`,
		},
		{
			name: "broken yaml",
			yaml: "feeds: [",
			msg:  "failed to parse config yaml",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.msg)
		})
	}
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleYAML), 0o600))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Len(t, cfg.Feeds, 2)

	_, err = LoadConfig("")
	assert.Error(t, err)

	_, err = LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestShippedConfig(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join("..", "..", "..", "configs", "config.yaml"))
	require.NoError(t, err)

	names := make([]string, 0, len(cfg.Feeds))
	for _, f := range cfg.Feeds {
		names = append(names, f.Name)
	}
	assert.ElementsMatch(t, []string{"churning", "highscalability", "ourdailybears", "dappered", "monitor_deals"}, names)
}
