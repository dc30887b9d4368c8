package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

const sampleYAML = `
logging:
  level: DEBUG
  console: true
data:
  dir: ./state
rooms:
  - id: flower_1
    type: flower
    calendar_target: cal.grow
    todo_target: todo.grow
  - id: veg_1
    type: veg
tasks:
  skip_past_flower: true
announce:
  enabled: true
  time: "06:30"
  timezone: America/Denver
journal:
  driver: sqlite
notify:
  enabled: true
  token: "123:abc"
  chat_id: -100200300
`

func TestParseYAML(t *testing.T) {
	m := NewManager(writeConfig(t, "config.yaml", sampleYAML))
	cfg, err := m.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Logging.Level != "DEBUG" || !cfg.Logging.Console {
		t.Fatalf("logging = %+v", cfg.Logging)
	}
	if len(cfg.Rooms) != 2 || cfg.Rooms[0].CalendarTarget != "cal.grow" {
		t.Fatalf("rooms = %+v", cfg.Rooms)
	}
	if !cfg.Tasks.FlowerSkipPast() {
		t.Fatal("skip_past_flower not honored")
	}
	if cfg.Announce.Time != "06:30" || cfg.Announce.Timezone != "America/Denver" {
		t.Fatalf("announce = %+v", cfg.Announce)
	}
	if cfg.Journal.Driver != "sqlite" {
		t.Fatalf("journal = %+v", cfg.Journal)
	}
	if cfg.Notify == nil || cfg.Notify.ChatID != -100200300 {
		t.Fatalf("notify = %+v", cfg.Notify)
	}
	if m.Get() != cfg {
		t.Fatal("Load did not commit")
	}
}

func TestDefaults(t *testing.T) {
	m := NewManager(writeConfig(t, "config.yaml", "logging:\n  console: true\n"))
	cfg, err := m.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Tasks.FlowerSkipPast() {
		t.Fatal("flower skip-past should default false")
	}
	if !cfg.Tasks.VegSkipPast() {
		t.Fatal("veg skip-past should default true")
	}
	if cfg.Notify != nil {
		t.Fatal("notify should default nil")
	}
}

func TestUnknownFieldRejected(t *testing.T) {
	m := NewManager(writeConfig(t, "config.yaml", "loging:\n  level: INFO\n"))
	if _, err := m.Load(); err == nil {
		t.Fatal("typoed section accepted")
	}
}

func TestParseJSON(t *testing.T) {
	m := NewManager(writeConfig(t, "config.json", `{"logging":{"console":true},"announce":{"enabled":false}}`))
	cfg, err := m.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Announce.Enabled {
		t.Fatal("announce should be disabled")
	}
}

func TestTrailingJSONRejected(t *testing.T) {
	m := NewManager(writeConfig(t, "config.json", `{"logging":{"console":true}}{"extra":1}`))
	if _, err := m.Load(); err == nil {
		t.Fatal("trailing JSON accepted")
	}
}

func TestSubscribePublish(t *testing.T) {
	m := NewManager(writeConfig(t, "config.yaml", "logging:\n  console: true\n"))
	if _, err := m.Load(); err != nil {
		t.Fatalf("Load: %v", err)
	}
	ch := m.Subscribe(1)
	defer m.Unsubscribe(ch)

	next := &Config{}
	m.Commit(next)
	m.publish(next)

	select {
	case got := <-ch:
		if got != next {
			t.Fatal("wrong config delivered")
		}
	default:
		t.Fatal("no config delivered")
	}
}
