package config

// Config is the daemon's full configuration. YAML and JSON are both
// accepted; YAML is coerced to JSON so one strict decoder covers both.
type Config struct {
	Logging  LoggingConfig  `json:"logging"`
	Data     DataConfig     `json:"data"`
	Rooms    []RoomConfig   `json:"rooms,omitempty"`
	Tasks    TasksConfig    `json:"tasks"`
	Announce AnnounceConfig `json:"announce"`
	Journal  JournalConfig  `json:"journal"`
	Notify   *NotifyConfig  `json:"notify,omitempty"`
}

type LoggingConfig struct {
	Level   string `json:"level,omitempty"` // TRACE..ERROR, default INFO
	Console bool   `json:"console"`
	File    struct {
		Enabled bool   `json:"enabled"`
		Path    string `json:"path,omitempty"`
	} `json:"file"`
}

// DataConfig locates the state directory holding rooms.json and batches/.
type DataConfig struct {
	Dir string `json:"dir,omitempty"` // default "./data"
}

// RoomConfig declares a room to auto-register at startup. Rooms already in
// the registry snapshot are left untouched.
type RoomConfig struct {
	ID             string `json:"id"`
	Name           string `json:"name,omitempty"`
	Type           string `json:"type"` // "flower" or "veg"
	CalendarTarget string `json:"calendar_target,omitempty"`
	TodoTarget     string `json:"todo_target,omitempty"`
}

// TasksConfig tunes generation behavior.
//
// SkipPastFlower is a pointer so "omitted" keeps the default (false: a
// mid-cycle setup still materializes the full history). SkipPastVeg
// defaults to true.
type TasksConfig struct {
	SkipPastFlower *bool `json:"skip_past_flower,omitempty"`
	SkipPastVeg    *bool `json:"skip_past_veg,omitempty"`
}

// FlowerSkipPast resolves the flower-side default.
func (t TasksConfig) FlowerSkipPast() bool {
	if t.SkipPastFlower == nil {
		return false
	}
	return *t.SkipPastFlower
}

// VegSkipPast resolves the veg-side default.
func (t TasksConfig) VegSkipPast() bool {
	if t.SkipPastVeg == nil {
		return true
	}
	return *t.SkipPastVeg
}

// AnnounceConfig controls the daily "task today" publication.
type AnnounceConfig struct {
	Enabled  bool   `json:"enabled"`
	Time     string `json:"time,omitempty"`     // "HH:MM", default "07:00"
	Timezone string `json:"timezone,omitempty"` // IANA name, default local
}

// JournalConfig selects the grow log driver.
type JournalConfig struct {
	Driver string `json:"driver,omitempty"` // "file" (default) or "sqlite"
	Path   string `json:"path,omitempty"`
}

// NotifyConfig controls the Telegram notifier. The section being present
// and enabled with a token turns it on.
type NotifyConfig struct {
	Enabled    bool   `json:"enabled"`
	Token      string `json:"token,omitempty"` // do not log
	ChatID     int64  `json:"chat_id,omitempty"`
	RatePerSec int    `json:"rate_per_sec,omitempty"` // default 1
	QueueSize  int    `json:"queue_size,omitempty"`   // default 64
}
