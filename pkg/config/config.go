// Package config holds the gateway's runtime configuration, loaded from
// the environment via envconfig the way the rest of the teacher's server
// components do.
package config

import "github.com/kelseyhightower/envconfig"

// GatewayConfig is the full configuration surface for the web-client
// gateway process.
type GatewayConfig struct {
	Bind           string `envconfig:"WEBGW_BIND" default:"127.0.0.1:8082"`
	SocketDir      string `envconfig:"WEBGW_SOCKET_DIR" default:"/tmp/webgw"`
	DefaultSession string `envconfig:"WEBGW_DEFAULT_SESSION" default:"default"`

	// SupportExtendedKeyboard is a tri-state flag: absent or true means the
	// extended keyboard protocol is enabled; only an explicit false
	// disables it, per the attach-time disable_extended_keyboard rule.
	SupportExtendedKeyboard *bool `envconfig:"WEBGW_SUPPORT_EXTENDED_KEYBOARD"`

	// ThemeName selects an entry from Themes; envconfig only populates
	// scalar fields, so the theme table itself is a plain Go map rather
	// than an envconfig-tagged struct (see Themes below).
	ThemeName string `envconfig:"WEBGW_THEME" default:"default"`

	UI UIConfig
}

// ThemeConfig names a resolved palette.
type ThemeConfig struct {
	Foreground string
	Background string
	Cursor     string
	Colors     [16]string
}

// Themes is the built-in theme table; GatewayConfig.ThemeName selects one
// of these entries. A miss falls back to the OS-default palette.
var Themes = map[string]ThemeConfig{
	"default": {
		Foreground: "#c0c0c0",
		Background: "#000000",
		Cursor:     "#c0c0c0",
		Colors: [16]string{
			"#000000", "#800000", "#008000", "#808000",
			"#000080", "#800080", "#008080", "#c0c0c0",
			"#808080", "#ff0000", "#00ff00", "#ffff00",
			"#0000ff", "#ff00ff", "#00ffff", "#ffffff",
		},
	},
}

// UIConfig carries the pane-frame display flags the attach handshake
// copies into ClientAttributes.Style.
type UIConfig struct {
	PaneFrames PaneFrameConfig
}

type PaneFrameConfig struct {
	RoundedCorners  bool `envconfig:"WEBGW_ROUNDED_CORNERS" default:"true"`
	HideSessionName bool `envconfig:"WEBGW_HIDE_SESSION_NAME" default:"false"`
}

// Load reads GatewayConfig from the environment.
func Load() (GatewayConfig, error) {
	var cfg GatewayConfig
	if err := envconfig.Process("", &cfg); err != nil {
		return GatewayConfig{}, err
	}
	return cfg, nil
}

// DisableExtendedKeyboard reports whether the extended keyboard protocol
// should be disabled: true only when the flag is explicitly set to false.
func (c GatewayConfig) DisableExtendedKeyboard() bool {
	return c.SupportExtendedKeyboard != nil && !*c.SupportExtendedKeyboard
}
