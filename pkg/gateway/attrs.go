package gateway

import (
	"github.com/rs/zerolog/log"

	"github.com/dormantflower/webgw/pkg/config"
	"github.com/dormantflower/webgw/pkg/ipcclient"
	"github.com/dormantflower/webgw/pkg/proto"
)

// resolveStyle resolves the configured theme's palette, falling back
// silently (logged at debug level) to the handle's OS-default palette
// when the configured theme name has no entry.
func resolveStyle(cfg config.GatewayConfig, h *ipcclient.Handle) proto.Style {
	palette := h.LoadPalette()
	if theme, ok := config.Themes[cfg.ThemeName]; ok {
		palette = proto.Palette{
			Foreground: theme.Foreground,
			Background: theme.Background,
			Cursor:     theme.Cursor,
			Colors:     theme.Colors,
		}
	} else {
		log.Debug().Str("theme", cfg.ThemeName).Msg("gateway: theme not found, using OS-default palette")
	}

	return proto.Style{
		Colors:          palette,
		RoundedCorners:  cfg.UI.PaneFrames.RoundedCorners,
		HideSessionName: cfg.UI.PaneFrames.HideSessionName,
	}
}
