package gateway

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dormantflower/webgw/pkg/config"
	"github.com/dormantflower/webgw/pkg/ipcclient"
)

func TestResolveStyleKnownTheme(t *testing.T) {
	cfg := config.GatewayConfig{ThemeName: "default"}
	style := resolveStyle(cfg, &ipcclient.Handle{})
	assert.Equal(t, config.Themes["default"].Foreground, style.Colors.Foreground)
}

func TestResolveStyleUnknownThemeFallsBackToOSDefault(t *testing.T) {
	cfg := config.GatewayConfig{ThemeName: "does-not-exist"}
	h := &ipcclient.Handle{}
	style := resolveStyle(cfg, h)
	assert.Equal(t, h.LoadPalette(), style.Colors)
}

func TestResolveStyleCarriesUIFlags(t *testing.T) {
	cfg := config.GatewayConfig{
		ThemeName: "default",
		UI: config.UIConfig{
			PaneFrames: config.PaneFrameConfig{RoundedCorners: true, HideSessionName: true},
		},
	}
	style := resolveStyle(cfg, &ipcclient.Handle{})
	assert.True(t, style.RoundedCorners)
	assert.True(t, style.HideSessionName)
}
