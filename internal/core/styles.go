package core

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/chess10kp/gocalc/internal/config"
	"github.com/gotk3/gotk3/gdk"
	"github.com/gotk3/gotk3/gtk"
)

// BuildCSS renders the stylesheet for the calculator window from cfg.
func BuildCSS(s config.StylingConfig) string {
	var b strings.Builder

	fmt.Fprintf(&b, `
* {
    font-family: %s;
    font-size: %dpx;
}

#calc-window, #calc-window box {
    background-color: %s;
    color: %s;
}

menubar {
    background-color: %s;
    color: %s;
}

#calc-display {
    background-color: %s;
    color: %s;
    border: 1px solid %s;
    border-radius: %dpx;
    padding: 4px 8px;
    font-weight: bold;
}

#calc-display:focus {
    border-color: %s;
}

#calc-grid button {
    background-image: none;
    background-color: %s;
    color: %s;
    border: none;
    border-radius: %dpx;
}

#calc-grid button:hover {
    background-color: %s;
}

#calc-grid button.calc-operator {
    background-color: %s;
}

#calc-grid button.calc-equals, #calc-grid button.calc-clear {
    background-color: %s;
    color: %s;
}
`,
		s.FontFamily, s.FontSize,
		s.BackgroundColor, s.ForegroundColor,
		s.BackgroundColor, s.ForegroundColor,
		s.DisplayBackground, s.ForegroundColor, s.DisplayBorderColor, s.BorderRadius,
		s.AccentColor,
		s.ButtonBackground, s.ForegroundColor, s.BorderRadius,
		s.ButtonHover,
		s.OperatorBackground,
		s.AccentColor, s.BackgroundColor,
	)

	return b.String()
}

func SetupStyles(cfg *config.Config) {
	screen, err := gdk.ScreenGetDefault()
	if err != nil || screen == nil {
		log.Printf("Warning: Failed to get default screen: %v", err)
		return
	}

	provider, err := gtk.CssProviderNew()
	if err != nil {
		log.Printf("Warning: Failed to create CSS provider: %v", err)
		return
	}
	if err := provider.LoadFromData(BuildCSS(cfg.Styling)); err != nil {
		log.Printf("Warning: Failed to load default styles: %v", err)
		return
	}

	gtk.AddProviderForScreen(screen, provider, gtk.STYLE_PROVIDER_PRIORITY_APPLICATION)

	if cfg.Styling.CustomCSS != "" {
		LoadCustomCSS(screen, cfg.Styling.CustomCSS)
	}
}

func LoadCustomCSS(screen *gdk.Screen, path string) {
	data, err := os.ReadFile(path)
	if err != nil {
		log.Printf("Warning: Failed to read custom CSS %s: %v", path, err)
		return
	}

	provider, err := gtk.CssProviderNew()
	if err != nil {
		return
	}
	if err := provider.LoadFromData(string(data)); err != nil {
		log.Printf("Warning: Failed to load custom CSS %s: %v", path, err)
		return
	}
	gtk.AddProviderForScreen(screen, provider, gtk.STYLE_PROVIDER_PRIORITY_USER)
}
