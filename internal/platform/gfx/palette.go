package gfx

import (
	"image/color"

	"github.com/vovakirdan/bottlepop/internal/core"
)

// Background is the window clear color.
var Background = color.RGBA{0x10, 0x12, 0x1a, 0xff}

// palette maps terminal colors to RGB for the window renderer.
var palette = map[core.Color]color.RGBA{
	core.ColorDefault:       {0xd0, 0xd0, 0xd0, 0xff},
	core.ColorRed:           {0xc0, 0x30, 0x30, 0xff},
	core.ColorGreen:         {0x30, 0xa0, 0x40, 0xff},
	core.ColorYellow:        {0xc0, 0xa0, 0x20, 0xff},
	core.ColorBlue:          {0x30, 0x50, 0xc0, 0xff},
	core.ColorMagenta:       {0xa0, 0x30, 0xa0, 0xff},
	core.ColorCyan:          {0x30, 0xa0, 0xb0, 0xff},
	core.ColorWhite:         {0xc8, 0xc8, 0xc8, 0xff},
	core.ColorBrightRed:     {0xff, 0x55, 0x55, 0xff},
	core.ColorBrightGreen:   {0x55, 0xff, 0x70, 0xff},
	core.ColorBrightYellow:  {0xff, 0xe0, 0x55, 0xff},
	core.ColorBrightBlue:    {0x60, 0x90, 0xff, 0xff},
	core.ColorBrightMagenta: {0xff, 0x70, 0xff, 0xff},
	core.ColorBrightCyan:    {0x60, 0xf0, 0xff, 0xff},
	core.ColorBrightWhite:   {0xff, 0xff, 0xff, 0xff},
	core.ColorOrange:        {0xff, 0x90, 0x30, 0xff},
	core.ColorGray:          {0x8a, 0x8a, 0x8a, 0xff},
	core.ColorDarkGray:      {0x44, 0x44, 0x44, 0xff},
}

// RGBA returns the window color for a terminal color.
func RGBA(c core.Color) color.RGBA {
	if rgba, ok := palette[c]; ok {
		return rgba
	}
	return palette[core.ColorDefault]
}
