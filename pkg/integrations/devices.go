package integrations

import "sort"

// Device describes a reading device the booklet images are sized for.
type Device struct {
	Name      string
	Width     int  // screen width in pixels
	Height    int  // screen height in pixels
	DPI       int
	Grayscale bool // e-ink panel
}

// Devices are the predefined booklet targets.
var Devices = map[string]Device{
	"kindle-paperwhite": {
		Name:      "Kindle Paperwhite",
		Width:     1236,
		Height:    1648,
		DPI:       300,
		Grayscale: true,
	},
	"kindle-basic": {
		Name:      "Kindle",
		Width:     1072,
		Height:    1448,
		DPI:       300,
		Grayscale: true,
	},
	"kobo-clara": {
		Name:      "Kobo Clara",
		Width:     1072,
		Height:    1448,
		DPI:       300,
		Grayscale: true,
	},
	"tablet": {
		Name:   "Tablet",
		Width:  1536,
		Height: 2048,
		DPI:    264,
	},
	"phone": {
		Name:   "Phone",
		Width:  1080,
		Height: 1920,
		DPI:    400,
	},
}

// DefaultDevice is used when no device is chosen.
const DefaultDevice = "tablet"

// GetDevice returns the profile for id.
func GetDevice(id string) (Device, bool) {
	d, ok := Devices[id]
	return d, ok
}

// ListDevices returns "id: name" entries sorted by id.
func ListDevices() []string {
	ids := make([]string, 0, len(Devices))
	for id := range Devices {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, id+": "+Devices[id].Name)
	}
	return out
}

// ImageSettings controls how exercise images are processed for a booklet.
type ImageSettings struct {
	MaxWidth  int
	MaxHeight int
	Quality   int     // JPEG quality (1-100)
	Grayscale bool
	Contrast  float64 // 1.0 = no change
	Format    string  // "jpeg" or "png"
}

// ImageSettings returns recommended settings for d. Exercise images take at
// most half the screen height so the description fits on the same page.
func (d Device) ImageSettings() ImageSettings {
	s := ImageSettings{
		MaxWidth:  d.Width,
		MaxHeight: d.Height / 2,
		Quality:   85,
		Grayscale: d.Grayscale,
		Contrast:  1.0,
		Format:    "jpeg",
	}
	if d.Grayscale {
		s.Contrast = 1.1
	}
	if d.DPI >= 300 {
		s.Quality = 90
	}
	return s
}
