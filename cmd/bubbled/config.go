package main

import (
	"fmt"

	"github.com/BurntSushi/toml"

	"github.com/inklet/bubble"
	"github.com/inklet/bubble/media"
	"github.com/inklet/bubble/text"
)

// SceneConfig is the TOML description of a scene to export.
type SceneConfig struct {
	Media   MediaConfig    `toml:"media"`
	Edits   EditsConfig    `toml:"edits"`
	Meme    MemeConfig     `toml:"meme"`
	Font    string         `toml:"font"` // path to a .ttf/.otf file
	Frame   int            `toml:"frame"`
	Bubbles []BubbleConfig `toml:"bubble"`
}

// MediaConfig names the background media. A right path enables dual
// mode.
type MediaConfig struct {
	Left  string `toml:"left"`
	Right string `toml:"right"`
}

// EditsConfig is the trim/cut/reverse state applied to a left video.
type EditsConfig struct {
	TrimIn  *int     `toml:"trim_in"`
	TrimOut *int     `toml:"trim_out"`
	Cuts    [][2]int `toml:"cuts"`
	Reverse bool     `toml:"reverse"`
}

// MemeConfig enables the caption bar pair.
type MemeConfig struct {
	Enabled bool   `toml:"enabled"`
	Top     string `toml:"top"`
	Bottom  string `toml:"bottom"`
}

// BubbleConfig describes one bubble.
type BubbleConfig struct {
	Style       string   `toml:"style"`
	X           float64  `toml:"x"`
	Y           float64  `toml:"y"`
	Width       float64  `toml:"width"`
	Height      float64  `toml:"height"`
	Text        string   `toml:"text"`
	FontSize    float64  `toml:"font_size"`
	Fill        string   `toml:"fill"`
	Border      string   `toml:"border"`
	BorderWidth *float64 `toml:"border_width"`
	TextColor   string   `toml:"text_color"`
	TailX       *float64 `toml:"tail_x"`
	TailY       *float64 `toml:"tail_y"`
}

// LoadSceneConfig parses a scene description file.
func LoadSceneConfig(path string) (*SceneConfig, error) {
	var cfg SceneConfig
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return &cfg, nil
}

// BuildScene assembles a live scene from the config: media, edits,
// modes, fonts and bubbles.
func BuildScene(cfg *SceneConfig) (*bubble.Scene, error) {
	scene := bubble.NewScene()

	if cfg.Font != "" {
		source, err := text.LoadFontSource(cfg.Font)
		if err != nil {
			return nil, fmt.Errorf("loading font: %w", err)
		}
		scene.SetFontResolver(func(spec bubble.FontSpec) text.Face {
			return source.Face(spec.Size)
		})
		text.SetShaper(text.NewGoTextShaper())
	}

	if cfg.Media.Left != "" {
		src, err := media.Open(cfg.Media.Left)
		if err != nil {
			return nil, err
		}
		scene.SetMedia(src)
		applyEdits(src, cfg.Edits)
	}
	if cfg.Media.Right != "" {
		if !scene.HasMedia() {
			return nil, fmt.Errorf("media.right requires media.left")
		}
		src, err := media.Open(cfg.Media.Right)
		if err != nil {
			return nil, err
		}
		scene.EnableDual()
		scene.SetRightMedia(src)
	}

	if cfg.Meme.Enabled {
		scene.EnableMemeMode()
		top, bottom := scene.MemeBars()
		if cfg.Meme.Top != "" {
			top.SetText(cfg.Meme.Top)
		}
		if cfg.Meme.Bottom != "" {
			bottom.SetText(cfg.Meme.Bottom)
		}
	}

	scene.SetCurrentFrame(cfg.Frame)

	for i, bc := range cfg.Bubbles {
		if err := addBubble(scene, bc); err != nil {
			return nil, fmt.Errorf("bubble %d: %w", i+1, err)
		}
	}
	return scene, nil
}

func applyEdits(src media.FrameSource, cfg EditsConfig) {
	vs, ok := src.(*media.VideoSource)
	if !ok {
		return
	}
	e := vs.Edits()
	if cfg.TrimOut != nil {
		e.SetTrimOut(*cfg.TrimOut)
	}
	if cfg.TrimIn != nil {
		e.SetTrimIn(*cfg.TrimIn)
	}
	for _, c := range cfg.Cuts {
		e.AddCut(c[0], c[1])
	}
	if cfg.Reverse {
		e.ToggleReverse()
	}
}

func addBubble(scene *bubble.Scene, bc BubbleConfig) error {
	style := bubble.StyleOval
	if bc.Style != "" {
		var err error
		style, err = bubble.ParseStyle(bc.Style)
		if err != nil {
			return err
		}
	}

	b := scene.AddBubbleAt(bc.X, bc.Y, style)

	if bc.Width > 0 || bc.Height > 0 {
		r := b.BodyRect()
		w := r.Width()
		h := r.Height()
		if bc.Width > 0 {
			w = bc.Width
		}
		if bc.Height > 0 {
			h = bc.Height
		}
		b.SetBodyRect(bubble.RectCentered(bubble.Point{}, w, h))
	}
	if bc.FontSize > 0 {
		f := b.Font()
		f.Size = bc.FontSize
		b.SetFont(f)
	}
	if bc.Fill != "" {
		b.SetFillColor(bubble.Hex(bc.Fill))
	}
	if bc.Border != "" {
		b.SetBorderColor(bubble.Hex(bc.Border))
	}
	if bc.BorderWidth != nil {
		b.SetBorderWidth(*bc.BorderWidth)
	}
	if bc.TextColor != "" {
		b.SetTextColor(bubble.Hex(bc.TextColor))
	}
	if bc.TailX != nil || bc.TailY != nil {
		tip := b.TailTip()
		if bc.TailX != nil {
			tip.X = *bc.TailX
		}
		if bc.TailY != nil {
			tip.Y = *bc.TailY
		}
		b.SetTailTip(tip)
	}
	if bc.Text != "" {
		b.SetText(bc.Text)
	}
	return nil
}
