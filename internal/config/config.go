// Package config загружает TOML-конфиг сервера и экспорта.
package config

import (
	"errors"
	"fmt"

	"github.com/BurntSushi/toml"
	"go.uber.org/multierr"

	"github.com/0x0FACED/go-lloyd/pkg/shader"
)

var ErrInvalidConfig = errors.New("invalid config")

// Ограничения построения O(n^2): общие для конфига, CLI и HTTP.
const (
	MaxSites      = 2000
	MaxRelaxSteps = 1000
)

type Config struct {
	Server  Server  `toml:"server"`
	Scene   Scene   `toml:"scene"`
	Shading Shading `toml:"shading"`
}

type Server struct {
	Addr string `toml:"addr"`
}

type Scene struct {
	Width      int     `toml:"width"`
	Height     int     `toml:"height"`
	Sites      int     `toml:"sites"`
	Random     bool    `toml:"random"`
	Seed       int64   `toml:"seed"`
	Margin     float64 `toml:"margin"`
	RelaxSteps int     `toml:"relax_steps"`
}

type Shading struct {
	Mode       string  `toml:"mode"`
	Hue        float64 `toml:"hue"`
	Spread     float64 `toml:"spread"`
	Saturation float64 `toml:"saturation"`
	Lightness  float64 `toml:"lightness"`
	Scale      float64 `toml:"scale"`
	Speed      float64 `toml:"speed"`
	Octaves    int     `toml:"octaves"`
	ShowEdges  bool    `toml:"show_edges"`
	ShowSites  bool    `toml:"show_sites"`
	Highlight  bool    `toml:"highlight"`
	Glow       bool    `toml:"glow"`
	EdgeWidth  float64 `toml:"edge_width"`
	SiteRadius float64 `toml:"site_radius"`
}

func Default() Config {
	o := shader.DefaultOptions()
	return Config{
		Server: Server{Addr: ":8080"},
		Scene: Scene{
			Width:      1000,
			Height:     600,
			Sites:      30,
			Random:     true,
			Seed:       1,
			Margin:     20,
			RelaxSteps: 0,
		},
		Shading: Shading{
			Mode:       string(o.Mode),
			Hue:        o.Hue,
			Spread:     o.Spread,
			Saturation: o.Saturation,
			Lightness:  o.Lightness,
			Scale:      o.Scale,
			Speed:      o.Speed,
			Octaves:    o.Octaves,
			ShowEdges:  o.ShowEdges,
			ShowSites:  o.ShowSites,
			Highlight:  o.ShowHighlight,
			Glow:       o.Glow,
			EdgeWidth:  o.EdgeWidth,
			SiteRadius: o.SiteRadius,
		},
	}
}

// Load читает path поверх значений по умолчанию. Пустой path - только умолчания.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("decode %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("%w: unknown keys %v", ErrInvalidConfig, undecoded)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	var err error
	if c.Scene.Width <= 0 || c.Scene.Height <= 0 {
		err = multierr.Append(err, fmt.Errorf("%w: scene size %dx%d", ErrInvalidConfig, c.Scene.Width, c.Scene.Height))
	}
	if c.Scene.Sites < 0 || c.Scene.Sites > MaxSites {
		err = multierr.Append(err, fmt.Errorf("%w: site count %d, want 0..%d", ErrInvalidConfig, c.Scene.Sites, MaxSites))
	}
	if c.Scene.RelaxSteps < 0 || c.Scene.RelaxSteps > MaxRelaxSteps {
		err = multierr.Append(err, fmt.Errorf("%w: relax_steps %d, want 0..%d", ErrInvalidConfig, c.Scene.RelaxSteps, MaxRelaxSteps))
	}
	if _, perr := shader.ParseMode(c.Shading.Mode); perr != nil {
		err = multierr.Append(err, fmt.Errorf("%w: %v", ErrInvalidConfig, perr))
	}
	if c.Shading.Scale <= 0 {
		err = multierr.Append(err, fmt.Errorf("%w: shading scale must be positive", ErrInvalidConfig))
	}
	return err
}

// Options переводит секцию shading в снимок настроек отрисовки.
// Режим уже должен быть проверен.
func (s Shading) Options() shader.Options {
	mode, err := shader.ParseMode(s.Mode)
	if err != nil {
		mode = shader.ModeOff
	}
	return shader.Options{
		Mode:          mode,
		Hue:           s.Hue,
		Spread:        s.Spread,
		Saturation:    s.Saturation,
		Lightness:     s.Lightness,
		Scale:         s.Scale,
		Speed:         s.Speed,
		Octaves:       s.Octaves,
		ShowEdges:     s.ShowEdges,
		ShowSites:     s.ShowSites,
		ShowHighlight: s.Highlight,
		Glow:          s.Glow,
		EdgeWidth:     s.EdgeWidth,
		SiteRadius:    s.SiteRadius,
	}
}
