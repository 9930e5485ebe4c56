package main

import (
	"math/rand/v2"
	"os"
	"time"

	"github.com/fine-structures/rho/rho"
	"github.com/fine-structures/rho/funcgraph"
	"github.com/fine-structures/rho/layout"
	"github.com/fine-structures/rho/session"
	"github.com/fine-structures/rho/tui"
	"github.com/fine-structures/rho/walker"
	"github.com/pkg/errors"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
)

// Config holds every setting of the CLI.  Defaults are overlaid by the YAML file named by --config, which is
// overlaid by flags given on the command line.
type Config struct {
	Nodes         int     `yaml:"nodes"`
	Seed          uint64  `yaml:"seed"` // 0 picks a seed from the clock
	Mode          string  `yaml:"mode"`
	Seq           string  `yaml:"seq"`
	HareSpeed     float64 `yaml:"hare_speed"`
	TortoiseSpeed float64 `yaml:"tortoise_speed"`
	FPS           int     `yaml:"fps"`
	TicksPerFrame int     `yaml:"ticks_per_frame"`
	Width         float64 `yaml:"width"`
	Height        float64 `yaml:"height"`
	Radius        float64 `yaml:"radius"`
}

func DefaultConfig() Config {
	return Config{
		Nodes:         session.DefaultOptions.Source.Count,
		Mode:          session.DefaultOptions.Mode.String(),
		HareSpeed:     walker.DefaultOptions.HareSpeed,
		TortoiseSpeed: walker.DefaultOptions.TortoiseSpeed,
		FPS:           tui.DefaultConfig.FPS,
		TicksPerFrame: tui.DefaultConfig.TicksPerFrame,
		Width:         layout.DefaultOptions.Width,
		Height:        layout.DefaultOptions.Height,
		Radius:        layout.DefaultOptions.Radius,
	}
}

// configFlags names the flags that mirror a Config field.
var configFlags = map[string]func(dst, src *Config){
	"nodes":           func(dst, src *Config) { dst.Nodes = src.Nodes },
	"seed":            func(dst, src *Config) { dst.Seed = src.Seed },
	"mode":            func(dst, src *Config) { dst.Mode = src.Mode },
	"seq":             func(dst, src *Config) { dst.Seq = src.Seq },
	"hare-speed":      func(dst, src *Config) { dst.HareSpeed = src.HareSpeed },
	"tortoise-speed":  func(dst, src *Config) { dst.TortoiseSpeed = src.TortoiseSpeed },
	"fps":             func(dst, src *Config) { dst.FPS = src.FPS },
	"ticks-per-frame": func(dst, src *Config) { dst.TicksPerFrame = src.TicksPerFrame },
}

func (cfg *Config) bindFlags(flags *pflag.FlagSet) {
	flags.IntVar(&cfg.Nodes, "nodes", cfg.Nodes, "node count of a random graph")
	flags.Uint64Var(&cfg.Seed, "seed", cfg.Seed, "random seed (0 = from the clock)")
	flags.StringVar(&cfg.Mode, "mode", cfg.Mode, "how random successors are drawn: uniform, noself or nonzero")
	flags.StringVar(&cfg.Seq, "seq", cfg.Seq, `explicit successor sequence, e.g. "1,2,3,4,2"`)
	flags.Float64Var(&cfg.HareSpeed, "hare-speed", cfg.HareSpeed, "hare speed in layout units per tick")
	flags.Float64Var(&cfg.TortoiseSpeed, "tortoise-speed", cfg.TortoiseSpeed, "tortoise speed in layout units per tick")
	flags.IntVar(&cfg.FPS, "fps", cfg.FPS, "frames per second")
	flags.IntVar(&cfg.TicksPerFrame, "ticks-per-frame", cfg.TicksPerFrame, "animation ticks per frame")
}

// LoadConfig reads a YAML file over the given defaults.
func LoadConfig(pathname string, defaults Config) (Config, error) {
	cfg := defaults
	data, err := os.ReadFile(pathname)
	if err != nil {
		return cfg, errors.Wrap(err, "read config")
	}
	if err = yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, errors.Wrapf(err, "parse config %q", pathname)
	}
	return cfg, nil
}

// overlayFile replaces cfg with the file's settings, keeping any value set by a flag on the command line.
func (cfg *Config) overlayFile(pathname string, flags *pflag.FlagSet) error {
	fileCfg, err := LoadConfig(pathname, DefaultConfig())
	if err != nil {
		return err
	}
	flags.Visit(func(f *pflag.Flag) {
		if apply := configFlags[f.Name]; apply != nil {
			apply(&fileCfg, cfg)
		}
	})
	*cfg = fileCfg
	return nil
}

// Rand returns the random source for this run, seeded from cfg.Seed.
func (cfg *Config) Rand() (*rand.Rand, uint64) {
	seed := cfg.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return rand.New(rand.NewPCG(seed, seed>>32|seed<<32)), seed
}

func (cfg *Config) GenMode() (rho.GenMode, error) {
	mode, ok := rho.ParseGenMode(cfg.Mode)
	if !ok {
		return mode, errors.Wrapf(rho.ErrInvalidArgument, "unknown mode %q", cfg.Mode)
	}
	return mode, nil
}

// Source resolves the graph to build: --seq wins, then a positional N or FILE token, then --nodes.
func (cfg *Config) Source(args []string) (funcgraph.Source, error) {
	switch {
	case cfg.Seq != "":
		values, err := funcgraph.ParseSequence(cfg.Seq)
		if err != nil {
			return funcgraph.Source{}, err
		}
		return funcgraph.Source{Values: values}, nil
	case len(args) > 0:
		return funcgraph.LoadToken(args[0], funcgraph.OSOpener)
	}
	return funcgraph.Source{Count: cfg.Nodes}, nil
}

// SessionOptions gathers what session.New needs.
func (cfg *Config) SessionOptions(args []string) (session.Options, error) {
	opts := session.DefaultOptions
	src, err := cfg.Source(args)
	if err != nil {
		return opts, err
	}
	mode, err := cfg.GenMode()
	if err != nil {
		return opts, err
	}
	opts.Source = src
	opts.Mode = mode
	opts.Layout.Width = cfg.Width
	opts.Layout.Height = cfg.Height
	opts.Layout.Radius = cfg.Radius
	opts.Walker = walker.Options{
		HareSpeed:     cfg.HareSpeed,
		TortoiseSpeed: cfg.TortoiseSpeed,
	}
	return opts, nil
}

func (cfg *Config) TUIConfig() tui.Config {
	return tui.Config{
		FPS:           cfg.FPS,
		TicksPerFrame: cfg.TicksPerFrame,
	}
}
