package config

import "github.com/spf13/pflag"

// Flags holds the command-line overrides bound on a flag set.
type Flags struct {
	fs *pflag.FlagSet

	Config string
	Debug  bool
	Speed  float64
	Spin   float64
	Seed   uint64
}

// BindFlags registers the config flags on fs.
func BindFlags(fs *pflag.FlagSet) *Flags {
	f := &Flags{fs: fs}
	fs.StringVar(&f.Config, "config", "", "Path to config file")
	fs.BoolVar(&f.Debug, "debug", false, "Enable debug logging")
	fs.Float64Var(&f.Speed, "speed", 0, "Throw speed")
	fs.Float64Var(&f.Spin, "spin", 0, "Throw spin")
	fs.Uint64Var(&f.Seed, "seed", 0, "Random seed (0 picks one)")
	return f
}

// changed reports whether name was set on the command line. Flags not bound
// to a flag set count as changed when they hold a non-zero value.
func (f *Flags) changed(name string, nonZero bool) bool {
	if f.fs == nil {
		return nonZero
	}
	return f.fs.Changed(name)
}

// apply applies CLI flag overrides to the config.
func (f *Flags) apply(cfg *Config) {
	if f.changed("debug", f.Debug) && f.Debug {
		cfg.Logging.Level = "debug"
	}
	if f.changed("speed", f.Speed != 0) {
		cfg.Throw.Speed = f.Speed
	}
	if f.changed("spin", f.Spin != 0) {
		cfg.Throw.Spin = f.Spin
	}
	if f.changed("seed", f.Seed != 0) {
		cfg.Throw.Seed = f.Seed
	}
}
