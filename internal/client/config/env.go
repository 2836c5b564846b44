package config

import (
	"io"

	"github.com/ilyakaznacheev/cleanenv"
)

// parseEnv overlays Config with the BOOKSHELF_* environment variables that
// are set. Unset variables leave fields untouched. Unparsable values panic.
func parseEnv(cfg *Config) {
	if err := cleanenv.ReadEnv(cfg); err != nil {
		panic(err)
	}
}

// EnvUsage writes the list of supported environment variables to w.
func EnvUsage(w io.Writer) {
	cleanenv.FUsage(w, &Config{}, nil)()
}
