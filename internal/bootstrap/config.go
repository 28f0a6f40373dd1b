package bootstrap

import (
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v9"
	log "github.com/sirupsen/logrus"

	"github.com/placeatlas/ops-portal/cmd/flags"
	"github.com/placeatlas/ops-portal/internal/conf"
	"github.com/placeatlas/ops-portal/pkg/utils"
)

func InitConfig() {
	log.Infof("reading config file: %s", flags.ConfigFile)
	conf.Conf = conf.DefaultConfig()
	data, err := os.ReadFile(flags.ConfigFile)
	switch {
	case err == nil:
		if err := utils.Json.Unmarshal(data, conf.Conf); err != nil {
			log.Fatalf("failed parse config: %+v", err)
		}
	case os.IsNotExist(err):
		// first run: write the defaults out as a template
		if out, merr := utils.Json.MarshalIndent(conf.Conf, "", "  "); merr == nil {
			_ = os.MkdirAll(filepath.Dir(flags.ConfigFile), 0o755)
			if werr := os.WriteFile(flags.ConfigFile, out, 0o644); werr != nil {
				log.Warnf("failed create default config file: %+v", werr)
			}
		}
	default:
		log.Fatalf("failed read config file: %+v", err)
	}
	if err := env.Parse(conf.Conf); err != nil {
		log.Fatalf("failed parse environment: %+v", err)
	}
	if err := os.MkdirAll(conf.Conf.TempDir, 0o755); err != nil {
		log.Fatalf("failed create temp dir: %+v", err)
	}
}
