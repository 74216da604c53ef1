// Package config holds the SDK settings: base URLs of the ONAP services
// and polling knobs. Values resolve in the usual order: explicit file,
// then ONAP_* environment variables, then the simpledemo NodePort
// defaults every ONAP lab install exposes.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Settings collects every endpoint the SDK talks to.
type Settings struct {
	SDCFEURL string `mapstructure:"sdc_fe_url"`
	SDCBEURL string `mapstructure:"sdc_be_url"`
	AAIURL   string `mapstructure:"aai_url"`
	SOURL    string `mapstructure:"so_url"`
	SDNCURL  string `mapstructure:"sdnc_url"`
	ClampURL string `mapstructure:"clamp_url"`
	VIDURL   string `mapstructure:"vid_url"`
	MSBURL   string `mapstructure:"msb_url"`
	NBIURL   string `mapstructure:"nbi_url"`
	CDSURL   string `mapstructure:"cds_url"`

	SOAPIVersion  string `mapstructure:"so_api_version"`
	AAIAPIVersion string `mapstructure:"aai_api_version"`

	// PollInterval and PollTimeout drive every wait-for-completion loop
	// (SO orchestration requests, CLAMP DCAE deployment, distribution).
	PollInterval time.Duration `mapstructure:"poll_interval"`
	PollTimeout  time.Duration `mapstructure:"poll_timeout"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("sdc_fe_url", "https://sdc.api.fe.simpledemo.onap.org:30207")
	v.SetDefault("sdc_be_url", "https://sdc.api.be.simpledemo.onap.org:30204")
	v.SetDefault("aai_url", "https://aai.api.sparky.simpledemo.onap.org:30233")
	v.SetDefault("so_url", "http://so.api.simpledemo.onap.org:30277")
	v.SetDefault("sdnc_url", "https://sdnc.api.simpledemo.onap.org:30267")
	v.SetDefault("clamp_url", "https://clamp.api.simpledemo.onap.org:30258")
	v.SetDefault("vid_url", "https://vid.api.simpledemo.onap.org:30200")
	v.SetDefault("msb_url", "https://msb.api.simpledemo.onap.org:30283")
	v.SetDefault("nbi_url", "https://nbi.api.simpledemo.onap.org:30274")
	v.SetDefault("cds_url", "http://cds.api.simpledemo.onap.org:30449")
	v.SetDefault("so_api_version", "v7")
	v.SetDefault("aai_api_version", "v16")
	v.SetDefault("poll_interval", 10*time.Second)
	v.SetDefault("poll_timeout", 30*time.Minute)
}

// Load resolves settings from the environment and defaults.
func Load() (*Settings, error) {
	return LoadFile("")
}

// LoadFile resolves settings, additionally reading the given YAML file
// when path is non-empty.
func LoadFile(path string) (*Settings, error) {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix("onap")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read settings file %s: %w", path, err)
		}
	}
	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("parse settings: %w", err)
	}
	return &s, nil
}

// Default returns the built-in settings without touching environment or
// files. Handy for tests, which overwrite the URLs anyway.
func Default() *Settings {
	v := viper.New()
	setDefaults(v)
	var s Settings
	_ = v.Unmarshal(&s)
	return &s
}
