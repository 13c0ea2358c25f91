package config

import (
	"errors"
	"io/fs"

	"github.com/spf13/viper"
)

type Config struct {
	App struct {
		Env      string
		Timezone string
	} `mapstructure:"app"`

	Storage struct {
		Dir string
	} `mapstructure:"storage"`

	Units []string `mapstructure:"units"`

	Seed struct {
		Enabled bool
		Members int
	} `mapstructure:"seed"`
}

// DefaultUnits — компилируемый набор подразделений; файл конфига может его переопределить.
var DefaultUnits = []string{"unit1", "unit2", "unit3", "unit4", "unit5", "unit6", "unit7"}

func Load(path string) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("APP")
	v.AutomaticEnv()

	v.SetDefault("app.env", "prod")
	v.SetDefault("app.timezone", "Local")
	v.SetDefault("storage.dir", "gym_units")
	v.SetDefault("units", DefaultUnits)
	v.SetDefault("seed.enabled", true)
	v.SetDefault("seed.members", 10)

	var c Config
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			// Нет файла — работаем на дефолтах; битый файл — ошибка.
			return c, err
		}
	}
	if err := v.Unmarshal(&c); err != nil {
		return c, err
	}
	return c, nil
}
