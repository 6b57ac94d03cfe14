package pkgconfig

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config is the read surface the application uses; the viper instance behind
// it stays private to this package.
type Config interface {
	GetString(key string) string
	GetInt(key string) int
	GetBool(key string) bool
	Close() error
}

type viperConfig struct {
	v *viper.Viper
}

// NewViper loads a YAML config file and binds the environment so secrets
// (e.g. AMADEUS_CLIENT_SECRET) never have to live in the file. Keys are
// looked up in the environment first with dots replaced by underscores.
func NewViper(path string) (Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	return &viperConfig{v: v}, nil
}

func (c *viperConfig) GetString(key string) string {
	return c.v.GetString(key)
}

func (c *viperConfig) GetInt(key string) int {
	return c.v.GetInt(key)
}

func (c *viperConfig) GetBool(key string) bool {
	return c.v.GetBool(key)
}

func (c *viperConfig) Close() error {
	return nil
}
