package util

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"
)

func ReadConfig() error {
	viper.SetConfigName("config")
	viper.AddConfigPath("./data/")
	viper.AutomaticEnv()

	err := viper.ReadInConfig()
	if err != nil {
		return fmt.Errorf("fatal error config file: %w", err)
	}
	return nil
}

// IsConfigNotFound. config file is optional, every key has a viper default.
func IsConfigNotFound(err error) bool {
	var notFound viper.ConfigFileNotFoundError
	return err != nil && errors.As(err, &notFound)
}
