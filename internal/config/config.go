package config

import (
	"io/fs"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

const configFile = "data/config.yaml"

type config struct {
	Storage StorageConfig `yaml:"storage"`
}

type Service struct {
	config config
}

// New reads the service configuration. A missing file is not an
// error: the defaults point at the documents in the working directory.
func New() (*Service, error) {
	s := &Service{config: config{Storage: defaultStorageConfig()}}

	rawYAML, err := os.ReadFile(configFile)
	if errors.Is(err, fs.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "reading config file")
	}

	err = yaml.Unmarshal(rawYAML, &s.config)
	if err != nil {
		return nil, errors.Wrap(err, "parsing yaml")
	}

	return s, nil
}

func (s *Service) Storage() *StorageConfig {
	return &s.config.Storage
}
