package config

const (
	defaultPreferencesFile = "config.json"
	defaultLedgerFile      = "budget_data.json"
)

type StorageConfig struct {
	PreferencesPath string `yaml:"preferences-file"`
	LedgerPath      string `yaml:"ledger-file"`
}

func defaultStorageConfig() StorageConfig {
	return StorageConfig{
		PreferencesPath: defaultPreferencesFile,
		LedgerPath:      defaultLedgerFile,
	}
}

func (s *StorageConfig) PreferencesFile() string {
	return s.PreferencesPath
}

func (s *StorageConfig) LedgerFile() string {
	return s.LedgerPath
}
