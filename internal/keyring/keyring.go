package keyring

import (
	"github.com/zalando/go-keyring"
)

const serviceName = "palangrotte"

// SavePassword stores the vault password in the OS keyring, keyed by
// the vault file path.
func SavePassword(vaultFile string, password string) error {
	return keyring.Set(serviceName, vaultFile, password)
}

// GetPassword retrieves a vault password from the OS keyring
func GetPassword(vaultFile string) (string, error) {
	return keyring.Get(serviceName, vaultFile)
}

// DeletePassword removes a vault password from the OS keyring
func DeletePassword(vaultFile string) error {
	return keyring.Delete(serviceName, vaultFile)
}

// HasPassword checks if a password is stored in the keyring
func HasPassword(vaultFile string) bool {
	_, err := keyring.Get(serviceName, vaultFile)
	return err == nil
}
