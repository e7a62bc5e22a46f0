package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Credentials authenticate against the browser farm
type Credentials struct {
	Username  string `envconfig:"SAUCE_USER"`
	AccessKey string `envconfig:"SAUCE_ACCESS_KEY"`
	APIURL    string `envconfig:"SAUCE_API_URL" default:"https://saucelabs.com"`
}

// Complete reports whether both the username and the access key are set
func (c Credentials) Complete() bool {
	return c.Username != "" && c.AccessKey != ""
}

func (c Credentials) webURL() string {
	return strings.TrimRight(c.APIURL, "/")
}

// LoadCredentials loads envFile (if it exists) into the process environment and
// reads the farm credentials from it. Missing credentials are not an error here;
// they surface when the first session is provisioned.
func LoadCredentials(envFile string) (Credentials, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Credentials{}, fmt.Errorf("load env file %s: %w", envFile, err)
		}
	}

	var creds Credentials
	if err := envconfig.Process("", &creds); err != nil {
		return Credentials{}, fmt.Errorf("read credentials: %w", err)
	}
	return creds, nil
}
