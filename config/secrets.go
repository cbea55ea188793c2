package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

var ErrMissingSecret = errors.New("secret missing")

type Secret string

const (
	GitHubKey     Secret = "github-key.txt"
	YoutubeKey    Secret = "client-key.txt"
	ClientSecrets Secret = "client-secrets.json"
	OAuthToken    Secret = "credentials-oauth2.json"
	WebhookSecret Secret = "github-webhook-secret.txt"
)

var howTo = map[Secret]string{
	GitHubKey: `How to get a GitHub API key:
  1) Go to https://github.com/settings/tokens
  2) Create a new key
  3) Copy it to %s`,
	YoutubeKey: `How to get a Google API key:
  1) Go to https://console.developers.google.com
  2) Create a project
  3) Set the YouTube data API to "ON"
  4) Create a public access key
  5) Copy it to %s`,
	ClientSecrets: `To download the captions you need OAuth 2.0 client credentials.
  1) Go to https://console.developers.google.com
  2) Create an OAuth client id of type "Desktop app"
  3) Download its JSON and copy it to %s`,
	WebhookSecret: `How to get a GitHub webhook secret:
  1) Set up a webhook on the repository, content type application/json
  2) Choose a secret
  3) Copy it to %s`,
}

// SecretPath is the location of the secret file.
func (c *Config) SecretPath(name Secret) string {
	return filepath.Join(c.SecretsDir, string(name))
}

// Secret reads a secret file. The error of a missing file explains how to
// obtain the secret.
func (c *Config) Secret(name Secret) (string, error) {
	path := c.SecretPath(name)
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		return "", missing(name, path)
	case err != nil:
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	value := strings.TrimSpace(string(data))
	if value == "" {
		return "", missing(name, path)
	}

	return value, nil
}

func missing(name Secret, path string) error {
	msg, ok := howTo[name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrMissingSecret, path)
	}
	return fmt.Errorf("%w: %s\n\n%s", ErrMissingSecret, name, fmt.Sprintf(msg, path))
}
