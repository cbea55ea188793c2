package fetcher

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/youtube/v3"
)

// OAuthClient returns an http client authorized to manage captions. The token
// is read from tokenPath. When there is none yet, the user is asked to visit
// the consent page and paste the code, and the token is stored for next runs.
func OAuthClient(ctx context.Context, clientSecrets []byte, tokenPath string, in io.Reader, out io.Writer) (*http.Client, error) {
	conf, err := google.ConfigFromJSON(clientSecrets, youtube.YoutubeForceSslScope)
	if err != nil {
		return nil, fmt.Errorf("parse client secrets: %w", err)
	}

	token, err := readToken(tokenPath)
	if err != nil {
		token, err = exchangeToken(ctx, conf, in, out)
		if err != nil {
			return nil, err
		}
		if err := saveToken(tokenPath, token); err != nil {
			return nil, err
		}
	}

	return conf.Client(ctx, token), nil
}

func readToken(path string) (*oauth2.Token, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	token := &oauth2.Token{}
	if err := json.Unmarshal(data, token); err != nil {
		return nil, fmt.Errorf("parse oauth token %s: %w", path, err)
	}
	return token, nil
}

func saveToken(path string, token *oauth2.Token) error {
	data, err := json.Marshal(token)
	if err != nil {
		return fmt.Errorf("marshal oauth token: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("save oauth token: %w", err)
	}
	return nil
}

func exchangeToken(ctx context.Context, conf *oauth2.Config, in io.Reader, out io.Writer) (*oauth2.Token, error) {
	fmt.Fprintf(out, "Open the following link in your browser, then paste the authorization code:\n%s\n> ",
		conf.AuthCodeURL("captionsbot", oauth2.AccessTypeOffline))

	scanner := bufio.NewScanner(in)
	if !scanner.Scan() {
		return nil, fmt.Errorf("no authorization code provided")
	}
	code := strings.TrimSpace(scanner.Text())

	token, err := conf.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("exchange authorization code: %w", err)
	}
	return token, nil
}
