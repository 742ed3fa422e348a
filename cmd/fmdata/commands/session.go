package commands

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/fivetwenty-io/fmdata/internal/constants"
	"github.com/fivetwenty-io/fmdata/pkg/fmclient"
	"github.com/fivetwenty-io/fmdata/pkg/fmdata"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"
)

// createClient builds a logged-out client from the effective configuration.
// Credentials are only resolved, and possibly prompted for, when the caller
// is going to open a session.
func createClient(requireCredentials bool) (fmdata.Client, *fmdata.Config, error) {
	config := loadConfig()

	var password string

	if requireCredentials {
		var err error

		password, err = resolvePassword(config)
		if err != nil {
			return nil, nil, err
		}
	}

	clientConfig, err := buildClientConfig(config, password)
	if err != nil {
		return nil, nil, err
	}

	client, err := fmclient.New(clientConfig)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create client: %w", err)
	}

	return client, clientConfig, nil
}

// resolvePassword returns the configured password or prompts for it when
// stdin is a terminal.
func resolvePassword(config *Config) (string, error) {
	password := viper.GetString("password")
	if password != "" {
		return password, nil
	}

	if !term.IsTerminal(int(syscall.Stdin)) {
		if config.User == "" {
			return "", constants.ErrUserRequired
		}

		return "", nil
	}

	if config.User == "" {
		reader := bufio.NewReader(os.Stdin)
		fmt.Fprint(os.Stderr, "User: ")
		user, _ := reader.ReadString('\n')
		config.User = strings.TrimSpace(user)
	}

	fmt.Fprint(os.Stderr, "Password: ")

	bytePassword, err := term.ReadPassword(int(syscall.Stdin))
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}

	fmt.Fprintln(os.Stderr)

	return string(bytePassword), nil
}

// withSession opens a session, runs fn and always closes the session again.
func withSession(cmd *cobra.Command, requireLayout bool, fn func(ctx context.Context, client fmdata.Client) error) error {
	client, clientConfig, err := createClient(true)
	if err != nil {
		return err
	}

	if requireLayout && client.Layout() == "" {
		return constants.ErrLayoutRequired
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	_, err = client.Login(ctx)
	if err != nil {
		return fmt.Errorf("failed to log in: %w", err)
	}

	defer func() {
		_, logoutErr := client.Logout(context.WithoutCancel(ctx))
		if logoutErr != nil {
			clientConfig.Logger.Warn("failed to close session", map[string]interface{}{
				"error": logoutErr.Error(),
			})
		}
	}()

	return fn(ctx, client)
}
