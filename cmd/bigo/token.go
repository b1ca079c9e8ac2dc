package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"bigo/internal/auth"
	"bigo/internal/slogutil"

	"github.com/spf13/cobra"
)

var (
	tokenName        string
	tokenScopes      []string
	tokenExpires     string
	tokenShowRevoked bool
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Manage API tokens for the HTTP server",
	Long: `Create, list, and revoke API tokens for authenticating with the bigo
HTTP API server. Tokens are stored hashed in .bigo/tokens.db; the raw
token is shown once at creation and cannot be recovered.

Examples:
  bigo token create --name "CI gate" --scopes read
  bigo token list
  bigo token revoke bigo_key_abc123`,
}

var tokenCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a new API token",
	Long: `Create a new API token with the given scopes.

Scopes:
  read   - Run analyses and read stored verdicts
  write  - Additionally persist verdicts and purge the store
  admin  - Full access including token management

Examples:
  bigo token create --name "CI gate" --scopes read
  bigo token create --name "Editor" --scopes read,write --expires 30d`,
	RunE: runTokenCreate,
}

var tokenListCmd = &cobra.Command{
	Use:   "list",
	Short: "List API tokens",
	RunE:  runTokenList,
}

var tokenRevokeCmd = &cobra.Command{
	Use:   "revoke <key-id>",
	Short: "Revoke an API token",
	Args:  cobra.ExactArgs(1),
	RunE:  runTokenRevoke,
}

func init() {
	tokenCreateCmd.Flags().StringVar(&tokenName, "name", "", "Token name (required)")
	tokenCreateCmd.Flags().StringSliceVar(&tokenScopes, "scopes", nil, "Scopes: read, write, admin (required)")
	tokenCreateCmd.Flags().StringVar(&tokenExpires, "expires", "", "Expiration (e.g. 30d, 12h, or RFC3339 date)")
	_ = tokenCreateCmd.MarkFlagRequired("name")
	_ = tokenCreateCmd.MarkFlagRequired("scopes")

	tokenListCmd.Flags().BoolVar(&tokenShowRevoked, "show-revoked", false, "Include revoked tokens")

	tokenCmd.AddCommand(tokenCreateCmd)
	tokenCmd.AddCommand(tokenListCmd)
	tokenCmd.AddCommand(tokenRevokeCmd)
	rootCmd.AddCommand(tokenCmd)
}

// openTokenManager opens the key store and wraps it in an auth manager.
// The returned closer must be called when done.
func openTokenManager() (*auth.Manager, func(), error) {
	repoRoot := mustGetRepoRoot()
	cfg := mustLoadConfig(repoRoot)
	logger := slogutil.NewDiscardLogger()

	keyStore, err := auth.OpenKeyStore(tokenDBPath(repoRoot, cfg), logger)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open token store: %w", err)
	}

	mgr, err := auth.NewManager(true, keyStore, logger)
	if err != nil {
		keyStore.Close()
		return nil, nil, err
	}
	return mgr, func() { keyStore.Close() }, nil
}

func runTokenCreate(cmd *cobra.Command, args []string) error {
	mgr, closeStore, err := openTokenManager()
	if err != nil {
		return err
	}
	defer closeStore()

	scopes := make([]auth.Scope, 0, len(tokenScopes))
	for _, s := range tokenScopes {
		scopes = append(scopes, auth.Scope(strings.TrimSpace(s)))
	}

	opts := auth.CreateKeyOptions{
		Name:   tokenName,
		Scopes: scopes,
	}
	if tokenExpires != "" {
		expiresAt, err := parseExpiry(tokenExpires)
		if err != nil {
			return err
		}
		opts.ExpiresAt = &expiresAt
	}

	key, token, err := mgr.CreateKey(opts)
	if err != nil {
		return fmt.Errorf("failed to create token: %w", err)
	}

	if formatFlag == "json" || formatFlag == "yaml" {
		out, err := FormatResponse(map[string]interface{}{
			"key":   key,
			"token": token,
		}, OutputFormat(formatFlag))
		if err != nil {
			return err
		}
		fmt.Println(out)
		return nil
	}

	fmt.Printf("Created token %q\n\n", key.Name)
	fmt.Printf("  Key ID: %s\n", key.ID)
	fmt.Printf("  Scopes: %s\n", joinScopes(key.Scopes))
	if key.ExpiresAt != nil {
		fmt.Printf("  Expires: %s\n", key.ExpiresAt.Format(time.RFC3339))
	}
	fmt.Printf("\n  Token: %s\n\n", token)
	fmt.Println("Store this token now. It will not be shown again.")
	return nil
}

func runTokenList(cmd *cobra.Command, args []string) error {
	mgr, closeStore, err := openTokenManager()
	if err != nil {
		return err
	}
	defer closeStore()

	keys, err := mgr.ListKeys(tokenShowRevoked)
	if err != nil {
		return fmt.Errorf("failed to list tokens: %w", err)
	}

	if formatFlag == "json" || formatFlag == "yaml" {
		out, err := FormatResponse(keys, OutputFormat(formatFlag))
		if err != nil {
			return err
		}
		fmt.Println(out)
		return nil
	}

	if len(keys) == 0 {
		fmt.Println("No tokens.")
		return nil
	}
	for _, key := range keys {
		status := "active"
		if key.Revoked {
			status = "revoked"
		} else if key.IsExpired() {
			status = "expired"
		}
		lastUsed := "never"
		if key.LastUsedAt != nil {
			lastUsed = key.LastUsedAt.Format(time.RFC3339)
		}
		fmt.Printf("%s  %-20s %-8s scopes=%s last-used=%s\n",
			key.ID, key.Name, status, joinScopes(key.Scopes), lastUsed)
	}
	return nil
}

func runTokenRevoke(cmd *cobra.Command, args []string) error {
	mgr, closeStore, err := openTokenManager()
	if err != nil {
		return err
	}
	defer closeStore()

	keyID := args[0]
	if err := mgr.RevokeKey(keyID); err != nil {
		return fmt.Errorf("failed to revoke %s: %w", keyID, err)
	}

	fmt.Printf("Revoked %s\n", keyID)
	return nil
}

// parseExpiry accepts a duration with day support (30d, 12h) or an
// RFC3339 timestamp.
func parseExpiry(s string) (time.Time, error) {
	if strings.HasSuffix(s, "d") {
		days, err := strconv.Atoi(strings.TrimSuffix(s, "d"))
		if err == nil {
			return time.Now().Add(time.Duration(days) * 24 * time.Hour), nil
		}
	}
	if d, err := time.ParseDuration(s); err == nil {
		return time.Now().Add(d), nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("invalid expiration %q (use 30d, 12h, or an RFC3339 date)", s)
}

func joinScopes(scopes []auth.Scope) string {
	parts := make([]string, len(scopes))
	for i, s := range scopes {
		parts[i] = string(s)
	}
	return strings.Join(parts, ",")
}
