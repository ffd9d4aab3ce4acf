package main

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/aussiebroadwan/sectors/pkg/jwtx"
)

var (
	tokenSecret  string
	tokenSubject string
	tokenIssuer  string
	tokenScopes  []string
	tokenTTL     time.Duration
)

// tokenCmd mints an access token signed with the API's shared secret.
var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Mint an access token for the sectors API",
	Long: `Mint an HS256 access token for the sectors API.

The secret must match SECTORS_JWT_SECRET on the server. It is read from
--secret or, when the flag is not given, from SECTORS_JWT_SECRET.`,
	Args: cobra.NoArgs,
	RunE: runToken,
}

func init() {
	f := tokenCmd.Flags()
	f.StringVar(&tokenSecret, "secret", "", "HS256 signing secret")
	f.StringVar(&tokenSubject, "subject", "sectorctl", "token subject")
	f.StringVar(&tokenIssuer, "issuer", "sectors", "token issuer, must match SECTORS_ISSUER")
	f.StringSliceVar(&tokenScopes, "scopes",
		[]string{jwtx.ScopeSectorsRead, jwtx.ScopeSectorsWrite}, "scopes to grant")
	f.DurationVar(&tokenTTL, "ttl", jwtx.DefaultTokenTTL, "token lifetime")
}

func runToken(cmd *cobra.Command, _ []string) error {
	secret := tokenSecret
	if secret == "" {
		secret = os.Getenv("SECTORS_JWT_SECRET")
	}
	if strings.TrimSpace(secret) == "" {
		return errors.New("no signing secret: pass --secret or set SECTORS_JWT_SECRET")
	}
	if tokenTTL <= 0 {
		return fmt.Errorf("ttl must be positive, got %s", tokenTTL)
	}

	signer, err := jwtx.NewHS256([]byte(secret), tokenIssuer)
	if err != nil {
		return err
	}

	claims := jwtx.NewAccessClaims(tokenSubject, tokenIssuer, tokenScopes, tokenTTL, time.Now().UTC())
	tok, err := signer.Sign(claims)
	if err != nil {
		return fmt.Errorf("sign token: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), tok)
	return nil
}
