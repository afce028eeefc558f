package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/naveenspark/backoffice/internal/session"
	"github.com/naveenspark/backoffice/pkg/domain"
)

func newLoginCmd(a *app) *cobra.Command {
	var email, password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in with an admin account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if email == "" {
				return errors.New("--email is required")
			}
			if password == "" {
				// Read from stdin so the password stays out of shell history.
				fmt.Fprint(cmd.ErrOrStderr(), "Password: ")
				line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
				if err != nil && !errors.Is(err, io.EOF) {
					return fmt.Errorf("read password: %w", err)
				}
				password = strings.TrimRight(line, "\r\n")
				fmt.Fprintln(cmd.ErrOrStderr())
			}
			if password == "" {
				return errors.New("password is required")
			}

			c := a.consoleClient(cmd.ErrOrStderr())
			res, err := c.Login(cmd.Context(), email, password)
			if err != nil {
				return err
			}
			who := email
			if res.Admin != nil {
				who = adminLabel(res.Admin)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s\n", who)
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "admin email")
	cmd.Flags().StringVar(&password, "password", "", "admin password (prompted when omitted)")
	return cmd
}

func newLogoutCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Revoke and clear the stored session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c := a.consoleClient(cmd.ErrOrStderr())
			if !c.LoggedIn() {
				fmt.Fprintln(cmd.OutOrStdout(), "Already logged out.")
				return nil
			}
			if err := c.Logout(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Logged out.")
			return nil
		},
	}
}

func newStatusCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the signed-in admin and token expiry",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			pair, err := a.store.Tokens()
			if err != nil {
				return err
			}
			if pair.AccessToken == "" {
				fmt.Fprintln(out, "Not logged in. Run `backoffice login --email <email>`.")
				return nil
			}
			fmt.Fprintf(out, "API:      %s\n", a.cfg.APIURL)
			fmt.Fprintf(out, "Session:  %s\n", a.store.Path())
			if admin, err := a.store.Admin(); err == nil && admin != nil {
				fmt.Fprintf(out, "Admin:    %s\n", adminLabel(admin))
			}
			claims, err := session.InspectToken(pair.AccessToken)
			if err != nil {
				fmt.Fprintf(out, "Token:    unreadable (%v)\n", err)
				return nil
			}
			fmt.Fprintf(out, "Token:    %s\n", expiryText(claims, time.Now()))
			if pair.RefreshToken == "" {
				fmt.Fprintln(out, "Refresh:  none, log in again when the token expires")
			}
			return nil
		},
	}
}

// expiryText describes when the access token runs out.
func expiryText(c session.Claims, now time.Time) string {
	switch {
	case c.ExpiresAt.IsZero():
		return "no expiry"
	case c.Expired(now):
		return fmt.Sprintf("expired %s ago, refreshed on the next request", now.Sub(c.ExpiresAt).Round(time.Second))
	default:
		return fmt.Sprintf("valid for %s", c.ExpiresAt.Sub(now).Round(time.Second))
	}
}

func adminLabel(a *domain.Admin) string {
	if a.Role == "" {
		return a.Email
	}
	return fmt.Sprintf("%s (%s)", a.Email, a.Role)
}

func newCategoriesCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "categories",
		Short: "Product category tools",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "tree",
		Short: "Print the category hierarchy",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c := a.consoleClient(cmd.ErrOrStderr())
			cats, err := c.Categories.All(cmd.Context())
			if err != nil {
				return err
			}
			printCategoryTree(cmd.OutOrStdout(), cats)
			return nil
		},
	})
	return cmd
}

// printCategoryTree writes one line per category, indented by depth, then
// lists categories whose parent is missing.
func printCategoryTree(w io.Writer, cats []domain.Category) {
	if len(cats) == 0 {
		fmt.Fprintln(w, "no categories")
		return
	}
	for _, n := range domain.FlattenCategoryTree(domain.BuildCategoryTree(cats)) {
		state := ""
		if !n.IsActive {
			state = " [inactive]"
		}
		fmt.Fprintf(w, "%s%s  %s%s\n", strings.Repeat("  ", n.Level), n.Name, n.ID, state)
	}
	if orphans := domain.OrphanCategories(cats); len(orphans) > 0 {
		fmt.Fprintf(w, "\n%d orphaned (parent missing):\n", len(orphans))
		for _, o := range orphans {
			parent := "-"
			if o.ParentID != nil {
				parent = *o.ParentID
			}
			fmt.Fprintf(w, "  %s  %s  parent=%s\n", o.Name, o.ID, parent)
		}
	}
}

func newUploadCmd(a *app) *cobra.Command {
	var folder string
	cmd := &cobra.Command{
		Use:   "upload <file>",
		Short: "Upload an image to the media CDN and print its URL",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("open image: %w", err)
			}
			defer f.Close() //nolint:errcheck

			c := a.consoleClient(cmd.ErrOrStderr())
			img, err := c.UploadImage(cmd.Context(), folder, filepath.Base(args[0]), f)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), img.SecureURL)
			return nil
		},
	}
	cmd.Flags().StringVar(&folder, "folder", "", "target folder, e.g. products")
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "backoffice "+version)
		},
	}
}
