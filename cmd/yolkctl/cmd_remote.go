package main

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"

	"connectrpc.com/connect"
	"github.com/spf13/cobra"

	"github.com/mmynk/yolksters/pkg/api"
	"github.com/mmynk/yolksters/pkg/api/apiconnect"
)

const (
	envServer = "YOLK_SERVER"
	envToken  = "YOLK_TOKEN"
)

// remote holds the connection flags shared by commands that call a server.
type remote struct {
	server string
	token  string
}

func (r *remote) bind(cmd *cobra.Command) {
	server := os.Getenv(envServer)
	if server == "" {
		server = "http://localhost:8080"
	}
	cmd.Flags().StringVar(&r.server, "server", server, "server base URL (env "+envServer+")")
	cmd.Flags().StringVar(&r.token, "token", os.Getenv(envToken), "bearer token from login (env "+envToken+")")
}

func (r *remote) shopping() (apiconnect.ShoppingListServiceClient, error) {
	if r.token == "" {
		return nil, errors.New("a token is required; run login and set " + envToken)
	}
	return apiconnect.NewShoppingListServiceClient(http.DefaultClient, r.server), nil
}

func authorize[T any](token string, msg *T) *connect.Request[T] {
	req := connect.NewRequest(msg)
	req.Header().Set("Authorization", "Bearer "+token)
	return req
}

func newLoginCmd() *cobra.Command {
	var (
		r        remote
		password string
	)

	cmd := &cobra.Command{
		Use:   "login <email>",
		Short: "Log in and print a bearer token",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if password == "" {
				password = os.Getenv("YOLK_PASSWORD")
			}
			client := apiconnect.NewAuthServiceClient(http.DefaultClient, r.server)
			resp, err := client.Login(cmd.Context(), connect.NewRequest(&api.LoginRequest{
				Email:    args[0],
				Password: password,
			}))
			if err != nil {
				return fmt.Errorf("login: %w", err)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), resp.Msg.Token)
			return err
		},
	}

	r.bind(cmd)
	cmd.Flags().StringVar(&password, "password", "", "account password (env YOLK_PASSWORD)")
	return cmd
}

func newAddCmd() *cobra.Command {
	var r remote

	cmd := &cobra.Command{
		Use:   "add [line...]",
		Short: "Add ingredient lines to your shopping list",
		Long: `Add ingredient lines to the shopping list on the server. Lines matching an
existing item with the same unit are combined into it.

Lines are taken from the arguments, or from stdin when no arguments are given.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := r.shopping()
			if err != nil {
				return err
			}
			lines, err := readLines(args, cmd.InOrStdin())
			if err != nil {
				return err
			}

			resp, err := client.AddIngredients(cmd.Context(), authorize(r.token, &api.AddIngredientsRequest{Ingredients: lines}))
			if err != nil {
				return fmt.Errorf("add ingredients: %w", err)
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "%d updated, %d inserted\n", resp.Msg.Updated, resp.Msg.Inserted)
			return printGroups(cmd, resp.Msg.Groups)
		},
	}

	r.bind(cmd)
	return cmd
}

func newListCmd() *cobra.Command {
	var r remote

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Show your shopping list grouped by category",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := r.shopping()
			if err != nil {
				return err
			}

			resp, err := client.ListItems(cmd.Context(), authorize(r.token, &api.ListItemsRequest{}))
			if err != nil {
				return fmt.Errorf("list items: %w", err)
			}
			return printGroups(cmd, resp.Msg.Groups)
		},
	}

	r.bind(cmd)
	return cmd
}

// printGroups writes one heading per category followed by its items, with
// checked items marked.
func printGroups(cmd *cobra.Command, groups []*api.CategoryGroup) error {
	var b strings.Builder
	for i, g := range groups {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "%s\n", g.Category)
		for _, item := range g.Items {
			mark := " "
			if item.Checked {
				mark = "x"
			}
			fmt.Fprintf(&b, "  [%s] %s\n", mark, item.Item)
		}
	}
	_, err := fmt.Fprint(cmd.OutOrStdout(), b.String())
	return err
}
