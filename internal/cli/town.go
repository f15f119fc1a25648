package cli

import (
	"fmt"
	"net/url"

	"github.com/spf13/cobra"
)

func newTownCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "town",
		Short: "Town lifecycle operations",
	}

	cmd.AddCommand(newTownCreateCmd())
	cmd.AddCommand(newTownJoinCmd())
	cmd.AddCommand(newTownListCmd())
	cmd.AddCommand(newTownStartCmd())
	cmd.AddCommand(newTownViewCmd())

	return cmd
}

func newTownCreateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "create <town-name> <host-name>",
		Short: "Found a new town",
		Long: `Found a new town with the given name, registering the host as its first
player. If the name is taken the server allocates the next free suffixed
code (Dodge, Dodge1, Dodge2, ...).`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			body := map[string]string{
				"town_name": args[0],
				"host_name": args[1],
			}

			var result CreateTownResult
			if err := client.Post("/api/v1/towns", body, &result); err != nil {
				return err
			}

			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}
}

func newTownJoinCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "join <code> <player-name>",
		Short: "Join an existing town",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			body := map[string]string{
				"player_name": args[1],
			}

			var result Player
			path := fmt.Sprintf("/api/v1/towns/%s/join", url.PathEscape(args[0]))
			if err := client.Post(path, body, &result); err != nil {
				return err
			}

			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}
}

func newTownListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list <code>",
		Short: "List a town's players",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Town
			path := fmt.Sprintf("/api/v1/towns/%s", url.PathEscape(args[0]))
			if err := client.Get(path, &result); err != nil {
				return err
			}

			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}
}

func newTownStartCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "start <code>",
		Short: "Start the town's game and deal roles",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result StartGameResult
			path := fmt.Sprintf("/api/v1/towns/%s/start", url.PathEscape(args[0]))
			if err := client.Post(path, nil, &result); err != nil {
				return err
			}

			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}
}

func newTownViewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "view <code> <player-name>",
		Short: "Show a player's view of the started game",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result GameView
			path := fmt.Sprintf("/api/v1/towns/%s/players/%s/view",
				url.PathEscape(args[0]), url.PathEscape(args[1]))
			if err := client.Get(path, &result); err != nil {
				return err
			}

			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}
}
