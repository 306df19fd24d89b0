package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/bytedance/sonic"
	"github.com/spf13/cobra"

	"github.com/GriffinCanCode/FileAgent/backend/internal/infrastructure/server"
	"github.com/GriffinCanCode/FileAgent/backend/internal/shared/types"
)

func opsCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "ops",
		Short:   "List available file operations",
		Aliases: []string{"operations"},
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return printCatalog(cmd.OutOrStdout(), getApp(cmd).agent.Registry().Catalog())
		},
	}
}

func execCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "exec <operation> [key=value...]",
		Short: "Run one operation with explicit parameters",
		Example: `  fileagent exec find_by_extension extension=.py limit=5
  fileagent exec move_files pattern='Screenshot*.png' destination_directory=~/Pictures/Screens`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			params, err := parseParams(args[1:])
			if err != nil {
				return err
			}

			a := getApp(cmd)
			result, err := a.agent.Execute(cmd.Context(), args[0], params, nil)
			if perr := printJSON(cmd.OutOrStdout(), result); perr != nil {
				return perr
			}
			return err
		},
	}
}

func askCommand() *cobra.Command {
	var run bool

	cmd := &cobra.Command{
		Use:   "ask <query>",
		Short: "Resolve a plain-language request into an operation",
		Example: `  fileagent ask "show me the 5 largest files in Downloads"
  fileagent ask --run "create a folder called invoices"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := getApp(cmd)
			out := cmd.OutOrStdout()

			desc := a.agent.ResolveAndDescribe(cmd.Context(), strings.Join(args, " "), types.Context{})
			fmt.Fprintln(out, desc.Reply())
			if desc.Error != "" {
				fmt.Fprintln(cmd.ErrOrStderr(), "resolver:", desc.Error)
			}
			if desc.IsHelp() {
				return nil
			}
			if !run {
				return printJSON(out, desc.Action.Params)
			}

			result, err := a.agent.Execute(cmd.Context(), desc.Action.Action.String(), desc.Action.Params, nil)
			if perr := printJSON(out, result); perr != nil {
				return perr
			}
			return err
		},
	}

	cmd.Flags().BoolVarP(&run, "run", "r", false, "Execute the resolved operation")
	return cmd
}

func serveCommand() *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a := getApp(cmd)
			if port != "" {
				a.cfg.Server.Port = port
			}
			logger, err := server.NewLogger(a.cfg)
			if err != nil {
				return err
			}
			srv, err := server.NewServer(a.cfg, logger)
			if err != nil {
				return err
			}
			return srv.Run(cmd.Context())
		},
	}

	cmd.Flags().StringVarP(&port, "port", "p", "", "Port to listen on (defaults to PORT)")
	return cmd
}

// parseParams turns key=value arguments into operation parameters. Values
// stay strings; the dispatcher coerces them.
func parseParams(args []string) (map[string]interface{}, error) {
	params := make(map[string]interface{}, len(args))
	for _, arg := range args {
		key, value, ok := strings.Cut(arg, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid parameter %q, expected key=value", arg)
		}
		params[key] = value
	}
	return params, nil
}

func printCatalog(w io.Writer, catalog []types.Tool) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "OPERATION\tPARAMETERS\tDESCRIPTION")
	for _, tool := range catalog {
		params := make([]string, 0, len(tool.Parameters))
		for _, p := range tool.Parameters {
			name := p.Name
			if !p.Required {
				name = "[" + name + "]"
			}
			params = append(params, name)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", tool.ID, strings.Join(params, " "), tool.Description)
	}
	return tw.Flush()
}

func printJSON(w io.Writer, v interface{}) error {
	data, err := sonic.ConfigStd.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
