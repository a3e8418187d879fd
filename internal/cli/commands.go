package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/smokyabdulrahman/offline-prayer-times/internal/config"
	"github.com/smokyabdulrahman/offline-prayer-times/internal/display"
	"github.com/smokyabdulrahman/offline-prayer-times/internal/prayer"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or modify configuration",
		Long:  "Display current configuration, or use subcommands to modify it.\nWhen run without subcommands, shows the current configuration.",
		RunE:  runConfigShow,
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a config value",
		Long: fmt.Sprintf("Set a configuration value. Valid keys: %s\n\nExamples:\n  prayer-times config set latitude 33.6995\n  prayer-times config set longitude 73.0363\n  prayer-times config set convention KARACHI\n  prayer-times config set asr HANAFI\n  prayer-times config set time_format 12h\n  prayer-times config set prayers Fajr,Dhuhr,Asr,Maghrib,Isha",
			strings.Join(config.ValidKeys, ", ")),
		Args: cobra.ExactArgs(2),
		RunE: runConfigSet,
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "get <key>",
		Short: "Print a config value",
		Args:  cobra.ExactArgs(1),
		RunE:  runConfigGet,
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "reset",
		Short: "Reset config to defaults",
		Long:  "Delete the config file and restore all settings to defaults.",
		RunE:  runConfigReset,
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Print config file path",
		RunE:  runConfigPath,
	})

	return cmd
}

// runConfigShow displays the current configuration.
func runConfigShow(cmd *cobra.Command, args []string) error {
	path, err := config.Path()
	if err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	if structured(cmd) {
		return printData(cmd, cfg)
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "  Configuration (%s)\n\n", path)

	defaults := config.Defaults()
	for _, key := range config.ValidKeys {
		val, _ := cfg.Get(key)
		shown := val
		if shown == "" {
			shown = display.Gray("(not set)")
			if def, _ := defaults.Get(key); def != "" {
				shown = display.Gray("(default " + def + ")")
			}
		}
		if key == "convention" && val != "" {
			shown = formatConventionValue(val)
		}
		fmt.Fprintf(w, "  %-18s %s\n", key, shown)
	}
	return nil
}

// runConfigSet sets a config key to the given value.
func runConfigSet(cmd *cobra.Command, args []string) error {
	key, value := args[0], args[1]

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	if err := cfg.Set(key, value); err != nil {
		return err
	}

	if err := cfg.Save(); err != nil {
		return err
	}

	stored, _ := cfg.Get(key)
	fmt.Fprintf(cmd.OutOrStdout(), "Set %s = %s\n", key, display.Green(stored))
	return nil
}

// runConfigGet prints one config value, or nothing when it is not set.
func runConfigGet(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	val, err := cfg.Get(args[0])
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), val)
	return nil
}

// runConfigReset deletes the config file.
func runConfigReset(cmd *cobra.Command, args []string) error {
	if err := config.Reset(); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Configuration reset to defaults.")
	return nil
}

// runConfigPath prints the config file path.
func runConfigPath(cmd *cobra.Command, args []string) error {
	path, err := config.Path()
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), path)
	return nil
}

// formatConventionValue adds the organisation name to the token.
func formatConventionValue(val string) string {
	c, err := prayer.ParseConvention(val)
	if err != nil {
		return val
	}
	return fmt.Sprintf("%s (%s)", c, c.Name())
}

type conventionView struct {
	Token   string `json:"token" yaml:"token"`
	Name    string `json:"name" yaml:"name"`
	Fajr    string `json:"fajr" yaml:"fajr"`
	Maghrib string `json:"maghrib" yaml:"maghrib"`
	Isha    string `json:"isha" yaml:"isha"`
}

func conventionViews() []conventionView {
	var out []conventionView
	for _, c := range prayer.Conventions() {
		p := c.Params(prayer.CustomAngles{})
		out = append(out, conventionView{
			Token:   c.String(),
			Name:    c.Name(),
			Fajr:    prayer.Angle(p.Fajr).String(),
			Maghrib: p.Maghrib.String(),
			Isha:    p.Isha.String(),
		})
	}
	return out
}

func newMethodsCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "methods",
		Aliases: []string{"conventions"},
		Short:   "List all calculation conventions",
		Long:    "Print the table of all supported conventions with their twilight parameters.\nMaghrib and Isha given in minutes are counted from sunset and Maghrib.",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			views := conventionViews()
			if structured(cmd) {
				return printData(cmd, views)
			}

			w := cmd.OutOrStdout()
			fmt.Fprintln(w, "Supported calculation conventions:")
			fmt.Fprintln(w)

			tbl := display.NewTable([]string{"Convention", "Name", "Fajr", "Maghrib", "Isha"})
			for _, v := range views {
				tbl.AddRow([]string{v.Token, v.Name, v.Fajr, v.Maghrib, v.Isha})
			}
			fmt.Fprint(w, tbl.Render())
			fmt.Fprintln(w)
			fmt.Fprintln(w, "Use --convention <NAME> to select a convention (default: KARACHI).")
			fmt.Fprintln(w, "CUSTOM takes its angles from --fajr-angle and --isha-angle.")
			return nil
		},
	}
}
