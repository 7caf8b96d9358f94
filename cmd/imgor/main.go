package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"imgor/internal/app"
	"imgor/internal/config"
	"imgor/internal/imgor"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// newApp reads the config and creates an App. The caller must defer app.Close().
// operation identifies the CLI command being run (e.g. "group", "history").
func newApp(operation string) (*app.App, error) {
	defaults, err := app.GetDefaults()
	if err != nil {
		return nil, fmt.Errorf("getting defaults: %w", err)
	}

	cfg, err := defaults.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	a, err := app.NewApp(cfg, operation)
	if err != nil {
		return nil, fmt.Errorf("initializing app: %w", err)
	}

	return a, nil
}

var errNotConfirmed = errors.New("aborted")

// confirm asks the user to go ahead with the plan. Without a terminal on
// stdin there is nobody to ask, so --yes is required.
func confirm(in *os.File, out io.Writer) error {
	if !term.IsTerminal(int(in.Fd())) {
		return fmt.Errorf("stdin is not a terminal: pass --yes to apply the plan")
	}

	fmt.Fprint(out, "Apply these changes? [y/N] ")
	answer, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("reading answer: %w", err)
	}
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return nil
	default:
		return errNotConfirmed
	}
}

var rootCmd = &cobra.Command{
	Use:          "imgor",
	Short:        "Organize photos into date folders",
	SilenceUsage: true,
}

// config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		defaults, err := app.GetDefaults()
		if err != nil {
			return fmt.Errorf("failed to get defaults: %w", err)
		}

		cfg := defaults.Config()

		if err := config.Init(defaults.ConfigPath, cfg); err != nil {
			return fmt.Errorf("failed to initialize config: %w", err)
		}

		fmt.Printf("Configuration initialized at %s\n", defaults.ConfigPath)
		fmt.Printf("Base Dir: %s\n", defaults.BaseDir)
		return nil
	},
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "View configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		defaults, err := app.GetDefaults()
		if err != nil {
			return fmt.Errorf("failed to get defaults: %w", err)
		}

		cfg, err := defaults.LoadConfig()
		if err != nil {
			return fmt.Errorf("failed to read config: %w", err)
		}

		fmt.Printf("Configuration from %s:\n\n", defaults.ConfigPath)
		fmt.Printf("Base Dir:     %s\n", cfg.BaseDir)
		fmt.Printf("Log Dir:      %s\n", cfg.LogDir)
		fmt.Printf("Log Level:    %s\n", cfg.LogLevel)
		fmt.Printf("Output Dir:   %s\n", cfg.OutputDirName)
		fmt.Printf("Database:     %s %s\n", cfg.Database.Type, cfg.Database.DataDir)
		exiftool := cfg.Metadata.ExiftoolPath
		if exiftool == "" {
			exiftool = "exiftool (PATH)"
		}
		fmt.Printf("Exiftool:     %s\n", exiftool)
		fmt.Printf("EXIF:         %s\n", strings.Join(cfg.Metadata.ExifExtensions, ", "))
		fmt.Printf("Via exiftool: %s\n", strings.Join(cfg.Metadata.ExiftoolExtensions, ", "))
		return nil
	},
}

// group command
var groupCmd = &cobra.Command{
	Use:   "group DIR",
	Short: "Group photos in DIR into date folders",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dryRun, _ := cmd.Flags().GetBool("dry-run")
		out, _ := cmd.Flags().GetString("out")
		yes, _ := cmd.Flags().GetBool("yes")

		a, err := newApp("group")
		if err != nil {
			return err
		}
		defer a.Close()

		inDir, outDir, err := a.ResolveDirs(args[0], out)
		if err != nil {
			return err
		}

		cmds, err := a.Plan(inDir, outDir)
		if err != nil {
			return fmt.Errorf("planning: %w", err)
		}

		if len(cmds) == 0 {
			fmt.Println("No photos found.")
			return nil
		}

		for _, c := range cmds {
			fmt.Println(c)
		}

		if dryRun {
			return nil
		}

		if !yes {
			if err := confirm(os.Stdin, os.Stdout); err != nil {
				if errors.Is(err, errNotConfirmed) {
					fmt.Println("Nothing changed.")
					return nil
				}
				return err
			}
		}

		run, err := a.Execute(inDir, outDir, cmds)
		if err != nil {
			if run != nil {
				fmt.Printf("Run %s stopped after %d of %d command(s)\n", run.ID, run.CommandCount, len(cmds))
			}
			return fmt.Errorf("grouping failed: %w", err)
		}

		fmt.Printf("Run %s applied %d command(s)\n", run.ID, run.CommandCount)
		return nil
	},
}

// info command
var infoCmd = &cobra.Command{
	Use:   "info FILE",
	Short: "Show the metadata imgor reads from a file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("info")
		if err != nil {
			return err
		}
		defer a.Close()

		d, err := a.Info(args[0])
		if err != nil {
			return err
		}

		fmt.Printf("File:         %s\n", d.Path)
		if d.DerivedFrom != "" {
			fmt.Printf("Derived from: %s\n", d.DerivedFrom)
		}
		if d.CapturedAt.IsZero() {
			fmt.Printf("Captured:     unknown\n")
		} else {
			fmt.Printf("Captured:     %s\n", d.CapturedAt.Format("2006-01-02 15:04:05"))
		}
		if d.HasRating {
			fmt.Printf("Rating:       %d\n", d.Rating)
		}
		if len(d.ColorLabels) > 0 {
			names := make([]string, len(d.ColorLabels))
			for i, l := range d.ColorLabels {
				names[i] = l.String()
			}
			fmt.Printf("Labels:       %s\n", strings.Join(names, ", "))
		}
		return nil
	},
}

// history command
var historyCmd = &cobra.Command{
	Use:   "history [RUN_ID]",
	Short: "View organize runs",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		a, err := newApp("history")
		if err != nil {
			return err
		}
		defer a.Close()

		if len(args) == 1 {
			run, cmds, err := a.RunDetails(args[0])
			if err != nil {
				return err
			}
			printRun(run)
			for _, c := range cmds {
				if c.Target == "" {
					fmt.Printf("%4d  %-10s  %s\n", c.Seq, c.Kind, c.Path)
				} else {
					fmt.Printf("%4d  %-10s  %s -> %s\n", c.Seq, c.Kind, c.Path, c.Target)
				}
			}
			return nil
		}

		runs, err := a.History(limit)
		if err != nil {
			return err
		}

		if len(runs) == 0 {
			fmt.Println("No runs recorded.")
			return nil
		}

		for _, run := range runs {
			printRun(run)
		}
		return nil
	},
}

func printRun(run *imgor.Run) {
	duration := ""
	if run.FinishedAt.Valid {
		d := run.FinishedAt.Time.Sub(run.StartedAt)
		duration = d.Truncate(time.Millisecond).String()
	}
	fmt.Printf("%s  %s  %-8s  %4d  %s  %s\n",
		run.ID,
		run.StartedAt.Local().Format("2006-01-02 15:04:05"),
		run.Status,
		run.CommandCount,
		run.InputDir,
		duration,
	)
}

func init() {
	// config subcommands
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configListCmd)

	// root commands
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(groupCmd)
	groupCmd.Flags().BoolP("dry-run", "n", false, "Print the plan without changing anything")
	groupCmd.Flags().StringP("out", "o", "", "Output directory (default: <DIR>/<output_dir_name>)")
	groupCmd.Flags().BoolP("yes", "y", false, "Apply the plan without asking")
	rootCmd.AddCommand(infoCmd)
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().IntP("limit", "n", 50, "Maximum number of runs to show")
}
