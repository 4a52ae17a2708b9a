package cmd

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"tinyed/pkg/app"
	"tinyed/pkg/config"
)

var (
	// Config command flags
	profileLineNumbers bool
	profileStatus      bool
	profileBanner      string
	profileDebugLog    string
	profileTraceSize   int
	profileDescription string
)

// configCmd represents the config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage editor settings profiles",
	Long: `Manage saved editor settings profiles.

This command allows you to save, load, list, and delete named settings
profiles for quick access to frequently used setups.`,
}

// saveCmd saves a profile
var saveCmd = &cobra.Command{
	Use:   "save <name>",
	Short: "Save a settings profile",
	Long: `Save editor settings under a given name.

Example:
  tinyed config save plain --line-numbers=false --status=false`,
	Args: cobra.ExactArgs(1),
	Run:  runSaveProfile,
}

// loadCmd starts the editor under a saved profile
var loadCmd = &cobra.Command{
	Use:   "load <name>",
	Short: "Run the editor under a saved profile",
	Long: `Load a saved profile and immediately start the editor with it.

Example:
  tinyed config load plain`,
	Args: cobra.ExactArgs(1),
	Run:  runLoadProfile,
}

// listProfilesCmd lists all profiles
var listProfilesCmd = &cobra.Command{
	Use:   "list",
	Short: "List all saved profiles",
	Long:  `Display a list of all saved settings profiles.`,
	Run:   runListProfiles,
}

// deleteCmd deletes a profile
var deleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Delete a saved profile",
	Long: `Delete a saved settings profile.

Example:
  tinyed config delete plain`,
	Aliases: []string{"rm", "remove"},
	Args:    cobra.ExactArgs(1),
	Run:     runDeleteProfile,
}

// showCmd shows details of a profile
var showCmd = &cobra.Command{
	Use:   "show <name>",
	Short: "Show details of a saved profile",
	Long: `Display detailed information about a saved profile.

Example:
  tinyed config show plain`,
	Args: cobra.ExactArgs(1),
	Run:  runShowProfile,
}

func init() {
	// Add subcommands to config
	configCmd.AddCommand(saveCmd)
	configCmd.AddCommand(loadCmd)
	configCmd.AddCommand(listProfilesCmd)
	configCmd.AddCommand(deleteCmd)
	configCmd.AddCommand(showCmd)

	// Add flags for save command
	defaults := config.DefaultSettings()
	saveCmd.Flags().BoolVar(&profileLineNumbers, "line-numbers", defaults.ShowLineNumbers, "show line numbers in the left margin")
	saveCmd.Flags().BoolVar(&profileStatus, "status", defaults.ShowStatus, "show the status bar")
	saveCmd.Flags().StringVar(&profileBanner, "banner", defaults.Banner, "welcome banner text")
	saveCmd.Flags().StringVar(&profileDebugLog, "debug-log", "", "write a session debug log to this file")
	saveCmd.Flags().IntVar(&profileTraceSize, "trace-size", defaults.TraceSize, "number of key events to keep in the trace")
	saveCmd.Flags().StringVarP(&profileDescription, "description", "d", "", "profile description")
}

// newProfileManager builds a manager rooted at the per-user profile directory
func newProfileManager() *config.FileProfileManager {
	dir, err := config.DefaultProfileDir()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	return config.NewFileProfileManager(dir)
}

func runSaveProfile(cmd *cobra.Command, args []string) {
	name := args[0]

	settings := config.Settings{
		Banner:          profileBanner,
		ShowLineNumbers: profileLineNumbers,
		ShowStatus:      profileStatus,
		TraceSize:       profileTraceSize,
		DebugLog:        profileDebugLog,
	}

	// Validate settings
	if err := settings.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid settings: %v\n", err)
		os.Exit(1)
	}

	// Save profile
	manager := newProfileManager()
	if err := manager.SaveProfile(name, settings); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving profile: %v\n", err)
		os.Exit(1)
	}

	if profileDescription != "" {
		if err := manager.SetProfileDescription(name, profileDescription); err != nil {
			fmt.Fprintf(os.Stderr, "Error setting description: %v\n", err)
			os.Exit(1)
		}
	}

	fmt.Printf("Profile '%s' saved successfully.\n", name)
	fmt.Printf("  Banner: %s\n", settings.Banner)
	fmt.Printf("  Line Numbers: %t\n", settings.ShowLineNumbers)
	fmt.Printf("  Status Bar: %t\n", settings.ShowStatus)
	fmt.Printf("  Trace Size: %d\n", settings.TraceSize)
}

func runLoadProfile(cmd *cobra.Command, args []string) {
	name := args[0]

	// Load profile
	manager := newProfileManager()
	settings, err := manager.LoadProfile(name)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading profile '%s': %v\n", name, err)
		os.Exit(1)
	}

	if verbose {
		fmt.Printf("Loading profile '%s'...\n", name)
		fmt.Printf("  Banner: %s\n", settings.Banner)
		fmt.Printf("  Line Numbers: %t\n", settings.ShowLineNumbers)
		fmt.Printf("  Status Bar: %t\n", settings.ShowStatus)
	}

	// Launch the editor with the loaded settings
	opts := app.Options{
		Settings: settings,
		Verbose:  verbose,
	}

	if err := app.Run(opts); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runListProfiles(cmd *cobra.Command, args []string) {
	// List all profiles
	manager := newProfileManager()
	profiles, err := manager.ListProfiles()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error listing profiles: %v\n", err)
		os.Exit(1)
	}

	if len(profiles) == 0 {
		fmt.Println("No saved profiles found.")
		fmt.Println("\nUse 'tinyed config save <name>' to save a profile.")
		return
	}

	fmt.Printf("Found %d saved profile(s):\n\n", len(profiles))

	// Create a tabwriter for aligned output
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tBANNER\tNUMBERS\tSTATUS\tLAST USED\tCREATED")
	fmt.Fprintln(w, "----\t------\t-------\t------\t---------\t-------")

	for _, p := range profiles {
		lastUsed := "Never"
		if !p.LastUsedAt.IsZero() {
			lastUsed = p.LastUsedAt.Format("2006-01-02 15:04")
		}

		created := p.CreatedAt.Format("2006-01-02 15:04")

		fmt.Fprintf(w, "%s\t%s\t%t\t%t\t%s\t%s\n",
			p.Name,
			p.Settings.Banner,
			p.Settings.ShowLineNumbers,
			p.Settings.ShowStatus,
			lastUsed,
			created)
	}

	w.Flush()

	fmt.Println("\nUse 'tinyed config load <name>' to start the editor with a profile.")
	fmt.Println("Use 'tinyed config show <name>' to see full details.")
}

func runDeleteProfile(cmd *cobra.Command, args []string) {
	name := args[0]

	// Delete profile
	manager := newProfileManager()
	if err := manager.DeleteProfile(name); err != nil {
		fmt.Fprintf(os.Stderr, "Error deleting profile '%s': %v\n", name, err)
		os.Exit(1)
	}

	fmt.Printf("Profile '%s' deleted successfully.\n", name)
}

func runShowProfile(cmd *cobra.Command, args []string) {
	name := args[0]

	manager := newProfileManager()
	profile, err := manager.GetProfile(name)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Display profile details
	fmt.Printf("Profile: %s\n", profile.Name)
	fmt.Println(strings.Repeat("=", len(profile.Name)+9))
	fmt.Printf("Banner:       %s\n", profile.Settings.Banner)
	fmt.Printf("Line Numbers: %t\n", profile.Settings.ShowLineNumbers)
	fmt.Printf("Status Bar:   %t\n", profile.Settings.ShowStatus)
	fmt.Printf("Trace Size:   %d\n", profile.Settings.TraceSize)

	if profile.Settings.DebugLog != "" {
		fmt.Printf("Debug Log:    %s\n", profile.Settings.DebugLog)
	}

	if profile.Description != "" {
		fmt.Printf("Description:  %s\n", profile.Description)
	}

	fmt.Println()
	fmt.Printf("Created:      %s\n", profile.CreatedAt.Format(time.RFC3339))

	if !profile.LastUsedAt.IsZero() {
		fmt.Printf("Last Used:    %s\n", profile.LastUsedAt.Format(time.RFC3339))
	} else {
		fmt.Printf("Last Used:    Never\n")
	}

	fmt.Println("\nUse 'tinyed config load " + name + "' to start the editor with this profile.")
}
