package cmd

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var healthcheckSkipNetwork bool

var (
	successStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("42")).
		Bold(true)

	errorStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("196")).
		Bold(true)

	infoStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("39"))

	sectionStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("62")).
		Bold(true).
		Underline(true)
)

// healthcheckCmd represents the healthcheck command
var healthcheckCmd = &cobra.Command{
	Use:   "healthcheck",
	Short: "Check that argot can reach its database and endpoint",
	Long: `Check the health of argot by verifying:
  • Transport configuration loads
  • The session database opens and is readable
  • The completion endpoint answers a canned test message

Useful for debugging configuration issues before starting a chat.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println(sectionStyle.Render("Argot Health Check"))
		fmt.Println()

		// Step 1: transport config + client
		fmt.Println(infoStyle.Render("Step 1: Loading transport config..."))
		client, err := newClient()
		if err != nil {
			fmt.Println(errorStyle.Render("✗ Failed to build client:"), err)
			os.Exit(1)
		}
		fmt.Println(successStyle.Render("✓ Transport config OK"))

		// Step 2: session database
		fmt.Println(infoStyle.Render("Step 2: Opening session database..."))
		store, db, err := openStore()
		if err != nil {
			fmt.Println(errorStyle.Render("✗ Failed to open database:"), err)
			os.Exit(1)
		}
		defer db.Close()

		sessions, err := store.ListSessions()
		if err != nil {
			fmt.Println(errorStyle.Render("✗ Failed to read sessions:"), err)
			os.Exit(1)
		}
		fmt.Println(successStyle.Render(fmt.Sprintf("✓ Database OK (%d session(s))", len(sessions))))

		// Step 3: endpoint round trip
		if healthcheckSkipNetwork {
			fmt.Println(infoStyle.Render("Step 3: Skipping endpoint test (--skip-network)"))
			return nil
		}
		fmt.Println(infoStyle.Render("Step 3: Testing completion endpoint..."))
		if err := client.TestConnection(cmd.Context()); err != nil {
			fmt.Println(errorStyle.Render("✗ Endpoint test failed:"), err)
			os.Exit(1)
		}
		fmt.Println(successStyle.Render("✓ Endpoint OK"))

		fmt.Println()
		fmt.Println(successStyle.Render("All checks passed"))
		return nil
	},
}

func init() {
	healthcheckCmd.Flags().BoolVar(&healthcheckSkipNetwork, "skip-network", false, "Skip the endpoint round trip")
	rootCmd.AddCommand(healthcheckCmd)
}
