package commands

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/schemagen/catalog"
	"github.com/teranos/schemagen/codegen/backends"
	"github.com/teranos/schemagen/errors"
)

// ListCmd represents the list command
var ListCmd = &cobra.Command{
	Use:   "list",
	Short: "List schemas and backends",
	Long:  "List the messages and enums of the catalog, then the available backends.",
	RunE:  runList,
}

func runList(cmd *cobra.Command, args []string) error {
	reg, err := catalog.New()
	if err != nil {
		return errors.Wrap(err, "failed to build schema catalog")
	}

	pterm.DefaultSection.Println("Messages")
	for _, msg := range reg.Messages() {
		suffix := ""
		if msg.RosEquivalent != "" {
			suffix = pterm.Gray(" (ROS: " + msg.RosEquivalent + ")")
		}
		pterm.Printfln("  %-22s %2d fields%s", msg.Name, len(msg.Fields), suffix)
	}

	pterm.DefaultSection.Println("Enums")
	for _, e := range reg.Enums() {
		parent := "standalone"
		if e.Parent != "" {
			parent = "in " + e.Parent
		}
		pterm.Printfln("  %-22s %2d values  %s", e.Name, len(e.Values), pterm.Gray(parent))
	}

	pterm.DefaultSection.Println("Backends")
	for _, name := range backends.Names() {
		pterm.Println("  " + name)
	}
	return nil
}
