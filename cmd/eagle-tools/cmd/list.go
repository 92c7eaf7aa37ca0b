package cmd

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/drakedevel/eagle-tools/pkg/eagle"
	"github.com/drakedevel/eagle-tools/pkg/eagle/xmltree"
)

var heading = color.New(color.FgCyan, color.Bold)

var listCmd = &cobra.Command{
	Use:   "list <library.lbr>",
	Short: "List the contents of a library",
	Long:  `List a library's packages, symbols and devices, with each device's variants and technologies.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	doc, err := parseFile(args[0])
	if err != nil {
		return err
	}
	if doc.Kind != eagle.KindLibrary {
		return fmt.Errorf("%s: only library documents are supported, got a %s", args[0], doc.Kind)
	}
	lib := doc.Library

	if lib.Name != nil {
		fmt.Printf("Name: %s\n", *lib.Name)
	}
	if lib.Description != nil && *lib.Description != "" {
		fmt.Printf("Description: %s\n", summary(*lib.Description))
	}

	heading.Println("Packages:")
	for _, name := range sortedKeys(lib.Packages) {
		fmt.Printf("  %s\n", name)
		printNodeDescription(lib.Packages[name])
	}

	heading.Println("Symbols:")
	for _, name := range sortedKeys(lib.Symbols) {
		fmt.Printf("  %s\n", name)
		printNodeDescription(lib.Symbols[name])
	}

	heading.Println("Devices:")
	for _, name := range sortedKeys(lib.DeviceSets) {
		ds := lib.DeviceSets[name]
		fmt.Printf("  %s\n", name)
		if ds.Description != nil && *ds.Description != "" {
			fmt.Printf("    Description: %s\n", summary(*ds.Description))
		}
		if len(ds.Devices) == 0 {
			continue
		}
		fmt.Println("    Variants:")
		for _, variant := range sortedKeys(ds.Devices) {
			device := ds.Devices[variant]
			fmt.Printf("      %s pkg=%s\n", eagle.FormatDeviceName(name, &variant, nil), packageName(device))
			techs := sortedKeys(device.Technologies)
			if len(techs) == 1 && techs[0] == "" {
				// The sole blank technology adds nothing to the name.
				continue
			}
			for _, tech := range techs {
				fmt.Printf("        %s\n", eagle.FormatDeviceName(name, &variant, &tech))
			}
		}
	}
	return nil
}

func parseFile(path string) (*eagle.Document, error) {
	doc, err := eagle.ParseFile(path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	slog.Debug("parsed document", "path", path, "kind", doc.Kind.String(), "version", doc.Version)
	return doc, nil
}

func printNodeDescription(n *xmltree.Node) {
	if d := n.Find("description"); d != nil && d.Text != "" {
		fmt.Printf("    Description: %s\n", summary(d.Text))
	}
}

func packageName(d eagle.Device) string {
	if d.Package == nil {
		return "-"
	}
	return *d.Package
}

// summary reduces a multi-line description to its first non-empty line,
// marking truncation with an ellipsis.
func summary(desc string) string {
	for _, line := range strings.Split(desc, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if line != desc {
			return line + " ..."
		}
		return line
	}
	return ""
}

func sortedKeys[T any](m map[string]T) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
