package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/drakedevel/eagle-tools/pkg/eagle"
)

var (
	partsFormat  string
	partsResolve bool
)

var partsCmd = &cobra.Command{
	Use:   "parts <schematic.sch>",
	Short: "List used parts/libraries in a schematic",
	Long: `List every part instance in a schematic with the library it comes from and
its compound device name.

With --resolve, each part's selection is resolved against the schematic's
embedded libraries and its effective attributes (technology attributes
overlaid by instance attributes) are included. Resolution fails if a
referenced library is not embedded in the schematic.`,
	Args: cobra.ExactArgs(1),
	RunE: runParts,
}

func init() {
	partsCmd.Flags().StringVar(&partsFormat, "format", "table", "data output format: table, machine or yaml")
	partsCmd.Flags().BoolVar(&partsResolve, "resolve", false, "resolve parts and include effective attributes")
	rootCmd.AddCommand(partsCmd)
}

type partRow struct {
	Part       string            `yaml:"part"`
	Library    string            `yaml:"library"`
	Device     string            `yaml:"device"`
	Attributes map[string]string `yaml:"attributes,omitempty"`
}

func runParts(cmd *cobra.Command, args []string) error {
	doc, err := parseFile(args[0])
	if err != nil {
		return err
	}
	if doc.Kind != eagle.KindSchematic {
		return fmt.Errorf("%s: this command requires a schematic file, got a %s", args[0], doc.Kind)
	}

	rows, err := buildPartRows(doc.Schematic, partsResolve)
	if err != nil {
		return err
	}

	switch partsFormat {
	case "table":
		table := tablewriter.NewWriter(os.Stdout)
		if partsResolve {
			table.Header([]string{"Part", "Library", "Device", "Attributes"})
		} else {
			table.Header([]string{"Part", "Library", "Device"})
		}
		for _, row := range rows {
			if partsResolve {
				table.Append([]string{row.Part, row.Library, row.Device, formatAttributes(row.Attributes)})
			} else {
				table.Append([]string{row.Part, row.Library, row.Device})
			}
		}
		table.Render()
	case "machine":
		for _, row := range rows {
			fields := []string{row.Part, row.Library, row.Device}
			if partsResolve {
				fields = append(fields, formatAttributes(row.Attributes))
			}
			fmt.Println(strings.Join(fields, " "))
		}
	case "yaml":
		return writeYAML(os.Stdout, rows)
	default:
		return fmt.Errorf("unknown output format %q", partsFormat)
	}
	return nil
}

// buildPartRows produces one row per part, sorted by part name.
func buildPartRows(sch *eagle.Schematic, resolve bool) ([]partRow, error) {
	rows := make([]partRow, 0, len(sch.Parts))
	for _, name := range sortedKeys(sch.Parts) {
		part := sch.Parts[name]

		var tech *string
		if part.Technology != "" {
			tech = &part.Technology
		}
		row := partRow{
			Part:    name,
			Library: part.Library,
			Device:  eagle.FormatDeviceName(part.DeviceSet, &part.Device, tech),
		}
		if resolve {
			resolved, err := sch.ResolvePart(part)
			if err != nil {
				return nil, err
			}
			row.Attributes = resolved.EffectiveAttributes()
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// writeYAML closes the encoder explicitly: Close flushes, and a truncated
// write must be reported, not discarded.
func writeYAML(w io.Writer, rows []partRow) error {
	enc := yaml.NewEncoder(w)
	if err := enc.Encode(rows); err != nil {
		enc.Close()
		return err
	}
	return enc.Close()
}

func formatAttributes(attrs map[string]string) string {
	pairs := make([]string, 0, len(attrs))
	for _, k := range sortedKeys(attrs) {
		pairs = append(pairs, k+"="+attrs[k])
	}
	return strings.Join(pairs, ",")
}
