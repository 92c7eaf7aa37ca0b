package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/drakedevel/eagle-tools/pkg/eagle"
	"github.com/drakedevel/eagle-tools/pkg/eagle/xmltree"
)

var extractOut string

var extractCmd = &cobra.Command{
	Use:   "extract <schematic.sch>",
	Short: "Extract embedded libraries into standalone library files",
	Long: `Write each library embedded in a schematic out as a standalone <name>.lbr
document that EAGLE can open directly.`,
	Args: cobra.ExactArgs(1),
	RunE: runExtract,
}

func init() {
	extractCmd.Flags().StringVarP(&extractOut, "out", "o", ".", "directory to write the extracted libraries to")
	rootCmd.AddCommand(extractCmd)
}

func runExtract(cmd *cobra.Command, args []string) error {
	doc, err := parseFile(args[0])
	if err != nil {
		return err
	}
	if doc.Kind != eagle.KindSchematic {
		return fmt.Errorf("%s: this command requires a schematic file, got a %s", args[0], doc.Kind)
	}
	return extractLibraries(doc, extractOut)
}

func extractLibraries(doc *eagle.Document, dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	refs := make([]eagle.LibraryRef, 0, len(doc.Schematic.Libraries))
	for ref := range doc.Schematic.Libraries {
		refs = append(refs, ref)
	}
	sort.Slice(refs, func(i, j int) bool {
		if refs[i].Name != refs[j].Name {
			return refs[i].Name < refs[j].Name
		}
		return refs[i].URN < refs[j].URN
	})

	green := color.New(color.FgGreen)
	for _, ref := range refs {
		path, err := extractPath(dir, ref.Name)
		if err != nil {
			return err
		}
		lib := doc.Schematic.Libraries[ref]
		if err := writeLibrary(path, doc.Version, lib); err != nil {
			return fmt.Errorf("extracting %q: %w", ref.Name, err)
		}
		slog.Debug("extracted library", "name", ref.Name, "urn", ref.URN, "path", path)
		green.Printf("✓ %s\n", path)
	}
	return nil
}

// extractPath builds the output path for one library. Library names come
// from untrusted document content, so anything that could escape dir or
// name a special entry is rejected rather than joined.
func extractPath(dir, name string) (string, error) {
	if name == "" || name == "." || name == ".." ||
		strings.ContainsAny(name, `/\`) || name != filepath.Base(name) {
		return "", fmt.Errorf("library name %q is not usable as a file name", name)
	}
	return filepath.Join(dir, name+".lbr"), nil
}

// writeLibrary wraps the library's source element in a minimal standalone
// document and serializes it. This is a pure tree copy of the parsed input.
func writeLibrary(path, version string, lib *eagle.Library) error {
	root := &xmltree.Node{Tag: "eagle"}
	if version != "" {
		root.SetAttr("version", version)
	}
	drawing := &xmltree.Node{Tag: "drawing"}
	drawing.Children = []*xmltree.Node{lib.Source()}
	root.Children = []*xmltree.Node{drawing}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := root.Encode(f); err != nil {
		return err
	}
	return f.Close()
}
