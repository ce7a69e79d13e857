package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pariahsoft/pagebuilder"
)

var exportCmd = &cobra.Command{
	Use:   "export <dir>",
	Short: "Render every page to static HTML files",
	Long: `Render every page in local mode and write <name>.html for each, index.html
for the default page and sitemap.xml into <dir>. Links of the form
"{baseurl}?page=<name>" and "{baseurl}" are rewritten to the exported files.`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

func runExport(cmd *cobra.Command, args []string) error {
	site, err := pagebuilder.LoadSite(options())
	if err != nil {
		return err
	}
	written, err := pagebuilder.Export(site, args[0])
	for _, path := range written {
		logger.Debugf("wrote %s", path)
	}
	if err != nil {
		return err
	}
	fmt.Printf("Exported %d files to %s\n", len(written), args[0])
	return nil
}
