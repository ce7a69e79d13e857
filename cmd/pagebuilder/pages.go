package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pariahsoft/pagebuilder"
)

var pagesCmd = &cobra.Command{
	Use:   "pages",
	Short: "Manage a SQLite page store",
	Long: `Manage a SQLite page store.

A store can replace pages.json: pass its path (ending in .db, .sqlite or
.sqlite3) as --pages.

Subcommands:
  import  - Copy a pages.json file into a store
  list    - List the pages in a store
  delete  - Remove a page from a store`,
}

var pagesImportCmd = &cobra.Command{
	Use:   "import <pages.json> <store.db>",
	Short: "Copy a pages.json file into a store",
	Args:  cobra.ExactArgs(2),
	RunE:  runPagesImport,
}

var pagesListCmd = &cobra.Command{
	Use:   "list <store.db>",
	Short: "List the pages in a store",
	Args:  cobra.ExactArgs(1),
	RunE:  runPagesList,
}

var pagesDeleteCmd = &cobra.Command{
	Use:   "delete <store.db> <page>",
	Short: "Remove a page from a store",
	Args:  cobra.ExactArgs(2),
	RunE:  runPagesDelete,
}

func init() {
	pagesCmd.AddCommand(pagesImportCmd, pagesListCmd, pagesDeleteCmd)
}

func runPagesImport(cmd *cobra.Command, args []string) error {
	reg, err := pagebuilder.LoadRegistry(args[0])
	if err != nil {
		return err
	}
	store, err := pagebuilder.OpenPageStore(args[1])
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer store.Close()

	if err := store.Import(reg); err != nil {
		return fmt.Errorf("import pages: %w", err)
	}
	fmt.Printf("Imported %d pages into %s\n", len(reg), args[1])
	return nil
}

func runPagesList(cmd *cobra.Command, args []string) error {
	store, err := pagebuilder.OpenPageStore(args[0])
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer store.Close()

	names, err := store.ListPages()
	if err != nil {
		return fmt.Errorf("list pages: %w", err)
	}
	for _, name := range names {
		fmt.Println(name)
	}
	return nil
}

func runPagesDelete(cmd *cobra.Command, args []string) error {
	store, err := pagebuilder.OpenPageStore(args[0])
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer store.Close()

	if err := store.DeletePage(args[1]); err != nil {
		return fmt.Errorf("delete page: %w", err)
	}
	return nil
}
