// Command pagebuilder renders site pages from header, content and footer
// templates.
//
// Run by a CGI gateway it answers the request with an HTTP header block and
// the page named by the "page" parameter. Run from a shell it prints the page
// named by its argument, for testing. The serve, export, pages and new
// subcommands cover local development, static hosting, the SQLite page store
// and starting a new site.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/labstack/gommon/log"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/pariahsoft/pagebuilder"
)

// version is set at build time via ldflags.
var version = "dev"

var logger = log.New("pagebuilder")

var (
	configPath    string
	pagesPath     string
	workDir       string
	localFallback bool
	debug         bool
)

var rootCmd = &cobra.Command{
	Use:   "pagebuilder [page]",
	Short: "Render a page from header, content and footer templates",
	Long: `Render a page from header, content and footer templates.

Under a CGI gateway (GATEWAY_INTERFACE set) the page comes from the "page"
request parameter and the output starts with a Content-type header. Otherwise
the optional argument names the page and plain HTML is printed. A page whose
name matches a subcommand is rendered when the registry has it; "--" also
forces the argument to be read as a page name.`,
	Args:              cobra.MaximumNArgs(1),
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
	RunE:              runRender,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the pagebuilder version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "pagebuilder %s\n", version)
	},
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&configPath, "config", "c", pagebuilder.EnvOr("PAGEBUILDER_CONFIG", "config/config.json"), "site config file")
	flags.StringVarP(&pagesPath, "pages", "p", pagebuilder.EnvOr("PAGEBUILDER_PAGES", "config/pages.json"), "page registry (JSON file or SQLite store)")
	flags.StringVarP(&workDir, "chdir", "C", "", "change to this directory first")
	flags.BoolVar(&localFallback, "fallback", false, "render the 404 page for unknown names when run locally")
	flags.BoolVar(&debug, "debug", false, "enable debug logging")

	rootCmd.AddCommand(versionCmd, serveCmd, exportCmd, pagesCmd, newCmd)
}

func main() {
	logger.SetOutput(os.Stderr)
	if err := execute(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func execute(args []string) error {
	if pagebuilder.IsCGI() {
		// A gateway may pass words of an ISINDEX query as arguments; they
		// must not be taken for subcommands or flags.
		args = []string{}
	} else if args = routeArgs(args); args == nil {
		args = []string{}
	}
	rootCmd.SetArgs(args)
	return rootCmd.Execute()
}

// routeArgs moves a page argument that shares its name with a subcommand
// behind "--" when the registry has that page, so cobra hands it to the root
// command instead of running the subcommand.
func routeArgs(args []string) []string {
	flags := rootCmd.PersistentFlags()
	values := make(map[string]string)
	first := -1
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == "--" {
			break
		}
		if len(arg) < 2 || arg[0] != '-' {
			if first < 0 {
				first = i
			}
			continue
		}
		f, value, inline := splitFlag(flags, arg)
		if f == nil || f.NoOptDefVal != "" {
			continue
		}
		if !inline {
			if i+1 == len(args) {
				break
			}
			i++
			value = args[i]
		}
		values[f.Name] = value
	}
	if first < 0 || !isSubcommand(args[first]) || !hasPage(values, args[first]) {
		return args
	}
	rest := slices.Delete(slices.Clone(args), first, first+1)
	if slices.Contains(rest, "--") {
		return args
	}
	return append(rest, "--", args[first])
}

func splitFlag(flags *pflag.FlagSet, arg string) (*pflag.Flag, string, bool) {
	if strings.HasPrefix(arg, "--") {
		name, value, inline := strings.Cut(arg[2:], "=")
		return flags.Lookup(name), value, inline
	}
	f := flags.ShorthandLookup(arg[1:2])
	if len(arg) > 2 {
		return f, strings.TrimPrefix(arg[2:], "="), true
	}
	return f, "", false
}

func isSubcommand(name string) bool {
	if name == "help" || name == "completion" {
		return true
	}
	for _, c := range rootCmd.Commands() {
		if c.Name() == name || c.HasAlias(name) {
			return true
		}
	}
	return false
}

// hasPage reports whether the registry the flags point at has a page called
// name. Registry errors are left for the command that runs to report.
func hasPage(values map[string]string, name string) bool {
	path, ok := values["pages"]
	if !ok {
		path = rootCmd.PersistentFlags().Lookup("pages").DefValue
	}
	if dir := values["chdir"]; dir != "" && !filepath.IsAbs(path) {
		path = filepath.Join(dir, path)
	}
	reg, err := pagebuilder.LoadRegistry(path)
	if err != nil {
		return false
	}
	_, ok = reg[strings.ToLower(name)]
	return ok
}

func setup(cmd *cobra.Command, args []string) error {
	if debug {
		logger.SetLevel(log.DEBUG)
	}
	if workDir != "" {
		if err := os.Chdir(workDir); err != nil {
			return err
		}
		logger.Debugf("working directory %s", workDir)
	}
	return nil
}

func options() pagebuilder.Options {
	return pagebuilder.Options{
		ConfigPath:    configPath,
		PagesPath:     pagesPath,
		LocalFallback: localFallback,
	}
}

func runRender(cmd *cobra.Command, args []string) error {
	opts := options()
	site, err := pagebuilder.LoadSite(opts)
	if err != nil {
		return err
	}
	if pagebuilder.IsCGI() {
		logger.Debugf("cgi request %s", os.Getenv("QUERY_STRING"))
		return pagebuilder.ServeCGI(site, opts, cmd.OutOrStdout())
	}
	return pagebuilder.RenderLocal(site, opts, args, cmd.OutOrStdout())
}
