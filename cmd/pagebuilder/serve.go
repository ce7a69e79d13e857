package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/pariahsoft/pagebuilder"
)

var (
	serveAddr     string
	serveStatic   string
	serveCacheTTL time.Duration
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the site over HTTP for development",
	Long: `Serve the site over HTTP for development.

Pages are answered at /?page=<name> and /<name>, static files under /public/
and a sitemap at /sitemap.xml. Config and templates are reloaded on every
request unless --cache-ttl is set.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", pagebuilder.EnvOr("PAGEBUILDER_ADDR", ":3000"), "listen address")
	serveCmd.Flags().StringVar(&serveStatic, "static", "public", "directory served under /public")
	serveCmd.Flags().DurationVar(&serveCacheTTL, "cache-ttl", 0, "keep loaded config for this long (0 reloads every request)")
}

func runServe(cmd *cobra.Command, args []string) error {
	opts := options()
	opts.Addr = serveAddr
	opts.CacheTTL = serveCacheTTL

	s := pagebuilder.NewServer(opts,
		pagebuilder.WithLogger(logger),
		pagebuilder.WithStaticDir(serveStatic),
	)
	return s.Start()
}
