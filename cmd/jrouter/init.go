package main

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/AndreasArvidsson/jRouter/internal/config"
	"github.com/AndreasArvidsson/jRouter/internal/errors"
)

// starterFragments are written by init next to jrouter.json.
var starterFragments = map[string]string{
	"home.html":  "<h1>Home</h1>\n<p>Edit home.html to change this page.</p>\n",
	"about.html": "<h1>About</h1>\n",
	"user.html":  "<h1>User</h1>\n",
	"404.html":   "<h1>Error 404<br><small>Page not found</small></h1>\n",
}

func initCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init [dir]",
		Short: "Create jrouter.json and starter fragments",
		Long: `Create a jrouter.json with a few example routes and the fragment
files they point to. Existing fragments are never overwritten.

Examples:
  jrouter init
  jrouter init mysite`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}
			return runInit(cmd, dir, force)
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite an existing jrouter.json")

	return cmd
}

func runInit(cmd *cobra.Command, dir string, force bool) error {
	w := cmd.OutOrStdout()

	if config.Exists(dir) && !force {
		return errors.New("E005").
			WithDetail(filepath.Join(dir, config.ConfigFileName) + " already exists").
			WithSuggestion("Use --force to overwrite it")
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	cfg := config.New()
	cfg.Navbar.Selector = "#nav"
	cfg.Routes = []config.RouteConfig{
		{Path: "/", File: "home.html"},
		{Path: "/about", File: "about.html"},
		{Path: `/users/{id:\d+}`, File: "user.html"},
		{Path: "404", File: "404.html"},
	}

	path := filepath.Join(dir, config.ConfigFileName)
	if err := cfg.SaveTo(path); err != nil {
		return err
	}
	success(w, "Created %s", path)

	for name, body := range starterFragments {
		fragment := filepath.Join(dir, name)
		if _, err := os.Stat(fragment); err == nil {
			continue
		}
		if err := os.WriteFile(fragment, []byte(body), 0644); err != nil {
			return err
		}
		info(w, "wrote %s", fragment)
	}

	info(w, "Run 'jrouter serve -C %s' to start the dev server", dir)
	return nil
}
