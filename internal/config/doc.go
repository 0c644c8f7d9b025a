// Package config provides configuration parsing for jRouter sites.
//
// The configuration is stored in jrouter.json at the site root.
// This package handles loading, saving, and validating configuration.
//
// # Configuration File Structure
//
//	{
//	  "target": "#content",
//	  "initialize": true,
//	  "navbar": {
//	    "selector": "#nav",
//	    "class": "active",
//	    "parent": false
//	  },
//	  "routes": [
//	    {"path": "/", "file": "home.html"},
//	    {"path": "/users/{id:\\d+}", "file": "user.html"},
//	    {"path": "404", "file": "404.html"}
//	  ],
//	  "loader": {
//	    "kind": "fs",
//	    "dir": "fragments"
//	  },
//	  "dev": {
//	    "port": 3000,
//	    "host": "localhost"
//	  },
//	  "metrics": {
//	    "enabled": true
//	  }
//	}
//
// The loader kind is one of "fs" (dir), "http" (baseURL, timeout) or
// "s3" (bucket, prefix, region, endpoint).
//
// # Usage
//
//	cfg, err := config.Load(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := cfg.Validate(); err != nil {
//	    log.Fatal(err)
//	}
//	table, err := cfg.RouteTable()
package config
