// Package config provides configuration parsing for viewtree tools.
//
// The configuration is stored in viewtree.json (or viewtree.yaml) at the
// project root. A missing file is not an error: defaults apply.
//
// # Configuration File Structure
//
//	{
//	  "engine": {
//	    "shadowBoundaries": true
//	  },
//	  "devtools": {
//	    "host": "localhost",
//	    "port": 7070
//	  },
//	  "metrics": {
//	    "enabled": true,
//	    "namespace": "viewtree"
//	  },
//	  "journal": {
//	    "path": ".viewtree/journal.db"
//	  },
//	  "log": {
//	    "level": "info"
//	  }
//	}
//
// # Usage
//
//	cfg, err := config.Load(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Println("Devtools:", cfg.DevtoolsAddress())
package config
