// Package config provides configuration parsing for fiberctl projects.
//
// The configuration is stored in fiber.json at the project root.
// This package handles loading, saving, and validating configuration.
//
// # Configuration File Structure
//
//	{
//	  "name": "demo",
//	  "scene": "scenes/counter.yaml",
//	  "scheduler": {
//	    "slice": "5ms",
//	    "minRemaining": "1ms",
//	    "debug": false
//	  },
//	  "inspector": {
//	    "host": "localhost",
//	    "port": 7070
//	  },
//	  "metrics": {
//	    "disabled": false,
//	    "namespace": "fiber"
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
//	fmt.Println("Inspector:", cfg.InspectorAddress())
package config
