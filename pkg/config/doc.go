// Package config provides the statusgen configuration types and loader.
//
// Configuration is read from statusgen.yaml in "." or "./configs" (or an
// explicit file), overridden by STATUSGEN_* environment variables, with
// .env loaded first. Every section has an ApplyDefaults method; a missing
// config file is fine.
//
// Usage:
//
//	import "github.com/jc-juarez/lazarus-statusgen/pkg/config"
//
//	cfg, err := config.Load(config.DefaultLoadOptions())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	registryPath := cfg.Resolve(cfg.Registry.Path)
//
// Example statusgen.yaml:
//
//	root: .
//	registry:
//	  path: status_codes.yaml
//	targets:
//	  native:
//	    path: src/status/status.hh
//	    namespace: [lazarus, status]
//	  dynamic:
//	    path: sdk/python/lazarus_client/status.py
//	    class_name: LazarusStatus
//	log:
//	  format: text
//	  level: info
//	notify:
//	  backend: kafka
//	  timeout: 5s
//	  kafka:
//	    brokers: [localhost:9092]
package config
