/*
Package config loads and validates Palisade node configuration from
YAML.

	cfg, err := config.Load("palisade.yaml")
	if err != nil {
		log.Fatal(err)
	}

A minimal configuration:

	cache:
	  regions:
	    - name: sessions
	    - name: orders
	      storage: sqlite
	  db_path: /var/lib/palisade/cache.db

	security:
	  realms:
	    - name: local
	      type: static
	      priority: 1
	      accounts:
	        - principal: admin
	          credentials: s3cret
	          permissions: ["*"]

Environment variables of the form PALISADE_* override file values
(PALISADE_LOG_LEVEL, PALISADE_LOG_FORMAT, PALISADE_METRICS_LISTEN_ADDRESS,
PALISADE_CACHE_DB_PATH, PALISADE_SECURITY_ENABLED).
*/
package config
