/*
Package cache implements the embedded data-grid cache: named key/value
regions over in-memory or SQLite storage, plus the per-cache security
service that the security activation adapter enables.

	c, err := cache.New(cache.Options{
		Regions: []cache.RegionOptions{
			{Name: "sessions", Storage: cache.StorageMemory},
			{Name: "orders", Storage: cache.StorageSQLite},
		},
		DBPath: "/var/lib/palisade/cache.db",
	})
	if err != nil {
		log.Fatal(err)
	}
	defer c.Close()

	region, _ := c.Region("orders")
	_ = region.Put(ctx, "order-1", payload)

Region operations are counted in Prometheus via the telemetry/metrics
package.
*/
package cache
