// Otto - Vehicle Comparison and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/otto

// Package testinfra provides container-backed infrastructure for integration tests.
//
// It uses testcontainers-go to start real backing services so the
// recommendation cache is tested against the same server it runs on in
// production. Every file carries the integration build tag:
//
//	go test -tags integration ./...
//
// # Redis Container
//
//	func TestRedisCache(t *testing.T) {
//	    testinfra.SkipIfNoDocker(t)
//	    ctx := context.Background()
//	    redis, err := testinfra.NewRedisContainer(ctx)
//	    if err != nil {
//	        t.Fatal(err)
//	    }
//	    defer testinfra.CleanupContainer(t, ctx, redis.Container)
//
//	    store, err := recommend.NewRedisCacheStore(ctx, recommend.RedisConfig{Addr: redis.Addr})
//	    // ...
//	}
//
// # CI Considerations
//
// Tests are skipped when Docker is unavailable. The first run pulls the
// image; later runs use the local cache.
package testinfra
