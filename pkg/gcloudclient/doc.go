// Package gcloudclient provides the primary entry point for constructing a
// service client that implements the gcloud.Client interface.
//
// It layers configuration and HTTP transport on top of the resource
// interfaces and types defined in the gcloud package. Most applications
// should import gcloudclient to build a client, then use the returned
// gcloud.Client to access resource-specific clients, for example Datasets(),
// Buckets(), Instances(), etc.
//
// Quick start
//
//	import (
//	  "context"
//	  "log"
//
//	  "github.com/mziccard/gcloud-go/pkg/gcloud"
//	  "github.com/mziccard/gcloud-go/pkg/gcloudclient"
//	)
//
//	func example() {
//	  ctx := context.Background()
//
//	  // Minimal: just an endpoint (no auth).
//	  cli, err := gcloudclient.New(&gcloud.Config{Endpoint: "https://api.example.com"})
//	  if err != nil { log.Fatal(err) }
//
//	  // Or with a bearer token you already have:
//	  cli, err = gcloudclient.NewWithToken("https://api.example.com", "eyJhbGciOi...")
//	  if err != nil { log.Fatal(err) }
//
//	  datasets, err := cli.Datasets().List(ctx, nil).All()
//	  if err != nil { log.Fatal(err) }
//	  _ = datasets
//	}
//
// # Configuration files
//
// NewFromFile builds a client from a YAML config file; see gcloud.Config for
// the recognized keys.
package gcloudclient
