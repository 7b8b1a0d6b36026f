// Package gcloud provides the types, interfaces, and cross-cutting machinery
// for working with the resource-management service API.
//
// # Overview
//
// The gcloud package defines the domain types (Dataset, Table, Job, Bucket,
// Blob, Instance, Zone, Operation) and the interfaces for resource-oriented
// clients (DatasetsClient, BucketsClient, and so on). A concrete
// implementation is provided by the gcloudclient package, which wires
// configuration, transport, and authentication. Most consumers should import
// gcloudclient to construct a client and then interact with the resource
// client interfaces exposed here.
//
// Getting a client
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
//	  cli, err := gcloudclient.New(&gcloud.Config{Endpoint: "https://api.example.com"})
//	  if err != nil { log.Fatal(err) }
//
//	  // Walk all datasets lazily, one page at a time.
//	  it := cli.Datasets().List(ctx, &gcloud.ListOptions{PageSize: 50})
//	  for it.HasNext() {
//	    dataset, err := it.Next()
//	    if err != nil { break }
//	    _ = dataset
//	  }
//	}
//
// # Errors and retries
//
// Every RPC failure is classified into an *Error carrying the service status
// code and a retryability verdict; Execute wraps a single call in a bounded
// retry loop driven by that verdict and the caller-declared idempotency of
// the operation. Helpers such as IsNotFound and IsPreconditionFailed make it
// easy to branch on common cases. Absence is not an error on read and delete
// paths: Get returns (nil, nil) and Delete returns (false, nil) for missing
// resources.
//
// # Operations
//
// Mutations the service executes asynchronously return an Operation handle.
// WaitForOperation blocks until the operation reaches DONE (a vanished
// operation counts as done), bounded by a WaitPolicy built from CheckEvery
// and Timeout options; WhenOperationDone splits the outcome into the success
// and error branches of a Completion.
//
// # Batching
//
// Independent get/update/delete sub-requests over one resource family can be
// grouped into a BatchRequest and run by a BatchExecutor; each sub-request
// yields its own Result, so one failure never aborts the rest.
package gcloud
