// Package dataverse provides a client for the Dataverse native API.
//
// Dataverse is an open source research data repository. This package covers
// the calls needed to look around an instance and to create, read, edit and
// publish datasets.
//
// # Configuration
//
// A client is bound to one InstanceConfig. NewInstanceConfig validates the
// base URL and fills in the fixed connection and lock-polling values:
//
//	cfg, err := dataverse.NewInstanceConfig(
//		"https://demo.dataverse.org",
//		"your-api-key",
//		"", // no unblock key
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	client, err := dataverse.NewClient(cfg, zerolog.New(os.Stderr))
//	if err != nil {
//		log.Fatal(err)
//	}
//
// # Locks
//
// Publishing and some edits lock a dataset while the server finishes work in
// the background. AwaitUnlock polls until the locks are gone:
//
//	if err := client.PublishDataset(ctx, pid, true); err != nil {
//		return err
//	}
//	if err := client.AwaitUnlock(ctx, pid); errors.Is(err, dataverse.ErrLockTimeout) {
//		// still publishing
//	}
//
// # Errors
//
// Failed calls return an *APIError carrying the HTTP status and the message
// from the response envelope. A bad base URL is reported as *URISyntaxError,
// which matches ErrInvalidBaseURL.
package dataverse
