// Package apiclient provides the HTTP client for the geography reference API.
//
// The backend exposes two resources, /country and /state, each with a
// paginated listing, creation, update-by-id and delete-by-id. Countries also
// have an unpaginated listing used to fill the country selector on the State
// screen.
//
// # Usage Example
//
//	client := apiclient.NewClient("http://localhost:8080")
//
//	page, err := client.ListCountries(ctx, 0, 5)
//	if err != nil {
//	    log.Fatal(apiclient.ShortMessage(err))
//	}
//
//	created, err := client.CreateState(ctx, model.StateDraft{Name: "Texas", CountryID: 7})
//
// # Success
//
// A call succeeds when the response status is 2xx. Bodies of successful
// mutations are decoded when they parse and ignored otherwise. Delete bodies
// are never read.
//
// # Error Handling
//
// Every failure is an *APIError with one of three kinds:
//   - KindNetwork: transport failure (timeout, refused, DNS, unreachable)
//   - KindHTTP: the backend answered with a non-2xx status
//   - KindParse: the body did not have the expected shape
//
// There is no retry and no backoff. A failed call is reported once and the
// caller decides what to do with it.
//
// # Thread Safety
//
// Client instances are safe for concurrent use.
package apiclient
