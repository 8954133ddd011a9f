// Package devserver is an in-memory implementation of the country/state
// REST API, used by geoadmin-server for local development and by tests.
//
// # Endpoints
//
//	GET    /country?pageNo=0&pageSize=5   {content, totalPages, ...}
//	GET    /country                       [Country]
//	POST   /country                       {name}
//	PUT    /country/:id                   {name}
//	DELETE /country/:id
//	GET    /state?pageNo=0&pageSize=5     {content, totalPages, ...}
//	GET    /state                         [State]
//	POST   /state                         {name, countryId}
//	PUT    /state/:id                     {name, countryId}
//	DELETE /state/:id
//	GET    /events                        WebSocket feed of changes
//	GET    /health
//
// Pages are zero-based and totalPages is ceil(total/pageSize). States are
// returned with their country embedded. Deleting a country that still has
// states fails with 409, the way a foreign key constraint would.
//
// # Change Feed
//
// Every successful mutation is broadcast to /events subscribers as JSON:
//
//	{"entity":"state","action":"created","id":12,"at":"2025-03-04T10:00:00Z"}
package devserver
