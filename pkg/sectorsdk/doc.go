/*
Package sectorsdk is a client for the sector API.

# Overview

The API exposes one resource, the sector, under /api/sectors:

	GET    /api/sectors        list every sector
	GET    /api/sectors/{id}   fetch one sector
	POST   /api/sectors        create, body {"id": null, "name": "..."}
	PUT    /api/sectors/{id}   rename, body {"id": 5, "name": "..."}
	DELETE /api/sectors/{id}   delete

Create a Client and call the typed operations:

	client := sectorsdk.NewClient("http://localhost:8080", sectorsdk.WithToken(token))

	sectors, err := client.ListSectors(ctx)

	created, err := client.CreateSector(ctx, "Finance")

	err = client.DeleteSector(ctx, created.ID)

SaveSector picks between create and update from the presence of an id, which is
how a form that is reused for both modes submits:

	saved, err := client.SaveSector(ctx, sectorsdk.SectorRequest{ID: &id, Name: "Retail"})

# Errors

Any non-2xx response becomes an *APIError carrying the status code, the error
code and description from the JSON body, and the request id the server logged
the request under. IsNotFound reports a 404:

	if sectorsdk.IsNotFound(err) {
		// sector was deleted by someone else
	}

Transport failures (connection refused, timeouts) are returned wrapped and are
not *APIError values.

# Authentication

When the API runs with a token secret, every request needs a bearer token with
the sectors:read or sectors:write scope. WithToken (or setting Client.Token)
adds the Authorization header to every request.
*/
package sectorsdk
