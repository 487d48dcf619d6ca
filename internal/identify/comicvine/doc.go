// Package comicvine provides a typed client for the ComicVine issue search
// API. Query planning and candidate filtering live in the identify package;
// this client only issues single requests.
package comicvine
