// Package binder decodes HTTP request data into Go structs.
//
// A Binder fills a struct from the request body or query string. Decoder
// chains a Binder with sanitization and validation and produces a
// lifecycle decoder:
//
//	creator := lifecycle.Creator[*http.Request, CreateUser, User]{
//	    Decoder:   binder.Decoder[CreateUser](binder.Auto()),
//	    Construct: newUser,
//	}
//
// JSON bodies use `json` tags, form bodies use `form` tags and query strings
// use `query` tags.
package binder
