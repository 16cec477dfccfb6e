// Package response provides either.Encoder implementations for HTTP handlers
// and maps lifecycle errors to HTTP status codes.
//
//	user, err := creator.Create(r)
//	if err != nil {
//	    _ = response.FromError(err).Encode(w, r)
//	    return
//	}
//	_ = response.JSON(http.StatusCreated, user).Encode(w, r)
package response
