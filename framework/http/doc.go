// Package http provides request and response helpers for the JSON API.
//
// # Request
//
//	req := gohttp.NewRequest(r)
//
//	// Bind JSON / form body into a struct (json tags in both cases)
//	var payload struct {
//	    Password string `json:"password"`
//	}
//	if err := req.Bind(&payload); err != nil { ... }
//
//	id   := req.RouteParam("id")
//	page := req.Query("page", "1")
//
// # Response
//
//	res := gohttp.NewResponse(w)
//
//	res.Success(data)             // 200 {"data": ...}
//	res.Created(data)             // 201 {"data": ...}
//	res.NoContent()               // 204
//	res.Error(400, "bad input")   // {"message": "bad input"}
//	res.NotFound()                // 404 {"message": "Not found."}
//	res.ValidationError(errs)     // 422 {"message": ..., "errors": {"field": ["msg"]}, "codes": {...}}
package http
