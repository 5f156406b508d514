package api

import (
	"encoding/json"
	"net/http"
)

// ServeHTTP hosts the dispatcher on net/http: adapt, dispatch, write.
func (d *Dispatcher) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	req, err := FromHTTP(r)
	if err != nil {
		writeResponse(w, d.finalize(ErrorFrom(err)))
		return
	}
	writeResponse(w, d.Dispatch(r.Context(), req))
}

func writeResponse(w http.ResponseWriter, resp *Response) {
	var payload []byte
	switch body := resp.Body.(type) {
	case nil:
	case string:
		payload = []byte(body)
	case []byte:
		payload = body
	default:
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			for k, v := range resp.Headers {
				w.Header().Set(k, v)
			}
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte(`{"success":false,"error":"Internal server error"}`))
			return
		}
	}

	for k, v := range resp.Headers {
		w.Header().Set(k, v)
	}
	w.WriteHeader(resp.StatusCode)
	if payload != nil {
		w.Write(payload)
	}
}
