package httpx

import "net/http"

// MethodMux chooses a handler based on the incoming HTTP method and
// answers everything else with the JSON 405 body.
func MethodMux(handlers map[string]http.HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h, ok := handlers[r.Method]; ok {
			h(w, r)
			return
		}
		MethodNotAllowedResponse(w)
	})
}
