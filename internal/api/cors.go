package api

// Every response carries these; handler-provided headers win on collision.
var corsHeaders = map[string]string{
	"Access-Control-Allow-Origin":  "*",
	"Access-Control-Allow-Headers": "Content-Type,Authorization,X-Amz-Date,X-Api-Key,X-Amz-Security-Token",
	"Access-Control-Allow-Methods": "GET,POST,PUT,DELETE,OPTIONS",
	"Content-Type":                 "application/json",
}

func mergeCORS(handlerHeaders map[string]string) map[string]string {
	merged := make(map[string]string, len(corsHeaders)+len(handlerHeaders))
	for k, v := range corsHeaders {
		merged[k] = v
	}
	for k, v := range handlerHeaders {
		merged[k] = v
	}
	return merged
}
