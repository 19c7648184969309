package handle

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"

	"github.com/aws/aws-lambda-go/events"
	"github.com/dmorgan81/imagegen/internal/handler"
	"github.com/dmorgan81/imagegen/internal/log"
)

var jsonHeaders = map[string]string{
	"Content-Type":                "application/json",
	"Access-Control-Allow-Origin": "*",
}

// APIHandler serves the image endpoint behind API Gateway. Like the HTTP
// route it only ever answers 200.
type APIHandler struct {
	handler *handler.Handler
}

func NewAPIHandler(h *handler.Handler) *APIHandler {
	return &APIHandler{handler: h}
}

func (h *APIHandler) Handle(ctx context.Context, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	log := log.FromContextOrDiscard(ctx).WithGroup("APIHandler").With("request_id", request.RequestContext.RequestID)
	log.Info("handling lambda invocation", "method", request.HTTPMethod, "path", request.Path)

	if request.HTTPMethod == http.MethodOptions {
		return events.APIGatewayProxyResponse{StatusCode: http.StatusNoContent, Headers: jsonHeaders}, nil
	}

	body := []byte(request.Body)
	if request.IsBase64Encoded {
		decoded, err := base64.StdEncoding.DecodeString(request.Body)
		if err != nil {
			log.Warn("decoding base64 body", "error", err)
			decoded = nil
		}
		body = decoded
	}

	out := h.handler.HandleBody(ctx, body)
	data, err := json.Marshal(out)
	if err != nil {
		return events.APIGatewayProxyResponse{}, err
	}
	return events.APIGatewayProxyResponse{
		StatusCode: http.StatusOK,
		Headers:    jsonHeaders,
		Body:       string(data),
	}, nil
}
