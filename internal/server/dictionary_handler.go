package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"connectrpc.com/connect"
	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/at-ishikawa/definer/internal/render"
)

const (
	// DictionaryServiceName is the fully-qualified name of the dictionary service.
	DictionaryServiceName = "definer.v1.DictionaryService"
	// DictionaryServiceExecuteProcedure is the path of the Execute RPC.
	DictionaryServiceExecuteProcedure = "/definer.v1.DictionaryService/Execute"
)

// DictionaryHandler serves the dictionary service over Connect, gRPC and gRPC-Web.
// Requests are {"text": "..."} and responses are rendered with render.Struct.
type DictionaryHandler struct {
	executor CommandExecutor
	logger   *slog.Logger
}

// NewDictionaryHandler creates a new DictionaryHandler.
func NewDictionaryHandler(executor CommandExecutor, logger *slog.Logger) *DictionaryHandler {
	return &DictionaryHandler{
		executor: executor,
		logger:   logger,
	}
}

// NewDictionaryServiceHandler returns the path to mount the service on and its handler.
func NewDictionaryServiceHandler(h *DictionaryHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	executeHandler := connect.NewUnaryHandler(
		DictionaryServiceExecuteProcedure,
		h.Execute,
		opts...,
	)
	return "/" + DictionaryServiceName + "/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case DictionaryServiceExecuteProcedure:
			executeHandler.ServeHTTP(w, r)
		default:
			http.NotFound(w, r)
		}
	})
}

// Execute parses the request text, runs the command and returns the rendered response.
func (h *DictionaryHandler) Execute(
	ctx context.Context,
	req *connect.Request[structpb.Struct],
) (*connect.Response[structpb.Struct], error) {
	text, connectErr := requestText(req.Msg)
	if connectErr != nil {
		return nil, connectErr
	}
	if text != nil {
		h.logger.DebugContext(ctx, "command received", "text", *text)
	}

	resp := h.executor.Execute(ctx, parseText(text))
	msg, err := render.Struct(resp)
	if err != nil {
		return nil, connect.NewError(connect.CodeInternal, fmt.Errorf("render.Struct() > %w", err))
	}
	return connect.NewResponse(msg), nil
}

// requestText returns the optional "text" field. A null or missing field is nil.
func requestText(msg *structpb.Struct) (*string, *connect.Error) {
	value, ok := msg.GetFields()["text"]
	if !ok {
		return nil, nil
	}
	switch kind := value.GetKind().(type) {
	case *structpb.Value_NullValue:
		return nil, nil
	case *structpb.Value_StringValue:
		text := kind.StringValue
		return &text, nil
	}

	connectErr := connect.NewError(connect.CodeInvalidArgument, errors.New("text must be a string"))
	if detail, detailErr := connect.NewErrorDetail(&errdetails.BadRequest{
		FieldViolations: []*errdetails.BadRequest_FieldViolation{
			{
				Field:       "text",
				Description: "must be a string",
			},
		},
	}); detailErr == nil {
		connectErr.AddDetail(detail)
	}
	return nil, connectErr
}
