// Package client sends dictionary commands to a running definer server.
package client

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/avast/retry-go"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"
	"resty.dev/v3"

	"github.com/at-ishikawa/definer/internal/dictionary"
	"github.com/at-ishikawa/definer/internal/render"
	"github.com/at-ishikawa/definer/internal/server"
)

type executeRequest struct {
	Text *string `json:"text,omitempty"`
}

// Client calls the Execute procedure of the dictionary service with the Connect JSON protocol.
type Client struct {
	httpClient       *resty.Client
	maxRetryAttempts uint
	retryDelay       time.Duration
}

func New(baseURL string, retryAttempts uint) *Client {
	client := resty.New()
	client.SetBaseURL(strings.TrimSuffix(baseURL, "/"))
	client.SetHeader("Content-Type", "application/json")
	client.SetHeader("Connect-Protocol-Version", "1")

	return &Client{
		httpClient:       client,
		maxRetryAttempts: retryAttempts,
		retryDelay:       100 * time.Millisecond,
	}
}

func (client *Client) Close() error {
	return client.httpClient.Close()
}

// statusError is a non-2xx response from the server.
type statusError struct {
	statusCode int
	body       string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("response error %d: %s", e.statusCode, e.body)
}

// isRetryableError reports whether the request may succeed if sent again.
// Every command is safe to resend: definitions are upserts and deleting twice is not an error.
func isRetryableError(err error) bool {
	var se *statusError
	if errors.As(err, &se) {
		return se.statusCode >= http.StatusInternalServerError || se.statusCode == http.StatusTooManyRequests
	}
	return err != nil
}

// Execute sends text to the server. A nil text lists every term.
func (client *Client) Execute(ctx context.Context, text *string) (dictionary.Response, error) {
	var result dictionary.Response
	if err := retry.Do(
		func() error {
			response, err := client.execute(ctx, text)
			if err != nil {
				if !isRetryableError(err) {
					return retry.Unrecoverable(err)
				}
				slog.Default().Debug("retrying a dictionary request", "error", err)
				return err
			}
			result = response
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(client.maxRetryAttempts+1),
		retry.Delay(client.retryDelay),
		retry.LastErrorOnly(true),
		retry.DelayType(func(n uint, err error, config *retry.Config) time.Duration {
			return retry.BackOffDelay(n, err, config)
		}),
	); err != nil {
		return dictionary.Response{}, err
	}
	return result, nil
}

func (client *Client) execute(ctx context.Context, text *string) (dictionary.Response, error) {
	response, err := client.httpClient.R().
		SetContext(ctx).
		SetBody(executeRequest{Text: text}).
		Post(server.DictionaryServiceExecuteProcedure)
	if err != nil {
		return dictionary.Response{}, fmt.Errorf("httpClient.Post > %w", err)
	}
	if response.IsError() {
		return dictionary.Response{}, &statusError{statusCode: response.StatusCode(), body: response.String()}
	}

	var body structpb.Struct
	if err := protojson.Unmarshal(response.Bytes(), &body); err != nil {
		return dictionary.Response{}, fmt.Errorf("protojson.Unmarshal(%s) > %w", response.String(), err)
	}
	return render.FromStruct(&body)
}
