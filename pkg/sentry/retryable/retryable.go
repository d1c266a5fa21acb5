// Package retryable adapts a hashicorp/go-retryablehttp client into a
// transport send function.
//
// The core transport is fire-and-once; callers opt into retries by injecting
// this SendFunc via sentry.WithSendFunc. The request body is buffered by
// retryablehttp and replayed on every attempt.
package retryable

import (
	"net/http"

	"github.com/hashicorp/go-retryablehttp"

	"github.com/andrzejpindor/sentrygo/pkg/sentry"
)

// SendFunc wraps client so each event POST is retried per the client's
// policy.
func SendFunc(client *retryablehttp.Client) sentry.SendFunc {
	return func(req *http.Request) (*http.Response, error) {
		rreq, err := retryablehttp.FromRequest(req)
		if err != nil {
			return nil, err
		}
		return client.Do(rreq)
	}
}
