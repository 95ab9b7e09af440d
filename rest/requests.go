package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/Chronicle20/atlas-tenant"
	"github.com/sirupsen/logrus"
)

// Request performs an outbound call to a collaborating service
type Request[A any] func(l logrus.FieldLogger, ctx context.Context) (A, error)

// DeleteRequest performs an outbound call without a response body
type DeleteRequest func(l logrus.FieldLogger, ctx context.Context) error

// MakeGetRequest produces a GET request against a collaborating service
func MakeGetRequest[A any](url string) Request[A] {
	return makeRequest[A](http.MethodGet, url, nil)
}

// MakePostRequest produces a POST request against a collaborating service
func MakePostRequest[A any](url string, input interface{}) Request[A] {
	return makeRequest[A](http.MethodPost, url, input)
}

// MakePatchRequest produces a PATCH request against a collaborating service
func MakePatchRequest[A any](url string, input interface{}) Request[A] {
	return makeRequest[A](http.MethodPatch, url, input)
}

// MakeDeleteRequest produces a DELETE request against a collaborating service
func MakeDeleteRequest(url string) DeleteRequest {
	return func(l logrus.FieldLogger, ctx context.Context) error {
		_, err := execute[struct{}](l, ctx, http.MethodDelete, url, nil, false)
		return err
	}
}

func makeRequest[A any](method string, url string, input interface{}) Request[A] {
	return func(l logrus.FieldLogger, ctx context.Context) (A, error) {
		return execute[A](l, ctx, method, url, input, true)
	}
}

func execute[A any](l logrus.FieldLogger, ctx context.Context, method string, url string, input interface{}, decode bool) (A, error) {
	var result A

	var body *bytes.Buffer
	if input != nil {
		data, err := json.Marshal(input)
		if err != nil {
			return result, err
		}
		body = bytes.NewBuffer(data)
	} else {
		body = bytes.NewBuffer(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return result, err
	}
	req.Header.Set("Content-Type", "application/json")
	decorateTenantHeaders(ctx, req)

	l.WithFields(logrus.Fields{
		"method": method,
		"url":    url,
	}).Debug("Issuing request to collaborating service.")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return result, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return result, fmt.Errorf("unexpected status code %d from %s", resp.StatusCode, url)
	}

	if !decode {
		return result, nil
	}

	if err = json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return result, err
	}
	return result, nil
}

func decorateTenantHeaders(ctx context.Context, req *http.Request) {
	t := tenant.MustFromContext(ctx)
	req.Header.Set("TENANT_ID", t.Id().String())
	req.Header.Set("REGION", t.Region())
	req.Header.Set("MAJOR_VERSION", strconv.Itoa(int(t.MajorVersion())))
	req.Header.Set("MINOR_VERSION", strconv.Itoa(int(t.MinorVersion())))
}
