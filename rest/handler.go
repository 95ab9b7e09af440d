package rest

import (
	"atlas-introductions/tracing"
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/Chronicle20/atlas-tenant"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/jtumidanski/api2go/jsonapi"
	"github.com/opentracing/opentracing-go"
	"github.com/sirupsen/logrus"
)

// HandlerDependency carries the per-request logger and context
type HandlerDependency struct {
	l   logrus.FieldLogger
	ctx context.Context
}

// Logger returns the request-scoped logger
func (h HandlerDependency) Logger() logrus.FieldLogger {
	return h.l
}

// Context returns the request-scoped context
func (h HandlerDependency) Context() context.Context {
	return h.ctx
}

// HandlerContext carries server information for response marshalling
type HandlerContext struct {
	si jsonapi.ServerInformation
}

// ServerInformation returns the server information
func (h HandlerContext) ServerInformation() jsonapi.ServerInformation {
	return h.si
}

// GetHandler is a handler producer for requests without a body
type GetHandler func(d *HandlerDependency, c *HandlerContext) http.HandlerFunc

// InputHandler is a handler producer for requests with a parsed body
type InputHandler[M any] func(d *HandlerDependency, c *HandlerContext, model M) http.HandlerFunc

// RegisterHandler decorates a handler with span and tenant propagation
func RegisterHandler(l logrus.FieldLogger) func(si jsonapi.ServerInformation) func(handlerName string, handler GetHandler) http.HandlerFunc {
	return func(si jsonapi.ServerInformation) func(handlerName string, handler GetHandler) http.HandlerFunc {
		return func(handlerName string, handler GetHandler) http.HandlerFunc {
			return func(w http.ResponseWriter, r *http.Request) {
				fl, span := tracing.StartSpan(l, handlerName)
				defer span.Finish()

				ctx, err := contextFromRequest(r)
				if err != nil {
					fl.WithError(err).Debug("Request missing tenant headers.")
					w.WriteHeader(http.StatusBadRequest)
					return
				}

				d := &HandlerDependency{l: fl, ctx: ctx}
				c := &HandlerContext{si: si}
				handler(d, c)(w, r)
			}
		}
	}
}

// RegisterInputHandler decorates an input handler with span and tenant propagation
func RegisterInputHandler[M any](l logrus.FieldLogger) func(si jsonapi.ServerInformation) func(handlerName string, handler InputHandler[M]) http.HandlerFunc {
	return func(si jsonapi.ServerInformation) func(handlerName string, handler InputHandler[M]) http.HandlerFunc {
		return func(handlerName string, handler InputHandler[M]) http.HandlerFunc {
			return func(w http.ResponseWriter, r *http.Request) {
				fl, span := tracing.StartSpan(l, handlerName)
				defer span.Finish()

				ctx, err := contextFromRequest(r)
				if err != nil {
					fl.WithError(err).Debug("Request missing tenant headers.")
					w.WriteHeader(http.StatusBadRequest)
					return
				}

				d := &HandlerDependency{l: fl, ctx: ctx}
				c := &HandlerContext{si: si}
				ParseInput[M](d, c, handler)(w, r)
			}
		}
	}
}

// ParseInput decodes the request body before invoking the wrapped handler
func ParseInput[M any](d *HandlerDependency, c *HandlerContext, next InputHandler[M]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var model M
		if err := json.NewDecoder(r.Body).Decode(&model); err != nil {
			d.l.WithError(err).Error("Unable to decode request input.")
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		next(d, c, model)(w, r)
	}
}

// ParseRequestId parses the requestId path variable
func ParseRequestId(l logrus.FieldLogger, next func(requestId uint32) http.HandlerFunc) http.HandlerFunc {
	return parseUint32(l, "requestId", next)
}

// ParseMemberId parses the memberId path variable
func ParseMemberId(l logrus.FieldLogger, next func(memberId uint32) http.HandlerFunc) http.HandlerFunc {
	return parseUint32(l, "memberId", next)
}

func parseUint32(l logrus.FieldLogger, name string, next func(id uint32) http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		value, err := strconv.ParseUint(mux.Vars(r)[name], 10, 32)
		if err != nil {
			l.WithError(err).Errorf("Unable to parse %s from path.", name)
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		next(uint32(value))(w, r)
	}
}

// contextFromRequest derives a tenant-scoped context from request headers
func contextFromRequest(r *http.Request) (context.Context, error) {
	tenantId, err := uuid.Parse(r.Header.Get("TENANT_ID"))
	if err != nil {
		return nil, err
	}
	region := r.Header.Get("REGION")
	majorVersion, err := strconv.ParseUint(r.Header.Get("MAJOR_VERSION"), 10, 16)
	if err != nil {
		return nil, err
	}
	minorVersion, err := strconv.ParseUint(r.Header.Get("MINOR_VERSION"), 10, 16)
	if err != nil {
		return nil, err
	}

	t, err := tenant.Create(tenantId, region, uint16(majorVersion), uint16(minorVersion))
	if err != nil {
		return nil, err
	}

	ctx := tenant.WithContext(r.Context(), t)
	if span := opentracing.SpanFromContext(r.Context()); span != nil {
		ctx = opentracing.ContextWithSpan(ctx, span)
	}
	return ctx, nil
}
