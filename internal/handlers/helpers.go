package handlers

import (
	"errors"
	"strconv"

	"github.com/dimitrije/portal-api/internal/services"
	"github.com/m1z23r/drift/pkg/drift"
)

// pathID reads a numeric path parameter, answering 400 when it is not one.
func pathID(c *drift.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		c.BadRequest("invalid " + name)
		return 0, false
	}
	return id, true
}

func failed(c *drift.Context, err error, notFound, internal string) {
	if errors.Is(err, services.ErrNotFound) {
		c.NotFound(notFound)
		return
	}
	c.InternalServerError(internal)
}
