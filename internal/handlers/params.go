package handlers

import (
	"net/url"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// pathParam returns the decoded route parameter. Routing matches on the raw
// path so an escaped slash stays inside one segment; decoding happens here.
// A malformed escape is returned as sent and simply matches nothing.
func pathParam(c *fiber.Ctx, key string) string {
	raw := c.Params(key)
	decoded, err := url.PathUnescape(raw)
	if err != nil {
		return strings.Clone(raw)
	}
	return strings.Clone(decoded)
}
