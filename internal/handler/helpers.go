package handler

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
)

func parseIDParam(c *fiber.Ctx, name string) (uint, error) {
	raw := c.Params(name)
	parsed, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, err
	}
	return uint(parsed), nil
}

func parseQueryUint(c *fiber.Ctx, key string) (*uint, error) {
	value := strings.TrimSpace(c.Query(key))
	if value == "" {
		return nil, nil
	}
	parsed, err := strconv.ParseUint(value, 10, 64)
	if err != nil {
		return nil, err
	}
	result := uint(parsed)
	return &result, nil
}

func parseFormUint(c *fiber.Ctx, key string) (*uint, error) {
	value := strings.TrimSpace(c.FormValue(key))
	if value == "" {
		return nil, nil
	}
	parsed, err := strconv.ParseUint(value, 10, 64)
	if err != nil {
		return nil, err
	}
	result := uint(parsed)
	return &result, nil
}

// actorID returns the authenticated user id, or nil when the request carried
// no usable identity. Audit rows store it as a nullable actor reference.
func actorID(c *fiber.Ctx) *uint {
	if v := c.Locals("user_id"); v != nil {
		if id, ok := v.(uint); ok && id > 0 {
			return &id
		}
	}
	return nil
}

func requireActor(c *fiber.Ctx) (uint, bool) {
	if id := actorID(c); id != nil {
		return *id, true
	}
	return 0, false
}
