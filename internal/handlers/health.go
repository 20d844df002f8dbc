package handlers

import "github.com/m1z23r/drift/pkg/drift"

const Version = "1.0.0"

func Root(c *drift.Context) {
	c.JSON(200, map[string]string{
		"message": "Project Portal API",
		"version": Version,
	})
}

func Health(c *drift.Context) {
	c.JSON(200, map[string]string{"status": "ok"})
}
